package service

import (
	"context"

	"connectrpc.com/connect"

	"github.com/mmynk/tripzy/internal/api"
	"github.com/mmynk/tripzy/internal/models"
	"github.com/mmynk/tripzy/internal/notify"
	"github.com/mmynk/tripzy/internal/storage"
)

const waitlistThanks = "Thank you for joining our waitlist! We'll be in touch soon."

// WaitlistService records marketing-site signups.
type WaitlistService struct {
	store     storage.WaitlistStore
	publisher notify.Publisher
	options
}

var _ api.WaitlistServiceHandler = (*WaitlistService)(nil)

// NewWaitlistService creates a waitlist service. A nil publisher drops events.
func NewWaitlistService(store storage.WaitlistStore, publisher notify.Publisher, opts ...Option) *WaitlistService {
	o := newOptions(opts)
	if publisher == nil {
		publisher = notify.NopPublisher{Logger: o.logger}
	}
	return &WaitlistService{store: store, publisher: publisher, options: o}
}

// JoinWaitlist stores the signup, then announces it. A failed announcement
// is logged and does not fail the signup.
func (s *WaitlistService) JoinWaitlist(ctx context.Context, req *connect.Request[api.JoinWaitlistRequest]) (*connect.Response[api.JoinWaitlistResponse], error) {
	s.logger.Info("JoinWaitlist request received", "email", req.Msg.Email)

	entry, err := models.NewWaitlistEntry(req.Msg.Name, req.Msg.Email, req.Msg.Phone)
	if err != nil {
		return nil, s.fail(ctx, "Invalid waitlist signup", err, "email", req.Msg.Email)
	}

	if err := s.store.AddWaitlistEntry(ctx, entry); err != nil {
		return nil, s.fail(ctx, "Failed to join waitlist", err, "email", entry.Email)
	}
	s.metrics.WaitlistSignup()

	if err := s.publisher.PublishWaitlistJoined(ctx, notify.NewWaitlistJoined(entry)); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish waitlist event", "entry_id", entry.ID, "error", err)
		s.metrics.EventPublished(false)
	} else {
		s.metrics.EventPublished(true)
	}

	return connect.NewResponse(&api.JoinWaitlistResponse{
		EntryID: entry.ID,
		Message: waitlistThanks,
	}), nil
}
