package service

import (
	"context"
	"fmt"
	"sync"

	"connectrpc.com/connect"

	"github.com/mmynk/tripzy/internal/api"
	"github.com/mmynk/tripzy/internal/models"
	"github.com/mmynk/tripzy/internal/storage"
)

// GroupChatService runs the chat attached to each trip.
type GroupChatService struct {
	store storage.Store
	mu    sync.Mutex // serializes member changes so one organizer is picked
	options
}

var _ api.GroupChatServiceHandler = (*GroupChatService)(nil)

func NewGroupChatService(store storage.Store, opts ...Option) *GroupChatService {
	return &GroupChatService{store: store, options: newOptions(opts)}
}

// AddChatMember adds a member. The first member organizes the chat.
func (s *GroupChatService) AddChatMember(ctx context.Context, req *connect.Request[api.AddChatMemberRequest]) (*connect.Response[api.AddChatMemberResponse], error) {
	s.logger.Info("AddChatMember request received", "trip_id", req.Msg.TripID, "name", req.Msg.Name)

	s.mu.Lock()
	defer s.mu.Unlock()

	trip, err := ownedTrip(ctx, s.store, req.Msg.TripID)
	if err != nil {
		return nil, s.fail(ctx, "Failed to add chat member", err, "trip_id", req.Msg.TripID)
	}

	existing, err := s.store.ListChatMembers(ctx, trip.ID)
	if err != nil {
		return nil, s.fail(ctx, "Failed to list chat members", err, "trip_id", trip.ID)
	}

	member, err := models.NewChatMember(trip.ID, req.Msg.Name, len(existing) == 0)
	if err != nil {
		return nil, s.fail(ctx, "Invalid chat member", err, "trip_id", trip.ID)
	}
	if err := s.store.AddChatMember(ctx, member); err != nil {
		return nil, s.fail(ctx, "Failed to add chat member", err, "trip_id", trip.ID)
	}

	return connect.NewResponse(&api.AddChatMemberResponse{Member: toAPIChatMember(member)}), nil
}

// RemoveChatMember removes a member other than the organizer.
func (s *GroupChatService) RemoveChatMember(ctx context.Context, req *connect.Request[api.RemoveChatMemberRequest]) (*connect.Response[api.RemoveChatMemberResponse], error) {
	s.logger.Info("RemoveChatMember request received", "trip_id", req.Msg.TripID, "member_id", req.Msg.MemberID)

	s.mu.Lock()
	defer s.mu.Unlock()

	trip, err := ownedTrip(ctx, s.store, req.Msg.TripID)
	if err != nil {
		return nil, s.fail(ctx, "Failed to remove chat member", err, "trip_id", req.Msg.TripID)
	}

	members, err := s.store.ListChatMembers(ctx, trip.ID)
	if err != nil {
		return nil, s.fail(ctx, "Failed to list chat members", err, "trip_id", trip.ID)
	}
	for _, m := range members {
		if m.ID == req.Msg.MemberID && m.Role == models.RoleOrganizer {
			return nil, s.fail(ctx, "Failed to remove chat member", fmt.Errorf("%w: %s", errOrganizerRemoval, m.Name), "trip_id", trip.ID)
		}
	}

	if err := s.store.RemoveChatMember(ctx, trip.ID, req.Msg.MemberID); err != nil {
		return nil, s.fail(ctx, "Failed to remove chat member", err, "trip_id", trip.ID)
	}

	return connect.NewResponse(&api.RemoveChatMemberResponse{}), nil
}

func (s *GroupChatService) ListChatMembers(ctx context.Context, req *connect.Request[api.ListChatMembersRequest]) (*connect.Response[api.ListChatMembersResponse], error) {
	trip, err := ownedTrip(ctx, s.store, req.Msg.TripID)
	if err != nil {
		return nil, s.fail(ctx, "Failed to list chat members", err, "trip_id", req.Msg.TripID)
	}

	members, err := s.store.ListChatMembers(ctx, trip.ID)
	if err != nil {
		return nil, s.fail(ctx, "Failed to list chat members", err, "trip_id", trip.ID)
	}

	out := make([]*api.ChatMember, 0, len(members))
	for _, m := range members {
		out = append(out, toAPIChatMember(m))
	}
	return connect.NewResponse(&api.ListChatMembersResponse{Members: out}), nil
}

// SendMessage posts a message as the trip owner, who appears as "You".
func (s *GroupChatService) SendMessage(ctx context.Context, req *connect.Request[api.SendMessageRequest]) (*connect.Response[api.SendMessageResponse], error) {
	s.logger.Info("SendMessage request received", "trip_id", req.Msg.TripID)

	trip, err := ownedTrip(ctx, s.store, req.Msg.TripID)
	if err != nil {
		return nil, s.fail(ctx, "Failed to send message", err, "trip_id", req.Msg.TripID)
	}

	msg, err := models.NewChatMessage(trip.ID, models.SelfParticipant, req.Msg.Text)
	if err != nil {
		return nil, s.fail(ctx, "Invalid message", err, "trip_id", trip.ID)
	}
	if err := s.store.AddChatMessage(ctx, msg); err != nil {
		return nil, s.fail(ctx, "Failed to send message", err, "trip_id", trip.ID)
	}

	return connect.NewResponse(&api.SendMessageResponse{Message: toAPIChatMessage(msg)}), nil
}

// ListMessages returns the chat history, oldest first.
func (s *GroupChatService) ListMessages(ctx context.Context, req *connect.Request[api.ListMessagesRequest]) (*connect.Response[api.ListMessagesResponse], error) {
	trip, err := ownedTrip(ctx, s.store, req.Msg.TripID)
	if err != nil {
		return nil, s.fail(ctx, "Failed to list messages", err, "trip_id", req.Msg.TripID)
	}

	msgs, err := s.store.ListChatMessages(ctx, trip.ID)
	if err != nil {
		return nil, s.fail(ctx, "Failed to list messages", err, "trip_id", trip.ID)
	}

	out := make([]*api.ChatMessage, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toAPIChatMessage(m))
	}
	return connect.NewResponse(&api.ListMessagesResponse{Messages: out}), nil
}
