// Package notify carries domain events from the API server to background
// workers over AMQP, and sends the emails those events call for.
package notify

import (
	"context"
	"log/slog"
)

// Publisher sends domain events.
type Publisher interface {
	PublishWaitlistJoined(ctx context.Context, msg *WaitlistJoined) error
}

// NopPublisher drops events. It is used when no broker is configured.
type NopPublisher struct {
	Logger *slog.Logger
}

func (p NopPublisher) PublishWaitlistJoined(ctx context.Context, msg *WaitlistJoined) error {
	if p.Logger != nil {
		p.Logger.DebugContext(ctx, "No broker configured, dropping event", "type", msg.Type, "entry_id", msg.EntryID)
	}
	return nil
}
