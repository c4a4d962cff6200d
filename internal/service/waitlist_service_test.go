package service

import (
	"context"
	"errors"
	"testing"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mmynk/tripzy/internal/api"
	"github.com/mmynk/tripzy/internal/notify"
)

func TestJoinWaitlist(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()

	resp, err := env.waitlist.JoinWaitlist(ctx, connect.NewRequest(&api.JoinWaitlistRequest{
		Name:  "Priya",
		Email: "Priya@Example.com",
		Phone: "+1 555 0100",
	}))
	if err != nil {
		t.Fatalf("JoinWaitlist failed: %v", err)
	}
	if resp.Msg.EntryID == "" {
		t.Error("expected entry ID to be set")
	}
	if resp.Msg.Message != "Thank you for joining our waitlist! We'll be in touch soon." {
		t.Errorf("unexpected message %q", resp.Msg.Message)
	}

	events := env.publisher.published()
	if len(events) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(events))
	}
	ev := events[0]
	if ev.Type != notify.EventWaitlistJoined || ev.Email != "priya@example.com" || ev.EntryID != resp.Msg.EntryID {
		t.Errorf("unexpected event %+v", ev)
	}

	count, err := env.store.CountWaitlist(ctx)
	if err != nil {
		t.Fatalf("CountWaitlist failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 entry, got %d", count)
	}

	_, err = env.waitlist.JoinWaitlist(ctx, connect.NewRequest(&api.JoinWaitlistRequest{Name: "Priya", Email: "priya@example.com"}))
	assertCode(t, err, connect.CodeAlreadyExists)

	if n, err := testutil.GatherAndCount(env.metrics.Registry(), "tripzy_waitlist_signups_total"); err != nil || n != 1 {
		t.Errorf("expected signup counter to be exported, got %d (%v)", n, err)
	}
}

func TestJoinWaitlist_Invalid(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()

	tests := []struct {
		name string
		req  *api.JoinWaitlistRequest
	}{
		{"missing name", &api.JoinWaitlistRequest{Email: "a@example.com"}},
		{"bad email", &api.JoinWaitlistRequest{Name: "A", Email: "not-an-email"}},
		{"display name in email", &api.JoinWaitlistRequest{Name: "A", Email: "A <a@example.com>"}},
		{"phone too long", &api.JoinWaitlistRequest{Name: "A", Email: "a@example.com", Phone: "123456789012345678901234567890123"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.waitlist.JoinWaitlist(context.Background(), connect.NewRequest(tt.req))
			assertCode(t, err, connect.CodeInvalidArgument)
		})
	}

	if n := len(env.publisher.published()); n != 0 {
		t.Errorf("rejected signups must not be published, got %d", n)
	}
}

func TestJoinWaitlist_PublishFailure(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()
	env.publisher.fail(errors.New("broker unavailable"))

	resp, err := env.waitlist.JoinWaitlist(context.Background(), connect.NewRequest(&api.JoinWaitlistRequest{
		Name:  "Lee",
		Email: "lee@example.com",
	}))
	if err != nil {
		t.Fatalf("signup should survive a publish failure: %v", err)
	}
	if resp.Msg.EntryID == "" {
		t.Error("expected entry ID to be set")
	}
}
