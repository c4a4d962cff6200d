package notify

import (
	"context"
	"fmt"
	"log/slog"
)

// Mailer sends transactional email.
type Mailer interface {
	SendWelcome(ctx context.Context, to, name string) error
}

// LogMailer writes emails to the log instead of sending them.
type LogMailer struct {
	Logger *slog.Logger
}

func (m LogMailer) SendWelcome(ctx context.Context, to, name string) error {
	logger := m.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, "Sending welcome email", "to", to, "subject", WelcomeSubject, "body", WelcomeBody(name))
	return nil
}

const WelcomeSubject = "You're on the Tripzy waitlist"

// WelcomeBody is the text of the waitlist welcome email.
func WelcomeBody(name string) string {
	return fmt.Sprintf("Hi %s,\n\nThank you for joining our waitlist! We'll be in touch soon.\n\nThe Tripzy team", name)
}

// Consumer delivers waitlist events to a handler until its context ends.
type Consumer interface {
	ConsumeWaitlistJoined(ctx context.Context, handler func(context.Context, *WaitlistJoined) error) error
}

// Worker welcomes new waitlist signups.
type Worker struct {
	mailer Mailer
	logger *slog.Logger
}

func NewWorker(mailer Mailer, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{mailer: mailer, logger: logger}
}

// Handle processes one event.
func (w *Worker) Handle(ctx context.Context, msg *WaitlistJoined) error {
	w.logger.InfoContext(ctx, "Waitlist event received", "entry_id", msg.EntryID, "email", msg.Email)
	if err := w.mailer.SendWelcome(ctx, msg.Email, msg.Name); err != nil {
		return fmt.Errorf("send welcome to %s: %w", msg.Email, err)
	}
	return nil
}

// Run consumes events until ctx is cancelled. Cancellation is not an error.
func (w *Worker) Run(ctx context.Context, consumer Consumer) error {
	err := consumer.ConsumeWaitlistJoined(ctx, w.Handle)
	if ctx.Err() != nil {
		return nil
	}
	return err
}
