package notify

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/mmynk/tripzy/internal/models"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

type recordingAck struct {
	mu       sync.Mutex
	acked    []uint64
	requeued []uint64
	dropped  []uint64
}

func (r *recordingAck) Ack(tag uint64, _ bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.acked = append(r.acked, tag)
	return nil
}

func (r *recordingAck) Nack(tag uint64, _ bool, requeue bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if requeue {
		r.requeued = append(r.requeued, tag)
	} else {
		r.dropped = append(r.dropped, tag)
	}
	return nil
}

func (r *recordingAck) Reject(tag uint64, requeue bool) error {
	return r.Nack(tag, false, requeue)
}

func event(t *testing.T, email string) []byte {
	t.Helper()
	entry, err := models.NewWaitlistEntry("Ana", email, "")
	require.NoError(t, err)
	body, err := NewWaitlistJoined(entry).ToJSON()
	require.NoError(t, err)
	return body
}

func TestWaitlistJoinedJSON(t *testing.T) {
	entry, err := models.NewWaitlistEntry("Ana", "Ana@Example.com", "")
	require.NoError(t, err)

	msg := NewWaitlistJoined(entry)
	body, err := msg.ToJSON()
	require.NoError(t, err)
	assert.Contains(t, string(body), `"type":"waitlist.joined"`)

	decoded, err := WaitlistJoinedFromJSON(body)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", decoded.Email)
	assert.Equal(t, entry.ID, decoded.EntryID)
	assert.True(t, msg.JoinedAt.Equal(decoded.JoinedAt))

	_, err = WaitlistJoinedFromJSON([]byte(`{"type":"trip.created"}`))
	assert.Error(t, err)
	_, err = WaitlistJoinedFromJSON([]byte(`{`))
	assert.Error(t, err)
}

func TestConsume_AcksAndNacks(t *testing.T) {
	ack := &recordingAck{}
	deliveries := make(chan amqp091.Delivery, 3)
	deliveries <- amqp091.Delivery{Acknowledger: ack, DeliveryTag: 1, Body: event(t, "ok@example.com")}
	deliveries <- amqp091.Delivery{Acknowledger: ack, DeliveryTag: 2, Body: []byte("not json")}
	deliveries <- amqp091.Delivery{Acknowledger: ack, DeliveryTag: 3, Body: event(t, "fail@example.com")}
	close(deliveries)

	var handled []string
	handler := func(_ context.Context, msg *WaitlistJoined) error {
		handled = append(handled, msg.Email)
		if msg.Email == "fail@example.com" {
			return errors.New("smtp down")
		}
		return nil
	}

	err := consume(context.Background(), deliveries, handler, quiet)
	require.EqualError(t, err, "message channel closed")

	assert.Equal(t, []string{"ok@example.com", "fail@example.com"}, handled)
	assert.Equal(t, []uint64{1}, ack.acked)
	assert.Equal(t, []uint64{2}, ack.dropped)
	assert.Equal(t, []uint64{3}, ack.requeued)
}

func TestConsume_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	deliveries := make(chan amqp091.Delivery)

	done := make(chan error, 1)
	go func() {
		done <- consume(ctx, deliveries, func(context.Context, *WaitlistJoined) error { return nil }, quiet)
	}()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("consume did not stop after cancel")
	}
}

type recordingMailer struct {
	sent []string
	err  error
}

func (m *recordingMailer) SendWelcome(_ context.Context, to, _ string) error {
	m.sent = append(m.sent, to)
	return m.err
}

// oneShotConsumer delivers a single event, then blocks until cancelled.
type oneShotConsumer struct {
	msg     *WaitlistJoined
	handled chan error
}

func (c *oneShotConsumer) ConsumeWaitlistJoined(ctx context.Context, handler func(context.Context, *WaitlistJoined) error) error {
	c.handled <- handler(ctx, c.msg)
	<-ctx.Done()
	return ctx.Err()
}

func TestWorkerRun(t *testing.T) {
	mailer := &recordingMailer{}
	w := NewWorker(mailer, quiet)
	consumer := &oneShotConsumer{
		msg:     &WaitlistJoined{Type: EventWaitlistJoined, EntryID: "e1", Name: "Ana", Email: "ana@example.com"},
		handled: make(chan error, 1),
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, consumer) }()

	require.NoError(t, <-consumer.handled)
	cancel()
	require.NoError(t, <-done)
	assert.Equal(t, []string{"ana@example.com"}, mailer.sent)
}

func TestWorkerHandle_MailerError(t *testing.T) {
	w := NewWorker(&recordingMailer{err: errors.New("smtp down")}, quiet)
	err := w.Handle(context.Background(), &WaitlistJoined{Email: "ana@example.com"})
	assert.ErrorContains(t, err, "ana@example.com")
}

func TestLogMailerAndNopPublisher(t *testing.T) {
	assert.NoError(t, LogMailer{Logger: quiet}.SendWelcome(context.Background(), "ana@example.com", "Ana"))
	assert.Contains(t, WelcomeBody("Ana"), "Hi Ana,")
	assert.NoError(t, NopPublisher{Logger: quiet}.PublishWaitlistJoined(context.Background(), &WaitlistJoined{}))
}
