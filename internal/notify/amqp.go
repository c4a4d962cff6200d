package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 5 * time.Second

// AMQPClient publishes and consumes waitlist events through a direct
// exchange whose routing key is the queue name.
type AMQPClient struct {
	conn         *amqp091.Connection
	channel      *amqp091.Channel
	exchangeName string
	queueName    string
	logger       *slog.Logger
}

var _ Publisher = (*AMQPClient)(nil)

// NewAMQPClient dials url and declares the exchange, the queue and their binding.
func NewAMQPClient(url, exchangeName, queueName string, logger *slog.Logger) (*AMQPClient, error) {
	if logger == nil {
		logger = slog.Default()
	}

	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	client := &AMQPClient{
		conn:         conn,
		channel:      channel,
		exchangeName: exchangeName,
		queueName:    queueName,
		logger:       logger,
	}

	if err := client.setup(); err != nil {
		client.Close()
		return nil, fmt.Errorf("setup exchange and queue: %w", err)
	}

	return client, nil
}

func (c *AMQPClient) setup() error {
	err := c.channel.ExchangeDeclare(
		c.exchangeName, // name
		"direct",       // type
		true,           // durable
		false,          // auto-deleted
		false,          // internal
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	_, err = c.channel.QueueDeclare(
		c.queueName, // name
		true,        // durable
		false,       // delete when unused
		false,       // exclusive
		false,       // no-wait
		nil,         // arguments
	)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	err = c.channel.QueueBind(
		c.queueName,    // queue name
		c.queueName,    // routing key
		c.exchangeName, // exchange
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}

	return nil
}

// PublishWaitlistJoined publishes msg as a persistent JSON message.
func (c *AMQPClient) PublishWaitlistJoined(ctx context.Context, msg *WaitlistJoined) error {
	body, err := msg.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = c.channel.PublishWithContext(
		ctx,
		c.exchangeName, // exchange
		c.queueName,    // routing key
		false,          // mandatory
		false,          // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Type:         msg.Type,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	c.logger.InfoContext(ctx, "Published waitlist event",
		"entry_id", msg.EntryID,
		"exchange", c.exchangeName,
		"queue", c.queueName)
	return nil
}

// ConsumeWaitlistJoined hands every queued event to handler until ctx is
// done. Messages are acked after handler succeeds.
func (c *AMQPClient) ConsumeWaitlistJoined(ctx context.Context, handler func(context.Context, *WaitlistJoined) error) error {
	deliveries, err := c.channel.ConsumeWithContext(
		ctx,
		c.queueName, // queue
		"",          // consumer
		false,       // auto-ack
		false,       // exclusive
		false,       // no-local
		false,       // no-wait
		nil,         // args
	)
	if err != nil {
		return fmt.Errorf("start consuming: %w", err)
	}

	c.logger.InfoContext(ctx, "Started consuming waitlist events", "queue", c.queueName)
	return consume(ctx, deliveries, handler, c.logger)
}

// consume drains deliveries. Undecodable messages are dropped; messages
// whose handler fails are requeued.
func consume(ctx context.Context, deliveries <-chan amqp091.Delivery, handler func(context.Context, *WaitlistJoined) error, logger *slog.Logger) error {
	for {
		select {
		case <-ctx.Done():
			logger.InfoContext(ctx, "Stopping message consumption", "reason", ctx.Err())
			return ctx.Err()
		case delivery, ok := <-deliveries:
			if !ok {
				return errors.New("message channel closed")
			}

			msg, err := WaitlistJoinedFromJSON(delivery.Body)
			if err != nil {
				logger.ErrorContext(ctx, "Failed to decode message", "error", err)
				_ = delivery.Nack(false, false)
				continue
			}

			if err := handler(ctx, msg); err != nil {
				logger.ErrorContext(ctx, "Failed to handle message", "error", err, "entry_id", msg.EntryID)
				_ = delivery.Nack(false, true)
				continue
			}

			_ = delivery.Ack(false)
			logger.DebugContext(ctx, "Processed waitlist event", "entry_id", msg.EntryID)
		}
	}
}

// Close closes the channel and the connection.
func (c *AMQPClient) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
