package commands

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mmynk/tripzy/internal/config"
	"github.com/mmynk/tripzy/internal/notify"
)

func workerCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Send welcome emails for waitlist signups",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.cfg.Validate(); err != nil {
				c.logger.Error("Configuration validation failed", "error", err)
				return err
			}
			if c.cfg.AMQPURL == "" {
				return errors.New("amqp_url is required to run the worker")
			}

			client, err := notify.NewAMQPClient(c.cfg.AMQPURL, c.cfg.AMQPExchange, c.cfg.AMQPQueue, c.logger)
			if err != nil {
				c.logger.Error("Failed to initialize AMQP client", "error", err)
				return err
			}
			defer client.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			c.logger.Info("Waitlist worker started", "queue", c.cfg.AMQPQueue)
			w := notify.NewWorker(notify.LogMailer{Logger: c.logger}, c.logger)
			if err := w.Run(ctx, client); err != nil {
				c.logger.Error("Message consumption failed", "error", err)
				return err
			}
			c.logger.Info("Waitlist worker stopped")
			return nil
		},
	}

	cmd.Flags().String("amqp-url", "", "AMQP broker URL")
	_ = c.v.BindPFlag(config.KeyAMQPURL, cmd.Flags().Lookup("amqp-url"))
	return cmd
}
