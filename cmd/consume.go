package cmd

import (
	"errors"

	"mercado/pkg/rabbitmq"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	amqp "github.com/streadway/amqp"
)

func newConsumeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "consume",
		Short: "Log product events from the RabbitMQ queue",
		RunE:  runConsume,
	}
}

func runConsume(cmd *cobra.Command, _ []string) error {
	ctx, cfg, log, err := bootstrap(cmd.Context())
	if err != nil {
		return err
	}
	if !cfg.RabbitMQ.Enabled() {
		return errors.New("RABBITMQ_URL is not set")
	}

	mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQ.URL, Queue: cfg.RabbitMQ.Queue})
	if err != nil {
		return err
	}
	defer mqClient.Close()

	log.Info().Str("queue", cfg.RabbitMQ.Queue).Msg("consuming product events")
	return mqClient.ConsumeProductEvents(ctx, productEventLogger(log))
}

// productEventLogger logs each decoded event. Undecodable bodies are
// reported as errors so the consumer drops them.
func productEventLogger(log zerolog.Logger) func(amqp.Delivery) error {
	return func(msg amqp.Delivery) error {
		event, err := rabbitmq.DecodeProductEvent(msg.Body)
		if err != nil {
			log.Warn().Err(err).Uint64("delivery_tag", msg.DeliveryTag).Msg("dropping malformed product event")
			return err
		}
		log.Info().
			Str("event", string(event.Type)).
			Str("product_id", event.ProductID).
			Time("occurred_at", event.OccurredAt).
			Msg("product event received")
		return nil
	}
}
