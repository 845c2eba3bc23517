package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	"github.com/stakelabs-io/token-staking-ledger/internal/config"
	"github.com/stakelabs-io/token-staking-ledger/internal/observability/metrics"
	"github.com/stakelabs-io/token-staking-ledger/internal/types"
)

// QueueManager publishes ledger events to a rabbitmq topic exchange for
// downstream audit/indexing consumers. Routing keys are the event type names.
type QueueManager struct {
	cfg     *config.QueueConfig
	conn    *amqp.Connection
	channel *amqp.Channel
}

func NewQueueManager(cfg *config.QueueConfig) (*QueueManager, error) {
	amqpURI := fmt.Sprintf("amqp://%s:%s@%s", cfg.QueueUser, cfg.QueuePassword, cfg.Url)

	conn, err := amqp.Dial(amqpURI)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open rabbitmq channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		cfg.ExchangeName,
		amqp.ExchangeTopic,
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", cfg.ExchangeName, err)
	}

	return &QueueManager{
		cfg:     cfg,
		conn:    conn,
		channel: channel,
	}, nil
}

func (qm *QueueManager) PublishStakedEvent(ctx context.Context, event *types.StakedEvent) error {
	return qm.publish(ctx, event.EventType, event)
}

func (qm *QueueManager) PublishClaimAppliedEvent(ctx context.Context, event *types.ClaimAppliedEvent) error {
	return qm.publish(ctx, event.EventType, event)
}

func (qm *QueueManager) PublishClaimedEvent(ctx context.Context, event *types.ClaimedEvent) error {
	return qm.publish(ctx, event.EventType, event)
}

func (qm *QueueManager) PublishOwnershipTransferredEvent(ctx context.Context, event *types.OwnershipTransferredEvent) error {
	return qm.publish(ctx, event.EventType, event)
}

func (qm *QueueManager) publish(ctx context.Context, eventType types.EventTypes, event any) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", eventType, err)
	}

	ctx, cancel := context.WithTimeout(ctx, qm.cfg.PublishTimeout)
	defer cancel()

	err = qm.channel.PublishWithContext(
		ctx,
		qm.cfg.ExchangeName,
		eventType.String(), // routing key
		false,              // mandatory
		false,              // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		metrics.RecordQueuePublishError()
		return fmt.Errorf("failed to publish %s event: %w", eventType, err)
	}

	return nil
}

// Shutdown gracefully stops the interaction with the queue, ensuring all resources are properly released.
func (qm *QueueManager) Shutdown() {
	log.Info().Msg("Shutting down queue manager")

	if err := qm.channel.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close rabbitmq channel")
	}
	if err := qm.conn.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close rabbitmq connection")
	}
}
