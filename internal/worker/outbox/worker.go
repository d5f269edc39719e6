package outbox

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"golang.org/x/sync/errgroup"

	"github.com/himalayan-flavors/rms-svc/internal/dal/interfaces/ioutboxrepo"
	"github.com/himalayan-flavors/rms-svc/internal/dal/rabbitmq"
	outboxmodel "github.com/himalayan-flavors/rms-svc/internal/service/models/outbox"
)

// publisher is the slice of *amqp.Channel the worker needs.
type publisher interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Worker drains the outbox table and publishes order events to RabbitMQ.
type Worker struct {
	outboxRepo   ioutboxrepo.IOutboxRepository
	publisher    publisher
	pollInterval time.Duration
	batchSize    int
	publishLimit int
	stopCh       chan struct{}
}

// NewWorker creates a new outbox worker.
func NewWorker(
	outboxRepo ioutboxrepo.IOutboxRepository,
	rabbitClient *rabbitmq.Client,
) *Worker {
	pollIntervalSeconds := viper.GetInt("rabbitmq.outbox.poll_interval_seconds")
	if pollIntervalSeconds == 0 {
		pollIntervalSeconds = 10
	}

	batchSize := viper.GetInt("rabbitmq.outbox.batch_size")
	if batchSize == 0 {
		batchSize = 100
	}

	publishLimit := viper.GetInt("rabbitmq.outbox.publish_concurrency")
	if publishLimit == 0 {
		publishLimit = 4
	}

	return &Worker{
		outboxRepo:   outboxRepo,
		publisher:    rabbitClient.Channel(),
		pollInterval: time.Duration(pollIntervalSeconds) * time.Second,
		batchSize:    batchSize,
		publishLimit: publishLimit,
		stopCh:       make(chan struct{}),
	}
}

// Start begins processing messages from the outbox.
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	slog.Info("Outbox worker started", "poll_interval", w.pollInterval, "batch_size", w.batchSize)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Outbox worker shutting down")

			return
		case <-w.stopCh:
			slog.Info("Outbox worker stopped")

			return
		case <-ticker.C:
			w.processMessages(ctx)
		}
	}
}

// Stop stops the worker.
func (w *Worker) Stop() {
	close(w.stopCh)
}

// processMessages retrieves pending messages and publishes them with bounded
// concurrency. Failures are rescheduled with exponential backoff.
func (w *Worker) processMessages(ctx context.Context) {
	messages, err := w.outboxRepo.GetPendingMessages(ctx, w.batchSize)
	if err != nil {
		slog.Error("Failed to get pending messages from outbox", "error", err)

		return
	}

	if len(messages) == 0 {
		return
	}

	slog.Info("Processing outbox messages", "count", len(messages))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.publishLimit)

	for _, msg := range messages {
		msg := msg
		g.Go(func() error {
			w.publishMessage(gctx, msg)

			return nil
		})
	}

	_ = g.Wait()
}

func (w *Worker) publishMessage(ctx context.Context, msg outboxmodel.OutboxMessage) {
	// On the default exchange the routing key must name a queue, so route by
	// the stored queue name and carry the event type in the message type.
	routingKey := msg.RoutingKey
	if msg.ExchangeName == "" {
		routingKey = msg.QueueName
	}

	err := w.publisher.Publish(
		msg.ExchangeName,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType: msg.ContentType,
			Type:        msg.RoutingKey,
			Body:        msg.Payload,
		},
	)

	if err != nil {
		newRetryCount := msg.RetryCount + 1
		backoffSeconds := math.Pow(2, float64(newRetryCount)) * 30 // 30s, 60s, 120s, 240s, etc.
		nextRetryAt := time.Now().Add(time.Duration(backoffSeconds) * time.Second)

		slog.Warn("Failed to publish message from outbox, will retry",
			"outbox_id", msg.ID,
			"retry_count", newRetryCount,
			"next_retry", nextRetryAt,
			"error", err,
		)

		if err := w.outboxRepo.UpdateRetry(ctx, msg.ID, newRetryCount, err.Error(), nextRetryAt); err != nil {
			slog.Error("Failed to update retry information", "outbox_id", msg.ID, "error", err)
		}

		return
	}

	if err := w.outboxRepo.Delete(ctx, msg.ID); err != nil {
		slog.Error("Failed to delete message from outbox after successful publish",
			"outbox_id", msg.ID,
			"error", err,
		)

		return
	}

	slog.Info("Message successfully published and removed from outbox", "outbox_id", msg.ID)
}
