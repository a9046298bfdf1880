// Package subscriber consumes low-stock events and turns them into alert
// emails.
package subscriber

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/destore/inventory/internal/notification/mailer"
	"github.com/destore/inventory/pkg/config"
	"github.com/destore/inventory/pkg/messaging/events"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"golang.org/x/sync/errgroup"
)

// Alerter binds the mail transport to the configured recipient and subject.
type Alerter struct {
	notifier mailer.Notifier
	cfg      config.MailerConfig
	logger   *slog.Logger
}

// NewAlerter creates an Alerter delivering via the given notifier.
func NewAlerter(notifier mailer.Notifier, cfg config.MailerConfig, logger *slog.Logger) *Alerter {
	return &Alerter{
		notifier: notifier,
		cfg:      cfg,
		logger:   logger.With("component", "subscriber"),
	}
}

// Start initializes the NATS JetStream consumer and starts multiple worker
// goroutines to process messages.
func (a *Alerter) Start(ctx context.Context, js jetstream.JetStream, subscriberCfg config.SubscriberConfig) error {
	cfg := jetstream.ConsumerConfig{
		FilterSubject: subscriberCfg.Subject,
		Durable:       subscriberCfg.Consumer,
		AckPolicy:     jetstream.AckExplicitPolicy,
	}
	consumer, err := js.CreateOrUpdateConsumer(ctx, subscriberCfg.Stream, cfg)
	if err != nil {
		return err
	}
	g, gCtx := errgroup.WithContext(ctx)
	for i := 0; i < subscriberCfg.Workers; i++ {
		g.Go(func() error {
			return a.runWorker(gCtx, consumer, subscriberCfg.Batch, subscriberCfg.Timeout, subscriberCfg.Interval)
		})
	}
	return g.Wait()
}

// runWorker fetches messages from the NATS JetStream consumer and processes them.
func (a *Alerter) runWorker(ctx context.Context, consumer jetstream.Consumer, batch int, timeout time.Duration, interval time.Duration) error {
	for {
		select {
		case <-ctx.Done():
			// ctx was cancelled or timed out (e.g., application shutdown)
			return ctx.Err()
		default:
			msgs, err := consumer.Fetch(batch, jetstream.FetchMaxWait(timeout))
			if err != nil {
				// if the error is a timeout, we can just continue to the next iteration
				if errors.Is(err, nats.ErrTimeout) {
					continue
				}
				a.logger.Error("failed to fetch messages", "error", err)
				// for other errors, we can log and retry
				time.Sleep(interval)
				continue
			}
			for msg := range msgs.Messages() {
				a.handleMessage(ctx, msg)
			}
		}
	}
}

// ackableMsg is the part of jetstream.Msg the handler needs. Narrowed for
// testability.
type ackableMsg interface {
	Data() []byte
	Ack() error
	Nak() error
}

// handleMessage processes a single low-stock event. Delivery failures are
// logged and the message is acked anyway: alerts are best-effort and a
// failed email must not be redelivered forever.
func (a *Alerter) handleMessage(ctx context.Context, msg ackableMsg) {
	if msg == nil {
		a.logger.Error("received nil message")
		return
	}
	var event events.LowStockEvent
	if err := json.Unmarshal(msg.Data(), &event); err != nil {
		a.logger.Error("failed to unmarshal message", "error", err)
		if err := msg.Nak(); err != nil {
			a.logger.Error("failed to nack message", "error", err)
		}
		return
	}

	a.logger.Info("received low stock event",
		slog.String("product_id", event.ProductID.String()),
		slog.String("name", event.Name),
		slog.Int64("quantity", event.Quantity),
		slog.String("occurred_at", event.OccurredAt.Format(time.RFC3339)))

	body, err := mailer.LowStockBody(event.Name, event.Quantity)
	if err != nil {
		a.logger.Error("failed to render alert body", "error", err)
	} else if err := a.notifier.Send(ctx, a.cfg.To, a.cfg.Subject, body); err != nil {
		a.logger.Error("failed to deliver low stock alert",
			"product_id", event.ProductID.String(),
			"error", err)
	}

	if err := msg.Ack(); err != nil {
		a.logger.Error("failed to ack message", "error", err)
	}
}
