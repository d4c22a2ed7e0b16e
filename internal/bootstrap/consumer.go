package bootstrap

import (
	"context"
	"errors"
	"time"

	"github.com/Umeshh27/Event-Driven-Analytics/internal/config"
	"github.com/Umeshh27/Event-Driven-Analytics/internal/infra/messaging"
	"github.com/Umeshh27/Event-Driven-Analytics/internal/infra/persistence"
	"github.com/Umeshh27/Event-Driven-Analytics/internal/metrics"
	"github.com/Umeshh27/Event-Driven-Analytics/internal/usecase"
	"github.com/nats-io/nats.go"
)

// RunConsumer drains the order-events queue one message at a time and folds
// each event into the projections. A message is acknowledged only after the
// ledger-gated transaction committed (or the event was recognized as a
// duplicate or an unknown type); failures are rejected back to the queue and
// consumption pauses briefly so a poison message cannot spin hot.
func RunConsumer(ctx context.Context, cfg config.Config) error {
	log, err := buildLogger(cfg)
	if err != nil {
		return err
	}

	conn, err := persistence.New(ctx, persistence.Config{
		WriteDSN:          cfg.Database.WriteDSN,
		ReadDSN:           cfg.Database.ReadDSN,
		MaxConns:          cfg.Database.MaxConns,
		MinConns:          cfg.Database.MinConns,
		MaxConnLifetime:   cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:   cfg.Database.MaxConnIdleTime,
		HealthCheckPeriod: cfg.Database.HealthCheckPeriod,
	})
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := messaging.New(ctx, cfg.Broker)
	if err != nil {
		return err
	}
	defer client.Close()

	// The subscription needs the broker; keep trying with a fixed wait until
	// it comes up or shutdown is requested.
	var sub *nats.Subscription
	for {
		sub, err = client.OrderEventsSubscription(ctx)
		if err == nil {
			break
		}
		log.WithError(err).Warn("consumer: subscribe failed, retrying")
		pause(ctx, cfg.Broker.ReconnectWait)
		select {
		case <-ctx.Done():
			return nil
		default:
		}
	}

	projector := usecase.NewProjector(persistence.NewProjectionRepository(conn), log)
	log.Infof("consumer: listening on %s (durable=%s)", cfg.Broker.OrderEventsSubject, cfg.Broker.ConsumerDurable)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		msgs, err := sub.Fetch(1, nats.MaxWait(cfg.Consumer.FetchWait))
		if err != nil {
			if errors.Is(err, nats.ErrTimeout) {
				continue
			}
			log.WithError(err).Warn("consumer: fetch failed")
			pause(ctx, cfg.Consumer.FailurePause)
			continue
		}

		for _, msg := range msgs {
			outcome, err := projector.HandleMessage(ctx, msg.Data)
			if err != nil {
				metrics.ConsumerErrorsTotal.Inc()
				log.WithError(err).Warn("consumer: processing failed, requeuing")
				_ = msg.Nak()
				pause(ctx, cfg.Consumer.FailurePause)
				continue
			}

			switch outcome {
			case usecase.OutcomeApplied:
				metrics.EventsProcessedTotal.Inc()
			case usecase.OutcomeDuplicate:
				metrics.DuplicateEventsTotal.Inc()
			}
			_ = msg.Ack()
		}
	}
}

func pause(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
