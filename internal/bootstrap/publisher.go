package bootstrap

import (
	"context"
	"time"

	"github.com/Umeshh27/Event-Driven-Analytics/internal/config"
	"github.com/Umeshh27/Event-Driven-Analytics/internal/infra/messaging"
	"github.com/Umeshh27/Event-Driven-Analytics/internal/infra/persistence"
	"github.com/Umeshh27/Event-Driven-Analytics/internal/metrics"
	"github.com/sirupsen/logrus"
)

// RunPublisher polls the outbox on a fixed interval and forwards unpublished
// rows to the broker. Ticks are skipped while the connection is down; the
// client reconnects on its own with a fixed wait. Unpublished rows are the
// durable retry token, so a failed tick loses nothing.
func RunPublisher(ctx context.Context, cfg config.Config) error {
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

	repo := persistence.NewOutboxRepository(conn)
	log.Infof("publisher: started (batch=%d, interval=%s)", cfg.Outbox.BatchSize, cfg.Outbox.PollInterval)

	ticker := time.NewTicker(cfg.Outbox.PollInterval)
	defer ticker.Stop()

	streamReady := false
	for {
		if err := publishTick(ctx, cfg, repo, client, &streamReady, log); err != nil {
			metrics.OutboxPublishFailuresTotal.Inc()
			log.WithError(err).Warn("publisher: tick failed")
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func publishTick(ctx context.Context, cfg config.Config, repo *persistence.OutboxRepository, client *messaging.Client, streamReady *bool, log *logrus.Logger) error {
	if !client.Ready() {
		log.Debug("publisher: broker not connected, skipping tick")
		return nil
	}
	if !*streamReady {
		if err := client.EnsureStream(ctx); err != nil {
			return err
		}
		*streamReady = true
	}

	sent, err := repo.PublishPending(ctx, cfg.Outbox.BatchSize, func(topic string, payload []byte) error {
		return client.Publish(ctx, topic, payload)
	})
	if err != nil {
		return err
	}
	if sent > 0 {
		metrics.OutboxPublishedTotal.Add(float64(sent))
		log.Infof("publisher: published %d records", sent)
	}
	return nil
}
