package persistence

import (
	"context"

	"github.com/google/uuid"
)

type OutboxRepository struct {
	db *DB
}

func NewOutboxRepository(db *DB) *OutboxRepository {
	return &OutboxRepository{db: db}
}

type pendingRecord struct {
	ID      uuid.UUID
	Topic   string
	Payload []byte
}

// PublishPending claims up to limit unpublished rows and hands each to send
// in creation order, all inside one transaction. SKIP LOCKED lets concurrent
// publisher instances claim disjoint batches. A row is stamped published only
// after send returns without error; any error rolls the whole batch back so
// no row is marked published that the broker did not accept.
func (r *OutboxRepository) PublishPending(ctx context.Context, limit int, send func(topic string, payload []byte) error) (int, error) {
	if limit <= 0 {
		limit = 50
	}

	sent := 0
	err := r.db.WithTx(ctx, func(txCtx context.Context) error {
		var records []pendingRecord
		query := `
SELECT id, topic, payload
FROM outbox
WHERE published_at IS NULL
ORDER BY created_at ASC
LIMIT ?
FOR UPDATE SKIP LOCKED`
		if err := r.db.Write(txCtx).Raw(query, limit).Scan(&records).Error; err != nil {
			return err
		}

		for _, record := range records {
			if err := send(record.Topic, record.Payload); err != nil {
				return err
			}
			if err := r.db.Write(txCtx).
				Exec(`UPDATE outbox SET published_at = NOW() WHERE id = ?`, record.ID).
				Error; err != nil {
				return err
			}
			sent++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return sent, nil
}
