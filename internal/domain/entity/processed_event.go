package entity

import (
	"time"

	"github.com/google/uuid"
)

// ProcessedEvent is the append-only dedup ledger. Existence of a row is the
// signal that the event has already been applied; at most one row per
// event identity.
type ProcessedEvent struct {
	EventID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProcessedAt time.Time `gorm:"not null"`
}

func (ProcessedEvent) TableName() string {
	return "processed_events"
}
