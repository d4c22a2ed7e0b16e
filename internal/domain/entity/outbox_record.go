package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// OutboxRecord is written in the same transaction as the domain mutation it
// describes. PublishedAt is set exactly once by the publisher; rows are never
// deleted here (retention is external).
type OutboxRecord struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Topic       string         `gorm:"not null"`
	Payload     datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt   time.Time      `gorm:"not null"`
	PublishedAt *time.Time     `gorm:""`
}

func (OutboxRecord) TableName() string {
	return "outbox"
}
