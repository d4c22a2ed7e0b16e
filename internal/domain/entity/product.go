package entity

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"not null"`
	Category  string    `gorm:"not null"`
	Price     float64   `gorm:"type:numeric(12,2);not null"`
	Stock     int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (Product) TableName() string {
	return "products"
}
