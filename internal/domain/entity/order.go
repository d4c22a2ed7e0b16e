package entity

import (
	"time"

	"github.com/google/uuid"
)

const OrderStatusCompleted = "COMPLETED"

// Order is immutable once created; there is no cancellation or update path.
type Order struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null"`
	Total      float64   `gorm:"type:numeric(12,2);not null"`
	Status     string    `gorm:"not null"`
	CreatedAt  time.Time `gorm:"not null"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem carries the price captured at order time; it is never recomputed
// from the live product price.
type OrderItem struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `gorm:"type:uuid;not null"`
	Quantity  int       `gorm:"not null"`
	Price     float64   `gorm:"type:numeric(12,2);not null"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
