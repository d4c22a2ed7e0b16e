package repository

import (
	"context"

	"github.com/Umeshh27/Event-Driven-Analytics/internal/domain/entity"
	"github.com/google/uuid"
)

// OrderLine is one requested line item. Price, when non-nil, overrides the
// catalog price and is captured on the order item as-is.
type OrderLine struct {
	ProductID uuid.UUID
	Quantity  int
	Price     *float64
}

type OrderRepository interface {
	Create(ctx context.Context, customerID uuid.UUID, lines []OrderLine) (entity.Order, error)
	CreateIdempotent(ctx context.Context, customerID uuid.UUID, lines []OrderLine, key, requestHash string) (entity.Order, bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (entity.Order, error)
}
