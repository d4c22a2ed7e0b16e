package service

import (
	"context"

	"github.com/Umeshh27/Event-Driven-Analytics/internal/domain/entity"
	"github.com/Umeshh27/Event-Driven-Analytics/internal/domain/repository"
	"github.com/google/uuid"
)

type OrderService interface {
	// Create returns the order and whether it was replayed from an earlier
	// request with the same idempotency key.
	Create(ctx context.Context, customerID uuid.UUID, lines []repository.OrderLine, idempotencyKey, requestHash string) (entity.Order, bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (entity.Order, error)
}
