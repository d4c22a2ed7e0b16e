package repository

import (
	"context"

	"github.com/Umeshh27/Event-Driven-Analytics/internal/domain/entity"
	"github.com/google/uuid"
)

type ProductRepository interface {
	Create(ctx context.Context, name, category string, price float64, stock int) (entity.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (entity.Product, error)
	ListCursor(ctx context.Context, limit int, cursor string) ([]entity.Product, error)
}
