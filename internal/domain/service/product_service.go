package service

import (
	"context"

	"github.com/Umeshh27/Event-Driven-Analytics/internal/domain/entity"
	"github.com/google/uuid"
)

type ProductService interface {
	Create(ctx context.Context, name, category string, price float64, stock int) (entity.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (entity.Product, error)
	List(ctx context.Context, limit int, cursor string) ([]entity.Product, string, error)
}
