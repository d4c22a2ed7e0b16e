package repository

import (
	"context"
	"time"

	"github.com/Umeshh27/Event-Driven-Analytics/internal/domain/entity"
	"github.com/Umeshh27/Event-Driven-Analytics/internal/event"
	"github.com/google/uuid"
)

type ProjectionRepository interface {
	// ApplyOrderCreated records eventID in the processed-event ledger and
	// folds the event into the projection tables, all in one transaction.
	// It returns ErrDuplicateEvent, with nothing applied, when the ledger
	// already holds the identity.
	ApplyOrderCreated(ctx context.Context, eventID uuid.UUID, evt event.OrderCreated) error

	ProductSales(ctx context.Context, productID uuid.UUID) (entity.ProductSales, error)
	CategoryRevenue(ctx context.Context, category string) (entity.CategoryMetrics, error)
	CustomerLifetimeValue(ctx context.Context, customerID uuid.UUID) (entity.CustomerLTV, error)

	// HourlySales reports the bucket containing the given instant.
	HourlySales(ctx context.Context, at time.Time) (entity.HourlySales, error)

	// LastProcessedAt returns nil when no event has been processed yet.
	LastProcessedAt(ctx context.Context) (*time.Time, error)
}
