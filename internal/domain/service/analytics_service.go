package service

import (
	"context"
	"time"

	"github.com/Umeshh27/Event-Driven-Analytics/internal/domain/entity"
	"github.com/google/uuid"
)

// SyncStatus reports how far the read model trails the event stream.
// LastProcessedEventTimestamp is nil and LagSeconds zero when nothing has
// been processed yet.
type SyncStatus struct {
	LastProcessedEventTimestamp *time.Time
	LagSeconds                  float64
}

type AnalyticsService interface {
	ProductSales(ctx context.Context, productID uuid.UUID) (entity.ProductSales, error)
	CategoryRevenue(ctx context.Context, category string) (entity.CategoryMetrics, error)
	CustomerLifetimeValue(ctx context.Context, customerID uuid.UUID) (entity.CustomerLTV, error)
	HourlySales(ctx context.Context, at time.Time) (entity.HourlySales, error)
	SyncStatus(ctx context.Context) (SyncStatus, error)
}
