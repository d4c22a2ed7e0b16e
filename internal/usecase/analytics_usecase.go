package usecase

import (
	"context"
	"time"

	"github.com/Umeshh27/Event-Driven-Analytics/internal/domain/entity"
	"github.com/Umeshh27/Event-Driven-Analytics/internal/domain/repository"
	"github.com/Umeshh27/Event-Driven-Analytics/internal/domain/service"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Analytics struct {
	repo repository.ProjectionRepository
	log  *logrus.Logger
	now  func() time.Time
}

var _ service.AnalyticsService = (*Analytics)(nil)

func NewAnalytics(repo repository.ProjectionRepository, log *logrus.Logger) *Analytics {
	return &Analytics{repo: repo, log: log, now: time.Now}
}

func (a *Analytics) ProductSales(ctx context.Context, productID uuid.UUID) (entity.ProductSales, error) {
	row, err := a.repo.ProductSales(ctx, productID)
	if err != nil {
		a.log.WithError(err).Error("product sales lookup failed")
		return entity.ProductSales{}, err
	}
	return row, nil
}

func (a *Analytics) CategoryRevenue(ctx context.Context, category string) (entity.CategoryMetrics, error) {
	row, err := a.repo.CategoryRevenue(ctx, category)
	if err != nil {
		a.log.WithError(err).Error("category revenue lookup failed")
		return entity.CategoryMetrics{}, err
	}
	return row, nil
}

func (a *Analytics) CustomerLifetimeValue(ctx context.Context, customerID uuid.UUID) (entity.CustomerLTV, error) {
	row, err := a.repo.CustomerLifetimeValue(ctx, customerID)
	if err != nil {
		a.log.WithError(err).Error("customer lifetime value lookup failed")
		return entity.CustomerLTV{}, err
	}
	return row, nil
}

func (a *Analytics) HourlySales(ctx context.Context, at time.Time) (entity.HourlySales, error) {
	row, err := a.repo.HourlySales(ctx, at)
	if err != nil {
		a.log.WithError(err).Error("hourly sales lookup failed")
		return entity.HourlySales{}, err
	}
	return row, nil
}

func (a *Analytics) SyncStatus(ctx context.Context) (service.SyncStatus, error) {
	lastProcessedAt, err := a.repo.LastProcessedAt(ctx)
	if err != nil {
		a.log.WithError(err).Error("sync status lookup failed")
		return service.SyncStatus{}, err
	}
	if lastProcessedAt == nil {
		return service.SyncStatus{}, nil
	}

	lag := a.now().UTC().Sub(lastProcessedAt.UTC()).Seconds()
	if lag < 0 {
		lag = 0
	}
	return service.SyncStatus{
		LastProcessedEventTimestamp: lastProcessedAt,
		LagSeconds:                  lag,
	}, nil
}
