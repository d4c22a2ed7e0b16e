package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/Umeshh27/Event-Driven-Analytics/internal/domain/entity"
	"github.com/Umeshh27/Event-Driven-Analytics/internal/domain/repository"
	"github.com/Umeshh27/Event-Driven-Analytics/internal/event"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectionRepository struct {
	db *DB
}

func NewProjectionRepository(db *DB) *ProjectionRepository {
	return &ProjectionRepository{db: db}
}

// ApplyOrderCreated is the only write path into the projection tables. The
// ledger insert is the dedup gate: ON CONFLICT DO NOTHING affecting zero rows
// means another delivery of the same identity already got here, so the whole
// transaction rolls back and nothing is double-counted. The upserts after the
// gate are additive, not idempotent.
func (r *ProjectionRepository) ApplyOrderCreated(ctx context.Context, eventID uuid.UUID, evt event.OrderCreated) error {
	return r.db.WithTx(ctx, func(txCtx context.Context) error {
		gate := r.db.Write(txCtx).Exec(
			`INSERT INTO processed_events (event_id, processed_at) VALUES (?, NOW()) ON CONFLICT (event_id) DO NOTHING`,
			eventID,
		)
		if gate.Error != nil {
			return gate.Error
		}
		if gate.RowsAffected == 0 {
			return repository.ErrDuplicateEvent
		}

		if err := r.db.Write(txCtx).Exec(`
INSERT INTO customer_ltv_view (customer_id, total_spent, order_count, last_order_date)
VALUES (?, ?, 1, ?)
ON CONFLICT (customer_id) DO UPDATE SET
    total_spent = customer_ltv_view.total_spent + EXCLUDED.total_spent,
    order_count = customer_ltv_view.order_count + 1,
    last_order_date = GREATEST(customer_ltv_view.last_order_date, EXCLUDED.last_order_date)`,
			evt.CustomerID, evt.Total, evt.Timestamp.UTC(),
		).Error; err != nil {
			return err
		}

		if err := r.db.Write(txCtx).Exec(`
INSERT INTO hourly_sales_view (hour_timestamp, total_orders, total_revenue)
VALUES (?, 1, ?)
ON CONFLICT (hour_timestamp) DO UPDATE SET
    total_orders = hourly_sales_view.total_orders + 1,
    total_revenue = hourly_sales_view.total_revenue + EXCLUDED.total_revenue`,
			event.HourBucket(evt.Timestamp), evt.Total,
		).Error; err != nil {
			return err
		}

		for _, item := range evt.Items {
			revenue := float64(item.Quantity) * item.Price

			if err := r.db.Write(txCtx).Exec(`
INSERT INTO product_sales_view (product_id, total_quantity_sold, total_revenue, order_count)
VALUES (?, ?, ?, 1)
ON CONFLICT (product_id) DO UPDATE SET
    total_quantity_sold = product_sales_view.total_quantity_sold + EXCLUDED.total_quantity_sold,
    total_revenue = product_sales_view.total_revenue + EXCLUDED.total_revenue,
    order_count = product_sales_view.order_count + 1`,
				item.ProductID, item.Quantity, revenue,
			).Error; err != nil {
				return err
			}

			if item.Category == "" {
				continue
			}
			if err := r.db.Write(txCtx).Exec(`
INSERT INTO category_metrics_view (category_name, total_revenue, total_orders)
VALUES (?, ?, 1)
ON CONFLICT (category_name) DO UPDATE SET
    total_revenue = category_metrics_view.total_revenue + EXCLUDED.total_revenue,
    total_orders = category_metrics_view.total_orders + 1`,
				item.Category, revenue,
			).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Read-side lookups return a zero-valued aggregate, keyed, when no row exists
// yet: "no data yet" is not an error.

func (r *ProjectionRepository) ProductSales(ctx context.Context, productID uuid.UUID) (entity.ProductSales, error) {
	var row entity.ProductSales
	if err := r.db.Read(ctx).First(&row, "product_id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entity.ProductSales{ProductID: productID}, nil
		}
		return entity.ProductSales{}, err
	}
	return row, nil
}

func (r *ProjectionRepository) CategoryRevenue(ctx context.Context, category string) (entity.CategoryMetrics, error) {
	var row entity.CategoryMetrics
	if err := r.db.Read(ctx).First(&row, "category_name = ?", category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entity.CategoryMetrics{CategoryName: category}, nil
		}
		return entity.CategoryMetrics{}, err
	}
	return row, nil
}

func (r *ProjectionRepository) CustomerLifetimeValue(ctx context.Context, customerID uuid.UUID) (entity.CustomerLTV, error) {
	var row entity.CustomerLTV
	if err := r.db.Read(ctx).First(&row, "customer_id = ?", customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entity.CustomerLTV{CustomerID: customerID}, nil
		}
		return entity.CustomerLTV{}, err
	}
	return row, nil
}

func (r *ProjectionRepository) HourlySales(ctx context.Context, at time.Time) (entity.HourlySales, error) {
	bucket := event.HourBucket(at)
	var row entity.HourlySales
	if err := r.db.Read(ctx).First(&row, "hour_timestamp = ?", bucket).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entity.HourlySales{HourTimestamp: bucket}, nil
		}
		return entity.HourlySales{}, err
	}
	return row, nil
}

func (r *ProjectionRepository) LastProcessedAt(ctx context.Context) (*time.Time, error) {
	var row entity.ProcessedEvent
	err := r.db.Read(ctx).Order("processed_at DESC").First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	processedAt := row.ProcessedAt
	return &processedAt, nil
}
