package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Umeshh27/Event-Driven-Analytics/internal/domain/entity"
	"github.com/Umeshh27/Event-Driven-Analytics/internal/domain/repository"
	"github.com/Umeshh27/Event-Driven-Analytics/internal/event"
	"github.com/Umeshh27/Event-Driven-Analytics/internal/infra/pagination"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProductRepository struct {
	db *DB
}

func NewProductRepository(db *DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Create inserts the product and its ProductCreated outbox row in one
// transaction; both commit or neither does.
func (r *ProductRepository) Create(ctx context.Context, name, category string, price float64, stock int) (entity.Product, error) {
	var product entity.Product
	err := r.db.WithTx(ctx, func(txCtx context.Context) error {
		product = entity.Product{
			Name:      name,
			Category:  category,
			Price:     price,
			Stock:     stock,
			CreatedAt: time.Now().UTC(),
		}
		if err := r.db.Write(txCtx).Create(&product).Error; err != nil {
			return err
		}

		payload := event.ProductCreated{
			EventType: event.TypeProductCreated,
			ProductID: product.ID.String(),
			Name:      product.Name,
			Category:  product.Category,
			Price:     product.Price,
			Stock:     product.Stock,
			Timestamp: product.CreatedAt,
		}
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}

		record := entity.OutboxRecord{
			Topic:     event.TopicProductEvents,
			Payload:   datatypes.JSON(data),
			CreatedAt: time.Now().UTC(),
		}
		return r.db.Write(txCtx).Create(&record).Error
	})
	if err != nil {
		return entity.Product{}, err
	}
	return product, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (entity.Product, error) {
	var product entity.Product
	if err := r.db.Read(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entity.Product{}, repository.ErrProductNotFound
		}
		return entity.Product{}, err
	}
	return product, nil
}

func (r *ProductRepository) ListCursor(ctx context.Context, limit int, cursor string) ([]entity.Product, error) {
	var products []entity.Product
	if limit <= 0 {
		limit = 50
	}

	query := r.db.Read(ctx).
		Limit(limit).
		Order("created_at DESC").
		Order("id DESC")

	if cursor != "" {
		cursorTime, cursorID, err := pagination.Decode(cursor)
		if err != nil {
			if errors.Is(err, pagination.ErrInvalidCursor) {
				return nil, repository.ErrInvalidCursor
			}
			return nil, err
		}
		query = query.Where("(created_at < ?) OR (created_at = ? AND id < ?)", cursorTime, cursorTime, cursorID)
	}

	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}
