package persistence

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Umeshh27/Event-Driven-Analytics/internal/domain/entity"
	"github.com/Umeshh27/Event-Driven-Analytics/internal/domain/repository"
	"github.com/Umeshh27/Event-Driven-Analytics/internal/event"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepository struct {
	db *DB
}

func NewOrderRepository(db *DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create runs the whole fulfillment as one transaction: lock products, check
// and decrement stock, insert the order and its items, and append the
// OrderCreated outbox row. Any failure rolls everything back.
func (r *OrderRepository) Create(ctx context.Context, customerID uuid.UUID, lines []repository.OrderLine) (entity.Order, error) {
	var order entity.Order
	err := r.db.WithTx(ctx, func(txCtx context.Context) error {
		created, err := r.fulfill(txCtx, customerID, lines)
		if err != nil {
			return err
		}
		order = created
		return nil
	})
	if err != nil {
		return entity.Order{}, err
	}
	return order, nil
}

// errKeyRaceLost marks an attempt that lost the insert race on an
// idempotency key; the caller re-reads the winner's row after rollback.
var errKeyRaceLost = errors.New("idempotency key race lost")

func (r *OrderRepository) CreateIdempotent(ctx context.Context, customerID uuid.UUID, lines []repository.OrderLine, key, requestHash string) (entity.Order, bool, error) {
	var (
		order        entity.Order
		alreadyExist bool
	)
	err := r.db.WithTx(ctx, func(txCtx context.Context) error {
		var existing entity.IdempotencyKey
		if err := r.db.Write(txCtx).First(&existing, "key = ?", key).Error; err == nil {
			if existing.RequestHash != requestHash {
				return repository.ErrIdempotencyKeyConflict
			}
			fetched, err := r.GetByID(txCtx, existing.OrderID)
			if err != nil {
				return err
			}
			order = fetched
			alreadyExist = true
			return nil
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		created, err := r.fulfill(txCtx, customerID, lines)
		if err != nil {
			return err
		}
		order = created

		keyRow := entity.IdempotencyKey{
			Key:         key,
			RequestHash: requestHash,
			OrderID:     order.ID,
			CreatedAt:   time.Now().UTC(),
		}
		if err := r.db.Write(txCtx).Create(&keyRow).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// Lost the race to a concurrent request with the same key;
				// abort this attempt so its stock reservation rolls back.
				return errKeyRaceLost
			}
			return err
		}
		return nil
	})
	if errors.Is(err, errKeyRaceLost) {
		// The winner committed its key row, so replay its order when the
		// request matches, exactly as a sequential retry would.
		return r.replayKey(ctx, key, requestHash)
	}
	if err != nil {
		return entity.Order{}, false, err
	}
	return order, alreadyExist, nil
}

func (r *OrderRepository) replayKey(ctx context.Context, key, requestHash string) (entity.Order, bool, error) {
	var existing entity.IdempotencyKey
	if err := r.db.Write(ctx).First(&existing, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entity.Order{}, false, repository.ErrIdempotencyKeyConflict
		}
		return entity.Order{}, false, err
	}
	if existing.RequestHash != requestHash {
		return entity.Order{}, false, repository.ErrIdempotencyKeyConflict
	}
	order, err := r.GetByID(ctx, existing.OrderID)
	if err != nil {
		return entity.Order{}, false, err
	}
	return order, true, nil
}

func (r *OrderRepository) fulfill(ctx context.Context, customerID uuid.UUID, lines []repository.OrderLine) (entity.Order, error) {
	// Locks are taken in ascending product-id order, not caller order, so
	// concurrent multi-item orders over overlapping products cannot deadlock.
	locked := make(map[uuid.UUID]*entity.Product, len(lines))
	for _, id := range lockOrder(lines) {
		var product entity.Product
		err := r.db.Write(ctx).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&product, "id = ?", id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return entity.Order{}, fmt.Errorf("product %s: %w", id, repository.ErrProductNotFound)
			}
			return entity.Order{}, err
		}
		locked[id] = &product
	}

	var total float64
	items := make([]entity.OrderItem, 0, len(lines))
	for _, line := range lines {
		product := locked[line.ProductID]
		if product.Stock < line.Quantity {
			return entity.Order{}, fmt.Errorf("product %s: %w", line.ProductID, repository.ErrInsufficientStock)
		}

		price := product.Price
		if line.Price != nil {
			price = *line.Price
		}
		total += price * float64(line.Quantity)

		// Decrement immediately so a later line for the same product sees
		// the reservation.
		if err := r.db.Write(ctx).
			Exec(`UPDATE products SET stock = stock - ? WHERE id = ?`, line.Quantity, line.ProductID).
			Error; err != nil {
			return entity.Order{}, err
		}
		product.Stock -= line.Quantity

		items = append(items, entity.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     price,
		})
	}

	order := entity.Order{
		CustomerID: customerID,
		Total:      total,
		Status:     entity.OrderStatusCompleted,
		CreatedAt:  time.Now().UTC(),
	}
	if err := r.db.Write(ctx).Create(&order).Error; err != nil {
		return entity.Order{}, err
	}

	enriched := make([]event.OrderItem, 0, len(items))
	for i := range items {
		items[i].OrderID = order.ID
		if err := r.db.Write(ctx).Create(&items[i]).Error; err != nil {
			return entity.Order{}, err
		}
		enriched = append(enriched, event.OrderItem{
			ProductID: items[i].ProductID.String(),
			Quantity:  items[i].Quantity,
			Price:     items[i].Price,
			Category:  locked[items[i].ProductID].Category,
		})
	}

	payload := event.OrderCreated{
		EventType:  event.TypeOrderCreated,
		OrderID:    order.ID.String(),
		CustomerID: order.CustomerID.String(),
		Items:      enriched,
		Total:      order.Total,
		Timestamp:  order.CreatedAt,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return entity.Order{}, err
	}

	record := entity.OutboxRecord{
		Topic:     event.TopicOrderEvents,
		Payload:   datatypes.JSON(data),
		CreatedAt: time.Now().UTC(),
	}
	if err := r.db.Write(ctx).Create(&record).Error; err != nil {
		return entity.Order{}, err
	}

	return order, nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (entity.Order, error) {
	var order entity.Order
	if err := r.db.Read(ctx).First(&order, "id = ?", id).Error; err != nil {
		return entity.Order{}, err
	}
	return order, nil
}

// lockOrder returns the distinct product ids of the given lines in ascending
// byte order.
func lockOrder(lines []repository.OrderLine) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(lines))
	ids := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.ProductID]; ok {
			continue
		}
		seen[line.ProductID] = struct{}{}
		ids = append(ids, line.ProductID)
	}
	sort.Slice(ids, func(i, j int) bool {
		return bytes.Compare(ids[i][:], ids[j][:]) < 0
	})
	return ids
}
