package usecase

import (
	"context"

	"github.com/Umeshh27/Event-Driven-Analytics/internal/domain/entity"
	"github.com/Umeshh27/Event-Driven-Analytics/internal/domain/repository"
	"github.com/Umeshh27/Event-Driven-Analytics/internal/domain/service"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Order struct {
	repo repository.OrderRepository
	log  *logrus.Logger
}

var _ service.OrderService = (*Order)(nil)

func NewOrder(repo repository.OrderRepository, log *logrus.Logger) *Order {
	return &Order{repo: repo, log: log}
}

func (o *Order) Create(ctx context.Context, customerID uuid.UUID, lines []repository.OrderLine, idempotencyKey, requestHash string) (entity.Order, bool, error) {
	if idempotencyKey == "" {
		order, err := o.repo.Create(ctx, customerID, lines)
		if err != nil {
			o.log.WithError(err).Error("create order failed")
			return entity.Order{}, false, err
		}
		return order, false, nil
	}

	order, alreadyExist, err := o.repo.CreateIdempotent(ctx, customerID, lines, idempotencyKey, requestHash)
	if err != nil {
		o.log.WithError(err).Error("create order failed")
		return entity.Order{}, false, err
	}
	return order, alreadyExist, nil
}

func (o *Order) GetByID(ctx context.Context, id uuid.UUID) (entity.Order, error) {
	order, err := o.repo.GetByID(ctx, id)
	if err != nil {
		o.log.WithError(err).Error("get order failed")
		return entity.Order{}, err
	}
	return order, nil
}
