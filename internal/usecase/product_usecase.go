package usecase

import (
	"context"

	"github.com/Umeshh27/Event-Driven-Analytics/internal/domain/entity"
	"github.com/Umeshh27/Event-Driven-Analytics/internal/domain/repository"
	"github.com/Umeshh27/Event-Driven-Analytics/internal/domain/service"
	"github.com/Umeshh27/Event-Driven-Analytics/internal/infra/pagination"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Product struct {
	repo repository.ProductRepository
	log  *logrus.Logger
}

var _ service.ProductService = (*Product)(nil)

func NewProduct(repo repository.ProductRepository, log *logrus.Logger) *Product {
	return &Product{repo: repo, log: log}
}

func (p *Product) Create(ctx context.Context, name, category string, price float64, stock int) (entity.Product, error) {
	product, err := p.repo.Create(ctx, name, category, price, stock)
	if err != nil {
		p.log.WithError(err).Error("create product failed")
		return entity.Product{}, err
	}
	return product, nil
}

func (p *Product) GetByID(ctx context.Context, id uuid.UUID) (entity.Product, error) {
	product, err := p.repo.GetByID(ctx, id)
	if err != nil {
		p.log.WithError(err).Error("get product failed")
		return entity.Product{}, err
	}
	return product, nil
}

// defaultListLimit matches the repository's page size so a final page that
// happens to be full is the only case that emits a next cursor.
const defaultListLimit = 50

func (p *Product) List(ctx context.Context, limit int, cursor string) ([]entity.Product, string, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	products, err := p.repo.ListCursor(ctx, limit, cursor)
	if err != nil {
		p.log.WithError(err).Error("list products failed")
		return nil, "", err
	}
	nextCursor := ""
	if len(products) == limit {
		last := products[len(products)-1]
		nextCursor = pagination.Encode(last.CreatedAt, last.ID)
	}
	return products, nextCursor, nil
}
