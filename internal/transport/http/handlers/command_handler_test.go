package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Umeshh27/Event-Driven-Analytics/internal/domain/entity"
	"github.com/Umeshh27/Event-Driven-Analytics/internal/domain/repository"
	"github.com/Umeshh27/Event-Driven-Analytics/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProductService struct {
	product entity.Product
	err     error
}

func (s *stubProductService) Create(ctx context.Context, name, category string, price float64, stock int) (entity.Product, error) {
	return s.product, s.err
}

func (s *stubProductService) GetByID(ctx context.Context, id uuid.UUID) (entity.Product, error) {
	return s.product, s.err
}

func (s *stubProductService) List(ctx context.Context, limit int, cursor string) ([]entity.Product, string, error) {
	if s.err != nil {
		return nil, "", s.err
	}
	return []entity.Product{s.product}, "", nil
}

type stubOrderService struct {
	order        entity.Order
	alreadyExist bool
	err          error

	gotKey   string
	gotLines []repository.OrderLine
}

func (s *stubOrderService) Create(ctx context.Context, customerID uuid.UUID, lines []repository.OrderLine, idempotencyKey, requestHash string) (entity.Order, bool, error) {
	s.gotKey = idempotencyKey
	s.gotLines = lines
	return s.order, s.alreadyExist, s.err
}

func (s *stubOrderService) GetByID(ctx context.Context, id uuid.UUID) (entity.Order, error) {
	return s.order, s.err
}

func commandEngine(product *stubProductService, order *stubOrderService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	NewCommandRouter(NewCommandHandler(product, order)).RegisterRoutes(engine, middleware.Idempotency())
	return engine
}

func TestCreateProduct(t *testing.T) {
	product := entity.Product{ID: uuid.New(), Name: "Widget", Category: "tools", Price: 10.0, Stock: 5}
	engine := commandEngine(&stubProductService{product: product}, &stubOrderService{})

	body := `{"name":"Widget","category":"tools","price":10.00,"stock":5}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(body))
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		Data struct {
			ProductID string `json:"productId"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, product.ID.String(), resp.Data.ProductID)
}

func TestCreateProductMissingFields(t *testing.T) {
	engine := commandEngine(&stubProductService{}, &stubOrderService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(`{"name":"Widget"}`))
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateOrder(t *testing.T) {
	order := entity.Order{ID: uuid.New(), Total: 30.0, Status: entity.OrderStatusCompleted}
	orderSvc := &stubOrderService{order: order}
	engine := commandEngine(&stubProductService{}, orderSvc)

	productID := uuid.New()
	body := `{"customerId":"` + uuid.NewString() + `","items":[{"productId":"` + productID.String() + `","quantity":3}]}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, orderSvc.gotLines, 1)
	assert.Equal(t, productID, orderSvc.gotLines[0].ProductID)
	assert.Equal(t, 3, orderSvc.gotLines[0].Quantity)
	assert.Nil(t, orderSvc.gotLines[0].Price)
}

func TestCreateOrderInsufficientStock(t *testing.T) {
	engine := commandEngine(&stubProductService{}, &stubOrderService{err: repository.ErrInsufficientStock})

	body := `{"customerId":"` + uuid.NewString() + `","items":[{"productId":"` + uuid.NewString() + `","quantity":5}]}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateOrderProductNotFound(t *testing.T) {
	engine := commandEngine(&stubProductService{}, &stubOrderService{err: repository.ErrProductNotFound})

	body := `{"customerId":"` + uuid.NewString() + `","items":[{"productId":"` + uuid.NewString() + `","quantity":1}]}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateOrderValidation(t *testing.T) {
	engine := commandEngine(&stubProductService{}, &stubOrderService{})

	for name, body := range map[string]string{
		"empty items":   `{"customerId":"` + uuid.NewString() + `","items":[]}`,
		"no customer":   `{"items":[{"productId":"` + uuid.NewString() + `","quantity":1}]}`,
		"zero quantity": `{"customerId":"` + uuid.NewString() + `","items":[{"productId":"` + uuid.NewString() + `","quantity":0}]}`,
		"bad product":   `{"customerId":"` + uuid.NewString() + `","items":[{"productId":"nope","quantity":1}]}`,
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
		engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, name)
	}
}

func TestCreateOrderIdempotentReplay(t *testing.T) {
	order := entity.Order{ID: uuid.New(), Total: 30.0, Status: entity.OrderStatusCompleted}
	orderSvc := &stubOrderService{order: order, alreadyExist: true}
	engine := commandEngine(&stubProductService{}, orderSvc)

	body := `{"customerId":"` + uuid.NewString() + `","items":[{"productId":"` + uuid.NewString() + `","quantity":1}]}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	req.Header.Set("Idempotency-Key", "retry-123")
	engine.ServeHTTP(w, req)

	// Replay of a previously-committed request: 200, same order id.
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "retry-123", orderSvc.gotKey)
}

func TestHealthz(t *testing.T) {
	engine := commandEngine(&stubProductService{}, &stubOrderService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
