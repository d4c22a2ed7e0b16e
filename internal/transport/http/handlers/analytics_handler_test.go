package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Umeshh27/Event-Driven-Analytics/internal/domain/entity"
	"github.com/Umeshh27/Event-Driven-Analytics/internal/domain/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAnalyticsService struct {
	productSales entity.ProductSales
	category     entity.CategoryMetrics
	customer     entity.CustomerLTV
	hourly       entity.HourlySales
	syncStatus   service.SyncStatus
}

func (s *stubAnalyticsService) ProductSales(ctx context.Context, productID uuid.UUID) (entity.ProductSales, error) {
	if s.productSales.ProductID == uuid.Nil {
		return entity.ProductSales{ProductID: productID}, nil
	}
	return s.productSales, nil
}

func (s *stubAnalyticsService) CategoryRevenue(ctx context.Context, category string) (entity.CategoryMetrics, error) {
	if s.category.CategoryName == "" {
		return entity.CategoryMetrics{CategoryName: category}, nil
	}
	return s.category, nil
}

func (s *stubAnalyticsService) CustomerLifetimeValue(ctx context.Context, customerID uuid.UUID) (entity.CustomerLTV, error) {
	if s.customer.CustomerID == uuid.Nil {
		return entity.CustomerLTV{CustomerID: customerID}, nil
	}
	return s.customer, nil
}

func (s *stubAnalyticsService) HourlySales(ctx context.Context, at time.Time) (entity.HourlySales, error) {
	if s.hourly.HourTimestamp.IsZero() {
		return entity.HourlySales{HourTimestamp: at.UTC().Truncate(time.Hour)}, nil
	}
	return s.hourly, nil
}

func (s *stubAnalyticsService) SyncStatus(ctx context.Context) (service.SyncStatus, error) {
	return s.syncStatus, nil
}

func analyticsEngine(svc *stubAnalyticsService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	NewAnalyticsRouter(NewAnalyticsHandler(svc)).RegisterRoutes(engine)
	return engine
}

func TestProductSales(t *testing.T) {
	productID := uuid.New()
	engine := analyticsEngine(&stubAnalyticsService{
		productSales: entity.ProductSales{
			ProductID:         productID,
			TotalQuantitySold: 3,
			TotalRevenue:      30.0,
			OrderCount:        1,
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/analytics/products/"+productID.String()+"/sales", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data productSalesResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(3), resp.Data.TotalQuantitySold)
	assert.Equal(t, 30.0, resp.Data.TotalRevenue)
	assert.Equal(t, int64(1), resp.Data.OrderCount)
}

func TestProductSalesZeroDefault(t *testing.T) {
	engine := analyticsEngine(&stubAnalyticsService{})

	productID := uuid.New()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/analytics/products/"+productID.String()+"/sales", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data productSalesResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, productID, resp.Data.ProductID)
	assert.Zero(t, resp.Data.TotalQuantitySold)
	assert.Zero(t, resp.Data.TotalRevenue)
	assert.Zero(t, resp.Data.OrderCount)
}

func TestProductSalesRejectsBadID(t *testing.T) {
	engine := analyticsEngine(&stubAnalyticsService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/analytics/products/not-a-uuid/sales", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCustomerLifetimeValueZeroDefault(t *testing.T) {
	engine := analyticsEngine(&stubAnalyticsService{})

	customerID := uuid.New()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/analytics/customers/"+customerID.String()+"/lifetime-value", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, customerID.String(), resp.Data["customerId"])
	assert.Equal(t, 0.0, resp.Data["totalSpent"])
	assert.Nil(t, resp.Data["lastOrderDate"])
}

func TestSyncStatusZeroState(t *testing.T) {
	engine := analyticsEngine(&stubAnalyticsService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/analytics/sync-status", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Nil(t, resp.Data["lastProcessedEventTimestamp"])
	assert.Equal(t, 0.0, resp.Data["lagSeconds"])
}

func TestSyncStatusReportsLag(t *testing.T) {
	processedAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	engine := analyticsEngine(&stubAnalyticsService{
		syncStatus: service.SyncStatus{
			LastProcessedEventTimestamp: &processedAt,
			LagSeconds:                  4.5,
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/analytics/sync-status", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data syncStatusResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Data.LastProcessedEventTimestamp)
	assert.True(t, processedAt.Equal(*resp.Data.LastProcessedEventTimestamp))
	assert.Equal(t, 4.5, resp.Data.LagSeconds)
}

func TestHourlySales(t *testing.T) {
	bucket := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	engine := analyticsEngine(&stubAnalyticsService{
		hourly: entity.HourlySales{
			HourTimestamp: bucket,
			TotalOrders:   3,
			TotalRevenue:  120.50,
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/analytics/hourly-sales?hour=2026-03-01T10%3A42%3A00Z", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data hourlySalesResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, bucket.Equal(resp.Data.HourTimestamp))
	assert.Equal(t, int64(3), resp.Data.TotalOrders)
	assert.Equal(t, 120.50, resp.Data.TotalRevenue)
}

func TestHourlySalesDefaultsToCurrentHour(t *testing.T) {
	engine := analyticsEngine(&stubAnalyticsService{})
	before := time.Now().UTC().Truncate(time.Hour)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/analytics/hourly-sales", nil)
	engine.ServeHTTP(w, req)
	after := time.Now().UTC().Truncate(time.Hour)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data hourlySalesResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, before.Equal(resp.Data.HourTimestamp) || after.Equal(resp.Data.HourTimestamp))
	assert.Zero(t, resp.Data.TotalOrders)
}

func TestHourlySalesRejectsBadHour(t *testing.T) {
	engine := analyticsEngine(&stubAnalyticsService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/analytics/hourly-sales?hour=yesterday", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCategoryRevenueZeroDefault(t *testing.T) {
	engine := analyticsEngine(&stubAnalyticsService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/analytics/categories/tools/revenue", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data categoryRevenueResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "tools", resp.Data.Category)
	assert.Zero(t, resp.Data.TotalRevenue)
	assert.Zero(t, resp.Data.TotalOrders)
}
