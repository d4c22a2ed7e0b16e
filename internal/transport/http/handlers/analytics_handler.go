package handlers

import (
	nethttp "net/http"
	"time"

	"github.com/Umeshh27/Event-Driven-Analytics/internal/domain/service"
	"github.com/Umeshh27/Event-Driven-Analytics/internal/transport/http/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AnalyticsHandler serves the read side directly from the projection tables.
// Absent rows come back as zero-valued aggregates, never as errors.
type AnalyticsHandler struct {
	analytics service.AnalyticsService
}

func NewAnalyticsHandler(analytics service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

type productSalesResponse struct {
	ProductID         uuid.UUID `json:"productId"`
	TotalQuantitySold int64     `json:"totalQuantitySold"`
	TotalRevenue      float64   `json:"totalRevenue"`
	OrderCount        int64     `json:"orderCount"`
}

func (h *AnalyticsHandler) productSales(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		response.RespondError(c, nethttp.StatusBadRequest, "invalid productId")
		return
	}

	row, err := h.analytics.ProductSales(c.Request.Context(), productID)
	if err != nil {
		response.RespondError(c, nethttp.StatusInternalServerError, "lookup failed")
		return
	}
	response.RespondOK(c, nethttp.StatusOK, productSalesResponse{
		ProductID:         row.ProductID,
		TotalQuantitySold: row.TotalQuantitySold,
		TotalRevenue:      row.TotalRevenue,
		OrderCount:        row.OrderCount,
	}, nil)
}

type categoryRevenueResponse struct {
	Category     string  `json:"category"`
	TotalRevenue float64 `json:"totalRevenue"`
	TotalOrders  int64   `json:"totalOrders"`
}

func (h *AnalyticsHandler) categoryRevenue(c *gin.Context) {
	category := c.Param("category")
	if category == "" {
		response.RespondError(c, nethttp.StatusBadRequest, "category is required")
		return
	}

	row, err := h.analytics.CategoryRevenue(c.Request.Context(), category)
	if err != nil {
		response.RespondError(c, nethttp.StatusInternalServerError, "lookup failed")
		return
	}
	response.RespondOK(c, nethttp.StatusOK, categoryRevenueResponse{
		Category:     row.CategoryName,
		TotalRevenue: row.TotalRevenue,
		TotalOrders:  row.TotalOrders,
	}, nil)
}

type customerLTVResponse struct {
	CustomerID    uuid.UUID  `json:"customerId"`
	TotalSpent    float64    `json:"totalSpent"`
	OrderCount    int64      `json:"orderCount"`
	LastOrderDate *time.Time `json:"lastOrderDate"`
}

func (h *AnalyticsHandler) customerLifetimeValue(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("customerId"))
	if err != nil {
		response.RespondError(c, nethttp.StatusBadRequest, "invalid customerId")
		return
	}

	row, err := h.analytics.CustomerLifetimeValue(c.Request.Context(), customerID)
	if err != nil {
		response.RespondError(c, nethttp.StatusInternalServerError, "lookup failed")
		return
	}

	resp := customerLTVResponse{
		CustomerID: row.CustomerID,
		TotalSpent: row.TotalSpent,
		OrderCount: row.OrderCount,
	}
	if !row.LastOrderDate.IsZero() {
		lastOrder := row.LastOrderDate.UTC()
		resp.LastOrderDate = &lastOrder
	}
	response.RespondOK(c, nethttp.StatusOK, resp, nil)
}

type hourlySalesResponse struct {
	HourTimestamp time.Time `json:"hourTimestamp"`
	TotalOrders   int64     `json:"totalOrders"`
	TotalRevenue  float64   `json:"totalRevenue"`
}

// hourlySales reports the bucket containing ?hour= (RFC 3339), or the
// current hour when the parameter is absent.
func (h *AnalyticsHandler) hourlySales(c *gin.Context) {
	at := time.Now().UTC()
	if raw := c.Query("hour"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			response.RespondError(c, nethttp.StatusBadRequest, "invalid hour, expected RFC 3339")
			return
		}
		at = parsed
	}

	row, err := h.analytics.HourlySales(c.Request.Context(), at)
	if err != nil {
		response.RespondError(c, nethttp.StatusInternalServerError, "lookup failed")
		return
	}
	response.RespondOK(c, nethttp.StatusOK, hourlySalesResponse{
		HourTimestamp: row.HourTimestamp,
		TotalOrders:   row.TotalOrders,
		TotalRevenue:  row.TotalRevenue,
	}, nil)
}

type syncStatusResponse struct {
	LastProcessedEventTimestamp *time.Time `json:"lastProcessedEventTimestamp"`
	LagSeconds                  float64    `json:"lagSeconds"`
}

func (h *AnalyticsHandler) syncStatus(c *gin.Context) {
	status, err := h.analytics.SyncStatus(c.Request.Context())
	if err != nil {
		response.RespondError(c, nethttp.StatusInternalServerError, "lookup failed")
		return
	}
	response.RespondOK(c, nethttp.StatusOK, syncStatusResponse{
		LastProcessedEventTimestamp: status.LastProcessedEventTimestamp,
		LagSeconds:                  status.LagSeconds,
	}, nil)
}

func (h *AnalyticsHandler) health(c *gin.Context) {
	response.RespondOK(c, nethttp.StatusOK, gin.H{"status": "ok"}, nil)
}
