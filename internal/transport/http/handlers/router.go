package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type CommandRouter struct {
	handler *CommandHandler
}

func NewCommandRouter(handler *CommandHandler) *CommandRouter {
	return &CommandRouter{handler: handler}
}

func (r *CommandRouter) RegisterRoutes(engine *gin.Engine, idempotency gin.HandlerFunc) {
	engine.GET("/healthz", r.handler.health)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := engine.Group("/api")
	api.POST("/products", r.handler.createProduct)
	api.GET("/products", r.handler.listProducts)
	api.GET("/products/:id", r.handler.getProduct)
	api.POST("/orders", idempotency, r.handler.createOrder)
}

type AnalyticsRouter struct {
	handler *AnalyticsHandler
}

func NewAnalyticsRouter(handler *AnalyticsHandler) *AnalyticsRouter {
	return &AnalyticsRouter{handler: handler}
}

func (r *AnalyticsRouter) RegisterRoutes(engine *gin.Engine) {
	engine.GET("/healthz", r.handler.health)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	analytics := engine.Group("/api/analytics")
	analytics.GET("/products/:productId/sales", r.handler.productSales)
	analytics.GET("/categories/:category/revenue", r.handler.categoryRevenue)
	analytics.GET("/customers/:customerId/lifetime-value", r.handler.customerLifetimeValue)
	analytics.GET("/hourly-sales", r.handler.hourlySales)
	analytics.GET("/sync-status", r.handler.syncStatus)
}
