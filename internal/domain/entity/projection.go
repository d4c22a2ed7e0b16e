package entity

import (
	"time"

	"github.com/google/uuid"
)

// Projection rows are monotonically-accumulating aggregates. They are only
// ever written through the ledger-gated consumer path; the upserts themselves
// are additive and not independently idempotent.

type CustomerLTV struct {
	CustomerID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	TotalSpent    float64   `gorm:"type:numeric(14,2);not null"`
	OrderCount    int64     `gorm:"not null"`
	LastOrderDate time.Time `gorm:"not null"`
}

func (CustomerLTV) TableName() string {
	return "customer_ltv_view"
}

type HourlySales struct {
	HourTimestamp time.Time `gorm:"primaryKey"`
	TotalOrders   int64     `gorm:"not null"`
	TotalRevenue  float64   `gorm:"type:numeric(14,2);not null"`
}

func (HourlySales) TableName() string {
	return "hourly_sales_view"
}

type ProductSales struct {
	ProductID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	TotalQuantitySold int64     `gorm:"not null"`
	TotalRevenue      float64   `gorm:"type:numeric(14,2);not null"`
	OrderCount        int64     `gorm:"not null"`
}

func (ProductSales) TableName() string {
	return "product_sales_view"
}

type CategoryMetrics struct {
	CategoryName string  `gorm:"primaryKey"`
	TotalRevenue float64 `gorm:"type:numeric(14,2);not null"`
	TotalOrders  int64   `gorm:"not null"`
}

func (CategoryMetrics) TableName() string {
	return "category_metrics_view"
}
