package report

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockSummary is a read model for aggregate stock statistics
type StockSummary struct {
	TotalItems      int64           `json:"total_items"`
	TotalQuantity   int64           `json:"total_quantity"`
	TotalValue      decimal.Decimal `json:"total_value"`
	ActiveCount     int64           `json:"active_count"`
	OutOfStockCount int64           `json:"out_of_stock_count"`
	InactiveCount   int64           `json:"inactive_count"`
}

// StockValueByWarehouse represents stock value grouped by warehouse
type StockValueByWarehouse struct {
	WarehouseID   uuid.UUID       `json:"warehouse_id"`
	ItemCount     int64           `json:"item_count"`
	TotalQuantity int64           `json:"total_quantity"`
	TotalValue    decimal.Decimal `json:"total_value"`
	Percentage    decimal.Decimal `json:"percentage"` // Share of total value
}

// LowStockItem represents an item at or below its reorder threshold
type LowStockItem struct {
	ItemID      uuid.UUID `json:"item_id"`
	ItemCode    string    `json:"item_code"`
	ProductID   uuid.UUID `json:"product_id"`
	WarehouseID uuid.UUID `json:"warehouse_id"`
	Quantity    int64     `json:"quantity"`
}

// StockReportRepository defines the interface for stock report queries
type StockReportRepository interface {
	// GetStockSummary returns aggregated stock statistics
	GetStockSummary(ctx context.Context, warehouseID *uuid.UUID) (*StockSummary, error)

	// GetStockValueByWarehouse returns stock value grouped by warehouse
	GetStockValueByWarehouse(ctx context.Context) ([]StockValueByWarehouse, error)

	// GetLowStockItems returns items with quantity at or below the threshold
	GetLowStockItems(ctx context.Context, threshold int64, limit int) ([]LowStockItem, error)
}
