package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/wms/backend/internal/domain/report"
)

// GormStockReportRepository implements StockReportRepository using GORM
type GormStockReportRepository struct {
	db *gorm.DB
}

// NewGormStockReportRepository creates a new GormStockReportRepository
func NewGormStockReportRepository(db *gorm.DB) *GormStockReportRepository {
	return &GormStockReportRepository{db: db}
}

var _ report.StockReportRepository = (*GormStockReportRepository)(nil)

// GetStockSummary returns aggregated stock statistics
func (r *GormStockReportRepository) GetStockSummary(ctx context.Context, warehouseID *uuid.UUID) (*report.StockSummary, error) {
	type summaryResult struct {
		TotalItems      int64
		TotalQuantity   int64
		TotalValue      decimal.Decimal
		ActiveCount     int64
		OutOfStockCount int64
		InactiveCount   int64
	}

	var result summaryResult

	query := r.db.WithContext(ctx).Table("inventory_items").
		Select(`
			COUNT(*) as total_items,
			COALESCE(SUM(quantity), 0) as total_quantity,
			COALESCE(SUM(quantity * unit_cost), 0) as total_value,
			SUM(CASE WHEN status = 'active' THEN 1 ELSE 0 END) as active_count,
			SUM(CASE WHEN status = 'out_of_stock' THEN 1 ELSE 0 END) as out_of_stock_count,
			SUM(CASE WHEN status = 'inactive' THEN 1 ELSE 0 END) as inactive_count
		`)

	if warehouseID != nil {
		query = query.Where("warehouse_id = ?", *warehouseID)
	}

	if err := query.Scan(&result).Error; err != nil {
		return nil, err
	}

	return &report.StockSummary{
		TotalItems:      result.TotalItems,
		TotalQuantity:   result.TotalQuantity,
		TotalValue:      result.TotalValue,
		ActiveCount:     result.ActiveCount,
		OutOfStockCount: result.OutOfStockCount,
		InactiveCount:   result.InactiveCount,
	}, nil
}

// GetStockValueByWarehouse returns stock value grouped by warehouse
func (r *GormStockReportRepository) GetStockValueByWarehouse(ctx context.Context) ([]report.StockValueByWarehouse, error) {
	type rowResult struct {
		WarehouseID   uuid.UUID
		ItemCount     int64
		TotalQuantity int64
		TotalValue    decimal.Decimal
	}

	var rows []rowResult

	err := r.db.WithContext(ctx).Table("inventory_items").
		Select(`
			warehouse_id,
			COUNT(*) as item_count,
			COALESCE(SUM(quantity), 0) as total_quantity,
			COALESCE(SUM(quantity * unit_cost), 0) as total_value
		`).
		Group("warehouse_id").
		Order("total_value DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	grandTotal := decimal.Zero
	for _, row := range rows {
		grandTotal = grandTotal.Add(row.TotalValue)
	}

	results := make([]report.StockValueByWarehouse, 0, len(rows))
	hundred := decimal.NewFromInt(100)
	for _, row := range rows {
		pct := decimal.Zero
		if grandTotal.GreaterThan(decimal.Zero) {
			pct = row.TotalValue.Mul(hundred).Div(grandTotal).Round(2)
		}
		results = append(results, report.StockValueByWarehouse{
			WarehouseID:   row.WarehouseID,
			ItemCount:     row.ItemCount,
			TotalQuantity: row.TotalQuantity,
			TotalValue:    row.TotalValue,
			Percentage:    pct,
		})
	}

	return results, nil
}

// GetLowStockItems returns items with quantity at or below the threshold
func (r *GormStockReportRepository) GetLowStockItems(ctx context.Context, threshold int64, limit int) ([]report.LowStockItem, error) {
	var results []report.LowStockItem

	err := r.db.WithContext(ctx).Table("inventory_items").
		Select("id as item_id, item_code, product_id, warehouse_id, quantity").
		Where("status != ?", "inactive").
		Where("quantity <= ?", threshold).
		Order("quantity ASC, item_code ASC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	return results, nil
}
