// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormWarehouseMetricsProvider implements WarehouseMetricsProvider using GORM.
// It queries the inventory_items and shipments tables directly for aggregates.
type GormWarehouseMetricsProvider struct {
	db *gorm.DB
}

// NewGormWarehouseMetricsProvider creates a new GormWarehouseMetricsProvider.
func NewGormWarehouseMetricsProvider(db *gorm.DB) *GormWarehouseMetricsProvider {
	return &GormWarehouseMetricsProvider{db: db}
}

// GetQuantityByWarehouse returns total on-hand quantity per warehouse.
func (p *GormWarehouseMetricsProvider) GetQuantityByWarehouse(ctx context.Context) (map[uuid.UUID]int64, error) {
	type result struct {
		WarehouseID uuid.UUID `gorm:"column:warehouse_id"`
		Quantity    int64     `gorm:"column:quantity"`
	}

	var results []result
	err := p.db.WithContext(ctx).
		Table("inventory_items").
		Select("warehouse_id, COALESCE(SUM(quantity), 0) as quantity").
		Group("warehouse_id").
		Find(&results).Error

	if err != nil {
		return nil, err
	}

	m := make(map[uuid.UUID]int64, len(results))
	for _, r := range results {
		m[r.WarehouseID] = r.Quantity
	}

	return m, nil
}

// CountOutOfStockItems returns the number of items currently out of stock.
func (p *GormWarehouseMetricsProvider) CountOutOfStockItems(ctx context.Context) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).
		Table("inventory_items").
		Where("status = ?", "out_of_stock").
		Count(&count).Error

	return count, err
}

// CountShipmentsByStatus returns shipment counts grouped by status.
func (p *GormWarehouseMetricsProvider) CountShipmentsByStatus(ctx context.Context) (map[string]int64, error) {
	type result struct {
		Status string `gorm:"column:status"`
		Count  int64  `gorm:"column:count"`
	}

	var results []result
	err := p.db.WithContext(ctx).
		Table("shipments").
		Select("status, COUNT(*) as count").
		Group("status").
		Find(&results).Error

	if err != nil {
		return nil, err
	}

	m := make(map[string]int64, len(results))
	for _, r := range results {
		m[r.Status] = r.Count
	}

	return m, nil
}

// Ensure GormWarehouseMetricsProvider implements WarehouseMetricsProvider
var _ WarehouseMetricsProvider = (*GormWarehouseMetricsProvider)(nil)
