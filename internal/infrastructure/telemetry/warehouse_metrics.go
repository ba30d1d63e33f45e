// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// WarehouseMetrics tracks inventory health and fulfillment throughput.
// Gauge values are refreshed by a periodic collector that queries
// aggregated state through a WarehouseMetricsProvider.
type WarehouseMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	stockQuantity     *Gauge
	outOfStockItems   *Gauge
	shipmentsByStatus *Gauge

	stopChan    chan struct{}
	stopOnce    sync.Once
	collectOnce sync.Once

	provider WarehouseMetricsProvider
}

// WarehouseMetricsProvider provides aggregated warehouse state for periodic
// metrics collection. The interface keeps the telemetry layer from depending
// on the inventory and fulfillment domains directly.
type WarehouseMetricsProvider interface {
	// GetQuantityByWarehouse returns total on-hand quantity per warehouse
	GetQuantityByWarehouse(ctx context.Context) (map[uuid.UUID]int64, error)

	// CountOutOfStockItems returns the number of items currently out of stock
	CountOutOfStockItems(ctx context.Context) (int64, error)

	// CountShipmentsByStatus returns shipment counts grouped by status
	CountShipmentsByStatus(ctx context.Context) (map[string]int64, error)
}

// WarehouseMetricsConfig holds configuration for warehouse metrics.
type WarehouseMetricsConfig struct {
	Meter    metric.Meter
	Logger   *zap.Logger
	Provider WarehouseMetricsProvider
}

// NewWarehouseMetrics creates a new WarehouseMetrics instance.
func NewWarehouseMetrics(cfg WarehouseMetricsConfig) (*WarehouseMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	wm := &WarehouseMetrics{
		meter:    cfg.Meter,
		logger:   logger,
		stopChan: make(chan struct{}),
		provider: cfg.Provider,
	}

	var err error

	wm.stockQuantity, err = NewGauge(
		cfg.Meter,
		"wms_inventory_quantity",
		"Current on-hand inventory quantity per warehouse",
		"{units}",
	)
	if err != nil {
		return nil, err
	}

	wm.outOfStockItems, err = NewGauge(
		cfg.Meter,
		"wms_inventory_out_of_stock_items",
		"Number of inventory items currently out of stock",
		"{items}",
	)
	if err != nil {
		return nil, err
	}

	wm.shipmentsByStatus, err = NewGauge(
		cfg.Meter,
		"wms_shipments_by_status",
		"Number of shipments per lifecycle status",
		"{shipments}",
	)
	if err != nil {
		return nil, err
	}

	return wm, nil
}

// RecordStockQuantity records the current on-hand quantity for a warehouse.
func (wm *WarehouseMetrics) RecordStockQuantity(ctx context.Context, warehouseID uuid.UUID, quantity int64) {
	wm.stockQuantity.Record(ctx, quantity,
		AttrWarehouseID.String(warehouseID.String()),
	)
}

// RecordOutOfStockItems records the number of items currently out of stock.
func (wm *WarehouseMetrics) RecordOutOfStockItems(ctx context.Context, count int64) {
	wm.outOfStockItems.Record(ctx, count)
}

// RecordShipmentStatusCount records the number of shipments in a given status.
func (wm *WarehouseMetrics) RecordShipmentStatusCount(ctx context.Context, status string, count int64) {
	wm.shipmentsByStatus.Record(ctx, count,
		AttrShipmentStatus.String(status),
	)
}

// StartPeriodicCollection starts periodic collection of gauge metrics.
// This is non-blocking - use Stop() to stop collection.
func (wm *WarehouseMetrics) StartPeriodicCollection(ctx context.Context, interval time.Duration) {
	wm.collectOnce.Do(func() {
		if interval <= 0 {
			interval = time.Minute
		}

		go wm.runPeriodicCollection(ctx, interval)
	})
}

// runPeriodicCollection runs the periodic collection loop.
func (wm *WarehouseMetrics) runPeriodicCollection(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Collect immediately on start
	wm.collect(ctx)

	for {
		select {
		case <-wm.stopChan:
			wm.logger.Info("Stopping periodic warehouse metrics collection")
			return
		case <-ctx.Done():
			wm.logger.Info("Context cancelled, stopping periodic warehouse metrics collection")
			return
		case <-ticker.C:
			wm.collect(ctx)
		}
	}
}

// collect refreshes all gauge metrics from the provider.
func (wm *WarehouseMetrics) collect(ctx context.Context) {
	if wm.provider == nil {
		wm.logger.Debug("No metrics provider configured, skipping warehouse metrics collection")
		return
	}

	quantityByWarehouse, err := wm.provider.GetQuantityByWarehouse(ctx)
	if err != nil {
		wm.logger.Warn("Failed to get inventory quantity by warehouse", zap.Error(err))
	} else {
		for warehouseID, quantity := range quantityByWarehouse {
			wm.RecordStockQuantity(ctx, warehouseID, quantity)
		}
	}

	outOfStock, err := wm.provider.CountOutOfStockItems(ctx)
	if err != nil {
		wm.logger.Warn("Failed to count out of stock items", zap.Error(err))
	} else {
		wm.RecordOutOfStockItems(ctx, outOfStock)
	}

	shipmentCounts, err := wm.provider.CountShipmentsByStatus(ctx)
	if err != nil {
		wm.logger.Warn("Failed to count shipments by status", zap.Error(err))
	} else {
		for status, count := range shipmentCounts {
			wm.RecordShipmentStatusCount(ctx, status, count)
		}
	}
}

// Stop stops the periodic collection.
func (wm *WarehouseMetrics) Stop() {
	wm.stopOnce.Do(func() {
		close(wm.stopChan)
	})
}

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewWarehouseMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}
