package telemetry_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap"

	"github.com/wms/backend/internal/infrastructure/telemetry"
)

func TestNewWarehouseMetrics(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")

	wm, err := telemetry.NewWarehouseMetrics(telemetry.WarehouseMetricsConfig{
		Meter:  meter,
		Logger: zap.NewNop(),
	})

	require.NoError(t, err)
	require.NotNil(t, wm)
}

func TestNewWarehouseMetrics_NilMeter(t *testing.T) {
	wm, err := telemetry.NewWarehouseMetrics(telemetry.WarehouseMetricsConfig{
		Meter:  nil,
		Logger: zap.NewNop(),
	})

	require.Error(t, err)
	assert.Nil(t, wm)
	assert.Equal(t, "NewWarehouseMetrics: meter cannot be nil", err.Error())
}

func TestWarehouseMetrics_RecordStockQuantity(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	wm, err := telemetry.NewWarehouseMetrics(telemetry.WarehouseMetricsConfig{
		Meter: meter,
	})
	require.NoError(t, err)

	ctx := context.Background()
	warehouseID := uuid.New()

	// Should not panic
	wm.RecordStockQuantity(ctx, warehouseID, 250)
	wm.RecordStockQuantity(ctx, warehouseID, 0)
}

func TestWarehouseMetrics_RecordShipmentStatusCount(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	wm, err := telemetry.NewWarehouseMetrics(telemetry.WarehouseMetricsConfig{
		Meter: meter,
	})
	require.NoError(t, err)

	ctx := context.Background()

	// Should not panic
	wm.RecordShipmentStatusCount(ctx, "processing", 12)
	wm.RecordShipmentStatusCount(ctx, "shipped", 3)
	wm.RecordOutOfStockItems(ctx, 2)
}

// Mock provider for testing periodic collection

type mockWarehouseMetricsProvider struct {
	quantityByWarehouse map[uuid.UUID]int64
	outOfStock          int64
	shipmentCounts      map[string]int64
	err                 error
}

func (m *mockWarehouseMetricsProvider) GetQuantityByWarehouse(ctx context.Context) (map[uuid.UUID]int64, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.quantityByWarehouse, nil
}

func (m *mockWarehouseMetricsProvider) CountOutOfStockItems(ctx context.Context) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.outOfStock, nil
}

func (m *mockWarehouseMetricsProvider) CountShipmentsByStatus(ctx context.Context) (map[string]int64, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.shipmentCounts, nil
}

func TestWarehouseMetrics_PeriodicCollection(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")

	provider := &mockWarehouseMetricsProvider{
		quantityByWarehouse: map[uuid.UUID]int64{
			uuid.New(): 100,
		},
		outOfStock: 5,
		shipmentCounts: map[string]int64{
			"processing": 7,
			"shipped":    2,
		},
	}

	wm, err := telemetry.NewWarehouseMetrics(telemetry.WarehouseMetricsConfig{
		Meter:    meter,
		Logger:   zap.NewNop(),
		Provider: provider,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start periodic collection with short interval for testing
	wm.StartPeriodicCollection(ctx, 100*time.Millisecond)

	// Wait for at least one collection cycle
	time.Sleep(150 * time.Millisecond)

	wm.Stop()
}

func TestWarehouseMetrics_PeriodicCollection_NoProvider(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")

	wm, err := telemetry.NewWarehouseMetrics(telemetry.WarehouseMetricsConfig{
		Meter:  meter,
		Logger: zap.NewNop(),
		// No provider
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Should not panic with no provider
	wm.StartPeriodicCollection(ctx, 50*time.Millisecond)

	time.Sleep(100 * time.Millisecond)
	wm.Stop()
}

func TestWarehouseMetrics_Stop_Idempotent(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	wm, err := telemetry.NewWarehouseMetrics(telemetry.WarehouseMetricsConfig{
		Meter: meter,
	})
	require.NoError(t, err)

	// Calling Stop multiple times should not panic
	wm.Stop()
	wm.Stop()
	wm.Stop()
}

func TestWarehouseMetrics_StartPeriodicCollection_OnlyOnce(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	wm, err := telemetry.NewWarehouseMetrics(telemetry.WarehouseMetricsConfig{
		Meter:  meter,
		Logger: zap.NewNop(),
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Calling StartPeriodicCollection multiple times should only start once
	wm.StartPeriodicCollection(ctx, time.Hour)
	wm.StartPeriodicCollection(ctx, time.Minute)
	wm.StartPeriodicCollection(ctx, time.Second)

	wm.Stop()
}

func TestMetricsError_Error(t *testing.T) {
	err := &telemetry.MetricsError{
		Op:  "TestOperation",
		Err: "test error message",
	}

	assert.Equal(t, "TestOperation: test error message", err.Error())
}
