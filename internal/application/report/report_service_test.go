package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wms/backend/internal/domain/report"
	"github.com/wms/backend/internal/infrastructure/cache"
)

// MockStockReportRepository is a mock implementation of report.StockReportRepository
type MockStockReportRepository struct {
	mock.Mock
}

func (m *MockStockReportRepository) GetStockSummary(ctx context.Context, warehouseID *uuid.UUID) (*report.StockSummary, error) {
	args := m.Called(ctx, warehouseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.StockSummary), args.Error(1)
}

func (m *MockStockReportRepository) GetStockValueByWarehouse(ctx context.Context) ([]report.StockValueByWarehouse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]report.StockValueByWarehouse), args.Error(1)
}

func (m *MockStockReportRepository) GetLowStockItems(ctx context.Context, threshold int64, limit int) ([]report.LowStockItem, error) {
	args := m.Called(ctx, threshold, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]report.LowStockItem), args.Error(1)
}

// MockFulfillmentReportRepository is a mock implementation of report.FulfillmentReportRepository
type MockFulfillmentReportRepository struct {
	mock.Mock
}

func (m *MockFulfillmentReportRepository) GetFulfillmentSummary(ctx context.Context) (*report.FulfillmentSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.FulfillmentSummary), args.Error(1)
}

func (m *MockFulfillmentReportRepository) GetDailyShipmentVolume(ctx context.Context, from, to time.Time) ([]report.DailyShipmentVolume, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]report.DailyShipmentVolume), args.Error(1)
}

var _ report.StockReportRepository = (*MockStockReportRepository)(nil)
var _ report.FulfillmentReportRepository = (*MockFulfillmentReportRepository)(nil)

func newReportFixture() (*Service, *MockStockReportRepository, *MockFulfillmentReportRepository) {
	stockRepo := new(MockStockReportRepository)
	fulfillmentRepo := new(MockFulfillmentReportRepository)
	service := NewService(stockRepo, fulfillmentRepo, cache.NewInMemoryReportCache(), zap.NewNop())
	return service, stockRepo, fulfillmentRepo
}

func TestService_GetStockSummary(t *testing.T) {
	ctx := context.Background()

	t.Run("returns summary from repository", func(t *testing.T) {
		service, stockRepo, _ := newReportFixture()
		summary := &report.StockSummary{
			TotalItems:    12,
			TotalQuantity: 340,
			TotalValue:    decimal.NewFromInt(9000),
		}
		stockRepo.On("GetStockSummary", ctx, (*uuid.UUID)(nil)).Return(summary, nil).Once()

		resp := service.GetStockSummary(ctx, nil)

		require.NotNil(t, resp.Summary)
		assert.False(t, resp.Degraded)
		assert.Equal(t, int64(12), resp.Summary.TotalItems)
	})

	t.Run("storage failure degrades instead of erroring", func(t *testing.T) {
		service, stockRepo, _ := newReportFixture()
		stockRepo.On("GetStockSummary", ctx, (*uuid.UUID)(nil)).
			Return(nil, errors.New("connection refused")).Once()

		resp := service.GetStockSummary(ctx, nil)

		require.NotNil(t, resp.Summary)
		assert.True(t, resp.Degraded)
		assert.Equal(t, int64(0), resp.Summary.TotalItems)
	})

	t.Run("second call within TTL is served from cache", func(t *testing.T) {
		service, stockRepo, _ := newReportFixture()
		summary := &report.StockSummary{TotalItems: 5}
		stockRepo.On("GetStockSummary", ctx, (*uuid.UUID)(nil)).Return(summary, nil).Once()

		first := service.GetStockSummary(ctx, nil)
		second := service.GetStockSummary(ctx, nil)

		assert.Equal(t, first.Summary.TotalItems, second.Summary.TotalItems)
		stockRepo.AssertNumberOfCalls(t, "GetStockSummary", 1)
	})

	t.Run("degraded payloads are never cached", func(t *testing.T) {
		service, stockRepo, _ := newReportFixture()
		stockRepo.On("GetStockSummary", ctx, (*uuid.UUID)(nil)).
			Return(nil, errors.New("connection refused")).Once()
		stockRepo.On("GetStockSummary", ctx, (*uuid.UUID)(nil)).
			Return(&report.StockSummary{TotalItems: 3}, nil).Once()

		first := service.GetStockSummary(ctx, nil)
		second := service.GetStockSummary(ctx, nil)

		assert.True(t, first.Degraded)
		assert.False(t, second.Degraded)
		assert.Equal(t, int64(3), second.Summary.TotalItems)
	})
}

func TestService_GetStockByWarehouse(t *testing.T) {
	ctx := context.Background()

	t.Run("no rows is an empty report, not degraded", func(t *testing.T) {
		service, stockRepo, _ := newReportFixture()
		stockRepo.On("GetStockValueByWarehouse", ctx).Return([]report.StockValueByWarehouse{}, nil).Once()

		resp := service.GetStockByWarehouse(ctx)

		assert.False(t, resp.Degraded)
		assert.Empty(t, resp.Warehouses)
	})

	t.Run("failure yields empty degraded payload", func(t *testing.T) {
		service, stockRepo, _ := newReportFixture()
		stockRepo.On("GetStockValueByWarehouse", ctx).Return(nil, errors.New("timeout")).Once()

		resp := service.GetStockByWarehouse(ctx)

		assert.True(t, resp.Degraded)
		assert.NotNil(t, resp.Warehouses)
		assert.Empty(t, resp.Warehouses)
	})
}

func TestService_GetFulfillmentSummary(t *testing.T) {
	ctx := context.Background()

	t.Run("returns counts by status", func(t *testing.T) {
		service, _, fulfillmentRepo := newReportFixture()
		fulfillmentRepo.On("GetFulfillmentSummary", ctx).Return(&report.FulfillmentSummary{
			TotalShipments: 7,
			ByStatus:       map[string]int64{"processing": 4, "shipped": 3},
		}, nil).Once()

		resp := service.GetFulfillmentSummary(ctx)

		assert.False(t, resp.Degraded)
		assert.Equal(t, int64(4), resp.Summary.ByStatus["processing"])
	})

	t.Run("failure degrades with empty counts", func(t *testing.T) {
		service, _, fulfillmentRepo := newReportFixture()
		fulfillmentRepo.On("GetFulfillmentSummary", ctx).Return(nil, errors.New("down")).Once()

		resp := service.GetFulfillmentSummary(ctx)

		assert.True(t, resp.Degraded)
		assert.NotNil(t, resp.Summary.ByStatus)
	})
}

func TestService_GetLowStockItems(t *testing.T) {
	ctx := context.Background()

	t.Run("clamps limit into range", func(t *testing.T) {
		service, stockRepo, _ := newReportFixture()
		stockRepo.On("GetLowStockItems", ctx, int64(5), 50).Return([]report.LowStockItem{}, nil).Once()

		resp := service.GetLowStockItems(ctx, 5, 0)

		assert.False(t, resp.Degraded)
		stockRepo.AssertExpectations(t)
	})
}
