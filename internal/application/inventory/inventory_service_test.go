package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wms/backend/internal/domain/inventory"
	"github.com/wms/backend/internal/domain/shared"
)

// MockInventoryItemRepository is a mock implementation of inventory.InventoryItemRepository
type MockInventoryItemRepository struct {
	mock.Mock
}

func (m *MockInventoryItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.InventoryItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.InventoryItem), args.Error(1)
}

func (m *MockInventoryItemRepository) FindByItemCode(ctx context.Context, itemCode string) (*inventory.InventoryItem, error) {
	args := m.Called(ctx, itemCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.InventoryItem), args.Error(1)
}

func (m *MockInventoryItemRepository) FindTopByProduct(ctx context.Context, productID uuid.UUID) (*inventory.InventoryItem, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.InventoryItem), args.Error(1)
}

func (m *MockInventoryItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.InventoryItem, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]inventory.InventoryItem), args.Error(1)
}

func (m *MockInventoryItemRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInventoryItemRepository) Save(ctx context.Context, item *inventory.InventoryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockInventoryItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockInventoryItemRepository) DecrementQuantity(ctx context.Context, id uuid.UUID, quantity int64) error {
	args := m.Called(ctx, id, quantity)
	return args.Error(0)
}

func (m *MockInventoryItemRepository) SumStockValue(ctx context.Context, warehouseID *uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, warehouseID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

var _ inventory.InventoryItemRepository = (*MockInventoryItemRepository)(nil)

func newTestItem(t *testing.T, quantity int64) *inventory.InventoryItem {
	t.Helper()
	item, err := inventory.NewInventoryItem("SKU-001", uuid.New(), uuid.New(), quantity)
	require.NoError(t, err)
	return item
}

func TestService_AdjustQuantity(t *testing.T) {
	ctx := context.Background()

	t.Run("subtract clamps at zero and flips status", func(t *testing.T) {
		repo := new(MockInventoryItemRepository)
		service := NewService(repo)
		item := newTestItem(t, 3)

		repo.On("FindByID", ctx, item.ID).Return(item, nil).Once()
		repo.On("Save", ctx, item).Return(nil).Once()

		resp, err := service.AdjustQuantity(ctx, item.ID, AdjustQuantityRequest{Quantity: 10, Operation: "subtract"})

		require.NoError(t, err)
		assert.Equal(t, int64(0), resp.Quantity)
		assert.Equal(t, string(inventory.ItemStatusOutOfStock), resp.Status)
		repo.AssertExpectations(t)
	})

	t.Run("add restores out_of_stock item", func(t *testing.T) {
		repo := new(MockInventoryItemRepository)
		service := NewService(repo)
		item := newTestItem(t, 0)

		repo.On("FindByID", ctx, item.ID).Return(item, nil).Once()
		repo.On("Save", ctx, item).Return(nil).Once()

		resp, err := service.AdjustQuantity(ctx, item.ID, AdjustQuantityRequest{Quantity: 5, Operation: "add"})

		require.NoError(t, err)
		assert.Equal(t, int64(5), resp.Quantity)
		assert.Equal(t, string(inventory.ItemStatusActive), resp.Status)
	})

	t.Run("set replaces quantity", func(t *testing.T) {
		repo := new(MockInventoryItemRepository)
		service := NewService(repo)
		item := newTestItem(t, 3)

		repo.On("FindByID", ctx, item.ID).Return(item, nil).Once()
		repo.On("Save", ctx, item).Return(nil).Once()

		resp, err := service.AdjustQuantity(ctx, item.ID, AdjustQuantityRequest{Quantity: 42, Operation: "set"})

		require.NoError(t, err)
		assert.Equal(t, int64(42), resp.Quantity)
	})

	t.Run("rejects unknown operation without loading the item", func(t *testing.T) {
		repo := new(MockInventoryItemRepository)
		service := NewService(repo)

		_, err := service.AdjustQuantity(ctx, uuid.New(), AdjustQuantityRequest{Quantity: 1, Operation: "increment"})

		require.Error(t, err)
		repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("missing item yields not found", func(t *testing.T) {
		repo := new(MockInventoryItemRepository)
		service := NewService(repo)
		id := uuid.New()

		repo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound).Once()

		_, err := service.AdjustQuantity(ctx, id, AdjustQuantityRequest{Quantity: 1, Operation: "add"})
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates item with unit cost", func(t *testing.T) {
		repo := new(MockInventoryItemRepository)
		service := NewService(repo)

		repo.On("Save", ctx, mock.AnythingOfType("*inventory.InventoryItem")).Return(nil).Once()

		resp, err := service.Create(ctx, CreateItemRequest{
			ItemCode:    "SKU-010",
			ProductID:   uuid.New(),
			WarehouseID: uuid.New(),
			Quantity:    4,
			UnitCost:    decimal.NewFromFloat(1.25),
		})

		require.NoError(t, err)
		assert.Equal(t, "SKU-010", resp.ItemCode)
		assert.True(t, resp.StockValue.Equal(decimal.NewFromInt(5)))
	})

	t.Run("rejects invalid item", func(t *testing.T) {
		repo := new(MockInventoryItemRepository)
		service := NewService(repo)

		_, err := service.Create(ctx, CreateItemRequest{ItemCode: "", ProductID: uuid.New(), WarehouseID: uuid.New()})
		assert.Error(t, err)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to most recently updated first", func(t *testing.T) {
		repo := new(MockInventoryItemRepository)
		service := NewService(repo)
		var captured shared.Filter

		repo.On("FindAll", ctx, mock.AnythingOfType("shared.Filter")).
			Run(func(args mock.Arguments) { captured = args.Get(1).(shared.Filter) }).
			Return([]inventory.InventoryItem{}, nil).Once()
		repo.On("Count", ctx, mock.AnythingOfType("shared.Filter")).Return(int64(0), nil).Once()

		_, _, err := service.List(ctx, ItemListFilter{})

		require.NoError(t, err)
		assert.Equal(t, "updated_at", captured.OrderBy)
		assert.Equal(t, "desc", captured.OrderDir)
	})
}
