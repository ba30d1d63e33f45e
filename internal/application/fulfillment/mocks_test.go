package fulfillment

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/wms/backend/internal/domain/fulfillment"
	"github.com/wms/backend/internal/domain/inventory"
	"github.com/wms/backend/internal/domain/shared"
)

// MockShipmentRepository is a mock implementation of fulfillment.ShipmentRepository
type MockShipmentRepository struct {
	mock.Mock
}

func (m *MockShipmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*fulfillment.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fulfillment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]fulfillment.Shipment, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]fulfillment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockShipmentRepository) Save(ctx context.Context, shipment *fulfillment.Shipment) error {
	args := m.Called(ctx, shipment)
	return args.Error(0)
}

func (m *MockShipmentRepository) SaveWithStatusGuard(ctx context.Context, shipment *fulfillment.Shipment, expected fulfillment.ShipmentStatus) error {
	args := m.Called(ctx, shipment, expected)
	return args.Error(0)
}

func (m *MockShipmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockShipmentRepository) CreateIfAbsent(ctx context.Context, shipment *fulfillment.Shipment) (bool, error) {
	args := m.Called(ctx, shipment)
	return args.Bool(0), args.Error(1)
}

func (m *MockShipmentRepository) CountByStatus(ctx context.Context) (map[fulfillment.ShipmentStatus]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[fulfillment.ShipmentStatus]int64), args.Error(1)
}

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

// MockPickTicketRepository is a mock implementation of fulfillment.PickTicketRepository
type MockPickTicketRepository struct {
	mock.Mock
}

func (m *MockPickTicketRepository) FindReady(ctx context.Context, limit int) ([]fulfillment.PickTicket, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fulfillment.PickTicket), args.Error(1)
}

func (m *MockPickTicketRepository) Save(ctx context.Context, ticket *fulfillment.PickTicket) error {
	args := m.Called(ctx, ticket)
	return args.Error(0)
}

var _ fulfillment.ShipmentRepository = (*MockShipmentRepository)(nil)
var _ inventory.InventoryItemRepository = (*MockInventoryItemRepository)(nil)
var _ fulfillment.PickTicketRepository = (*MockPickTicketRepository)(nil)
