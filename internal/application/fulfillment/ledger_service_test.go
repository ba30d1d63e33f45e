package fulfillment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wms/backend/internal/domain/fulfillment"
	"github.com/wms/backend/internal/domain/inventory"
	"github.com/wms/backend/internal/domain/shared"
)

type ledgerFixture struct {
	shipmentRepo   *MockShipmentRepository
	inventoryRepo  *MockInventoryItemRepository
	pickTicketRepo *MockPickTicketRepository
	service        *LedgerService
}

func newLedgerFixture() *ledgerFixture {
	shipmentRepo := new(MockShipmentRepository)
	inventoryRepo := new(MockInventoryItemRepository)
	pickTicketRepo := new(MockPickTicketRepository)
	scope := NewNoOpTransactionScope(shipmentRepo, inventoryRepo, pickTicketRepo)
	return &ledgerFixture{
		shipmentRepo:   shipmentRepo,
		inventoryRepo:  inventoryRepo,
		pickTicketRepo: pickTicketRepo,
		service:        NewLedgerService(shipmentRepo, scope),
	}
}

func makeShipment(t *testing.T, itemCode string, productID *uuid.UUID, quantity int64) *fulfillment.Shipment {
	t.Helper()
	shipment, err := fulfillment.NewShipment("ORD-2001", itemCode, productID, quantity)
	require.NoError(t, err)
	return shipment
}

func makeItem(t *testing.T, itemCode string, quantity int64) *inventory.InventoryItem {
	t.Helper()
	item, err := inventory.NewInventoryItem(itemCode, uuid.New(), uuid.New(), quantity)
	require.NoError(t, err)
	return item
}

func TestLedgerService_TransitionStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("first transition to shipped deducts stock and assigns tracking", func(t *testing.T) {
		f := newLedgerFixture()
		shipment := makeShipment(t, "SKU-001", nil, 3)
		item := makeItem(t, "SKU-001", 10)
		shipDate := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

		f.shipmentRepo.On("FindByID", ctx, shipment.ID).Return(shipment, nil).Once()
		f.inventoryRepo.On("FindByItemCode", ctx, "SKU-001").Return(item, nil).Once()
		f.inventoryRepo.On("DecrementQuantity", ctx, item.ID, int64(3)).Return(nil).Once()
		f.shipmentRepo.On("SaveWithStatusGuard", ctx, shipment, fulfillment.ShipmentStatusProcessing).Return(nil).Once()

		resp, err := f.service.TransitionStatus(ctx, shipment.ID, TransitionStatusRequest{
			Status:   string(fulfillment.ShipmentStatusShipped),
			ShipDate: &shipDate,
		})

		require.NoError(t, err)
		assert.Equal(t, string(fulfillment.ShipmentStatusShipped), resp.Status)
		assert.NotEmpty(t, resp.TrackingNumber)
		require.NotNil(t, resp.ShipDate)
		assert.True(t, resp.ShipDate.Equal(shipDate))
		f.shipmentRepo.AssertExpectations(t)
		f.inventoryRepo.AssertExpectations(t)
	})

	t.Run("repeated shipped transition deducts nothing and keeps tracking", func(t *testing.T) {
		f := newLedgerFixture()
		shipment := makeShipment(t, "SKU-001", nil, 3)
		shipment.Status = fulfillment.ShipmentStatusShipped
		shipment.EnsureTrackingNumber()
		tracking := shipment.TrackingNumber

		f.shipmentRepo.On("FindByID", ctx, shipment.ID).Return(shipment, nil).Once()
		f.shipmentRepo.On("SaveWithStatusGuard", ctx, shipment, fulfillment.ShipmentStatusShipped).Return(nil).Once()

		resp, err := f.service.TransitionStatus(ctx, shipment.ID, TransitionStatusRequest{
			Status: string(fulfillment.ShipmentStatusShipped),
		})

		require.NoError(t, err)
		assert.Equal(t, tracking, resp.TrackingNumber)
		f.inventoryRepo.AssertNotCalled(t, "DecrementQuantity", mock.Anything, mock.Anything, mock.Anything)
		f.inventoryRepo.AssertNotCalled(t, "FindByItemCode", mock.Anything, mock.Anything)
	})

	t.Run("insufficient stock fails with cannot ship and persists nothing", func(t *testing.T) {
		f := newLedgerFixture()
		shipment := makeShipment(t, "SKU-001", nil, 5)
		item := makeItem(t, "SKU-001", 2)

		f.shipmentRepo.On("FindByID", ctx, shipment.ID).Return(shipment, nil).Once()
		f.inventoryRepo.On("FindByItemCode", ctx, "SKU-001").Return(item, nil).Once()
		f.inventoryRepo.On("DecrementQuantity", ctx, item.ID, int64(5)).Return(shared.ErrCannotShip).Once()

		_, err := f.service.TransitionStatus(ctx, shipment.ID, TransitionStatusRequest{
			Status: string(fulfillment.ShipmentStatusShipped),
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "CANNOT_SHIP", domainErr.Code)
		assert.Empty(t, shipment.TrackingNumber)
		f.shipmentRepo.AssertNotCalled(t, "SaveWithStatusGuard", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("falls back to highest quantity product match when code misses", func(t *testing.T) {
		f := newLedgerFixture()
		productID := uuid.New()
		shipment := makeShipment(t, "SKU-GHOST", &productID, 2)
		item := makeItem(t, "SKU-REAL", 8)

		f.shipmentRepo.On("FindByID", ctx, shipment.ID).Return(shipment, nil).Once()
		f.inventoryRepo.On("FindByItemCode", ctx, "SKU-GHOST").Return(nil, shared.ErrNotFound).Once()
		f.inventoryRepo.On("FindTopByProduct", ctx, productID).Return(item, nil).Once()
		f.inventoryRepo.On("DecrementQuantity", ctx, item.ID, int64(2)).Return(nil).Once()
		f.shipmentRepo.On("SaveWithStatusGuard", ctx, shipment, fulfillment.ShipmentStatusProcessing).Return(nil).Once()

		resp, err := f.service.TransitionStatus(ctx, shipment.ID, TransitionStatusRequest{
			Status: string(fulfillment.ShipmentStatusShipped),
		})

		require.NoError(t, err)
		assert.Equal(t, string(fulfillment.ShipmentStatusShipped), resp.Status)
		f.inventoryRepo.AssertExpectations(t)
	})

	t.Run("unresolvable item fails with cannot ship", func(t *testing.T) {
		f := newLedgerFixture()
		productID := uuid.New()
		shipment := makeShipment(t, "SKU-GHOST", &productID, 1)

		f.shipmentRepo.On("FindByID", ctx, shipment.ID).Return(shipment, nil).Once()
		f.inventoryRepo.On("FindByItemCode", ctx, "SKU-GHOST").Return(nil, shared.ErrNotFound).Once()
		f.inventoryRepo.On("FindTopByProduct", ctx, productID).Return(nil, shared.ErrNotFound).Once()

		_, err := f.service.TransitionStatus(ctx, shipment.ID, TransitionStatusRequest{
			Status: string(fulfillment.ShipmentStatusShipped),
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "CANNOT_SHIP", domainErr.Code)
		assert.Equal(t, fulfillment.ShipmentStatusProcessing, shipment.Status)
		f.shipmentRepo.AssertNotCalled(t, "SaveWithStatusGuard", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("cancel from processing needs no inventory access", func(t *testing.T) {
		f := newLedgerFixture()
		shipment := makeShipment(t, "SKU-001", nil, 3)

		f.shipmentRepo.On("FindByID", ctx, shipment.ID).Return(shipment, nil).Once()
		f.shipmentRepo.On("SaveWithStatusGuard", ctx, shipment, fulfillment.ShipmentStatusProcessing).Return(nil).Once()

		resp, err := f.service.TransitionStatus(ctx, shipment.ID, TransitionStatusRequest{
			Status: string(fulfillment.ShipmentStatusCancelled),
		})

		require.NoError(t, err)
		assert.Equal(t, string(fulfillment.ShipmentStatusCancelled), resp.Status)
		assert.Empty(t, resp.TrackingNumber)
		f.inventoryRepo.AssertNotCalled(t, "DecrementQuantity", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("delivered after shipped merges delivery date and keeps ship date", func(t *testing.T) {
		f := newLedgerFixture()
		shipment := makeShipment(t, "SKU-001", nil, 3)
		shipDate := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
		require.NoError(t, shipment.ApplyTransition(fulfillment.ShipmentStatusShipped, &shipDate, nil))
		shipment.EnsureTrackingNumber()

		deliveryDate := time.Date(2026, 4, 5, 0, 0, 0, 0, time.UTC)
		f.shipmentRepo.On("FindByID", ctx, shipment.ID).Return(shipment, nil).Once()
		f.shipmentRepo.On("SaveWithStatusGuard", ctx, shipment, fulfillment.ShipmentStatusShipped).Return(nil).Once()

		resp, err := f.service.TransitionStatus(ctx, shipment.ID, TransitionStatusRequest{
			Status:       string(fulfillment.ShipmentStatusDelivered),
			DeliveryDate: &deliveryDate,
		})

		require.NoError(t, err)
		require.NotNil(t, resp.ShipDate)
		assert.True(t, resp.ShipDate.Equal(shipDate))
		require.NotNil(t, resp.DeliveryDate)
		assert.True(t, resp.DeliveryDate.Equal(deliveryDate))
		f.inventoryRepo.AssertNotCalled(t, "DecrementQuantity", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("invalid edge is rejected before touching inventory", func(t *testing.T) {
		f := newLedgerFixture()
		shipment := makeShipment(t, "SKU-001", nil, 3)

		f.shipmentRepo.On("FindByID", ctx, shipment.ID).Return(shipment, nil).Once()

		_, err := f.service.TransitionStatus(ctx, shipment.ID, TransitionStatusRequest{
			Status: string(fulfillment.ShipmentStatusDelivered),
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
		f.inventoryRepo.AssertNotCalled(t, "FindByItemCode", mock.Anything, mock.Anything)
	})

	t.Run("unknown status is rejected without loading the shipment", func(t *testing.T) {
		f := newLedgerFixture()

		_, err := f.service.TransitionStatus(ctx, uuid.New(), TransitionStatusRequest{
			Status: "returned",
		})

		require.Error(t, err)
		f.shipmentRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("missing shipment yields not found", func(t *testing.T) {
		f := newLedgerFixture()
		id := uuid.New()

		f.shipmentRepo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound).Once()

		_, err := f.service.TransitionStatus(ctx, id, TransitionStatusRequest{
			Status: string(fulfillment.ShipmentStatusShipped),
		})

		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})

	t.Run("losing a concurrent transition surfaces a conflict", func(t *testing.T) {
		// Two callers read the same processing shipment and both try to
		// ship it. The winner flips the stored status first, so the loser's
		// guard matches zero rows and its transaction rolls back, undoing
		// its decrement. Here the loser's path is driven against a guard
		// that reports the race.
		f := newLedgerFixture()
		shipment := makeShipment(t, "SKU-001", nil, 3)
		item := makeItem(t, "SKU-001", 10)
		conflict := shared.NewDomainError("CONFLICT", "Shipment was modified by another transaction")

		f.shipmentRepo.On("FindByID", ctx, shipment.ID).Return(shipment, nil).Once()
		f.inventoryRepo.On("FindByItemCode", ctx, "SKU-001").Return(item, nil).Once()
		f.inventoryRepo.On("DecrementQuantity", ctx, item.ID, int64(3)).Return(nil).Once()
		f.shipmentRepo.On("SaveWithStatusGuard", ctx, shipment, fulfillment.ShipmentStatusProcessing).Return(conflict).Once()

		_, err := f.service.TransitionStatus(ctx, shipment.ID, TransitionStatusRequest{
			Status: string(fulfillment.ShipmentStatusShipped),
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "CONFLICT", domainErr.Code)
		f.inventoryRepo.AssertNumberOfCalls(t, "DecrementQuantity", 1)
		f.shipmentRepo.AssertExpectations(t)
	})

	t.Run("guard expectation is the status read before the transition", func(t *testing.T) {
		f := newLedgerFixture()
		shipment := makeShipment(t, "SKU-001", nil, 3)
		shipDate := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
		require.NoError(t, shipment.ApplyTransition(fulfillment.ShipmentStatusShipped, &shipDate, nil))
		shipment.EnsureTrackingNumber()

		var expected fulfillment.ShipmentStatus
		f.shipmentRepo.On("FindByID", ctx, shipment.ID).Return(shipment, nil).Once()
		f.shipmentRepo.On("SaveWithStatusGuard", ctx, shipment, mock.AnythingOfType("fulfillment.ShipmentStatus")).
			Run(func(args mock.Arguments) { expected = args.Get(2).(fulfillment.ShipmentStatus) }).
			Return(nil).Once()

		_, err := f.service.TransitionStatus(ctx, shipment.ID, TransitionStatusRequest{
			Status: string(fulfillment.ShipmentStatusCancelled),
		})

		require.NoError(t, err)
		assert.Equal(t, fulfillment.ShipmentStatusShipped, expected)
	})

	t.Run("infrastructure failure propagates unchanged", func(t *testing.T) {
		f := newLedgerFixture()
		shipment := makeShipment(t, "SKU-001", nil, 3)
		infraErr := errors.New("connection reset")

		f.shipmentRepo.On("FindByID", ctx, shipment.ID).Return(shipment, nil).Once()
		f.inventoryRepo.On("FindByItemCode", ctx, "SKU-001").Return(nil, infraErr).Once()

		_, err := f.service.TransitionStatus(ctx, shipment.ID, TransitionStatusRequest{
			Status: string(fulfillment.ShipmentStatusShipped),
		})

		require.Error(t, err)
		assert.True(t, errors.Is(err, infraErr))
	})
}

func TestLedgerService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates shipment in processing", func(t *testing.T) {
		f := newLedgerFixture()
		f.shipmentRepo.On("Save", ctx, mock.AnythingOfType("*fulfillment.Shipment")).Return(nil).Once()

		resp, err := f.service.Create(ctx, CreateShipmentRequest{
			OrderID:  "ORD-3001",
			ItemCode: "SKU-001",
			Quantity: 2,
		})

		require.NoError(t, err)
		assert.Equal(t, string(fulfillment.ShipmentStatusProcessing), resp.Status)
		assert.Empty(t, resp.TrackingNumber)
	})

	t.Run("rejects invalid request", func(t *testing.T) {
		f := newLedgerFixture()

		_, err := f.service.Create(ctx, CreateShipmentRequest{OrderID: "ORD-3002", Quantity: 0})
		assert.Error(t, err)
		f.shipmentRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestLedgerService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to most recently updated first", func(t *testing.T) {
		f := newLedgerFixture()
		var captured shared.Filter
		f.shipmentRepo.On("FindAll", ctx, mock.AnythingOfType("shared.Filter")).
			Run(func(args mock.Arguments) { captured = args.Get(1).(shared.Filter) }).
			Return([]fulfillment.Shipment{}, nil).Once()
		f.shipmentRepo.On("Count", ctx, mock.AnythingOfType("shared.Filter")).Return(int64(0), nil).Once()

		_, _, err := f.service.List(ctx, ShipmentListFilter{})

		require.NoError(t, err)
		assert.Equal(t, "updated_at", captured.OrderBy)
		assert.Equal(t, "desc", captured.OrderDir)
	})

	t.Run("passes status filter through", func(t *testing.T) {
		f := newLedgerFixture()
		var captured shared.Filter
		f.shipmentRepo.On("FindAll", ctx, mock.AnythingOfType("shared.Filter")).
			Run(func(args mock.Arguments) { captured = args.Get(1).(shared.Filter) }).
			Return([]fulfillment.Shipment{}, nil).Once()
		f.shipmentRepo.On("Count", ctx, mock.AnythingOfType("shared.Filter")).Return(int64(0), nil).Once()

		_, _, err := f.service.List(ctx, ShipmentListFilter{Status: "shipped"})

		require.NoError(t, err)
		assert.Equal(t, "shipped", captured.Filters["status"])
	})
}
