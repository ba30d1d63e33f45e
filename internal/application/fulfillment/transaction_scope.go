package fulfillment

import (
	"context"

	"github.com/wms/backend/internal/domain/fulfillment"
	"github.com/wms/backend/internal/domain/inventory"
)

// TransactionScope provides transactional access to fulfillment repositories.
// When a function is executed within a transaction scope, all repository operations
// will be part of the same database transaction and will be committed or rolled back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all fulfillment repositories within a transaction.
// All repositories returned share the same underlying database transaction.
//
// A status transition touches two aggregates: the Shipment being moved and the
// InventoryItem whose stock is deducted when the shipment first enters shipped.
// Both writes must land in the same transaction or neither.
type TransactionalRepositories interface {
	// ShipmentRepo returns the shipment repository scoped to the current transaction
	ShipmentRepo() fulfillment.ShipmentRepository
	// InventoryRepo returns the inventory item repository scoped to the current transaction
	InventoryRepo() inventory.InventoryItemRepository
	// PickTicketRepo returns the pick ticket repository scoped to the current transaction
	PickTicketRepo() fulfillment.PickTicketRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use transactions.
// This is useful for testing or when transaction support is not required.
type NoOpTransactionScope struct {
	shipmentRepo   fulfillment.ShipmentRepository
	inventoryRepo  inventory.InventoryItemRepository
	pickTicketRepo fulfillment.PickTicketRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	shipmentRepo fulfillment.ShipmentRepository,
	inventoryRepo inventory.InventoryItemRepository,
	pickTicketRepo fulfillment.PickTicketRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		shipmentRepo:   shipmentRepo,
		inventoryRepo:  inventoryRepo,
		pickTicketRepo: pickTicketRepo,
	}
}

// Execute runs the function without a real transaction (for testing/compatibility).
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// ShipmentRepo returns the shipment repository.
func (s *NoOpTransactionScope) ShipmentRepo() fulfillment.ShipmentRepository {
	return s.shipmentRepo
}

// InventoryRepo returns the inventory item repository.
func (s *NoOpTransactionScope) InventoryRepo() inventory.InventoryItemRepository {
	return s.inventoryRepo
}

// PickTicketRepo returns the pick ticket repository.
func (s *NoOpTransactionScope) PickTicketRepo() fulfillment.PickTicketRepository {
	return s.pickTicketRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
