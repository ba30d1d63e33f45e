package persistence

import (
	"context"

	"gorm.io/gorm"

	appfulfillment "github.com/wms/backend/internal/application/fulfillment"
	"github.com/wms/backend/internal/domain/fulfillment"
	"github.com/wms/backend/internal/domain/inventory"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// It provides atomic execution of multiple repository operations: a shipment
// status change and its stock decrement commit together or not at all.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appfulfillment.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormTransactionalRepositories provides access to all repositories within a transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// ShipmentRepo returns the shipment repository scoped to the current transaction.
func (r *gormTransactionalRepositories) ShipmentRepo() fulfillment.ShipmentRepository {
	return NewGormShipmentRepository(r.tx)
}

// InventoryRepo returns the inventory item repository scoped to the current transaction.
func (r *gormTransactionalRepositories) InventoryRepo() inventory.InventoryItemRepository {
	return NewGormInventoryItemRepository(r.tx)
}

// PickTicketRepo returns the pick ticket repository scoped to the current transaction.
func (r *gormTransactionalRepositories) PickTicketRepo() fulfillment.PickTicketRepository {
	return NewGormPickTicketRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ appfulfillment.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ appfulfillment.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
