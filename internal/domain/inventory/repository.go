package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wms/backend/internal/domain/shared"
)

// InventoryItemRepository defines persistence operations for InventoryItem
type InventoryItemRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*InventoryItem, error)
	FindByItemCode(ctx context.Context, itemCode string) (*InventoryItem, error)

	// FindTopByProduct returns the item for the given product with the
	// largest current quantity, breaking ties on lowest id. Used as the
	// fallback resolution when a shipment carries no matching item code.
	FindTopByProduct(ctx context.Context, productID uuid.UUID) (*InventoryItem, error)

	FindAll(ctx context.Context, filter shared.Filter) ([]InventoryItem, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	Save(ctx context.Context, item *InventoryItem) error
	Delete(ctx context.Context, id uuid.UUID) error

	// DecrementQuantity atomically subtracts quantity from the item's stock,
	// but only if the stored quantity is still sufficient: a single guarded
	// update, not a read-then-write. It returns shared.ErrCannotShip when the
	// update matches no row (insufficient stock or missing item). The same
	// statement flips the status to out_of_stock when the remainder is zero.
	DecrementQuantity(ctx context.Context, id uuid.UUID, quantity int64) error

	// SumStockValue totals quantity * unit_cost across matching items for
	// reporting reads.
	SumStockValue(ctx context.Context, warehouseID *uuid.UUID) (decimal.Decimal, error)
}
