package fulfillment

import (
	"context"

	"github.com/google/uuid"

	"github.com/wms/backend/internal/domain/shared"
)

// ShipmentRepository defines persistence operations for Shipment
type ShipmentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Shipment, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Shipment, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	Save(ctx context.Context, shipment *Shipment) error
	Delete(ctx context.Context, id uuid.UUID) error

	// SaveWithStatusGuard persists a status transition only when the stored
	// row still carries the expected status. It fails with a conflict error
	// when a concurrent transition moved the shipment first, so stock is
	// deducted at most once per genuine entry into shipped.
	SaveWithStatusGuard(ctx context.Context, shipment *Shipment, expected ShipmentStatus) error

	// CreateIfAbsent inserts the shipment only when no row already exists
	// for its order/item-code pair. It reports whether a row was inserted.
	// Used by the reconciliation sync, which must stay idempotent when run
	// repeatedly or concurrently with itself.
	CreateIfAbsent(ctx context.Context, shipment *Shipment) (bool, error)

	// CountByStatus groups shipment counts by status for reporting reads
	CountByStatus(ctx context.Context) (map[ShipmentStatus]int64, error)
}
