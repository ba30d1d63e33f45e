package warehouse

import (
	"context"

	"github.com/google/uuid"

	"github.com/wms/backend/internal/domain/shared"
)

// ZoneRepository defines the persistence interface for zones
type ZoneRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Zone, error)
	FindByCode(ctx context.Context, warehouseID uuid.UUID, code string) (*Zone, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Zone, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, zone *Zone) error
	Delete(ctx context.Context, id uuid.UUID) error
}
