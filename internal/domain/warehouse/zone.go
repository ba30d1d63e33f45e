package warehouse

import (
	"strings"

	"github.com/google/uuid"

	"github.com/wms/backend/internal/domain/shared"
)

// ZoneStatus represents the status of a storage zone
type ZoneStatus string

const (
	ZoneStatusActive   ZoneStatus = "active"
	ZoneStatusInactive ZoneStatus = "inactive"
)

// ZoneType represents the type of storage zone
type ZoneType string

const (
	ZoneTypeStorage  ZoneType = "storage"  // General storage
	ZoneTypePicking  ZoneType = "picking"  // Pick face
	ZoneTypeStaging  ZoneType = "staging"  // Outbound staging
	ZoneTypeReceive  ZoneType = "receive"  // Inbound receiving
)

// Zone represents a storage zone within a warehouse.
// It is the aggregate root for zone-related operations.
type Zone struct {
	shared.BaseEntity
	WarehouseID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_zones_warehouse_code,priority:1"`
	Code        string     `gorm:"type:varchar(50);not null;uniqueIndex:idx_zones_warehouse_code,priority:2"`
	Name        string     `gorm:"type:varchar(200);not null"`
	Type        ZoneType   `gorm:"type:varchar(20);not null;default:'storage'"`
	Status      ZoneStatus `gorm:"type:varchar(20);not null;default:'active'"`
	Capacity    int64      `gorm:"not null;default:0"` // Storage capacity in units, 0 means unbounded
	SortOrder   int        `gorm:"not null;default:0"`
	Notes       string     `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Zone) TableName() string {
	return "warehouse_zones"
}

// NewZone creates a new zone with required fields
func NewZone(warehouseID uuid.UUID, code, name string, zoneType ZoneType) (*Zone, error) {
	if warehouseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse reference cannot be empty")
	}
	if err := validateZoneCode(code); err != nil {
		return nil, err
	}
	if err := validateZoneName(name); err != nil {
		return nil, err
	}
	if err := validateZoneType(zoneType); err != nil {
		return nil, err
	}

	return &Zone{
		BaseEntity:  shared.NewBaseEntity(),
		WarehouseID: warehouseID,
		Code:        strings.ToUpper(code),
		Name:        name,
		Type:        zoneType,
		Status:      ZoneStatusActive,
	}, nil
}

// Update updates the zone's basic information
func (z *Zone) Update(name string) error {
	if err := validateZoneName(name); err != nil {
		return err
	}

	z.Name = name
	z.Touch()
	return nil
}

// SetCapacity sets the zone's storage capacity
func (z *Zone) SetCapacity(capacity int64) error {
	if capacity < 0 {
		return shared.NewDomainError("INVALID_CAPACITY", "Capacity cannot be negative")
	}

	z.Capacity = capacity
	z.Touch()
	return nil
}

// SetSortOrder sets the display order
func (z *Zone) SetSortOrder(order int) {
	z.SortOrder = order
	z.Touch()
}

// SetNotes sets the zone's notes
func (z *Zone) SetNotes(notes string) {
	z.Notes = notes
	z.Touch()
}

// Enable enables the zone
func (z *Zone) Enable() error {
	if z.Status == ZoneStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Zone is already active")
	}

	z.Status = ZoneStatusActive
	z.Touch()
	return nil
}

// Disable disables the zone
func (z *Zone) Disable() error {
	if z.Status == ZoneStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Zone is already inactive")
	}

	z.Status = ZoneStatusInactive
	z.Touch()
	return nil
}

// IsActive returns true if the zone is active
func (z *Zone) IsActive() bool {
	return z.Status == ZoneStatusActive
}

// HasCapacity returns true if the zone has a capacity limit configured
func (z *Zone) HasCapacity() bool {
	return z.Capacity > 0
}

func validateZoneCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Zone code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Zone code cannot exceed 50 characters")
	}
	for _, r := range code {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_CODE", "Zone code can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

func validateZoneName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Zone name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Zone name cannot exceed 200 characters")
	}
	return nil
}

func validateZoneType(t ZoneType) error {
	switch t {
	case ZoneTypeStorage, ZoneTypePicking, ZoneTypeStaging, ZoneTypeReceive:
		return nil
	default:
		return shared.NewDomainError("INVALID_TYPE", "Invalid zone type")
	}
}
