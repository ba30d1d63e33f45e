package scan

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/wms/backend/internal/domain/shared"
)

// ScanType represents what triggered the barcode scan
type ScanType string

const (
	ScanTypeReceive ScanType = "receive" // Inbound receipt
	ScanTypePick    ScanType = "pick"    // Pick confirmation
	ScanTypeCount   ScanType = "count"   // Cycle count
	ScanTypeLookup  ScanType = "lookup"  // Ad-hoc lookup
)

// IsValid reports whether the scan type is known
func (t ScanType) IsValid() bool {
	switch t {
	case ScanTypeReceive, ScanTypePick, ScanTypeCount, ScanTypeLookup:
		return true
	default:
		return false
	}
}

// ScanEvent records a single barcode scan against an inventory item.
// Events are append-only; they are never updated after creation.
type ScanEvent struct {
	shared.BaseEntity
	Barcode     string     `gorm:"type:varchar(100);not null;index"`
	Type        ScanType   `gorm:"type:varchar(20);not null"`
	ItemID      *uuid.UUID `gorm:"type:uuid;index"` // Resolved inventory item, nil when unmatched
	ZoneID      *uuid.UUID `gorm:"type:uuid;index"`
	Quantity    int64      `gorm:"not null;default:1"`
	OperatorRef string     `gorm:"type:varchar(100)"` // External operator identifier
	Matched     bool       `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (ScanEvent) TableName() string {
	return "scan_events"
}

// NewScanEvent creates a scan event for a raw barcode read
func NewScanEvent(barcode string, scanType ScanType, quantity int64) (*ScanEvent, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, shared.NewDomainError("INVALID_BARCODE", "Barcode cannot be empty")
	}
	if len(barcode) > 100 {
		return nil, shared.NewDomainError("INVALID_BARCODE", "Barcode cannot exceed 100 characters")
	}
	if !scanType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Invalid scan type")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Scan quantity must be positive")
	}

	return &ScanEvent{
		BaseEntity: shared.NewBaseEntity(),
		Barcode:    barcode,
		Type:       scanType,
		Quantity:   quantity,
	}, nil
}

// MarkMatched links the scan to the inventory item it resolved to
func (e *ScanEvent) MarkMatched(itemID uuid.UUID) {
	e.ItemID = &itemID
	e.Matched = true
	e.Touch()
}

// SetZone records the zone the scan happened in
func (e *ScanEvent) SetZone(zoneID uuid.UUID) {
	e.ZoneID = &zoneID
	e.Touch()
}

// SetOperator records the external operator identifier
func (e *ScanEvent) SetOperator(ref string) {
	e.OperatorRef = ref
	e.Touch()
}

// ScanEventRepository defines the persistence interface for scan events
type ScanEventRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ScanEvent, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]ScanEvent, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, event *ScanEvent) error
}
