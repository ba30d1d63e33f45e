package fulfillment

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wms/backend/internal/domain/shared"
)

// ShipmentStatus represents the fulfillment state of a shipment
type ShipmentStatus string

const (
	ShipmentStatusProcessing ShipmentStatus = "processing"
	ShipmentStatusShipped    ShipmentStatus = "shipped"
	ShipmentStatusDelivered  ShipmentStatus = "delivered"
	ShipmentStatusCancelled  ShipmentStatus = "cancelled"
)

// IsValid reports whether the status is one of the known values
func (s ShipmentStatus) IsValid() bool {
	switch s {
	case ShipmentStatusProcessing, ShipmentStatusShipped, ShipmentStatusDelivered, ShipmentStatusCancelled:
		return true
	}
	return false
}

// trackingPrefix prefixes every generated tracking number
const trackingPrefix = "TRK"

// Shipment represents one outbound order fulfillment tracked through the
// processing/shipped/delivered lifecycle. Quantity is fixed at creation;
// the inventory item it draws from is resolved per transition, not stored.
type Shipment struct {
	shared.BaseEntity
	OrderID        string         `gorm:"type:varchar(50);not null;uniqueIndex:idx_shipments_order_item,priority:1"`
	ItemCode       string         `gorm:"type:varchar(50);not null;uniqueIndex:idx_shipments_order_item,priority:2"`
	ProductID      *uuid.UUID     `gorm:"type:uuid;index"`
	Quantity       int64          `gorm:"not null"`
	Status         ShipmentStatus `gorm:"type:varchar(20);not null;default:'processing'"`
	TrackingNumber string         `gorm:"type:varchar(30)"`
	ShipDate       *time.Time
	DeliveryDate   *time.Time
}

// TableName returns the table name for GORM
func (Shipment) TableName() string {
	return "shipments"
}

// NewShipment creates a shipment in the processing state
func NewShipment(orderID, itemCode string, productID *uuid.UUID, quantity int64) (*Shipment, error) {
	orderID = strings.TrimSpace(orderID)
	itemCode = strings.TrimSpace(itemCode)
	if orderID == "" {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order ID cannot be empty")
	}
	if itemCode == "" && (productID == nil || *productID == uuid.Nil) {
		return nil, shared.NewDomainError("INVALID_ITEM", "Shipment needs an item code or a product reference")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Shipment quantity must be positive")
	}

	return &Shipment{
		BaseEntity: shared.NewBaseEntity(),
		OrderID:    orderID,
		ItemCode:   itemCode,
		ProductID:  productID,
		Quantity:   quantity,
		Status:     ShipmentStatusProcessing,
	}, nil
}

// CanTransitionTo reports whether the status edge is allowed. The lifecycle
// runs processing -> shipped -> delivered, with cancelled reachable from
// processing or shipped. A same-status transition is always allowed and is
// a no-op on stock.
func (s *Shipment) CanTransitionTo(target ShipmentStatus) bool {
	if target == s.Status {
		return true
	}
	switch s.Status {
	case ShipmentStatusProcessing:
		return target == ShipmentStatusShipped || target == ShipmentStatusCancelled
	case ShipmentStatusShipped:
		return target == ShipmentStatusDelivered || target == ShipmentStatusCancelled
	default:
		// delivered and cancelled are terminal
		return false
	}
}

// RequiresDeduction reports whether transitioning into target from the
// current state is a genuine first entry into shipped, i.e. the one edge
// that carries the stock-deduction side effect.
func (s *Shipment) RequiresDeduction(target ShipmentStatus) bool {
	return target == ShipmentStatusShipped &&
		s.Status != ShipmentStatusShipped && s.Status != ShipmentStatusDelivered
}

// ApplyTransition moves the shipment to target and merges the optional date
// overrides: a provided date replaces the stored one, a nil keeps it.
func (s *Shipment) ApplyTransition(target ShipmentStatus, shipDate, deliveryDate *time.Time) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown shipment status")
	}
	if !s.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Shipment cannot move from %s to %s", s.Status, target))
	}

	s.Status = target
	if shipDate != nil {
		s.ShipDate = shipDate
	}
	if deliveryDate != nil {
		s.DeliveryDate = deliveryDate
	}
	s.Touch()
	return nil
}

// EnsureTrackingNumber assigns a tracking number if none is set yet.
// Once assigned it is never overwritten.
func (s *Shipment) EnsureTrackingNumber() {
	if s.TrackingNumber != "" {
		return
	}
	s.TrackingNumber = generateTrackingNumber()
	s.Touch()
}

// generateTrackingNumber produces a short code like TRK483920
func generateTrackingNumber() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		// crypto/rand failure is effectively unreachable; fall back to a
		// time-derived suffix rather than panic in the request path
		return fmt.Sprintf("%s%06d", trackingPrefix, time.Now().UnixNano()%1_000_000)
	}
	return fmt.Sprintf("%s%06d", trackingPrefix, n.Int64())
}
