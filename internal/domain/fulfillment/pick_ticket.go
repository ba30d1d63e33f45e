package fulfillment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/wms/backend/internal/domain/shared"
)

// PickTicketStatus represents the state of an externally produced pick ticket
type PickTicketStatus string

const (
	PickTicketReady  PickTicketStatus = "ready"
	PickTicketSynced PickTicketStatus = "synced"
)

// PickTicket is a "ready to ship" record produced outside this service
// (floor scanners, the picking system). The reconciliation sync turns each
// ready ticket into a shipment exactly once.
type PickTicket struct {
	shared.BaseEntity
	OrderID   string           `gorm:"type:varchar(50);not null;index"`
	ItemCode  string           `gorm:"type:varchar(50);not null"`
	ProductID *uuid.UUID       `gorm:"type:uuid"`
	Quantity  int64            `gorm:"not null"`
	Status    PickTicketStatus `gorm:"type:varchar(20);not null;default:'ready'"`
	PickedAt  time.Time
}

// TableName returns the table name for GORM
func (PickTicket) TableName() string {
	return "pick_tickets"
}

// NewPickTicket creates a ready pick ticket
func NewPickTicket(orderID, itemCode string, productID *uuid.UUID, quantity int64) (*PickTicket, error) {
	if orderID == "" {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order reference cannot be empty")
	}
	if itemCode == "" && productID == nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Pick ticket needs an item code or product reference")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Pick ticket quantity must be positive")
	}

	return &PickTicket{
		BaseEntity: shared.NewBaseEntity(),
		OrderID:    orderID,
		ItemCode:   itemCode,
		ProductID:  productID,
		Quantity:   quantity,
		Status:     PickTicketReady,
		PickedAt:   time.Now(),
	}, nil
}

// MarkSynced records that a shipment exists for this ticket
func (p *PickTicket) MarkSynced() {
	p.Status = PickTicketSynced
	p.Touch()
}

// PickTicketRepository defines persistence operations for PickTicket
type PickTicketRepository interface {
	FindReady(ctx context.Context, limit int) ([]PickTicket, error)
	Save(ctx context.Context, ticket *PickTicket) error
}
