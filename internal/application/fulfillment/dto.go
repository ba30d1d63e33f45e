package fulfillment

import (
	"time"

	"github.com/google/uuid"

	"github.com/wms/backend/internal/domain/fulfillment"
)

// ShipmentResponse represents a shipment in API responses
type ShipmentResponse struct {
	ID             uuid.UUID  `json:"id"`
	OrderID        string     `json:"order_id"`
	ItemCode       string     `json:"item_code,omitempty"`
	ProductID      *uuid.UUID `json:"product_id,omitempty"`
	Quantity       int64      `json:"quantity"`
	Status         string     `json:"status"`
	TrackingNumber string     `json:"tracking_number,omitempty"`
	ShipDate       *time.Time `json:"ship_date,omitempty"`
	DeliveryDate   *time.Time `json:"delivery_date,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// ToShipmentResponse converts a shipment aggregate to its response form
func ToShipmentResponse(s *fulfillment.Shipment) ShipmentResponse {
	return ShipmentResponse{
		ID:             s.ID,
		OrderID:        s.OrderID,
		ItemCode:       s.ItemCode,
		ProductID:      s.ProductID,
		Quantity:       s.Quantity,
		Status:         string(s.Status),
		TrackingNumber: s.TrackingNumber,
		ShipDate:       s.ShipDate,
		DeliveryDate:   s.DeliveryDate,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

// CreateShipmentRequest represents a request to create a shipment
type CreateShipmentRequest struct {
	OrderID   string     `json:"order_id" binding:"required,max=100"`
	ItemCode  string     `json:"item_code" binding:"omitempty,max=50"`
	ProductID *uuid.UUID `json:"product_id"`
	Quantity  int64      `json:"quantity" binding:"required,min=1"`
}

// TransitionStatusRequest represents a request to move a shipment to a new status.
// Dates are merged set-if-given: an omitted date never clears a stored one.
type TransitionStatusRequest struct {
	Status       string     `json:"status" binding:"required,shipmentstatus"`
	ShipDate     *time.Time `json:"ship_date"`
	DeliveryDate *time.Time `json:"delivery_date"`
}

// ShipmentListFilter represents filter options for shipment lists
type ShipmentListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,shipmentstatus"`
	OrderID  string `form:"order_id"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// SyncResult summarises one pick-ticket reconciliation run
type SyncResult struct {
	Scanned  int `json:"scanned"`
	Created  int `json:"created"`
	Skipped  int `json:"skipped"`
	Failures int `json:"failures"`
}
