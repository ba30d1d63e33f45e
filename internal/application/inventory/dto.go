package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wms/backend/internal/domain/inventory"
)

// InventoryItemResponse represents an inventory item in API responses
type InventoryItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ItemCode    string          `json:"item_code"`
	ProductID   uuid.UUID       `json:"product_id"`
	WarehouseID uuid.UUID       `json:"warehouse_id"`
	CategoryID  *uuid.UUID      `json:"category_id,omitempty"`
	Quantity    int64           `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	StockValue  decimal.Decimal `json:"stock_value"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToInventoryItemResponse converts an inventory item to its response form
func ToInventoryItemResponse(item *inventory.InventoryItem) InventoryItemResponse {
	return InventoryItemResponse{
		ID:          item.ID,
		ItemCode:    item.ItemCode,
		ProductID:   item.ProductID,
		WarehouseID: item.WarehouseID,
		CategoryID:  item.CategoryID,
		Quantity:    item.Quantity,
		UnitCost:    item.UnitCost,
		StockValue:  item.StockValue(),
		Status:      string(item.Status),
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

// CreateItemRequest represents a request to create an inventory item
type CreateItemRequest struct {
	ItemCode    string          `json:"item_code" binding:"required,max=50"`
	ProductID   uuid.UUID       `json:"product_id" binding:"required"`
	WarehouseID uuid.UUID       `json:"warehouse_id" binding:"required"`
	CategoryID  *uuid.UUID      `json:"category_id"`
	Quantity    int64           `json:"quantity" binding:"min=0"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
}

// AdjustQuantityRequest represents a manual stock correction.
// Operation is one of set, add, subtract.
type AdjustQuantityRequest struct {
	Quantity  int64  `json:"quantity" binding:"min=0"`
	Operation string `json:"operation" binding:"required,oneof=set add subtract"`
}

// ItemListFilter represents filter options for inventory lists
type ItemListFilter struct {
	Search      string     `form:"search"`
	Status      string     `form:"status" binding:"omitempty,oneof=active out_of_stock inactive"`
	WarehouseID *uuid.UUID `form:"warehouse_id"`
	CategoryID  *uuid.UUID `form:"category_id"`
	ProductID   *uuid.UUID `form:"product_id"`
	Page        int        `form:"page" binding:"omitempty,min=1"`
	PageSize    int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy     string     `form:"order_by"`
	OrderDir    string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}
