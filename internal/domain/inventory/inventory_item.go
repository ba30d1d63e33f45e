package inventory

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wms/backend/internal/domain/shared"
)

// ItemStatus represents the stocking status of an inventory item
type ItemStatus string

const (
	ItemStatusActive     ItemStatus = "active"
	ItemStatusOutOfStock ItemStatus = "out_of_stock"
	ItemStatusInactive   ItemStatus = "inactive"
)

// IsValid reports whether the status is one of the known values
func (s ItemStatus) IsValid() bool {
	switch s {
	case ItemStatusActive, ItemStatusOutOfStock, ItemStatusInactive:
		return true
	}
	return false
}

// AdjustMode selects how AdjustQuantity interprets its argument
type AdjustMode string

const (
	AdjustModeSet      AdjustMode = "set"
	AdjustModeAdd      AdjustMode = "add"
	AdjustModeSubtract AdjustMode = "subtract"
)

// IsValid reports whether the mode is one of the known values
func (m AdjustMode) IsValid() bool {
	switch m {
	case AdjustModeSet, AdjustModeAdd, AdjustModeSubtract:
		return true
	}
	return false
}

// InventoryItem represents a uniquely coded stock of a product at a warehouse.
// It is the aggregate root for inventory operations; ItemCode is the unique
// business key shipments resolve against.
type InventoryItem struct {
	shared.BaseEntity
	ItemCode    string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	WarehouseID uuid.UUID       `gorm:"type:uuid;not null;index"`
	CategoryID  *uuid.UUID      `gorm:"type:uuid;index"`
	Quantity    int64           `gorm:"not null;default:0"`
	UnitCost    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Status      ItemStatus      `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (InventoryItem) TableName() string {
	return "inventory_items"
}

// NewInventoryItem creates a new inventory item for a coded product stock
func NewInventoryItem(itemCode string, productID, warehouseID uuid.UUID, quantity int64) (*InventoryItem, error) {
	itemCode = strings.TrimSpace(itemCode)
	if itemCode == "" {
		return nil, shared.NewDomainError("INVALID_ITEM_CODE", "Item code cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if warehouseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse ID cannot be empty")
	}
	if quantity < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}

	item := &InventoryItem{
		BaseEntity:  shared.NewBaseEntity(),
		ItemCode:    itemCode,
		ProductID:   productID,
		WarehouseID: warehouseID,
		Quantity:    quantity,
		UnitCost:    decimal.Zero,
		Status:      ItemStatusActive,
	}
	if quantity == 0 {
		item.Status = ItemStatusOutOfStock
	}
	return item, nil
}

// AdjustQuantity applies a manual stock correction. Subtract and set clamp
// the result at zero. The status flips to out_of_stock whenever the result
// reaches zero, and is restored to active when a correction makes the
// quantity positive again, unless the item was explicitly marked inactive.
func (i *InventoryItem) AdjustQuantity(amount int64, mode AdjustMode) error {
	if !mode.IsValid() {
		return shared.NewDomainError("INVALID_MODE", "Adjustment mode must be set, add or subtract")
	}
	if amount < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Adjustment amount cannot be negative")
	}

	switch mode {
	case AdjustModeSet:
		i.Quantity = amount
	case AdjustModeAdd:
		i.Quantity += amount
	case AdjustModeSubtract:
		i.Quantity -= amount
		if i.Quantity < 0 {
			i.Quantity = 0
		}
	}

	i.reconcileStatus()
	i.Touch()
	return nil
}

// Deactivate marks the item unavailable for fulfillment regardless of stock
func (i *InventoryItem) Deactivate() {
	i.Status = ItemStatusInactive
	i.Touch()
}

// Activate returns the item to circulation; zero-stock items come back as
// out_of_stock rather than active.
func (i *InventoryItem) Activate() {
	i.Status = ItemStatusActive
	i.reconcileStatus()
	i.Touch()
}

// SetUnitCost updates the recorded unit cost used for stock valuation
func (i *InventoryItem) SetUnitCost(cost decimal.Decimal) error {
	if cost.IsNegative() {
		return shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}
	i.UnitCost = cost
	i.Touch()
	return nil
}

// StockValue returns quantity * unit cost
func (i *InventoryItem) StockValue() decimal.Decimal {
	return i.UnitCost.Mul(decimal.NewFromInt(i.Quantity))
}

// HasStock reports whether any quantity remains
func (i *InventoryItem) HasStock() bool {
	return i.Quantity > 0
}

func (i *InventoryItem) reconcileStatus() {
	if i.Status == ItemStatusInactive {
		return
	}
	if i.Quantity <= 0 {
		i.Status = ItemStatusOutOfStock
	} else {
		i.Status = ItemStatusActive
	}
}
