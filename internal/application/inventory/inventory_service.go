package inventory

import (
	"context"

	"github.com/google/uuid"

	"github.com/wms/backend/internal/domain/inventory"
	"github.com/wms/backend/internal/domain/shared"
)

// Service handles inventory catalog operations and manual stock corrections.
// Stock deductions driven by shipments go through the fulfillment ledger,
// not through this service.
type Service struct {
	itemRepo inventory.InventoryItemRepository
}

// NewService creates a new inventory Service
func NewService(itemRepo inventory.InventoryItemRepository) *Service {
	return &Service{itemRepo: itemRepo}
}

// GetByID retrieves an inventory item by ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*InventoryItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToInventoryItemResponse(item)
	return &response, nil
}

// Create creates a new inventory item
func (s *Service) Create(ctx context.Context, req CreateItemRequest) (*InventoryItemResponse, error) {
	item, err := inventory.NewInventoryItem(req.ItemCode, req.ProductID, req.WarehouseID, req.Quantity)
	if err != nil {
		return nil, err
	}
	item.CategoryID = req.CategoryID
	if !req.UnitCost.IsZero() {
		if err := item.SetUnitCost(req.UnitCost); err != nil {
			return nil, err
		}
	}
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	response := ToInventoryItemResponse(item)
	return &response, nil
}

// AdjustQuantity applies a manual quantity correction to an item.
// Subtract and set clamp at zero; the status flips to out_of_stock when
// the result is zero and back to active when stock returns.
func (s *Service) AdjustQuantity(ctx context.Context, id uuid.UUID, req AdjustQuantityRequest) (*InventoryItemResponse, error) {
	mode := inventory.AdjustMode(req.Operation)
	if !mode.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid adjustment operation")
	}

	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := item.AdjustQuantity(req.Quantity, mode); err != nil {
		return nil, err
	}
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	response := ToInventoryItemResponse(item)
	return &response, nil
}

// Deactivate removes an item from active use without deleting it
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) (*InventoryItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	item.Deactivate()
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	response := ToInventoryItemResponse(item)
	return &response, nil
}

// Delete removes an inventory item
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.itemRepo.Delete(ctx, id)
}

// List retrieves inventory items with filtering and pagination, most
// recently updated first
func (s *Service) List(ctx context.Context, filter ItemListFilter) ([]InventoryItemResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.WarehouseID != nil {
		domainFilter.Filters["warehouse_id"] = *filter.WarehouseID
	}
	if filter.CategoryID != nil {
		domainFilter.Filters["category_id"] = *filter.CategoryID
	}
	if filter.ProductID != nil {
		domainFilter.Filters["product_id"] = *filter.ProductID
	}

	items, err := s.itemRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.itemRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]InventoryItemResponse, 0, len(items))
	for i := range items {
		responses = append(responses, ToInventoryItemResponse(&items[i]))
	}
	return responses, total, nil
}
