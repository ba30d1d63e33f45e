package fulfillment

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/wms/backend/internal/domain/fulfillment"
	"github.com/wms/backend/internal/domain/inventory"
	"github.com/wms/backend/internal/domain/shared"
)

// LedgerService enforces the shipment status lifecycle and the stock-deduction
// invariant: for any shipment, inventory is deducted at most once, on its first
// genuine transition into shipped.
type LedgerService struct {
	shipmentRepo fulfillment.ShipmentRepository
	txScope      TransactionScope
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(shipmentRepo fulfillment.ShipmentRepository, txScope TransactionScope) *LedgerService {
	return &LedgerService{
		shipmentRepo: shipmentRepo,
		txScope:      txScope,
	}
}

// GetByID retrieves a shipment by ID
func (s *LedgerService) GetByID(ctx context.Context, id uuid.UUID) (*ShipmentResponse, error) {
	shipment, err := s.shipmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToShipmentResponse(shipment)
	return &response, nil
}

// Create creates a new shipment in processing
func (s *LedgerService) Create(ctx context.Context, req CreateShipmentRequest) (*ShipmentResponse, error) {
	shipment, err := fulfillment.NewShipment(req.OrderID, req.ItemCode, req.ProductID, req.Quantity)
	if err != nil {
		return nil, err
	}
	if err := s.shipmentRepo.Save(ctx, shipment); err != nil {
		return nil, err
	}
	response := ToShipmentResponse(shipment)
	return &response, nil
}

// List retrieves shipments with filtering and pagination, most recently updated first
func (s *LedgerService) List(ctx context.Context, filter ShipmentListFilter) ([]ShipmentResponse, int64, error) {
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
	if filter.OrderID != "" {
		domainFilter.Filters["order_id"] = filter.OrderID
	}

	shipments, err := s.shipmentRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.shipmentRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ShipmentResponse, 0, len(shipments))
	for i := range shipments {
		responses = append(responses, ToShipmentResponse(&shipments[i]))
	}
	return responses, total, nil
}

// Delete removes a shipment. Allowed at any state; deleting a shipped
// shipment does not restore stock.
func (s *LedgerService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.shipmentRepo.Delete(ctx, id)
}

// TransitionStatus moves a shipment to a new status as a single atomic unit.
// On the first genuine entry into shipped it resolves the inventory item and
// performs a guarded decrement; insufficient stock or an unresolvable item
// fails the whole transition with CANNOT_SHIP and no state change persists.
func (s *LedgerService) TransitionStatus(ctx context.Context, id uuid.UUID, req TransitionStatusRequest) (*ShipmentResponse, error) {
	target := fulfillment.ShipmentStatus(req.Status)
	if !target.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", "Invalid shipment status")
	}

	var response ShipmentResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		shipment, err := repos.ShipmentRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		previous := shipment.Status
		if !shipment.CanTransitionTo(target) {
			return shared.NewDomainError("INVALID_STATE",
				"Cannot transition shipment from "+string(shipment.Status)+" to "+string(target))
		}

		if shipment.RequiresDeduction(target) && shipment.Quantity > 0 {
			item, err := s.resolveItem(ctx, repos.InventoryRepo(), shipment)
			if err != nil {
				return err
			}
			if err := repos.InventoryRepo().DecrementQuantity(ctx, item.ID, shipment.Quantity); err != nil {
				return err
			}
		}

		if target == fulfillment.ShipmentStatusShipped {
			shipment.EnsureTrackingNumber()
		}

		if err := shipment.ApplyTransition(target, req.ShipDate, req.DeliveryDate); err != nil {
			return err
		}
		// The status guard serializes concurrent transitions on the same
		// shipment: the loser sees zero affected rows, the transaction
		// rolls back, and the decrement above is undone with it.
		if err := repos.ShipmentRepo().SaveWithStatusGuard(ctx, shipment, previous); err != nil {
			return err
		}

		response = ToShipmentResponse(shipment)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// resolveItem finds the inventory item a shipment draws on. Exact item-code
// match wins; otherwise the product's highest-quantity item is used. The
// resolution is re-evaluated on every call, never cached on the shipment.
func (s *LedgerService) resolveItem(ctx context.Context, repo inventory.InventoryItemRepository, shipment *fulfillment.Shipment) (*inventory.InventoryItem, error) {
	if shipment.ItemCode != "" {
		item, err := repo.FindByItemCode(ctx, shipment.ItemCode)
		if err == nil {
			return item, nil
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
	}

	if shipment.ProductID != nil {
		item, err := repo.FindTopByProduct(ctx, *shipment.ProductID)
		if err == nil {
			return item, nil
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
	}

	return nil, shared.ErrCannotShip
}
