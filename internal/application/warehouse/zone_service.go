package warehouse

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/domain/warehouse"
)

// ZoneResponse represents a zone in API responses
type ZoneResponse struct {
	ID          uuid.UUID `json:"id"`
	WarehouseID uuid.UUID `json:"warehouse_id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Status      string    `json:"status"`
	Capacity    int64     `json:"capacity"`
	SortOrder   int       `json:"sort_order"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toZoneResponse(z *warehouse.Zone) ZoneResponse {
	return ZoneResponse{
		ID:          z.ID,
		WarehouseID: z.WarehouseID,
		Code:        z.Code,
		Name:        z.Name,
		Type:        string(z.Type),
		Status:      string(z.Status),
		Capacity:    z.Capacity,
		SortOrder:   z.SortOrder,
		Notes:       z.Notes,
		CreatedAt:   z.CreatedAt,
		UpdatedAt:   z.UpdatedAt,
	}
}

// CreateZoneRequest represents a request to create a zone
type CreateZoneRequest struct {
	WarehouseID uuid.UUID `json:"warehouse_id" binding:"required"`
	Code        string    `json:"code" binding:"required,max=50"`
	Name        string    `json:"name" binding:"required,max=200"`
	Type        string    `json:"type" binding:"required,oneof=storage picking staging receive"`
	Capacity    int64     `json:"capacity" binding:"min=0"`
}

// UpdateZoneRequest represents a request to update a zone
type UpdateZoneRequest struct {
	Name     string `json:"name" binding:"required,max=200"`
	Capacity *int64 `json:"capacity" binding:"omitempty,min=0"`
	Notes    *string `json:"notes"`
}

// ZoneListFilter represents filter options for zone lists
type ZoneListFilter struct {
	WarehouseID *uuid.UUID `form:"warehouse_id"`
	Status      string     `form:"status" binding:"omitempty,oneof=active inactive"`
	Page        int        `form:"page" binding:"omitempty,min=1"`
	PageSize    int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ZoneService handles warehouse zone layout operations
type ZoneService struct {
	zoneRepo warehouse.ZoneRepository
}

// NewZoneService creates a new ZoneService
func NewZoneService(zoneRepo warehouse.ZoneRepository) *ZoneService {
	return &ZoneService{zoneRepo: zoneRepo}
}

// GetByID retrieves a zone by ID
func (s *ZoneService) GetByID(ctx context.Context, id uuid.UUID) (*ZoneResponse, error) {
	zone, err := s.zoneRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := toZoneResponse(zone)
	return &response, nil
}

// Create creates a new zone
func (s *ZoneService) Create(ctx context.Context, req CreateZoneRequest) (*ZoneResponse, error) {
	zone, err := warehouse.NewZone(req.WarehouseID, req.Code, req.Name, warehouse.ZoneType(req.Type))
	if err != nil {
		return nil, err
	}
	if req.Capacity > 0 {
		if err := zone.SetCapacity(req.Capacity); err != nil {
			return nil, err
		}
	}
	if err := s.zoneRepo.Save(ctx, zone); err != nil {
		return nil, err
	}
	response := toZoneResponse(zone)
	return &response, nil
}

// Update updates a zone's mutable fields
func (s *ZoneService) Update(ctx context.Context, id uuid.UUID, req UpdateZoneRequest) (*ZoneResponse, error) {
	zone, err := s.zoneRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := zone.Update(req.Name); err != nil {
		return nil, err
	}
	if req.Capacity != nil {
		if err := zone.SetCapacity(*req.Capacity); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		zone.SetNotes(*req.Notes)
	}
	if err := s.zoneRepo.Save(ctx, zone); err != nil {
		return nil, err
	}
	response := toZoneResponse(zone)
	return &response, nil
}

// Delete removes a zone
func (s *ZoneService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.zoneRepo.Delete(ctx, id)
}

// List retrieves zones with filtering and pagination
func (s *ZoneService) List(ctx context.Context, filter ZoneListFilter) ([]ZoneResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.WarehouseID != nil {
		domainFilter.Filters["warehouse_id"] = *filter.WarehouseID
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	zones, err := s.zoneRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.zoneRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ZoneResponse, 0, len(zones))
	for i := range zones {
		responses = append(responses, toZoneResponse(&zones[i]))
	}
	return responses, total, nil
}
