package scan

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/wms/backend/internal/domain/inventory"
	"github.com/wms/backend/internal/domain/scan"
	"github.com/wms/backend/internal/domain/shared"
)

// ScanEventResponse represents a scan event in API responses
type ScanEventResponse struct {
	ID          uuid.UUID  `json:"id"`
	Barcode     string     `json:"barcode"`
	Type        string     `json:"type"`
	ItemID      *uuid.UUID `json:"item_id,omitempty"`
	ZoneID      *uuid.UUID `json:"zone_id,omitempty"`
	Quantity    int64      `json:"quantity"`
	OperatorRef string     `json:"operator_ref,omitempty"`
	Matched     bool       `json:"matched"`
	CreatedAt   time.Time  `json:"created_at"`
}

func toScanEventResponse(e *scan.ScanEvent) ScanEventResponse {
	return ScanEventResponse{
		ID:          e.ID,
		Barcode:     e.Barcode,
		Type:        string(e.Type),
		ItemID:      e.ItemID,
		ZoneID:      e.ZoneID,
		Quantity:    e.Quantity,
		OperatorRef: e.OperatorRef,
		Matched:     e.Matched,
		CreatedAt:   e.CreatedAt,
	}
}

// RecordScanRequest represents a barcode scan submission
type RecordScanRequest struct {
	Barcode     string     `json:"barcode" binding:"required,max=100"`
	Type        string     `json:"type" binding:"required,oneof=receive pick count lookup"`
	Quantity    int64      `json:"quantity" binding:"omitempty,min=1"`
	ZoneID      *uuid.UUID `json:"zone_id"`
	OperatorRef string     `json:"operator_ref" binding:"omitempty,max=100"`
}

// ScanListFilter represents filter options for scan history
type ScanListFilter struct {
	Barcode  string `form:"barcode"`
	Type     string `form:"type" binding:"omitempty,oneof=receive pick count lookup"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// Service records barcode scans and keeps the scan history. A scan whose
// barcode matches an item code is linked to that item; unmatched scans are
// still recorded so the floor can audit them.
type Service struct {
	eventRepo scan.ScanEventRepository
	itemRepo  inventory.InventoryItemRepository
}

// NewService creates a new scan Service
func NewService(eventRepo scan.ScanEventRepository, itemRepo inventory.InventoryItemRepository) *Service {
	return &Service{eventRepo: eventRepo, itemRepo: itemRepo}
}

// Record stores a scan event, resolving the barcode against item codes
func (s *Service) Record(ctx context.Context, req RecordScanRequest) (*ScanEventResponse, error) {
	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	event, err := scan.NewScanEvent(req.Barcode, scan.ScanType(req.Type), quantity)
	if err != nil {
		return nil, err
	}
	if req.ZoneID != nil {
		event.SetZone(*req.ZoneID)
	}
	if req.OperatorRef != "" {
		event.SetOperator(req.OperatorRef)
	}

	item, err := s.itemRepo.FindByItemCode(ctx, event.Barcode)
	if err == nil {
		event.MarkMatched(item.ID)
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	if err := s.eventRepo.Save(ctx, event); err != nil {
		return nil, err
	}
	response := toScanEventResponse(event)
	return &response, nil
}

// List retrieves scan history, most recent first
func (s *Service) List(ctx context.Context, filter ScanListFilter) ([]ScanEventResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	domainFilter.OrderBy = "created_at"
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.Barcode != "" {
		domainFilter.Filters["barcode"] = filter.Barcode
	}
	if filter.Type != "" {
		domainFilter.Filters["type"] = filter.Type
	}

	events, err := s.eventRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.eventRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ScanEventResponse, 0, len(events))
	for i := range events {
		responses = append(responses, toScanEventResponse(&events[i]))
	}
	return responses, total, nil
}
