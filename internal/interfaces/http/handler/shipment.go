package handler

import (
	"github.com/gin-gonic/gin"

	fulfillmentapp "github.com/wms/backend/internal/application/fulfillment"
)

// ShipmentHandler handles fulfillment ledger API endpoints
type ShipmentHandler struct {
	BaseHandler
	ledgerService *fulfillmentapp.LedgerService
	syncService   *fulfillmentapp.SyncService
}

// NewShipmentHandler creates a new ShipmentHandler
func NewShipmentHandler(ledgerService *fulfillmentapp.LedgerService, syncService *fulfillmentapp.SyncService) *ShipmentHandler {
	return &ShipmentHandler{
		ledgerService: ledgerService,
		syncService:   syncService,
	}
}

// Create registers a new shipment in the processing state
func (h *ShipmentHandler) Create(c *gin.Context) {
	var req fulfillmentapp.CreateShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.ledgerService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetByID returns a single shipment
func (h *ShipmentHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid shipment ID format")
		return
	}

	resp, err := h.ledgerService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List returns shipments matching the filter
func (h *ShipmentHandler) List(c *gin.Context) {
	var filter fulfillmentapp.ShipmentListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	items, total, err := h.ledgerService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	h.SuccessWithMeta(c, items, total, page, pageSize)
}

// TransitionStatus moves a shipment to a new lifecycle status. Moving into
// shipped deducts inventory and assigns a tracking number.
func (h *ShipmentHandler) TransitionStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid shipment ID format")
		return
	}

	var req fulfillmentapp.TransitionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.ledgerService.TransitionStatus(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete removes a shipment record. Stock already drawn is not restored.
func (h *ShipmentHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid shipment ID format")
		return
	}

	if err := h.ledgerService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// SyncPickTickets runs one pick ticket reconciliation sweep on demand
func (h *ShipmentHandler) SyncPickTickets(c *gin.Context) {
	result, err := h.syncService.Run(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
