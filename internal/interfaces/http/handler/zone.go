package handler

import (
	"github.com/gin-gonic/gin"

	warehouseapp "github.com/wms/backend/internal/application/warehouse"
)

// ZoneHandler handles warehouse zone API endpoints
type ZoneHandler struct {
	BaseHandler
	zoneService *warehouseapp.ZoneService
}

// NewZoneHandler creates a new ZoneHandler
func NewZoneHandler(zoneService *warehouseapp.ZoneService) *ZoneHandler {
	return &ZoneHandler{
		zoneService: zoneService,
	}
}

// Create adds a new zone to a warehouse layout
func (h *ZoneHandler) Create(c *gin.Context) {
	var req warehouseapp.CreateZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.zoneService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetByID returns a single zone
func (h *ZoneHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid zone ID format")
		return
	}

	resp, err := h.zoneService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List returns zones matching the filter
func (h *ZoneHandler) List(c *gin.Context) {
	var filter warehouseapp.ZoneListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	zones, total, err := h.zoneService.List(c.Request.Context(), filter)
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
	h.SuccessWithMeta(c, zones, total, page, pageSize)
}

// Update changes a zone's name, capacity or notes
func (h *ZoneHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid zone ID format")
		return
	}

	var req warehouseapp.UpdateZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.zoneService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete removes a zone from the layout
func (h *ZoneHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid zone ID format")
		return
	}

	if err := h.zoneService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
