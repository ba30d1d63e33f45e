package handler

import (
	"github.com/gin-gonic/gin"

	scanapp "github.com/wms/backend/internal/application/scan"
)

// ScanHandler handles barcode scan API endpoints
type ScanHandler struct {
	BaseHandler
	scanService *scanapp.Service
}

// NewScanHandler creates a new ScanHandler
func NewScanHandler(scanService *scanapp.Service) *ScanHandler {
	return &ScanHandler{
		scanService: scanService,
	}
}

// Record stores a barcode scan and links it to a matching inventory item
func (h *ScanHandler) Record(c *gin.Context) {
	var req scanapp.RecordScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.scanService.Record(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// List returns the scan history matching the filter
func (h *ScanHandler) List(c *gin.Context) {
	var filter scanapp.ScanListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	events, total, err := h.scanService.List(c.Request.Context(), filter)
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
	h.SuccessWithMeta(c, events, total, page, pageSize)
}
