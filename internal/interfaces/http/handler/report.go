package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	reportapp "github.com/wms/backend/internal/application/report"
)

const reportDateLayout = "2006-01-02"

// ReportHandler handles read-only reporting API endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.Service
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.Service) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// DailyVolumeFilterRequest defines the date range for daily shipment volume
type DailyVolumeFilterRequest struct {
	StartDate string `form:"start_date" binding:"required"`
	EndDate   string `form:"end_date" binding:"required"`
}

// DailyVolumeResponse wraps the volume rows with degradation metadata
type DailyVolumeResponse struct {
	Days     interface{} `json:"days"`
	Degraded bool        `json:"degraded"`
}

// GetStockSummary returns aggregate stock statistics, optionally scoped to
// one warehouse
func (h *ReportHandler) GetStockSummary(c *gin.Context) {
	var warehouseID *uuid.UUID
	if raw := c.Query("warehouse_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid warehouse ID format")
			return
		}
		warehouseID = &id
	}

	h.Success(c, h.reportService.GetStockSummary(c.Request.Context(), warehouseID))
}

// GetStockByWarehouse returns stock value grouped by warehouse
func (h *ReportHandler) GetStockByWarehouse(c *gin.Context) {
	h.Success(c, h.reportService.GetStockByWarehouse(c.Request.Context()))
}

// GetLowStockItems returns items at or below the given threshold
func (h *ReportHandler) GetLowStockItems(c *gin.Context) {
	threshold := int64(10)
	if raw := c.Query("threshold"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.BadRequest(c, "Invalid threshold value")
			return
		}
		threshold = parsed
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.BadRequest(c, "Invalid limit value")
			return
		}
		limit = parsed
	}

	h.Success(c, h.reportService.GetLowStockItems(c.Request.Context(), threshold, limit))
}

// GetFulfillmentSummary returns shipment counts by status and the pick backlog
func (h *ReportHandler) GetFulfillmentSummary(c *gin.Context) {
	h.Success(c, h.reportService.GetFulfillmentSummary(c.Request.Context()))
}

// GetDailyShipmentVolume returns shipped counts per day for a date range
func (h *ReportHandler) GetDailyShipmentVolume(c *gin.Context) {
	var req DailyVolumeFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	from, err := time.Parse(reportDateLayout, req.StartDate)
	if err != nil {
		h.BadRequest(c, "Invalid start_date, expected YYYY-MM-DD")
		return
	}
	to, err := time.Parse(reportDateLayout, req.EndDate)
	if err != nil {
		h.BadRequest(c, "Invalid end_date, expected YYYY-MM-DD")
		return
	}
	if from.After(to) {
		h.BadRequest(c, "start_date must not be after end_date")
		return
	}

	// Include the whole end day
	to = to.Add(24*time.Hour - time.Nanosecond)

	days, degraded := h.reportService.GetDailyShipmentVolume(c.Request.Context(), from, to)
	h.Success(c, DailyVolumeResponse{Days: days, Degraded: degraded})
}
