package report

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wms/backend/internal/domain/report"
	"github.com/wms/backend/internal/domain/shared"
)

const (
	cacheKeyStockSummary       = "stock_summary"
	cacheKeyStockByWarehouse   = "stock_by_warehouse"
	cacheKeyFulfillmentSummary = "fulfillment_summary"

	// DefaultCacheTTL bounds how stale a cached report payload may be
	DefaultCacheTTL = 60 * time.Second
)

// StockSummaryResponse wraps the stock summary with degradation metadata
type StockSummaryResponse struct {
	Summary  *report.StockSummary `json:"summary"`
	Degraded bool                 `json:"degraded"`
}

// StockByWarehouseResponse wraps the per-warehouse breakdown with degradation metadata
type StockByWarehouseResponse struct {
	Warehouses []report.StockValueByWarehouse `json:"warehouses"`
	Degraded   bool                           `json:"degraded"`
}

// FulfillmentSummaryResponse wraps the fulfillment summary with degradation metadata
type FulfillmentSummaryResponse struct {
	Summary  *report.FulfillmentSummary `json:"summary"`
	Degraded bool                       `json:"degraded"`
}

// LowStockResponse wraps the low-stock listing with degradation metadata
type LowStockResponse struct {
	Items    []report.LowStockItem `json:"items"`
	Degraded bool                  `json:"degraded"`
}

// Service assembles read-only reports. Unlike the mutating services, a
// storage failure here does not fail the request: the service returns an
// empty payload flagged as degraded, and the degradation decision is made
// here once rather than per query. Business errors from the domain are
// still returned as errors.
type Service struct {
	stockRepo       report.StockReportRepository
	fulfillmentRepo report.FulfillmentReportRepository
	cache           shared.ReportCache
	cacheTTL        time.Duration
	logger          *zap.Logger
}

// NewService creates a new report Service
func NewService(
	stockRepo report.StockReportRepository,
	fulfillmentRepo report.FulfillmentReportRepository,
	cache shared.ReportCache,
	logger *zap.Logger,
) *Service {
	return &Service{
		stockRepo:       stockRepo,
		fulfillmentRepo: fulfillmentRepo,
		cache:           cache,
		cacheTTL:        DefaultCacheTTL,
		logger:          logger,
	}
}

// SetCacheTTL overrides the default cache TTL. Non-positive values are ignored.
func (s *Service) SetCacheTTL(ttl time.Duration) {
	if ttl > 0 {
		s.cacheTTL = ttl
	}
}

// GetStockSummary returns aggregated stock statistics
func (s *Service) GetStockSummary(ctx context.Context, warehouseID *uuid.UUID) *StockSummaryResponse {
	key := cacheKeyStockSummary
	if warehouseID != nil {
		key += ":" + warehouseID.String()
	}

	var cached StockSummaryResponse
	if s.readCache(ctx, key, &cached) {
		return &cached
	}

	summary, err := s.stockRepo.GetStockSummary(ctx, warehouseID)
	if err != nil {
		return &StockSummaryResponse{Summary: &report.StockSummary{}, Degraded: s.degrade("stock summary", err)}
	}

	response := &StockSummaryResponse{Summary: summary}
	s.writeCache(ctx, key, response)
	return response
}

// GetStockByWarehouse returns stock value grouped by warehouse
func (s *Service) GetStockByWarehouse(ctx context.Context) *StockByWarehouseResponse {
	var cached StockByWarehouseResponse
	if s.readCache(ctx, cacheKeyStockByWarehouse, &cached) {
		return &cached
	}

	warehouses, err := s.stockRepo.GetStockValueByWarehouse(ctx)
	if err != nil {
		return &StockByWarehouseResponse{
			Warehouses: []report.StockValueByWarehouse{},
			Degraded:   s.degrade("stock by warehouse", err),
		}
	}
	if warehouses == nil {
		warehouses = []report.StockValueByWarehouse{}
	}

	response := &StockByWarehouseResponse{Warehouses: warehouses}
	s.writeCache(ctx, cacheKeyStockByWarehouse, response)
	return response
}

// GetLowStockItems returns items at or below the threshold
func (s *Service) GetLowStockItems(ctx context.Context, threshold int64, limit int) *LowStockResponse {
	if threshold < 0 {
		threshold = 0
	}
	if limit <= 0 || limit > 500 {
		limit = 50
	}

	items, err := s.stockRepo.GetLowStockItems(ctx, threshold, limit)
	if err != nil {
		return &LowStockResponse{Items: []report.LowStockItem{}, Degraded: s.degrade("low stock", err)}
	}
	if items == nil {
		items = []report.LowStockItem{}
	}
	return &LowStockResponse{Items: items}
}

// GetFulfillmentSummary returns shipment counts by status
func (s *Service) GetFulfillmentSummary(ctx context.Context) *FulfillmentSummaryResponse {
	var cached FulfillmentSummaryResponse
	if s.readCache(ctx, cacheKeyFulfillmentSummary, &cached) {
		return &cached
	}

	summary, err := s.fulfillmentRepo.GetFulfillmentSummary(ctx)
	if err != nil {
		return &FulfillmentSummaryResponse{
			Summary:  &report.FulfillmentSummary{ByStatus: map[string]int64{}},
			Degraded: s.degrade("fulfillment summary", err),
		}
	}

	response := &FulfillmentSummaryResponse{Summary: summary}
	s.writeCache(ctx, cacheKeyFulfillmentSummary, response)
	return response
}

// GetDailyShipmentVolume returns shipped counts per day for the range
func (s *Service) GetDailyShipmentVolume(ctx context.Context, from, to time.Time) ([]report.DailyShipmentVolume, bool) {
	volumes, err := s.fulfillmentRepo.GetDailyShipmentVolume(ctx, from, to)
	if err != nil {
		return []report.DailyShipmentVolume{}, s.degrade("daily shipment volume", err)
	}
	if volumes == nil {
		volumes = []report.DailyShipmentVolume{}
	}
	return volumes, false
}

// degrade logs the storage failure and reports whether the payload is
// degraded. Domain errors are not expected from report queries; they are
// treated the same as storage failures here.
func (s *Service) degrade(name string, err error) bool {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) && domainErr.Code == shared.ErrNotFound.Code {
		// No rows is an empty report, not a degraded one
		return false
	}
	s.logger.Warn("report query failed, serving degraded payload",
		zap.String("report", name),
		zap.Error(err))
	return true
}

func (s *Service) readCache(ctx context.Context, key string, out any) bool {
	if s.cache == nil {
		return false
	}
	payload, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("report cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(payload, out); err != nil {
		s.logger.Warn("report cache payload corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *Service) writeCache(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, payload, s.cacheTTL); err != nil {
		s.logger.Warn("report cache write failed", zap.String("key", key), zap.Error(err))
	}
}
