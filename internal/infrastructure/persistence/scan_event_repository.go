package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wms/backend/internal/domain/scan"
	"github.com/wms/backend/internal/domain/shared"
)

// GormScanEventRepository implements ScanEventRepository using GORM
type GormScanEventRepository struct {
	db *gorm.DB
}

// NewGormScanEventRepository creates a new GormScanEventRepository
func NewGormScanEventRepository(db *gorm.DB) *GormScanEventRepository {
	return &GormScanEventRepository{db: db}
}

// FindByID finds a scan event by its ID
func (r *GormScanEventRepository) FindByID(ctx context.Context, id uuid.UUID) (*scan.ScanEvent, error) {
	var event scan.ScanEvent
	if err := r.db.WithContext(ctx).First(&event, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &event, nil
}

// FindAll finds scan events matching the filter
func (r *GormScanEventRepository) FindAll(ctx context.Context, filter shared.Filter) ([]scan.ScanEvent, error) {
	var events []scan.ScanEvent
	query := r.applyFilter(r.db.WithContext(ctx).Model(&scan.ScanEvent{}), filter)
	if err := query.Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// Count counts scan events matching the filter
func (r *GormScanEventRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&scan.ScanEvent{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates a scan event. Events are append-only.
func (r *GormScanEventRepository) Save(ctx context.Context, event *scan.ScanEvent) error {
	return r.db.WithContext(ctx).Save(event).Error
}

func (r *GormScanEventRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ScanEventSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

func (r *GormScanEventRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "barcode":
			query = query.Where("barcode = ?", value)
		case "type":
			query = query.Where("type = ?", value)
		case "item_id":
			query = query.Where("item_id = ?", value)
		case "matched":
			query = query.Where("matched = ?", value)
		}
	}
	return query
}

// Ensure GormScanEventRepository implements ScanEventRepository
var _ scan.ScanEventRepository = (*GormScanEventRepository)(nil)
