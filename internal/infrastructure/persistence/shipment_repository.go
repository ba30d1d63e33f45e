package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wms/backend/internal/domain/fulfillment"
	"github.com/wms/backend/internal/domain/shared"
)

// GormShipmentRepository implements ShipmentRepository using GORM
type GormShipmentRepository struct {
	db *gorm.DB
}

// NewGormShipmentRepository creates a new GormShipmentRepository
func NewGormShipmentRepository(db *gorm.DB) *GormShipmentRepository {
	return &GormShipmentRepository{db: db}
}

// FindByID finds a shipment by its ID
func (r *GormShipmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*fulfillment.Shipment, error) {
	var shipment fulfillment.Shipment
	if err := r.db.WithContext(ctx).First(&shipment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &shipment, nil
}

// FindAll finds shipments matching the filter
func (r *GormShipmentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]fulfillment.Shipment, error) {
	var shipments []fulfillment.Shipment
	query := r.applyFilter(r.db.WithContext(ctx).Model(&fulfillment.Shipment{}), filter)
	if err := query.Find(&shipments).Error; err != nil {
		return nil, err
	}
	return shipments, nil
}

// Count counts shipments matching the filter
func (r *GormShipmentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&fulfillment.Shipment{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a shipment
func (r *GormShipmentRepository) Save(ctx context.Context, shipment *fulfillment.Shipment) error {
	return r.db.WithContext(ctx).Save(shipment).Error
}

// SaveWithStatusGuard updates the transition fields only when the stored row
// still carries the expected status. Zero affected rows means a concurrent
// transition won the race, so the caller's deduction must roll back.
func (r *GormShipmentRepository) SaveWithStatusGuard(ctx context.Context, shipment *fulfillment.Shipment, expected fulfillment.ShipmentStatus) error {
	result := r.db.WithContext(ctx).
		Model(&fulfillment.Shipment{}).
		Where("id = ? AND status = ?", shipment.ID, expected).
		Updates(map[string]interface{}{
			"status":          shipment.Status,
			"tracking_number": shipment.TrackingNumber,
			"ship_date":       shipment.ShipDate,
			"delivery_date":   shipment.DeliveryDate,
			"updated_at":      shipment.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("CONFLICT", "Shipment was modified by another transaction")
	}
	return nil
}

// Delete deletes a shipment. Allowed administratively at any state; stock is
// not restored for shipped rows.
func (r *GormShipmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&fulfillment.Shipment{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CreateIfAbsent inserts the shipment only when no row exists for its
// order and item. Returns true when a row was inserted. The ON CONFLICT
// guard makes concurrent reconciliation runs safe against each other.
func (r *GormShipmentRepository) CreateIfAbsent(ctx context.Context, shipment *fulfillment.Shipment) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "order_id"}, {Name: "item_code"}},
			DoNothing: true,
		}).
		Create(shipment)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// CountByStatus returns shipment counts grouped by status
func (r *GormShipmentRepository) CountByStatus(ctx context.Context) (map[fulfillment.ShipmentStatus]int64, error) {
	var rows []struct {
		Status fulfillment.ShipmentStatus
		Count  int64
	}
	if err := r.db.WithContext(ctx).
		Model(&fulfillment.Shipment{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[fulfillment.ShipmentStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// applyFilter applies filter options to the query
func (r *GormShipmentRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ShipmentSortFields, "updated_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormShipmentRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		query = query.Where("order_id ILIKE ? OR item_code ILIKE ? OR tracking_number ILIKE ?", search, search, search)
	}
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "order_id":
			query = query.Where("order_id = ?", value)
		}
	}
	return query
}

// Ensure GormShipmentRepository implements ShipmentRepository
var _ fulfillment.ShipmentRepository = (*GormShipmentRepository)(nil)
