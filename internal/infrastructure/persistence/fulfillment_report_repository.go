package persistence

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/wms/backend/internal/domain/report"
)

// GormFulfillmentReportRepository implements FulfillmentReportRepository using GORM
type GormFulfillmentReportRepository struct {
	db *gorm.DB
}

// NewGormFulfillmentReportRepository creates a new GormFulfillmentReportRepository
func NewGormFulfillmentReportRepository(db *gorm.DB) *GormFulfillmentReportRepository {
	return &GormFulfillmentReportRepository{db: db}
}

var _ report.FulfillmentReportRepository = (*GormFulfillmentReportRepository)(nil)

// GetFulfillmentSummary returns shipment counts by status plus the pick backlog
func (r *GormFulfillmentReportRepository) GetFulfillmentSummary(ctx context.Context) (*report.FulfillmentSummary, error) {
	type statusCount struct {
		Status string
		Count  int64
	}

	var rows []statusCount
	err := r.db.WithContext(ctx).Table("shipments").
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	summary := &report.FulfillmentSummary{
		ByStatus: make(map[string]int64, len(rows)),
	}
	for _, row := range rows {
		summary.ByStatus[row.Status] = row.Count
		summary.TotalShipments += row.Count
	}

	err = r.db.WithContext(ctx).Table("pick_tickets").
		Where("status = ?", "ready").
		Count(&summary.PendingPicks).Error
	if err != nil {
		return nil, err
	}

	return summary, nil
}

// GetDailyShipmentVolume returns shipped counts per day for the range
func (r *GormFulfillmentReportRepository) GetDailyShipmentVolume(ctx context.Context, from, to time.Time) ([]report.DailyShipmentVolume, error) {
	var results []report.DailyShipmentVolume

	err := r.db.WithContext(ctx).Table("shipments").
		Select(`
			DATE_TRUNC('day', ship_date) as day,
			COUNT(*) as shipped,
			COALESCE(SUM(quantity), 0) as quantity
		`).
		Where("ship_date IS NOT NULL").
		Where("ship_date BETWEEN ? AND ?", from, to).
		Where("status IN ?", []string{"shipped", "delivered"}).
		Group("DATE_TRUNC('day', ship_date)").
		Order("day ASC").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	return results, nil
}
