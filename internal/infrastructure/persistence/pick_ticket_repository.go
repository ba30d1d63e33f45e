package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/wms/backend/internal/domain/fulfillment"
)

// GormPickTicketRepository implements PickTicketRepository using GORM
type GormPickTicketRepository struct {
	db *gorm.DB
}

// NewGormPickTicketRepository creates a new GormPickTicketRepository
func NewGormPickTicketRepository(db *gorm.DB) *GormPickTicketRepository {
	return &GormPickTicketRepository{db: db}
}

// FindReady returns ready tickets oldest-first, bounded by limit
func (r *GormPickTicketRepository) FindReady(ctx context.Context, limit int) ([]fulfillment.PickTicket, error) {
	var tickets []fulfillment.PickTicket
	if err := r.db.WithContext(ctx).
		Where("status = ?", fulfillment.PickTicketReady).
		Order("picked_at ASC").
		Limit(limit).
		Find(&tickets).Error; err != nil {
		return nil, err
	}
	return tickets, nil
}

// Save creates or updates a pick ticket
func (r *GormPickTicketRepository) Save(ctx context.Context, ticket *fulfillment.PickTicket) error {
	return r.db.WithContext(ctx).Save(ticket).Error
}

// Ensure GormPickTicketRepository implements PickTicketRepository
var _ fulfillment.PickTicketRepository = (*GormPickTicketRepository)(nil)
