package fulfillment

import (
	"context"

	"go.uber.org/zap"

	"github.com/wms/backend/internal/domain/fulfillment"
)

// DefaultSyncBatchSize bounds how many ready pick tickets one run picks up
const DefaultSyncBatchSize = 200

// SyncService reconciles externally-produced pick tickets into the shipment
// table. Each run is an idempotent insert-if-absent keyed on order and item,
// so it is safe to repeat or overlap with itself.
type SyncService struct {
	txScope TransactionScope
	logger  *zap.Logger
}

// NewSyncService creates a new SyncService
func NewSyncService(txScope TransactionScope, logger *zap.Logger) *SyncService {
	return &SyncService{
		txScope: txScope,
		logger:  logger,
	}
}

// Run performs one reconciliation pass over ready pick tickets
func (s *SyncService) Run(ctx context.Context) (*SyncResult, error) {
	result := &SyncResult{}

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		tickets, err := repos.PickTicketRepo().FindReady(ctx, DefaultSyncBatchSize)
		if err != nil {
			return err
		}
		result.Scanned = len(tickets)

		for i := range tickets {
			ticket := &tickets[i]
			shipment, err := fulfillment.NewShipment(ticket.OrderID, ticket.ItemCode, ticket.ProductID, ticket.Quantity)
			if err != nil {
				// Malformed tickets stay in ready so they surface on every run
				result.Failures++
				s.logger.Warn("skipping malformed pick ticket",
					zap.String("pick_ticket_id", ticket.ID.String()),
					zap.String("order_id", ticket.OrderID),
					zap.Error(err))
				continue
			}

			created, err := repos.ShipmentRepo().CreateIfAbsent(ctx, shipment)
			if err != nil {
				return err
			}
			if created {
				result.Created++
			} else {
				result.Skipped++
			}

			ticket.MarkSynced()
			if err := repos.PickTicketRepo().Save(ctx, ticket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("pick ticket sync completed",
		zap.Int("scanned", result.Scanned),
		zap.Int("created", result.Created),
		zap.Int("skipped", result.Skipped),
		zap.Int("failures", result.Failures))

	return result, nil
}
