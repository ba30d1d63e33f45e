package report

import (
	"context"
	"time"
)

// FulfillmentSummary is a read model for shipment pipeline statistics
type FulfillmentSummary struct {
	TotalShipments int64            `json:"total_shipments"`
	ByStatus       map[string]int64 `json:"by_status"`
	PendingPicks   int64            `json:"pending_picks"`
}

// DailyShipmentVolume represents shipments shipped per day
type DailyShipmentVolume struct {
	Day      time.Time `json:"day"`
	Shipped  int64     `json:"shipped"`
	Quantity int64     `json:"quantity"`
}

// FulfillmentReportRepository defines the interface for fulfillment report queries
type FulfillmentReportRepository interface {
	// GetFulfillmentSummary returns shipment counts by status
	GetFulfillmentSummary(ctx context.Context) (*FulfillmentSummary, error)

	// GetDailyShipmentVolume returns shipped counts per day for the range
	GetDailyShipmentVolume(ctx context.Context, from, to time.Time) ([]DailyShipmentVolume, error)
}
