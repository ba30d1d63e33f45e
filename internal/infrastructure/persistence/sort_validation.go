package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// InventorySortFields contains allowed sort fields for inventory items
var InventorySortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"item_code":    true,
	"product_id":   true,
	"warehouse_id": true,
	"quantity":     true,
	"unit_cost":    true,
	"status":       true,
}

// ShipmentSortFields contains allowed sort fields for shipments
var ShipmentSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"order_id":      true,
	"item_code":     true,
	"status":        true,
	"quantity":      true,
	"ship_date":     true,
	"delivery_date": true,
}

// ZoneSortFields contains allowed sort fields for warehouse zones
var ZoneSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"code":       true,
	"name":       true,
	"type":       true,
	"status":     true,
	"sort_order": true,
}

// ScanEventSortFields contains allowed sort fields for scan events
var ScanEventSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"barcode":    true,
	"type":       true,
}
