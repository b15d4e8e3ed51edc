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

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// ProductSortFields contains allowed sort fields for products
var ProductSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"unit":       true,
	"unit_cost":  true,
	"min_stock":  true,
}

// DishSortFields contains allowed sort fields for dishes
var DishSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"price":      true,
	"active":     true,
}

// IngredientSortFields contains allowed sort fields for ingredients
var IngredientSortFields = map[string]bool{
	"id":                 true,
	"created_at":         true,
	"updated_at":         true,
	"product_id":         true,
	"available_quantity": true,
	"last_updated":       true,
}

// StockMovementSortFields contains allowed sort fields for stock movements
var StockMovementSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"ingredient_id": true,
	"movement_type": true,
	"occurred_on":   true,
}

// OrderSortFields contains allowed sort fields for orders
var OrderSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"table_id":   true,
	"status":     true,
	"opened_at":  true,
	"closed_at":  true,
	"total":      true,
}

// TableSortFields contains allowed sort fields for dining tables
var TableSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"capacity":   true,
	"status":     true,
	"location":   true,
}
