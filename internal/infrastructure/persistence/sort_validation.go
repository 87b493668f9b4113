package persistence

import "strings"

// CommonSortFields are allowed on every entity.
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// CompanySortFields are allowed for company queries.
var CompanySortFields = map[string]bool{
	"name": true,
	"nip":  true,
	"city": true,
}

// ContractorSortFields are allowed for contractor queries.
var ContractorSortFields = map[string]bool{
	"name": true,
	"nip":  true,
	"city": true,
}

// InvoiceSortFields are allowed for invoice queries.
var InvoiceSortFields = map[string]bool{
	"number":      true,
	"type":        true,
	"status":      true,
	"issue_date":  true,
	"due_date":    true,
	"sale_date":   true,
	"total_net":   true,
	"total_gross": true,
}

// DocumentSortFields are allowed for uploaded document queries.
var DocumentSortFields = map[string]bool{
	"file_name": true,
	"status":    true,
}

// OCRResultSortFields are allowed for recognition result queries.
var OCRResultSortFields = map[string]bool{
	"status":     true,
	"confidence": true,
}

// ValidateSortField returns the field if it is allowed for the entity,
// falling back to created_at otherwise. Keeps user-supplied order_by
// out of the SQL string.
func ValidateSortField(field string, entityFields map[string]bool) string {
	field = strings.ToLower(strings.TrimSpace(field))
	if field == "" {
		return "created_at"
	}
	if CommonSortFields[field] {
		return field
	}
	if entityFields != nil && entityFields[field] {
		return field
	}
	return "created_at"
}

// ValidateSortOrder normalizes the sort direction to asc or desc.
func ValidateSortOrder(order string) string {
	if strings.EqualFold(strings.TrimSpace(order), "asc") {
		return "asc"
	}
	return "desc"
}
