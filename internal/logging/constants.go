package logging

// Standardized field names for structured logging. Keeping these in one
// place keeps log output consistent and easy to filter.
const (
	FieldFile      = "file_path"
	FieldCategory  = "category"
	FieldKeyword   = "keyword"
	FieldDetails   = "details"
	FieldCount     = "count"
	FieldDirection = "direction"
	FieldReason    = "reason"
)
