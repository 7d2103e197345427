package logging

// Standardized field names for structured logging. Keeping these in one
// place makes log output consistent and easy to filter.
const (
	FieldFile      = "file"
	FieldUser      = "user_id"
	FieldSource    = "source"
	FieldLine      = "line"
	FieldReason    = "reason"
	FieldCount     = "count"
	FieldID        = "id"
	FieldKind      = "kind"
	FieldCategory  = "category"
	FieldOperation = "operation"
	FieldDelimiter = "delimiter"
)
