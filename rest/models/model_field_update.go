package models

// FieldUpdate sets a single attribute of a record.
type FieldUpdate struct {
	Field string      `validate:"required" json:"field"`
	Value interface{} `validate:"required" json:"value"`
}
