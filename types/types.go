// types package contains the public API types
// that are shared between both REST and GraphQL
package types

import "net/http"

// WriteResult is the confirmation returned by insert and update operations.
// A failed insert is reported with Status false instead of an error.
type WriteResult struct {
	Status  bool       `json:"status"`
	Message string     `json:"message"`
	Data    *WriteData `json:"data,omitempty"`
}

type WriteData struct {
	InsertID     int64 `json:"insertId"`
	AffectedRows int64 `json:"affectedRows"`
}

// Condition is a single filter predicate. Conditions are combined with AND.
//
// A Condition with an empty Operator and a nil Value is a raw SQL fragment
// stored in Column, see Raw.
type Condition struct {
	Column   string      `json:"column"`
	Operator string      `json:"operator"`
	Value    interface{} `json:"value"`
}

// Raw wraps an already formed boolean SQL fragment such as "category_id=3".
// The fragment is appended to the WHERE clause as is.
func Raw(fragment string) Condition {
	return Condition{Column: fragment}
}

func Eq(column string, value interface{}) Condition {
	return Condition{Column: column, Operator: "=", Value: value}
}

func Like(column string, value interface{}) Condition {
	return Condition{Column: column, Operator: "LIKE", Value: value}
}

func (c Condition) IsRaw() bool {
	return c.Operator == "" && c.Value == nil
}

// Route represents a request route to be served
type Route struct {
	Method  string
	Pattern string
	Handler http.Handler
}
