package db

import (
	"context"
	"database/sql"
	"fmt"
	"github.com/gatortrader/gatortrader-api/types"
	"regexp"
	"sort"
	"strings"
)

// DefaultLimit is the number of rows returned when a request has no valid paging.
const DefaultLimit = 25

const (
	Ascending  = "ASC"
	Descending = "DESC"
)

var identifierRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

var allowedOperators = map[string]bool{
	"=":        true,
	"!=":       true,
	"<>":       true,
	">":        true,
	">=":       true,
	"<":        true,
	"<=":       true,
	"LIKE":     true,
	"NOT LIKE": true,
}

// Join describes a LEFT JOIN of Table on <owner>.Column = Table.JoinColumn.
type Join struct {
	Table      string
	Column     string
	JoinColumn string
}

// complete reports whether all three join fields are present. Partial joins
// are treated as no join at all.
func (j *Join) complete() bool {
	return j != nil && j.Table != "" && j.Column != "" && j.JoinColumn != ""
}

type ColumnOrder struct {
	Column string
	Order  string
}

// QueryRequest describes a single read. The zero value selects the first
// DefaultLimit rows of the table.
type QueryRequest struct {
	Filters   []types.Condition
	Page      int
	Limit     int
	Sort      string
	Direction string
	Join      *Join
}

// Window returns the offset and row count for the request. Page and Limit
// must both be positive for the request paging to be used; a positive Limit
// without a Page starts at offset 0.
func (r QueryRequest) Window() (offset int, limit int) {
	if r.Limit < 1 || r.Page < 0 {
		return 0, DefaultLimit
	}
	if r.Page == 0 {
		return 0, r.Limit
	}
	return (r.Page - 1) * r.Limit, r.Limit
}

func (r QueryRequest) selectInfo(table string) *SelectInfo {
	info := &SelectInfo{
		Table: table,
		Join:  r.Join,
		Where: r.Filters,
	}
	if r.Sort != "" {
		info.OrderBy = &ColumnOrder{Column: r.Sort, Order: normalizeDirection(r.Direction)}
	}
	info.Offset, info.Limit = r.Window()
	return info
}

func normalizeDirection(direction string) string {
	if strings.EqualFold(strings.TrimSpace(direction), Descending) {
		return Descending
	}
	return Ascending
}

type SelectInfo struct {
	Table   string
	Join    *Join
	Where   []types.Condition
	OrderBy *ColumnOrder
	Offset  int
	// Limit of 0 means no LIMIT clause.
	Limit int
}

type InsertInfo struct {
	Table       string
	Columns     []string
	QueryParams []interface{}
}

type UpdateInfo struct {
	Table  string
	ID     interface{}
	Column string
	Value  interface{}
}

// NewInsertInfo builds an InsertInfo from a field map. Columns are sorted so
// the generated statement is stable.
func NewInsertInfo(table string, fields map[string]interface{}) *InsertInfo {
	columns := make([]string, 0, len(fields))
	for column := range fields {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	params := make([]interface{}, len(columns))
	for i, column := range columns {
		params[i] = fields[column]
	}

	return &InsertInfo{Table: table, Columns: columns, QueryParams: params}
}

func (db *Db) Select(ctx context.Context, info *SelectInfo) (ResultSet, error) {
	query, values, err := buildSelect(info)
	if err != nil {
		return nil, err
	}
	return db.executeIter(ctx, "select", query, values...)
}

func (db *Db) Insert(ctx context.Context, info *InsertInfo) (sql.Result, error) {
	query, err := buildInsert(info)
	if err != nil {
		return nil, err
	}
	return db.execute(ctx, "insert", query, info.QueryParams...)
}

func (db *Db) Update(ctx context.Context, info *UpdateInfo) (sql.Result, error) {
	query, err := buildUpdate(info)
	if err != nil {
		return nil, err
	}
	return db.execute(ctx, "update", query, info.Value, info.ID)
}

func buildSelect(info *SelectInfo) (string, []interface{}, error) {
	if err := checkIdentifier(info.Table); err != nil {
		return "", nil, err
	}

	values := make([]interface{}, 0, len(info.Where))
	clauses := []string{"SELECT * FROM " + info.Table}

	if info.Join.complete() {
		join := info.Join
		if err := checkIdentifiers(join.Table, join.Column, join.JoinColumn); err != nil {
			return "", nil, err
		}
		clauses = append(clauses, fmt.Sprintf("LEFT JOIN %s ON %s.%s = %s.%s",
			join.Table, info.Table, join.Column, join.Table, join.JoinColumn))
	}

	if len(info.Where) > 0 {
		whereClause, err := buildCondition(info.Where, &values)
		if err != nil {
			return "", nil, err
		}
		clauses = append(clauses, "WHERE "+whereClause)
	}

	if info.OrderBy != nil {
		if err := checkIdentifier(info.OrderBy.Column); err != nil {
			return "", nil, err
		}
		clauses = append(clauses, fmt.Sprintf("ORDER BY %s %s", info.OrderBy.Column, normalizeDirection(info.OrderBy.Order)))
	}

	if info.Limit > 0 {
		clauses = append(clauses, fmt.Sprintf("LIMIT %d,%d", info.Offset, info.Limit))
	}

	return strings.Join(clauses, " "), values, nil
}

func buildInsert(info *InsertInfo) (string, error) {
	if err := checkIdentifier(info.Table); err != nil {
		return "", err
	}
	if len(info.Columns) == 0 {
		return "", fmt.Errorf("%w: insert requires at least one field", ErrInvalidRequest)
	}
	if err := checkIdentifiers(info.Columns...); err != nil {
		return "", err
	}

	setClause := info.Columns[0] + " = ?"
	for i := 1; i < len(info.Columns); i++ {
		setClause += ", " + info.Columns[i] + " = ?"
	}

	return fmt.Sprintf("INSERT INTO %s SET %s", info.Table, setClause), nil
}

func buildUpdate(info *UpdateInfo) (string, error) {
	if err := checkIdentifiers(info.Table, info.Column); err != nil {
		return "", err
	}
	return fmt.Sprintf("UPDATE %s SET %s = ? WHERE id = ?", info.Table, info.Column), nil
}

func buildCondition(condition []types.Condition, queryParameters *[]interface{}) (string, error) {
	conditionClause := ""
	for _, item := range condition {
		if conditionClause != "" {
			conditionClause += " AND "
		}

		if item.IsRaw() {
			// Caller supplied fragment, not parsed or validated. Parenthesized
			// when combined so an OR inside it cannot escape the conjunction.
			if len(condition) > 1 {
				conditionClause += "(" + item.Column + ")"
			} else {
				conditionClause += item.Column
			}
			continue
		}

		operator := strings.ToUpper(strings.TrimSpace(item.Operator))
		if !allowedOperators[operator] {
			return "", fmt.Errorf("%w: unsupported operator %q", ErrInvalidRequest, item.Operator)
		}
		if err := checkIdentifier(item.Column); err != nil {
			return "", err
		}

		conditionClause += fmt.Sprintf("%s %s ?", item.Column, operator)
		*queryParameters = append(*queryParameters, item.Value)
	}
	return conditionClause, nil
}

func checkIdentifier(name string) error {
	if !identifierRegex.MatchString(name) {
		return fmt.Errorf("%w: invalid identifier %q", ErrInvalidRequest, name)
	}
	return nil
}

func checkIdentifiers(names ...string) error {
	for _, name := range names {
		if err := checkIdentifier(name); err != nil {
			return err
		}
	}
	return nil
}
