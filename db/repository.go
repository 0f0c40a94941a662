package db

import (
	"context"
	"database/sql"
	"fmt"
	"github.com/gatortrader/gatortrader-api/types"
)

const (
	InsertSucceededMessage = "Record inserted successfully"
	InsertFailedMessage    = "Error: could not create new record."
)

// Entity binds a domain type to its backing table and row mapping function.
// MapRow returns the mapped value even when some columns could not be
// converted, along with the conversion error.
type Entity[T any] struct {
	Table  string
	MapRow func(Record) (T, error)
}

// Repository runs the generic read and write operations of an Entity.
// It holds no per call state and is safe for concurrent use.
type Repository[T any] struct {
	db     *Db
	entity Entity[T]
}

func NewRepository[T any](db *Db, entity Entity[T]) *Repository[T] {
	return &Repository[T]{db: db, entity: entity}
}

func (r *Repository[T]) Table() string {
	return r.entity.Table
}

// FetchByID returns the row with the given id, optionally joined with a
// second table. When no row matches, the entity is mapped from an empty
// Record and no error is returned.
func (r *Repository[T]) FetchByID(ctx context.Context, id int64, join *Join) (T, error) {
	table := r.entity.Table
	rs, err := r.db.Select(ctx, &SelectInfo{
		Table: table,
		Join:  join,
		Where: []types.Condition{types.Eq(table+".id", id)},
	})
	if err != nil {
		var empty T
		return empty, err
	}

	record := Record{}
	if values := rs.Values(); len(values) > 0 {
		record = newRecord(values[0])
	}
	return r.mapRow(record), nil
}

// FetchBySQL runs a prebuilt query and maps every returned row.
func (r *Repository[T]) FetchBySQL(ctx context.Context, query string, values ...interface{}) ([]T, error) {
	rs, err := r.db.Execute(ctx, query, values...)
	if err != nil {
		return nil, err
	}
	return r.mapRows(rs), nil
}

// FetchMany builds a SELECT from the request and maps every returned row in
// the order the database returned them.
func (r *Repository[T]) FetchMany(ctx context.Context, request QueryRequest) ([]T, error) {
	rs, err := r.db.Select(ctx, request.selectInfo(r.entity.Table))
	if err != nil {
		return nil, err
	}
	return r.mapRows(rs), nil
}

// Insert adds a record built from fields. Failures, including constraint
// violations such as a duplicate email, are reported through the result
// and never as an error.
func (r *Repository[T]) Insert(ctx context.Context, fields map[string]interface{}) types.WriteResult {
	result, err := r.db.Insert(ctx, NewInsertInfo(r.entity.Table, fields))
	if err != nil {
		r.db.logger.Warn("unable to insert record",
			"table", r.entity.Table,
			"constraint", ConstraintViolation(err).String(),
			"error", err)
		return types.WriteResult{
			Status:  false,
			Message: InsertFailedMessage,
		}
	}

	return types.WriteResult{
		Status:  true,
		Message: InsertSucceededMessage,
		Data:    writeData(result),
	}
}

// UpdateField sets a single field of the record with the given id. Unlike
// Insert, failures are returned as errors.
func (r *Repository[T]) UpdateField(ctx context.Context, id int64, field string, value interface{}) (types.WriteResult, error) {
	result, err := r.db.Update(ctx, &UpdateInfo{
		Table:  r.entity.Table,
		ID:     id,
		Column: field,
		Value:  value,
	})
	if err != nil {
		return types.WriteResult{}, err
	}

	return types.WriteResult{
		Status:  true,
		Message: fmt.Sprintf("Updated record id: %d, attribute: %s, to new value: %v", id, field, value),
		Data:    writeData(result),
	}, nil
}

func (r *Repository[T]) mapRows(rs ResultSet) []T {
	values := rs.Values()
	items := make([]T, len(values))
	for i, row := range values {
		items[i] = r.mapRow(newRecord(row))
	}
	return items
}

// mapRow keeps the partially mapped value when a column cannot be converted.
func (r *Repository[T]) mapRow(record Record) T {
	item, err := r.entity.MapRow(record)
	if err != nil {
		r.db.logger.Warn("unable to map row",
			"table", r.entity.Table,
			"error", err)
	}
	return item
}

func writeData(result sql.Result) *types.WriteData {
	if result == nil {
		return nil
	}
	data := &types.WriteData{}
	if id, err := result.LastInsertId(); err == nil {
		data.InsertID = id
	}
	if affected, err := result.RowsAffected(); err == nil {
		data.AffectedRows = affected
	}
	return data
}
