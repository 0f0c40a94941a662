package db

import (
	"context"
	"database/sql"
	"github.com/jmoiron/sqlx"
	"go.uber.org/atomic"
)

type Session interface {
	// Execute executes a statement without returning row results
	Execute(ctx context.Context, query string, values ...interface{}) (sql.Result, error)

	// ExecuteIter executes a statement and returns the fully read result set
	ExecuteIter(ctx context.Context, query string, values ...interface{}) (ResultSet, error)

	Close() error
}

type ResultSet interface {
	Columns() []string
	Values() []map[string]interface{}
}

type sqlResultSet struct {
	columns []string
	values  []map[string]interface{}
}

func (r *sqlResultSet) Columns() []string {
	return r.columns
}

func (r *sqlResultSet) Values() []map[string]interface{} {
	return r.values
}

func newResultSet(rows *sqlx.Rows) (*sqlResultSet, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	items := make([]map[string]interface{}, 0)
	for rows.Next() {
		row := make(map[string]interface{}, len(columns))
		if err := rows.MapScan(row); err != nil {
			return nil, err
		}
		items = append(items, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &sqlResultSet{
		columns: columns,
		values:  items,
	}, nil
}

// SqlSession runs every statement on a connection checked out from the pool
// for the duration of that statement only. The connection goes back to the
// pool after all rows have been read.
type SqlSession struct {
	ref        *sqlx.DB
	checkedOut atomic.Int32
}

func NewSqlSession(ref *sqlx.DB) *SqlSession {
	return &SqlSession{ref: ref}
}

// CheckedOut returns the number of connections currently held by statements.
func (session *SqlSession) CheckedOut() int32 {
	return session.checkedOut.Load()
}

func (session *SqlSession) checkout(ctx context.Context) (*sqlx.Conn, func(), error) {
	conn, err := session.ref.Connx(ctx)
	if err != nil {
		return nil, nil, err
	}
	session.checkedOut.Inc()
	return conn, func() {
		_ = conn.Close()
		session.checkedOut.Dec()
	}, nil
}

func (session *SqlSession) Execute(ctx context.Context, query string, values ...interface{}) (sql.Result, error) {
	conn, release, err := session.checkout(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	return conn.ExecContext(ctx, query, values...)
}

func (session *SqlSession) ExecuteIter(ctx context.Context, query string, values ...interface{}) (ResultSet, error) {
	conn, release, err := session.checkout(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	rows, err := conn.QueryxContext(ctx, query, values...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return newResultSet(rows)
}

func (session *SqlSession) Close() error {
	return session.ref.Close()
}
