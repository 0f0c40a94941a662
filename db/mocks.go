package db

import (
	"context"
	"database/sql"
	"github.com/stretchr/testify/mock"
)

type SessionMock struct {
	mock.Mock
}

func NewSessionMock() *SessionMock {
	return &SessionMock{}
}

func (o *SessionMock) Execute(ctx context.Context, query string, values ...interface{}) (sql.Result, error) {
	args := o.Called(query, values)
	result, _ := args.Get(0).(sql.Result)
	return result, args.Error(1)
}

func (o *SessionMock) ExecuteIter(ctx context.Context, query string, values ...interface{}) (ResultSet, error) {
	args := o.Called(query, values)
	rs, _ := args.Get(0).(ResultSet)
	return rs, args.Error(1)
}

func (o *SessionMock) Close() error {
	return o.Called().Error(0)
}

type ResultMock struct {
	mock.Mock
}

func (o *ResultMock) Columns() []string {
	return o.Called().Get(0).([]string)
}

func (o *ResultMock) Values() []map[string]interface{} {
	args := o.Called()
	return args.Get(0).([]map[string]interface{})
}

// NewResultMock returns a result set mock holding rows.
func NewResultMock(rows ...map[string]interface{}) *ResultMock {
	if rows == nil {
		rows = []map[string]interface{}{}
	}
	columns := make([]string, 0)
	if len(rows) > 0 {
		for column := range rows[0] {
			columns = append(columns, column)
		}
	}
	resultMock := &ResultMock{}
	resultMock.
		On("Columns").Return(columns).
		On("Values").Return(rows)
	return resultMock
}

type WriteResultMock struct {
	InsertID     int64
	AffectedRows int64
}

func (r WriteResultMock) LastInsertId() (int64, error) {
	return r.InsertID, nil
}

func (r WriteResultMock) RowsAffected() (int64, error) {
	return r.AffectedRows, nil
}
