package db

import (
	"errors"
	"fmt"
	"github.com/go-sql-driver/mysql"
)

var (
	// ErrQueryFailed matches every *QueryError.
	ErrQueryFailed = errors.New("query failed")
	// ErrInvalidRequest is returned when a request cannot be turned into a
	// safe statement, e.g. a table or column name is not a plain identifier.
	ErrInvalidRequest = errors.New("invalid request")
)

// QueryError is returned when the database rejects a statement or the
// connection fails. Statement holds the generated SQL for diagnostics.
type QueryError struct {
	Statement string
	Err       error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query failed: %v", e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

func (e *QueryError) Is(target error) bool {
	return target == ErrQueryFailed
}

type ConstraintCode int

const (
	NoConstraint ConstraintCode = iota
	UniqueViolation
	ForeignKeyViolation
	NotNullViolation
)

func (c ConstraintCode) String() string {
	switch c {
	case UniqueViolation:
		return "unique_violation"
	case ForeignKeyViolation:
		return "foreign_key_violation"
	case NotNullViolation:
		return "not_null_violation"
	}
	return "none"
}

// MySQL server error numbers, see
// https://dev.mysql.com/doc/mysql-errors/8.0/en/server-error-reference.html
const (
	erDupEntry         = 1062
	erBadNullError     = 1048
	erRowIsReferenced2 = 1451
	erNoReferencedRow2 = 1452
	erRowIsReferenced  = 1217
	erNoReferencedRow  = 1216
)

// ConstraintViolation classifies err when it is a MySQL constraint
// violation, and returns NoConstraint otherwise.
func ConstraintViolation(err error) ConstraintCode {
	var mysqlErr *mysql.MySQLError
	if !errors.As(err, &mysqlErr) {
		return NoConstraint
	}
	switch mysqlErr.Number {
	case erDupEntry:
		return UniqueViolation
	case erNoReferencedRow, erNoReferencedRow2, erRowIsReferenced, erRowIsReferenced2:
		return ForeignKeyViolation
	case erBadNullError:
		return NotNullViolation
	}
	return NoConstraint
}
