package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"github.com/gatortrader/gatortrader-api/log"
	"github.com/go-playground/validator/v10"
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"net"
	"strconv"
	"time"
)

// Config holds the connection settings for the MySQL server.
type Config struct {
	Host            string        `mapstructure:"host" validate:"required"`
	Port            int           `mapstructure:"port" validate:"required,min=1,max=65535"`
	User            string        `mapstructure:"user" validate:"required"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database" validate:"required"`
	MaxOpenConns    int           `mapstructure:"max-open-conns" validate:"min=0"`
	MaxIdleConns    int           `mapstructure:"max-idle-conns" validate:"min=0"`
	ConnMaxLifetime time.Duration `mapstructure:"conn-max-lifetime" validate:"min=0"`
}

func NewConfig() Config {
	return Config{
		Host:            "localhost",
		Port:            3306,
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,
	}
}

func (c Config) Validate() error {
	return validator.New().Struct(c)
}

// DSN builds the driver connection string. Columns are returned qualified
// with their table name so joined rows can be split per table.
func (c Config) DSN() string {
	cfg := mysql.NewConfig()
	cfg.User = c.User
	cfg.Passwd = c.Password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
	cfg.DBName = c.Database
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	cfg.ColumnsWithAlias = true
	cfg.Collation = "utf8mb4_general_ci"
	return cfg.FormatDSN()
}

// Db represents a connection pool to the database
type Db struct {
	session Session
	logger  log.Logger
}

// NewDb opens the connection pool described by cfg and pings the server.
func NewDb(cfg Config, logger log.Logger) (_ *Db, rerr error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid database config: %w", err)
	}

	conn, err := sqlx.Open("mysql", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed opening database connection: %w", err)
	}
	// Try to close the pool on error.
	defer func() {
		if rerr != nil {
			_ = conn.Close()
		}
	}()

	conn.SetMaxOpenConns(cfg.MaxOpenConns)
	conn.SetMaxIdleConns(cfg.MaxIdleConns)
	conn.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("failed connecting to database at %s:%d: %w", cfg.Host, cfg.Port, err)
	}

	logger.Info("connection to db successful", "host", cfg.Host, "database", cfg.Database)

	return NewDbWithSession(NewSqlSession(conn), logger), nil
}

func NewDbWithSession(session Session, logger log.Logger) *Db {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Db{
		session: session,
		logger:  logger,
	}
}

// Execute runs a raw query and returns every row.
func (db *Db) Execute(ctx context.Context, query string, values ...interface{}) (ResultSet, error) {
	return db.executeIter(ctx, "raw", query, values...)
}

func (db *Db) Close() error {
	return db.session.Close()
}

func (db *Db) executeIter(ctx context.Context, operation string, query string, values ...interface{}) (ResultSet, error) {
	db.logger.Debug("executing statement", "operation", operation, "query", query)
	rs, err := db.session.ExecuteIter(ctx, query, values...)
	if err != nil {
		return nil, wrapQueryError(query, err)
	}
	return rs, nil
}

func (db *Db) execute(ctx context.Context, operation string, query string, values ...interface{}) (sql.Result, error) {
	db.logger.Debug("executing statement", "operation", operation, "query", query)
	result, err := db.session.Execute(ctx, query, values...)
	if err != nil {
		return nil, wrapQueryError(query, err)
	}
	return result, nil
}

func wrapQueryError(query string, err error) error {
	var queryErr *QueryError
	if errors.As(err, &queryErr) {
		return err
	}
	return &QueryError{Statement: query, Err: err}
}
