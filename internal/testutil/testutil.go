package testutil

import (
	"fmt"
	"github.com/gatortrader/gatortrader-api/db"
	"github.com/gatortrader/gatortrader-api/log"
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"io/ioutil"
	"net"
	"os"
	"path"
	"runtime"
	"strconv"
	"strings"
)

// Integration tests run against the MySQL server described by this variable,
// e.g. "root:secret@tcp(127.0.0.1:3306)/gatortrader_test".
const integrationDsnEnv = "GATOR_INTEGRATION_DSN"

var conn *sqlx.DB

func IntegrationTestsEnabled() bool {
	return os.Getenv(integrationDsnEnv) != ""
}

// IntegrationDbConfig returns the connection settings of the integration
// database.
func IntegrationDbConfig() db.Config {
	dsn, err := mysql.ParseDSN(os.Getenv(integrationDsnEnv))
	PanicIfError(err)

	cfg := db.NewConfig()
	host, port, err := net.SplitHostPort(dsn.Addr)
	PanicIfError(err)
	cfg.Host = host
	cfg.Port, err = strconv.Atoi(port)
	PanicIfError(err)
	cfg.User = dsn.User
	cfg.Password = dsn.Passwd
	cfg.Database = dsn.DBName
	return cfg
}

// SetupIntegrationTestFixture connects to the integration database and
// recreates the named schema with its fixture rows.
func SetupIntegrationTestFixture(schema string) *db.Db {
	cfg := IntegrationDbConfig()
	dbClient, err := db.NewDb(cfg, TestLogger())
	PanicIfError(err)

	if conn == nil {
		conn, err = sqlx.Open("mysql", cfg.DSN())
		PanicIfError(err)
	}
	CreateSchema(schema)
	return dbClient
}

func CreateSchema(name string) {
	_, currentFile, _, _ := runtime.Caller(0)
	dir := path.Dir(currentFile)
	content, err := ioutil.ReadFile(path.Join(dir, "schemas", name, "schema.sql"))
	PanicIfError(err)

	for _, statement := range strings.Split(string(content), ";") {
		if statement = strings.TrimSpace(statement); statement == "" {
			continue
		}
		if _, err := conn.Exec(statement); err != nil {
			panic(fmt.Sprintf("unable to execute %q: %v", statement, err))
		}
	}
}

func TearDownIntegrationTestFixture() {
	if conn != nil {
		_ = conn.Close()
		conn = nil
	}
}

func PanicIfError(err error) {
	if err != nil {
		panic(err)
	}
}

func TestLogger() log.Logger {
	if strings.ToUpper(os.Getenv("TEST_TRACE")) == "ON" {
		logger, err := zap.NewDevelopment()
		if err != nil {
			panic(err)
		}
		return log.NewZapLogger(logger)
	}

	return log.NewZapLogger(zap.NewNop())
}
