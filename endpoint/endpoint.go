package endpoint

import (
	"github.com/gatortrader/gatortrader-api/config"
	"github.com/gatortrader/gatortrader-api/db"
	"github.com/gatortrader/gatortrader-api/graphql"
	"github.com/gatortrader/gatortrader-api/log"
	"github.com/gatortrader/gatortrader-api/models"
	restEndpointV1 "github.com/gatortrader/gatortrader-api/rest/endpoint/v1"
	"github.com/gatortrader/gatortrader-api/types"
	"go.uber.org/zap"
)

type DataEndpointConfig struct {
	dbConfig     db.Config
	naming       config.NamingConvention
	supportedOps config.Operations
	pageSize     int
	logger       log.Logger
}

func (cfg DataEndpointConfig) Naming() config.NamingConvention {
	return cfg.naming
}

func (cfg DataEndpointConfig) SupportedOperations() config.Operations {
	return cfg.supportedOps
}

func (cfg DataEndpointConfig) DefaultPageSize() int {
	return cfg.pageSize
}

func (cfg DataEndpointConfig) Logger() log.Logger {
	return cfg.logger
}

func (cfg *DataEndpointConfig) WithDbConfig(dbConfig db.Config) *DataEndpointConfig {
	cfg.dbConfig = dbConfig
	return cfg
}

func (cfg *DataEndpointConfig) WithNaming(naming config.NamingConvention) *DataEndpointConfig {
	cfg.naming = naming
	return cfg
}

func (cfg *DataEndpointConfig) WithSupportedOperations(supportedOps config.Operations) *DataEndpointConfig {
	cfg.supportedOps = supportedOps
	return cfg
}

// WithPageSize sets the number of rows per page of a search. Values lower
// than 1 keep the default.
func (cfg *DataEndpointConfig) WithPageSize(pageSize int) *DataEndpointConfig {
	if pageSize > 0 {
		cfg.pageSize = pageSize
	}
	return cfg
}

func (cfg DataEndpointConfig) NewEndpoint() (*DataEndpoint, error) {
	dbClient, err := db.NewDb(cfg.dbConfig, cfg.logger)
	if err != nil {
		return nil, err
	}
	return cfg.newEndpointWithDb(dbClient), nil
}

func (cfg DataEndpointConfig) newEndpointWithDb(dbClient *db.Db) *DataEndpoint {
	repos := models.NewRepositories(dbClient)
	return &DataEndpoint{
		dbClient:        dbClient,
		repos:           repos,
		config:          cfg,
		graphQLRouteGen: graphql.NewRouteGenerator(repos, cfg),
	}
}

type DataEndpoint struct {
	dbClient        *db.Db
	repos           *models.Repositories
	config          config.Config
	graphQLRouteGen *graphql.RouteGenerator
}

func NewEndpointConfig() (*DataEndpointConfig, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return NewEndpointConfigWithLogger(log.NewZapLogger(logger)), nil
}

func NewEndpointConfigWithLogger(logger log.Logger) *DataEndpointConfig {
	return &DataEndpointConfig{
		dbConfig:     db.NewConfig(),
		naming:       config.NewDefaultNaming(),
		supportedOps: config.AllOperations,
		pageSize:     db.DefaultLimit,
		logger:       logger,
	}
}

func (e *DataEndpoint) RoutesGraphQL(pattern string) ([]types.Route, error) {
	return e.graphQLRouteGen.Routes(pattern)
}

func (e *DataEndpoint) RoutesREST(prefix string) []types.Route {
	return restEndpointV1.Routes(prefix, e.config, e.repos)
}

// Close releases the connection pool.
func (e *DataEndpoint) Close() error {
	return e.dbClient.Close()
}
