package cmd

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"github.com/gatortrader/gatortrader-api/config"
	"github.com/gatortrader/gatortrader-api/db"
	"github.com/gatortrader/gatortrader-api/endpoint"
	"github.com/gatortrader/gatortrader-api/graphql"
	"github.com/gatortrader/gatortrader-api/log"
	"github.com/julienschmidt/httprouter"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	log2 "log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
)

const defaultGraphQLPath = "/graphql"
const defaultRESTPath = "/api"
const defaultGraphQLPlaygroundPath = "/graphql-playground"
const shutdownTimeout = 10 * time.Second

// Environment variables prefixed with "GATOR_" can override settings e.g. "GATOR_DB_HOST"
const envVarPrefix = "gator"

var cfgFile string
var logger log.Logger
var cfg *endpoint.DataEndpointConfig

var serverCmd = &cobra.Command{
	Use:   os.Args[0] + " --db-user [USER] --db-name [DATABASE] [--start-graphql|--start-rest] [OPTIONS]",
	Short: "REST and GraphQL endpoints for the GatorTrader marketplace",
	Args: func(cmd *cobra.Command, args []string) error {
		if viper.GetString("db-user") == "" {
			return errors.New("database user is required")
		}
		if viper.GetString("db-name") == "" {
			return errors.New("database name is required")
		}

		startGraphQL := viper.GetBool("start-graphql")
		startREST := viper.GetBool("start-rest")

		if !startGraphQL && !startREST {
			return errors.New("at least one endpoint type should be started")
		}

		if startGraphQL && startREST &&
			viper.GetInt("graphql-port") == viper.GetInt("rest-port") &&
			viper.GetString("graphql-path") == viper.GetString("rest-path") {
			return errors.New("graphql and rest paths can not be the same when using the same port")
		}

		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		endpoint := createEndpoint()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		servers := createServers(endpoint)
		errs := make(chan error, len(servers))
		for _, server := range servers {
			go func(server *http.Server) {
				errs <- server.ListenAndServe()
			}(server)
		}

		select {
		case <-ctx.Done():
			logger.Info("shutting down")
		case err := <-errs:
			logger.Error("server stopped unexpectedly", "error", err)
		}

		shutdown(servers)
		if err := endpoint.Close(); err != nil {
			logger.Error("unable to close database connections", "error", err)
		}
	},
}

// Execute start GraphQL/REST endpoints
func Execute() {
	zapLogger, err := zap.NewProduction()
	if err != nil {
		log2.Fatalf("unable to initialize logger: %v", err)
	}

	logger = log.NewZapLogger(zapLogger)

	dbDefaults := db.NewConfig()
	flags := serverCmd.PersistentFlags()

	// Database flags
	flags.StringVarP(&cfgFile, "config", "c", "", "config file")
	flags.StringP("db-host", "t", dbDefaults.Host, "host of the MySQL server")
	flags.Int("db-port", dbDefaults.Port, "port of the MySQL server")
	flags.StringP("db-user", "u", "", "connect with database username")
	flags.StringP("db-password", "p", "", "database user's password")
	flags.String("db-name", "", "name of the marketplace database")
	flags.Int("db-max-open-conns", dbDefaults.MaxOpenConns, "maximum number of open connections in the pool")
	flags.Int("db-max-idle-conns", dbDefaults.MaxIdleConns, "maximum number of idle connections in the pool")
	flags.Duration("db-conn-max-lifetime", dbDefaults.ConnMaxLifetime, "maximum amount of time a connection may be reused")

	// General endpoint flags
	flags.Bool("request-logging", false, "enable request logging")
	flags.StringSlice("operations", []string{
		"Insert",
		"Update",
	}, "list of supported write operations. options: Insert,Update")
	flags.Int("page-size", db.DefaultLimit, "number of posts returned per page")
	flags.String("access-control-allow-origin", "", "Access-Control-Allow-Origin header value")

	// GraphQL specific flags
	flags.Bool("start-graphql", true, "start the GraphQL endpoint")
	flags.String("graphql-path", defaultGraphQLPath, "GraphQL endpoint path")
	flags.Bool("graphql-playground", true, "expose a GraphQL playground route")
	flags.String("graphql-playground-path", defaultGraphQLPlaygroundPath, "path for the GraphQL playground static file")
	flags.Int("graphql-port", 8080, "GraphQL endpoint port")

	// REST specific flags
	flags.Bool("start-rest", true, "start the REST endpoint")
	flags.String("rest-path", defaultRESTPath, "REST endpoint path")
	flags.Int("rest-port", 8080, "REST endpoint port")

	flags.VisitAll(func(flag *pflag.Flag) {
		if flag.Name != "config" {
			viper.BindPFlag(flag.Name, flags.Lookup(flag.Name))
		}
	})

	cobra.OnInitialize(initialize)

	viper.SetEnvPrefix(envVarPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := serverCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func createEndpoint() *endpoint.DataEndpoint {
	cfg = endpoint.NewEndpointConfigWithLogger(logger)

	supportedOps := getStringSlice("operations")
	ops, err := config.Ops(supportedOps...)
	if err != nil {
		logger.Fatal("invalid supported operation", "operations", supportedOps, "error", err)
	}

	cfg.
		WithDbConfig(dbConfig()).
		WithSupportedOperations(ops).
		WithPageSize(viper.GetInt("page-size"))

	endpoint, err := cfg.NewEndpoint()
	if err != nil {
		logger.Fatal("unable create new endpoint",
			"error", err)
	}

	return endpoint
}

func dbConfig() db.Config {
	return db.Config{
		Host:            viper.GetString("db-host"),
		Port:            viper.GetInt("db-port"),
		User:            viper.GetString("db-user"),
		Password:        viper.GetString("db-password"),
		Database:        viper.GetString("db-name"),
		MaxOpenConns:    viper.GetInt("db-max-open-conns"),
		MaxIdleConns:    viper.GetInt("db-max-idle-conns"),
		ConnMaxLifetime: viper.GetDuration("db-conn-max-lifetime"),
	}
}

func addGraphQLRoutes(router *httprouter.Router, endpoint *endpoint.DataEndpoint) {
	rootPath := viper.GetString("graphql-path")

	routes, err := endpoint.RoutesGraphQL(rootPath)
	if err != nil {
		logger.Fatal("unable to generate graphql routes",
			"error", err)
	}

	for _, route := range routes {
		router.Handler(route.Method, route.Pattern, route.Handler)
	}

	if viper.GetBool("graphql-playground") {
		playgroundPath := viper.GetString("graphql-playground-path")
		hostAndPort := fmt.Sprintf("http://localhost:%d", viper.GetInt("graphql-port"))
		defaultEndpointUrl := fmt.Sprintf("%s%s", hostAndPort, rootPath)
		logger.Info("get started by visiting the GraphQL playground",
			"url", fmt.Sprintf("%s%s", hostAndPort, playgroundPath))
		router.GET(playgroundPath, graphql.GetPlaygroundHandle(defaultEndpointUrl))
	}
}

func addRESTRoutes(router *httprouter.Router, endpoint *endpoint.DataEndpoint) {
	for _, route := range endpoint.RoutesREST(viper.GetString("rest-path")) {
		router.Handler(route.Method, route.Pattern, route.Handler)
	}
}

func maybeAddRequestLogging(handler http.Handler) http.Handler {
	if viper.GetBool("request-logging") {
		handler = log.NewLoggingHandler(handler, logger)
	}
	return handler
}

func maybeAddCORS(handler http.Handler) http.Handler {
	if value := viper.GetString("access-control-allow-origin"); value != "" {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", value)
			handler.ServeHTTP(w, r)
		})
	}
	return handler
}

func initialize() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err == nil {
			logger.Info("using config file",
				"file", viper.ConfigFileUsed())
		}
	}
}

func createRouter() *httprouter.Router {
	router := httprouter.New()
	if value := viper.GetString("access-control-allow-origin"); value != "" {
		router.GlobalOPTIONS = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Access-Control-Request-Method") != "" {
				header := w.Header()
				header.Set("Access-Control-Allow-Methods", r.Header.Get("Access-Control-Request-Method"))
				header.Set("Access-Control-Allow-Headers", r.Header.Get("Access-Control-Request-Headers"))
				header.Set("Access-Control-Allow-Origin", value)
			}

			w.WriteHeader(http.StatusNoContent)
		})
	}
	return router
}

// createServers returns one server per configured port. GraphQL and REST
// share a router when they are configured on the same port.
func createServers(endpoint *endpoint.DataEndpoint) []*http.Server {
	routers := make(map[int]*httprouter.Router)
	names := make(map[int][]string)
	routerFor := func(port int, name string) *httprouter.Router {
		names[port] = append(names[port], name)
		if router, ok := routers[port]; ok {
			return router
		}
		routers[port] = createRouter()
		return routers[port]
	}

	if viper.GetBool("start-graphql") {
		addGraphQLRoutes(routerFor(viper.GetInt("graphql-port"), "GraphQL"), endpoint)
	}
	if viper.GetBool("start-rest") {
		addRESTRoutes(routerFor(viper.GetInt("rest-port"), "REST"), endpoint)
	}

	servers := make([]*http.Server, 0, len(routers))
	for port, router := range routers {
		logger.Info("server listening",
			"port", port,
			"type", strings.Join(names[port], "/"))
		servers = append(servers, &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: maybeAddCORS(maybeAddRequestLogging(router)),
		})
	}
	return servers
}

func shutdown(servers []*http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	for _, server := range servers {
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("unable to shutdown server",
				"address", server.Addr,
				"error", err)
		}
	}
}

func getStringSlice(key string) []string {
	value := viper.GetStringSlice(key)
	slice, err := toStringSlice(value)
	if err != nil {
		logger.Fatal("invalid string slice value for setting",
			"error", err,
			"key", key,
			"value", value)
	}
	return slice
}

func toStringSlice(slice []string) ([]string, error) {
	result := make([]string, 0)
	for _, entry := range slice {
		if entry == "" {
			continue
		}
		stringReader := strings.NewReader(entry)
		csvReader := csv.NewReader(stringReader)
		split, err := csvReader.Read()
		if err != nil {
			return nil, err
		}
		for _, part := range split {
			if part != "" { // Don't add empty values
				result = append(result, part)
			}
		}
	}
	return result, nil
}
