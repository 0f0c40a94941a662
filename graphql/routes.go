package graphql

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/gatortrader/gatortrader-api/config"
	"github.com/gatortrader/gatortrader-api/log"
	"github.com/gatortrader/gatortrader-api/models"
	"github.com/gatortrader/gatortrader-api/types"
	"github.com/graphql-go/graphql"
	"net/http"
)

type executeQueryFunc func(query string, variables map[string]interface{}, ctx context.Context) *graphql.Result

type RouteGenerator struct {
	logger    log.Logger
	schemaGen *SchemaGenerator
}

type RequestBody struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

func NewRouteGenerator(repos *models.Repositories, cfg config.Config) *RouteGenerator {
	return &RouteGenerator{
		logger:    cfg.Logger(),
		schemaGen: NewSchemaGenerator(repos, cfg),
	}
}

func (rg *RouteGenerator) Routes(pattern string) ([]types.Route, error) {
	schema, err := rg.schemaGen.BuildSchema()
	if err != nil {
		return nil, fmt.Errorf("unable to build graphql schema: %s", err)
	}

	return routesForSchema(pattern, func(query string, variables map[string]interface{}, ctx context.Context) *graphql.Result {
		return rg.executeQuery(query, variables, ctx, schema)
	}), nil
}

func routesForSchema(pattern string, execute executeQueryFunc) []types.Route {
	return []types.Route{
		{
			Method:  http.MethodGet,
			Pattern: pattern,
			Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				result := execute(r.URL.Query().Get("query"), nil, r.Context())
				writeResult(w, result)
			}),
		},
		{
			Method:  http.MethodPost,
			Pattern: pattern,
			Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Body == nil {
					http.Error(w, "No request body", 400)
					return
				}

				var body RequestBody
				err := json.NewDecoder(r.Body).Decode(&body)
				if err != nil {
					http.Error(w, "Request body is invalid", 400)
					return
				}

				result := execute(body.Query, body.Variables, r.Context())
				writeResult(w, result)
			}),
		},
	}
}

func writeResult(w http.ResponseWriter, result *graphql.Result) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	err := json.NewEncoder(w).Encode(result)
	if err != nil {
		http.Error(w, "response could not be encoded: "+err.Error(), 500)
	}
}

func (rg *RouteGenerator) executeQuery(
	query string, variables map[string]interface{}, ctx context.Context, schema graphql.Schema,
) *graphql.Result {
	result := graphql.Do(graphql.Params{
		Schema:         schema,
		RequestString:  query,
		VariableValues: variables,
		Context:        ctx,
	})
	if len(result.Errors) > 0 {
		rg.logger.Error("unexpected errors processing graphql query", "errors", result.Errors)
	}
	return result
}
