package endpoint

import (
	"net/http"
	"path"

	"github.com/gatortrader/gatortrader-api/config"
	"github.com/gatortrader/gatortrader-api/log"
	"github.com/gatortrader/gatortrader-api/models"
	"github.com/gatortrader/gatortrader-api/types"
	"github.com/julienschmidt/httprouter"
)

// Route describes how to route an endpoint
type routeList struct {
	repos    *models.Repositories
	naming   config.NamingConvention
	pageSize int
	logger   log.Logger
	params   func(*http.Request, string) string
}

// Routes returns a slice of all the endpoint routes. Write routes are only
// included when the matching operation is supported.
func Routes(prefix string, cfg config.Config, repos *models.Repositories) []types.Route {
	rl := routeList{
		repos:    repos,
		naming:   cfg.Naming(),
		pageSize: cfg.DefaultPageSize(),
		logger:   cfg.Logger(),
		params:   httprouterParams,
	}

	routes := []types.Route{
		{
			Method:  http.MethodGet,
			Pattern: path.Join(prefix, "/post/:id"),
			Handler: http.HandlerFunc(rl.GetPost),
		},
		{
			Method:  http.MethodGet,
			Pattern: path.Join(prefix, "/category"),
			Handler: http.HandlerFunc(rl.GetCategories),
		},
		{
			Method:  http.MethodGet,
			Pattern: path.Join(prefix, "/category/:id"),
			Handler: http.HandlerFunc(rl.GetCategoryPosts),
		},
	}

	ops := cfg.SupportedOperations()
	if ops.IsSupported(config.Insert) {
		routes = append(routes, types.Route{
			Method:  http.MethodPost,
			Pattern: path.Join(prefix, "/user"),
			Handler: http.HandlerFunc(rl.AddUser),
		})
	}
	if ops.IsSupported(config.Update) {
		routes = append(routes, types.Route{
			Method:  http.MethodPatch,
			Pattern: path.Join(prefix, "/user/:id"),
			Handler: http.HandlerFunc(rl.UpdateUser),
		})
	}
	return routes
}

func httprouterParams(r *http.Request, name string) string {
	return httprouter.ParamsFromContext(r.Context()).ByName(name)
}
