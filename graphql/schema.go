package graphql

import (
	"github.com/gatortrader/gatortrader-api/config"
	"github.com/gatortrader/gatortrader-api/log"
	"github.com/gatortrader/gatortrader-api/models"
	"github.com/graphql-go/graphql"
)

// SchemaGenerator builds the read only schema of the marketplace.
type SchemaGenerator struct {
	repos    *models.Repositories
	naming   config.NamingConvention
	pageSize int
	logger   log.Logger
}

func NewSchemaGenerator(repos *models.Repositories, cfg config.Config) *SchemaGenerator {
	return &SchemaGenerator{
		repos:    repos,
		naming:   cfg.Naming(),
		pageSize: cfg.DefaultPageSize(),
		logger:   cfg.Logger(),
	}
}

func (sg *SchemaGenerator) BuildSchema() (graphql.Schema, error) {
	categoryType := graphql.NewObject(graphql.ObjectConfig{
		Name: sg.naming.ToGraphQLType("category"),
		Fields: graphql.Fields{
			"id":   &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"name": &graphql.Field{Type: graphql.String},
		},
	})

	postType := graphql.NewObject(graphql.ObjectConfig{
		Name: sg.naming.ToGraphQLType("post"),
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"title":       &graphql.Field{Type: graphql.String},
			"description": &graphql.Field{Type: graphql.String},
			"price":       &graphql.Field{Type: decimal},
			"categoryId":  &graphql.Field{Type: graphql.Int},
			"userId":      &graphql.Field{Type: graphql.Int},
			"image":       &graphql.Field{Type: graphql.String},
			"createdAt":   &graphql.Field{Type: timestamp},
			"category":    &graphql.Field{Type: categoryType},
		},
	})

	categoryType.AddFieldConfig("posts", &graphql.Field{
		Type: graphql.NewList(postType),
		Args: graphql.FieldConfigArgument{
			"page": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 1},
		},
		Resolve: sg.categoryPosts,
	})

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"posts": &graphql.Field{
				Type: graphql.NewList(postType),
				Args: graphql.FieldConfigArgument{
					"name":     &graphql.ArgumentConfig{Type: graphql.String},
					"category": &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: models.AllCategories},
					"page":     &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: "1"},
					"sort":     &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: models.SortDefault},
				},
				Resolve: sg.searchPosts,
			},
			"recentPosts": &graphql.Field{
				Type:    graphql.NewList(postType),
				Resolve: sg.recentPosts,
			},
			"post": &graphql.Field{
				Type: postType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: sg.post,
			},
			"categories": &graphql.Field{
				Type:    graphql.NewList(categoryType),
				Resolve: sg.categories,
			},
			"category": &graphql.Field{
				Type: categoryType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: sg.category,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: query,
	})
}
