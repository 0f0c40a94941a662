package graphql

import (
	"github.com/gatortrader/gatortrader-api/models"
	"github.com/graphql-go/graphql"
)

func (sg *SchemaGenerator) searchPosts(params graphql.ResolveParams) (interface{}, error) {
	search := models.PostSearch{PageSize: sg.pageSize}
	search.Name, _ = params.Args["name"].(string)
	search.Category, _ = params.Args["category"].(string)
	search.Page, _ = params.Args["page"].(string)
	search.Sort, _ = params.Args["sort"].(string)

	request, err := search.QueryRequest()
	if err != nil {
		return nil, err
	}
	return sg.repos.Posts.FetchMany(params.Context, request)
}

func (sg *SchemaGenerator) recentPosts(params graphql.ResolveParams) (interface{}, error) {
	return sg.repos.Posts.FetchMany(params.Context, models.RecentPosts())
}

func (sg *SchemaGenerator) post(params graphql.ResolveParams) (interface{}, error) {
	id, _ := params.Args["id"].(int)
	post, err := sg.repos.Posts.FetchByID(params.Context, int64(id), models.PostCategoryJoin)
	if err != nil {
		return nil, err
	}
	if post.IsZero() {
		return nil, nil
	}
	return post, nil
}

func (sg *SchemaGenerator) categories(params graphql.ResolveParams) (interface{}, error) {
	return sg.repos.Categories.FetchBySQL(params.Context, models.AllCategoriesQuery)
}

func (sg *SchemaGenerator) category(params graphql.ResolveParams) (interface{}, error) {
	id, _ := params.Args["id"].(int)
	category, err := sg.repos.Categories.FetchByID(params.Context, int64(id), nil)
	if err != nil {
		return nil, err
	}
	if category.ID == 0 {
		return nil, nil
	}
	return category, nil
}

func (sg *SchemaGenerator) categoryPosts(params graphql.ResolveParams) (interface{}, error) {
	var categoryID int64
	switch source := params.Source.(type) {
	case models.Category:
		categoryID = source.ID
	case *models.Category:
		categoryID = source.ID
	}
	page, _ := params.Args["page"].(int)
	return sg.repos.Posts.FetchMany(params.Context, models.PostsInCategory(categoryID, page, sg.pageSize))
}
