package models

import (
	"fmt"
	"github.com/gatortrader/gatortrader-api/db"
	"github.com/gatortrader/gatortrader-api/types"
	"strings"
)

// AllCategories is the category value that disables the category filter.
const AllCategories = "0"

const (
	SortDefault   = "default"
	SortNewest    = "newest"
	SortOldest    = "oldest"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortTitle     = "title"
)

// RecentPostsLimit is the number of posts returned by the recent listing.
const RecentPostsLimit = 10

var sortOrders = map[string]db.ColumnOrder{
	SortNewest:    {Column: "created_at", Order: db.Descending},
	SortOldest:    {Column: "created_at", Order: db.Ascending},
	SortPriceAsc:  {Column: "price", Order: db.Ascending},
	SortPriceDesc: {Column: "price", Order: db.Descending},
	SortTitle:     {Column: "title", Order: db.Ascending},
}

// PostSearch holds the search parameters as sent by clients. Empty values
// fall back to the client defaults: all categories, first page, default sort.
type PostSearch struct {
	Name     string
	Category string
	Page     string
	Sort     string
	PageSize int
}

func IsValidSort(sort string) bool {
	if sort == "" || sort == SortDefault {
		return true
	}
	_, ok := sortOrders[sort]
	return ok
}

// QueryRequest turns the search into a paged read of the posts table.
func (s PostSearch) QueryRequest() (db.QueryRequest, error) {
	request := db.QueryRequest{Limit: s.PageSize}

	if name := strings.TrimSpace(s.Name); name != "" {
		request.Filters = append(request.Filters, types.Like("title", "%"+name+"%"))
	}

	if s.Category != "" && s.Category != AllCategories {
		categoryID, ok := types.StringToInt(s.Category)
		if !ok || categoryID < 0 {
			return db.QueryRequest{}, fmt.Errorf("%w: invalid category %q", db.ErrInvalidRequest, s.Category)
		}
		request.Filters = append(request.Filters, types.Eq("category_id", categoryID))
	}

	if s.Page == "" {
		request.Page = 1
	} else if page, ok := types.StringToInt(s.Page); ok {
		request.Page = page
	}

	if !IsValidSort(s.Sort) {
		return db.QueryRequest{}, fmt.Errorf("%w: invalid sort %q", db.ErrInvalidRequest, s.Sort)
	}
	if order, ok := sortOrders[s.Sort]; ok {
		request.Sort = order.Column
		request.Direction = order.Order
	}

	return request, nil
}

// RecentPosts returns the request for the newest posts.
func RecentPosts() db.QueryRequest {
	order := sortOrders[SortNewest]
	return db.QueryRequest{
		Page:      1,
		Limit:     RecentPostsLimit,
		Sort:      order.Column,
		Direction: order.Order,
	}
}

// PostsInCategory returns the request for a page of posts of a category.
func PostsInCategory(categoryID int64, page int, pageSize int) db.QueryRequest {
	return db.QueryRequest{
		Filters: []types.Condition{types.Eq("category_id", categoryID)},
		Page:    page,
		Limit:   pageSize,
	}
}
