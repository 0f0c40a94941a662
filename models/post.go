package models

import (
	"github.com/gatortrader/gatortrader-api/db"
	"gopkg.in/inf.v0"
	"time"
)

const PostsTable = "posts"

// PostCategoryJoin joins a post with the category it is listed under.
var PostCategoryJoin = &db.Join{
	Table:      CategoriesTable,
	Column:     "category_id",
	JoinColumn: "id",
}

type Post struct {
	ID          int64      `db:"id" json:"id"`
	Title       string     `db:"title" json:"title"`
	Description string     `db:"description" json:"description"`
	Price       *inf.Dec   `db:"price" json:"price"`
	CategoryID  int64      `db:"category_id" json:"categoryId"`
	UserID      int64      `db:"user_id" json:"userId"`
	Image       string     `db:"image" json:"image"`
	CreatedAt   *time.Time `db:"created_at" json:"createdAt"`
	Category    *Category  `db:"-" json:"category,omitempty"`
}

// IsZero reports whether the post was mapped from an empty record.
func (p Post) IsZero() bool {
	return p.ID == 0
}

var Posts = db.Entity[Post]{
	Table:  PostsTable,
	MapRow: mapPost,
}

func mapPost(record db.Record) (Post, error) {
	var post Post
	postRecord, joined := record.Nested(PostsTable)
	if !joined {
		postRecord = record
	}
	err := postRecord.Decode(&post)

	if categoryRecord, ok := record.Nested(CategoriesTable); ok && categoryRecord["id"] != nil {
		category, categoryErr := mapCategory(categoryRecord)
		post.Category = &category
		if err == nil {
			err = categoryErr
		}
	}
	return post, err
}
