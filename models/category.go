package models

import (
	"github.com/gatortrader/gatortrader-api/db"
)

const CategoriesTable = "categories"

// AllCategoriesQuery lists every category by name.
const AllCategoriesQuery = "SELECT * FROM " + CategoriesTable + " ORDER BY name ASC"

type Category struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

var Categories = db.Entity[Category]{
	Table:  CategoriesTable,
	MapRow: mapCategory,
}

// Columns that cannot be converted are left at their zero value.
func mapCategory(record db.Record) (Category, error) {
	var category Category
	err := record.Decode(&category)
	return category, err
}
