package models

import "github.com/gatortrader/gatortrader-api/db"

// Repositories groups the repositories of every table served by the API.
type Repositories struct {
	Posts      *db.Repository[Post]
	Categories *db.Repository[Category]
	Users      *db.Repository[User]
}

func NewRepositories(dbClient *db.Db) *Repositories {
	return &Repositories{
		Posts:      db.NewRepository(dbClient, Posts),
		Categories: db.NewRepository(dbClient, Categories),
		Users:      db.NewRepository(dbClient, Users),
	}
}
