package models

import (
	"github.com/gatortrader/gatortrader-api/db"
	"time"
)

const UsersTable = "users"

type User struct {
	ID        int64      `db:"id" json:"id"`
	Email     string     `db:"email" json:"email"`
	Name      string     `db:"name" json:"name"`
	CreatedAt *time.Time `db:"created_at" json:"createdAt"`
}

var Users = db.Entity[User]{
	Table:  UsersTable,
	MapRow: mapUser,
}

func mapUser(record db.Record) (User, error) {
	var user User
	err := record.Decode(&user)
	return user, err
}

// UserUpdatableFields lists the columns of a user that may be changed with a
// single field update.
var UserUpdatableFields = map[string]bool{
	"email": true,
	"name":  true,
}
