package models

// UserAdd is the payload used to register a new user.
type UserAdd struct {
	Email string `validate:"required,email,max=255" json:"email"`
	Name  string `validate:"required,max=100" json:"name"`
}
