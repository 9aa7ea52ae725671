package model

import (
	"time"

	"hotelops/shared/model"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID           = "id"
	FieldEmail        = "email"
	FieldPasswordHash = "password_hash"
	FieldIsActive     = "is_active"
	FieldLastLoginAt  = "last_login_at"
)

// User holds login credentials. Everything a person sees about themselves lives on the profile.
type User struct {
	ID           string     `db:"id"`
	Email        string     `db:"email"`
	PasswordHash string     `db:"password_hash"`
	IsActive     bool       `db:"is_active"`
	LastLoginAt  *time.Time `db:"last_login_at"`
	model.Metadata
}
