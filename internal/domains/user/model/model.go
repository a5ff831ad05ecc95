package model

import (
	"database/sql"

	"trailguard/shared/model"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID        = "id"
	FieldEmail     = "email"
	FieldPassword  = "password"
	FieldFullName  = "full_name"
	FieldRole      = "role"
	FieldActive    = "active"
	FieldLastLogin = "last_login"
)

// User is a safety officer or admin account. Tourists have no accounts;
// their phone number identifies them on visits.
type User struct {
	ID        string       `db:"id"`
	Email     string       `db:"email"`
	Password  string       `db:"password"`
	FullName  *string      `db:"full_name"`
	Role      string       `db:"role"`
	Active    bool         `db:"active"`
	LastLogin sql.NullTime `db:"last_login"`
	model.Metadata
}
