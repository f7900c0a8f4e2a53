package models

import (
	"database/sql"
	"time"
)

// User is the users table row.
type User struct {
	UserID        string       `db:"user_id"`
	Username      string       `db:"username"`
	Email         string       `db:"email"`
	PasswordHash  string       `db:"password_hash"`
	FirstName     string       `db:"first_name"`
	LastName      string       `db:"last_name"`
	PhoneNumber   sql.NullString `db:"phone_number"`
	Role          string       `db:"role"`
	BusinessName  sql.NullString `db:"business_name"`
	IsActive      bool         `db:"is_active"`
	EmailVerified bool         `db:"email_verified"`
	LastLoginAt   sql.NullTime `db:"last_login_at"`
	AuditFields
}

// AuditFields holds the audit columns shared by most tables.
type AuditFields struct {
	CreatedAt     time.Time `db:"created_at"`
	CreatedBy     string    `db:"created_by"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
	LastUpdatedBy string    `db:"last_updated_by"`
}
