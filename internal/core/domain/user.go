package domain

import "time"

// Role is a user's role in the system.
type Role string

const (
	// RoleOwner is a business owner with full access to their shops.
	RoleOwner Role = "OWNER"
	// RoleStaff is a staff member limited to the shop they are assigned to.
	RoleStaff Role = "STAFF"
	// RoleAdmin is a system administrator.
	RoleAdmin Role = "ADMIN"
)

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleOwner, RoleStaff, RoleAdmin:
		return true
	}
	return false
}

// User represents an account holder: a shop owner, staff member or admin.
type User struct {
	UserID        string     `json:"userID"`
	Username      string     `json:"username"`
	Email         string     `json:"email"`
	PasswordHash  string     `json:"-"`
	FirstName     string     `json:"firstName"`
	LastName      string     `json:"lastName"`
	PhoneNumber   string     `json:"phoneNumber,omitempty"`
	Role          Role       `json:"role"`
	BusinessName  string     `json:"businessName,omitempty"`
	IsActive      bool       `json:"isActive"`
	EmailVerified bool       `json:"emailVerified"`
	LastLoginAt   *time.Time `json:"lastLoginAt,omitempty"`
	AuditFields
}

// FullName joins the user's first and last name.
func (u User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
