package models

import (
	"database/sql"
	"time"
)

// Shop is the shops table row.
type Shop struct {
	ShopID      string         `db:"shop_id"`
	Name        string         `db:"name"`
	Description sql.NullString `db:"description"`
	Address     sql.NullString `db:"address"`
	PhoneNumber sql.NullString `db:"phone_number"`
	Email       sql.NullString `db:"email"`
	OwnerUserID string         `db:"owner_user_id"`
	IsActive    bool           `db:"is_active"`
	AuditFields
}

// StaffShopMapping is the staff_shop_mappings table row.
type StaffShopMapping struct {
	MappingID   string    `db:"mapping_id"`
	StaffUserID string    `db:"staff_user_id"`
	ShopID      string    `db:"shop_id"`
	AssignedAt  time.Time `db:"assigned_at"`
	IsActive    bool      `db:"is_active"`
}
