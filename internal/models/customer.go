package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// Customer is the customers table row.
type Customer struct {
	CustomerID       string          `db:"customer_id"`
	ShopID           string          `db:"shop_id"`
	Name             string          `db:"name"`
	Email            sql.NullString  `db:"email"`
	PhoneNumber      sql.NullString  `db:"phone_number"`
	Address          sql.NullString  `db:"address"`
	BusinessName     sql.NullString  `db:"business_name"`
	GSTNumber        sql.NullString  `db:"gst_number"`
	PANNumber        sql.NullString  `db:"pan_number"`
	RelationshipType string          `db:"relationship_type"`
	Notes            sql.NullString  `db:"notes"`
	CreditLimit      decimal.Decimal `db:"credit_limit"`
	CurrentBalance   decimal.Decimal `db:"current_balance"`
	IsActive         bool            `db:"is_active"`
	AuditFields
}
