package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Payment is the payments table row.
type Payment struct {
	PaymentID        string          `db:"payment_id"`
	CustomerID       string          `db:"customer_id"`
	ShopID           string          `db:"shop_id"`
	Amount           decimal.Decimal `db:"amount"`
	AppliedAmount    decimal.Decimal `db:"applied_amount"`
	PaymentDate      time.Time       `db:"payment_date"`
	Description      string          `db:"description"`
	Notes            sql.NullString  `db:"notes"`
	ReferenceNumber  sql.NullString  `db:"reference_number"`
	PaymentMethod    sql.NullString  `db:"payment_method"`
	BankDetails      sql.NullString  `db:"bank_details"`
	CheckNumber      sql.NullString  `db:"check_number"`
	Status           string          `db:"status"`
	IsAdvancePayment bool            `db:"is_advance_payment"`
	IsActive         bool            `db:"is_active"`
	AuditFields
}

// PaymentApplication is the payment_applications table row.
type PaymentApplication struct {
	ApplicationID string          `db:"application_id"`
	PaymentID     string          `db:"payment_id"`
	EntryID       string          `db:"entry_id"`
	AppliedAmount decimal.Decimal `db:"applied_amount"`
	Notes         sql.NullString  `db:"notes"`
	IsReversed    bool            `db:"is_reversed"`
	ReversedAt    sql.NullTime    `db:"reversed_at"`
	ReversedBy    sql.NullString  `db:"reversed_by"`
	AuditFields
}
