package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is the ledger_entries table row.
type LedgerEntry struct {
	EntryID         string          `db:"entry_id"`
	CustomerID      string          `db:"customer_id"`
	ShopID          string          `db:"shop_id"`
	Amount          decimal.Decimal `db:"amount"`
	TransactionType string          `db:"transaction_type"`
	TransactionDate time.Time       `db:"transaction_date"`
	Description     string          `db:"description"`
	Notes           sql.NullString  `db:"notes"`
	ReferenceNumber sql.NullString  `db:"reference_number"`
	PaymentMethod   sql.NullString  `db:"payment_method"`
	IsActive        bool            `db:"is_active"`
	AuditFields
}
