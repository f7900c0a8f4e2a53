package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a ledger entry.
type TransactionType string

const (
	// Credit is money received or owed to the shop; it increases the
	// customer's current balance.
	Credit TransactionType = "CREDIT"
	// Debit is money paid out; it decreases the customer's current balance.
	Debit TransactionType = "DEBIT"
	// OpeningBalance records the starting balance when a customer is taken
	// over from paper books. Applied like a credit.
	OpeningBalance TransactionType = "OPENING_BALANCE"
	// Adjustment is a manual correction entry. Applied like a debit.
	Adjustment TransactionType = "ADJUSTMENT"
)

// IsValid reports whether t is one of the known transaction types.
func (t TransactionType) IsValid() bool {
	switch t {
	case Credit, Debit, OpeningBalance, Adjustment:
		return true
	}
	return false
}

// IncreasesBalance reports whether an entry of this type adds to the
// customer's current balance. CREDIT and OPENING_BALANCE add; DEBIT and
// ADJUSTMENT subtract.
func (t TransactionType) IncreasesBalance() bool {
	return t == Credit || t == OpeningBalance
}

// LedgerEntry is a single recorded financial transaction against a customer.
// Amount is always non-negative; the sign applied to the customer balance is
// derived from TransactionType.
type LedgerEntry struct {
	EntryID         string          `json:"entryID"`
	CustomerID      string          `json:"customerID"`
	ShopID          string          `json:"shopID"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionType TransactionType `json:"transactionType"`
	TransactionDate time.Time       `json:"transactionDate"`
	Description     string          `json:"description"`
	Notes           string          `json:"notes,omitempty"`
	ReferenceNumber string          `json:"referenceNumber,omitempty"`
	PaymentMethod   string          `json:"paymentMethod,omitempty"`
	IsActive        bool            `json:"isActive"`
	AuditFields
}

// SignedAmount returns the entry amount with the sign it applies to the
// customer's running balance.
func (e LedgerEntry) SignedAmount() decimal.Decimal {
	if e.TransactionType.IncreasesBalance() {
		return e.Amount
	}
	return e.Amount.Neg()
}

// BalanceSummary aggregates a customer's active ledger entries.
type BalanceSummary struct {
	CustomerID     string          `json:"customerID"`
	CustomerName   string          `json:"customerName"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	TotalCredit    decimal.Decimal `json:"totalCredit"`
	TotalDebit     decimal.Decimal `json:"totalDebit"`
	EntryCount     int64           `json:"entryCount"`
	CreditLimit    decimal.Decimal `json:"creditLimit"`
}
