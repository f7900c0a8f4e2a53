package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus tracks how much of a payment has been settled against
// ledger entries.
type PaymentStatus string

const (
	// PaymentPending is a recorded payment with nothing applied yet.
	PaymentPending PaymentStatus = "PENDING"
	// PaymentPartial has some, but not all, of its amount applied.
	PaymentPartial PaymentStatus = "PARTIAL"
	// PaymentProcessed is fully applied to ledger entries.
	PaymentProcessed PaymentStatus = "PROCESSED"
	// PaymentCancelled is voided and can no longer be applied.
	PaymentCancelled PaymentStatus = "CANCELLED"
)

// IsValid reports whether s is one of the known payment statuses.
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentPending, PaymentPartial, PaymentProcessed, PaymentCancelled:
		return true
	}
	return false
}

// Payment is money received from a customer, settled against that customer's
// debit entries through payment applications. AppliedAmount never exceeds
// Amount; the status is derived from how much is applied.
type Payment struct {
	PaymentID        string          `json:"paymentID"`
	CustomerID       string          `json:"customerID"`
	ShopID           string          `json:"shopID"`
	Amount           decimal.Decimal `json:"amount"`
	AppliedAmount    decimal.Decimal `json:"appliedAmount"`
	PaymentDate      time.Time       `json:"paymentDate"`
	Description      string          `json:"description"`
	Notes            string          `json:"notes,omitempty"`
	ReferenceNumber  string          `json:"referenceNumber,omitempty"`
	PaymentMethod    string          `json:"paymentMethod,omitempty"`
	BankDetails      string          `json:"bankDetails,omitempty"`
	CheckNumber      string          `json:"checkNumber,omitempty"`
	Status           PaymentStatus   `json:"status"`
	IsAdvancePayment bool            `json:"isAdvancePayment"`
	IsActive         bool            `json:"isActive"`
	AuditFields
}

// UnappliedAmount is the portion of the payment not yet settled.
func (p Payment) UnappliedAmount() decimal.Decimal {
	return p.Amount.Sub(p.AppliedAmount)
}

// IsFullyApplied reports whether the whole payment amount is settled.
func (p Payment) IsFullyApplied() bool {
	return p.AppliedAmount.GreaterThanOrEqual(p.Amount)
}

// CanApply reports whether amount fits in the payment's unapplied balance
// and the payment is in a state that accepts applications.
func (p Payment) CanApply(amount decimal.Decimal) bool {
	if !p.IsActive || p.Status == PaymentCancelled {
		return false
	}
	return p.UnappliedAmount().GreaterThanOrEqual(amount)
}

// Apply settles amount against the payment, moving the status to PARTIAL or
// PROCESSED. The caller must have checked CanApply first.
func (p *Payment) Apply(amount decimal.Decimal) {
	p.AppliedAmount = p.AppliedAmount.Add(amount)
	if p.IsFullyApplied() {
		p.Status = PaymentProcessed
	} else {
		p.Status = PaymentPartial
	}
}

// Unapply reverses a previously applied amount. An empty applied balance
// drops the payment back to PENDING, otherwise it is PARTIAL again.
func (p *Payment) Unapply(amount decimal.Decimal) {
	p.AppliedAmount = p.AppliedAmount.Sub(amount)
	if p.AppliedAmount.IsZero() {
		p.Status = PaymentPending
	} else {
		p.Status = PaymentPartial
	}
}

// PaymentApplication links part of a payment to one debit ledger entry.
// Applications are never deleted; reversing one keeps the row with
// IsReversed set so the settlement history stays auditable.
type PaymentApplication struct {
	ApplicationID string          `json:"applicationID"`
	PaymentID     string          `json:"paymentID"`
	EntryID       string          `json:"entryID"`
	AppliedAmount decimal.Decimal `json:"appliedAmount"`
	Notes         string          `json:"notes,omitempty"`
	IsReversed    bool            `json:"isReversed"`
	ReversedAt    *time.Time      `json:"reversedAt,omitempty"`
	ReversedBy    string          `json:"reversedBy,omitempty"`
	AuditFields
}

// OutstandingEntry is one debit entry with money still owed on it.
type OutstandingEntry struct {
	EntryID           string          `json:"entryID"`
	TransactionDate   time.Time       `json:"transactionDate"`
	Description       string          `json:"description"`
	Amount            decimal.Decimal `json:"amount"`
	OutstandingAmount decimal.Decimal `json:"outstandingAmount"`
	DaysOutstanding   int             `json:"daysOutstanding"`
}

// UnappliedPayment is one payment with money left to settle.
type UnappliedPayment struct {
	PaymentID       string          `json:"paymentID"`
	PaymentDate     time.Time       `json:"paymentDate"`
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount"`
	AppliedAmount   decimal.Decimal `json:"appliedAmount"`
	UnappliedAmount decimal.Decimal `json:"unappliedAmount"`
	PaymentMethod   string          `json:"paymentMethod,omitempty"`
}

// OutstandingBalance is the settlement view of a customer: which debits are
// still open, which payments are still unapplied, and the net between them.
type OutstandingBalance struct {
	CustomerID             string             `json:"customerID"`
	CustomerName           string             `json:"customerName"`
	CurrentBalance         decimal.Decimal    `json:"currentBalance"`
	TotalOutstanding       decimal.Decimal    `json:"totalOutstanding"`
	TotalUnapplied         decimal.Decimal    `json:"totalUnapplied"`
	NetOutstanding         decimal.Decimal    `json:"netOutstanding"`
	OldestOutstandingDate  *time.Time         `json:"oldestOutstandingDate,omitempty"`
	AverageDaysOutstanding int                `json:"averageDaysOutstanding"`
	OutstandingEntries     []OutstandingEntry `json:"outstandingEntries"`
	UnappliedPayments      []UnappliedPayment `json:"unappliedPayments"`
}
