package dto

import (
	"time"

	"github.com/ledgerly/ledgerly-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateLedgerEntryRequest records one transaction against a customer.
type CreateLedgerEntryRequest struct {
	CustomerID      string          `json:"customerID" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	TransactionType string          `json:"transactionType" binding:"required"`
	TransactionDate *time.Time      `json:"transactionDate"`
	Description     string          `json:"description" binding:"required"`
	Notes           string          `json:"notes"`
	ReferenceNumber string          `json:"referenceNumber"`
	PaymentMethod   string          `json:"paymentMethod"`
}

// UpdateLedgerEntryRequest overwrites the provided fields of an entry.
// Changing Amount or TransactionType triggers a balance recompute.
type UpdateLedgerEntryRequest struct {
	Amount          *decimal.Decimal `json:"amount"`
	TransactionType *string          `json:"transactionType"`
	TransactionDate *time.Time       `json:"transactionDate"`
	Description     *string          `json:"description"`
	Notes           *string          `json:"notes"`
	ReferenceNumber *string          `json:"referenceNumber"`
	PaymentMethod   *string          `json:"paymentMethod"`
}

// ListLedgerEntriesParams defines query parameters for listing entries.
type ListLedgerEntriesParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// LedgerEntryResponse is the public view of a ledger entry. BalanceAfter is
// the customer's balance right after the entry was applied; it is only set on
// creation responses.
type LedgerEntryResponse struct {
	EntryID         string           `json:"entryID"`
	CustomerID      string           `json:"customerID"`
	ShopID          string           `json:"shopID"`
	Amount          decimal.Decimal  `json:"amount"`
	TransactionType string           `json:"transactionType"`
	TransactionDate time.Time        `json:"transactionDate"`
	Description     string           `json:"description"`
	Notes           string           `json:"notes,omitempty"`
	ReferenceNumber string           `json:"referenceNumber,omitempty"`
	PaymentMethod   string           `json:"paymentMethod,omitempty"`
	BalanceAfter    *decimal.Decimal `json:"balanceAfter,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	CreatedBy       string           `json:"createdBy"`
}

// ToLedgerEntryResponse converts a domain.LedgerEntry to its public view.
func ToLedgerEntryResponse(e *domain.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		EntryID:         e.EntryID,
		CustomerID:      e.CustomerID,
		ShopID:          e.ShopID,
		Amount:          e.Amount,
		TransactionType: string(e.TransactionType),
		TransactionDate: e.TransactionDate,
		Description:     e.Description,
		Notes:           e.Notes,
		ReferenceNumber: e.ReferenceNumber,
		PaymentMethod:   e.PaymentMethod,
		CreatedAt:       e.CreatedAt,
		CreatedBy:       e.CreatedBy,
	}
}

// ListLedgerEntriesResponse wraps the list of entries.
type ListLedgerEntriesResponse struct {
	Entries []LedgerEntryResponse `json:"entries"`
}

// ToListLedgerEntriesResponse converts a slice of entries to the list DTO.
func ToListLedgerEntriesResponse(entries []domain.LedgerEntry) ListLedgerEntriesResponse {
	out := make([]LedgerEntryResponse, len(entries))
	for i := range entries {
		out[i] = ToLedgerEntryResponse(&entries[i])
	}
	return ListLedgerEntriesResponse{Entries: out}
}

// BalanceSummaryResponse is the aggregate view over a customer's active
// ledger entries.
type BalanceSummaryResponse struct {
	CustomerID     string          `json:"customerID"`
	CustomerName   string          `json:"customerName"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	TotalCredit    decimal.Decimal `json:"totalCredit"`
	TotalDebit     decimal.Decimal `json:"totalDebit"`
	EntryCount     int64           `json:"entryCount"`
	CreditLimit    decimal.Decimal `json:"creditLimit"`
}

// ToBalanceSummaryResponse converts a domain.BalanceSummary to its DTO.
func ToBalanceSummaryResponse(s *domain.BalanceSummary) BalanceSummaryResponse {
	return BalanceSummaryResponse{
		CustomerID:     s.CustomerID,
		CustomerName:   s.CustomerName,
		CurrentBalance: s.CurrentBalance,
		TotalCredit:    s.TotalCredit,
		TotalDebit:     s.TotalDebit,
		EntryCount:     s.EntryCount,
		CreditLimit:    s.CreditLimit,
	}
}
