package dto

import (
	"time"

	"github.com/ledgerly/ledgerly-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePaymentRequest records a payment received from a customer.
type CreatePaymentRequest struct {
	CustomerID       string          `json:"customerID" binding:"required"`
	Amount           decimal.Decimal `json:"amount" binding:"required"`
	PaymentDate      *time.Time      `json:"paymentDate"`
	Description      string          `json:"description" binding:"required"`
	Notes            string          `json:"notes"`
	ReferenceNumber  string          `json:"referenceNumber"`
	PaymentMethod    string          `json:"paymentMethod"`
	BankDetails      string          `json:"bankDetails"`
	CheckNumber      string          `json:"checkNumber"`
	IsAdvancePayment bool            `json:"isAdvancePayment"`
}

// PaymentApplicationDetail names one debit entry and the amount to settle
// against it.
type PaymentApplicationDetail struct {
	EntryID string          `json:"entryID" binding:"required"`
	Amount  decimal.Decimal `json:"amount" binding:"required"`
	Notes   string          `json:"notes"`
}

// ApplyPaymentRequest settles parts of a payment against debit entries.
type ApplyPaymentRequest struct {
	Applications []PaymentApplicationDetail `json:"applications" binding:"required,min=1,dive"`
}

// ListPaymentsParams defines query parameters for listing payments.
type ListPaymentsParams struct {
	Unapplied bool `form:"unapplied"`
	Limit     int  `form:"limit,default=20"`
	Offset    int  `form:"offset,default=0"`
}

// PaymentResponse is the public view of a payment.
type PaymentResponse struct {
	PaymentID        string          `json:"paymentID"`
	CustomerID       string          `json:"customerID"`
	ShopID           string          `json:"shopID"`
	Amount           decimal.Decimal `json:"amount"`
	AppliedAmount    decimal.Decimal `json:"appliedAmount"`
	UnappliedAmount  decimal.Decimal `json:"unappliedAmount"`
	PaymentDate      time.Time       `json:"paymentDate"`
	Description      string          `json:"description"`
	Notes            string          `json:"notes,omitempty"`
	ReferenceNumber  string          `json:"referenceNumber,omitempty"`
	PaymentMethod    string          `json:"paymentMethod,omitempty"`
	BankDetails      string          `json:"bankDetails,omitempty"`
	CheckNumber      string          `json:"checkNumber,omitempty"`
	Status           string          `json:"status"`
	IsAdvancePayment bool            `json:"isAdvancePayment"`
	CreatedAt        time.Time       `json:"createdAt"`
	CreatedBy        string          `json:"createdBy"`
}

// ToPaymentResponse converts a domain.Payment to its public view.
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:        p.PaymentID,
		CustomerID:       p.CustomerID,
		ShopID:           p.ShopID,
		Amount:           p.Amount,
		AppliedAmount:    p.AppliedAmount,
		UnappliedAmount:  p.UnappliedAmount(),
		PaymentDate:      p.PaymentDate,
		Description:      p.Description,
		Notes:            p.Notes,
		ReferenceNumber:  p.ReferenceNumber,
		PaymentMethod:    p.PaymentMethod,
		BankDetails:      p.BankDetails,
		CheckNumber:      p.CheckNumber,
		Status:           string(p.Status),
		IsAdvancePayment: p.IsAdvancePayment,
		CreatedAt:        p.CreatedAt,
		CreatedBy:        p.CreatedBy,
	}
}

// ListPaymentsResponse wraps the list of payments.
type ListPaymentsResponse struct {
	Payments []PaymentResponse `json:"payments"`
}

// ToListPaymentsResponse converts a slice of payments to the list DTO.
func ToListPaymentsResponse(payments []domain.Payment) ListPaymentsResponse {
	out := make([]PaymentResponse, len(payments))
	for i := range payments {
		out[i] = ToPaymentResponse(&payments[i])
	}
	return ListPaymentsResponse{Payments: out}
}

// OutstandingEntryResponse is one debit entry with money still owed on it.
type OutstandingEntryResponse struct {
	EntryID           string          `json:"entryID"`
	TransactionDate   time.Time       `json:"transactionDate"`
	Description       string          `json:"description"`
	Amount            decimal.Decimal `json:"amount"`
	OutstandingAmount decimal.Decimal `json:"outstandingAmount"`
	DaysOutstanding   int             `json:"daysOutstanding"`
}

// UnappliedPaymentResponse is one payment with money left to settle.
type UnappliedPaymentResponse struct {
	PaymentID       string          `json:"paymentID"`
	PaymentDate     time.Time       `json:"paymentDate"`
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount"`
	AppliedAmount   decimal.Decimal `json:"appliedAmount"`
	UnappliedAmount decimal.Decimal `json:"unappliedAmount"`
	PaymentMethod   string          `json:"paymentMethod,omitempty"`
}

// OutstandingBalanceResponse is the settlement view of a customer.
type OutstandingBalanceResponse struct {
	CustomerID             string                     `json:"customerID"`
	CustomerName           string                     `json:"customerName"`
	CurrentBalance         decimal.Decimal            `json:"currentBalance"`
	TotalOutstanding       decimal.Decimal            `json:"totalOutstanding"`
	TotalUnapplied         decimal.Decimal            `json:"totalUnapplied"`
	NetOutstanding         decimal.Decimal            `json:"netOutstanding"`
	OldestOutstandingDate  *time.Time                 `json:"oldestOutstandingDate,omitempty"`
	AverageDaysOutstanding int                        `json:"averageDaysOutstanding"`
	OutstandingEntries     []OutstandingEntryResponse `json:"outstandingEntries"`
	UnappliedPayments      []UnappliedPaymentResponse `json:"unappliedPayments"`
}

// ToOutstandingBalanceResponse converts a domain.OutstandingBalance to its DTO.
func ToOutstandingBalanceResponse(b *domain.OutstandingBalance) OutstandingBalanceResponse {
	entries := make([]OutstandingEntryResponse, len(b.OutstandingEntries))
	for i, e := range b.OutstandingEntries {
		entries[i] = OutstandingEntryResponse{
			EntryID:           e.EntryID,
			TransactionDate:   e.TransactionDate,
			Description:       e.Description,
			Amount:            e.Amount,
			OutstandingAmount: e.OutstandingAmount,
			DaysOutstanding:   e.DaysOutstanding,
		}
	}
	payments := make([]UnappliedPaymentResponse, len(b.UnappliedPayments))
	for i, p := range b.UnappliedPayments {
		payments[i] = UnappliedPaymentResponse{
			PaymentID:       p.PaymentID,
			PaymentDate:     p.PaymentDate,
			Description:     p.Description,
			Amount:          p.Amount,
			AppliedAmount:   p.AppliedAmount,
			UnappliedAmount: p.UnappliedAmount,
			PaymentMethod:   p.PaymentMethod,
		}
	}
	return OutstandingBalanceResponse{
		CustomerID:             b.CustomerID,
		CustomerName:           b.CustomerName,
		CurrentBalance:         b.CurrentBalance,
		TotalOutstanding:       b.TotalOutstanding,
		TotalUnapplied:         b.TotalUnapplied,
		NetOutstanding:         b.NetOutstanding,
		OldestOutstandingDate:  b.OldestOutstandingDate,
		AverageDaysOutstanding: b.AverageDaysOutstanding,
		OutstandingEntries:     entries,
		UnappliedPayments:      payments,
	}
}
