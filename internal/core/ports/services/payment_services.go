package services

import (
	"context"

	"github.com/ledgerly/ledgerly-backend/internal/core/domain"
	"github.com/ledgerly/ledgerly-backend/internal/dto"
)

// PaymentSvcFacade records customer payments and settles them against debit
// ledger entries. A payment starts PENDING, moves to PARTIAL as applications
// consume it, and to PROCESSED once fully applied; reversing applications
// walks it back.
type PaymentSvcFacade interface {
	// RecordPayment validates and persists a new payment with nothing
	// applied yet.
	RecordPayment(ctx context.Context, req dto.CreatePaymentRequest, actingUserID string) (*domain.Payment, error)

	// GetPaymentByID returns an active payment in the acting user's shop.
	GetPaymentByID(ctx context.Context, paymentID, actingUserID string) (*domain.Payment, error)

	// ListPaymentsForCustomer returns the customer's active payments,
	// newest payment date first. When unappliedOnly is set, only payments
	// with an unapplied balance are returned, oldest first.
	ListPaymentsForCustomer(ctx context.Context, customerID, actingUserID string, unappliedOnly bool, limit, offset int) ([]domain.Payment, error)

	// ApplyPayment settles parts of the payment against the named debit
	// entries of the same customer. Fails with apperrors.ErrValidation when
	// the requested total exceeds the payment's unapplied balance or an
	// entry is not an active debit of that customer.
	ApplyPayment(ctx context.Context, paymentID string, req dto.ApplyPaymentRequest, actingUserID string) (*domain.Payment, error)

	// AutoApplyPayment settles the payment's unapplied balance against the
	// customer's outstanding debit entries, oldest first.
	AutoApplyPayment(ctx context.Context, paymentID, actingUserID string) (*domain.Payment, error)

	// ReverseApplication undoes one payment application, restoring the
	// amount to the payment's unapplied balance.
	ReverseApplication(ctx context.Context, applicationID, actingUserID string) error

	// GetOutstandingBalance reports which of the customer's debit entries
	// still carry unsettled amounts and which payments are still unapplied.
	GetOutstandingBalance(ctx context.Context, customerID, actingUserID string) (*domain.OutstandingBalance, error)
}
