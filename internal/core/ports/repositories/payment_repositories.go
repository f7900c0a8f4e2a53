package repositories

import (
	"context"

	"github.com/ledgerly/ledgerly-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PaymentReader defines read operations for payments and their applications.
type PaymentReader interface {
	// FindPaymentByID retrieves an active payment by its ID.
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)

	// ListPaymentsByCustomer retrieves the customer's active payments,
	// newest payment date first.
	ListPaymentsByCustomer(ctx context.Context, customerID string, limit, offset int) ([]domain.Payment, error)

	// ListUnappliedPaymentsByCustomer retrieves active payments that still
	// have an unapplied balance, oldest payment date first.
	ListUnappliedPaymentsByCustomer(ctx context.Context, customerID string) ([]domain.Payment, error)

	// FindApplicationByID retrieves a payment application by its ID,
	// reversed or not.
	FindApplicationByID(ctx context.Context, applicationID string) (*domain.PaymentApplication, error)

	// SumAppliedByEntry returns, per ledger entry, the total amount settled
	// against it by non-reversed applications across the customer's
	// payments. Entries with nothing applied are absent from the map.
	SumAppliedByEntry(ctx context.Context, customerID string) (map[string]decimal.Decimal, error)
}

// PaymentWriter defines write operations for payments. Application writes
// update the parent payment's applied amount and status in the same database
// transaction.
type PaymentWriter interface {
	// SavePayment persists a new payment.
	SavePayment(ctx context.Context, payment domain.Payment) error

	// ApplyPayment inserts the applications and rewrites the payment's
	// applied amount and status atomically. The payment carries its
	// post-application state.
	ApplyPayment(ctx context.Context, payment domain.Payment, applications []domain.PaymentApplication) error

	// ReverseApplication marks the application reversed and rewrites the
	// payment's applied amount and status atomically.
	ReverseApplication(ctx context.Context, application domain.PaymentApplication, payment domain.Payment) error
}

// PaymentRepositoryFacade combines all payment repository interfaces.
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}
