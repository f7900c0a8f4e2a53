package repositories

import (
	"context"

	"github.com/ledgerly/ledgerly-backend/internal/core/domain"
)

// CustomerReader defines read operations for customer data.
type CustomerReader interface {
	// FindCustomerByID retrieves an active customer by its ID.
	FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)

	// ListCustomersByShop retrieves the shop's active customers, newest first.
	ListCustomersByShop(ctx context.Context, shopID string, limit, offset int) ([]domain.Customer, error)

	// ExistsByEmailAndShop reports whether an active customer with the email
	// already exists in the shop.
	ExistsByEmailAndShop(ctx context.Context, email, shopID string) (bool, error)
}

// CustomerWriter defines write operations for customer data.
type CustomerWriter interface {
	// SaveCustomer persists a new customer.
	SaveCustomer(ctx context.Context, customer domain.Customer) error

	// UpdateCustomer updates an existing customer's mutable fields.
	UpdateCustomer(ctx context.Context, customer domain.Customer) error

	// MarkCustomerDeleted soft-deletes a customer (is_active=false).
	MarkCustomerDeleted(ctx context.Context, customerID string, deletedBy string) error
}

// CustomerRepositoryFacade combines all customer-related repository interfaces.
type CustomerRepositoryFacade interface {
	CustomerReader
	CustomerWriter
}
