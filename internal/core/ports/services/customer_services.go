package services

import (
	"context"

	"github.com/ledgerly/ledgerly-backend/internal/core/domain"
	"github.com/ledgerly/ledgerly-backend/internal/dto"
)

// CustomerSvcFacade is CRUD over customer records scoped to the acting user's
// shop. Every operation resolves the acting user and their shop first; a
// customer outside that shop is reported as not found.
type CustomerSvcFacade interface {
	// CreateCustomer creates a customer in the acting user's shop. Fails
	// with apperrors.ErrDuplicate when an active customer with the same
	// email exists in the shop.
	CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, actingUserID string) (*domain.Customer, error)

	// GetCustomerByID returns the active customer when it belongs to the
	// acting user's shop.
	GetCustomerByID(ctx context.Context, customerID, actingUserID string) (*domain.Customer, error)

	// ListCustomers returns the active customers of the acting user's shop.
	// shopID may be empty when the acting user maps to exactly one shop;
	// owners of several shops must name one.
	ListCustomers(ctx context.Context, actingUserID, shopID string, limit, offset int) ([]domain.Customer, error)

	// UpdateCustomer overwrites the provided mutable fields.
	UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest, actingUserID string) (*domain.Customer, error)

	// DeleteCustomer soft-deletes the customer.
	DeleteCustomer(ctx context.Context, customerID, actingUserID string) error
}
