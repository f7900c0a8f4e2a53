package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerly/ledgerly-backend/internal/apperrors"
	"github.com/ledgerly/ledgerly-backend/internal/core/domain"
	portsrepo "github.com/ledgerly/ledgerly-backend/internal/core/ports/repositories"
	portssvc "github.com/ledgerly/ledgerly-backend/internal/core/ports/services"
	"github.com/ledgerly/ledgerly-backend/internal/dto"
	"github.com/shopspring/decimal"
)

// customerService implements the CustomerSvcFacade.
type customerService struct {
	BaseService
	customerRepo portsrepo.CustomerRepositoryFacade
	shopSvc      portssvc.ShopSvcFacade
	auditSvc     portssvc.AuditSvcFacade
}

// NewCustomerService creates a new customer service with the provided dependencies.
func NewCustomerService(customerRepo portsrepo.CustomerRepositoryFacade, shopSvc portssvc.ShopSvcFacade, auditSvc portssvc.AuditSvcFacade) portssvc.CustomerSvcFacade {
	return &customerService{
		customerRepo: customerRepo,
		shopSvc:      shopSvc,
		auditSvc:     auditSvc,
	}
}

var _ portssvc.CustomerSvcFacade = (*customerService)(nil)

// CreateCustomer creates a customer in the acting user's shop.
func (s *customerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, actingUserID string) (*domain.Customer, error) {
	shop, err := s.shopSvc.ResolveActingShop(ctx, actingUserID, req.ShopID)
	if err != nil {
		return nil, err
	}

	relationship := domain.RelationshipCustomer
	if req.RelationshipType != "" {
		relationship = domain.RelationshipType(req.RelationshipType)
		if !relationship.IsValid() {
			return nil, fmt.Errorf("unknown relationship type %q: %w", req.RelationshipType, apperrors.ErrValidation)
		}
	}

	if req.Email != "" {
		exists, err := s.customerRepo.ExistsByEmailAndShop(ctx, req.Email, shop.ShopID)
		if err != nil {
			s.LogError(ctx, err, "Failed to check customer email uniqueness",
				slog.String("shop_id", shop.ShopID))
			return nil, err
		}
		if exists {
			return nil, fmt.Errorf("customer email already exists in shop: %w", apperrors.ErrDuplicate)
		}
	}

	creditLimit := decimal.Zero
	if req.CreditLimit != nil {
		if req.CreditLimit.IsNegative() {
			return nil, fmt.Errorf("credit limit cannot be negative: %w", apperrors.ErrValidation)
		}
		creditLimit = *req.CreditLimit
	}

	now := time.Now()
	customer := domain.Customer{
		CustomerID:       uuid.NewString(),
		ShopID:           shop.ShopID,
		Name:             req.Name,
		Email:            req.Email,
		PhoneNumber:      req.PhoneNumber,
		Address:          req.Address,
		BusinessName:     req.BusinessName,
		GSTNumber:        req.GSTNumber,
		PANNumber:        req.PANNumber,
		RelationshipType: relationship,
		Notes:            req.Notes,
		CreditLimit:      creditLimit,
		CurrentBalance:   decimal.Zero,
		IsActive:         true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actingUserID,
		},
	}

	if err := s.customerRepo.SaveCustomer(ctx, customer); err != nil {
		s.LogError(ctx, err, "Failed to save customer",
			slog.String("shop_id", shop.ShopID))
		return nil, err
	}

	s.auditSvc.LogSuccess(ctx, "CREATE_CUSTOMER", "CUSTOMER", customer.CustomerID, customer.Name, actingUserID)
	s.LogInfo(ctx, "Customer created",
		slog.String("customer_id", customer.CustomerID),
		slog.String("shop_id", shop.ShopID))
	return &customer, nil
}

// findInActingShop loads the customer and checks it belongs to the acting
// user's shop. A customer outside that shop is reported as not found rather
// than forbidden, so IDs cannot be probed across shops.
func (s *customerService) findInActingShop(ctx context.Context, customerID, actingUserID string) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	shop, err := s.shopSvc.ResolveActingShop(ctx, actingUserID, customer.ShopID)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	if customer.ShopID != shop.ShopID {
		return nil, apperrors.ErrNotFound
	}
	return customer, nil
}

// GetCustomerByID returns the active customer when it belongs to the acting
// user's shop.
func (s *customerService) GetCustomerByID(ctx context.Context, customerID, actingUserID string) (*domain.Customer, error) {
	return s.findInActingShop(ctx, customerID, actingUserID)
}

// ListCustomers returns the active customers of the acting user's shop. An
// owner of several shops names the shop through shopID.
func (s *customerService) ListCustomers(ctx context.Context, actingUserID, shopID string, limit, offset int) ([]domain.Customer, error) {
	shop, err := s.shopSvc.ResolveActingShop(ctx, actingUserID, shopID)
	if err != nil {
		return nil, err
	}
	customers, err := s.customerRepo.ListCustomersByShop(ctx, shop.ShopID, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list customers",
			slog.String("shop_id", shop.ShopID))
		return nil, err
	}
	if customers == nil {
		customers = []domain.Customer{}
	}
	return customers, nil
}

// UpdateCustomer overwrites the provided mutable fields.
func (s *customerService) UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest, actingUserID string) (*domain.Customer, error) {
	customer, err := s.findInActingShop(ctx, customerID, actingUserID)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != customer.Email {
		if *req.Email != "" {
			exists, err := s.customerRepo.ExistsByEmailAndShop(ctx, *req.Email, customer.ShopID)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, fmt.Errorf("customer email already exists in shop: %w", apperrors.ErrDuplicate)
			}
		}
		customer.Email = *req.Email
	}
	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.PhoneNumber != nil {
		customer.PhoneNumber = *req.PhoneNumber
	}
	if req.Address != nil {
		customer.Address = *req.Address
	}
	if req.BusinessName != nil {
		customer.BusinessName = *req.BusinessName
	}
	if req.GSTNumber != nil {
		customer.GSTNumber = *req.GSTNumber
	}
	if req.PANNumber != nil {
		customer.PANNumber = *req.PANNumber
	}
	if req.RelationshipType != nil {
		relationship := domain.RelationshipType(*req.RelationshipType)
		if !relationship.IsValid() {
			return nil, fmt.Errorf("unknown relationship type %q: %w", *req.RelationshipType, apperrors.ErrValidation)
		}
		customer.RelationshipType = relationship
	}
	if req.Notes != nil {
		customer.Notes = *req.Notes
	}
	if req.CreditLimit != nil {
		if req.CreditLimit.IsNegative() {
			return nil, fmt.Errorf("credit limit cannot be negative: %w", apperrors.ErrValidation)
		}
		customer.CreditLimit = *req.CreditLimit
	}

	customer.LastUpdatedAt = time.Now()
	customer.LastUpdatedBy = actingUserID

	if err := s.customerRepo.UpdateCustomer(ctx, *customer); err != nil {
		s.LogError(ctx, err, "Failed to update customer",
			slog.String("customer_id", customerID))
		return nil, err
	}

	s.auditSvc.LogSuccess(ctx, "UPDATE_CUSTOMER", "CUSTOMER", customerID, "", actingUserID)
	return customer, nil
}

// DeleteCustomer soft-deletes the customer. Ledger entries are kept; the
// record simply stops appearing in reads.
func (s *customerService) DeleteCustomer(ctx context.Context, customerID, actingUserID string) error {
	customer, err := s.findInActingShop(ctx, customerID, actingUserID)
	if err != nil {
		return err
	}

	if err := s.customerRepo.MarkCustomerDeleted(ctx, customer.CustomerID, actingUserID); err != nil {
		s.LogError(ctx, err, "Failed to delete customer",
			slog.String("customer_id", customerID))
		return err
	}

	s.auditSvc.LogSuccess(ctx, "DELETE_CUSTOMER", "CUSTOMER", customerID, "", actingUserID)
	return nil
}
