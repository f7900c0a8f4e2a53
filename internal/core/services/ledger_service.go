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
	"github.com/ledgerly/ledgerly-backend/internal/platform/config"
	"github.com/shopspring/decimal"
)

// ledgerService implements the LedgerSvcFacade.
type ledgerService struct {
	BaseService
	ledgerRepo   portsrepo.LedgerRepositoryFacade
	customerRepo portsrepo.CustomerRepositoryFacade
	shopSvc      portssvc.ShopSvcFacade
	auditSvc     portssvc.AuditSvcFacade
	maxAmount    decimal.Decimal
}

// NewLedgerService creates a new ledger service with the provided dependencies.
func NewLedgerService(
	cfg *config.Config,
	ledgerRepo portsrepo.LedgerRepositoryFacade,
	customerRepo portsrepo.CustomerRepositoryFacade,
	shopSvc portssvc.ShopSvcFacade,
	auditSvc portssvc.AuditSvcFacade,
) portssvc.LedgerSvcFacade {
	return &ledgerService{
		ledgerRepo:   ledgerRepo,
		customerRepo: customerRepo,
		shopSvc:      shopSvc,
		auditSvc:     auditSvc,
		maxAmount:    cfg.MaxTransactionAmount,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// validateAmount checks an entry amount against the business limits.
func (s *ledgerService) validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("amount must be positive: %w", apperrors.ErrValidation)
	}
	if s.maxAmount.IsPositive() && amount.GreaterThan(s.maxAmount) {
		return fmt.Errorf("amount exceeds the maximum of %s: %w", s.maxAmount.String(), apperrors.ErrValidation)
	}
	return nil
}

// resolveCustomer loads the customer and checks it belongs to the acting
// user's shop. Customers outside that shop read as not found; other
// resolution failures propagate as-is.
func (s *ledgerService) resolveCustomer(ctx context.Context, customerID, actingUserID string) (*domain.Customer, error) {
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
	if shop.ShopID != customer.ShopID {
		return nil, apperrors.ErrNotFound
	}
	return customer, nil
}

// RecordEntry validates and persists a new entry, applying its signed amount
// to the customer's current balance atomically.
func (s *ledgerService) RecordEntry(ctx context.Context, req dto.CreateLedgerEntryRequest, actingUserID string) (*domain.LedgerEntry, decimal.Decimal, error) {
	txType := domain.TransactionType(req.TransactionType)
	if !txType.IsValid() {
		return nil, decimal.Zero, fmt.Errorf("unknown transaction type %q: %w", req.TransactionType, apperrors.ErrValidation)
	}
	if err := s.validateAmount(req.Amount); err != nil {
		return nil, decimal.Zero, err
	}

	customer, err := s.resolveCustomer(ctx, req.CustomerID, actingUserID)
	if err != nil {
		return nil, decimal.Zero, err
	}

	now := time.Now()
	txDate := now
	if req.TransactionDate != nil {
		txDate = *req.TransactionDate
		if txDate.After(now) {
			return nil, decimal.Zero, fmt.Errorf("transaction date cannot be in the future: %w", apperrors.ErrValidation)
		}
	}

	entry := domain.LedgerEntry{
		EntryID:         uuid.NewString(),
		CustomerID:      customer.CustomerID,
		ShopID:          customer.ShopID,
		Amount:          req.Amount,
		TransactionType: txType,
		TransactionDate: txDate,
		Description:     req.Description,
		Notes:           req.Notes,
		ReferenceNumber: req.ReferenceNumber,
		PaymentMethod:   req.PaymentMethod,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actingUserID,
		},
	}

	delta := entry.SignedAmount()

	// The repository re-checks the limit against the row-locked balance; this
	// early check only short-circuits requests that are already over.
	if txType.IncreasesBalance() && customer.CreditLimit.IsPositive() {
		if customer.CurrentBalance.Add(delta).GreaterThan(customer.CreditLimit) {
			s.auditSvc.LogFailure(ctx, "CREATE_LEDGER_ENTRY", "LEDGER_ENTRY", "", "credit limit exceeded for customer "+customer.CustomerID, actingUserID)
			return nil, decimal.Zero, fmt.Errorf("entry would exceed the customer's credit limit of %s: %w", customer.CreditLimit.String(), apperrors.ErrValidation)
		}
	}

	balanceAfter, err := s.ledgerRepo.SaveEntry(ctx, entry, delta, customer.CreditLimit)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			s.auditSvc.LogFailure(ctx, "CREATE_LEDGER_ENTRY", "LEDGER_ENTRY", "", "credit limit exceeded for customer "+customer.CustomerID, actingUserID)
			return nil, decimal.Zero, err
		}
		s.LogError(ctx, err, "Failed to save ledger entry",
			slog.String("customer_id", customer.CustomerID))
		return nil, decimal.Zero, err
	}

	s.auditSvc.LogSuccess(ctx, "CREATE_LEDGER_ENTRY", "LEDGER_ENTRY", entry.EntryID, string(txType)+" "+entry.Amount.String(), actingUserID)
	s.LogInfo(ctx, "Ledger entry recorded",
		slog.String("entry_id", entry.EntryID),
		slog.String("customer_id", customer.CustomerID),
		slog.String("transaction_type", string(txType)))
	return &entry, balanceAfter, nil
}

// GetEntryByID returns an active entry in the acting user's shop.
func (s *ledgerService) GetEntryByID(ctx context.Context, entryID, actingUserID string) (*domain.LedgerEntry, error) {
	entry, err := s.ledgerRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	shop, err := s.shopSvc.ResolveActingShop(ctx, actingUserID, entry.ShopID)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	if shop.ShopID != entry.ShopID {
		return nil, apperrors.ErrNotFound
	}
	return entry, nil
}

// ListEntriesForCustomer returns the customer's active entries, newest
// transaction date first.
func (s *ledgerService) ListEntriesForCustomer(ctx context.Context, customerID, actingUserID string, limit, offset int) ([]domain.LedgerEntry, error) {
	customer, err := s.resolveCustomer(ctx, customerID, actingUserID)
	if err != nil {
		return nil, err
	}
	entries, err := s.ledgerRepo.ListEntriesByCustomer(ctx, customer.CustomerID, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list ledger entries",
			slog.String("customer_id", customerID))
		return nil, err
	}
	if entries == nil {
		entries = []domain.LedgerEntry{}
	}
	return entries, nil
}

// UpdateEntry overwrites the provided fields. The repository recomputes the
// customer balance from active entries in the same transaction, so amount and
// type changes are always reflected.
func (s *ledgerService) UpdateEntry(ctx context.Context, entryID string, req dto.UpdateLedgerEntryRequest, actingUserID string) (*domain.LedgerEntry, error) {
	entry, err := s.GetEntryByID(ctx, entryID, actingUserID)
	if err != nil {
		return nil, err
	}

	if req.TransactionType != nil {
		txType := domain.TransactionType(*req.TransactionType)
		if !txType.IsValid() {
			return nil, fmt.Errorf("unknown transaction type %q: %w", *req.TransactionType, apperrors.ErrValidation)
		}
		entry.TransactionType = txType
	}
	if req.Amount != nil {
		if err := s.validateAmount(*req.Amount); err != nil {
			return nil, err
		}
		entry.Amount = *req.Amount
	}
	if req.TransactionDate != nil {
		if req.TransactionDate.After(time.Now()) {
			return nil, fmt.Errorf("transaction date cannot be in the future: %w", apperrors.ErrValidation)
		}
		entry.TransactionDate = *req.TransactionDate
	}
	if req.Description != nil {
		entry.Description = *req.Description
	}
	if req.Notes != nil {
		entry.Notes = *req.Notes
	}
	if req.ReferenceNumber != nil {
		entry.ReferenceNumber = *req.ReferenceNumber
	}
	if req.PaymentMethod != nil {
		entry.PaymentMethod = *req.PaymentMethod
	}

	entry.LastUpdatedAt = time.Now()
	entry.LastUpdatedBy = actingUserID

	if err := s.ledgerRepo.UpdateEntry(ctx, *entry); err != nil {
		s.LogError(ctx, err, "Failed to update ledger entry",
			slog.String("entry_id", entryID))
		return nil, err
	}

	s.auditSvc.LogSuccess(ctx, "UPDATE_LEDGER_ENTRY", "LEDGER_ENTRY", entryID, "", actingUserID)
	return entry, nil
}

// DeleteEntry soft-deletes the entry and recomputes the customer balance.
func (s *ledgerService) DeleteEntry(ctx context.Context, entryID, actingUserID string) error {
	entry, err := s.GetEntryByID(ctx, entryID, actingUserID)
	if err != nil {
		return err
	}

	if err := s.ledgerRepo.MarkEntryDeleted(ctx, entry.EntryID, actingUserID); err != nil {
		s.LogError(ctx, err, "Failed to delete ledger entry",
			slog.String("entry_id", entryID))
		return err
	}

	s.auditSvc.LogSuccess(ctx, "DELETE_LEDGER_ENTRY", "LEDGER_ENTRY", entryID, "", actingUserID)
	return nil
}

// GetCustomerBalanceSummary aggregates the customer's active entries.
func (s *ledgerService) GetCustomerBalanceSummary(ctx context.Context, customerID, actingUserID string) (*domain.BalanceSummary, error) {
	customer, err := s.resolveCustomer(ctx, customerID, actingUserID)
	if err != nil {
		return nil, err
	}

	totalCredit, totalDebit, entryCount, err := s.ledgerRepo.SummarizeCustomer(ctx, customer.CustomerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to summarize ledger entries",
			slog.String("customer_id", customerID))
		return nil, err
	}

	return &domain.BalanceSummary{
		CustomerID:     customer.CustomerID,
		CustomerName:   customer.Name,
		CurrentBalance: customer.CurrentBalance,
		TotalCredit:    totalCredit,
		TotalDebit:     totalDebit,
		EntryCount:     entryCount,
		CreditLimit:    customer.CreditLimit,
	}, nil
}
