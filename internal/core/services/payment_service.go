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

// paymentService implements the PaymentSvcFacade.
type paymentService struct {
	BaseService
	paymentRepo  portsrepo.PaymentRepositoryFacade
	ledgerRepo   portsrepo.LedgerRepositoryFacade
	customerRepo portsrepo.CustomerRepositoryFacade
	shopSvc      portssvc.ShopSvcFacade
	auditSvc     portssvc.AuditSvcFacade
	maxAmount    decimal.Decimal
}

// NewPaymentService creates a new payment service with the provided
// dependencies.
func NewPaymentService(
	cfg *config.Config,
	paymentRepo portsrepo.PaymentRepositoryFacade,
	ledgerRepo portsrepo.LedgerRepositoryFacade,
	customerRepo portsrepo.CustomerRepositoryFacade,
	shopSvc portssvc.ShopSvcFacade,
	auditSvc portssvc.AuditSvcFacade,
) portssvc.PaymentSvcFacade {
	return &paymentService{
		paymentRepo:  paymentRepo,
		ledgerRepo:   ledgerRepo,
		customerRepo: customerRepo,
		shopSvc:      shopSvc,
		auditSvc:     auditSvc,
		maxAmount:    cfg.MaxTransactionAmount,
	}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// resolveCustomer loads the customer and checks it belongs to the acting
// user's shop. Customers outside that shop read as not found; other
// resolution failures propagate as-is.
func (s *paymentService) resolveCustomer(ctx context.Context, customerID, actingUserID string) (*domain.Customer, error) {
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

// resolvePayment loads the payment and checks it belongs to the acting
// user's shop, following the same masking rules as resolveCustomer.
func (s *paymentService) resolvePayment(ctx context.Context, paymentID, actingUserID string) (*domain.Payment, error) {
	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	shop, err := s.shopSvc.ResolveActingShop(ctx, actingUserID, payment.ShopID)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	if shop.ShopID != payment.ShopID {
		return nil, apperrors.ErrNotFound
	}
	return payment, nil
}

// RecordPayment validates and persists a new payment with nothing applied.
func (s *paymentService) RecordPayment(ctx context.Context, req dto.CreatePaymentRequest, actingUserID string) (*domain.Payment, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("payment amount must be positive: %w", apperrors.ErrValidation)
	}
	if s.maxAmount.IsPositive() && req.Amount.GreaterThan(s.maxAmount) {
		return nil, fmt.Errorf("payment amount exceeds the maximum of %s: %w", s.maxAmount.String(), apperrors.ErrValidation)
	}

	customer, err := s.resolveCustomer(ctx, req.CustomerID, actingUserID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	paymentDate := now
	if req.PaymentDate != nil {
		paymentDate = *req.PaymentDate
		if paymentDate.After(now) {
			return nil, fmt.Errorf("payment date cannot be in the future: %w", apperrors.ErrValidation)
		}
	}

	payment := domain.Payment{
		PaymentID:        uuid.NewString(),
		CustomerID:       customer.CustomerID,
		ShopID:           customer.ShopID,
		Amount:           req.Amount,
		AppliedAmount:    decimal.Zero,
		PaymentDate:      paymentDate,
		Description:      req.Description,
		Notes:            req.Notes,
		ReferenceNumber:  req.ReferenceNumber,
		PaymentMethod:    req.PaymentMethod,
		BankDetails:      req.BankDetails,
		CheckNumber:      req.CheckNumber,
		Status:           domain.PaymentPending,
		IsAdvancePayment: req.IsAdvancePayment,
		IsActive:         true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actingUserID,
		},
	}

	if err := s.paymentRepo.SavePayment(ctx, payment); err != nil {
		s.LogError(ctx, err, "Failed to save payment",
			slog.String("customer_id", customer.CustomerID))
		s.auditSvc.LogFailure(ctx, "RECORD_PAYMENT", "PAYMENT", "", "failed to record payment for customer "+customer.CustomerID, actingUserID)
		return nil, err
	}

	s.auditSvc.LogSuccess(ctx, "RECORD_PAYMENT", "PAYMENT", payment.PaymentID, "payment of "+payment.Amount.String()+" for customer "+customer.Name, actingUserID)
	s.LogInfo(ctx, "Payment recorded",
		slog.String("payment_id", payment.PaymentID),
		slog.String("customer_id", customer.CustomerID))
	return &payment, nil
}

// GetPaymentByID returns an active payment in the acting user's shop.
func (s *paymentService) GetPaymentByID(ctx context.Context, paymentID, actingUserID string) (*domain.Payment, error) {
	return s.resolvePayment(ctx, paymentID, actingUserID)
}

// ListPaymentsForCustomer returns the customer's active payments.
func (s *paymentService) ListPaymentsForCustomer(ctx context.Context, customerID, actingUserID string, unappliedOnly bool, limit, offset int) ([]domain.Payment, error) {
	customer, err := s.resolveCustomer(ctx, customerID, actingUserID)
	if err != nil {
		return nil, err
	}

	var payments []domain.Payment
	if unappliedOnly {
		payments, err = s.paymentRepo.ListUnappliedPaymentsByCustomer(ctx, customer.CustomerID)
	} else {
		payments, err = s.paymentRepo.ListPaymentsByCustomer(ctx, customer.CustomerID, limit, offset)
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to list payments",
			slog.String("customer_id", customerID))
		return nil, err
	}
	if payments == nil {
		payments = []domain.Payment{}
	}
	return payments, nil
}

// ApplyPayment settles parts of the payment against the named debit entries.
func (s *paymentService) ApplyPayment(ctx context.Context, paymentID string, req dto.ApplyPaymentRequest, actingUserID string) (*domain.Payment, error) {
	payment, err := s.resolvePayment(ctx, paymentID, actingUserID)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, detail := range req.Applications {
		if !detail.Amount.IsPositive() {
			return nil, fmt.Errorf("application amount must be positive: %w", apperrors.ErrValidation)
		}
		total = total.Add(detail.Amount)
	}

	if !payment.CanApply(total) {
		s.auditSvc.LogFailure(ctx, "APPLY_PAYMENT", "PAYMENT", payment.PaymentID, "insufficient unapplied amount", actingUserID)
		return nil, fmt.Errorf("payment has insufficient unapplied amount, available %s, requested %s: %w",
			payment.UnappliedAmount().String(), total.String(), apperrors.ErrValidation)
	}

	now := time.Now()
	applications := make([]domain.PaymentApplication, 0, len(req.Applications))
	for _, detail := range req.Applications {
		entry, err := s.ledgerRepo.FindEntryByID(ctx, detail.EntryID)
		if err != nil {
			return nil, err
		}
		if entry.CustomerID != payment.CustomerID {
			return nil, fmt.Errorf("ledger entry %s belongs to a different customer: %w", detail.EntryID, apperrors.ErrValidation)
		}
		if entry.TransactionType != domain.Debit {
			return nil, fmt.Errorf("payments can only be applied to debit entries: %w", apperrors.ErrValidation)
		}

		applications = append(applications, domain.PaymentApplication{
			ApplicationID: uuid.NewString(),
			PaymentID:     payment.PaymentID,
			EntryID:       entry.EntryID,
			AppliedAmount: detail.Amount,
			Notes:         detail.Notes,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actingUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: actingUserID,
			},
		})
	}

	payment.Apply(total)
	payment.LastUpdatedAt = now
	payment.LastUpdatedBy = actingUserID

	if err := s.paymentRepo.ApplyPayment(ctx, *payment, applications); err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			s.auditSvc.LogFailure(ctx, "APPLY_PAYMENT", "PAYMENT", payment.PaymentID, "insufficient unapplied amount", actingUserID)
			return nil, err
		}
		s.LogError(ctx, err, "Failed to apply payment",
			slog.String("payment_id", payment.PaymentID))
		return nil, err
	}

	s.auditSvc.LogSuccess(ctx, "APPLY_PAYMENT", "PAYMENT", payment.PaymentID,
		fmt.Sprintf("applied %s across %d entries", total.String(), len(applications)), actingUserID)
	s.LogInfo(ctx, "Payment applied",
		slog.String("payment_id", payment.PaymentID),
		slog.Int("applications", len(applications)))
	return payment, nil
}

// AutoApplyPayment settles the payment's unapplied balance against the
// customer's outstanding debit entries, oldest transaction date first.
func (s *paymentService) AutoApplyPayment(ctx context.Context, paymentID, actingUserID string) (*domain.Payment, error) {
	payment, err := s.resolvePayment(ctx, paymentID, actingUserID)
	if err != nil {
		return nil, err
	}
	if payment.IsFullyApplied() {
		return nil, fmt.Errorf("payment is already fully applied: %w", apperrors.ErrValidation)
	}

	entries, err := s.ledgerRepo.ListActiveDebitEntries(ctx, payment.CustomerID)
	if err != nil {
		return nil, err
	}
	applied, err := s.paymentRepo.SumAppliedByEntry(ctx, payment.CustomerID)
	if err != nil {
		return nil, err
	}

	remaining := payment.UnappliedAmount()
	details := []dto.PaymentApplicationDetail{}
	for _, entry := range entries {
		if !remaining.IsPositive() {
			break
		}
		outstanding := entry.Amount.Sub(applied[entry.EntryID])
		if !outstanding.IsPositive() {
			continue
		}
		amount := decimal.Min(remaining, outstanding)
		details = append(details, dto.PaymentApplicationDetail{
			EntryID: entry.EntryID,
			Amount:  amount,
			Notes:   "Auto-applied to oldest outstanding entries",
		})
		remaining = remaining.Sub(amount)
	}

	if len(details) == 0 {
		return nil, fmt.Errorf("no outstanding entries to apply the payment to: %w", apperrors.ErrValidation)
	}

	return s.ApplyPayment(ctx, paymentID, dto.ApplyPaymentRequest{Applications: details}, actingUserID)
}

// ReverseApplication undoes one payment application.
func (s *paymentService) ReverseApplication(ctx context.Context, applicationID, actingUserID string) error {
	application, err := s.paymentRepo.FindApplicationByID(ctx, applicationID)
	if err != nil {
		return err
	}
	if application.IsReversed {
		return fmt.Errorf("payment application is already reversed: %w", apperrors.ErrValidation)
	}

	payment, err := s.resolvePayment(ctx, application.PaymentID, actingUserID)
	if err != nil {
		return err
	}

	now := time.Now()
	application.IsReversed = true
	application.ReversedAt = &now
	application.ReversedBy = actingUserID
	application.LastUpdatedAt = now
	application.LastUpdatedBy = actingUserID

	payment.Unapply(application.AppliedAmount)
	payment.LastUpdatedAt = now
	payment.LastUpdatedBy = actingUserID

	if err := s.paymentRepo.ReverseApplication(ctx, *application, *payment); err != nil {
		s.LogError(ctx, err, "Failed to reverse payment application",
			slog.String("application_id", applicationID))
		return err
	}

	s.auditSvc.LogSuccess(ctx, "REVERSE_PAYMENT_APPLICATION", "PAYMENT_APPLICATION", applicationID,
		"reversed "+application.AppliedAmount.String(), actingUserID)
	return nil
}

// GetOutstandingBalance reports open debit entries and unapplied payments.
func (s *paymentService) GetOutstandingBalance(ctx context.Context, customerID, actingUserID string) (*domain.OutstandingBalance, error) {
	customer, err := s.resolveCustomer(ctx, customerID, actingUserID)
	if err != nil {
		return nil, err
	}

	debits, err := s.ledgerRepo.ListActiveDebitEntries(ctx, customer.CustomerID)
	if err != nil {
		return nil, err
	}
	applied, err := s.paymentRepo.SumAppliedByEntry(ctx, customer.CustomerID)
	if err != nil {
		return nil, err
	}
	unappliedPayments, err := s.paymentRepo.ListUnappliedPaymentsByCustomer(ctx, customer.CustomerID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	outstandingEntries := []domain.OutstandingEntry{}
	totalOutstanding := decimal.Zero
	var oldestDate *time.Time
	totalDays := 0

	for _, entry := range debits {
		outstanding := entry.Amount.Sub(applied[entry.EntryID])
		if !outstanding.IsPositive() {
			continue
		}
		days := int(now.Sub(entry.TransactionDate).Hours() / 24)
		outstandingEntries = append(outstandingEntries, domain.OutstandingEntry{
			EntryID:           entry.EntryID,
			TransactionDate:   entry.TransactionDate,
			Description:       entry.Description,
			Amount:            entry.Amount,
			OutstandingAmount: outstanding,
			DaysOutstanding:   days,
		})
		totalOutstanding = totalOutstanding.Add(outstanding)
		totalDays += days
		if oldestDate == nil || entry.TransactionDate.Before(*oldestDate) {
			d := entry.TransactionDate
			oldestDate = &d
		}
	}

	unapplied := []domain.UnappliedPayment{}
	totalUnapplied := decimal.Zero
	for _, p := range unappliedPayments {
		amount := p.UnappliedAmount()
		if !amount.IsPositive() {
			continue
		}
		unapplied = append(unapplied, domain.UnappliedPayment{
			PaymentID:       p.PaymentID,
			PaymentDate:     p.PaymentDate,
			Description:     p.Description,
			Amount:          p.Amount,
			AppliedAmount:   p.AppliedAmount,
			UnappliedAmount: amount,
			PaymentMethod:   p.PaymentMethod,
		})
		totalUnapplied = totalUnapplied.Add(amount)
	}

	averageDays := 0
	if len(outstandingEntries) > 0 {
		averageDays = totalDays / len(outstandingEntries)
	}

	return &domain.OutstandingBalance{
		CustomerID:             customer.CustomerID,
		CustomerName:           customer.Name,
		CurrentBalance:         customer.CurrentBalance,
		TotalOutstanding:       totalOutstanding,
		TotalUnapplied:         totalUnapplied,
		NetOutstanding:         totalOutstanding.Sub(totalUnapplied),
		OldestOutstandingDate:  oldestDate,
		AverageDaysOutstanding: averageDays,
		OutstandingEntries:     outstandingEntries,
		UnappliedPayments:      unapplied,
	}, nil
}
