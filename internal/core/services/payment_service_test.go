package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerly/ledgerly-backend/internal/apperrors"
	"github.com/ledgerly/ledgerly-backend/internal/core/domain"
	portssvc "github.com/ledgerly/ledgerly-backend/internal/core/ports/services"
	"github.com/ledgerly/ledgerly-backend/internal/core/services"
	"github.com/ledgerly/ledgerly-backend/internal/dto"
	"github.com/ledgerly/ledgerly-backend/internal/platform/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PaymentServiceTestSuite struct {
	suite.Suite
	mockPaymentRepo  *MockPaymentRepository
	mockLedgerRepo   *MockLedgerRepository
	mockCustomerRepo *MockCustomerRepository
	shop             *domain.Shop
	actingUserID     string
	service          portssvc.PaymentSvcFacade
}

func (suite *PaymentServiceTestSuite) SetupTest() {
	suite.mockPaymentRepo = new(MockPaymentRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockCustomerRepo = new(MockCustomerRepository)
	suite.actingUserID = uuid.NewString()
	suite.shop = &domain.Shop{
		ShopID:      uuid.NewString(),
		OwnerUserID: suite.actingUserID,
		IsActive:    true,
	}
	cfg := &config.Config{MaxTransactionAmount: decimal.NewFromInt(100000)}
	suite.service = services.NewPaymentService(
		cfg,
		suite.mockPaymentRepo,
		suite.mockLedgerRepo,
		suite.mockCustomerRepo,
		&stubShopSvc{shop: suite.shop},
		noopAuditSvc{},
	)
}

func (suite *PaymentServiceTestSuite) customer() *domain.Customer {
	return &domain.Customer{
		CustomerID:     uuid.NewString(),
		ShopID:         suite.shop.ShopID,
		Name:           "Anil Traders",
		CurrentBalance: decimal.NewFromInt(500),
		IsActive:       true,
	}
}

func (suite *PaymentServiceTestSuite) pendingPayment(customerID string, amount decimal.Decimal) *domain.Payment {
	return &domain.Payment{
		PaymentID:     uuid.NewString(),
		CustomerID:    customerID,
		ShopID:        suite.shop.ShopID,
		Amount:        amount,
		AppliedAmount: decimal.Zero,
		PaymentDate:   time.Now().Add(-24 * time.Hour),
		Description:   "cash payment",
		Status:        domain.PaymentPending,
		IsActive:      true,
	}
}

func (suite *PaymentServiceTestSuite) debitEntry(customerID string, amount decimal.Decimal, daysAgo int) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:         uuid.NewString(),
		CustomerID:      customerID,
		ShopID:          suite.shop.ShopID,
		Amount:          amount,
		TransactionType: domain.Debit,
		TransactionDate: time.Now().AddDate(0, 0, -daysAgo),
		Description:     "goods delivered",
		IsActive:        true,
	}
}

// --- RecordPayment ---

func (suite *PaymentServiceTestSuite) TestRecordPayment_StartsPendingAndUnapplied() {
	ctx := context.Background()
	customer := suite.customer()

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, customer.CustomerID).Return(customer, nil).Once()
	suite.mockPaymentRepo.On("SavePayment", ctx, mock.MatchedBy(func(p domain.Payment) bool {
		return p.CustomerID == customer.CustomerID &&
			p.ShopID == suite.shop.ShopID &&
			p.Status == domain.PaymentPending &&
			p.AppliedAmount.IsZero() &&
			p.IsActive
	})).Return(nil).Once()

	payment, err := suite.service.RecordPayment(ctx, dto.CreatePaymentRequest{
		CustomerID:  customer.CustomerID,
		Amount:      decimal.NewFromInt(300),
		Description: "cash payment",
	}, suite.actingUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(payment)
	suite.True(payment.UnappliedAmount().Equal(decimal.NewFromInt(300)))
	suite.Equal(suite.actingUserID, payment.CreatedBy)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_RejectsNonPositiveAmount() {
	ctx := context.Background()

	_, err := suite.service.RecordPayment(ctx, dto.CreatePaymentRequest{
		CustomerID:  uuid.NewString(),
		Amount:      decimal.Zero,
		Description: "bad",
	}, suite.actingUserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "SavePayment", mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_RejectsFutureDate() {
	ctx := context.Background()
	customer := suite.customer()
	future := time.Now().Add(48 * time.Hour)

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, customer.CustomerID).Return(customer, nil).Once()

	_, err := suite.service.RecordPayment(ctx, dto.CreatePaymentRequest{
		CustomerID:  customer.CustomerID,
		Amount:      decimal.NewFromInt(50),
		PaymentDate: &future,
		Description: "time traveler",
	}, suite.actingUserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_CustomerOutsideShopIsNotFound() {
	ctx := context.Background()
	customer := suite.customer()
	customer.ShopID = uuid.NewString()

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, customer.CustomerID).Return(customer, nil).Once()

	_, err := suite.service.RecordPayment(ctx, dto.CreatePaymentRequest{
		CustomerID:  customer.CustomerID,
		Amount:      decimal.NewFromInt(50),
		Description: "cross-shop",
	}, suite.actingUserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- ApplyPayment ---

func (suite *PaymentServiceTestSuite) TestApplyPayment_PartialLeavesPaymentPartial() {
	ctx := context.Background()
	customer := suite.customer()
	payment := suite.pendingPayment(customer.CustomerID, decimal.NewFromInt(300))
	entry := suite.debitEntry(customer.CustomerID, decimal.NewFromInt(200), 10)

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, payment.PaymentID).Return(payment, nil).Once()
	suite.mockLedgerRepo.On("FindEntryByID", ctx, entry.EntryID).Return(&entry, nil).Once()
	suite.mockPaymentRepo.On("ApplyPayment", ctx,
		mock.MatchedBy(func(p domain.Payment) bool {
			return p.AppliedAmount.Equal(decimal.NewFromInt(200)) &&
				p.Status == domain.PaymentPartial
		}),
		mock.MatchedBy(func(apps []domain.PaymentApplication) bool {
			return len(apps) == 1 &&
				apps[0].EntryID == entry.EntryID &&
				apps[0].AppliedAmount.Equal(decimal.NewFromInt(200))
		}),
	).Return(nil).Once()

	updated, err := suite.service.ApplyPayment(ctx, payment.PaymentID, dto.ApplyPaymentRequest{
		Applications: []dto.PaymentApplicationDetail{
			{EntryID: entry.EntryID, Amount: decimal.NewFromInt(200)},
		},
	}, suite.actingUserID)

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentPartial, updated.Status)
	suite.True(updated.UnappliedAmount().Equal(decimal.NewFromInt(100)))
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestApplyPayment_FullApplicationProcesses() {
	ctx := context.Background()
	customer := suite.customer()
	payment := suite.pendingPayment(customer.CustomerID, decimal.NewFromInt(200))
	entry := suite.debitEntry(customer.CustomerID, decimal.NewFromInt(200), 5)

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, payment.PaymentID).Return(payment, nil).Once()
	suite.mockLedgerRepo.On("FindEntryByID", ctx, entry.EntryID).Return(&entry, nil).Once()
	suite.mockPaymentRepo.On("ApplyPayment", ctx,
		mock.MatchedBy(func(p domain.Payment) bool {
			return p.Status == domain.PaymentProcessed && p.IsFullyApplied()
		}),
		mock.Anything,
	).Return(nil).Once()

	updated, err := suite.service.ApplyPayment(ctx, payment.PaymentID, dto.ApplyPaymentRequest{
		Applications: []dto.PaymentApplicationDetail{
			{EntryID: entry.EntryID, Amount: decimal.NewFromInt(200)},
		},
	}, suite.actingUserID)

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentProcessed, updated.Status)
}

func (suite *PaymentServiceTestSuite) TestApplyPayment_RejectsOverApplication() {
	ctx := context.Background()
	customer := suite.customer()
	payment := suite.pendingPayment(customer.CustomerID, decimal.NewFromInt(100))

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, payment.PaymentID).Return(payment, nil).Once()

	_, err := suite.service.ApplyPayment(ctx, payment.PaymentID, dto.ApplyPaymentRequest{
		Applications: []dto.PaymentApplicationDetail{
			{EntryID: uuid.NewString(), Amount: decimal.NewFromInt(150)},
		},
	}, suite.actingUserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "ApplyPayment", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestApplyPayment_RejectsCreditEntry() {
	ctx := context.Background()
	customer := suite.customer()
	payment := suite.pendingPayment(customer.CustomerID, decimal.NewFromInt(100))
	entry := suite.debitEntry(customer.CustomerID, decimal.NewFromInt(100), 3)
	entry.TransactionType = domain.Credit

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, payment.PaymentID).Return(payment, nil).Once()
	suite.mockLedgerRepo.On("FindEntryByID", ctx, entry.EntryID).Return(&entry, nil).Once()

	_, err := suite.service.ApplyPayment(ctx, payment.PaymentID, dto.ApplyPaymentRequest{
		Applications: []dto.PaymentApplicationDetail{
			{EntryID: entry.EntryID, Amount: decimal.NewFromInt(100)},
		},
	}, suite.actingUserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PaymentServiceTestSuite) TestApplyPayment_RejectsOtherCustomersEntry() {
	ctx := context.Background()
	customer := suite.customer()
	payment := suite.pendingPayment(customer.CustomerID, decimal.NewFromInt(100))
	entry := suite.debitEntry(uuid.NewString(), decimal.NewFromInt(100), 3)

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, payment.PaymentID).Return(payment, nil).Once()
	suite.mockLedgerRepo.On("FindEntryByID", ctx, entry.EntryID).Return(&entry, nil).Once()

	_, err := suite.service.ApplyPayment(ctx, payment.PaymentID, dto.ApplyPaymentRequest{
		Applications: []dto.PaymentApplicationDetail{
			{EntryID: entry.EntryID, Amount: decimal.NewFromInt(100)},
		},
	}, suite.actingUserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- AutoApplyPayment ---

func (suite *PaymentServiceTestSuite) TestAutoApplyPayment_OldestEntriesFirst() {
	ctx := context.Background()
	customer := suite.customer()
	payment := suite.pendingPayment(customer.CustomerID, decimal.NewFromInt(250))
	older := suite.debitEntry(customer.CustomerID, decimal.NewFromInt(200), 30)
	newer := suite.debitEntry(customer.CustomerID, decimal.NewFromInt(200), 5)

	// resolvePayment runs once for auto-apply and once inside ApplyPayment.
	suite.mockPaymentRepo.On("FindPaymentByID", ctx, payment.PaymentID).Return(payment, nil).Twice()
	suite.mockLedgerRepo.On("ListActiveDebitEntries", ctx, customer.CustomerID).
		Return([]domain.LedgerEntry{older, newer}, nil).Once()
	suite.mockPaymentRepo.On("SumAppliedByEntry", ctx, customer.CustomerID).
		Return(map[string]decimal.Decimal{}, nil).Once()
	suite.mockLedgerRepo.On("FindEntryByID", ctx, older.EntryID).Return(&older, nil).Once()
	suite.mockLedgerRepo.On("FindEntryByID", ctx, newer.EntryID).Return(&newer, nil).Once()
	suite.mockPaymentRepo.On("ApplyPayment", ctx,
		mock.MatchedBy(func(p domain.Payment) bool {
			return p.AppliedAmount.Equal(decimal.NewFromInt(250)) &&
				p.Status == domain.PaymentProcessed
		}),
		mock.MatchedBy(func(apps []domain.PaymentApplication) bool {
			// 200 settles the older debit in full, the remaining 50 dents the newer one.
			return len(apps) == 2 &&
				apps[0].EntryID == older.EntryID &&
				apps[0].AppliedAmount.Equal(decimal.NewFromInt(200)) &&
				apps[1].EntryID == newer.EntryID &&
				apps[1].AppliedAmount.Equal(decimal.NewFromInt(50))
		}),
	).Return(nil).Once()

	updated, err := suite.service.AutoApplyPayment(ctx, payment.PaymentID, suite.actingUserID)

	suite.Require().NoError(err)
	suite.True(updated.IsFullyApplied())
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestAutoApplyPayment_SkipsSettledEntries() {
	ctx := context.Background()
	customer := suite.customer()
	payment := suite.pendingPayment(customer.CustomerID, decimal.NewFromInt(100))
	settled := suite.debitEntry(customer.CustomerID, decimal.NewFromInt(200), 30)
	open := suite.debitEntry(customer.CustomerID, decimal.NewFromInt(150), 10)

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, payment.PaymentID).Return(payment, nil).Twice()
	suite.mockLedgerRepo.On("ListActiveDebitEntries", ctx, customer.CustomerID).
		Return([]domain.LedgerEntry{settled, open}, nil).Once()
	suite.mockPaymentRepo.On("SumAppliedByEntry", ctx, customer.CustomerID).
		Return(map[string]decimal.Decimal{settled.EntryID: decimal.NewFromInt(200)}, nil).Once()
	suite.mockLedgerRepo.On("FindEntryByID", ctx, open.EntryID).Return(&open, nil).Once()
	suite.mockPaymentRepo.On("ApplyPayment", ctx,
		mock.Anything,
		mock.MatchedBy(func(apps []domain.PaymentApplication) bool {
			return len(apps) == 1 && apps[0].EntryID == open.EntryID &&
				apps[0].AppliedAmount.Equal(decimal.NewFromInt(100))
		}),
	).Return(nil).Once()

	_, err := suite.service.AutoApplyPayment(ctx, payment.PaymentID, suite.actingUserID)

	suite.Require().NoError(err)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestAutoApplyPayment_NothingOutstanding() {
	ctx := context.Background()
	customer := suite.customer()
	payment := suite.pendingPayment(customer.CustomerID, decimal.NewFromInt(100))

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, payment.PaymentID).Return(payment, nil).Once()
	suite.mockLedgerRepo.On("ListActiveDebitEntries", ctx, customer.CustomerID).
		Return([]domain.LedgerEntry{}, nil).Once()
	suite.mockPaymentRepo.On("SumAppliedByEntry", ctx, customer.CustomerID).
		Return(map[string]decimal.Decimal{}, nil).Once()

	_, err := suite.service.AutoApplyPayment(ctx, payment.PaymentID, suite.actingUserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PaymentServiceTestSuite) TestAutoApplyPayment_FullyAppliedIsRejected() {
	ctx := context.Background()
	customer := suite.customer()
	payment := suite.pendingPayment(customer.CustomerID, decimal.NewFromInt(100))
	payment.AppliedAmount = decimal.NewFromInt(100)
	payment.Status = domain.PaymentProcessed

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, payment.PaymentID).Return(payment, nil).Once()

	_, err := suite.service.AutoApplyPayment(ctx, payment.PaymentID, suite.actingUserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- ReverseApplication ---

func (suite *PaymentServiceTestSuite) TestReverseApplication_RestoresUnappliedBalance() {
	ctx := context.Background()
	customer := suite.customer()
	payment := suite.pendingPayment(customer.CustomerID, decimal.NewFromInt(300))
	payment.AppliedAmount = decimal.NewFromInt(200)
	payment.Status = domain.PaymentPartial
	application := &domain.PaymentApplication{
		ApplicationID: uuid.NewString(),
		PaymentID:     payment.PaymentID,
		EntryID:       uuid.NewString(),
		AppliedAmount: decimal.NewFromInt(200),
	}

	suite.mockPaymentRepo.On("FindApplicationByID", ctx, application.ApplicationID).Return(application, nil).Once()
	suite.mockPaymentRepo.On("FindPaymentByID", ctx, payment.PaymentID).Return(payment, nil).Once()
	suite.mockPaymentRepo.On("ReverseApplication", ctx,
		mock.MatchedBy(func(a domain.PaymentApplication) bool {
			return a.IsReversed && a.ReversedBy == suite.actingUserID && a.ReversedAt != nil
		}),
		mock.MatchedBy(func(p domain.Payment) bool {
			// Everything applied came from this application, so the payment
			// drops back to PENDING.
			return p.AppliedAmount.IsZero() && p.Status == domain.PaymentPending
		}),
	).Return(nil).Once()

	err := suite.service.ReverseApplication(ctx, application.ApplicationID, suite.actingUserID)

	suite.Require().NoError(err)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestReverseApplication_AlreadyReversed() {
	ctx := context.Background()
	application := &domain.PaymentApplication{
		ApplicationID: uuid.NewString(),
		PaymentID:     uuid.NewString(),
		AppliedAmount: decimal.NewFromInt(50),
		IsReversed:    true,
	}

	suite.mockPaymentRepo.On("FindApplicationByID", ctx, application.ApplicationID).Return(application, nil).Once()

	err := suite.service.ReverseApplication(ctx, application.ApplicationID, suite.actingUserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "ReverseApplication", mock.Anything, mock.Anything, mock.Anything)
}

// --- GetOutstandingBalance ---

func (suite *PaymentServiceTestSuite) TestGetOutstandingBalance() {
	ctx := context.Background()
	customer := suite.customer()
	openDebit := suite.debitEntry(customer.CustomerID, decimal.NewFromInt(400), 20)
	partialDebit := suite.debitEntry(customer.CustomerID, decimal.NewFromInt(300), 40)
	unappliedPayment := *suite.pendingPayment(customer.CustomerID, decimal.NewFromInt(150))

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, customer.CustomerID).Return(customer, nil).Once()
	suite.mockLedgerRepo.On("ListActiveDebitEntries", ctx, customer.CustomerID).
		Return([]domain.LedgerEntry{partialDebit, openDebit}, nil).Once()
	suite.mockPaymentRepo.On("SumAppliedByEntry", ctx, customer.CustomerID).
		Return(map[string]decimal.Decimal{partialDebit.EntryID: decimal.NewFromInt(100)}, nil).Once()
	suite.mockPaymentRepo.On("ListUnappliedPaymentsByCustomer", ctx, customer.CustomerID).
		Return([]domain.Payment{unappliedPayment}, nil).Once()

	balance, err := suite.service.GetOutstandingBalance(ctx, customer.CustomerID, suite.actingUserID)

	suite.Require().NoError(err)
	suite.Equal(customer.CustomerID, balance.CustomerID)
	suite.Len(balance.OutstandingEntries, 2)
	// 400 fully open plus 200 left on the partially settled debit.
	suite.True(balance.TotalOutstanding.Equal(decimal.NewFromInt(600)))
	suite.True(balance.TotalUnapplied.Equal(decimal.NewFromInt(150)))
	suite.True(balance.NetOutstanding.Equal(decimal.NewFromInt(450)))
	suite.Require().NotNil(balance.OldestOutstandingDate)
	suite.WithinDuration(partialDebit.TransactionDate, *balance.OldestOutstandingDate, time.Second)
	suite.Len(balance.UnappliedPayments, 1)
}

func (suite *PaymentServiceTestSuite) TestGetOutstandingBalance_AllSettled() {
	ctx := context.Background()
	customer := suite.customer()
	settled := suite.debitEntry(customer.CustomerID, decimal.NewFromInt(200), 15)

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, customer.CustomerID).Return(customer, nil).Once()
	suite.mockLedgerRepo.On("ListActiveDebitEntries", ctx, customer.CustomerID).
		Return([]domain.LedgerEntry{settled}, nil).Once()
	suite.mockPaymentRepo.On("SumAppliedByEntry", ctx, customer.CustomerID).
		Return(map[string]decimal.Decimal{settled.EntryID: decimal.NewFromInt(200)}, nil).Once()
	suite.mockPaymentRepo.On("ListUnappliedPaymentsByCustomer", ctx, customer.CustomerID).
		Return([]domain.Payment{}, nil).Once()

	balance, err := suite.service.GetOutstandingBalance(ctx, customer.CustomerID, suite.actingUserID)

	suite.Require().NoError(err)
	suite.Empty(balance.OutstandingEntries)
	suite.True(balance.TotalOutstanding.IsZero())
	suite.True(balance.NetOutstanding.IsZero())
	suite.Nil(balance.OldestOutstandingDate)
	suite.Zero(balance.AverageDaysOutstanding)
}

func TestPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}
