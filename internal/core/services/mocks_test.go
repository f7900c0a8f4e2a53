package services_test

import (
	"context"
	"time"

	"github.com/ledgerly/ledgerly-backend/internal/core/domain"
	portssvc "github.com/ledgerly/ledgerly-backend/internal/core/ports/services"
	"github.com/ledgerly/ledgerly-backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByUsernameOrEmail(ctx context.Context, usernameOrEmail string) (*domain.User, error) {
	args := m.Called(ctx, usernameOrEmail)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) FindActiveUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateLastLogin(ctx context.Context, userID string, at time.Time) error {
	args := m.Called(ctx, userID, at)
	return args.Error(0)
}

func (m *MockUserRepository) SetUserActive(ctx context.Context, userID string, active bool, updatedBy string) error {
	args := m.Called(ctx, userID, active, updatedBy)
	return args.Error(0)
}

// --- Mock ShopRepository ---

type MockShopRepository struct {
	mock.Mock
}

func (m *MockShopRepository) FindShopByID(ctx context.Context, shopID string) (*domain.Shop, error) {
	args := m.Called(ctx, shopID)
	var shop *domain.Shop
	if args.Get(0) != nil {
		shop = args.Get(0).(*domain.Shop)
	}
	return shop, args.Error(1)
}

func (m *MockShopRepository) ListShopsByOwner(ctx context.Context, ownerUserID string) ([]domain.Shop, error) {
	args := m.Called(ctx, ownerUserID)
	var shops []domain.Shop
	if args.Get(0) != nil {
		shops = args.Get(0).([]domain.Shop)
	}
	return shops, args.Error(1)
}

func (m *MockShopRepository) SaveShop(ctx context.Context, shop domain.Shop) error {
	args := m.Called(ctx, shop)
	return args.Error(0)
}

func (m *MockShopRepository) FindActiveMappingByStaff(ctx context.Context, staffUserID string) (*domain.StaffShopMapping, error) {
	args := m.Called(ctx, staffUserID)
	var mapping *domain.StaffShopMapping
	if args.Get(0) != nil {
		mapping = args.Get(0).(*domain.StaffShopMapping)
	}
	return mapping, args.Error(1)
}

func (m *MockShopRepository) SaveMapping(ctx context.Context, mapping domain.StaffShopMapping) error {
	args := m.Called(ctx, mapping)
	return args.Error(0)
}

func (m *MockShopRepository) DeactivateMappingsForStaff(ctx context.Context, staffUserID string) error {
	args := m.Called(ctx, staffUserID)
	return args.Error(0)
}

// --- Mock CustomerRepository ---

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, customerID)
	var customer *domain.Customer
	if args.Get(0) != nil {
		customer = args.Get(0).(*domain.Customer)
	}
	return customer, args.Error(1)
}

func (m *MockCustomerRepository) ListCustomersByShop(ctx context.Context, shopID string, limit, offset int) ([]domain.Customer, error) {
	args := m.Called(ctx, shopID, limit, offset)
	var customers []domain.Customer
	if args.Get(0) != nil {
		customers = args.Get(0).([]domain.Customer)
	}
	return customers, args.Error(1)
}

func (m *MockCustomerRepository) ExistsByEmailAndShop(ctx context.Context, email, shopID string) (bool, error) {
	args := m.Called(ctx, email, shopID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) MarkCustomerDeleted(ctx context.Context, customerID string, deletedBy string) error {
	args := m.Called(ctx, customerID, deletedBy)
	return args.Error(0)
}

// --- Mock LedgerRepository ---

type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entryID)
	var entry *domain.LedgerEntry
	if args.Get(0) != nil {
		entry = args.Get(0).(*domain.LedgerEntry)
	}
	return entry, args.Error(1)
}

func (m *MockLedgerRepository) ListEntriesByCustomer(ctx context.Context, customerID string, limit, offset int) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, customerID, limit, offset)
	var entries []domain.LedgerEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.LedgerEntry)
	}
	return entries, args.Error(1)
}

func (m *MockLedgerRepository) SummarizeCustomer(ctx context.Context, customerID string) (decimal.Decimal, decimal.Decimal, int64, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Get(2).(int64), args.Error(3)
}

func (m *MockLedgerRepository) ListActiveDebitEntries(ctx context.Context, customerID string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, customerID)
	var entries []domain.LedgerEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.LedgerEntry)
	}
	return entries, args.Error(1)
}

func (m *MockLedgerRepository) SaveEntry(ctx context.Context, entry domain.LedgerEntry, delta, creditLimit decimal.Decimal) (decimal.Decimal, error) {
	args := m.Called(ctx, entry, delta, creditLimit)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedgerRepository) UpdateEntry(ctx context.Context, entry domain.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) MarkEntryDeleted(ctx context.Context, entryID string, deletedBy string) error {
	args := m.Called(ctx, entryID, deletedBy)
	return args.Error(0)
}

// --- Mock PaymentRepository ---

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID)
	var payment *domain.Payment
	if args.Get(0) != nil {
		payment = args.Get(0).(*domain.Payment)
	}
	return payment, args.Error(1)
}

func (m *MockPaymentRepository) ListPaymentsByCustomer(ctx context.Context, customerID string, limit, offset int) ([]domain.Payment, error) {
	args := m.Called(ctx, customerID, limit, offset)
	var payments []domain.Payment
	if args.Get(0) != nil {
		payments = args.Get(0).([]domain.Payment)
	}
	return payments, args.Error(1)
}

func (m *MockPaymentRepository) ListUnappliedPaymentsByCustomer(ctx context.Context, customerID string) ([]domain.Payment, error) {
	args := m.Called(ctx, customerID)
	var payments []domain.Payment
	if args.Get(0) != nil {
		payments = args.Get(0).([]domain.Payment)
	}
	return payments, args.Error(1)
}

func (m *MockPaymentRepository) FindApplicationByID(ctx context.Context, applicationID string) (*domain.PaymentApplication, error) {
	args := m.Called(ctx, applicationID)
	var application *domain.PaymentApplication
	if args.Get(0) != nil {
		application = args.Get(0).(*domain.PaymentApplication)
	}
	return application, args.Error(1)
}

func (m *MockPaymentRepository) SumAppliedByEntry(ctx context.Context, customerID string) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, customerID)
	var applied map[string]decimal.Decimal
	if args.Get(0) != nil {
		applied = args.Get(0).(map[string]decimal.Decimal)
	}
	return applied, args.Error(1)
}

func (m *MockPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) ApplyPayment(ctx context.Context, payment domain.Payment, applications []domain.PaymentApplication) error {
	args := m.Called(ctx, payment, applications)
	return args.Error(0)
}

func (m *MockPaymentRepository) ReverseApplication(ctx context.Context, application domain.PaymentApplication, payment domain.Payment) error {
	args := m.Called(ctx, application, payment)
	return args.Error(0)
}

// --- Mock AuditRepository ---

type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) SaveLog(ctx context.Context, log domain.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockAuditRepository) ListRecent(ctx context.Context, limit, offset int) ([]domain.AuditLog, error) {
	args := m.Called(ctx, limit, offset)
	var logs []domain.AuditLog
	if args.Get(0) != nil {
		logs = args.Get(0).([]domain.AuditLog)
	}
	return logs, args.Error(1)
}

// noopAuditSvc satisfies AuditSvcFacade for services under test that only
// need audit calls to not blow up.
type noopAuditSvc struct{}

func (noopAuditSvc) LogSuccess(ctx context.Context, action, entityType, entityID, detail, actingUserID string) {
}

func (noopAuditSvc) LogFailure(ctx context.Context, action, entityType, entityID, detail, actingUserID string) {
}

func (noopAuditSvc) ListRecent(ctx context.Context, actingUserID string, limit, offset int) ([]domain.AuditLog, error) {
	return nil, nil
}

var _ portssvc.AuditSvcFacade = noopAuditSvc{}

// stubShopSvc resolves every acting user to one fixed shop. err, when set,
// takes precedence. The last explicit shop ID passed to ResolveActingShop is
// recorded for assertions.
type stubShopSvc struct {
	shop               *domain.Shop
	err                error
	lastExplicitShopID string
}

func (s *stubShopSvc) CreateShop(ctx context.Context, req dto.CreateShopRequest, actingUserID string) (*domain.Shop, error) {
	return s.shop, s.err
}

func (s *stubShopSvc) GetShopByID(ctx context.Context, shopID, actingUserID string) (*domain.Shop, error) {
	return s.shop, s.err
}

func (s *stubShopSvc) ListShopsForUser(ctx context.Context, actingUserID string) ([]domain.Shop, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []domain.Shop{*s.shop}, nil
}

func (s *stubShopSvc) AssignStaff(ctx context.Context, shopID, staffUserID, actingUserID string) (*domain.StaffShopMapping, error) {
	return nil, s.err
}

func (s *stubShopSvc) RevokeStaff(ctx context.Context, shopID, staffUserID, actingUserID string) error {
	return s.err
}

func (s *stubShopSvc) ResolveActingShop(ctx context.Context, actingUserID, explicitShopID string) (*domain.Shop, error) {
	s.lastExplicitShopID = explicitShopID
	if s.err != nil {
		return nil, s.err
	}
	return s.shop, nil
}

var _ portssvc.ShopSvcFacade = (*stubShopSvc)(nil)
