package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/ledgerly/ledgerly-backend/internal/apperrors"
	"github.com/ledgerly/ledgerly-backend/internal/core/domain"
	portssvc "github.com/ledgerly/ledgerly-backend/internal/core/ports/services"
	"github.com/ledgerly/ledgerly-backend/internal/dto"
	"github.com/ledgerly/ledgerly-backend/internal/handlers"
	"github.com/ledgerly/ledgerly-backend/internal/middleware"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock CustomerService ---
type MockCustomerService struct {
	mock.Mock
}

func (m *MockCustomerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, actingUserID string) (*domain.Customer, error) {
	args := m.Called(ctx, req, actingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerService) GetCustomerByID(ctx context.Context, customerID, actingUserID string) (*domain.Customer, error) {
	args := m.Called(ctx, customerID, actingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerService) ListCustomers(ctx context.Context, actingUserID, shopID string, limit, offset int) ([]domain.Customer, error) {
	args := m.Called(ctx, actingUserID, shopID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Customer), args.Error(1)
}
func (m *MockCustomerService) UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest, actingUserID string) (*domain.Customer, error) {
	args := m.Called(ctx, customerID, req, actingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerService) DeleteCustomer(ctx context.Context, customerID, actingUserID string) error {
	args := m.Called(ctx, customerID, actingUserID)
	return args.Error(0)
}

var _ portssvc.CustomerSvcFacade = (*MockCustomerService)(nil)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) RecordEntry(ctx context.Context, req dto.CreateLedgerEntryRequest, actingUserID string) (*domain.LedgerEntry, decimal.Decimal, error) {
	args := m.Called(ctx, req, actingUserID)
	if args.Get(0) == nil {
		return nil, decimal.Zero, args.Error(2)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Get(1).(decimal.Decimal), args.Error(2)
}
func (m *MockLedgerService) GetEntryByID(ctx context.Context, entryID, actingUserID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entryID, actingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}
func (m *MockLedgerService) ListEntriesForCustomer(ctx context.Context, customerID, actingUserID string, limit, offset int) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, customerID, actingUserID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}
func (m *MockLedgerService) UpdateEntry(ctx context.Context, entryID string, req dto.UpdateLedgerEntryRequest, actingUserID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entryID, req, actingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}
func (m *MockLedgerService) DeleteEntry(ctx context.Context, entryID, actingUserID string) error {
	args := m.Called(ctx, entryID, actingUserID)
	return args.Error(0)
}
func (m *MockLedgerService) GetCustomerBalanceSummary(ctx context.Context, customerID, actingUserID string) (*domain.BalanceSummary, error) {
	args := m.Called(ctx, customerID, actingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceSummary), args.Error(1)
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Test Suite ---
type CustomerHandlerTestSuite struct {
	suite.Suite
	router              *gin.Engine
	mockCustomerService *MockCustomerService
	mockLedgerService   *MockLedgerService
	jwtSecret           string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *CustomerHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "ledgerly-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *CustomerHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockCustomerService = new(MockCustomerService)
	suite.mockLedgerService = new(MockLedgerService)

	v1 := suite.router.Group("/api/v1", middleware.AuthMiddleware(suite.jwtSecret))
	handlers.RegisterCustomerRoutes(v1, suite.mockCustomerService, suite.mockLedgerService)
}

func (suite *CustomerHandlerTestSuite) doRequest(method, url, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, url, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *CustomerHandlerTestSuite) TestCreateCustomer_Success() {
	userID := uuid.NewString()
	expected := &domain.Customer{
		CustomerID:       uuid.NewString(),
		ShopID:           uuid.NewString(),
		Name:             "Sunrise Traders",
		RelationshipType: domain.RelationshipCustomer,
		CreditLimit:      decimal.Zero,
		CurrentBalance:   decimal.Zero,
		IsActive:         true,
	}

	suite.mockCustomerService.On("CreateCustomer",
		mock.Anything,
		mock.MatchedBy(func(req dto.CreateCustomerRequest) bool {
			return req.Name == "Sunrise Traders"
		}),
		userID,
	).Return(expected, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/customers", suite.generateTestToken(userID), gin.H{
		"name": "Sunrise Traders",
	})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.CustomerResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(expected.CustomerID, resp.CustomerID)
	suite.Equal("Sunrise Traders", resp.Name)
	suite.mockCustomerService.AssertExpectations(suite.T())
}

func (suite *CustomerHandlerTestSuite) TestCreateCustomer_MissingNameIsBadRequest() {
	userID := uuid.NewString()

	w := suite.doRequest(http.MethodPost, "/api/v1/customers", suite.generateTestToken(userID), gin.H{
		"email": "noname@example.com",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockCustomerService.AssertNotCalled(suite.T(), "CreateCustomer", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CustomerHandlerTestSuite) TestCreateCustomer_NoTokenIsUnauthorized() {
	w := suite.doRequest(http.MethodPost, "/api/v1/customers", "", gin.H{
		"name": "No Auth",
	})

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockCustomerService.AssertNotCalled(suite.T(), "CreateCustomer", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CustomerHandlerTestSuite) TestGetCustomer_NotFound() {
	userID := uuid.NewString()
	customerID := uuid.NewString()

	suite.mockCustomerService.On("GetCustomerByID", mock.Anything, customerID, userID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/customers/"+customerID, suite.generateTestToken(userID), nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *CustomerHandlerTestSuite) TestListCustomers_DefaultPaging() {
	userID := uuid.NewString()

	suite.mockCustomerService.On("ListCustomers", mock.Anything, userID, "", 20, 0).
		Return([]domain.Customer{}, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/customers", suite.generateTestToken(userID), nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListCustomersResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Empty(resp.Customers)
	suite.mockCustomerService.AssertExpectations(suite.T())
}

func (suite *CustomerHandlerTestSuite) TestListCustomers_ExplicitShopID() {
	userID := uuid.NewString()
	shopID := uuid.NewString()

	suite.mockCustomerService.On("ListCustomers", mock.Anything, userID, shopID, 20, 0).
		Return([]domain.Customer{}, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/customers?shopID="+shopID, suite.generateTestToken(userID), nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockCustomerService.AssertExpectations(suite.T())
}

func (suite *CustomerHandlerTestSuite) TestListCustomerEntries_Success() {
	userID := uuid.NewString()
	customerID := uuid.NewString()
	limit := 10

	entries := []domain.LedgerEntry{
		{
			EntryID:         uuid.NewString(),
			CustomerID:      customerID,
			Amount:          decimal.NewFromInt(100),
			TransactionType: domain.Credit,
			TransactionDate: time.Now(),
			Description:     "credit sale",
			IsActive:        true,
		},
		{
			EntryID:         uuid.NewString(),
			CustomerID:      customerID,
			Amount:          decimal.NewFromInt(40),
			TransactionType: domain.Debit,
			TransactionDate: time.Now().Add(-time.Hour),
			Description:     "part payment",
			IsActive:        true,
		},
	}

	suite.mockLedgerService.On("ListEntriesForCustomer", mock.Anything, customerID, userID, limit, 0).
		Return(entries, nil).Once()

	url := fmt.Sprintf("/api/v1/customers/%s/entries?limit=%d", customerID, limit)
	w := suite.doRequest(http.MethodGet, url, suite.generateTestToken(userID), nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListLedgerEntriesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Entries, 2)
	suite.Equal(entries[0].EntryID, resp.Entries[0].EntryID)
	suite.Equal(entries[1].EntryID, resp.Entries[1].EntryID)
	suite.mockLedgerService.AssertExpectations(suite.T())
	suite.mockCustomerService.AssertNotCalled(suite.T(), "ListCustomers")
}

func (suite *CustomerHandlerTestSuite) TestGetCustomerSummary_Success() {
	userID := uuid.NewString()
	customerID := uuid.NewString()

	summary := &domain.BalanceSummary{
		CustomerID:     customerID,
		CustomerName:   "Sunrise Traders",
		CurrentBalance: decimal.NewFromInt(60),
		TotalCredit:    decimal.NewFromInt(100),
		TotalDebit:     decimal.NewFromInt(40),
		EntryCount:     2,
		CreditLimit:    decimal.NewFromInt(5000),
	}

	suite.mockLedgerService.On("GetCustomerBalanceSummary", mock.Anything, customerID, userID).
		Return(summary, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/customers/"+customerID+"/summary", suite.generateTestToken(userID), nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.BalanceSummaryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("Sunrise Traders", resp.CustomerName)
	suite.True(resp.CurrentBalance.Equal(decimal.NewFromInt(60)))
	suite.Equal(int64(2), resp.EntryCount)
}

func (suite *CustomerHandlerTestSuite) TestDeleteCustomer_NoContent() {
	userID := uuid.NewString()
	customerID := uuid.NewString()

	suite.mockCustomerService.On("DeleteCustomer", mock.Anything, customerID, userID).
		Return(nil).Once()

	w := suite.doRequest(http.MethodDelete, "/api/v1/customers/"+customerID, suite.generateTestToken(userID), nil)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockCustomerService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestCustomerHandler(t *testing.T) {
	suite.Run(t, new(CustomerHandlerTestSuite))
}
