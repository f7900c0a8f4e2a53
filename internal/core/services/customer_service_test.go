package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/ledgerly/ledgerly-backend/internal/apperrors"
	"github.com/ledgerly/ledgerly-backend/internal/core/domain"
	portssvc "github.com/ledgerly/ledgerly-backend/internal/core/ports/services"
	"github.com/ledgerly/ledgerly-backend/internal/core/services"
	"github.com/ledgerly/ledgerly-backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type CustomerServiceTestSuite struct {
	suite.Suite
	mockCustomerRepo *MockCustomerRepository
	shopResolver     *stubShopSvc
	shop             *domain.Shop
	actingUserID     string
	service          portssvc.CustomerSvcFacade
}

func (suite *CustomerServiceTestSuite) SetupTest() {
	suite.mockCustomerRepo = new(MockCustomerRepository)
	suite.actingUserID = uuid.NewString()
	suite.shop = &domain.Shop{
		ShopID:      uuid.NewString(),
		OwnerUserID: suite.actingUserID,
		IsActive:    true,
	}
	suite.shopResolver = &stubShopSvc{shop: suite.shop}
	suite.service = services.NewCustomerService(
		suite.mockCustomerRepo,
		suite.shopResolver,
		noopAuditSvc{},
	)
}

func (suite *CustomerServiceTestSuite) existingCustomer() *domain.Customer {
	return &domain.Customer{
		CustomerID:       uuid.NewString(),
		ShopID:           suite.shop.ShopID,
		Name:             "Ravi Stores",
		Email:            "ravi@example.com",
		RelationshipType: domain.RelationshipCustomer,
		CreditLimit:      decimal.Zero,
		CurrentBalance:   decimal.Zero,
		IsActive:         true,
	}
}

func (suite *CustomerServiceTestSuite) TestCreateCustomer_Success() {
	ctx := context.Background()

	suite.mockCustomerRepo.On("ExistsByEmailAndShop", ctx, "new@example.com", suite.shop.ShopID).Return(false, nil).Once()
	suite.mockCustomerRepo.On("SaveCustomer", ctx, mock.MatchedBy(func(c domain.Customer) bool {
		return c.ShopID == suite.shop.ShopID &&
			c.Name == "New Customer" &&
			c.RelationshipType == domain.RelationshipCustomer &&
			c.CurrentBalance.IsZero() &&
			c.IsActive &&
			c.CreatedBy == suite.actingUserID
	})).Return(nil).Once()

	customer, err := suite.service.CreateCustomer(ctx, dto.CreateCustomerRequest{
		Name:  "New Customer",
		Email: "new@example.com",
	}, suite.actingUserID)

	suite.Require().NoError(err)
	suite.Equal(suite.shop.ShopID, customer.ShopID)
	suite.NotEmpty(customer.CustomerID)
	suite.mockCustomerRepo.AssertExpectations(suite.T())
}

func (suite *CustomerServiceTestSuite) TestCreateCustomer_NoShopAssignmentForbidden() {
	ctx := context.Background()
	service := services.NewCustomerService(
		suite.mockCustomerRepo,
		&stubShopSvc{err: apperrors.ErrForbidden},
		noopAuditSvc{},
	)

	_, err := service.CreateCustomer(ctx, dto.CreateCustomerRequest{
		Name: "Orphan Customer",
	}, suite.actingUserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockCustomerRepo.AssertNotCalled(suite.T(), "SaveCustomer", mock.Anything, mock.Anything)
}

func (suite *CustomerServiceTestSuite) TestCreateCustomer_DuplicateEmailInShop() {
	ctx := context.Background()

	suite.mockCustomerRepo.On("ExistsByEmailAndShop", ctx, "taken@example.com", suite.shop.ShopID).Return(true, nil).Once()

	_, err := suite.service.CreateCustomer(ctx, dto.CreateCustomerRequest{
		Name:  "Dup Customer",
		Email: "taken@example.com",
	}, suite.actingUserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockCustomerRepo.AssertNotCalled(suite.T(), "SaveCustomer", mock.Anything, mock.Anything)
}

func (suite *CustomerServiceTestSuite) TestCreateCustomer_UnknownRelationshipType() {
	ctx := context.Background()

	_, err := suite.service.CreateCustomer(ctx, dto.CreateCustomerRequest{
		Name:             "Odd One",
		RelationshipType: "FRIEND",
	}, suite.actingUserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CustomerServiceTestSuite) TestCreateCustomer_NegativeCreditLimit() {
	ctx := context.Background()
	limit := decimal.NewFromInt(-500)

	_, err := suite.service.CreateCustomer(ctx, dto.CreateCustomerRequest{
		Name:        "Bad Limit",
		CreditLimit: &limit,
	}, suite.actingUserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockCustomerRepo.AssertNotCalled(suite.T(), "SaveCustomer", mock.Anything, mock.Anything)
}

func (suite *CustomerServiceTestSuite) TestGetCustomerByID_OutsideShopIsNotFound() {
	ctx := context.Background()
	customer := suite.existingCustomer()
	customer.ShopID = uuid.NewString() // belongs to another shop

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, customer.CustomerID).Return(customer, nil).Once()

	_, err := suite.service.GetCustomerByID(ctx, customer.CustomerID, suite.actingUserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *CustomerServiceTestSuite) TestListCustomers_EmptyShopReturnsEmptySlice() {
	ctx := context.Background()

	suite.mockCustomerRepo.On("ListCustomersByShop", ctx, suite.shop.ShopID, 20, 0).Return(nil, nil).Once()

	customers, err := suite.service.ListCustomers(ctx, suite.actingUserID, "", 20, 0)

	suite.Require().NoError(err)
	suite.NotNil(customers)
	suite.Empty(customers)
}

func (suite *CustomerServiceTestSuite) TestListCustomers_ExplicitShopIDForwarded() {
	ctx := context.Background()

	suite.mockCustomerRepo.On("ListCustomersByShop", ctx, suite.shop.ShopID, 20, 0).Return(nil, nil).Once()

	_, err := suite.service.ListCustomers(ctx, suite.actingUserID, suite.shop.ShopID, 20, 0)

	suite.Require().NoError(err)
	// Multi-shop owners pick the shop through this argument.
	suite.Equal(suite.shop.ShopID, suite.shopResolver.lastExplicitShopID)
}

func (suite *CustomerServiceTestSuite) TestGetCustomerByID_ShopResolutionFailurePropagates() {
	// Forbidden reads as not found; infrastructure failures keep their identity.
	ctx := context.Background()
	customer := suite.existingCustomer()
	connErr := errors.New("acquire connection: pool closed")
	suite.shopResolver.err = connErr

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, customer.CustomerID).Return(customer, nil).Once()

	_, err := suite.service.GetCustomerByID(ctx, customer.CustomerID, suite.actingUserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, connErr)
	suite.NotErrorIs(err, apperrors.ErrNotFound)
}

func (suite *CustomerServiceTestSuite) TestUpdateCustomer_ChangesProvidedFieldsOnly() {
	ctx := context.Background()
	customer := suite.existingCustomer()
	newName := "Ravi & Sons"
	newNotes := "renamed after expansion"

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, customer.CustomerID).Return(customer, nil).Once()
	suite.mockCustomerRepo.On("UpdateCustomer", ctx, mock.MatchedBy(func(c domain.Customer) bool {
		return c.CustomerID == customer.CustomerID &&
			c.Name == newName &&
			c.Notes == newNotes &&
			c.Email == "ravi@example.com" && // untouched
			c.LastUpdatedBy == suite.actingUserID
	})).Return(nil).Once()

	updated, err := suite.service.UpdateCustomer(ctx, customer.CustomerID, dto.UpdateCustomerRequest{
		Name:  &newName,
		Notes: &newNotes,
	}, suite.actingUserID)

	suite.Require().NoError(err)
	suite.Equal(newName, updated.Name)
	suite.mockCustomerRepo.AssertExpectations(suite.T())
}

func (suite *CustomerServiceTestSuite) TestUpdateCustomer_EmailMustStayUnique() {
	ctx := context.Background()
	customer := suite.existingCustomer()
	newEmail := "other@example.com"

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, customer.CustomerID).Return(customer, nil).Once()
	suite.mockCustomerRepo.On("ExistsByEmailAndShop", ctx, newEmail, suite.shop.ShopID).Return(true, nil).Once()

	_, err := suite.service.UpdateCustomer(ctx, customer.CustomerID, dto.UpdateCustomerRequest{
		Email: &newEmail,
	}, suite.actingUserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockCustomerRepo.AssertNotCalled(suite.T(), "UpdateCustomer", mock.Anything, mock.Anything)
}

func (suite *CustomerServiceTestSuite) TestDeleteCustomer_SoftDeletes() {
	ctx := context.Background()
	customer := suite.existingCustomer()

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, customer.CustomerID).Return(customer, nil).Once()
	suite.mockCustomerRepo.On("MarkCustomerDeleted", ctx, customer.CustomerID, suite.actingUserID).Return(nil).Once()

	err := suite.service.DeleteCustomer(ctx, customer.CustomerID, suite.actingUserID)

	suite.Require().NoError(err)
	suite.mockCustomerRepo.AssertExpectations(suite.T())
}

func TestCustomerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CustomerServiceTestSuite))
}
