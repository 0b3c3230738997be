package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/visit2sat/banking-ledger/internal/apperrors"
	"github.com/visit2sat/banking-ledger/internal/core/domain"
	"github.com/visit2sat/banking-ledger/internal/dto"
)

// MockAccountService is a mock type for the AccountSvcFacade interface
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) ApplyInterest(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

type AccountHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockAccountService
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	registerValidations()
	suite.mockService = new(MockAccountService)
	suite.router = gin.New()
	rg := suite.router.Group("/api/v1")
	registerAccountRoutes(rg, suite.mockService)
}

func (suite *AccountHandlerTestSuite) performRequest(method, path string, body []byte) *httptest.ResponseRecorder {
	return performJSONRequest(suite.router, method, path, body)
}

func sampleAccount() *domain.Account {
	now := time.Now().UTC()
	return &domain.Account{
		AccountID:           "ACC000001",
		Name:                "Alice",
		Kind:                domain.Savings,
		Balance:             decimal.NewFromFloat(100),
		InterestRate:        decimal.NewFromFloat(0.01),
		CreatedAt:           now,
		LastInterestApplied: &now,
	}
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_Success() {
	body, _ := json.Marshal(gin.H{"name": "Alice", "kind": "Savings", "initialDeposit": "100"})

	suite.mockService.On("CreateAccount", mock.Anything, mock.AnythingOfType("dto.CreateAccountRequest")).
		Return(sampleAccount(), nil).Once()

	w := suite.performRequest(http.MethodPost, "/api/v1/accounts", body)

	suite.Equal(http.StatusCreated, w.Code)
	var res dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
	suite.Equal("ACC000001", res.AccountID)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_UnknownKindRejectedByBinding() {
	body, _ := json.Marshal(gin.H{"name": "Alice", "kind": "Offshore"})

	w := suite.performRequest(http.MethodPost, "/api/v1/accounts", body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "CreateAccount")
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_MissingName() {
	body, _ := json.Marshal(gin.H{"kind": "Savings"})

	w := suite.performRequest(http.MethodPost, "/api/v1/accounts", body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "CreateAccount")
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_ValidationError() {
	body, _ := json.Marshal(gin.H{"name": "Mallory", "kind": "Savings", "initialDeposit": "-5"})

	suite.mockService.On("CreateAccount", mock.Anything, mock.Anything).
		Return(nil, apperrors.ErrValidation).Once()

	w := suite.performRequest(http.MethodPost, "/api/v1/accounts", body)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *AccountHandlerTestSuite) TestGetAccount_Success() {
	suite.mockService.On("GetAccountByID", mock.Anything, "ACC000001").Return(sampleAccount(), nil).Once()

	w := suite.performRequest(http.MethodGet, "/api/v1/accounts/ACC000001", nil)

	suite.Equal(http.StatusOK, w.Code)
	var res dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
	suite.Equal(domain.Savings, res.Kind)
}

func (suite *AccountHandlerTestSuite) TestGetAccount_NotFound() {
	suite.mockService.On("GetAccountByID", mock.Anything, "ACC999999").
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.performRequest(http.MethodGet, "/api/v1/accounts/ACC999999", nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *AccountHandlerTestSuite) TestListAccounts_DefaultPaging() {
	suite.mockService.On("ListAccounts", mock.Anything, 20, 0).
		Return([]domain.Account{*sampleAccount()}, nil).Once()

	w := suite.performRequest(http.MethodGet, "/api/v1/accounts", nil)

	suite.Equal(http.StatusOK, w.Code)
	var res dto.ListAccountsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
	suite.Len(res.Accounts, 1)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestApplyInterest_Success() {
	suite.mockService.On("ApplyInterest", mock.Anything, "ACC000001").Return(sampleAccount(), nil).Once()

	w := suite.performRequest(http.MethodPut, "/api/v1/accounts/ACC000001/interest", nil)

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *AccountHandlerTestSuite) TestApplyInterest_NotFound() {
	suite.mockService.On("ApplyInterest", mock.Anything, "ACC999999").
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.performRequest(http.MethodPut, "/api/v1/accounts/ACC999999/interest", nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func TestAccountHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
