package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/visit2sat/banking-ledger/internal/apperrors"
	"github.com/visit2sat/banking-ledger/internal/core/domain"
	portssvc "github.com/visit2sat/banking-ledger/internal/core/ports/services"
	"github.com/visit2sat/banking-ledger/internal/core/services"
	"github.com/visit2sat/banking-ledger/internal/dto"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	service         portssvc.AccountSvcFacade
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockAccountRepo)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Defaults() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Name:           "Alice",
		Kind:           domain.Savings,
		InitialDeposit: decimal.NewFromFloat(100),
	}

	suite.mockAccountRepo.On("CreateAccount", ctx,
		mock.MatchedBy(func(acc domain.Account) bool {
			return acc.Name == "Alice" &&
				acc.Kind == domain.Savings &&
				acc.Balance.Equal(decimal.NewFromFloat(100)) &&
				acc.InterestRate.Equal(decimal.NewFromFloat(0.01)) &&
				acc.LastInterestApplied != nil &&
				!acc.CreatedAt.IsZero()
		}),
	).Return(&domain.Account{
		AccountID:    "ACC000001",
		Name:         "Alice",
		Kind:         domain.Savings,
		Balance:      decimal.NewFromFloat(100),
		InterestRate: decimal.NewFromFloat(0.01),
		CreatedAt:    time.Now().UTC(),
	}, nil).Once()

	account, err := suite.service.CreateAccount(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.Equal("ACC000001", account.AccountID)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ExplicitRate() {
	ctx := context.Background()
	rate := decimal.NewFromFloat(0.035)
	req := dto.CreateAccountRequest{
		Name:         "Bob",
		Kind:         domain.Current,
		InterestRate: &rate,
	}

	suite.mockAccountRepo.On("CreateAccount", ctx,
		mock.MatchedBy(func(acc domain.Account) bool {
			return acc.InterestRate.Equal(rate) && acc.Balance.IsZero()
		}),
	).Return(&domain.Account{AccountID: "ACC000002", Name: "Bob", Kind: domain.Current, InterestRate: rate}, nil).Once()

	account, err := suite.service.CreateAccount(ctx, req)

	suite.Require().NoError(err)
	suite.Equal("ACC000002", account.AccountID)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_NegativeInitialDeposit() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Name:           "Mallory",
		Kind:           domain.Savings,
		InitialDeposit: decimal.NewFromFloat(-1),
	}

	account, err := suite.service.CreateAccount(ctx, req)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "CreateAccount")
}

func (suite *AccountServiceTestSuite) TestCreateAccount_NegativeInterestRate() {
	ctx := context.Background()
	rate := decimal.NewFromFloat(-0.01)
	req := dto.CreateAccountRequest{
		Name:         "Mallory",
		Kind:         domain.Savings,
		InterestRate: &rate,
	}

	account, err := suite.service.CreateAccount(ctx, req)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_NotFound() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountByID", ctx, "ACC999999").Return(nil, apperrors.ErrNotFound).Once()

	account, err := suite.service.GetAccountByID(ctx, "ACC999999")

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestListAccounts() {
	ctx := context.Background()
	expected := []domain.Account{*testAccount("ACC000001", 10), *testAccount("ACC000002", 20)}

	suite.mockAccountRepo.On("ListAccounts", ctx, 20, 0).Return(expected, nil).Once()

	accounts, err := suite.service.ListAccounts(ctx, 20, 0)

	suite.Require().NoError(err)
	suite.Equal(expected, accounts)
}

func (suite *AccountServiceTestSuite) TestApplyInterest() {
	ctx := context.Background()
	updated := testAccount("ACC000001", 101)

	suite.mockAccountRepo.On("ApplyInterest", ctx, "ACC000001", mock.AnythingOfType("time.Time")).
		Return(updated, nil).Once()

	account, err := suite.service.ApplyInterest(ctx, "ACC000001")

	suite.Require().NoError(err)
	suite.True(account.Balance.Equal(decimal.NewFromFloat(101)))
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestApplyInterest_NotFound() {
	ctx := context.Background()

	suite.mockAccountRepo.On("ApplyInterest", ctx, "ACC999999", mock.AnythingOfType("time.Time")).
		Return(nil, apperrors.ErrNotFound).Once()

	account, err := suite.service.ApplyInterest(ctx, "ACC999999")

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
