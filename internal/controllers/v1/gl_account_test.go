package v1_test

import (
	"fmt"
	"net/http"

	v1 "github.com/brickledger/backend/internal/controllers/v1"
	"github.com/brickledger/backend/internal/models"
	"github.com/brickledger/backend/internal/test"
	"github.com/google/uuid"
)

func (suite *TestSuiteStandard) TestGLAccountCreateAndGet() {
	orgID := uuid.New()

	recorder := suite.request(http.MethodPost, "/v1/gl-accounts", []v1.GLAccountEditable{
		{OrgID: orgID, Name: "Operating Bank", Type: models.AccountTypeAsset, IsBankAccount: true},
		{OrgID: orgID, Name: "Rent Income", Type: models.AccountTypeIncome},
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var created v1.GLAccountListResponse
	test.DecodeResponse(suite.T(), &recorder, &created)
	suite.Require().Len(created.Data, 2)
	suite.Assert().True(created.Data[0].IsBankAccount)

	recorder = suite.request(http.MethodGet, fmt.Sprintf("/v1/gl-accounts/%s", created.Data[1].ID), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var single v1.GLAccountResponse
	test.DecodeResponse(suite.T(), &recorder, &single)
	suite.Assert().Equal("Rent Income", single.Data.Name)
	suite.Assert().Equal(models.AccountTypeIncome, single.Data.Type)
}

func (suite *TestSuiteStandard) TestGLAccountListFilter() {
	orgID := uuid.New()
	suite.createGLAccount(models.GLAccount{OrgID: orgID, Name: "Operating Bank", IsBankAccount: true})
	suite.createGLAccount(models.GLAccount{OrgID: orgID, Name: "Accounts Receivable"})
	suite.createGLAccount(models.GLAccount{OrgID: uuid.New(), Name: "Other Org Bank", IsBankAccount: true})

	recorder := suite.request(http.MethodGet, fmt.Sprintf("/v1/gl-accounts?org=%s&isBankAccount=true", orgID), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var list v1.GLAccountListResponse
	test.DecodeResponse(suite.T(), &recorder, &list)
	suite.Require().Len(list.Data, 1)
	suite.Assert().Equal("Operating Bank", list.Data[0].Name)
}

func (suite *TestSuiteStandard) TestGLAccountListFuzzyName() {
	orgID := uuid.New()
	suite.createGLAccount(models.GLAccount{OrgID: orgID, Name: "Maple St Operating"})
	suite.createGLAccount(models.GLAccount{OrgID: orgID, Name: "Security Deposits Held"})

	recorder := suite.request(http.MethodGet, "/v1/gl-accounts?name=deposits", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var list v1.GLAccountListResponse
	test.DecodeResponse(suite.T(), &recorder, &list)
	suite.Require().Len(list.Data, 1)
	suite.Assert().Equal("Security Deposits Held", list.Data[0].Name)
}

func (suite *TestSuiteStandard) TestGLAccountPagination() {
	orgID := uuid.New()
	for i := range 3 {
		suite.createGLAccount(models.GLAccount{OrgID: orgID, Name: fmt.Sprintf("Account %d", i)})
	}

	recorder := suite.request(http.MethodGet, "/v1/gl-accounts?limit=2", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var list v1.GLAccountListResponse
	test.DecodeResponse(suite.T(), &recorder, &list)
	suite.Assert().Len(list.Data, 2)
	suite.Require().NotNil(list.Pagination)
	suite.Assert().Equal(int64(3), list.Pagination.Total)
}

func (suite *TestSuiteStandard) TestGLAccountUpdate() {
	account := suite.createGLAccount(models.GLAccount{OrgID: uuid.New(), Name: "Operating Bank"})

	recorder := suite.request(http.MethodPatch, fmt.Sprintf("/v1/gl-accounts/%s", account.ID), map[string]any{
		"isBankAccount": true,
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var updated models.GLAccount
	suite.Require().NoError(suite.db.First(&updated, "id = ?", account.ID).Error)
	suite.Assert().True(updated.IsBankAccount)
	suite.Assert().Equal("Operating Bank", updated.Name)
}

func (suite *TestSuiteStandard) TestGLAccountDelete() {
	account := suite.createGLAccount(models.GLAccount{OrgID: uuid.New(), Name: "Obsolete"})

	recorder := suite.request(http.MethodDelete, fmt.Sprintf("/v1/gl-accounts/%s", account.ID), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	recorder = suite.request(http.MethodGet, fmt.Sprintf("/v1/gl-accounts/%s", account.ID), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestGLAccountNotFound() {
	recorder := suite.request(http.MethodGet, fmt.Sprintf("/v1/gl-accounts/%s", uuid.New()), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)

	recorder = suite.request(http.MethodGet, "/v1/gl-accounts/not-a-uuid", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestGLAccountOptions() {
	account := suite.createGLAccount(models.GLAccount{OrgID: uuid.New(), Name: "Operating Bank"})

	recorder := suite.request(http.MethodOptions, "/v1/gl-accounts", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	recorder = suite.request(http.MethodOptions, fmt.Sprintf("/v1/gl-accounts/%s", account.ID), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
}
