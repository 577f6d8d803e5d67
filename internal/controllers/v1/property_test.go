package v1_test

import (
	"fmt"
	"net/http"
	"time"

	v1 "github.com/brickledger/backend/internal/controllers/v1"
	"github.com/brickledger/backend/internal/ledger"
	"github.com/brickledger/backend/internal/models"
	"github.com/brickledger/backend/internal/test"
	"github.com/google/uuid"
)

func (suite *TestSuiteStandard) TestPropertyCreateAndGet() {
	orgID := uuid.New()
	bank := suite.createGLAccount(models.GLAccount{OrgID: orgID, Name: "Operating Bank", IsBankAccount: true})

	recorder := suite.request(http.MethodPost, "/v1/properties", []v1.PropertyEditable{
		{OrgID: orgID, Name: "Maple St 12", Reserve: money("500.00"), OperatingBankAccountID: &bank.ID},
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var created v1.PropertyListResponse
	test.DecodeResponse(suite.T(), &recorder, &created)
	suite.Require().Len(created.Data, 1)
	suite.Assert().True(created.Data[0].Reserve.Equal(money("500.00")))

	recorder = suite.request(http.MethodGet, fmt.Sprintf("/v1/properties/%s", created.Data[0].ID), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
}

func (suite *TestSuiteStandard) TestPropertyRollup() {
	orgID := uuid.New()
	bank := suite.createGLAccount(models.GLAccount{OrgID: orgID, Name: "Operating Bank", IsBankAccount: true})
	income := suite.createGLAccount(models.GLAccount{OrgID: orgID, Name: "Rent Income", Type: models.AccountTypeIncome})

	property := suite.createProperty(models.Property{
		OrgID: orgID, Reserve: money("200.00"), OperatingBankAccountID: &bank.ID,
	})

	_, err := ledger.Post(suite.db, models.Transaction{
		OrgID:      orgID,
		Type:       models.TypePayment,
		Date:       time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
		PropertyID: &property.ID,
	}, []ledger.LineInput{
		{GLAccountID: bank.ID, Amount: money("1450.00"), PostingType: models.Debit},
		{GLAccountID: income.ID, Amount: money("1450.00"), PostingType: models.Credit},
	})
	suite.Require().NoError(err)

	recorder := suite.request(http.MethodGet, fmt.Sprintf("/v1/properties/%s/rollup?asOf=2026-02-28", property.ID), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.RollupResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().NotNil(response.Data)
	suite.Assert().True(response.Data.CashBalance.Equal(money("1450.00")))
	suite.Assert().True(response.Data.Reserve.Equal(money("200.00")))
	suite.Assert().True(response.Data.AvailableBalance.Equal(money("1250.00")))
}

func (suite *TestSuiteStandard) TestPropertyRollupBadDate() {
	property := suite.createProperty(models.Property{OrgID: uuid.New()})

	recorder := suite.request(http.MethodGet, fmt.Sprintf("/v1/properties/%s/rollup?asOf=soon", property.ID), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestPropertyRollupNotFound() {
	recorder := suite.request(http.MethodGet, fmt.Sprintf("/v1/properties/%s/rollup", uuid.New()), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestPropertyUpdate() {
	property := suite.createProperty(models.Property{OrgID: uuid.New(), Name: "Maple St 12"})

	recorder := suite.request(http.MethodPatch, fmt.Sprintf("/v1/properties/%s", property.ID), map[string]string{
		"name": "Maple Street 12",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var stored models.Property
	suite.Require().NoError(suite.db.First(&stored, "id = ?", property.ID).Error)
	suite.Assert().Equal("Maple Street 12", stored.Name)
}
