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

// escrowSetup creates a unit whose property has a deposit trust account
// and an escrow liability mapping.
func (suite *TestSuiteStandard) escrowSetup(orgID uuid.UUID) models.Unit {
	trust := suite.createGLAccount(models.GLAccount{OrgID: orgID, Name: "Trust Bank", IsBankAccount: true})
	suite.createGLAccount(models.GLAccount{
		OrgID: orgID, Name: "Security Deposits Held",
		Type: models.AccountTypeLiability, IsSecurityDepositLiability: true,
	})
	suite.createMapping(models.AccountMapping{OrgID: orgID, Role: models.RoleEscrow, Match: "*Deposits Held*"})

	property := suite.createProperty(models.Property{OrgID: orgID, DepositTrustAccountID: &trust.ID})
	return suite.createUnit(models.Unit{OrgID: orgID, PropertyID: property.ID})
}

func (suite *TestSuiteStandard) TestEscrowPost() {
	orgID := uuid.New()
	unit := suite.escrowSetup(orgID)

	recorder := suite.request(http.MethodPost, "/v1/escrow", ledger.EscrowInput{
		OrgID:  orgID,
		UnitID: unit.ID,
		Kind:   ledger.EscrowDeposit,
		Amount: money("500.00"),
		Date:   time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC),
		Memo:   "security deposit",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.TransactionResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().NotNil(response.Data)
	suite.Assert().Len(response.Data.Lines, 2)
	suite.Assert().Equal(models.TypeDeposit, response.Data.Type)
}

func (suite *TestSuiteStandard) TestEscrowPostInvalidKind() {
	orgID := uuid.New()
	unit := suite.escrowSetup(orgID)

	recorder := suite.request(http.MethodPost, "/v1/escrow", ledger.EscrowInput{
		OrgID:  orgID,
		UnitID: unit.ID,
		Kind:   "transfer",
		Amount: money("500.00"),
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestEscrowPostUnknownUnit() {
	recorder := suite.request(http.MethodPost, "/v1/escrow", ledger.EscrowInput{
		OrgID:  uuid.New(),
		UnitID: uuid.New(),
		Kind:   ledger.EscrowDeposit,
		Amount: money("500.00"),
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestUnitEscrowBalance() {
	orgID := uuid.New()
	unit := suite.escrowSetup(orgID)

	for _, amount := range []string{"500.00", "250.00"} {
		_, err := ledger.PostEscrow(suite.db, ledger.EscrowInput{
			OrgID: orgID, UnitID: unit.ID, Kind: ledger.EscrowDeposit,
			Amount: money(amount), Date: time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
		})
		suite.Require().NoError(err)
	}

	_, err := ledger.PostEscrow(suite.db, ledger.EscrowInput{
		OrgID: orgID, UnitID: unit.ID, Kind: ledger.EscrowWithdrawal,
		Amount: money("100.00"), Date: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
	})
	suite.Require().NoError(err)

	recorder := suite.request(http.MethodGet, fmt.Sprintf("/v1/units/%s/escrow-balance", unit.ID), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.EscrowBalanceResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().NotNil(response.Data)
	suite.Assert().True(response.Data.Balance.Equal(money("650.00")))

	// As of the end of February the withdrawal has not happened yet
	recorder = suite.request(http.MethodGet, fmt.Sprintf("/v1/units/%s/escrow-balance?asOf=2026-02-28", unit.ID), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().True(response.Data.Balance.Equal(money("750.00")))
}

func (suite *TestSuiteStandard) TestUnitEscrowMovements() {
	orgID := uuid.New()
	unit := suite.escrowSetup(orgID)

	_, err := ledger.PostEscrow(suite.db, ledger.EscrowInput{
		OrgID: orgID, UnitID: unit.ID, Kind: ledger.EscrowDeposit,
		Amount: money("500.00"), Date: time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), Memo: "move-in deposit",
	})
	suite.Require().NoError(err)

	_, err = ledger.PostEscrow(suite.db, ledger.EscrowInput{
		OrgID: orgID, UnitID: unit.ID, Kind: ledger.EscrowWithdrawal,
		Amount: money("100.00"), Date: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), Memo: "carpet repair",
	})
	suite.Require().NoError(err)

	recorder := suite.request(http.MethodGet, fmt.Sprintf("/v1/units/%s/escrow-movements", unit.ID), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.EscrowMovementListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().Len(response.Data, 2)
	suite.Assert().Equal("move-in deposit", response.Data[0].Memo)

	recorder = suite.request(http.MethodGet, fmt.Sprintf("/v1/units/%s/escrow-movements?fromDate=2026-03-01", unit.ID), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().Len(response.Data, 1)
	suite.Assert().Equal(ledger.EscrowWithdrawal, response.Data[0].Kind)
}

func (suite *TestSuiteStandard) TestUnitEscrowBalanceBadDate() {
	orgID := uuid.New()
	unit := suite.escrowSetup(orgID)

	recorder := suite.request(http.MethodGet, fmt.Sprintf("/v1/units/%s/escrow-balance?asOf=February", unit.ID), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}
