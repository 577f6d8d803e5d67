package v1_test

import (
	"net/http"
	"time"

	v1 "github.com/brickledger/backend/internal/controllers/v1"
	"github.com/brickledger/backend/internal/ledger"
	"github.com/brickledger/backend/internal/models"
	"github.com/brickledger/backend/internal/test"
	"github.com/google/uuid"
)

func (suite *TestSuiteStandard) TestPaymentAutoAllocation() {
	orgID := uuid.New()
	lease := suite.tenantLedger(orgID)

	january := suite.createCharge(models.Charge{
		OrgID: orgID, LeaseID: lease.ID, Amount: money("1450.00"),
		DueDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	february := suite.createCharge(models.Charge{
		OrgID: orgID, LeaseID: lease.ID, Amount: money("1450.00"),
		DueDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	})

	recorder := suite.request(http.MethodPost, "/v1/payments", v1.PaymentEditable{
		OrgID:   orgID,
		LeaseID: lease.ID,
		Amount:  money("2000.00"),
		Memo:    "partial catch-up",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.PaymentResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().NotNil(response.Data)
	suite.Assert().Equal(models.TypePayment, response.Data.Transaction.Type)
	suite.Require().Len(response.Data.Allocation.Allocations, 2)
	suite.Assert().True(response.Data.Allocation.Unapplied.IsZero())

	// Oldest charge is filled first
	var first, second models.Charge
	suite.Require().NoError(suite.db.First(&first, "id = ?", january.ID).Error)
	suite.Require().NoError(suite.db.First(&second, "id = ?", february.ID).Error)
	suite.Assert().Equal(models.ChargePaid, first.Status)
	suite.Assert().Equal(models.ChargePartial, second.Status)
	suite.Assert().True(second.AmountOpen.Equal(money("900.00")))
}

func (suite *TestSuiteStandard) TestPaymentExplicitAllocation() {
	orgID := uuid.New()
	lease := suite.tenantLedger(orgID)

	rent := suite.createCharge(models.Charge{OrgID: orgID, LeaseID: lease.ID, Amount: money("1450.00")})
	fee := suite.createCharge(models.Charge{OrgID: orgID, LeaseID: lease.ID, Amount: money("50.00")})

	recorder := suite.request(http.MethodPost, "/v1/payments", v1.PaymentEditable{
		OrgID:   orgID,
		LeaseID: lease.ID,
		Amount:  money("100.00"),
		Explicit: []ledger.ExplicitAllocation{
			{ChargeID: rent.ID, Amount: money("50.00")},
			{ChargeID: fee.ID, Amount: money("50.00")},
		},
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var updated models.Charge
	suite.Require().NoError(suite.db.First(&updated, "id = ?", fee.ID).Error)
	suite.Assert().Equal(models.ChargePaid, updated.Status)
}

func (suite *TestSuiteStandard) TestPaymentExplicitMismatch() {
	orgID := uuid.New()
	lease := suite.tenantLedger(orgID)
	rent := suite.createCharge(models.Charge{OrgID: orgID, LeaseID: lease.ID, Amount: money("1450.00")})

	recorder := suite.request(http.MethodPost, "/v1/payments", v1.PaymentEditable{
		OrgID:   orgID,
		LeaseID: lease.ID,
		Amount:  money("100.00"),
		Explicit: []ledger.ExplicitAllocation{
			{ChargeID: rent.ID, Amount: money("60.00")},
		},
	})
	// The mismatch is rejected before anything is posted
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusUnprocessableEntity)

	// The payment did not stick around half-posted
	var count int64
	suite.Require().NoError(suite.db.Model(&models.Transaction{}).Count(&count).Error)
	suite.Assert().Zero(count)
}

func (suite *TestSuiteStandard) TestPaymentWithoutMappings() {
	orgID := uuid.New()

	recorder := suite.request(http.MethodPost, "/v1/payments", v1.PaymentEditable{
		OrgID:   orgID,
		LeaseID: uuid.New(),
		Amount:  money("100.00"),
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusUnprocessableEntity)
}

func (suite *TestSuiteStandard) TestPaymentOverpaymentReported() {
	orgID := uuid.New()
	lease := suite.tenantLedger(orgID)
	suite.createCharge(models.Charge{OrgID: orgID, LeaseID: lease.ID, Amount: money("100.00")})

	recorder := suite.request(http.MethodPost, "/v1/payments", v1.PaymentEditable{
		OrgID:   orgID,
		LeaseID: lease.ID,
		Amount:  money("150.00"),
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.PaymentResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().NotNil(response.Data)
	suite.Assert().True(response.Data.Allocation.Unapplied.Equal(money("50.00")))
}
