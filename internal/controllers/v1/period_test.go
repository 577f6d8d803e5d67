package v1_test

import (
	"fmt"
	"net/http"
	"time"

	v1 "github.com/brickledger/backend/internal/controllers/v1"
	"github.com/brickledger/backend/internal/ledger"
	"github.com/brickledger/backend/internal/models"
	"github.com/brickledger/backend/internal/test"
	"github.com/brickledger/backend/internal/types"
	"github.com/google/uuid"
)

func (suite *TestSuiteStandard) createPeriod(period models.MonthlyPeriod) models.MonthlyPeriod {
	if period.Month.IsZero() {
		period.Month = types.NewMonth(2026, 2)
	}
	suite.Require().NoError(suite.db.Create(&period).Error)
	return period
}

func (suite *TestSuiteStandard) TestPeriodCreateAndList() {
	orgID := uuid.New()
	property := suite.createProperty(models.Property{OrgID: orgID})
	unit := suite.createUnit(models.Unit{OrgID: orgID, PropertyID: property.ID})

	recorder := suite.request(http.MethodPost, "/v1/periods", []v1.PeriodEditable{
		{OrgID: orgID, PropertyID: property.ID, UnitID: unit.ID, Month: types.NewMonth(2026, 2)},
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var created v1.PeriodListResponse
	test.DecodeResponse(suite.T(), &recorder, &created)
	suite.Require().Len(created.Data, 1)
	suite.Assert().Equal(models.StageOpen, created.Data[0].Stage)

	recorder = suite.request(http.MethodGet, fmt.Sprintf("/v1/periods?unit=%s&month=2026-02", unit.ID), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var list v1.PeriodListResponse
	test.DecodeResponse(suite.T(), &recorder, &list)
	suite.Assert().Len(list.Data, 1)
}

func (suite *TestSuiteStandard) TestPeriodDuplicateMonthRejected() {
	orgID := uuid.New()
	property := suite.createProperty(models.Property{OrgID: orgID})
	unit := suite.createUnit(models.Unit{OrgID: orgID, PropertyID: property.ID})
	suite.createPeriod(models.MonthlyPeriod{OrgID: orgID, PropertyID: property.ID, UnitID: unit.ID})

	recorder := suite.request(http.MethodPost, "/v1/periods", []v1.PeriodEditable{
		{OrgID: orgID, PropertyID: property.ID, UnitID: unit.ID, Month: types.NewMonth(2026, 2)},
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestPeriodSummaryAndRefresh() {
	orgID := uuid.New()
	lease := suite.tenantLedger(orgID)

	var unit models.Unit
	suite.Require().NoError(suite.db.First(&unit, "id = ?", lease.UnitID).Error)

	period := suite.createPeriod(models.MonthlyPeriod{
		OrgID: orgID, PropertyID: lease.PropertyID, UnitID: unit.ID, Month: types.NewMonth(2026, 2),
	})

	// One payment tagged to the period
	payment, err := ledger.PostTenantPayment(suite.db, ledger.EventInput{
		OrgID:   orgID,
		Date:    time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
		Amount:  money("1450.00"),
		UnitID:  &unit.ID,
		LeaseID: &lease.ID,
	})
	suite.Require().NoError(err)
	suite.Require().NoError(suite.db.Model(&models.Transaction{}).
		Where("id = ?", payment.ID).
		Update("monthly_period_id", period.ID).Error)

	recorder := suite.request(http.MethodGet, fmt.Sprintf("/v1/periods/%s/summary", period.ID), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var summary v1.PeriodSummaryResponse
	test.DecodeResponse(suite.T(), &recorder, &summary)
	suite.Require().NotNil(summary.Data)
	suite.Assert().True(summary.Data.TotalPayments.Equal(money("1450.00")))

	// The summary endpoint does not persist
	var stored models.MonthlyPeriod
	suite.Require().NoError(suite.db.First(&stored, "id = ?", period.ID).Error)
	suite.Assert().True(stored.TotalPayments.IsZero())

	recorder = suite.request(http.MethodPost, fmt.Sprintf("/v1/periods/%s/refresh", period.ID), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	suite.Require().NoError(suite.db.First(&stored, "id = ?", period.ID).Error)
	suite.Assert().True(stored.TotalPayments.Equal(money("1450.00")))
	suite.Assert().True(stored.NetToOwner.Equal(money("1450.00")))
}

func (suite *TestSuiteStandard) TestPeriodReconcile() {
	orgID := uuid.New()
	lease := suite.tenantLedger(orgID)

	var unit models.Unit
	suite.Require().NoError(suite.db.First(&unit, "id = ?", lease.UnitID).Error)

	period := suite.createPeriod(models.MonthlyPeriod{
		OrgID: orgID, PropertyID: lease.PropertyID, UnitID: unit.ID, Month: types.NewMonth(2026, 2),
	})

	// A January charge that is still half open when February starts
	charge := suite.createCharge(models.Charge{
		OrgID: orgID, LeaseID: lease.ID, Amount: money("900.00"),
		DueDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	suite.Require().NoError(suite.db.Model(&models.Charge{}).
		Where("id = ?", charge.ID).
		Updates(map[string]any{"amount_open": money("450.00"), "status": models.ChargePartial}).Error)

	recorder := suite.request(http.MethodPost, fmt.Sprintf("/v1/periods/%s/reconcile", period.ID), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.PeriodResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().NotNil(response.Data)
	suite.Assert().True(response.Data.PreviousBalance.Equal(money("450.00")))
}

func (suite *TestSuiteStandard) TestPeriodUpdateStage() {
	orgID := uuid.New()
	property := suite.createProperty(models.Property{OrgID: orgID})
	unit := suite.createUnit(models.Unit{OrgID: orgID, PropertyID: property.ID})
	period := suite.createPeriod(models.MonthlyPeriod{OrgID: orgID, PropertyID: property.ID, UnitID: unit.ID})

	recorder := suite.request(http.MethodPatch, fmt.Sprintf("/v1/periods/%s", period.ID), map[string]string{
		"stage": "review",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var stored models.MonthlyPeriod
	suite.Require().NoError(suite.db.First(&stored, "id = ?", period.ID).Error)
	suite.Assert().Equal(models.StageReview, stored.Stage)
}
