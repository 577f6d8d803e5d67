package v1_test

import (
	"fmt"
	"net/http"
	"time"

	v1 "github.com/brickledger/backend/internal/controllers/v1"
	"github.com/brickledger/backend/internal/models"
	"github.com/brickledger/backend/internal/test"
	"github.com/google/uuid"
)

func (suite *TestSuiteStandard) TestLeaseCreateAndFilter() {
	orgID := uuid.New()
	property := suite.createProperty(models.Property{OrgID: orgID})
	unit := suite.createUnit(models.Unit{OrgID: orgID, PropertyID: property.ID})

	recorder := suite.request(http.MethodPost, "/v1/leases", []v1.LeaseEditable{
		{OrgID: orgID, PropertyID: property.ID, UnitID: unit.ID, TenantName: "Avery Johnson", Status: models.LeaseActive, FromDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	suite.createLease(models.Lease{OrgID: orgID, PropertyID: property.ID, UnitID: unit.ID, TenantName: "Prior Tenant", Status: models.LeaseEnded})

	recorder = suite.request(http.MethodGet, fmt.Sprintf("/v1/leases?unit=%s&status=active", unit.ID), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var list v1.LeaseListResponse
	test.DecodeResponse(suite.T(), &recorder, &list)
	suite.Require().Len(list.Data, 1)
	suite.Assert().Equal("Avery Johnson", list.Data[0].TenantName)
}

func (suite *TestSuiteStandard) TestLeaseCharges() {
	orgID := uuid.New()
	property := suite.createProperty(models.Property{OrgID: orgID})
	unit := suite.createUnit(models.Unit{OrgID: orgID, PropertyID: property.ID})
	lease := suite.createLease(models.Lease{OrgID: orgID, PropertyID: property.ID, UnitID: unit.ID})

	suite.createCharge(models.Charge{
		OrgID: orgID, LeaseID: lease.ID, Amount: money("1450.00"),
		DueDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	})
	suite.createCharge(models.Charge{
		OrgID: orgID, LeaseID: lease.ID, Amount: money("1450.00"),
		DueDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	})

	recorder := suite.request(http.MethodGet, fmt.Sprintf("/v1/leases/%s/charges", lease.ID), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var list v1.ChargeListResponse
	test.DecodeResponse(suite.T(), &recorder, &list)
	suite.Require().Len(list.Data, 2)

	// Oldest due date first
	suite.Assert().True(list.Data[0].DueDate.Before(list.Data[1].DueDate))
}

func (suite *TestSuiteStandard) TestChargeCreateStartsOpen() {
	orgID := uuid.New()
	property := suite.createProperty(models.Property{OrgID: orgID})
	unit := suite.createUnit(models.Unit{OrgID: orgID, PropertyID: property.ID})
	lease := suite.createLease(models.Lease{OrgID: orgID, PropertyID: property.ID, UnitID: unit.ID})

	recorder := suite.request(http.MethodPost, "/v1/charges", []v1.ChargeEditable{
		{OrgID: orgID, LeaseID: lease.ID, Type: models.ChargeRent, Amount: money("1450.00"), DueDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)},
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var created v1.ChargeListResponse
	test.DecodeResponse(suite.T(), &recorder, &created)
	suite.Require().Len(created.Data, 1)
	suite.Assert().Equal(models.ChargeOpen, created.Data[0].Status)
	suite.Assert().True(created.Data[0].AmountOpen.Equal(money("1450.00")))
}

func (suite *TestSuiteStandard) TestChargeUpdateCannotTouchOpenAmount() {
	orgID := uuid.New()
	property := suite.createProperty(models.Property{OrgID: orgID})
	unit := suite.createUnit(models.Unit{OrgID: orgID, PropertyID: property.ID})
	lease := suite.createLease(models.Lease{OrgID: orgID, PropertyID: property.ID, UnitID: unit.ID})
	charge := suite.createCharge(models.Charge{OrgID: orgID, LeaseID: lease.ID, Amount: money("1450.00")})

	recorder := suite.request(http.MethodPatch, fmt.Sprintf("/v1/charges/%s", charge.ID), map[string]any{
		"description": "Rent 2026-02",
		"amountOpen":  "0.00",
		"status":      "paid",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var stored models.Charge
	suite.Require().NoError(suite.db.First(&stored, "id = ?", charge.ID).Error)
	suite.Assert().Equal("Rent 2026-02", stored.Description)
	suite.Assert().Equal(models.ChargeOpen, stored.Status)
	suite.Assert().True(stored.AmountOpen.Equal(money("1450.00")))
}

func (suite *TestSuiteStandard) TestAccountMappingPriorityOrder() {
	orgID := uuid.New()
	suite.createMapping(models.AccountMapping{OrgID: orgID, Role: models.RoleOperatingBank, Match: "*Checking*", Priority: 10})
	suite.createMapping(models.AccountMapping{OrgID: orgID, Role: models.RoleOperatingBank, Match: "Maple St*", Priority: 1})

	recorder := suite.request(http.MethodGet, fmt.Sprintf("/v1/account-mappings?org=%s", orgID), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var list v1.AccountMappingListResponse
	test.DecodeResponse(suite.T(), &recorder, &list)
	suite.Require().Len(list.Data, 2)
	suite.Assert().Equal("Maple St*", list.Data[0].Match)
}

func (suite *TestSuiteStandard) TestAccountMappingInvalidRole() {
	recorder := suite.request(http.MethodPost, "/v1/account-mappings", []v1.AccountMappingEditable{
		{OrgID: uuid.New(), Role: "slush_fund", Match: "*"},
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestVendorCreateAndList() {
	orgID := uuid.New()

	recorder := suite.request(http.MethodPost, "/v1/vendors", []v1.VendorEditable{
		{OrgID: orgID, Name: "Springfield Plumbing Co"},
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	recorder = suite.request(http.MethodGet, fmt.Sprintf("/v1/vendors?org=%s", orgID), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var list v1.VendorListResponse
	test.DecodeResponse(suite.T(), &recorder, &list)
	suite.Require().Len(list.Data, 1)
	suite.Assert().Equal("Springfield Plumbing Co", list.Data[0].Name)
}
