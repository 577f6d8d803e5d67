package models_test

import (
	"time"

	"github.com/brickledger/backend/internal/models"
	"github.com/brickledger/backend/internal/types"
	"github.com/google/uuid"
)

func (suite *TestSuiteStandard) TestConnectInvalidDSN() {
	_, err := models.Connect("/proc/this/does/not/exist/db.sqlite")
	suite.Assert().NotNil(err)
}

func (suite *TestSuiteStandard) TestNotFoundRewritten() {
	var account models.GLAccount
	err := suite.db.First(&account, "id = ?", uuid.NewString()).Error

	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
	suite.Assert().Contains(err.Error(), "gl account")
}

func (suite *TestSuiteStandard) TestAccountNameUniquePerOrg() {
	orgID := uuid.New()
	first := models.GLAccount{OrgID: orgID, Name: "Operating Bank", Type: models.AccountTypeAsset}
	suite.Require().NoError(suite.db.Create(&first).Error)

	duplicate := models.GLAccount{OrgID: orgID, Name: "Operating Bank", Type: models.AccountTypeAsset}
	err := suite.db.Create(&duplicate).Error
	suite.Assert().ErrorIs(err, models.ErrAccountNameNotUnique)

	// The same name in another organization is fine
	other := models.GLAccount{OrgID: uuid.New(), Name: "Operating Bank", Type: models.AccountTypeAsset}
	suite.Assert().NoError(suite.db.Create(&other).Error)
}

func (suite *TestSuiteStandard) TestPeriodUniquePerUnitAndMonth() {
	orgID := uuid.New()
	property := models.Property{OrgID: orgID, Name: "Maple Street 12"}
	suite.Require().NoError(suite.db.Create(&property).Error)

	unit := models.Unit{OrgID: orgID, PropertyID: property.ID, Name: "Apt 1"}
	suite.Require().NoError(suite.db.Create(&unit).Error)

	period := models.MonthlyPeriod{OrgID: orgID, PropertyID: property.ID, UnitID: unit.ID, Month: types.NewMonth(2026, 2)}
	suite.Require().NoError(suite.db.Create(&period).Error)

	duplicate := models.MonthlyPeriod{OrgID: orgID, PropertyID: property.ID, UnitID: unit.ID, Month: types.NewMonth(2026, 2)}
	err := suite.db.Create(&duplicate).Error
	suite.Assert().ErrorIs(err, models.ErrPeriodMonthNotUnique)
}

func (suite *TestSuiteStandard) TestGeneralErrorOnClosedDB() {
	suite.DisconnectDB()

	err := suite.db.Create(&models.Vendor{OrgID: uuid.New(), Name: "Springfield Plumbing Co"}).Error
	suite.Assert().ErrorIs(err, models.ErrGeneral)
}

func (suite *TestSuiteStandard) TestTimestampsUTC() {
	vendor := models.Vendor{OrgID: uuid.New(), Name: "Springfield Plumbing Co"}
	suite.Require().NoError(suite.db.Create(&vendor).Error)

	var read models.Vendor
	suite.Require().NoError(suite.db.First(&read, "id = ?", vendor.ID).Error)
	suite.Assert().Equal(time.UTC, read.CreatedAt.Location())
	suite.Assert().Equal(time.UTC, read.UpdatedAt.Location())
}
