package ledger_test

import (
	"github.com/brickledger/backend/internal/ledger"
	"github.com/brickledger/backend/internal/models"
	"github.com/google/uuid"
)

func (suite *TestSuiteStandard) TestResolveAccount() {
	orgID := uuid.New()
	operating := suite.createGLAccount(models.GLAccount{OrgID: orgID, Name: "1010 Operating Checking", IsBankAccount: true})
	suite.createGLAccount(models.GLAccount{OrgID: orgID, Name: "4000 Rent Income", Type: models.AccountTypeIncome})

	suite.createMapping(models.AccountMapping{OrgID: orgID, Role: models.RoleOperatingBank, Match: "*Operating*"})

	account, err := ledger.ResolveAccount(suite.db, orgID, models.RoleOperatingBank)
	suite.Require().NoError(err)
	suite.Assert().Equal(operating.ID, account.ID)
}

func (suite *TestSuiteStandard) TestResolveAccountPriority() {
	orgID := uuid.New()
	suite.createGLAccount(models.GLAccount{OrgID: orgID, Name: "General Checking", IsBankAccount: true})
	specific := suite.createGLAccount(models.GLAccount{OrgID: orgID, Name: "Maple St Checking", IsBankAccount: true})

	suite.createMapping(models.AccountMapping{OrgID: orgID, Role: models.RoleOperatingBank, Match: "Maple St*", Priority: 1})
	suite.createMapping(models.AccountMapping{OrgID: orgID, Role: models.RoleOperatingBank, Match: "*Checking*", Priority: 10})

	account, err := ledger.ResolveAccount(suite.db, orgID, models.RoleOperatingBank)
	suite.Require().NoError(err)
	suite.Assert().Equal(specific.ID, account.ID)
}

func (suite *TestSuiteStandard) TestResolveAccountScopedToOrg() {
	orgID := uuid.New()
	otherOrg := uuid.New()

	suite.createGLAccount(models.GLAccount{OrgID: otherOrg, Name: "Operating Checking", IsBankAccount: true})
	suite.createMapping(models.AccountMapping{OrgID: orgID, Role: models.RoleOperatingBank, Match: "*Checking*"})

	// The pattern matches an account of another organization only
	_, err := ledger.ResolveAccount(suite.db, orgID, models.RoleOperatingBank)
	suite.Assert().ErrorIs(err, ledger.ErrConfiguration)
}

func (suite *TestSuiteStandard) TestResolveAccountNoMapping() {
	orgID := uuid.New()
	suite.createGLAccount(models.GLAccount{OrgID: orgID, Name: "Operating Checking", IsBankAccount: true})

	_, err := ledger.ResolveAccount(suite.db, orgID, models.RoleOwnerDraw)
	suite.Assert().ErrorIs(err, ledger.ErrConfiguration)
}
