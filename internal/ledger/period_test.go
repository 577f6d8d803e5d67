package ledger_test

import (
	"time"

	"github.com/brickledger/backend/internal/ledger"
	"github.com/brickledger/backend/internal/models"
	"github.com/brickledger/backend/internal/types"
	"github.com/google/uuid"
)

type periodFixture struct {
	orgID    uuid.UUID
	property models.Property
	unit     models.Unit
	period   models.MonthlyPeriod

	bank      models.GLAccount
	income    models.GLAccount
	expense   models.GLAccount
	mgmtFee   models.GLAccount
	ownerDraw models.GLAccount
	taxEscrow models.GLAccount
}

func (suite *TestSuiteStandard) periodFixture(month types.Month) periodFixture {
	orgID := uuid.New()
	property := suite.createProperty(models.Property{OrgID: orgID})
	unit := suite.createUnit(models.Unit{OrgID: orgID, PropertyID: property.ID})
	period := suite.createPeriod(models.MonthlyPeriod{OrgID: orgID, PropertyID: property.ID, UnitID: unit.ID, Month: month})

	return periodFixture{
		orgID:    orgID,
		property: property,
		unit:     unit,
		period:   period,

		bank:      suite.createGLAccount(models.GLAccount{OrgID: orgID, Name: "Operating Bank", IsBankAccount: true}),
		income:    suite.createGLAccount(models.GLAccount{OrgID: orgID, Name: "Rent Income", Type: models.AccountTypeIncome}),
		expense:   suite.createGLAccount(models.GLAccount{OrgID: orgID, Name: "Repairs", Type: models.AccountTypeExpense}),
		mgmtFee:   suite.createGLAccount(models.GLAccount{OrgID: orgID, Name: "Management Fee Expense", Type: models.AccountTypeExpense}),
		ownerDraw: suite.createGLAccount(models.GLAccount{OrgID: orgID, Name: "Owner Draw", Type: models.AccountTypeEquity}),
		taxEscrow: suite.createGLAccount(models.GLAccount{OrgID: orgID, Name: "Tax Escrow", Type: models.AccountTypeLiability}),
	}
}

// post writes a balanced two-line transaction tagged to the period.
func (suite *TestSuiteStandard) post(f periodFixture, transactionType models.TransactionType, amount string, debit, credit models.GLAccount) models.Transaction {
	transaction, err := ledger.Post(suite.db,
		models.Transaction{
			OrgID:           f.orgID,
			Type:            transactionType,
			TotalAmount:     money(amount),
			PropertyID:      &f.property.ID,
			UnitID:          &f.unit.ID,
			MonthlyPeriodID: &f.period.ID,
			Date:            f.period.Month.FirstDay().AddDate(0, 0, 9),
		},
		[]ledger.LineInput{
			{GLAccountID: debit.ID, Amount: money(amount), PostingType: models.Debit},
			{GLAccountID: credit.ID, Amount: money(amount), PostingType: models.Credit},
		})
	suite.Require().NoError(err)
	return transaction
}

func (suite *TestSuiteStandard) TestSummarizeTotals() {
	f := suite.periodFixture(types.NewMonth(2026, 2))

	suite.post(f, models.TypeCharge, "1450", f.expense, f.income) // grouping is by header type
	suite.post(f, models.TypePayment, "1450", f.bank, f.income)
	suite.post(f, models.TypeBill, "200", f.expense, f.bank)
	suite.post(f, models.TypeCredit, "25", f.income, f.bank)

	summary, err := ledger.Summarize(suite.db, f.period.ID)
	suite.Require().NoError(err)

	suite.Assert().True(money("1450").Equal(summary.TotalCharges), "charges are %s", summary.TotalCharges)
	suite.Assert().True(money("1450").Equal(summary.TotalPayments))
	suite.Assert().True(money("200").Equal(summary.TotalBills))
	suite.Assert().True(money("25").Equal(summary.TotalCredits))

	// previous + payments - bills = 0 + 1450 - 200
	suite.Assert().True(money("1250").Equal(summary.NetToOwner), "net to owner is %s", summary.NetToOwner)
}

func (suite *TestSuiteStandard) TestSummarizeManagementFeeBillExcluded() {
	f := suite.periodFixture(types.NewMonth(2026, 2))

	suite.post(f, models.TypePayment, "1450", f.bank, f.income)
	suite.post(f, models.TypeBill, "145", f.mgmtFee, f.bank)

	summary, err := ledger.Summarize(suite.db, f.period.ID)
	suite.Require().NoError(err)

	// The management fee bill does not count as an owner-facing bill,
	// but its fee line is picked up
	suite.Assert().True(summary.TotalBills.IsZero(), "bills are %s", summary.TotalBills)
	suite.Assert().True(money("145").Equal(summary.ManagementFees), "management fees are %s", summary.ManagementFees)

	// 1450 - 145
	suite.Assert().True(money("1305").Equal(summary.NetToOwner), "net to owner is %s", summary.NetToOwner)
}

func (suite *TestSuiteStandard) TestSummarizeEscrowSign() {
	f := suite.periodFixture(types.NewMonth(2026, 2))

	suite.post(f, models.TypePayment, "1450", f.bank, f.income)
	// Funding escrow: credit the escrow account
	suite.post(f, models.TypeDeposit, "300", f.bank, f.taxEscrow)

	summary, err := ledger.Summarize(suite.db, f.period.ID)
	suite.Require().NoError(err)

	suite.Assert().True(money("300").Equal(summary.EscrowAmount), "escrow amount is %s", summary.EscrowAmount)

	// Releasing escrow: debit the escrow account
	suite.post(f, models.TypeGeneralJournalEntry, "100", f.taxEscrow, f.bank)

	summary, err = ledger.Summarize(suite.db, f.period.ID)
	suite.Require().NoError(err)
	suite.Assert().True(money("200").Equal(summary.EscrowAmount), "escrow amount is %s", summary.EscrowAmount)
}

func (suite *TestSuiteStandard) TestSummarizeOwnerDraw() {
	f := suite.periodFixture(types.NewMonth(2026, 2))

	suite.post(f, models.TypePayment, "2000", f.bank, f.income)
	suite.post(f, models.TypeGeneralJournalEntry, "500", f.ownerDraw, f.bank)

	// An owner draw line inside a tax escrow transaction is a
	// counter-posting, not a draw
	suite.post(f, models.TypeGeneralJournalEntry, "300", f.ownerDraw, f.taxEscrow)

	summary, err := ledger.Summarize(suite.db, f.period.ID)
	suite.Require().NoError(err)

	suite.Assert().True(money("500").Equal(summary.OwnerDraw), "owner draw is %s", summary.OwnerDraw)
}

func (suite *TestSuiteStandard) TestSummarizeOwnerDrawDepositExcluded() {
	f := suite.periodFixture(types.NewMonth(2026, 2))

	held := suite.createGLAccount(models.GLAccount{
		OrgID: f.orgID, Name: "Security Deposits Held",
		Type: models.AccountTypeLiability, IsSecurityDepositLiability: true,
	})

	// A draw account releasing a security deposit is a counter-posting,
	// the same as one inside a tax escrow transaction
	suite.post(f, models.TypeGeneralJournalEntry, "300", f.ownerDraw, held)

	summary, err := ledger.Summarize(suite.db, f.period.ID)
	suite.Require().NoError(err)

	suite.Assert().True(summary.OwnerDraw.IsZero(), "owner draw is %s", summary.OwnerDraw)
}

func (suite *TestSuiteStandard) TestSummarizeFallbackColumns() {
	f := suite.periodFixture(types.NewMonth(2026, 2))

	// No escrow or fee lines exist; the persisted columns are used
	suite.Require().NoError(suite.db.Model(&models.MonthlyPeriod{}).
		Where("id = ?", f.period.ID).
		Updates(map[string]any{"escrow_amount": money("75"), "management_fees": money("120")}).Error)

	suite.post(f, models.TypePayment, "1000", f.bank, f.income)

	summary, err := ledger.Summarize(suite.db, f.period.ID)
	suite.Require().NoError(err)

	suite.Assert().True(money("75").Equal(summary.EscrowAmount))
	suite.Assert().True(money("120").Equal(summary.ManagementFees))
	// 1000 - 75 - 120
	suite.Assert().True(money("805").Equal(summary.NetToOwner), "net to owner is %s", summary.NetToOwner)
}

func (suite *TestSuiteStandard) TestPreviousBalanceCarryForward() {
	f := suite.periodFixture(types.NewMonth(2026, 1))

	// January: 1450 charged, 1000 paid
	suite.post(f, models.TypeCharge, "1450", f.expense, f.income)
	suite.post(f, models.TypePayment, "1000", f.bank, f.income)
	suite.Require().NoError(ledger.Refresh(suite.db, f.period.ID))

	february := suite.createPeriod(models.MonthlyPeriod{
		OrgID: f.orgID, PropertyID: f.property.ID, UnitID: f.unit.ID, Month: types.NewMonth(2026, 2),
	})

	g := f
	g.period = february
	suite.post(g, models.TypePayment, "1900", f.bank, f.income)

	summary, err := ledger.Summarize(suite.db, february.ID)
	suite.Require().NoError(err)

	suite.Assert().True(money("450").Equal(summary.PreviousBalance), "previous balance is %s", summary.PreviousBalance)
	// 450 + 1900
	suite.Assert().True(money("2350").Equal(summary.NetToOwner), "net to owner is %s", summary.NetToOwner)
}

func (suite *TestSuiteStandard) TestPreviousBalanceZeroWithoutPriorPeriod() {
	f := suite.periodFixture(types.NewMonth(2026, 2))

	summary, err := ledger.Summarize(suite.db, f.period.ID)
	suite.Require().NoError(err)
	suite.Assert().True(summary.PreviousBalance.IsZero())
}

func (suite *TestSuiteStandard) TestRefreshPersists() {
	f := suite.periodFixture(types.NewMonth(2026, 2))

	suite.post(f, models.TypePayment, "1450", f.bank, f.income)
	suite.Require().NoError(ledger.Refresh(suite.db, f.period.ID))

	var period models.MonthlyPeriod
	suite.Require().NoError(suite.db.First(&period, "id = ?", f.period.ID).Error)
	suite.Assert().True(money("1450").Equal(period.TotalPayments))
	suite.Assert().True(money("1450").Equal(period.NetToOwner))
}

func (suite *TestSuiteStandard) TestReconcile() {
	f := suite.periodFixture(types.NewMonth(2026, 2))
	lease := suite.createLease(models.Lease{OrgID: f.orgID, PropertyID: f.property.ID, UnitID: f.unit.ID})

	// An old charge still has 450 open when February starts
	suite.createCharge(models.Charge{
		OrgID: f.orgID, LeaseID: lease.ID, Amount: money("1450"),
		DueDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	suite.Require().NoError(suite.db.Model(&models.Charge{}).
		Where("lease_id = ?", lease.ID).
		Updates(map[string]any{"amount_open": money("450"), "status": models.ChargePartial}).Error)

	// A charge due inside February does not count
	suite.createCharge(models.Charge{
		OrgID: f.orgID, LeaseID: lease.ID, Amount: money("1450"),
		DueDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	})

	suite.Require().NoError(ledger.Reconcile(suite.db, f.period.ID))

	var period models.MonthlyPeriod
	suite.Require().NoError(suite.db.First(&period, "id = ?", f.period.ID).Error)
	suite.Assert().True(money("450").Equal(period.PreviousBalance), "previous balance is %s", period.PreviousBalance)
}
