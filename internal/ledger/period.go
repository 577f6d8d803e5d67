package ledger

import (
	"errors"
	"strings"

	"github.com/brickledger/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ownerDrawKeywords match GL account names that represent money taken
// out by the owner. Comparison happens on normalized names.
var ownerDrawKeywords = []string{
	"ownerdraw",
	"ownersdraw",
	"ownerdistribution",
	"distributiontoowner",
	"ownerpayout",
}

// PeriodSummary is the recomputed financial summary of a monthly
// period. All totals except EscrowAmount and the balances are absolute
// amounts.
type PeriodSummary struct {
	TotalCharges    decimal.Decimal `json:"totalCharges"`
	TotalCredits    decimal.Decimal `json:"totalCredits"`
	TotalPayments   decimal.Decimal `json:"totalPayments"`
	TotalBills      decimal.Decimal `json:"totalBills"`
	EscrowAmount    decimal.Decimal `json:"escrowAmount"`
	ManagementFees  decimal.Decimal `json:"managementFees"`
	OwnerDraw       decimal.Decimal `json:"ownerDraw"`
	PreviousBalance decimal.Decimal `json:"previousBalance"`
	NetToOwner      decimal.Decimal `json:"netToOwner"`
}

// Summarize recomputes the summary of a monthly period from the
// transactions tagged to it. The persisted escrow and management fee
// columns only serve as fallback when no matching lines exist.
func Summarize(db *gorm.DB, periodID uuid.UUID) (PeriodSummary, error) {
	period, err := getPeriod(db, periodID)
	if err != nil {
		return PeriodSummary{}, err
	}

	transactions, err := PeriodTransactions(db, periodID)
	if err != nil {
		return PeriodSummary{}, err
	}

	var summary PeriodSummary
	escrowLinesSeen := false
	feeLinesSeen := false

	for _, transaction := range transactions {
		amount := transaction.TotalAmount.Abs()

		switch transaction.Type {
		case models.TypeCharge:
			summary.TotalCharges = summary.TotalCharges.Add(amount)
		case models.TypeCredit:
			summary.TotalCredits = summary.TotalCredits.Add(amount)
		case models.TypePayment, models.TypeDeposit:
			summary.TotalPayments = summary.TotalPayments.Add(amount)
		case models.TypeBill:
			// Bills that only move management fees or property tax are
			// internal and do not reduce what the owner receives as a bill
			if !billExcluded(transaction) {
				summary.TotalBills = summary.TotalBills.Add(amount)
			}
		}

		touchesEscrow := transactionTouchesEscrow(transaction)

		for _, line := range transaction.Lines {
			if isEscrowLine(line, period.UnitID) {
				escrowLinesSeen = true
				summary.EscrowAmount = summary.EscrowAmount.Add(escrowSigned(line))
			}

			if isManagementFeeLine(line) {
				feeLinesSeen = true
				summary.ManagementFees = summary.ManagementFees.Add(line.Amount.Abs())
			}

			// Owner draw lines inside escrow transactions are the tax
			// escrow counter-postings, not actual draws
			if !touchesEscrow && isOwnerDrawLine(line) {
				summary.OwnerDraw = summary.OwnerDraw.Add(line.Amount.Abs())
			}
		}
	}

	if !escrowLinesSeen {
		summary.EscrowAmount = period.EscrowAmount
	}

	if !feeLinesSeen {
		summary.ManagementFees = period.ManagementFees
	}

	summary.PreviousBalance, err = previousBalance(db, period)
	if err != nil {
		return PeriodSummary{}, err
	}

	summary.NetToOwner = summary.PreviousBalance.
		Add(summary.TotalPayments).
		Sub(summary.TotalBills).
		Sub(summary.EscrowAmount).
		Sub(summary.ManagementFees).
		Sub(summary.OwnerDraw)

	return summary, nil
}

// Refresh recomputes the summary of a period and persists the
// denormalized columns.
func Refresh(db *gorm.DB, periodID uuid.UUID) error {
	summary, err := Summarize(db, periodID)
	if err != nil {
		return err
	}

	return persistSummary(db, periodID, summary)
}

func persistSummary(db *gorm.DB, periodID uuid.UUID, summary PeriodSummary) error {
	return db.Model(&models.MonthlyPeriod{}).
		Where("id = ?", periodID).
		Updates(map[string]any{
			"total_charges":    summary.TotalCharges,
			"total_credits":    summary.TotalCredits,
			"total_payments":   summary.TotalPayments,
			"total_bills":      summary.TotalBills,
			"escrow_amount":    summary.EscrowAmount,
			"management_fees":  summary.ManagementFees,
			"owner_draw":       summary.OwnerDraw,
			"previous_balance": summary.PreviousBalance,
			"net_to_owner":     summary.NetToOwner,
		}).Error
}

// Reconcile recomputes the carry-forward balance of a period from the
// charges that were still outstanding when the period started and
// persists the corrected summary. It runs in-process through the same
// engine as every other summary computation.
func Reconcile(db *gorm.DB, periodID uuid.UUID) error {
	period, err := getPeriod(db, periodID)
	if err != nil {
		return err
	}

	leaseIDs := db.Model(&models.Lease{}).Select("id").Where("unit_id = ?", period.UnitID)

	var charges []models.Charge
	err = db.
		Where("charges.lease_id IN (?)", leaseIDs).
		Where("charges.status IN (?)", []models.ChargeStatus{models.ChargeOpen, models.ChargePartial}).
		Where("charges.due_date < ?", period.Month.FirstDay()).
		Find(&charges).Error
	if err != nil {
		return err
	}

	balance := decimal.Zero
	for _, charge := range charges {
		balance = balance.Add(charge.AmountOpen)
	}

	summary, err := Summarize(db, periodID)
	if err != nil {
		return err
	}

	// The reconciled balance replaces the prior-period carry-forward
	summary.NetToOwner = summary.NetToOwner.Sub(summary.PreviousBalance).Add(balance)
	summary.PreviousBalance = balance

	return persistSummary(db, periodID, summary)
}

// previousBalance carries the balance of the prior month's period
// forward: what was charged but not paid. The first period of a unit
// starts at zero.
func previousBalance(db *gorm.DB, period models.MonthlyPeriod) (decimal.Decimal, error) {
	var prior models.MonthlyPeriod
	err := db.
		Where("monthly_periods.unit_id = ?", period.UnitID).
		Where("monthly_periods.month = ?", period.Month.AddDate(0, -1)).
		First(&prior).Error
	if err != nil {
		if errors.Is(err, models.ErrResourceNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}

	return prior.TotalCharges.Sub(prior.TotalPayments), nil
}

// isEscrowLine reports whether a line moves escrowed funds of the
// period's unit. Lines without a unit scope count, lines scoped to
// another unit do not.
func isEscrowLine(line models.TransactionLine, unitID uuid.UUID) bool {
	if line.UnitID != nil && *line.UnitID != unitID {
		return false
	}

	if Classify(line.GLAccount) == CategorySecurityDeposit {
		return true
	}

	return strings.Contains(normalizeSubType(line.GLAccount.Name), "taxescrow")
}

// escrowSigned signs an escrow line so that a credit increases the
// escrowed amount and a debit releases it.
func escrowSigned(line models.TransactionLine) decimal.Decimal {
	if line.PostingType == models.Credit {
		return line.Amount
	}
	return line.Amount.Neg()
}

func isManagementFeeLine(line models.TransactionLine) bool {
	name := normalizeSubType(line.GLAccount.Name)
	return strings.Contains(name, "managementfee") || strings.Contains(name, "mgmtfee")
}

func isPropertyTaxLine(line models.TransactionLine) bool {
	return strings.Contains(normalizeSubType(line.GLAccount.Name), "propertytax")
}

// isOwnerDrawLine matches draw accounts by name keyword, with equity
// accounts mentioning the owner as safety net for unusual charts of
// accounts.
func isOwnerDrawLine(line models.TransactionLine) bool {
	name := normalizeSubType(line.GLAccount.Name)

	for _, keyword := range ownerDrawKeywords {
		if strings.Contains(name, keyword) {
			return true
		}
	}

	return line.GLAccount.Type == models.AccountTypeEquity && strings.Contains(name, "owner")
}

// billExcluded reports whether a bill is an internal money movement:
// management fees and property tax postings are not owner-facing bills.
func billExcluded(transaction models.Transaction) bool {
	for _, line := range transaction.Lines {
		if isManagementFeeLine(line) || isPropertyTaxLine(line) {
			return true
		}
	}
	return false
}

// transactionTouchesEscrow reports whether any line of the transaction
// posts against a tax escrow or security deposit account. Owner draw
// lines in such transactions are counter-postings of escrowed money,
// not actual draws.
func transactionTouchesEscrow(transaction models.Transaction) bool {
	for _, line := range transaction.Lines {
		if Classify(line.GLAccount) == CategorySecurityDeposit {
			return true
		}

		if strings.Contains(normalizeSubType(line.GLAccount.Name), "taxescrow") {
			return true
		}
	}
	return false
}
