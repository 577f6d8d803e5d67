package ledger

import (
	"time"

	"github.com/brickledger/backend/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// bankInsufficiencyFactor judges whether the bank lines of a property
// can be trusted. When the absolute bank total is smaller than a tenth
// of the payment total, the line data is considered incomplete and the
// rollup falls back to payment headers.
var bankInsufficiencyFactor = decimal.NewFromInt(10)

// RollupOptions controls the non-default behaviours of the rollup.
type RollupOptions struct {
	// RestrictPrepayments applies the Payment/Deposit parent-type filter
	// to prepaid liability lines, the same filter security deposit lines
	// always get. Off by default: historical data contains prepayment
	// journal entries whose balances must keep counting.
	RestrictPrepayments bool

	// IncludePrepayments adds the normalized prepayment balance to the
	// available balance.
	IncludePrepayments bool
}

// RollupTotals are the intermediate sums of a rollup, kept for
// diagnosis.
type RollupTotals struct {
	Bank             decimal.Decimal `json:"bank"`
	SecurityDeposits decimal.Decimal `json:"securityDeposits"`
	Prepayments      decimal.Decimal `json:"prepayments"`
	Payments         decimal.Decimal `json:"payments"`
	ARFallback       decimal.Decimal `json:"arFallback"`
}

// RollupDebug reports which tier produced the cash balance.
type RollupDebug struct {
	Totals              RollupTotals `json:"totals"`
	BankLineCount       int          `json:"bankLineCount"`
	IncompleteBankLines bool         `json:"incompleteBankLines"`
	UsedBankBalance     bool         `json:"usedBankBalance"`
	UsedPaymentFallback bool         `json:"usedPaymentFallback"`
	UsedARFallback      bool         `json:"usedArFallback"`
}

// Rollup is the financial position of a property at a point in time.
//
// SecurityDeposits and Prepayments are liabilities and therefore
// reported as non-positive numbers: money held that is owed back.
type Rollup struct {
	CashBalance      decimal.Decimal `json:"cashBalance"`
	SecurityDeposits decimal.Decimal `json:"securityDeposits"`
	Prepayments      decimal.Decimal `json:"prepayments"`
	Reserve          decimal.Decimal `json:"reserve"`
	AvailableBalance decimal.Decimal `json:"availableBalance"`
	AsOf             time.Time       `json:"asOf"`
	Debug            RollupDebug     `json:"debug"`
}

// RollupInput is everything Compute needs. Lines must have their
// GLAccount populated; Transactions are the headers the lines belong
// to, used for the parent-type filter and the payment fallback.
type RollupInput struct {
	Lines        []models.TransactionLine
	Transactions []models.Transaction
	Reserve      decimal.Decimal
	AsOf         time.Time
	Options      RollupOptions
}

// Compute calculates the rollup from the input. It is a pure function:
// no database access, no caching, same input gives same output.
func Compute(input RollupInput) Rollup {
	txTypes := make(map[uuid.UUID]models.TransactionType, len(input.Transactions))
	for _, transaction := range input.Transactions {
		txTypes[transaction.ID] = transaction.Type
	}

	var totals RollupTotals
	bankLineCount := 0

	for _, line := range input.Lines {
		if line.GLAccount.ExcludeFromCashBalances {
			continue
		}

		if line.GLAccount.IsBankAccount && line.GLAccount.IsSecurityDepositLiability {
			log.Warn().
				Str("glAccount", line.GLAccount.ID.String()).
				Msg("GL account is flagged as both bank account and security deposit liability, treating as bank account")
		}

		switch Classify(line.GLAccount) {
		case CategoryBank:
			totals.Bank = totals.Bank.Add(assetSigned(line))
			bankLineCount++

		case CategorySecurityDeposit:
			// Only cash receipts move the held deposit balance. Charges
			// and journal entries against deposit accounts do not.
			if parent, ok := txTypes[line.TransactionID]; ok && parent.IsCashReceipt() {
				totals.SecurityDeposits = totals.SecurityDeposits.Add(liabilitySigned(line))
			}

		case CategoryPrepaid:
			if input.Options.RestrictPrepayments {
				parent, ok := txTypes[line.TransactionID]
				if !ok || !parent.IsCashReceipt() {
					continue
				}
			}
			totals.Prepayments = totals.Prepayments.Add(liabilitySigned(line))

		case CategoryReceivable:
			totals.ARFallback = totals.ARFallback.Add(assetSigned(line))
		}
	}

	for _, transaction := range input.Transactions {
		if transaction.Type.IsCashReceipt() {
			totals.Payments = totals.Payments.Add(transaction.TotalAmount.Abs())
		}
	}

	// Bank lines exist but sum to a fraction of the received payments:
	// the line data is incomplete, do not trust it.
	incomplete := bankLineCount > 0 &&
		totals.Payments.IsPositive() &&
		totals.Bank.Abs().LessThan(totals.Payments.Abs().Div(bankInsufficiencyFactor))

	rollup := Rollup{
		SecurityDeposits: normalizeLiability(totals.SecurityDeposits),
		Prepayments:      normalizeLiability(totals.Prepayments),
		Reserve:          input.Reserve,
		AsOf:             input.AsOf,
		Debug: RollupDebug{
			Totals:              totals,
			BankLineCount:       bankLineCount,
			IncompleteBankLines: incomplete,
		},
	}

	switch {
	case bankLineCount > 0 && !incomplete:
		rollup.CashBalance = totals.Bank
		rollup.Debug.UsedBankBalance = true

	case !totals.Payments.IsZero():
		rollup.CashBalance = totals.Payments
		rollup.Debug.UsedPaymentFallback = true
	}

	// The AR tier is diagnostic only. It never becomes the cash
	// balance, a receivable is money not yet received.

	rollup.AvailableBalance = rollup.CashBalance.
		Add(rollup.SecurityDeposits).
		Sub(rollup.Reserve)

	if input.Options.IncludePrepayments {
		rollup.AvailableBalance = rollup.AvailableBalance.Add(rollup.Prepayments)
	}

	return rollup
}

// ForProperty loads the scoped ledger data of a property and computes
// its rollup as of the given time.
func ForProperty(db *gorm.DB, propertyID uuid.UUID, asOf time.Time, options RollupOptions) (Rollup, error) {
	property, err := getProperty(db, propertyID)
	if err != nil {
		return Rollup{}, err
	}

	lines, err := PropertyLines(db, propertyID, asOf)
	if err != nil {
		return Rollup{}, err
	}

	transactions, err := PropertyTransactions(db, propertyID, asOf)
	if err != nil {
		return Rollup{}, err
	}

	return Compute(RollupInput{
		Lines:        lines,
		Transactions: transactions,
		Reserve:      property.Reserve,
		AsOf:         asOf,
		Options:      options,
	}), nil
}

// assetSigned returns the line amount signed for debit-normal accounts:
// debits increase the balance, credits decrease it.
func assetSigned(line models.TransactionLine) decimal.Decimal {
	if line.PostingType == models.Debit {
		return line.Amount
	}
	return line.Amount.Neg()
}

// liabilitySigned returns the line amount signed for credit-normal
// accounts: credits increase the balance, debits decrease it.
func liabilitySigned(line models.TransactionLine) decimal.Decimal {
	if line.PostingType == models.Credit {
		return line.Amount
	}
	return line.Amount.Neg()
}

// normalizeLiability reports a held balance as the non-positive number
// it is from the owner's point of view: money owed back.
func normalizeLiability(v decimal.Decimal) decimal.Decimal {
	if v.IsPositive() {
		return v.Neg()
	}
	return v
}
