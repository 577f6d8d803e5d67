package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/brickledger/backend/internal/models"
	"github.com/brickledger/backend/internal/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// EscrowKind is the direction of an escrow posting.
type EscrowKind string

const (
	EscrowDeposit    EscrowKind = "deposit"
	EscrowWithdrawal EscrowKind = "withdrawal"
)

// EscrowInput describes a movement of escrowed funds for a unit.
type EscrowInput struct {
	OrgID  uuid.UUID       `json:"orgId"`
	UnitID uuid.UUID       `json:"unitId"`
	Kind   EscrowKind      `json:"kind"`
	Amount decimal.Decimal `json:"amount"`
	Date   time.Time       `json:"date"`
	Memo   string          `json:"memo"`
}

// EscrowBalance is the escrow position of a unit.
type EscrowBalance struct {
	Deposits    decimal.Decimal `json:"deposits"`
	Withdrawals decimal.Decimal `json:"withdrawals"`
	Balance     decimal.Decimal `json:"balance"`

	// HasValidGLAccounts is false when the property has no operating
	// and trust accounts configured. Escrow data for such properties
	// is incomplete by definition.
	HasValidGLAccounts bool `json:"hasValidGlAccounts"`
}

// EscrowMovement is one escrow posting in a movement listing.
type EscrowMovement struct {
	TransactionID uuid.UUID       `json:"transactionId"`
	Date          time.Time       `json:"date"`
	Kind          EscrowKind      `json:"kind"`
	Amount        decimal.Decimal `json:"amount"`
	Memo          string          `json:"memo"`
}

// PostEscrow writes a balanced two-line escrow movement: a deposit
// debits the trust bank account and credits the escrow liability, a
// withdrawal is the mirror image.
//
// When a monthly period exists for the unit and month, the posting is
// tagged to it and its summary is refreshed asynchronously.
func PostEscrow(db *gorm.DB, in EscrowInput) (models.Transaction, error) {
	if !in.Amount.IsPositive() {
		return models.Transaction{}, fmt.Errorf("%w: the amount must be positive", ErrValidation)
	}

	if in.Kind != EscrowDeposit && in.Kind != EscrowWithdrawal {
		return models.Transaction{}, fmt.Errorf("%w: the kind must be %q or %q", ErrValidation, EscrowDeposit, EscrowWithdrawal)
	}

	unit, err := getUnit(db, in.UnitID)
	if err != nil {
		return models.Transaction{}, err
	}

	property, err := getProperty(db, unit.PropertyID)
	if err != nil {
		return models.Transaction{}, err
	}

	bankAccountID, err := escrowBankAccount(db, property, in.OrgID)
	if err != nil {
		return models.Transaction{}, err
	}

	escrowAccount, err := ResolveAccount(db, in.OrgID, models.RoleEscrow)
	if err != nil {
		return models.Transaction{}, err
	}

	if in.Date.IsZero() {
		in.Date = time.Now().In(time.UTC)
	}

	// A withdrawal moves money out and must not carry a cash-receipt
	// type, or the rollup payment fallback and the period payment total
	// would count it as money coming in
	headerType := models.TypeDeposit
	if in.Kind == EscrowWithdrawal {
		headerType = models.TypeGeneralJournalEntry
	}

	header := models.Transaction{
		OrgID:       in.OrgID,
		Type:        headerType,
		Date:        in.Date,
		TotalAmount: in.Amount,
		Memo:        in.Memo,
		PropertyID:  &property.ID,
		UnitID:      &unit.ID,
	}

	// Tag the posting to the unit's period for the month, if one exists
	var period models.MonthlyPeriod
	err = db.
		Where("monthly_periods.unit_id = ?", unit.ID).
		Where("monthly_periods.month = ?", types.MonthOf(in.Date)).
		First(&period).Error
	if err == nil {
		header.MonthlyPeriodID = &period.ID
	}

	bankPosting, escrowPosting := models.Debit, models.Credit
	if in.Kind == EscrowWithdrawal {
		bankPosting, escrowPosting = models.Credit, models.Debit
	}

	transaction, err := Post(db, header, []LineInput{
		{GLAccountID: bankAccountID, Amount: in.Amount, PostingType: bankPosting, Memo: in.Memo},
		{GLAccountID: escrowAccount.ID, Amount: in.Amount, PostingType: escrowPosting, Memo: in.Memo},
	})
	if err != nil {
		return models.Transaction{}, err
	}

	if header.MonthlyPeriodID != nil {
		periodID := *header.MonthlyPeriodID
		go func() {
			if err := Refresh(db, periodID); err != nil {
				log.Error().Err(err).Str("period", periodID.String()).Msg("escrow-triggered period refresh failed")
			}
		}()
	}

	return transaction, nil
}

// BalanceForUnit computes the escrow position of a unit as of a point
// in time.
func BalanceForUnit(db *gorm.DB, unitID uuid.UUID, asOf time.Time) (EscrowBalance, error) {
	unit, err := getUnit(db, unitID)
	if err != nil {
		return EscrowBalance{}, err
	}

	property, err := getProperty(db, unit.PropertyID)
	if err != nil {
		return EscrowBalance{}, err
	}

	lines, err := escrowLines(db, unitID, time.Time{}, asOf)
	if err != nil {
		return EscrowBalance{}, err
	}

	balance := EscrowBalance{
		HasValidGLAccounts: property.OperatingBankAccountID != nil && property.DepositTrustAccountID != nil,
	}

	for _, line := range lines {
		if line.PostingType == models.Credit {
			balance.Deposits = balance.Deposits.Add(line.Amount)
		} else {
			balance.Withdrawals = balance.Withdrawals.Add(line.Amount)
		}
	}

	balance.Balance = balance.Deposits.Sub(balance.Withdrawals)
	return balance, nil
}

// MovementsForUnit lists the escrow postings of a unit in a date range.
// A zero from or until leaves that side of the range open.
func MovementsForUnit(db *gorm.DB, unitID uuid.UUID, from, until time.Time) ([]EscrowMovement, error) {
	if _, err := getUnit(db, unitID); err != nil {
		return nil, err
	}

	lines, err := escrowLines(db, unitID, from, until)
	if err != nil {
		return nil, err
	}

	movements := make([]EscrowMovement, 0, len(lines))
	for _, line := range lines {
		kind := EscrowDeposit
		if line.PostingType == models.Debit {
			kind = EscrowWithdrawal
		}

		movements = append(movements, EscrowMovement{
			TransactionID: line.TransactionID,
			Date:          line.Date,
			Kind:          kind,
			Amount:        line.Amount,
			Memo:          line.Memo,
		})
	}

	return movements, nil
}

// escrowLines loads the unit's lines on escrow accounts. Classification
// happens in code, so the account filter does too.
func escrowLines(db *gorm.DB, unitID uuid.UUID, from, until time.Time) ([]models.TransactionLine, error) {
	q := db.
		Preload("GLAccount").
		Where("transaction_lines.unit_id = ?", unitID).
		Order("datetime(transaction_lines.date) ASC, datetime(transaction_lines.created_at) ASC")

	if !from.IsZero() {
		q = q.Where("transaction_lines.date >= date(?)", from)
	}
	if !until.IsZero() {
		q = q.Where("transaction_lines.date < date(?)", until.AddDate(0, 0, 1))
	}

	var lines []models.TransactionLine
	if err := q.Find(&lines).Error; err != nil {
		return nil, err
	}

	escrow := lines[:0]
	for _, line := range lines {
		if Classify(line.GLAccount) == CategorySecurityDeposit ||
			strings.Contains(normalizeSubType(line.GLAccount.Name), "taxescrow") {
			escrow = append(escrow, line)
		}
	}

	return escrow, nil
}

// escrowBankAccount picks the bank side of an escrow posting: the
// property's trust account, then its operating account, then the
// organization's trust bank mapping.
func escrowBankAccount(db *gorm.DB, property models.Property, orgID uuid.UUID) (uuid.UUID, error) {
	if property.DepositTrustAccountID != nil {
		return *property.DepositTrustAccountID, nil
	}

	if property.OperatingBankAccountID != nil {
		return *property.OperatingBankAccountID, nil
	}

	account, err := ResolveAccount(db, orgID, models.RoleTrustBank)
	if err != nil {
		return uuid.Nil, err
	}

	return account.ID, nil
}
