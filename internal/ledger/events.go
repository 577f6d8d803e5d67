package ledger

import (
	"fmt"
	"time"

	"github.com/brickledger/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Posting helpers for the common business events. Each builds a
// balanced two-line transaction and writes it through Post, resolving
// the GL accounts through the organization's account mappings.

// EventInput carries the shared fields of a business event posting.
type EventInput struct {
	OrgID      uuid.UUID
	Date       time.Time
	Amount     decimal.Decimal
	Memo       string
	PropertyID *uuid.UUID
	UnitID     *uuid.UUID
	LeaseID    *uuid.UUID
	VendorID   *uuid.UUID
}

func (in EventInput) validate() error {
	if !in.Amount.IsPositive() {
		return fmt.Errorf("%w: the amount must be positive", ErrValidation)
	}
	return nil
}

// PostRentCharge debits accounts receivable and credits rent income.
func PostRentCharge(db *gorm.DB, in EventInput) (models.Transaction, error) {
	if err := in.validate(); err != nil {
		return models.Transaction{}, err
	}

	receivable, err := ResolveAccount(db, in.OrgID, models.RoleAccountsReceivable)
	if err != nil {
		return models.Transaction{}, err
	}

	income, err := ResolveAccount(db, in.OrgID, models.RoleRentIncome)
	if err != nil {
		return models.Transaction{}, err
	}

	return Post(db, in.header(models.TypeCharge), []LineInput{
		{GLAccountID: receivable.ID, Amount: in.Amount, PostingType: models.Debit, Memo: in.Memo},
		{GLAccountID: income.ID, Amount: in.Amount, PostingType: models.Credit, Memo: in.Memo},
	})
}

// PostTenantPayment debits the operating bank account and credits
// accounts receivable.
func PostTenantPayment(db *gorm.DB, in EventInput) (models.Transaction, error) {
	if err := in.validate(); err != nil {
		return models.Transaction{}, err
	}

	bank, err := ResolveAccount(db, in.OrgID, models.RoleOperatingBank)
	if err != nil {
		return models.Transaction{}, err
	}

	receivable, err := ResolveAccount(db, in.OrgID, models.RoleAccountsReceivable)
	if err != nil {
		return models.Transaction{}, err
	}

	return Post(db, in.header(models.TypePayment), []LineInput{
		{GLAccountID: bank.ID, Amount: in.Amount, PostingType: models.Debit, Memo: in.Memo},
		{GLAccountID: receivable.ID, Amount: in.Amount, PostingType: models.Credit, Memo: in.Memo},
	})
}

// PostSecurityDeposit debits the trust bank account and credits the
// deposit liability.
func PostSecurityDeposit(db *gorm.DB, in EventInput) (models.Transaction, error) {
	if err := in.validate(); err != nil {
		return models.Transaction{}, err
	}

	trust, err := ResolveAccount(db, in.OrgID, models.RoleTrustBank)
	if err != nil {
		return models.Transaction{}, err
	}

	liability, err := ResolveAccount(db, in.OrgID, models.RoleDepositLiability)
	if err != nil {
		return models.Transaction{}, err
	}

	return Post(db, in.header(models.TypeDeposit), []LineInput{
		{GLAccountID: trust.ID, Amount: in.Amount, PostingType: models.Debit, Memo: in.Memo},
		{GLAccountID: liability.ID, Amount: in.Amount, PostingType: models.Credit, Memo: in.Memo},
	})
}

// PostVendorBill debits the given expense account and credits accounts
// payable.
func PostVendorBill(db *gorm.DB, in EventInput, expenseAccountID uuid.UUID) (models.Transaction, error) {
	if err := in.validate(); err != nil {
		return models.Transaction{}, err
	}

	if expenseAccountID == uuid.Nil {
		return models.Transaction{}, fmt.Errorf("%w: an expense account is required for a vendor bill", ErrValidation)
	}

	payable, err := ResolveAccount(db, in.OrgID, models.RoleAccountsPayable)
	if err != nil {
		return models.Transaction{}, err
	}

	return Post(db, in.header(models.TypeBill), []LineInput{
		{GLAccountID: expenseAccountID, Amount: in.Amount, PostingType: models.Debit, Memo: in.Memo},
		{GLAccountID: payable.ID, Amount: in.Amount, PostingType: models.Credit, Memo: in.Memo},
	})
}

// PostOwnerDistribution debits the owner draw equity account and
// credits the operating bank account.
func PostOwnerDistribution(db *gorm.DB, in EventInput) (models.Transaction, error) {
	if err := in.validate(); err != nil {
		return models.Transaction{}, err
	}

	draw, err := ResolveAccount(db, in.OrgID, models.RoleOwnerDraw)
	if err != nil {
		return models.Transaction{}, err
	}

	bank, err := ResolveAccount(db, in.OrgID, models.RoleOperatingBank)
	if err != nil {
		return models.Transaction{}, err
	}

	return Post(db, in.header(models.TypeGeneralJournalEntry), []LineInput{
		{GLAccountID: draw.ID, Amount: in.Amount, PostingType: models.Debit, Memo: in.Memo},
		{GLAccountID: bank.ID, Amount: in.Amount, PostingType: models.Credit, Memo: in.Memo},
	})
}

// Reverse writes a general journal entry that mirrors an existing
// transaction with every posting type flipped.
func Reverse(db *gorm.DB, transactionID uuid.UUID, memo string) (models.Transaction, error) {
	original, err := GetTransaction(db, transactionID)
	if err != nil {
		return models.Transaction{}, err
	}

	if len(original.Lines) == 0 {
		return models.Transaction{}, fmt.Errorf("%w: the transaction has no lines to reverse", ErrValidation)
	}

	if memo == "" {
		memo = fmt.Sprintf("Reversal of %s", original.ID)
	}

	lines := make([]LineInput, 0, len(original.Lines))
	for _, line := range original.Lines {
		flipped := models.Credit
		if line.PostingType == models.Credit {
			flipped = models.Debit
		}

		lines = append(lines, LineInput{
			GLAccountID: line.GLAccountID,
			Amount:      line.Amount,
			PostingType: flipped,
			Memo:        memo,
			PropertyID:  line.PropertyID,
			UnitID:      line.UnitID,
			LeaseID:     line.LeaseID,
		})
	}

	header := models.Transaction{
		OrgID:           original.OrgID,
		Type:            models.TypeGeneralJournalEntry,
		Date:            time.Now().In(time.UTC),
		TotalAmount:     original.TotalAmount,
		Memo:            memo,
		PropertyID:      original.PropertyID,
		UnitID:          original.UnitID,
		LeaseID:         original.LeaseID,
		VendorID:        original.VendorID,
		MonthlyPeriodID: original.MonthlyPeriodID,
		ReversesID:      &original.ID,
	}

	return Post(db, header, lines)
}

func (in EventInput) header(transactionType models.TransactionType) models.Transaction {
	return models.Transaction{
		OrgID:       in.OrgID,
		Type:        transactionType,
		Date:        in.Date,
		TotalAmount: in.Amount,
		Memo:        in.Memo,
		PropertyID:  in.PropertyID,
		UnitID:      in.UnitID,
		LeaseID:     in.LeaseID,
		VendorID:    in.VendorID,
	}
}
