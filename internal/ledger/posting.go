package ledger

import (
	"fmt"
	"time"

	"github.com/brickledger/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LineInput is one leg of a posting.
type LineInput struct {
	GLAccountID uuid.UUID          `json:"glAccountId"`
	Amount      decimal.Decimal    `json:"amount"`
	PostingType models.PostingType `json:"postingType"`
	Memo        string             `json:"memo"`
	PropertyID  *uuid.UUID         `json:"propertyId"`
	UnitID      *uuid.UUID         `json:"unitId"`
	LeaseID     *uuid.UUID         `json:"leaseId"`
}

// Post writes a balanced transaction with its lines in one database
// transaction. This is the only way ledger entries are created: either
// the header and every line are written, or nothing is.
func Post(db *gorm.DB, header models.Transaction, lines []LineInput) (models.Transaction, error) {
	if len(lines) == 0 {
		return models.Transaction{}, fmt.Errorf("%w: a transaction needs at least one line", ErrValidation)
	}

	debits := decimal.Zero
	credits := decimal.Zero

	for i, line := range lines {
		if line.GLAccountID == uuid.Nil {
			return models.Transaction{}, fmt.Errorf("%w: line %d has no GL account", ErrValidation, i+1)
		}

		if !line.Amount.IsPositive() {
			return models.Transaction{}, fmt.Errorf("%w: line %d has a non-positive amount", ErrValidation, i+1)
		}

		postingType, err := models.ParsePostingType(string(line.PostingType))
		if err != nil {
			return models.Transaction{}, fmt.Errorf("%w: line %d: %s", ErrValidation, i+1, err)
		}

		if postingType == models.Debit {
			debits = debits.Add(line.Amount)
		} else {
			credits = credits.Add(line.Amount)
		}
	}

	if !debits.Equal(credits) {
		return models.Transaction{}, fmt.Errorf("%w: debits %s, credits %s", ErrUnbalanced, debits, credits)
	}

	if header.Date.IsZero() {
		header.Date = time.Now().In(time.UTC)
	}

	if header.TotalAmount.IsZero() {
		header.TotalAmount = debits
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&header).Error; err != nil {
			return err
		}

		for _, input := range lines {
			line := models.TransactionLine{
				TransactionID: header.ID,
				GLAccountID:   input.GLAccountID,
				Amount:        input.Amount,
				PostingType:   input.PostingType,
				Date:          header.Date,
				Memo:          input.Memo,
				PropertyID:    input.PropertyID,
				UnitID:        input.UnitID,
				LeaseID:       input.LeaseID,
			}

			// Line scope defaults to the header scope
			if line.PropertyID == nil {
				line.PropertyID = header.PropertyID
			}
			if line.UnitID == nil {
				line.UnitID = header.UnitID
			}
			if line.LeaseID == nil {
				line.LeaseID = header.LeaseID
			}

			if err := tx.Create(&line).Error; err != nil {
				return err
			}

			header.Lines = append(header.Lines, line)
		}

		return nil
	})
	if err != nil {
		return models.Transaction{}, err
	}

	return header, nil
}
