package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// TransactionType is the business meaning of a ledger transaction.
//
// The set is closed. Values coming in through the API or an import are
// normalized exactly once, in the BeforeSave hook; everything downstream
// compares with ==.
type TransactionType string

const (
	TypeCharge              TransactionType = "Charge"
	TypeCredit              TransactionType = "Credit"
	TypePayment             TransactionType = "Payment"
	TypeBill                TransactionType = "Bill"
	TypeDeposit             TransactionType = "Deposit"
	TypeVendorCredit        TransactionType = "Vendor Credit"
	TypeRefund              TransactionType = "Refund"
	TypeAppliedVendorCredit TransactionType = "Applied Vendor Credit"
	TypeGeneralJournalEntry TransactionType = "General Journal Entry"
	TypeTransfer            TransactionType = "Transfer"
	TypeOther               TransactionType = "Other"
)

// transactionTypes returns all valid transaction types.
func transactionTypes() []TransactionType {
	return []TransactionType{
		TypeCharge,
		TypeCredit,
		TypePayment,
		TypeBill,
		TypeDeposit,
		TypeVendorCredit,
		TypeRefund,
		TypeAppliedVendorCredit,
		TypeGeneralJournalEntry,
		TypeTransfer,
		TypeOther,
	}
}

// ParseTransactionType normalizes a raw type string into the closed enum.
// Unknown values map to TypeOther so that imported data never matches
// the cash receipt types by accident.
func ParseTransactionType(raw string) TransactionType {
	needle := strings.ToLower(strings.TrimSpace(raw))
	for _, t := range transactionTypes() {
		if strings.ToLower(string(t)) == needle {
			return t
		}
	}

	return TypeOther
}

// IsCashReceipt reports whether the transaction type represents money
// received. The comparison is an exact enum match, "Payment Charge" and
// friends do not qualify.
func (t TransactionType) IsCashReceipt() bool {
	return t == TypePayment || t == TypeDeposit
}

// PostingType is the side of a double-entry posting.
type PostingType string

const (
	Debit  PostingType = "Debit"
	Credit PostingType = "Credit"
)

// ParsePostingType normalizes a raw posting type string.
func ParsePostingType(raw string) (PostingType, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debit", "dr":
		return Debit, nil
	case "credit", "cr":
		return Credit, nil
	}

	return "", ErrPostingTypeInvalid
}

// SyncStatus tracks the replication of a transaction to the upstream
// accounting system. Sync is best-effort, a failure never invalidates
// the local ledger write.
type SyncStatus string

const (
	SyncPending SyncStatus = "pending"
	SyncSynced  SyncStatus = "synced"
	SyncFailed  SyncStatus = "failed"
)

// Transaction is the header of a ledger transaction. The monetary
// detail lives in its lines.
type Transaction struct {
	DefaultModel
	OrgID           uuid.UUID       `json:"orgId" example:"550dc009-cea6-4c12-b2a5-03455eb7b841"`
	Type            TransactionType `json:"type" example:"Payment"`
	Date            time.Time       `json:"date" example:"2026-02-01T00:00:00Z"`
	TotalAmount     decimal.Decimal `json:"totalAmount" gorm:"type:DECIMAL(20,8)" example:"1450.00"`
	Memo            string          `json:"memo" example:"February rent"`
	ReferenceNumber string          `json:"referenceNumber" example:"CHK-1041"`
	PropertyID      *uuid.UUID      `json:"propertyId"`
	UnitID          *uuid.UUID      `json:"unitId"`
	LeaseID         *uuid.UUID      `json:"leaseId"`
	VendorID        *uuid.UUID      `json:"vendorId"`
	MonthlyPeriodID *uuid.UUID      `json:"monthlyPeriodId"`
	ReversesID      *uuid.UUID      `json:"reversesId"` // set on reversal entries, references the reversed transaction
	ExternalID      *int64          `json:"externalId"`
	SyncStatus      SyncStatus      `json:"syncStatus" example:"pending"`
	SyncError       string          `json:"syncError"`

	Lines []TransactionLine `json:"lines,omitempty"`
}

func (t Transaction) Self() string {
	return "Transaction"
}

// BeforeSave normalizes the enum fields and the date.
func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	t.Date = t.Date.In(time.UTC)
	t.Memo = strings.TrimSpace(t.Memo)

	t.Type = ParseTransactionType(string(t.Type))
	if !slices.Contains(transactionTypes(), t.Type) {
		return ErrTransactionTypeInvalid
	}

	if t.SyncStatus == "" {
		t.SyncStatus = SyncPending
	}

	return nil
}

// AfterFind updates the timestamps to use UTC as timezone, see DefaultModel.
func (t *Transaction) AfterFind(tx *gorm.DB) error {
	err := t.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	t.Date = t.Date.In(time.UTC)
	return nil
}

// TransactionLine is a single debit or credit against a GL account.
// Amounts are always positive, the direction is the posting type.
type TransactionLine struct {
	DefaultModel
	TransactionID uuid.UUID       `json:"transactionId"`
	GLAccountID   uuid.UUID       `json:"glAccountId"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8);check:line_amount_positive,amount > 0" example:"1450.00"`
	PostingType   PostingType     `json:"postingType" example:"Debit"`
	Date          time.Time       `json:"date"` // denormalized from the header for date-scoped queries
	Memo          string          `json:"memo"`
	PropertyID    *uuid.UUID      `json:"propertyId"`
	UnitID        *uuid.UUID      `json:"unitId"`
	LeaseID       *uuid.UUID      `json:"leaseId"`

	GLAccount GLAccount `json:"-"`
}

func (l TransactionLine) Self() string {
	return "Transaction Line"
}

// BeforeSave normalizes the posting type and the date.
func (l *TransactionLine) BeforeSave(_ *gorm.DB) error {
	parsed, err := ParsePostingType(string(l.PostingType))
	if err != nil {
		return err
	}
	l.PostingType = parsed

	l.Date = l.Date.In(time.UTC)
	return nil
}

// AfterFind updates the timestamps to use UTC as timezone, see DefaultModel.
func (l *TransactionLine) AfterFind(tx *gorm.DB) error {
	err := l.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	l.Date = l.Date.In(time.UTC)
	return nil
}
