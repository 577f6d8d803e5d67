package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// ChargeType categorizes what a charge is for. It determines nothing in
// the ledger math, but reporting and allocation previews group by it.
type ChargeType string

const (
	ChargeRent    ChargeType = "rent"
	ChargeLateFee ChargeType = "late_fee"
	ChargeUtility ChargeType = "utility"
	ChargeDeposit ChargeType = "deposit"
	ChargeOther   ChargeType = "other"
)

func chargeTypes() []ChargeType {
	return []ChargeType{ChargeRent, ChargeLateFee, ChargeUtility, ChargeDeposit, ChargeOther}
}

// ChargeStatus is the lifecycle state of a charge. It is derived from
// AmountOpen by the allocation engine, never set directly.
type ChargeStatus string

const (
	ChargeOpen    ChargeStatus = "open"
	ChargePartial ChargeStatus = "partial"
	ChargePaid    ChargeStatus = "paid"
)

// Charge is an amount a tenant owes. Payments are applied against it by
// the allocation engine, which decrements AmountOpen.
type Charge struct {
	DefaultModel
	OrgID         uuid.UUID       `json:"orgId"`
	LeaseID       uuid.UUID       `json:"leaseId"`
	TransactionID *uuid.UUID      `json:"transactionId"` // the ledger transaction that created the charge
	Type          ChargeType      `json:"type" example:"rent"`
	Description   string          `json:"description" example:"Rent 2026-02"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"1450.00"`
	AmountOpen    decimal.Decimal `json:"amountOpen" gorm:"type:DECIMAL(20,8)" example:"450.00"`
	DueDate       time.Time       `json:"dueDate"`
	Status        ChargeStatus    `json:"status" example:"open"`
}

func (c Charge) Self() string {
	return "Charge"
}

// BeforeSave normalizes the charge type and defaults the open amount
// and status for new charges.
func (c *Charge) BeforeSave(_ *gorm.DB) error {
	c.Type = ChargeType(strings.ToLower(strings.TrimSpace(string(c.Type))))
	if c.Type == "" {
		c.Type = ChargeOther
	}
	if !slices.Contains(chargeTypes(), c.Type) {
		return ErrChargeTypeInvalid
	}

	if c.Status == "" {
		c.Status = ChargeOpen
		c.AmountOpen = c.Amount
	}

	c.DueDate = c.DueDate.In(time.UTC)
	return nil
}

// Allocation applies part of a payment transaction to a charge.
type Allocation struct {
	DefaultModel
	OrgID                uuid.UUID       `json:"orgId"`
	PaymentTransactionID uuid.UUID       `json:"paymentTransactionId"`
	ChargeID             uuid.UUID       `json:"chargeId"`
	Amount               decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"1000.00"`
	Order                uint            `json:"order" example:"0"` // position within the payment's allocations
}

func (a Allocation) Self() string {
	return "Allocation"
}
