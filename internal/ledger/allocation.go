package ledger

import (
	"fmt"

	"github.com/brickledger/backend/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// allocationEpsilon absorbs rounding noise when comparing allocation
// sums and open amounts.
var allocationEpsilon = decimal.RequireFromString("0.005")

// ExplicitAllocation is a caller-chosen application of part of a
// payment to one charge.
type ExplicitAllocation struct {
	ChargeID uuid.UUID       `json:"chargeId"`
	Amount   decimal.Decimal `json:"amount"`
}

// AllocationRequest applies a payment to the charges of a lease. When
// Explicit is empty, the payment is allocated to the outstanding
// charges oldest due date first.
type AllocationRequest struct {
	OrgID                uuid.UUID
	LeaseID              uuid.UUID
	PaymentTransactionID uuid.UUID
	Amount               decimal.Decimal
	Explicit             []ExplicitAllocation
}

// AllocationResult reports what was applied where. Unapplied is the
// part of the payment no open charge could absorb; it is reported, not
// silently dropped.
type AllocationResult struct {
	Allocations []models.Allocation `json:"allocations"`
	Charges     []models.Charge     `json:"charges"`
	Unapplied   decimal.Decimal     `json:"unapplied"`
}

type plannedAllocation struct {
	charge models.Charge
	amount decimal.Decimal
}

// ValidateExplicitTotal checks that caller-chosen allocations sum to
// the payment amount, so that a mismatched request can be rejected
// before anything is posted.
func ValidateExplicitTotal(amount decimal.Decimal, explicit []ExplicitAllocation) error {
	if len(explicit) == 0 {
		return nil
	}

	sum := decimal.Zero
	for _, allocation := range explicit {
		sum = sum.Add(allocation.Amount)
	}

	if sum.Sub(amount).Abs().GreaterThan(allocationEpsilon) {
		return fmt.Errorf("%w: allocations sum to %s, the payment amount is %s",
			ErrAllocationMismatch, sum, amount)
	}

	return nil
}

// Allocate validates and persists the application of a payment to
// charges. The payment transaction must already exist; if persisting
// the allocations fails half way, compensate removes the payment and
// everything written so far, so a payment is never left partially
// allocated.
func Allocate(db *gorm.DB, req AllocationRequest) (AllocationResult, error) {
	if !req.Amount.IsPositive() {
		return AllocationResult{}, fmt.Errorf("%w: the payment amount must be positive", ErrValidation)
	}

	// A payment is allocated exactly once. When the read itself fails,
	// the payment must not stay posted without its allocations, so this
	// path unwinds it like a persistence failure
	var existing []models.Allocation
	err := db.Where("allocations.payment_transaction_id = ?", req.PaymentTransactionID).
		Order("allocations.\"order\" ASC").
		Find(&existing).Error
	if err != nil {
		compensate(db, req.PaymentTransactionID, nil, nil)
		return AllocationResult{}, err
	}

	if len(existing) > 0 {
		applied := decimal.Zero
		for _, allocation := range existing {
			applied = applied.Add(allocation.Amount)
		}

		return AllocationResult{
			Allocations: existing,
			Unapplied:   req.Amount.Sub(applied),
		}, nil
	}

	var planned []plannedAllocation
	if len(req.Explicit) > 0 {
		planned, err = planExplicit(db, req)
	} else {
		planned, err = planAuto(db, req)
	}
	if err != nil {
		return AllocationResult{}, err
	}

	return persistAllocations(db, req, planned)
}

// planExplicit validates caller-chosen allocations: every charge must
// belong to the lease, no allocation may overflow its charge, and the
// sum must match the payment amount.
func planExplicit(db *gorm.DB, req AllocationRequest) ([]plannedAllocation, error) {
	sum := decimal.Zero
	planned := make([]plannedAllocation, 0, len(req.Explicit))

	for _, explicit := range req.Explicit {
		if !explicit.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: allocation amounts must be positive", ErrValidation)
		}

		var charge models.Charge
		err := db.First(&charge, "id = ?", explicit.ChargeID).Error
		if err != nil {
			return nil, err
		}

		if charge.LeaseID != req.LeaseID {
			return nil, fmt.Errorf("%w: charge %s belongs to another lease", ErrValidation, charge.ID)
		}

		if explicit.Amount.GreaterThan(charge.AmountOpen.Add(allocationEpsilon)) {
			return nil, fmt.Errorf("%w: charge %s has %s open, %s requested",
				ErrAllocationOverflow, charge.ID, charge.AmountOpen, explicit.Amount)
		}

		sum = sum.Add(explicit.Amount)
		planned = append(planned, plannedAllocation{charge: charge, amount: explicit.Amount})
	}

	if sum.Sub(req.Amount).Abs().GreaterThan(allocationEpsilon) {
		return nil, fmt.Errorf("%w: allocations sum to %s, the payment amount is %s",
			ErrAllocationMismatch, sum, req.Amount)
	}

	return planned, nil
}

// planAuto fills the outstanding charges of the lease oldest due date
// first until the payment is used up.
func planAuto(db *gorm.DB, req AllocationRequest) ([]plannedAllocation, error) {
	charges, err := OutstandingCharges(db, req.LeaseID)
	if err != nil {
		return nil, err
	}

	remaining := req.Amount
	var planned []plannedAllocation

	for _, charge := range charges {
		if !remaining.IsPositive() {
			break
		}

		amount := decimal.Min(remaining, charge.AmountOpen)
		if !amount.IsPositive() {
			continue
		}

		planned = append(planned, plannedAllocation{charge: charge, amount: amount})
		remaining = remaining.Sub(amount)
	}

	return planned, nil
}

// persistAllocations writes the allocation rows and decrements the
// charges. On any error it runs the compensation path and reports the
// original error.
func persistAllocations(db *gorm.DB, req AllocationRequest, planned []plannedAllocation) (AllocationResult, error) {
	result := AllocationResult{
		Allocations: make([]models.Allocation, 0, len(planned)),
		Charges:     make([]models.Charge, 0, len(planned)),
		Unapplied:   req.Amount,
	}

	// Remember the prior state of every touched charge for compensation
	touched := make([]models.Charge, 0, len(planned))

	for i, plan := range planned {
		allocation := models.Allocation{
			OrgID:                req.OrgID,
			PaymentTransactionID: req.PaymentTransactionID,
			ChargeID:             plan.charge.ID,
			Amount:               plan.amount,
			Order:                uint(i),
		}

		if err := db.Create(&allocation).Error; err != nil {
			compensate(db, req.PaymentTransactionID, result.Allocations, touched)
			return AllocationResult{}, err
		}
		result.Allocations = append(result.Allocations, allocation)

		touched = append(touched, plan.charge)

		charge := plan.charge
		charge.AmountOpen = charge.AmountOpen.Sub(plan.amount)
		if charge.AmountOpen.IsNegative() {
			charge.AmountOpen = decimal.Zero
		}
		charge.Status = chargeStatus(charge)

		err := db.Model(&models.Charge{}).
			Where("id = ?", charge.ID).
			Updates(map[string]any{
				"amount_open": charge.AmountOpen,
				"status":      charge.Status,
			}).Error
		if err != nil {
			compensate(db, req.PaymentTransactionID, result.Allocations, touched[:len(touched)-1])
			return AllocationResult{}, err
		}

		result.Charges = append(result.Charges, charge)
		result.Unapplied = result.Unapplied.Sub(plan.amount)
	}

	return result, nil
}

// compensate unwinds a failed allocation run. It restores the charges
// updated so far, removes the allocation rows and deletes the payment
// transaction itself, so the caller can retry the payment as a whole.
func compensate(db *gorm.DB, paymentTransactionID uuid.UUID, created []models.Allocation, restore []models.Charge) {
	for _, charge := range restore {
		err := db.Model(&models.Charge{}).
			Where("id = ?", charge.ID).
			Updates(map[string]any{
				"amount_open": charge.AmountOpen,
				"status":      charge.Status,
			}).Error
		if err != nil {
			log.Error().Err(err).Str("charge", charge.ID.String()).Msg("compensation could not restore charge")
		}
	}

	for _, allocation := range created {
		err := db.Unscoped().Delete(&models.Allocation{}, "id = ?", allocation.ID).Error
		if err != nil {
			log.Error().Err(err).Str("allocation", allocation.ID.String()).Msg("compensation could not delete allocation")
		}
	}

	err := db.Unscoped().Delete(&models.TransactionLine{}, "transaction_id = ?", paymentTransactionID).Error
	if err != nil {
		log.Error().Err(err).Str("transaction", paymentTransactionID.String()).Msg("compensation could not delete payment lines")
	}

	err = db.Unscoped().Delete(&models.Transaction{}, "id = ?", paymentTransactionID).Error
	if err != nil {
		log.Error().Err(err).Str("transaction", paymentTransactionID.String()).Msg("compensation could not delete payment")
	}
}

// chargeStatus derives the lifecycle state of a charge from its open
// amount.
func chargeStatus(charge models.Charge) models.ChargeStatus {
	if charge.AmountOpen.LessThanOrEqual(allocationEpsilon) {
		return models.ChargePaid
	}

	if charge.AmountOpen.LessThan(charge.Amount) {
		return models.ChargePartial
	}

	return models.ChargeOpen
}
