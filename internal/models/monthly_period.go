package models

import (
	"strings"

	"github.com/brickledger/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// PeriodStage is the review state of a monthly period.
type PeriodStage string

const (
	StageOpen   PeriodStage = "open"
	StageReview PeriodStage = "review"
	StageClosed PeriodStage = "closed"
)

func periodStages() []PeriodStage {
	return []PeriodStage{StageOpen, StageReview, StageClosed}
}

// MonthlyPeriod is the owner-facing financial summary of one unit for
// one month. The aggregate columns are denormalized, Refresh recomputes
// them from the transactions tagged to the period.
type MonthlyPeriod struct {
	DefaultModel
	OrgID      uuid.UUID   `json:"orgId"`
	PropertyID uuid.UUID   `json:"propertyId"`
	UnitID     uuid.UUID   `json:"unitId" gorm:"uniqueIndex:monthly_period_unit_month"`
	Month      types.Month `json:"month" gorm:"uniqueIndex:monthly_period_unit_month" example:"2026-02-01T00:00:00Z"`
	Stage      PeriodStage `json:"stage" example:"open"`

	TotalCharges    decimal.Decimal `json:"totalCharges" gorm:"type:DECIMAL(20,8)"`
	TotalCredits    decimal.Decimal `json:"totalCredits" gorm:"type:DECIMAL(20,8)"`
	TotalPayments   decimal.Decimal `json:"totalPayments" gorm:"type:DECIMAL(20,8)"`
	TotalBills      decimal.Decimal `json:"totalBills" gorm:"type:DECIMAL(20,8)"`
	EscrowAmount    decimal.Decimal `json:"escrowAmount" gorm:"type:DECIMAL(20,8)"`
	ManagementFees  decimal.Decimal `json:"managementFees" gorm:"type:DECIMAL(20,8)"`
	OwnerDraw       decimal.Decimal `json:"ownerDraw" gorm:"type:DECIMAL(20,8)"`
	PreviousBalance decimal.Decimal `json:"previousBalance" gorm:"type:DECIMAL(20,8)"`
	NetToOwner      decimal.Decimal `json:"netToOwner" gorm:"type:DECIMAL(20,8)"`
}

func (p MonthlyPeriod) Self() string {
	return "Monthly Period"
}

// BeforeSave validates the stage.
func (p *MonthlyPeriod) BeforeSave(_ *gorm.DB) error {
	p.Stage = PeriodStage(strings.ToLower(strings.TrimSpace(string(p.Stage))))
	if p.Stage == "" {
		p.Stage = StageOpen
	}
	if !slices.Contains(periodStages(), p.Stage) {
		return ErrStageInvalid
	}

	return nil
}
