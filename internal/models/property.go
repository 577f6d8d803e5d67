package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Property is a managed rental property. The reserve is subtracted from
// the cash position when the available balance is computed.
type Property struct {
	DefaultModel
	OrgID   uuid.UUID       `json:"orgId" example:"550dc009-cea6-4c12-b2a5-03455eb7b841"`
	Name    string          `json:"name" example:"Maple Street 12"`
	Address string          `json:"address" example:"12 Maple Street, Springfield"`
	Reserve decimal.Decimal `json:"reserve" gorm:"type:DECIMAL(20,8)" example:"500.00"`

	// GL accounts used for escrow postings. When unset, escrow reads
	// report HasValidGLAccounts as false.
	OperatingBankAccountID *uuid.UUID `json:"operatingBankAccountId"`
	DepositTrustAccountID  *uuid.UUID `json:"depositTrustAccountId"`
}

func (p Property) Self() string {
	return "Property"
}

func (p *Property) BeforeSave(_ *gorm.DB) error {
	p.Name = strings.TrimSpace(p.Name)
	return nil
}

// Unit is a rentable unit of a property.
type Unit struct {
	DefaultModel
	OrgID      uuid.UUID `json:"orgId"`
	PropertyID uuid.UUID `json:"propertyId"`
	Name       string    `json:"name" example:"Apt 3B"`
}

func (u Unit) Self() string {
	return "Unit"
}

func (u *Unit) BeforeSave(_ *gorm.DB) error {
	u.Name = strings.TrimSpace(u.Name)
	return nil
}

// LeaseStatus is the lifecycle state of a lease.
type LeaseStatus string

const (
	LeaseActive LeaseStatus = "active"
	LeaseEnded  LeaseStatus = "ended"
)

// Lease connects tenants to a unit. Charges and payments reference it.
type Lease struct {
	DefaultModel
	OrgID      uuid.UUID   `json:"orgId"`
	PropertyID uuid.UUID   `json:"propertyId"`
	UnitID     uuid.UUID   `json:"unitId"`
	TenantName string      `json:"tenantName" example:"Avery Johnson"`
	Status     LeaseStatus `json:"status" example:"active"`
	FromDate   time.Time   `json:"fromDate"`
	ToDate     *time.Time  `json:"toDate"`
	ExternalID *int64      `json:"externalId"`
}

func (l Lease) Self() string {
	return "Lease"
}

func (l *Lease) BeforeSave(_ *gorm.DB) error {
	if l.Status == "" {
		l.Status = LeaseActive
	}

	l.FromDate = l.FromDate.In(time.UTC)
	if l.ToDate != nil {
		utc := l.ToDate.In(time.UTC)
		l.ToDate = &utc
	}

	return nil
}

// Vendor is a supplier referenced by bill transactions.
type Vendor struct {
	DefaultModel
	OrgID      uuid.UUID `json:"orgId"`
	Name       string    `json:"name" example:"Springfield Plumbing Co"`
	ExternalID *int64    `json:"externalId"`
}

func (v Vendor) Self() string {
	return "Vendor"
}

func (v *Vendor) BeforeSave(_ *gorm.DB) error {
	v.Name = strings.TrimSpace(v.Name)
	return nil
}
