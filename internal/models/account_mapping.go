package models

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// AccountRole names a GL account function the engines need to resolve,
// e.g. which account escrow withdrawals are posted against.
type AccountRole string

const (
	RoleOperatingBank      AccountRole = "operating_bank"
	RoleTrustBank          AccountRole = "trust_bank"
	RoleEscrow             AccountRole = "escrow"
	RoleAccountsReceivable AccountRole = "accounts_receivable"
	RoleAccountsPayable    AccountRole = "accounts_payable"
	RoleRentIncome         AccountRole = "rent_income"
	RoleDepositLiability   AccountRole = "deposit_liability"
	RoleManagementFee      AccountRole = "management_fee"
	RoleOwnerDraw          AccountRole = "owner_draw"
)

func accountRoles() []AccountRole {
	return []AccountRole{
		RoleOperatingBank,
		RoleTrustBank,
		RoleEscrow,
		RoleAccountsReceivable,
		RoleAccountsPayable,
		RoleRentIncome,
		RoleDepositLiability,
		RoleManagementFee,
		RoleOwnerDraw,
	}
}

// AccountMapping connects an account role to GL accounts by a glob
// pattern on the account name. Lower priority values win.
//
// Chart-of-account names differ between organizations, so the posting
// helpers never hard-code account names and resolve through mappings
// instead.
type AccountMapping struct {
	DefaultModel
	OrgID    uuid.UUID   `json:"orgId" gorm:"uniqueIndex:account_mapping_org_role_match"`
	Role     AccountRole `json:"role" gorm:"uniqueIndex:account_mapping_org_role_match" example:"operating_bank"`
	Match    string      `json:"match" gorm:"uniqueIndex:account_mapping_org_role_match" example:"*Operating*"`
	Priority uint        `json:"priority" example:"0"`
}

func (m AccountMapping) Self() string {
	return "Account Mapping"
}

// BeforeSave validates the role and trims the pattern.
func (m *AccountMapping) BeforeSave(_ *gorm.DB) error {
	m.Role = AccountRole(strings.ToLower(strings.TrimSpace(string(m.Role))))
	if !slices.Contains(accountRoles(), m.Role) {
		return ErrRoleInvalid
	}

	m.Match = strings.TrimSpace(m.Match)
	return nil
}
