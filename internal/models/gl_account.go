package models

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// AccountType is the fundamental accounting type of a GL account.
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeEquity    AccountType = "equity"
	AccountTypeIncome    AccountType = "income"
	AccountTypeExpense   AccountType = "expense"
)

// accountTypes returns all valid account types.
func accountTypes() []AccountType {
	return []AccountType{
		AccountTypeAsset,
		AccountTypeLiability,
		AccountTypeEquity,
		AccountTypeIncome,
		AccountTypeExpense,
	}
}

// DebitNormal reports whether balances on this account type grow with debits.
func (t AccountType) DebitNormal() bool {
	return t == AccountTypeAsset || t == AccountTypeExpense
}

// GLAccount is an account in the general ledger.
//
// SubType is free text from the upstream accounting system, the
// classifier normalizes it before matching.
type GLAccount struct {
	DefaultModel
	OrgID                      uuid.UUID   `json:"orgId" gorm:"uniqueIndex:gl_account_org_name" example:"550dc009-cea6-4c12-b2a5-03455eb7b841"`
	Name                       string      `json:"name" gorm:"uniqueIndex:gl_account_org_name" example:"Operating Bank Account"`
	Type                       AccountType `json:"type" example:"asset"`
	SubType                    string      `json:"subType" example:"CurrentAsset"`
	IsBankAccount              bool        `json:"isBankAccount" example:"true" default:"false"`
	IsSecurityDepositLiability bool        `json:"isSecurityDepositLiability" example:"false" default:"false"`
	ExcludeFromCashBalances    bool        `json:"excludeFromCashBalances" example:"false" default:"false"`
	ExternalID                 *int64      `json:"externalId" example:"404000"`
}

// BeforeSave normalizes the account type and trims the name.
func (a *GLAccount) BeforeSave(_ *gorm.DB) error {
	a.Name = strings.TrimSpace(a.Name)

	a.Type = AccountType(strings.ToLower(strings.TrimSpace(string(a.Type))))
	if !slices.Contains(accountTypes(), a.Type) {
		return ErrAccountTypeInvalid
	}

	return nil
}

func (a GLAccount) Self() string {
	return "GL Account"
}
