// Package ledger implements the double-entry ledger engines: account
// classification, the cash rollup, balanced posting, payment
// allocation, monthly period aggregation and the escrow ledger.
//
// Nothing in this package holds state. Every function takes the
// database handle and all configuration explicitly.
package ledger

import (
	"strings"

	"github.com/brickledger/backend/internal/models"
)

// Category is the cash-rollup classification of a GL account.
// Every account falls into exactly one category.
type Category string

const (
	CategoryBank            Category = "bank"
	CategorySecurityDeposit Category = "security-deposit-liability"
	CategoryPrepaid         Category = "prepaid-liability"
	CategoryReceivable      Category = "accounts-receivable"
	CategoryOther           Category = "other"
)

// normalizeSubType lowercases and strips whitespace, underscores and
// hyphens so that "Accounts Receivable", "accounts_receivable" and
// "AccountsReceivable" all match.
func normalizeSubType(s string) string {
	s = strings.ToLower(s)
	for _, cut := range []string{" ", "\t", "_", "-"} {
		s = strings.ReplaceAll(s, cut, "")
	}
	return s
}

// Classify determines the rollup category of a GL account.
//
// Explicit flags beat name and sub-type heuristics, and within the
// flags IsBankAccount beats IsSecurityDepositLiability. Receivable
// detection runs first because upstream systems flag some AR clearing
// accounts as bank accounts.
func Classify(account models.GLAccount) Category {
	name := normalizeSubType(account.Name)
	subType := normalizeSubType(account.SubType)

	if strings.Contains(subType, "accountsreceivable") || strings.Contains(name, "receivable") {
		return CategoryReceivable
	}

	if isBank(account, name, subType) {
		return CategoryBank
	}

	if account.IsSecurityDepositLiability {
		return CategorySecurityDeposit
	}

	if account.Type == models.AccountTypeLiability {
		if strings.Contains(subType, "deposit") || strings.Contains(name, "deposit") ||
			strings.Contains(subType, "escrow") || strings.Contains(name, "escrow") {
			return CategorySecurityDeposit
		}

		if strings.Contains(subType, "prepaid") || strings.Contains(name, "prepaid") ||
			strings.Contains(subType, "prepay") || strings.Contains(name, "prepay") {
			return CategoryPrepaid
		}
	}

	return CategoryOther
}

func isBank(account models.GLAccount, name, subType string) bool {
	if account.IsBankAccount {
		return true
	}

	if account.Type == models.AccountTypeAsset {
		if strings.Contains(subType, "bank") || strings.Contains(subType, "cash") {
			return true
		}

		for _, hint := range []string{"bank", "checking", "operating", "trust"} {
			if strings.Contains(name, hint) {
				return true
			}
		}
	}

	return false
}
