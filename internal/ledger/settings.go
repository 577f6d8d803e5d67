package ledger

import (
	"fmt"

	"github.com/brickledger/backend/internal/models"
	"github.com/google/uuid"
	"github.com/ryanuber/go-glob"
	"gorm.io/gorm"
)

// ResolveAccount finds the GL account an organization uses for a role.
//
// Mappings are tried in priority order; the first one whose glob
// pattern matches a GL account name wins. Ties between accounts under
// one pattern are broken by name to keep resolution deterministic.
func ResolveAccount(db *gorm.DB, orgID uuid.UUID, role models.AccountRole) (models.GLAccount, error) {
	var mappings []models.AccountMapping
	err := db.
		Where("account_mappings.org_id = ? AND account_mappings.role = ?", orgID, role).
		Order("account_mappings.priority ASC, account_mappings.created_at ASC").
		Find(&mappings).Error
	if err != nil {
		return models.GLAccount{}, err
	}

	var accounts []models.GLAccount
	err = db.
		Where("gl_accounts.org_id = ?", orgID).
		Order("gl_accounts.name ASC").
		Find(&accounts).Error
	if err != nil {
		return models.GLAccount{}, err
	}

	for _, mapping := range mappings {
		for _, account := range accounts {
			if glob.Glob(mapping.Match, account.Name) {
				return account, nil
			}
		}
	}

	return models.GLAccount{}, fmt.Errorf("%w for role %q", ErrConfiguration, role)
}
