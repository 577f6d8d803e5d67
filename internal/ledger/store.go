package ledger

import (
	"time"

	"github.com/brickledger/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// The ledger store: typed, scoped reads used by the engines. A line or
// transaction belongs to a property when it is tagged with the property
// directly or with one of its units or leases.

func getProperty(db *gorm.DB, id uuid.UUID) (models.Property, error) {
	var property models.Property
	err := db.First(&property, "id = ?", id).Error
	return property, err
}

func getUnit(db *gorm.DB, id uuid.UUID) (models.Unit, error) {
	var unit models.Unit
	err := db.First(&unit, "id = ?", id).Error
	return unit, err
}

func getPeriod(db *gorm.DB, id uuid.UUID) (models.MonthlyPeriod, error) {
	var period models.MonthlyPeriod
	err := db.First(&period, "id = ?", id).Error
	return period, err
}

// PropertyLines returns all transaction lines scoped to a property up
// to and including the asOf day, with their GL accounts populated.
func PropertyLines(db *gorm.DB, propertyID uuid.UUID, asOf time.Time) ([]models.TransactionLine, error) {
	unitIDs := db.Model(&models.Unit{}).Select("id").Where("property_id = ?", propertyID)
	leaseIDs := db.Model(&models.Lease{}).Select("id").Where("property_id = ?", propertyID)

	var lines []models.TransactionLine
	err := db.
		Preload("GLAccount").
		Where("transaction_lines.date < date(?)", asOf.AddDate(0, 0, 1)).
		Where(
			db.Where("transaction_lines.property_id = ?", propertyID).
				Or("transaction_lines.unit_id IN (?)", unitIDs).
				Or("transaction_lines.lease_id IN (?)", leaseIDs),
		).
		Order("datetime(transaction_lines.date) ASC, datetime(transaction_lines.created_at) ASC").
		Find(&lines).Error

	return lines, err
}

// PropertyTransactions returns all transaction headers scoped to a
// property up to and including the asOf day.
func PropertyTransactions(db *gorm.DB, propertyID uuid.UUID, asOf time.Time) ([]models.Transaction, error) {
	unitIDs := db.Model(&models.Unit{}).Select("id").Where("property_id = ?", propertyID)
	leaseIDs := db.Model(&models.Lease{}).Select("id").Where("property_id = ?", propertyID)

	var transactions []models.Transaction
	err := db.
		Where("transactions.date < date(?)", asOf.AddDate(0, 0, 1)).
		Where(
			db.Where("transactions.property_id = ?", propertyID).
				Or("transactions.unit_id IN (?)", unitIDs).
				Or("transactions.lease_id IN (?)", leaseIDs),
		).
		Order("datetime(transactions.date) ASC, datetime(transactions.created_at) ASC").
		Find(&transactions).Error

	return transactions, err
}

// PeriodTransactions returns the transactions tagged to a monthly
// period with their lines and GL accounts populated.
func PeriodTransactions(db *gorm.DB, periodID uuid.UUID) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := db.
		Preload("Lines").
		Preload("Lines.GLAccount").
		Where("transactions.monthly_period_id = ?", periodID).
		Order("datetime(transactions.date) ASC, datetime(transactions.created_at) ASC").
		Find(&transactions).Error

	return transactions, err
}

// OutstandingCharges returns the open and partially paid charges of a
// lease, oldest due date first. The allocation engine consumes them in
// this order.
func OutstandingCharges(db *gorm.DB, leaseID uuid.UUID) ([]models.Charge, error) {
	var charges []models.Charge
	err := db.
		Where("charges.lease_id = ?", leaseID).
		Where("charges.status IN (?)", []models.ChargeStatus{models.ChargeOpen, models.ChargePartial}).
		Where("charges.amount_open > 0").
		Order("datetime(charges.due_date) ASC, datetime(charges.created_at) ASC").
		Find(&charges).Error

	return charges, err
}

// GetTransaction returns a transaction with its lines.
func GetTransaction(db *gorm.DB, id uuid.UUID) (models.Transaction, error) {
	var transaction models.Transaction
	err := db.Preload("Lines").Preload("Lines.GLAccount").First(&transaction, "id = ?", id).Error
	return transaction, err
}
