package v1

import (
	"net/http"
	"time"

	"github.com/brickledger/backend/internal/httputil"
	"github.com/brickledger/backend/internal/ledger"
	"github.com/brickledger/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RegisterPaymentRoutes registers the routes for payments with the
// RouterGroup that is passed.
func (co Controller) RegisterPaymentRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsPaymentList)
		r.POST("", co.CreatePayment)
	}
}

// PaymentEditable posts a tenant payment and applies it to the
// outstanding charges of the lease in one request. Without explicit
// allocations the payment fills the charges oldest due date first.
type PaymentEditable struct {
	OrgID      uuid.UUID                   `json:"orgId"`                                   // ID of the organization
	LeaseID    uuid.UUID                   `json:"leaseId"`                                 // ID of the lease the payment is for
	Amount     decimal.Decimal             `json:"amount" example:"1450.00" minimum:"0.01"` // The paid amount
	Date       time.Time                   `json:"date"`                                    // Date of the payment. Defaults to now.
	Memo       string                      `json:"memo" example:"February rent"`            // A note on the payment
	PropertyID *uuid.UUID                  `json:"propertyId"`                              // Property scope
	UnitID     *uuid.UUID                  `json:"unitId"`                                  // Unit scope
	Explicit   []ledger.ExplicitAllocation `json:"explicit"`                                // Caller-chosen allocations. Must sum to the payment amount.
}

// PaymentResult is the outcome of a payment posting: the ledger
// transaction plus what was applied where.
type PaymentResult struct {
	Transaction models.Transaction      `json:"transaction"` // The posted payment transaction
	Allocation  ledger.AllocationResult `json:"allocation"`  // The application to charges
}

type PaymentResponse struct {
	Data  *PaymentResult `json:"data"`  // The payment outcome
	Error *string        `json:"error"` // The error, if any occurred
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Payments
// @Success		204
// @Router			/v1/payments [options]
func OptionsPaymentList(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Post payment
// @Description	Posts a tenant payment and allocates it to the charges of the lease. If the allocation fails, the payment is rolled back with it.
// @Tags			Payments
// @Produce		json
// @Success		201		{object}	PaymentResponse
// @Failure		400		{object}	PaymentResponse
// @Failure		422		{object}	PaymentResponse
// @Failure		500		{object}	PaymentResponse
// @Param			payment	body		PaymentEditable	true	"Payment"
// @Router			/v1/payments [post]
func (co Controller) CreatePayment(c *gin.Context) {
	var editable PaymentEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PaymentResponse{Error: &e})
		return
	}

	// A mismatched explicit allocation is rejected before the payment
	// is posted
	if err := ledger.ValidateExplicitTotal(editable.Amount, editable.Explicit); err != nil {
		e := err.Error()
		c.JSON(status(err), PaymentResponse{Error: &e})
		return
	}

	transaction, err := ledger.PostTenantPayment(co.DB, ledger.EventInput{
		OrgID:      editable.OrgID,
		Date:       editable.Date,
		Amount:     editable.Amount,
		Memo:       editable.Memo,
		PropertyID: editable.PropertyID,
		UnitID:     editable.UnitID,
		LeaseID:    &editable.LeaseID,
	})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PaymentResponse{Error: &e})
		return
	}

	allocation, err := ledger.Allocate(co.DB, ledger.AllocationRequest{
		OrgID:                editable.OrgID,
		LeaseID:              editable.LeaseID,
		PaymentTransactionID: transaction.ID,
		Amount:               editable.Amount,
		Explicit:             editable.Explicit,
	})
	if err != nil {
		// The payment was only posted for this allocation, take it back
		// out so the caller can retry the request as a whole
		_ = co.DB.Unscoped().Delete(&models.TransactionLine{}, "transaction_id = ?", transaction.ID).Error
		_ = co.DB.Unscoped().Delete(&models.Transaction{}, "id = ?", transaction.ID).Error

		e := err.Error()
		c.JSON(status(err), PaymentResponse{Error: &e})
		return
	}

	c.JSON(http.StatusCreated, PaymentResponse{Data: &PaymentResult{
		Transaction: transaction,
		Allocation:  allocation,
	}})
}
