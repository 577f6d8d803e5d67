package v1

import (
	"net/http"
	"time"

	"github.com/brickledger/backend/internal/httputil"
	"github.com/brickledger/backend/internal/ledger"
	"github.com/brickledger/backend/internal/models"
	"github.com/brickledger/backend/internal/platform"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RegisterTransactionRoutes registers the routes for transactions with
// the RouterGroup that is passed.
//
// There is no PATCH and no DELETE: a posted ledger transaction is
// immutable. Mistakes are corrected by posting a reversal.
func (co Controller) RegisterTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsTransactionList)
		r.GET("", co.GetTransactions)
		r.POST("", co.CreateTransaction)
	}

	// Transaction with ID
	{
		r.OPTIONS("/:id", co.OptionsTransactionDetail)
		r.GET("/:id", co.GetTransaction)
		r.POST("/:id/reverse", co.ReverseTransaction)
		r.POST("/:id/sync", co.SyncTransaction)
	}
}

type TransactionEditable struct {
	OrgID           uuid.UUID              `json:"orgId"`                             // ID of the organization
	Type            models.TransactionType `json:"type" example:"Payment"`            // Business meaning of the transaction
	Date            time.Time              `json:"date"`                              // Date of the transaction. Defaults to now.
	TotalAmount     decimal.Decimal        `json:"totalAmount" example:"1450.00"`     // Header amount. Defaults to the debit total.
	Memo            string                 `json:"memo" example:"February rent"`      // A note on the transaction
	ReferenceNumber string                 `json:"referenceNumber" example:"CHK-1041"` // External reference, e.g. a check number
	PropertyID      *uuid.UUID             `json:"propertyId"`                        // Property scope
	UnitID          *uuid.UUID             `json:"unitId"`                            // Unit scope
	LeaseID         *uuid.UUID             `json:"leaseId"`                           // Lease scope
	VendorID        *uuid.UUID             `json:"vendorId"`                          // Vendor, for bills
	MonthlyPeriodID *uuid.UUID             `json:"monthlyPeriodId"`                   // Monthly period the transaction is tagged to
	Lines           []ledger.LineInput     `json:"lines"`                             // The postings, must balance
}

func (editable TransactionEditable) header() models.Transaction {
	return models.Transaction{
		OrgID:           editable.OrgID,
		Type:            editable.Type,
		Date:            editable.Date,
		TotalAmount:     editable.TotalAmount,
		Memo:            editable.Memo,
		ReferenceNumber: editable.ReferenceNumber,
		PropertyID:      editable.PropertyID,
		UnitID:          editable.UnitID,
		LeaseID:         editable.LeaseID,
		VendorID:        editable.VendorID,
		MonthlyPeriodID: editable.MonthlyPeriodID,
	}
}

type TransactionResponse struct {
	Data  *models.Transaction `json:"data"`  // The transaction
	Error *string             `json:"error"` // The error, if any occurred
}

type TransactionListResponse struct {
	Data       []models.Transaction `json:"data"`       // List of transactions
	Error      *string              `json:"error"`      // The error, if any occurred
	Pagination *Pagination          `json:"pagination"` // Pagination information
}

type SyncResponse struct {
	Data  *platform.Result `json:"data"`  // The outcome of the sync attempt
	Error *string          `json:"error"` // The error, if any occurred
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Router			/v1/transactions [options]
func OptionsTransactionList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/transactions/{id} [options]
func (co Controller) OptionsTransactionDetail(c *gin.Context) {
	if _, ok := getResourceByID[models.Transaction](c, co); !ok {
		return
	}

	httputil.OptionsGet(c)
}

// @Summary		List transactions
// @Description	Returns a list of transactions, newest first
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	TransactionListResponse
// @Failure		400	{object}	TransactionListResponse
// @Failure		500	{object}	TransactionListResponse
// @Router			/v1/transactions [get]
// @Param			property	query	string	false	"Filter by property ID"
// @Param			lease		query	string	false	"Filter by lease ID"
// @Param			type		query	string	false	"Filter by transaction type"
// @Param			fromDate	query	string	false	"Transactions at and after this date, YYYY-MM-DD"
// @Param			untilDate	query	string	false	"Transactions before and at this date, YYYY-MM-DD"
// @Param			offset		query	uint	false	"The offset of the first transaction returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of transactions to return. Defaults to 50."
func (co Controller) GetTransactions(c *gin.Context) {
	q := co.DB.
		Preload("Lines").
		Order("datetime(transactions.date) DESC, datetime(transactions.created_at) DESC")

	if property := c.Query("property"); property != "" {
		propertyID, err := httputil.UUIDFromString(property)
		if err != nil {
			e := err.Error()
			c.JSON(status(err), TransactionListResponse{Error: &e})
			return
		}
		q = q.Where("transactions.property_id = ?", propertyID)
	}

	if lease := c.Query("lease"); lease != "" {
		leaseID, err := httputil.UUIDFromString(lease)
		if err != nil {
			e := err.Error()
			c.JSON(status(err), TransactionListResponse{Error: &e})
			return
		}
		q = q.Where("transactions.lease_id = ?", leaseID)
	}

	if transactionType := c.Query("type"); transactionType != "" {
		q = q.Where("transactions.type = ?", models.ParseTransactionType(transactionType))
	}

	if raw := c.Query("fromDate"); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			e := httputil.ErrInvalidDate.Error()
			c.JSON(http.StatusBadRequest, TransactionListResponse{Error: &e})
			return
		}
		q = q.Where("transactions.date >= date(?)", from)
	}

	if raw := c.Query("untilDate"); raw != "" {
		until, err := time.Parse("2006-01-02", raw)
		if err != nil {
			e := httputil.ErrInvalidDate.Error()
			c.JSON(http.StatusBadRequest, TransactionListResponse{Error: &e})
			return
		}
		q = q.Where("transactions.date < date(?)", until.AddDate(0, 0, 1))
	}

	offset, limit := paginate(c)
	q = q.Offset(int(offset)).Limit(limit)

	var transactions []models.Transaction
	if err := q.Find(&transactions).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionListResponse{Error: &e})
		return
	}

	var count int64
	if err := q.Limit(-1).Offset(-1).Count(&count).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionListResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, TransactionListResponse{
		Data: transactions,
		Pagination: &Pagination{
			Count:  len(transactions),
			Total:  count,
			Offset: offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get transaction
// @Description	Returns a specific transaction with its lines
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	TransactionResponse
// @Failure		400	{object}	TransactionResponse
// @Failure		404	{object}	TransactionResponse
// @Failure		500	{object}	TransactionResponse
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/transactions/{id} [get]
func (co Controller) GetTransaction(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	transaction, err := ledger.GetTransaction(co.DB, uri.ID.UUID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, TransactionResponse{Data: &transaction})
}

// @Summary		Post transaction
// @Description	Posts a balanced transaction. Either the header and every line are written, or nothing is.
// @Tags			Transactions
// @Produce		json
// @Success		201			{object}	TransactionResponse
// @Failure		400			{object}	TransactionResponse
// @Failure		500			{object}	TransactionResponse
// @Param			transaction	body		TransactionEditable	true	"Transaction"
// @Router			/v1/transactions [post]
func (co Controller) CreateTransaction(c *gin.Context) {
	var editable TransactionEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	transaction, err := ledger.Post(co.DB, editable.header(), editable.Lines)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	c.JSON(http.StatusCreated, TransactionResponse{Data: &transaction})
}

// @Summary		Reverse transaction
// @Description	Posts a general journal entry mirroring the transaction with every posting type flipped
// @Tags			Transactions
// @Produce		json
// @Success		201	{object}	TransactionResponse
// @Failure		400	{object}	TransactionResponse
// @Failure		404	{object}	TransactionResponse
// @Failure		500	{object}	TransactionResponse
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/transactions/{id}/reverse [post]
func (co Controller) ReverseTransaction(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	var body struct {
		Memo string `json:"memo"`
	}
	_ = c.ShouldBindJSON(&body)

	reversal, err := ledger.Reverse(co.DB, uri.ID.UUID, body.Memo)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	c.JSON(http.StatusCreated, TransactionResponse{Data: &reversal})
}

// @Summary		Sync transaction
// @Description	Pushes the transaction to the upstream platform. The response is always HTTP 200, the sync outcome is in the body.
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	SyncResponse
// @Failure		400	{object}	SyncResponse
// @Failure		404	{object}	SyncResponse
// @Router			/v1/transactions/{id}/sync [post]
func (co Controller) SyncTransaction(c *gin.Context) {
	transaction, ok := getResourceByID[models.Transaction](c, co)
	if !ok {
		return
	}

	result := platform.Push(c.Request.Context(), co.DB, co.Sync, transaction.ID)
	c.JSON(http.StatusOK, SyncResponse{Data: &result})
}
