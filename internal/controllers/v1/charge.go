package v1

import (
	"net/http"
	"time"

	"github.com/brickledger/backend/internal/httputil"
	"github.com/brickledger/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RegisterChargeRoutes registers the routes for charges with the
// RouterGroup that is passed.
func (co Controller) RegisterChargeRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsChargeList)
		r.GET("", co.GetCharges)
		r.POST("", co.CreateCharges)
	}

	// Charge with ID
	{
		r.OPTIONS("/:id", co.OptionsChargeDetail)
		r.GET("/:id", co.GetCharge)
		r.PATCH("/:id", co.UpdateCharge)
		r.DELETE("/:id", co.DeleteCharge)
	}
}

type ChargeEditable struct {
	OrgID       uuid.UUID         `json:"orgId"`                                   // ID of the organization
	LeaseID     uuid.UUID         `json:"leaseId"`                                 // ID of the lease the charge belongs to
	Type        models.ChargeType `json:"type" example:"rent" default:"other"`     // What the charge is for
	Description string            `json:"description" example:"Rent 2026-02"`      // Human readable description
	Amount      decimal.Decimal   `json:"amount" example:"1450.00" minimum:"0.01"` // The charged amount
	DueDate     time.Time         `json:"dueDate"`                                 // When the charge is due
}

func (editable ChargeEditable) model() models.Charge {
	return models.Charge{
		OrgID:       editable.OrgID,
		LeaseID:     editable.LeaseID,
		Type:        editable.Type,
		Description: editable.Description,
		Amount:      editable.Amount,
		DueDate:     editable.DueDate,
	}
}

type ChargeResponse struct {
	Data  *models.Charge `json:"data"`  // The charge
	Error *string        `json:"error"` // The error, if any occurred
}

type ChargeListResponse struct {
	Data  []models.Charge `json:"data"`  // List of charges
	Error *string         `json:"error"` // The error, if any occurred
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Charges
// @Success		204
// @Router			/v1/charges [options]
func OptionsChargeList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Charges
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/charges/{id} [options]
func (co Controller) OptionsChargeDetail(c *gin.Context) {
	if _, ok := getResourceByID[models.Charge](c, co); !ok {
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		List charges
// @Description	Returns a list of charges, oldest due date first
// @Tags			Charges
// @Produce		json
// @Success		200	{object}	ChargeListResponse
// @Failure		400	{object}	ChargeListResponse
// @Failure		500	{object}	ChargeListResponse
// @Router			/v1/charges [get]
// @Param			lease	query	string	false	"Filter by lease ID"
// @Param			status	query	string	false	"Filter by charge status"
func (co Controller) GetCharges(c *gin.Context) {
	q := co.DB.Order("datetime(charges.due_date) ASC, datetime(charges.created_at) ASC")

	if lease := c.Query("lease"); lease != "" {
		leaseID, err := httputil.UUIDFromString(lease)
		if err != nil {
			e := err.Error()
			c.JSON(status(err), ChargeListResponse{Error: &e})
			return
		}
		q = q.Where("charges.lease_id = ?", leaseID)
	}

	if s := c.Query("status"); s != "" {
		q = q.Where("charges.status = ?", s)
	}

	var charges []models.Charge
	if err := q.Find(&charges).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), ChargeListResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, ChargeListResponse{Data: charges})
}

// @Summary		Get charge
// @Description	Returns a specific charge
// @Tags			Charges
// @Produce		json
// @Success		200	{object}	ChargeResponse
// @Failure		400	{object}	ChargeResponse
// @Failure		404	{object}	ChargeResponse
// @Failure		500	{object}	ChargeResponse
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/charges/{id} [get]
func (co Controller) GetCharge(c *gin.Context) {
	charge, ok := getResourceByID[models.Charge](c, co)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, ChargeResponse{Data: &charge})
}

// @Summary		Create charges
// @Description	Creates new charges. New charges start fully open.
// @Tags			Charges
// @Produce		json
// @Success		201		{object}	ChargeListResponse
// @Failure		400		{object}	ChargeListResponse
// @Failure		500		{object}	ChargeListResponse
// @Param			charges	body		[]ChargeEditable	true	"Charges"
// @Router			/v1/charges [post]
func (co Controller) CreateCharges(c *gin.Context) {
	var editables []ChargeEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ChargeListResponse{Error: &e})
		return
	}

	charges := make([]models.Charge, 0, len(editables))
	for _, editable := range editables {
		charge := editable.model()
		if err := co.DB.Create(&charge).Error; err != nil {
			e := err.Error()
			c.JSON(status(err), ChargeListResponse{Error: &e})
			return
		}

		charges = append(charges, charge)
	}

	c.JSON(http.StatusCreated, ChargeListResponse{Data: charges})
}

// @Summary		Update charge
// @Description	Updates an existing charge. The open amount and status are managed by the allocation engine and cannot be set here.
// @Tags			Charges
// @Accept			json
// @Produce		json
// @Success		200		{object}	ChargeResponse
// @Failure		400		{object}	ChargeResponse
// @Failure		404		{object}	ChargeResponse
// @Failure		500		{object}	ChargeResponse
// @Param			id		path		string			true	"ID formatted as string"
// @Param			charge	body		ChargeEditable	true	"Charge"
// @Router			/v1/charges/{id} [patch]
func (co Controller) UpdateCharge(c *gin.Context) {
	charge, ok := getResourceByID[models.Charge](c, co)
	if !ok {
		return
	}

	updateFields, err := httputil.GetBodyFields(c, ChargeEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ChargeResponse{Error: &e})
		return
	}

	var update ChargeEditable
	err = httputil.BindData(c, &update)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ChargeResponse{Error: &e})
		return
	}

	err = co.DB.Model(&charge).Select("", updateFields...).Updates(update.model()).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ChargeResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, ChargeResponse{Data: &charge})
}

// @Summary		Delete charge
// @Description	Deletes a charge
// @Tags			Charges
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/charges/{id} [delete]
func (co Controller) DeleteCharge(c *gin.Context) {
	charge, ok := getResourceByID[models.Charge](c, co)
	if !ok {
		return
	}

	err := co.DB.Delete(&charge).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
