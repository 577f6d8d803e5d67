package v1

import (
	"net/http"
	"time"

	"github.com/brickledger/backend/internal/httputil"
	"github.com/brickledger/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RegisterLeaseRoutes registers the routes for leases with the
// RouterGroup that is passed.
func (co Controller) RegisterLeaseRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsLeaseList)
		r.GET("", co.GetLeases)
		r.POST("", co.CreateLeases)
	}

	// Lease with ID
	{
		r.OPTIONS("/:id", co.OptionsLeaseDetail)
		r.GET("/:id", co.GetLease)
		r.GET("/:id/charges", co.GetLeaseCharges)
		r.PATCH("/:id", co.UpdateLease)
		r.DELETE("/:id", co.DeleteLease)
	}
}

type LeaseEditable struct {
	OrgID      uuid.UUID          `json:"orgId"`                                 // ID of the organization
	PropertyID uuid.UUID          `json:"propertyId"`                            // ID of the property
	UnitID     uuid.UUID          `json:"unitId"`                                // ID of the leased unit
	TenantName string             `json:"tenantName" example:"Avery Johnson"`    // Name of the tenant
	Status     models.LeaseStatus `json:"status" example:"active" default:"active"` // Lifecycle state
	FromDate   time.Time          `json:"fromDate"`                              // Start of the lease
	ToDate     *time.Time         `json:"toDate"`                                // End of the lease, unset while active
	ExternalID *int64             `json:"externalId"`                            // ID of the lease in the upstream system
}

func (editable LeaseEditable) model() models.Lease {
	return models.Lease{
		OrgID:      editable.OrgID,
		PropertyID: editable.PropertyID,
		UnitID:     editable.UnitID,
		TenantName: editable.TenantName,
		Status:     editable.Status,
		FromDate:   editable.FromDate,
		ToDate:     editable.ToDate,
		ExternalID: editable.ExternalID,
	}
}

type LeaseResponse struct {
	Data  *models.Lease `json:"data"`  // The lease
	Error *string       `json:"error"` // The error, if any occurred
}

type LeaseListResponse struct {
	Data  []models.Lease `json:"data"`  // List of leases
	Error *string        `json:"error"` // The error, if any occurred
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Leases
// @Success		204
// @Router			/v1/leases [options]
func OptionsLeaseList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Leases
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/leases/{id} [options]
func (co Controller) OptionsLeaseDetail(c *gin.Context) {
	if _, ok := getResourceByID[models.Lease](c, co); !ok {
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		List leases
// @Description	Returns a list of leases
// @Tags			Leases
// @Produce		json
// @Success		200	{object}	LeaseListResponse
// @Failure		400	{object}	LeaseListResponse
// @Failure		500	{object}	LeaseListResponse
// @Router			/v1/leases [get]
// @Param			unit	query	string	false	"Filter by unit ID"
// @Param			status	query	string	false	"Filter by lease status"
func (co Controller) GetLeases(c *gin.Context) {
	q := co.DB.Order("datetime(leases.from_date) DESC")

	if unit := c.Query("unit"); unit != "" {
		unitID, err := httputil.UUIDFromString(unit)
		if err != nil {
			e := err.Error()
			c.JSON(status(err), LeaseListResponse{Error: &e})
			return
		}
		q = q.Where("leases.unit_id = ?", unitID)
	}

	if s := c.Query("status"); s != "" {
		q = q.Where("leases.status = ?", s)
	}

	var leases []models.Lease
	if err := q.Find(&leases).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), LeaseListResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, LeaseListResponse{Data: leases})
}

// @Summary		Get lease
// @Description	Returns a specific lease
// @Tags			Leases
// @Produce		json
// @Success		200	{object}	LeaseResponse
// @Failure		400	{object}	LeaseResponse
// @Failure		404	{object}	LeaseResponse
// @Failure		500	{object}	LeaseResponse
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/leases/{id} [get]
func (co Controller) GetLease(c *gin.Context) {
	lease, ok := getResourceByID[models.Lease](c, co)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, LeaseResponse{Data: &lease})
}

// @Summary		Lease charges
// @Description	Returns the charges of the lease, oldest due date first
// @Tags			Leases
// @Produce		json
// @Success		200	{object}	ChargeListResponse
// @Failure		400	{object}	ChargeListResponse
// @Failure		404	{object}	ChargeListResponse
// @Failure		500	{object}	ChargeListResponse
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/leases/{id}/charges [get]
func (co Controller) GetLeaseCharges(c *gin.Context) {
	lease, ok := getResourceByID[models.Lease](c, co)
	if !ok {
		return
	}

	var charges []models.Charge
	err := co.DB.
		Where("charges.lease_id = ?", lease.ID).
		Order("datetime(charges.due_date) ASC, datetime(charges.created_at) ASC").
		Find(&charges).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ChargeListResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, ChargeListResponse{Data: charges})
}

// @Summary		Create leases
// @Description	Creates new leases
// @Tags			Leases
// @Produce		json
// @Success		201		{object}	LeaseListResponse
// @Failure		400		{object}	LeaseListResponse
// @Failure		500		{object}	LeaseListResponse
// @Param			leases	body		[]LeaseEditable	true	"Leases"
// @Router			/v1/leases [post]
func (co Controller) CreateLeases(c *gin.Context) {
	var editables []LeaseEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), LeaseListResponse{Error: &e})
		return
	}

	leases := make([]models.Lease, 0, len(editables))
	for _, editable := range editables {
		lease := editable.model()
		if err := co.DB.Create(&lease).Error; err != nil {
			e := err.Error()
			c.JSON(status(err), LeaseListResponse{Error: &e})
			return
		}

		leases = append(leases, lease)
	}

	c.JSON(http.StatusCreated, LeaseListResponse{Data: leases})
}

// @Summary		Update lease
// @Description	Updates an existing lease. Only values to be updated need to be specified.
// @Tags			Leases
// @Accept			json
// @Produce		json
// @Success		200		{object}	LeaseResponse
// @Failure		400		{object}	LeaseResponse
// @Failure		404		{object}	LeaseResponse
// @Failure		500		{object}	LeaseResponse
// @Param			id		path		string			true	"ID formatted as string"
// @Param			lease	body		LeaseEditable	true	"Lease"
// @Router			/v1/leases/{id} [patch]
func (co Controller) UpdateLease(c *gin.Context) {
	lease, ok := getResourceByID[models.Lease](c, co)
	if !ok {
		return
	}

	updateFields, err := httputil.GetBodyFields(c, LeaseEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), LeaseResponse{Error: &e})
		return
	}

	var update LeaseEditable
	err = httputil.BindData(c, &update)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), LeaseResponse{Error: &e})
		return
	}

	err = co.DB.Model(&lease).Select("", updateFields...).Updates(update.model()).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), LeaseResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, LeaseResponse{Data: &lease})
}

// @Summary		Delete lease
// @Description	Deletes a lease
// @Tags			Leases
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/leases/{id} [delete]
func (co Controller) DeleteLease(c *gin.Context) {
	lease, ok := getResourceByID[models.Lease](c, co)
	if !ok {
		return
	}

	err := co.DB.Delete(&lease).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
