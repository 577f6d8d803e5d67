package v1

import (
	"net/http"

	"github.com/brickledger/backend/internal/httputil"
	"github.com/brickledger/backend/internal/ledger"
	"github.com/brickledger/backend/internal/models"
	"github.com/brickledger/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RegisterPeriodRoutes registers the routes for monthly periods with
// the RouterGroup that is passed.
func (co Controller) RegisterPeriodRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsPeriodList)
		r.GET("", co.GetPeriods)
		r.POST("", co.CreatePeriods)
	}

	// Period with ID
	{
		r.OPTIONS("/:id", co.OptionsPeriodDetail)
		r.GET("/:id", co.GetPeriod)
		r.GET("/:id/summary", co.GetPeriodSummary)
		r.POST("/:id/refresh", co.RefreshPeriod)
		r.POST("/:id/reconcile", co.ReconcilePeriod)
		r.PATCH("/:id", co.UpdatePeriod)
		r.DELETE("/:id", co.DeletePeriod)
	}
}

// PeriodEditable only exposes the identity and the review stage. The
// aggregate columns are recomputed, not written by clients.
type PeriodEditable struct {
	OrgID      uuid.UUID          `json:"orgId"`                                        // ID of the organization
	PropertyID uuid.UUID          `json:"propertyId"`                                   // ID of the property
	UnitID     uuid.UUID          `json:"unitId"`                                       // ID of the unit the period belongs to
	Month      types.Month        `json:"month" example:"2026-02-01T00:00:00Z"`         // The month, always the first day
	Stage      models.PeriodStage `json:"stage" example:"open" default:"open"`          // Review state of the period
}

func (editable PeriodEditable) model() models.MonthlyPeriod {
	return models.MonthlyPeriod{
		OrgID:      editable.OrgID,
		PropertyID: editable.PropertyID,
		UnitID:     editable.UnitID,
		Month:      editable.Month,
		Stage:      editable.Stage,
	}
}

type PeriodResponse struct {
	Data  *models.MonthlyPeriod `json:"data"`  // The monthly period
	Error *string               `json:"error"` // The error, if any occurred
}

type PeriodListResponse struct {
	Data  []models.MonthlyPeriod `json:"data"`  // List of monthly periods
	Error *string                `json:"error"` // The error, if any occurred
}

type PeriodSummaryResponse struct {
	Data  *ledger.PeriodSummary `json:"data"`  // The recomputed summary
	Error *string               `json:"error"` // The error, if any occurred
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Periods
// @Success		204
// @Router			/v1/periods [options]
func OptionsPeriodList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Periods
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/periods/{id} [options]
func (co Controller) OptionsPeriodDetail(c *gin.Context) {
	if _, ok := getResourceByID[models.MonthlyPeriod](c, co); !ok {
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		List periods
// @Description	Returns a list of monthly periods, newest month first
// @Tags			Periods
// @Produce		json
// @Success		200	{object}	PeriodListResponse
// @Failure		400	{object}	PeriodListResponse
// @Failure		500	{object}	PeriodListResponse
// @Router			/v1/periods [get]
// @Param			property	query	string	false	"Filter by property ID"
// @Param			unit		query	string	false	"Filter by unit ID"
// @Param			month		query	string	false	"Filter by month, e.g. 2026-02"
func (co Controller) GetPeriods(c *gin.Context) {
	q := co.DB.Order("datetime(monthly_periods.month) DESC")

	if property := c.Query("property"); property != "" {
		propertyID, err := httputil.UUIDFromString(property)
		if err != nil {
			e := err.Error()
			c.JSON(status(err), PeriodListResponse{Error: &e})
			return
		}
		q = q.Where("monthly_periods.property_id = ?", propertyID)
	}

	if unit := c.Query("unit"); unit != "" {
		unitID, err := httputil.UUIDFromString(unit)
		if err != nil {
			e := err.Error()
			c.JSON(status(err), PeriodListResponse{Error: &e})
			return
		}
		q = q.Where("monthly_periods.unit_id = ?", unitID)
	}

	if raw := c.Query("month"); raw != "" {
		month, err := types.ParseMonth(raw)
		if err != nil {
			e := httputil.ErrInvalidMonth.Error()
			c.JSON(http.StatusBadRequest, PeriodListResponse{Error: &e})
			return
		}
		q = q.Where("monthly_periods.month = ?", month)
	}

	var periods []models.MonthlyPeriod
	if err := q.Find(&periods).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), PeriodListResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, PeriodListResponse{Data: periods})
}

// @Summary		Get period
// @Description	Returns a specific monthly period
// @Tags			Periods
// @Produce		json
// @Success		200	{object}	PeriodResponse
// @Failure		400	{object}	PeriodResponse
// @Failure		404	{object}	PeriodResponse
// @Failure		500	{object}	PeriodResponse
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/periods/{id} [get]
func (co Controller) GetPeriod(c *gin.Context) {
	period, ok := getResourceByID[models.MonthlyPeriod](c, co)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, PeriodResponse{Data: &period})
}

// @Summary		Period summary
// @Description	Recomputes the financial summary of the period from the tagged transactions without persisting it
// @Tags			Periods
// @Produce		json
// @Success		200	{object}	PeriodSummaryResponse
// @Failure		400	{object}	PeriodSummaryResponse
// @Failure		404	{object}	PeriodSummaryResponse
// @Failure		500	{object}	PeriodSummaryResponse
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/periods/{id}/summary [get]
func (co Controller) GetPeriodSummary(c *gin.Context) {
	period, ok := getResourceByID[models.MonthlyPeriod](c, co)
	if !ok {
		return
	}

	summary, err := ledger.Summarize(co.DB, period.ID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PeriodSummaryResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, PeriodSummaryResponse{Data: &summary})
}

// @Summary		Refresh period
// @Description	Recomputes the summary of the period and persists the denormalized columns
// @Tags			Periods
// @Produce		json
// @Success		200	{object}	PeriodResponse
// @Failure		400	{object}	PeriodResponse
// @Failure		404	{object}	PeriodResponse
// @Failure		500	{object}	PeriodResponse
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/periods/{id}/refresh [post]
func (co Controller) RefreshPeriod(c *gin.Context) {
	period, ok := getResourceByID[models.MonthlyPeriod](c, co)
	if !ok {
		return
	}

	if err := ledger.Refresh(co.DB, period.ID); err != nil {
		e := err.Error()
		c.JSON(status(err), PeriodResponse{Error: &e})
		return
	}

	if err := co.DB.First(&period, "id = ?", period.ID).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), PeriodResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, PeriodResponse{Data: &period})
}

// @Summary		Reconcile period
// @Description	Recomputes the carry-forward balance from the charges still outstanding at the start of the period and persists the corrected summary
// @Tags			Periods
// @Produce		json
// @Success		200	{object}	PeriodResponse
// @Failure		400	{object}	PeriodResponse
// @Failure		404	{object}	PeriodResponse
// @Failure		500	{object}	PeriodResponse
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/periods/{id}/reconcile [post]
func (co Controller) ReconcilePeriod(c *gin.Context) {
	period, ok := getResourceByID[models.MonthlyPeriod](c, co)
	if !ok {
		return
	}

	if err := ledger.Reconcile(co.DB, period.ID); err != nil {
		e := err.Error()
		c.JSON(status(err), PeriodResponse{Error: &e})
		return
	}

	if err := co.DB.First(&period, "id = ?", period.ID).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), PeriodResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, PeriodResponse{Data: &period})
}

// @Summary		Create periods
// @Description	Creates new monthly periods. A unit can only have one period per month.
// @Tags			Periods
// @Produce		json
// @Success		201		{object}	PeriodListResponse
// @Failure		400		{object}	PeriodListResponse
// @Failure		500		{object}	PeriodListResponse
// @Param			periods	body		[]PeriodEditable	true	"Periods"
// @Router			/v1/periods [post]
func (co Controller) CreatePeriods(c *gin.Context) {
	var editables []PeriodEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PeriodListResponse{Error: &e})
		return
	}

	periods := make([]models.MonthlyPeriod, 0, len(editables))
	for _, editable := range editables {
		period := editable.model()
		if err := co.DB.Create(&period).Error; err != nil {
			e := err.Error()
			c.JSON(status(err), PeriodListResponse{Error: &e})
			return
		}

		periods = append(periods, period)
	}

	c.JSON(http.StatusCreated, PeriodListResponse{Data: periods})
}

// @Summary		Update period
// @Description	Updates the review stage of a period. Only values to be updated need to be specified.
// @Tags			Periods
// @Accept			json
// @Produce		json
// @Success		200		{object}	PeriodResponse
// @Failure		400		{object}	PeriodResponse
// @Failure		404		{object}	PeriodResponse
// @Failure		500		{object}	PeriodResponse
// @Param			id		path		string			true	"ID formatted as string"
// @Param			period	body		PeriodEditable	true	"Period"
// @Router			/v1/periods/{id} [patch]
func (co Controller) UpdatePeriod(c *gin.Context) {
	period, ok := getResourceByID[models.MonthlyPeriod](c, co)
	if !ok {
		return
	}

	updateFields, err := httputil.GetBodyFields(c, PeriodEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PeriodResponse{Error: &e})
		return
	}

	var update PeriodEditable
	err = httputil.BindData(c, &update)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PeriodResponse{Error: &e})
		return
	}

	err = co.DB.Model(&period).Select("", updateFields...).Updates(update.model()).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PeriodResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, PeriodResponse{Data: &period})
}

// @Summary		Delete period
// @Description	Deletes a monthly period
// @Tags			Periods
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/periods/{id} [delete]
func (co Controller) DeletePeriod(c *gin.Context) {
	period, ok := getResourceByID[models.MonthlyPeriod](c, co)
	if !ok {
		return
	}

	err := co.DB.Delete(&period).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
