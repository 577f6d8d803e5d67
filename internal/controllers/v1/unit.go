package v1

import (
	"net/http"
	"time"

	"github.com/brickledger/backend/internal/httputil"
	"github.com/brickledger/backend/internal/ledger"
	"github.com/brickledger/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RegisterUnitRoutes registers the routes for units with the
// RouterGroup that is passed.
func (co Controller) RegisterUnitRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsUnitList)
		r.GET("", co.GetUnits)
		r.POST("", co.CreateUnits)
	}

	// Unit with ID
	{
		r.OPTIONS("/:id", co.OptionsUnitDetail)
		r.GET("/:id", co.GetUnit)
		r.GET("/:id/escrow-balance", co.GetUnitEscrowBalance)
		r.GET("/:id/escrow-movements", co.GetUnitEscrowMovements)
		r.PATCH("/:id", co.UpdateUnit)
		r.DELETE("/:id", co.DeleteUnit)
	}
}

type UnitEditable struct {
	OrgID      uuid.UUID `json:"orgId"`                           // ID of the organization
	PropertyID uuid.UUID `json:"propertyId"`                      // ID of the property the unit belongs to
	Name       string    `json:"name" example:"Apt 3B" default:""` // Name of the unit
}

func (editable UnitEditable) model() models.Unit {
	return models.Unit{
		OrgID:      editable.OrgID,
		PropertyID: editable.PropertyID,
		Name:       editable.Name,
	}
}

type UnitResponse struct {
	Data  *models.Unit `json:"data"`  // The unit
	Error *string      `json:"error"` // The error, if any occurred
}

type UnitListResponse struct {
	Data  []models.Unit `json:"data"`  // List of units
	Error *string       `json:"error"` // The error, if any occurred
}

type EscrowBalanceResponse struct {
	Data  *ledger.EscrowBalance `json:"data"`  // The escrow balance
	Error *string               `json:"error"` // The error, if any occurred
}

type EscrowMovementListResponse struct {
	Data  []ledger.EscrowMovement `json:"data"`  // List of escrow movements
	Error *string                 `json:"error"` // The error, if any occurred
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Units
// @Success		204
// @Router			/v1/units [options]
func OptionsUnitList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Units
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/units/{id} [options]
func (co Controller) OptionsUnitDetail(c *gin.Context) {
	if _, ok := getResourceByID[models.Unit](c, co); !ok {
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		List units
// @Description	Returns a list of units
// @Tags			Units
// @Produce		json
// @Success		200	{object}	UnitListResponse
// @Failure		400	{object}	UnitListResponse
// @Failure		500	{object}	UnitListResponse
// @Router			/v1/units [get]
// @Param			property	query	string	false	"Filter by property ID"
func (co Controller) GetUnits(c *gin.Context) {
	q := co.DB.Order("units.name ASC")

	if property := c.Query("property"); property != "" {
		propertyID, err := httputil.UUIDFromString(property)
		if err != nil {
			e := err.Error()
			c.JSON(status(err), UnitListResponse{Error: &e})
			return
		}
		q = q.Where("units.property_id = ?", propertyID)
	}

	var units []models.Unit
	if err := q.Find(&units).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), UnitListResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, UnitListResponse{Data: units})
}

// @Summary		Get unit
// @Description	Returns a specific unit
// @Tags			Units
// @Produce		json
// @Success		200	{object}	UnitResponse
// @Failure		400	{object}	UnitResponse
// @Failure		404	{object}	UnitResponse
// @Failure		500	{object}	UnitResponse
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/units/{id} [get]
func (co Controller) GetUnit(c *gin.Context) {
	unit, ok := getResourceByID[models.Unit](c, co)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, UnitResponse{Data: &unit})
}

// @Summary		Unit escrow balance
// @Description	Returns the escrow position of the unit: deposits, withdrawals and the held balance.
// @Tags			Units
// @Produce		json
// @Success		200	{object}	EscrowBalanceResponse
// @Failure		400	{object}	EscrowBalanceResponse
// @Failure		404	{object}	EscrowBalanceResponse
// @Failure		500	{object}	EscrowBalanceResponse
// @Param			id		path	string	true	"ID formatted as string"
// @Param			asOf	query	string	false	"Point in time for the balance, YYYY-MM-DD. Defaults to now."
// @Router			/v1/units/{id}/escrow-balance [get]
func (co Controller) GetUnitEscrowBalance(c *gin.Context) {
	unit, ok := getResourceByID[models.Unit](c, co)
	if !ok {
		return
	}

	asOf := time.Now().In(time.UTC)
	if raw := c.Query("asOf"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			e := httputil.ErrInvalidDate.Error()
			c.JSON(http.StatusBadRequest, EscrowBalanceResponse{Error: &e})
			return
		}
		asOf = parsed
	}

	balance, err := ledger.BalanceForUnit(co.DB, unit.ID, asOf)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EscrowBalanceResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, EscrowBalanceResponse{Data: &balance})
}

// @Summary		Unit escrow movements
// @Description	Lists the escrow postings of the unit, oldest first
// @Tags			Units
// @Produce		json
// @Success		200	{object}	EscrowMovementListResponse
// @Failure		400	{object}	EscrowMovementListResponse
// @Failure		404	{object}	EscrowMovementListResponse
// @Failure		500	{object}	EscrowMovementListResponse
// @Param			id			path	string	true	"ID formatted as string"
// @Param			fromDate	query	string	false	"Movements at and after this date, YYYY-MM-DD"
// @Param			untilDate	query	string	false	"Movements before and at this date, YYYY-MM-DD"
// @Router			/v1/units/{id}/escrow-movements [get]
func (co Controller) GetUnitEscrowMovements(c *gin.Context) {
	unit, ok := getResourceByID[models.Unit](c, co)
	if !ok {
		return
	}

	var from, until time.Time
	var err error

	if raw := c.Query("fromDate"); raw != "" {
		from, err = time.Parse("2006-01-02", raw)
		if err != nil {
			e := httputil.ErrInvalidDate.Error()
			c.JSON(http.StatusBadRequest, EscrowMovementListResponse{Error: &e})
			return
		}
	}

	if raw := c.Query("untilDate"); raw != "" {
		until, err = time.Parse("2006-01-02", raw)
		if err != nil {
			e := httputil.ErrInvalidDate.Error()
			c.JSON(http.StatusBadRequest, EscrowMovementListResponse{Error: &e})
			return
		}
	}

	movements, err := ledger.MovementsForUnit(co.DB, unit.ID, from, until)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EscrowMovementListResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, EscrowMovementListResponse{Data: movements})
}

// @Summary		Create units
// @Description	Creates new units
// @Tags			Units
// @Produce		json
// @Success		201		{object}	UnitListResponse
// @Failure		400		{object}	UnitListResponse
// @Failure		500		{object}	UnitListResponse
// @Param			units	body		[]UnitEditable	true	"Units"
// @Router			/v1/units [post]
func (co Controller) CreateUnits(c *gin.Context) {
	var editables []UnitEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), UnitListResponse{Error: &e})
		return
	}

	units := make([]models.Unit, 0, len(editables))
	for _, editable := range editables {
		unit := editable.model()
		if err := co.DB.Create(&unit).Error; err != nil {
			e := err.Error()
			c.JSON(status(err), UnitListResponse{Error: &e})
			return
		}

		units = append(units, unit)
	}

	c.JSON(http.StatusCreated, UnitListResponse{Data: units})
}

// @Summary		Update unit
// @Description	Updates an existing unit. Only values to be updated need to be specified.
// @Tags			Units
// @Accept			json
// @Produce		json
// @Success		200		{object}	UnitResponse
// @Failure		400		{object}	UnitResponse
// @Failure		404		{object}	UnitResponse
// @Failure		500		{object}	UnitResponse
// @Param			id		path		string			true	"ID formatted as string"
// @Param			unit	body		UnitEditable	true	"Unit"
// @Router			/v1/units/{id} [patch]
func (co Controller) UpdateUnit(c *gin.Context) {
	unit, ok := getResourceByID[models.Unit](c, co)
	if !ok {
		return
	}

	updateFields, err := httputil.GetBodyFields(c, UnitEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), UnitResponse{Error: &e})
		return
	}

	var update UnitEditable
	err = httputil.BindData(c, &update)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), UnitResponse{Error: &e})
		return
	}

	err = co.DB.Model(&unit).Select("", updateFields...).Updates(update.model()).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), UnitResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, UnitResponse{Data: &unit})
}

// @Summary		Delete unit
// @Description	Deletes a unit
// @Tags			Units
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/units/{id} [delete]
func (co Controller) DeleteUnit(c *gin.Context) {
	unit, ok := getResourceByID[models.Unit](c, co)
	if !ok {
		return
	}

	err := co.DB.Delete(&unit).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
