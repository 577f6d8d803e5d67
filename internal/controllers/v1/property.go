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

// RegisterPropertyRoutes registers the routes for properties with
// the RouterGroup that is passed.
func (co Controller) RegisterPropertyRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsPropertyList)
		r.GET("", co.GetProperties)
		r.POST("", co.CreateProperties)
	}

	// Property with ID
	{
		r.OPTIONS("/:id", co.OptionsPropertyDetail)
		r.GET("/:id", co.GetProperty)
		r.GET("/:id/rollup", co.GetPropertyRollup)
		r.PATCH("/:id", co.UpdateProperty)
		r.DELETE("/:id", co.DeleteProperty)
	}
}

type PropertyEditable struct {
	OrgID                  uuid.UUID       `json:"orgId"`                                      // ID of the organization managing the property
	Name                   string          `json:"name" example:"Maple Street 12" default:""`  // Name of the property
	Address                string          `json:"address" default:""`                         // Street address
	Reserve                decimal.Decimal `json:"reserve" example:"500.00" default:"0"`       // Reserve withheld from the available balance
	OperatingBankAccountID *uuid.UUID      `json:"operatingBankAccountId"`                     // GL account for operating funds
	DepositTrustAccountID  *uuid.UUID      `json:"depositTrustAccountId"`                      // GL account for escrowed funds
}

func (editable PropertyEditable) model() models.Property {
	return models.Property{
		OrgID:                  editable.OrgID,
		Name:                   editable.Name,
		Address:                editable.Address,
		Reserve:                editable.Reserve,
		OperatingBankAccountID: editable.OperatingBankAccountID,
		DepositTrustAccountID:  editable.DepositTrustAccountID,
	}
}

type PropertyResponse struct {
	Data  *models.Property `json:"data"`  // The property
	Error *string          `json:"error"` // The error, if any occurred
}

type PropertyListResponse struct {
	Data       []models.Property `json:"data"`       // List of properties
	Error      *string           `json:"error"`      // The error, if any occurred
	Pagination *Pagination       `json:"pagination"` // Pagination information
}

type RollupResponse struct {
	Data  *ledger.Rollup `json:"data"`  // The rollup
	Error *string        `json:"error"` // The error, if any occurred
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Properties
// @Success		204
// @Router			/v1/properties [options]
func OptionsPropertyList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Properties
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/properties/{id} [options]
func (co Controller) OptionsPropertyDetail(c *gin.Context) {
	if _, ok := getResourceByID[models.Property](c, co); !ok {
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		List properties
// @Description	Returns a list of properties
// @Tags			Properties
// @Produce		json
// @Success		200	{object}	PropertyListResponse
// @Failure		400	{object}	PropertyListResponse
// @Failure		500	{object}	PropertyListResponse
// @Router			/v1/properties [get]
// @Param			org		query	string	false	"Filter by organization ID"
// @Param			offset	query	uint	false	"The offset of the first property returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of properties to return. Defaults to 50."
func (co Controller) GetProperties(c *gin.Context) {
	q := co.DB.Order("properties.name ASC")

	if org := c.Query("org"); org != "" {
		orgID, err := httputil.UUIDFromString(org)
		if err != nil {
			e := err.Error()
			c.JSON(status(err), PropertyListResponse{Error: &e})
			return
		}
		q = q.Where("properties.org_id = ?", orgID)
	}

	offset, limit := paginate(c)
	q = q.Offset(int(offset)).Limit(limit)

	var properties []models.Property
	if err := q.Find(&properties).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), PropertyListResponse{Error: &e})
		return
	}

	var count int64
	if err := q.Limit(-1).Offset(-1).Count(&count).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), PropertyListResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, PropertyListResponse{
		Data: properties,
		Pagination: &Pagination{
			Count:  len(properties),
			Total:  count,
			Offset: offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get property
// @Description	Returns a specific property
// @Tags			Properties
// @Produce		json
// @Success		200	{object}	PropertyResponse
// @Failure		400	{object}	PropertyResponse
// @Failure		404	{object}	PropertyResponse
// @Failure		500	{object}	PropertyResponse
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/properties/{id} [get]
func (co Controller) GetProperty(c *gin.Context) {
	property, ok := getResourceByID[models.Property](c, co)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, PropertyResponse{Data: &property})
}

// @Summary		Property rollup
// @Description	Computes the financial position of a property: cash balance, held deposits, prepayments and the available balance after the reserve.
// @Tags			Properties
// @Produce		json
// @Success		200	{object}	RollupResponse
// @Failure		400	{object}	RollupResponse
// @Failure		404	{object}	RollupResponse
// @Failure		500	{object}	RollupResponse
// @Param			id					path	string	true	"ID formatted as string"
// @Param			asOf				query	string	false	"Point in time for the rollup, YYYY-MM-DD. Defaults to now."
// @Param			includePrepayments	query	bool	false	"Add the prepayment balance to the available balance"
// @Param			restrictPrepayments	query	bool	false	"Only count prepayment lines of cash receipt transactions"
// @Router			/v1/properties/{id}/rollup [get]
func (co Controller) GetPropertyRollup(c *gin.Context) {
	property, ok := getResourceByID[models.Property](c, co)
	if !ok {
		return
	}

	asOf := time.Now().In(time.UTC)
	if raw := c.Query("asOf"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			e := httputil.ErrInvalidDate.Error()
			c.JSON(http.StatusBadRequest, RollupResponse{Error: &e})
			return
		}
		asOf = parsed
	}

	options := ledger.RollupOptions{
		IncludePrepayments:  c.Query("includePrepayments") == "true",
		RestrictPrepayments: c.Query("restrictPrepayments") == "true",
	}

	rollup, err := ledger.ForProperty(co.DB, property.ID, asOf, options)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RollupResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, RollupResponse{Data: &rollup})
}

// @Summary		Create properties
// @Description	Creates new properties
// @Tags			Properties
// @Produce		json
// @Success		201			{object}	PropertyListResponse
// @Failure		400			{object}	PropertyListResponse
// @Failure		500			{object}	PropertyListResponse
// @Param			properties	body		[]PropertyEditable	true	"Properties"
// @Router			/v1/properties [post]
func (co Controller) CreateProperties(c *gin.Context) {
	var editables []PropertyEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PropertyListResponse{Error: &e})
		return
	}

	properties := make([]models.Property, 0, len(editables))
	for _, editable := range editables {
		property := editable.model()
		if err := co.DB.Create(&property).Error; err != nil {
			e := err.Error()
			c.JSON(status(err), PropertyListResponse{Error: &e})
			return
		}

		properties = append(properties, property)
	}

	c.JSON(http.StatusCreated, PropertyListResponse{Data: properties})
}

// @Summary		Update property
// @Description	Updates an existing property. Only values to be updated need to be specified.
// @Tags			Properties
// @Accept			json
// @Produce		json
// @Success		200			{object}	PropertyResponse
// @Failure		400			{object}	PropertyResponse
// @Failure		404			{object}	PropertyResponse
// @Failure		500			{object}	PropertyResponse
// @Param			id			path		string				true	"ID formatted as string"
// @Param			property	body		PropertyEditable	true	"Property"
// @Router			/v1/properties/{id} [patch]
func (co Controller) UpdateProperty(c *gin.Context) {
	property, ok := getResourceByID[models.Property](c, co)
	if !ok {
		return
	}

	updateFields, err := httputil.GetBodyFields(c, PropertyEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PropertyResponse{Error: &e})
		return
	}

	var update PropertyEditable
	err = httputil.BindData(c, &update)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PropertyResponse{Error: &e})
		return
	}

	err = co.DB.Model(&property).Select("", updateFields...).Updates(update.model()).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PropertyResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, PropertyResponse{Data: &property})
}

// @Summary		Delete property
// @Description	Deletes a property
// @Tags			Properties
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/properties/{id} [delete]
func (co Controller) DeleteProperty(c *gin.Context) {
	property, ok := getResourceByID[models.Property](c, co)
	if !ok {
		return
	}

	err := co.DB.Delete(&property).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
