package v1

import (
	"net/http"

	"github.com/brickledger/backend/internal/httputil"
	"github.com/brickledger/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RegisterAccountMappingRoutes registers the routes for account
// mappings with the RouterGroup that is passed.
func (co Controller) RegisterAccountMappingRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsAccountMappingList)
		r.GET("", co.GetAccountMappings)
		r.POST("", co.CreateAccountMappings)
	}

	// Account mapping with ID
	{
		r.OPTIONS("/:id", co.OptionsAccountMappingDetail)
		r.GET("/:id", co.GetAccountMapping)
		r.PATCH("/:id", co.UpdateAccountMapping)
		r.DELETE("/:id", co.DeleteAccountMapping)
	}
}

type AccountMappingEditable struct {
	OrgID    uuid.UUID          `json:"orgId"`                                               // ID of the organization the mapping belongs to
	Role     models.AccountRole `json:"role" example:"operating_bank"`                       // The account role this mapping resolves
	Match    string             `json:"match" example:"*Operating*"`                         // Glob pattern matched against GL account names
	Priority uint               `json:"priority" example:"0" default:"0" minimum:"0"`        // Lower priority values are tried first
}

func (editable AccountMappingEditable) model() models.AccountMapping {
	return models.AccountMapping{
		OrgID:    editable.OrgID,
		Role:     editable.Role,
		Match:    editable.Match,
		Priority: editable.Priority,
	}
}

type AccountMappingResponse struct {
	Data  *models.AccountMapping `json:"data"`  // The account mapping
	Error *string                `json:"error"` // The error, if any occurred
}

type AccountMappingListResponse struct {
	Data  []models.AccountMapping `json:"data"`  // List of account mappings
	Error *string                 `json:"error"` // The error, if any occurred
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			AccountMappings
// @Success		204
// @Router			/v1/account-mappings [options]
func OptionsAccountMappingList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			AccountMappings
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/account-mappings/{id} [options]
func (co Controller) OptionsAccountMappingDetail(c *gin.Context) {
	if _, ok := getResourceByID[models.AccountMapping](c, co); !ok {
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		List account mappings
// @Description	Returns a list of account mappings
// @Tags			AccountMappings
// @Produce		json
// @Success		200	{object}	AccountMappingListResponse
// @Failure		400	{object}	AccountMappingListResponse
// @Failure		500	{object}	AccountMappingListResponse
// @Router			/v1/account-mappings [get]
// @Param			org		query	string	false	"Filter by organization ID"
// @Param			role	query	string	false	"Filter by account role"
func (co Controller) GetAccountMappings(c *gin.Context) {
	var filter struct {
		OrgID string `form:"org"`
		Role  string `form:"role"`
	}
	if err := c.Bind(&filter); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, AccountMappingListResponse{Error: &e})
		return
	}

	q := co.DB.Order("account_mappings.priority ASC, account_mappings.created_at ASC")

	if filter.OrgID != "" {
		orgID, err := httputil.UUIDFromString(filter.OrgID)
		if err != nil {
			e := err.Error()
			c.JSON(status(err), AccountMappingListResponse{Error: &e})
			return
		}
		q = q.Where("account_mappings.org_id = ?", orgID)
	}

	if filter.Role != "" {
		q = q.Where("account_mappings.role = ?", filter.Role)
	}

	var mappings []models.AccountMapping
	if err := q.Find(&mappings).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), AccountMappingListResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, AccountMappingListResponse{Data: mappings})
}

// @Summary		Get account mapping
// @Description	Returns a specific account mapping
// @Tags			AccountMappings
// @Produce		json
// @Success		200	{object}	AccountMappingResponse
// @Failure		400	{object}	AccountMappingResponse
// @Failure		404	{object}	AccountMappingResponse
// @Failure		500	{object}	AccountMappingResponse
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/account-mappings/{id} [get]
func (co Controller) GetAccountMapping(c *gin.Context) {
	mapping, ok := getResourceByID[models.AccountMapping](c, co)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, AccountMappingResponse{Data: &mapping})
}

// @Summary		Create account mappings
// @Description	Creates new account mappings
// @Tags			AccountMappings
// @Produce		json
// @Success		201			{object}	AccountMappingListResponse
// @Failure		400			{object}	AccountMappingListResponse
// @Failure		500			{object}	AccountMappingListResponse
// @Param			mappings	body		[]AccountMappingEditable	true	"Account mappings"
// @Router			/v1/account-mappings [post]
func (co Controller) CreateAccountMappings(c *gin.Context) {
	var editables []AccountMappingEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AccountMappingListResponse{Error: &e})
		return
	}

	mappings := make([]models.AccountMapping, 0, len(editables))
	for _, editable := range editables {
		mapping := editable.model()
		if err := co.DB.Create(&mapping).Error; err != nil {
			e := err.Error()
			c.JSON(status(err), AccountMappingListResponse{Error: &e})
			return
		}

		mappings = append(mappings, mapping)
	}

	c.JSON(http.StatusCreated, AccountMappingListResponse{Data: mappings})
}

// @Summary		Update account mapping
// @Description	Updates an existing account mapping. Only values to be updated need to be specified.
// @Tags			AccountMappings
// @Accept			json
// @Produce		json
// @Success		200		{object}	AccountMappingResponse
// @Failure		400		{object}	AccountMappingResponse
// @Failure		404		{object}	AccountMappingResponse
// @Failure		500		{object}	AccountMappingResponse
// @Param			id		path		string					true	"ID formatted as string"
// @Param			mapping	body		AccountMappingEditable	true	"Account mapping"
// @Router			/v1/account-mappings/{id} [patch]
func (co Controller) UpdateAccountMapping(c *gin.Context) {
	mapping, ok := getResourceByID[models.AccountMapping](c, co)
	if !ok {
		return
	}

	updateFields, err := httputil.GetBodyFields(c, AccountMappingEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AccountMappingResponse{Error: &e})
		return
	}

	var update AccountMappingEditable
	err = httputil.BindData(c, &update)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AccountMappingResponse{Error: &e})
		return
	}

	err = co.DB.Model(&mapping).Select("", updateFields...).Updates(update.model()).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AccountMappingResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, AccountMappingResponse{Data: &mapping})
}

// @Summary		Delete account mapping
// @Description	Deletes an account mapping
// @Tags			AccountMappings
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/account-mappings/{id} [delete]
func (co Controller) DeleteAccountMapping(c *gin.Context) {
	mapping, ok := getResourceByID[models.AccountMapping](c, co)
	if !ok {
		return
	}

	err := co.DB.Delete(&mapping).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
