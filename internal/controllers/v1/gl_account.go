package v1

import (
	"fmt"
	"net/http"

	"github.com/brickledger/backend/internal/httputil"
	"github.com/brickledger/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RegisterGLAccountRoutes registers the routes for GL accounts with
// the RouterGroup that is passed.
func (co Controller) RegisterGLAccountRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsGLAccountList)
		r.GET("", co.GetGLAccounts)
		r.POST("", co.CreateGLAccounts)
	}

	// GL account with ID
	{
		r.OPTIONS("/:id", co.OptionsGLAccountDetail)
		r.GET("/:id", co.GetGLAccount)
		r.PATCH("/:id", co.UpdateGLAccount)
		r.DELETE("/:id", co.DeleteGLAccount)
	}
}

type GLAccountEditable struct {
	OrgID                      uuid.UUID          `json:"orgId" example:"550dc009-cea6-4c12-b2a5-03455eb7b841"` // ID of the organization owning the account
	Name                       string             `json:"name" example:"1010 Operating Checking" default:""`    // Name of the account in the chart of accounts
	Type                       models.AccountType `json:"type" example:"asset" default:"asset"`                 // Fundamental accounting type
	SubType                    string             `json:"subType" example:"CurrentAsset" default:""`            // Free-text subtype from the upstream system
	IsBankAccount              bool               `json:"isBankAccount" example:"true" default:"false"`         // Does the account represent a bank account?
	IsSecurityDepositLiability bool               `json:"isSecurityDepositLiability" default:"false"`           // Does the account hold tenant security deposits?
	ExcludeFromCashBalances    bool               `json:"excludeFromCashBalances" default:"false"`              // Exclude the account from all cash rollups
	ExternalID                 *int64             `json:"externalId" example:"404000"`                          // ID of the account in the upstream system
}

func (editable GLAccountEditable) model() models.GLAccount {
	return models.GLAccount{
		OrgID:                      editable.OrgID,
		Name:                       editable.Name,
		Type:                       editable.Type,
		SubType:                    editable.SubType,
		IsBankAccount:              editable.IsBankAccount,
		IsSecurityDepositLiability: editable.IsSecurityDepositLiability,
		ExcludeFromCashBalances:    editable.ExcludeFromCashBalances,
		ExternalID:                 editable.ExternalID,
	}
}

type GLAccountResponse struct {
	Data  *models.GLAccount `json:"data"`                                                          // The GL account
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type GLAccountListResponse struct {
	Data       []models.GLAccount `json:"data"`                                                          // List of GL accounts
	Error      *string            `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination        `json:"pagination"`                                                    // Pagination information
}

type GLAccountQueryFilter struct {
	OrgID         string `form:"org"`                        // Filter by organization ID
	Name          string `form:"name" filterField:"false"`   // Fuzzy filter for the account name
	Type          string `form:"type"`                       // Filter by account type
	IsBankAccount bool   `form:"isBankAccount"`              // Only bank accounts
	Offset        uint   `form:"offset" filterField:"false"` // The offset of the first GL account returned. Defaults to 0.
	Limit         int    `form:"limit" filterField:"false"`  // Maximum number of GL accounts to return. Defaults to 50.
}

func (f GLAccountQueryFilter) model() (models.GLAccount, error) {
	orgID, err := httputil.UUIDFromString(f.OrgID)
	if err != nil {
		return models.GLAccount{}, err
	}

	return models.GLAccount{
		OrgID:         orgID,
		Type:          models.AccountType(f.Type),
		IsBankAccount: f.IsBankAccount,
	}, nil
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			GLAccounts
// @Success		204
// @Router			/v1/gl-accounts [options]
func OptionsGLAccountList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			GLAccounts
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/gl-accounts/{id} [options]
func (co Controller) OptionsGLAccountDetail(c *gin.Context) {
	if _, ok := getResourceByID[models.GLAccount](c, co); !ok {
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		List GL accounts
// @Description	Returns a list of GL accounts
// @Tags			GLAccounts
// @Produce		json
// @Success		200	{object}	GLAccountListResponse
// @Failure		400	{object}	GLAccountListResponse
// @Failure		500	{object}	GLAccountListResponse
// @Router			/v1/gl-accounts [get]
// @Param			org				query	string	false	"Filter by organization ID"
// @Param			name			query	string	false	"Fuzzy filter for the account name"
// @Param			type			query	string	false	"Filter by account type"
// @Param			isBankAccount	query	bool	false	"Only bank accounts"
// @Param			offset			query	uint	false	"The offset of the first GL account returned. Defaults to 0."
// @Param			limit			query	int		false	"Maximum number of GL accounts to return. Defaults to 50."
func (co Controller) GetGLAccounts(c *gin.Context) {
	var filter GLAccountQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, GLAccountListResponse{Error: &s})
		return
	}

	queryFields, _ := httputil.GetURLFields(c.Request.URL, filter)

	model, err := filter.model()
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GLAccountListResponse{Error: &e})
		return
	}

	q := co.DB.
		Order("gl_accounts.name ASC").
		Where(&model, queryFields...)

	if filter.Name != "" {
		q = q.Where("gl_accounts.name LIKE ?", fmt.Sprintf("%%%s%%", filter.Name))
	}

	offset, limit := paginate(c)
	q = q.Offset(int(offset)).Limit(limit)

	var accounts []models.GLAccount
	err = q.Find(&accounts).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GLAccountListResponse{Error: &e})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GLAccountListResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, GLAccountListResponse{
		Data: accounts,
		Pagination: &Pagination{
			Count:  len(accounts),
			Total:  count,
			Offset: offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get GL account
// @Description	Returns a specific GL account
// @Tags			GLAccounts
// @Produce		json
// @Success		200	{object}	GLAccountResponse
// @Failure		400	{object}	GLAccountResponse
// @Failure		404	{object}	GLAccountResponse
// @Failure		500	{object}	GLAccountResponse
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/gl-accounts/{id} [get]
func (co Controller) GetGLAccount(c *gin.Context) {
	account, ok := getResourceByID[models.GLAccount](c, co)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, GLAccountResponse{Data: &account})
}

// @Summary		Create GL accounts
// @Description	Creates new GL accounts
// @Tags			GLAccounts
// @Produce		json
// @Success		201			{object}	GLAccountListResponse
// @Failure		400			{object}	GLAccountListResponse
// @Failure		500			{object}	GLAccountListResponse
// @Param			glAccounts	body		[]GLAccountEditable	true	"GL accounts"
// @Router			/v1/gl-accounts [post]
func (co Controller) CreateGLAccounts(c *gin.Context) {
	var editables []GLAccountEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GLAccountListResponse{Error: &e})
		return
	}

	accounts := make([]models.GLAccount, 0, len(editables))
	for _, editable := range editables {
		account := editable.model()
		if err := co.DB.Create(&account).Error; err != nil {
			e := err.Error()
			c.JSON(status(err), GLAccountListResponse{Error: &e})
			return
		}

		accounts = append(accounts, account)
	}

	c.JSON(http.StatusCreated, GLAccountListResponse{Data: accounts})
}

// @Summary		Update GL account
// @Description	Updates an existing GL account. Only values to be updated need to be specified.
// @Tags			GLAccounts
// @Accept			json
// @Produce		json
// @Success		200			{object}	GLAccountResponse
// @Failure		400			{object}	GLAccountResponse
// @Failure		404			{object}	GLAccountResponse
// @Failure		500			{object}	GLAccountResponse
// @Param			id			path		string				true	"ID formatted as string"
// @Param			glAccount	body		GLAccountEditable	true	"GL account"
// @Router			/v1/gl-accounts/{id} [patch]
func (co Controller) UpdateGLAccount(c *gin.Context) {
	account, ok := getResourceByID[models.GLAccount](c, co)
	if !ok {
		return
	}

	updateFields, err := httputil.GetBodyFields(c, GLAccountEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GLAccountResponse{Error: &e})
		return
	}

	var update GLAccountEditable
	err = httputil.BindData(c, &update)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GLAccountResponse{Error: &e})
		return
	}

	err = co.DB.Model(&account).Select("", updateFields...).Updates(update.model()).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GLAccountResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, GLAccountResponse{Data: &account})
}

// @Summary		Delete GL account
// @Description	Deletes a GL account
// @Tags			GLAccounts
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/gl-accounts/{id} [delete]
func (co Controller) DeleteGLAccount(c *gin.Context) {
	account, ok := getResourceByID[models.GLAccount](c, co)
	if !ok {
		return
	}

	err := co.DB.Delete(&account).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
