package v1

import (
	"net/http"

	"github.com/brickledger/backend/internal/httputil"
	"github.com/brickledger/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RegisterVendorRoutes registers the routes for vendors with the
// RouterGroup that is passed.
func (co Controller) RegisterVendorRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsVendorList)
		r.GET("", co.GetVendors)
		r.POST("", co.CreateVendors)
	}

	// Vendor with ID
	{
		r.OPTIONS("/:id", co.OptionsVendorDetail)
		r.GET("/:id", co.GetVendor)
		r.PATCH("/:id", co.UpdateVendor)
		r.DELETE("/:id", co.DeleteVendor)
	}
}

type VendorEditable struct {
	OrgID      uuid.UUID `json:"orgId"`                                               // ID of the organization
	Name       string    `json:"name" example:"Springfield Plumbing Co" default:""`   // Name of the vendor
	ExternalID *int64    `json:"externalId"`                                          // ID of the vendor in the upstream system
}

func (editable VendorEditable) model() models.Vendor {
	return models.Vendor{
		OrgID:      editable.OrgID,
		Name:       editable.Name,
		ExternalID: editable.ExternalID,
	}
}

type VendorResponse struct {
	Data  *models.Vendor `json:"data"`  // The vendor
	Error *string        `json:"error"` // The error, if any occurred
}

type VendorListResponse struct {
	Data  []models.Vendor `json:"data"`  // List of vendors
	Error *string         `json:"error"` // The error, if any occurred
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Vendors
// @Success		204
// @Router			/v1/vendors [options]
func OptionsVendorList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Vendors
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/vendors/{id} [options]
func (co Controller) OptionsVendorDetail(c *gin.Context) {
	if _, ok := getResourceByID[models.Vendor](c, co); !ok {
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		List vendors
// @Description	Returns a list of vendors
// @Tags			Vendors
// @Produce		json
// @Success		200	{object}	VendorListResponse
// @Failure		400	{object}	VendorListResponse
// @Failure		500	{object}	VendorListResponse
// @Router			/v1/vendors [get]
// @Param			org	query	string	false	"Filter by organization ID"
func (co Controller) GetVendors(c *gin.Context) {
	q := co.DB.Order("vendors.name ASC")

	if org := c.Query("org"); org != "" {
		orgID, err := httputil.UUIDFromString(org)
		if err != nil {
			e := err.Error()
			c.JSON(status(err), VendorListResponse{Error: &e})
			return
		}
		q = q.Where("vendors.org_id = ?", orgID)
	}

	var vendors []models.Vendor
	if err := q.Find(&vendors).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), VendorListResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, VendorListResponse{Data: vendors})
}

// @Summary		Get vendor
// @Description	Returns a specific vendor
// @Tags			Vendors
// @Produce		json
// @Success		200	{object}	VendorResponse
// @Failure		400	{object}	VendorResponse
// @Failure		404	{object}	VendorResponse
// @Failure		500	{object}	VendorResponse
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/vendors/{id} [get]
func (co Controller) GetVendor(c *gin.Context) {
	vendor, ok := getResourceByID[models.Vendor](c, co)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, VendorResponse{Data: &vendor})
}

// @Summary		Create vendors
// @Description	Creates new vendors
// @Tags			Vendors
// @Produce		json
// @Success		201		{object}	VendorListResponse
// @Failure		400		{object}	VendorListResponse
// @Failure		500		{object}	VendorListResponse
// @Param			vendors	body		[]VendorEditable	true	"Vendors"
// @Router			/v1/vendors [post]
func (co Controller) CreateVendors(c *gin.Context) {
	var editables []VendorEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), VendorListResponse{Error: &e})
		return
	}

	vendors := make([]models.Vendor, 0, len(editables))
	for _, editable := range editables {
		vendor := editable.model()
		if err := co.DB.Create(&vendor).Error; err != nil {
			e := err.Error()
			c.JSON(status(err), VendorListResponse{Error: &e})
			return
		}

		vendors = append(vendors, vendor)
	}

	c.JSON(http.StatusCreated, VendorListResponse{Data: vendors})
}

// @Summary		Update vendor
// @Description	Updates an existing vendor. Only values to be updated need to be specified.
// @Tags			Vendors
// @Accept			json
// @Produce		json
// @Success		200		{object}	VendorResponse
// @Failure		400		{object}	VendorResponse
// @Failure		404		{object}	VendorResponse
// @Failure		500		{object}	VendorResponse
// @Param			id		path		string			true	"ID formatted as string"
// @Param			vendor	body		VendorEditable	true	"Vendor"
// @Router			/v1/vendors/{id} [patch]
func (co Controller) UpdateVendor(c *gin.Context) {
	vendor, ok := getResourceByID[models.Vendor](c, co)
	if !ok {
		return
	}

	updateFields, err := httputil.GetBodyFields(c, VendorEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), VendorResponse{Error: &e})
		return
	}

	var update VendorEditable
	err = httputil.BindData(c, &update)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), VendorResponse{Error: &e})
		return
	}

	err = co.DB.Model(&vendor).Select("", updateFields...).Updates(update.model()).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), VendorResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, VendorResponse{Data: &vendor})
}

// @Summary		Delete vendor
// @Description	Deletes a vendor
// @Tags			Vendors
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/vendors/{id} [delete]
func (co Controller) DeleteVendor(c *gin.Context) {
	vendor, ok := getResourceByID[models.Vendor](c, co)
	if !ok {
		return
	}

	err := co.DB.Delete(&vendor).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
