// Package v1 implements the v1 REST API of the ledger backend.
package v1

import (
	"net/http"

	"github.com/brickledger/backend/internal/httputil"
	"github.com/brickledger/backend/internal/platform"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Controller carries the dependencies of the API handlers. Handlers
// never reach for globals, everything comes in through the receiver.
type Controller struct {
	DB   *gorm.DB
	Sync platform.Client
}

// Register attaches all v1 routes to the router group that is passed.
func (co Controller) Register(group *gin.RouterGroup) {
	group.GET("", GetV1)
	group.OPTIONS("", OptionsV1)

	co.RegisterGLAccountRoutes(group.Group("/gl-accounts"))
	co.RegisterAccountMappingRoutes(group.Group("/account-mappings"))
	co.RegisterPropertyRoutes(group.Group("/properties"))
	co.RegisterUnitRoutes(group.Group("/units"))
	co.RegisterLeaseRoutes(group.Group("/leases"))
	co.RegisterVendorRoutes(group.Group("/vendors"))
	co.RegisterChargeRoutes(group.Group("/charges"))
	co.RegisterTransactionRoutes(group.Group("/transactions"))
	co.RegisterPaymentRoutes(group.Group("/payments"))
	co.RegisterPeriodRoutes(group.Group("/periods"))
	co.RegisterEscrowRoutes(group.Group("/escrow"))
}

type V1Response struct {
	Links V1Links `json:"links"` // Links for the v1 API
}

type V1Links struct {
	GLAccounts      string `json:"glAccounts" example:"https://example.com/api/v1/gl-accounts"`           // URL of the GL account list endpoint
	AccountMappings string `json:"accountMappings" example:"https://example.com/api/v1/account-mappings"` // URL of the account mapping list endpoint
	Properties      string `json:"properties" example:"https://example.com/api/v1/properties"`            // URL of the property list endpoint
	Units           string `json:"units" example:"https://example.com/api/v1/units"`                      // URL of the unit list endpoint
	Leases          string `json:"leases" example:"https://example.com/api/v1/leases"`                    // URL of the lease list endpoint
	Vendors         string `json:"vendors" example:"https://example.com/api/v1/vendors"`                  // URL of the vendor list endpoint
	Charges         string `json:"charges" example:"https://example.com/api/v1/charges"`                  // URL of the charge list endpoint
	Transactions    string `json:"transactions" example:"https://example.com/api/v1/transactions"`        // URL of the transaction list endpoint
	Payments        string `json:"payments" example:"https://example.com/api/v1/payments"`                // URL of the payment endpoint
	Periods         string `json:"periods" example:"https://example.com/api/v1/periods"`                  // URL of the monthly period list endpoint
	Escrow          string `json:"escrow" example:"https://example.com/api/v1/escrow"`                    // URL of the escrow posting endpoint
}

// GetV1 returns the link list for v1
//
//	@Summary		v1 API
//	@Description	Returns general information about the v1 API
//	@Tags			v1
//	@Success		200	{object}	V1Response
//	@Router			/v1 [get]
func GetV1(c *gin.Context) {
	url := httputil.RequestPathV1(c)

	c.JSON(http.StatusOK, V1Response{
		Links: V1Links{
			GLAccounts:      url + "/gl-accounts",
			AccountMappings: url + "/account-mappings",
			Properties:      url + "/properties",
			Units:           url + "/units",
			Leases:          url + "/leases",
			Vendors:         url + "/vendors",
			Charges:         url + "/charges",
			Transactions:    url + "/transactions",
			Payments:        url + "/payments",
			Periods:         url + "/periods",
			Escrow:          url + "/escrow",
		},
	})
}

// OptionsV1 returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			v1
//	@Success		204
//	@Router			/v1 [options]
func OptionsV1(c *gin.Context) {
	httputil.OptionsGet(c)
}
