package v1

import (
	"net/http"

	"github.com/brickledger/backend/internal/httputil"
	"github.com/brickledger/backend/internal/ledger"
	"github.com/gin-gonic/gin"
)

// RegisterEscrowRoutes registers the routes for escrow postings with
// the RouterGroup that is passed. Balances and movements are read
// through the unit routes.
func (co Controller) RegisterEscrowRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsEscrowList)
		r.POST("", co.CreateEscrowPosting)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Escrow
// @Success		204
// @Router			/v1/escrow [options]
func OptionsEscrowList(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Post escrow movement
// @Description	Posts a deposit into or a withdrawal from the escrow of a unit as a balanced two-line transaction
// @Tags			Escrow
// @Produce		json
// @Success		201		{object}	TransactionResponse
// @Failure		400		{object}	TransactionResponse
// @Failure		404		{object}	TransactionResponse
// @Failure		422		{object}	TransactionResponse
// @Failure		500		{object}	TransactionResponse
// @Param			escrow	body		ledger.EscrowInput	true	"Escrow movement"
// @Router			/v1/escrow [post]
func (co Controller) CreateEscrowPosting(c *gin.Context) {
	var input ledger.EscrowInput

	err := httputil.BindData(c, &input)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	transaction, err := ledger.PostEscrow(co.DB, input)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	c.JSON(http.StatusCreated, TransactionResponse{Data: &transaction})
}
