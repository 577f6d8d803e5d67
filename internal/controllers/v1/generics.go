package v1

import (
	"github.com/brickledger/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// getResourceByID loads a resource by the ID in the URI. On failure the
// error response has already been written and success is false.
func getResourceByID[T models.Model](c *gin.Context, co Controller) (resource T, success bool) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return resource, false
	}

	err := co.DB.First(&resource, "id = ?", uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return resource, false
	}

	return resource, true
}

// paginate applies offset and limit to a list query. The limit defaults
// to 50, a negative limit disables it.
func paginate(q *gin.Context) (offset uint, limit int) {
	type pagination struct {
		Offset uint `form:"offset"`
		Limit  int  `form:"limit"`
	}

	var p pagination
	_ = q.ShouldBindQuery(&p)

	limit = 50
	if q.Request.URL.Query().Has("limit") {
		limit = p.Limit
	}

	return p.Offset, limit
}
