package v1

import (
	"errors"
	"net/http"

	"github.com/brickledger/backend/internal/ledger"
	"github.com/brickledger/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"An ID specified in the query string was not a valid UUID"`
}

// status returns the appropriate HTTP status for an error from the
// models or ledger packages
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	// The request is fine, the organization's account mappings are not
	if errors.Is(err, ledger.ErrConfiguration) {
		return http.StatusUnprocessableEntity
	}

	// The request is well-formed, the allocations in it do not add up
	if errors.Is(err, ledger.ErrAllocationMismatch) || errors.Is(err, ledger.ErrAllocationOverflow) {
		return http.StatusUnprocessableEntity
	}

	return http.StatusBadRequest
}
