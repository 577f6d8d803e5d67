package v1

import (
	ledger_uuid "github.com/brickledger/backend/internal/uuid"
)

// This file holds types that are used over multiple files.

type URIID struct {
	ID ledger_uuid.UUID `uri:"id" binding:"required"` // The ID of the resource
}

type Pagination struct {
	Count  int   `json:"count"`  // The amount of records returned in this response
	Offset uint  `json:"offset"` // The offset for the first record returned
	Limit  int   `json:"limit"`  // The maximum amount of resources to return for this request
	Total  int64 `json:"total"`  // The total number of resources matching the query
}
