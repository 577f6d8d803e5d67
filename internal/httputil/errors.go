package httputil

import "errors"

var (
	ErrInvalidBody      = errors.New("the body of your request contains invalid or un-parseable data. Please check and try again")
	ErrRequestBodyEmpty = errors.New("the request body must not be empty")
	ErrInvalidUUID      = errors.New("the specified resource ID is not a valid UUID")
	ErrInvalidDate      = errors.New("the specified date could not be parsed, use the YYYY-MM-DD format")
	ErrInvalidMonth     = errors.New("the specified month could not be parsed, use the YYYY-MM format")
)
