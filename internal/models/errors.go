package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")

	// Constraint violations rewritten by the create/update callbacks
	ErrAccountNameNotUnique  = errors.New("the GL account name is already in use for this organization")
	ErrPeriodMonthNotUnique  = errors.New("a monthly period already exists for this unit and month")
	ErrMappingNotUnique      = errors.New("an account mapping with this role and pattern already exists")
	ErrLineAmountNotPositive = errors.New("transaction line amounts must be positive")

	// Enum parse errors, raised by the BeforeSave hooks
	ErrTransactionTypeInvalid = errors.New("the transaction type is invalid")
	ErrPostingTypeInvalid     = errors.New("the posting type must be Debit or Credit")
	ErrAccountTypeInvalid     = errors.New("the GL account type is invalid")
	ErrChargeTypeInvalid      = errors.New("the charge type is invalid")
	ErrStageInvalid           = errors.New("the period stage is invalid")
	ErrRoleInvalid            = errors.New("the account mapping role is invalid")
)
