package ledger

import "errors"

// Sentinel errors of the ledger engines. Callers match with errors.Is,
// details are attached by wrapping with fmt.Errorf and %w.
var (
	// ErrValidation covers malformed engine input, e.g. a posting
	// without lines or an allocation against a foreign lease.
	ErrValidation = errors.New("the request is invalid")

	// ErrUnbalanced is returned when the debits and credits of a
	// posting do not match.
	ErrUnbalanced = errors.New("the transaction is unbalanced, total debits must equal total credits")

	// ErrAllocationOverflow is returned when an allocation exceeds the
	// outstanding balance of its charge.
	ErrAllocationOverflow = errors.New("the allocation exceeds the outstanding balance of the charge")

	// ErrAllocationMismatch is returned when explicit allocations do
	// not sum to the payment amount.
	ErrAllocationMismatch = errors.New("the allocations do not sum to the payment amount")

	// ErrConfiguration is returned when a required GL account role
	// cannot be resolved for an organization.
	ErrConfiguration = errors.New("no GL account is configured")
)
