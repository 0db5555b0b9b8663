package varrays

import "errors"

// Error kinds surfaced while resolving one variable-array declaration. All of
// them are terminal for the declaration being parsed; none corrupt sibling
// arrays. Callers wrap them with the offending array id and token.
var (
	ErrIdentifierMismatch  = errors.New("compact form does not name the declaring array")
	ErrRankMismatch        = errors.New("compact form group count does not match array rank")
	ErrIndexOutOfBounds    = errors.New("index outside the dimension bounds")
	ErrDuplicateAssignment = errors.New("two domain definitions for the same variable")
	ErrIncompleteArray     = errors.New("array has cells without a domain")
	ErrMalformedToken      = errors.New("malformed index token")
	ErrInvalidSize         = errors.New("dimension sizes must be positive")
)
