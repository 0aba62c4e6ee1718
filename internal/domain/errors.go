package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrTreatmentClosed indicates a mutation was attempted on a closed treatment.
	ErrTreatmentClosed = errors.New("treatment closed")
	// ErrOutOfStock indicates the catalog item cannot cover the requested quantity.
	ErrOutOfStock = errors.New("out of stock")
)

type validationError string

func (e validationError) Error() string { return string(e) }

// Invalid builds a user-correctable validation error. The message is
// safe to surface verbatim.
func Invalid(msg string) error { return validationError(msg) }

// IsInvalid reports whether err is a validation error.
func IsInvalid(err error) bool {
	var v validationError
	return errors.As(err, &v)
}
