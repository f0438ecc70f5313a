package catalog

import "errors"

var (
	ErrListingNotFound = errors.New("listing not found")
	ErrValidation      = errors.New("validation failed")
	ErrListingInUse    = errors.New("listing is referenced by reservations")
)
