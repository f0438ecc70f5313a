package reservation

import (
	"errors"
	"fmt"

	"canbrs/internal/domain"
)

var (
	ErrReservationNotFound = errors.New("reservation not found")
	ErrValidation          = errors.New("validation error")

	// ErrConcurrencyConflict surfaces after the coordinator has exhausted
	// its transparent retries on a serialization failure.
	ErrConcurrencyConflict = errors.New("reservation update conflicted with a concurrent change")
)

// ResourceNotFoundError reports a line item pointing at a listing that no
// longer exists. The whole update aborts; no deltas are applied.
type ResourceNotFoundError struct {
	ListingID int64
}

func (e *ResourceNotFoundError) Error() string {
	return fmt.Sprintf("listing %d referenced by reservation does not exist", e.ListingID)
}

// InsufficientInventoryError reports the listing that fell short during an
// approval-time stock check.
type InsufficientInventoryError struct {
	ListingID int64
	Name      string
	Available int
	Requested int
}

func (e *InsufficientInventoryError) Error() string {
	return fmt.Sprintf("insufficient inventory for %q (id %d): requested %d, available %d",
		e.Name, e.ListingID, e.Requested, e.Available)
}

// InvalidTransitionError reports a status change rejected by a business
// rule before any write happened.
type InvalidTransitionError struct {
	From   domain.ReservationStatus
	To     domain.ReservationStatus
	Reason string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot move reservation from %s to %s: %s", e.From, e.To, e.Reason)
}
