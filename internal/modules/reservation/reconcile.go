package reservation

import "canbrs/internal/domain"

// LineItem is the reconciler's view of one resource row: which listing and
// how many units.
type LineItem struct {
	ListingID int64
	Quantity  int
}

// Reconcile computes the inventory adjustments implied by moving a
// reservation from (oldItems, oldStatus) to (newItems, newStatus). The
// result maps listing IDs to signed deltas: positive returns stock,
// negative takes it. The function has no side effects; the caller applies
// the deltas.
//
// The cases are mutually exclusive and evaluated in order, first match
// wins. The ordering of the In-Use->Returned case before the generic
// ->Returned case mirrors the behavior this app has always had; do not
// reorder without a product decision.
func Reconcile(oldItems, newItems []LineItem, oldStatus, newStatus domain.ReservationStatus) map[int64]int {
	deltas := make(map[int64]int)

	switch {
	// Becoming approved: requested units leave the pool.
	case oldStatus != domain.ReservationApproved && newStatus == domain.ReservationApproved:
		for _, it := range newItems {
			deltas[it.ListingID] -= it.Quantity
		}

	// Approval undone: the deducted units come back.
	case oldStatus == domain.ReservationApproved &&
		(newStatus == domain.ReservationDeclined ||
			newStatus == domain.ReservationCancelled ||
			newStatus == domain.ReservationPending):
		for _, it := range oldItems {
			deltas[it.ListingID] += it.Quantity
		}

	// Handing the items out keeps the deduction in place.
	case oldStatus == domain.ReservationApproved && newStatus == domain.ReservationInUse:

	case oldStatus == domain.ReservationInUse && newStatus == domain.ReservationReturned:
		for _, it := range oldItems {
			deltas[it.ListingID] += it.Quantity
		}

	// Returned reached from any other non-returned state, e.g. directly
	// from Approved.
	case oldStatus != domain.ReservationReturned && newStatus == domain.ReservationReturned:
		for _, it := range oldItems {
			deltas[it.ListingID] += it.Quantity
		}

	// Quantity edit while already approved: adjust by the per-listing
	// difference. A listing missing from one of the lists counts as
	// quantity zero on that side.
	case oldStatus == domain.ReservationApproved && newStatus == domain.ReservationApproved:
		oldQty := quantitiesByListing(oldItems)
		newQty := quantitiesByListing(newItems)
		for id, q := range oldQty {
			deltas[id] += q - newQty[id]
		}
		for id, q := range newQty {
			if _, seen := oldQty[id]; !seen {
				deltas[id] -= q
			}
		}

		// Every other transition leaves inventory alone.
	}

	for id, d := range deltas {
		if d == 0 {
			delete(deltas, id)
		}
	}
	return deltas
}

func quantitiesByListing(items []LineItem) map[int64]int {
	m := make(map[int64]int, len(items))
	for _, it := range items {
		m[it.ListingID] += it.Quantity
	}
	return m
}
