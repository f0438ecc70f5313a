package reservation

import (
	"testing"

	"canbrs/internal/domain"

	"github.com/stretchr/testify/assert"
)

func items(pairs ...int) []LineItem {
	out := make([]LineItem, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, LineItem{ListingID: int64(pairs[i]), Quantity: pairs[i+1]})
	}
	return out
}

func TestReconcile_ApprovalDeductsNewItems(t *testing.T) {
	deltas := Reconcile(
		items(1, 5, 2, 3),
		items(1, 5, 2, 3),
		domain.ReservationPending,
		domain.ReservationApproved,
	)

	assert.Equal(t, map[int64]int{1: -5, 2: -3}, deltas)
}

func TestReconcile_ApprovalUsesNewItemsNotOld(t *testing.T) {
	// The admin edits quantities in the same update that approves.
	deltas := Reconcile(
		items(1, 5),
		items(1, 2),
		domain.ReservationPending,
		domain.ReservationApproved,
	)

	assert.Equal(t, map[int64]int{1: -2}, deltas)
}

func TestReconcile_ApprovalUndoneRestoresOldItems(t *testing.T) {
	for _, to := range []domain.ReservationStatus{
		domain.ReservationDeclined,
		domain.ReservationCancelled,
		domain.ReservationPending,
	} {
		deltas := Reconcile(
			items(1, 5, 2, 3),
			items(1, 5, 2, 3),
			domain.ReservationApproved,
			to,
		)
		assert.Equal(t, map[int64]int{1: 5, 2: 3}, deltas, "revert to %s", to)
	}
}

func TestReconcile_ApprovedToInUseLeavesPoolAlone(t *testing.T) {
	deltas := Reconcile(
		items(1, 5),
		items(1, 5),
		domain.ReservationApproved,
		domain.ReservationInUse,
	)

	assert.Empty(t, deltas)
}

func TestReconcile_InUseToReturnedRestores(t *testing.T) {
	deltas := Reconcile(
		items(1, 5, 3, 1),
		items(1, 5, 3, 1),
		domain.ReservationInUse,
		domain.ReservationReturned,
	)

	assert.Equal(t, map[int64]int{1: 5, 3: 1}, deltas)
}

func TestReconcile_ApprovedDirectlyToReturnedRestores(t *testing.T) {
	// Returned reached without passing through In-Use still gives the
	// deduction back exactly once.
	deltas := Reconcile(
		items(1, 5),
		items(1, 5),
		domain.ReservationApproved,
		domain.ReservationReturned,
	)

	assert.Equal(t, map[int64]int{1: 5}, deltas)
}

func TestReconcile_ApprovedEditDiffsQuantities(t *testing.T) {
	deltas := Reconcile(
		items(1, 5, 2, 3),
		items(1, 2, 2, 3),
		domain.ReservationApproved,
		domain.ReservationApproved,
	)

	// Listing 1 shrank by 3, listing 2 is unchanged and gets no entry.
	assert.Equal(t, map[int64]int{1: 3}, deltas)
}

func TestReconcile_ApprovedEditRemovedItemIsReturned(t *testing.T) {
	deltas := Reconcile(
		items(1, 5, 2, 3),
		items(1, 5),
		domain.ReservationApproved,
		domain.ReservationApproved,
	)

	assert.Equal(t, map[int64]int{2: 3}, deltas)
}

func TestReconcile_ApprovedEditAddedItemIsDeducted(t *testing.T) {
	deltas := Reconcile(
		items(1, 5),
		items(1, 5, 7, 2),
		domain.ReservationApproved,
		domain.ReservationApproved,
	)

	assert.Equal(t, map[int64]int{7: -2}, deltas)
}

func TestReconcile_SameStatusNonApprovedIsNoop(t *testing.T) {
	for _, st := range []domain.ReservationStatus{
		domain.ReservationPending,
		domain.ReservationDeclined,
		domain.ReservationInUse,
		domain.ReservationReturned,
	} {
		deltas := Reconcile(items(1, 5), items(1, 2), st, st)
		assert.Empty(t, deltas, "status %s", st)
	}
}

func TestReconcile_PendingEditNeverTouchesInventory(t *testing.T) {
	deltas := Reconcile(
		items(1, 5),
		items(1, 50, 2, 10),
		domain.ReservationPending,
		domain.ReservationPending,
	)

	assert.Empty(t, deltas)
}

func TestReconcile_ZeroDeltasAreDropped(t *testing.T) {
	deltas := Reconcile(
		items(1, 5, 2, 3),
		items(1, 5, 2, 3),
		domain.ReservationApproved,
		domain.ReservationApproved,
	)

	assert.Empty(t, deltas)
}

// A full lifecycle must conserve stock: approve then hand out then return
// sums to zero for every listing.
func TestReconcile_LifecycleConservesInventory(t *testing.T) {
	line := items(1, 5, 2, 3)

	total := map[int64]int{}
	add := func(deltas map[int64]int) {
		for id, d := range deltas {
			total[id] += d
		}
	}

	add(Reconcile(line, line, domain.ReservationPending, domain.ReservationApproved))
	add(Reconcile(line, line, domain.ReservationApproved, domain.ReservationInUse))
	add(Reconcile(line, line, domain.ReservationInUse, domain.ReservationReturned))

	for id, d := range total {
		assert.Zero(t, d, "listing %d leaked %d units", id, d)
	}
}

// Approve, shrink while approved, then revert: the return must equal the
// current (edited) deduction, not the original one.
func TestReconcile_EditThenRevertConserves(t *testing.T) {
	total := map[int64]int{}
	add := func(deltas map[int64]int) {
		for id, d := range deltas {
			total[id] += d
		}
	}

	add(Reconcile(items(1, 5), items(1, 5), domain.ReservationPending, domain.ReservationApproved))
	add(Reconcile(items(1, 5), items(1, 2), domain.ReservationApproved, domain.ReservationApproved))
	add(Reconcile(items(1, 2), items(1, 2), domain.ReservationApproved, domain.ReservationCancelled))

	assert.Zero(t, total[1])
}
