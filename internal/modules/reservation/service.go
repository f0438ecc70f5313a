package reservation

import (
	"context"
	"errors"
	"sort"
	"time"

	"canbrs/internal/domain"
	"canbrs/internal/events"
	"canbrs/internal/pkg/validator"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// maxTxAttempts bounds the transparent retries on a serialization
// failure before ErrConcurrencyConflict surfaces to the caller.
const maxTxAttempts = 3

// Service is the only authorized entry point for creating reservations
// and moving them through their status lifecycle. Every status or
// resource change and its inventory side effects commit atomically;
// notifications run after commit through the event bus and can never
// unwind a committed change.
type Service struct {
	store  Store
	bus    Publisher
	logger *zap.Logger
}

func NewService(store Store, bus Publisher, logger *zap.Logger) *Service {
	return &Service{
		store:  store,
		bus:    bus,
		logger: logger,
	}
}

// UpdatePatch carries the fields an admin update may change. Nil means
// "leave as is"; Resources nil means the line items are untouched.
type UpdatePatch struct {
	Status          *domain.ReservationStatus
	Resources       []LineItem
	Purpose         *string
	StartDate       *time.Time
	EndDate         *time.Time
	AppointmentDate *time.Time
	InitialRemarks  *string
	ReturnedRemarks *string
	AdminMessage    *string
}

// Create files a new reservation in Pending on behalf of a resident. No
// inventory moves until an admin approves.
func (s *Service) Create(ctx context.Context, residentID int64, req CreateReservationRequest) (*domain.Reservation, error) {
	r := &domain.Reservation{
		ResidentID: residentID,
		Purpose:    req.Purpose,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Status:     domain.ReservationPending,
	}
	for _, it := range req.Resources {
		r.Items = append(r.Items, domain.ReservationItem{
			ListingID: it.ListingID,
			Quantity:  it.Quantity,
		})
	}

	if errs := validator.Validate(r); errs != nil {
		return nil, ErrValidation
	}
	// Dates are only ordered at submission time; edits may reschedule.
	if req.EndDate.Before(req.StartDate) {
		return nil, ErrValidation
	}

	err := s.store.InTx(ctx, func(tx Store) error {
		hasFacility := false
		for _, it := range r.Items {
			l, err := tx.GetListing(ctx, it.ListingID)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &ResourceNotFoundError{ListingID: it.ListingID}
			}
			if err != nil {
				return err
			}
			if l.Kind == domain.ListingFacility {
				hasFacility = true
			}
		}
		// The event address only applies when a facility is being booked.
		if hasFacility {
			r.Address = req.Address
		}
		return tx.CreateReservation(ctx, r)
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// ApplyUpdate validates the requested transition, reconciles inventory,
// and persists the patched reservation together with every affected
// listing in one transaction. Serialization failures are retried a small
// bounded number of times before surfacing as ErrConcurrencyConflict.
func (s *Service) ApplyUpdate(ctx context.Context, id int64, patch UpdatePatch) (*domain.Reservation, error) {
	var (
		updated    *domain.Reservation
		postCommit []events.Event
	)

	for attempt := 1; ; attempt++ {
		updated = nil
		postCommit = nil

		err := s.store.InTx(ctx, func(tx Store) error {
			var txErr error
			updated, postCommit, txErr = s.applyUpdate(ctx, tx, id, patch)
			return txErr
		})
		if err == nil {
			break
		}
		if isSerializationFailure(err) {
			if attempt < maxTxAttempts {
				s.logger.Warn("reservation update serialization conflict, retrying",
					zap.Int64("reservation_id", id),
					zap.Int("attempt", attempt),
				)
				continue
			}
			return nil, ErrConcurrencyConflict
		}
		return nil, err
	}

	for _, ev := range postCommit {
		s.bus.Publish(ctx, ev)
	}
	return updated, nil
}

func (s *Service) applyUpdate(ctx context.Context, tx Store, id int64, patch UpdatePatch) (*domain.Reservation, []events.Event, error) {
	r, err := tx.GetReservation(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	oldStatus := r.Status
	newStatus := oldStatus
	if patch.Status != nil {
		newStatus = *patch.Status
	}

	oldItems := toLineItems(r.Items)
	newItems := oldItems
	if patch.Resources != nil {
		newItems = patch.Resources
	}

	if err := validateTransition(r, patch, oldStatus, newStatus); err != nil {
		return nil, nil, err
	}
	if err := validateDates(r, patch); err != nil {
		return nil, nil, err
	}

	deltas := Reconcile(oldItems, newItems, oldStatus, newStatus)

	if err := s.applyDeltas(ctx, tx, deltas, newItems); err != nil {
		return nil, nil, err
	}

	applyFields(r, patch)
	r.Status = newStatus
	if patch.Resources != nil {
		items := make([]domain.ReservationItem, 0, len(patch.Resources))
		for _, it := range patch.Resources {
			items = append(items, domain.ReservationItem{
				ReservationID: r.ID,
				ListingID:     it.ListingID,
				Quantity:      it.Quantity,
			})
		}
		r.Items = items
	}

	if err := tx.SaveReservation(ctx, r); err != nil {
		return nil, nil, err
	}

	evs := []events.Event{events.ReservationUpdatedEvent{Reservation: r}}
	if oldStatus != domain.ReservationApproved && newStatus == domain.ReservationApproved {
		evs = append(evs, events.ReservationApprovedEvent{Reservation: r})
	}
	if oldStatus != domain.ReservationDeclined && newStatus == domain.ReservationDeclined {
		evs = append(evs, events.ReservationDeclinedEvent{Reservation: r, Reason: r.AdminMessage})
	}
	return r, evs, nil
}

// applyDeltas locks and mutates every listing the reconciliation touched,
// in ascending ID order so two concurrent updates sharing listings cannot
// deadlock. Listings referenced by the new line items are resolved even
// when their delta is zero, so a dangling reference always fails the
// whole update.
func (s *Service) applyDeltas(ctx context.Context, tx Store, deltas map[int64]int, newItems []LineItem) error {
	ids := make(map[int64]bool, len(deltas))
	for id := range deltas {
		ids[id] = true
	}
	for _, it := range newItems {
		ids[it.ListingID] = true
	}

	sorted := make([]int64, 0, len(ids))
	for id := range ids {
		sorted = append(sorted, id)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	requested := quantitiesByListing(newItems)

	for _, id := range sorted {
		l, err := tx.GetListing(ctx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &ResourceNotFoundError{ListingID: id}
		}
		if err != nil {
			return err
		}

		// Facilities are availability-gated, not pool-counted: resolving
		// the listing is the whole check.
		if l.Kind == domain.ListingFacility {
			continue
		}

		delta := deltas[id]
		if delta < 0 && l.Inventory+delta < 0 {
			return &InsufficientInventoryError{
				ListingID: id,
				Name:      l.Name,
				Available: l.Inventory,
				Requested: requested[id],
			}
		}
		if delta == 0 {
			continue
		}

		l.Inventory += delta
		if err := tx.SaveListing(ctx, l); err != nil {
			return err
		}
	}
	return nil
}

// Get returns one reservation with its resident and resolved listings.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Reservation, error) {
	r, err := s.store.GetReservation(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrReservationNotFound
	}
	return r, err
}

// ListAll returns every reservation, newest first, for the admin view.
func (s *Service) ListAll(ctx context.Context) ([]domain.Reservation, error) {
	return s.store.ListReservations(ctx)
}

// ListForResident returns the reservations belonging to one resident.
func (s *Service) ListForResident(ctx context.Context, residentID int64) ([]domain.Reservation, error) {
	return s.store.ListReservationsByResident(ctx, residentID)
}

// Delete removes a terminal reservation. Only Returned records are
// deletable; by the conservation invariant they hold no outstanding
// deduction, so no inventory compensation is needed.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.store.InTx(ctx, func(tx Store) error {
		r, err := tx.GetReservation(ctx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReservationNotFound
		}
		if err != nil {
			return err
		}
		if r.Status != domain.ReservationReturned {
			return &InvalidTransitionError{
				From:   r.Status,
				To:     r.Status,
				Reason: "only Returned reservations can be deleted",
			}
		}
		return tx.DeleteReservation(ctx, id)
	})
}

// validateTransition enforces the status machine and its companion-field
// rules before anything is written.
func validateTransition(r *domain.Reservation, patch UpdatePatch, from, to domain.ReservationStatus) error {
	if from == to {
		return nil
	}

	if !transitionAllowed(from, to) {
		return &InvalidTransitionError{From: from, To: to, Reason: "transition not permitted"}
	}

	if to == domain.ReservationApproved {
		hasAppointment := r.AppointmentDate != nil || patch.AppointmentDate != nil
		if !hasAppointment {
			return &InvalidTransitionError{From: from, To: to, Reason: "appointment date is required before approval"}
		}
	}

	if to == domain.ReservationDeclined {
		msg := r.AdminMessage
		if patch.AdminMessage != nil {
			msg = *patch.AdminMessage
		}
		if msg == "" {
			return &InvalidTransitionError{From: from, To: to, Reason: "an admin message with the decline reason is required"}
		}
	}

	return nil
}

// transitionAllowed is the closed transition table. Returned is terminal;
// In-Use and Returned are only reachable from states that actually hold a
// deduction, which keeps the inventory conservation invariant intact.
func transitionAllowed(from, to domain.ReservationStatus) bool {
	switch from {
	case domain.ReservationPending:
		return to == domain.ReservationApproved || to == domain.ReservationDeclined
	case domain.ReservationDeclined:
		return to == domain.ReservationPending
	case domain.ReservationCancelled:
		return to == domain.ReservationPending
	case domain.ReservationApproved:
		switch to {
		case domain.ReservationInUse, domain.ReservationDeclined,
			domain.ReservationCancelled, domain.ReservationPending,
			domain.ReservationReturned:
			return true
		}
		return false
	case domain.ReservationInUse:
		return to == domain.ReservationReturned
	case domain.ReservationReturned:
		return false
	}
	return false
}

func validateDates(r *domain.Reservation, patch UpdatePatch) error {
	start := r.StartDate
	end := r.EndDate
	if patch.StartDate != nil {
		start = *patch.StartDate
	}
	if patch.EndDate != nil {
		end = *patch.EndDate
	}
	if end.Before(start) {
		return ErrValidation
	}
	return nil
}

func applyFields(r *domain.Reservation, patch UpdatePatch) {
	if patch.Purpose != nil {
		r.Purpose = *patch.Purpose
	}
	if patch.StartDate != nil {
		r.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		r.EndDate = *patch.EndDate
	}
	if patch.AppointmentDate != nil {
		r.AppointmentDate = patch.AppointmentDate
	}
	if patch.InitialRemarks != nil {
		r.InitialRemarks = *patch.InitialRemarks
	}
	if patch.ReturnedRemarks != nil {
		r.ReturnedRemarks = *patch.ReturnedRemarks
	}
	if patch.AdminMessage != nil {
		r.AdminMessage = *patch.AdminMessage
	}
}

func toLineItems(items []domain.ReservationItem) []LineItem {
	out := make([]LineItem, 0, len(items))
	for _, it := range items {
		out = append(out, LineItem{ListingID: it.ListingID, Quantity: it.Quantity})
	}
	return out
}

// isSerializationFailure reports whether the error is a postgres
// serialization failure or deadlock, both of which are safe to retry.
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}
