package events

import "canbrs/internal/domain"

const (
	ReservationApproved = "reservation.approved"
	ReservationDeclined = "reservation.declined"
	ReservationUpdated  = "reservation.updated"
)

// ReservationApprovedEvent fires after an approval has committed together
// with its inventory deductions.
type ReservationApprovedEvent struct {
	Reservation *domain.Reservation
}

func (ReservationApprovedEvent) Name() string { return ReservationApproved }

// ReservationDeclinedEvent fires after a decline has committed. Reason is
// the admin message shown to the resident.
type ReservationDeclinedEvent struct {
	Reservation *domain.Reservation
	Reason      string
}

func (ReservationDeclinedEvent) Name() string { return ReservationDeclined }

// ReservationUpdatedEvent fires after any committed reservation change and
// feeds the live admin dashboard.
type ReservationUpdatedEvent struct {
	Reservation *domain.Reservation
}

func (ReservationUpdatedEvent) Name() string { return ReservationUpdated }
