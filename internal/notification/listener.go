package notification

import (
	"context"
	"errors"

	"canbrs/internal/events"
)

// RegisterListeners wires reservation lifecycle events to resident
// notifications. Listeners run post-commit on the bus's goroutines; a
// delivery failure is logged by the bus and never reaches the
// transaction that emitted the event.
func RegisterListeners(bus *events.Bus, sender Sender) {
	bus.Subscribe(events.ReservationApproved, func(ctx context.Context, ev events.Event) error {
		e, ok := ev.(events.ReservationApprovedEvent)
		if !ok || e.Reservation == nil {
			return errors.New("unexpected payload for reservation.approved")
		}
		if e.Reservation.Resident == nil || e.Reservation.Resident.Phone == "" {
			return errors.New("reservation has no resident phone to notify")
		}
		return sender.ReservationApproved(ctx, e.Reservation.Resident.Phone)
	})

	bus.Subscribe(events.ReservationDeclined, func(ctx context.Context, ev events.Event) error {
		e, ok := ev.(events.ReservationDeclinedEvent)
		if !ok || e.Reservation == nil {
			return errors.New("unexpected payload for reservation.declined")
		}
		if e.Reservation.Resident == nil || e.Reservation.Resident.Phone == "" {
			return errors.New("reservation has no resident phone to notify")
		}
		return sender.ReservationDeclined(ctx, e.Reservation.Resident.Phone, e.Reason)
	})
}
