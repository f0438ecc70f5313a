package ws

import (
	"context"
	"errors"

	"canbrs/internal/events"
)

// Message is the envelope pushed to dashboard clients.
type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

type reservationPayload struct {
	ReservationID int64  `json:"reservationId"`
	Status        string `json:"status"`
}

// RegisterListeners pushes committed reservation changes to the live
// dashboard. The payload is a compact summary; clients refetch details
// over the REST API.
func RegisterListeners(bus *events.Bus, hub *Hub) {
	bus.Subscribe(events.ReservationUpdated, func(_ context.Context, ev events.Event) error {
		e, ok := ev.(events.ReservationUpdatedEvent)
		if !ok || e.Reservation == nil {
			return errors.New("unexpected payload for reservation.updated")
		}
		hub.Broadcast(Message{
			Event: events.ReservationUpdated,
			Data: reservationPayload{
				ReservationID: e.Reservation.ID,
				Status:        string(e.Reservation.Status),
			},
		})
		return nil
	})
}
