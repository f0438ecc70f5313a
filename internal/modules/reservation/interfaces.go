package reservation

import (
	"context"

	"canbrs/internal/domain"
	"canbrs/internal/events"
)

// Store is the persistence contract the coordinator runs against. Inside
// InTx the same interface is handed back bound to the transaction, and
// reads take row locks so concurrent updates against the same reservation
// or the same listing serialize.
type Store interface {
	// InTx executes fn atomically. Everything written through the Store
	// fn receives commits together or not at all.
	InTx(ctx context.Context, fn func(tx Store) error) error

	GetReservation(ctx context.Context, id int64) (*domain.Reservation, error)
	ListReservations(ctx context.Context) ([]domain.Reservation, error)
	ListReservationsByResident(ctx context.Context, residentID int64) ([]domain.Reservation, error)
	CreateReservation(ctx context.Context, r *domain.Reservation) error
	SaveReservation(ctx context.Context, r *domain.Reservation) error
	DeleteReservation(ctx context.Context, id int64) error

	GetListing(ctx context.Context, id int64) (*domain.Listing, error)
	SaveListing(ctx context.Context, l *domain.Listing) error
}

// Publisher receives domain events after a successful commit.
type Publisher interface {
	Publish(ctx context.Context, event events.Event)
}
