package repository

import (
	"context"

	"canbrs/internal/domain"
	"canbrs/internal/modules/reservation"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReservationStore is the gorm implementation of the reservation
// module's Store. InTx hands back a copy bound to the transaction, so the
// coordinator's reads and writes all run on the same connection.
type ReservationStore struct {
	db *gorm.DB
}

func NewReservationStore(db *gorm.DB) *ReservationStore {
	return &ReservationStore{db: db}
}

func (s *ReservationStore) InTx(ctx context.Context, fn func(tx reservation.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ReservationStore{db: tx})
	})
}

// forUpdate adds a row lock on postgres. SQLite rejects FOR UPDATE and
// serializes writers on its own, so the clause is skipped there.
func (s *ReservationStore) forUpdate(q *gorm.DB) *gorm.DB {
	if s.db.Dialector.Name() == "postgres" {
		return q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return q
}

func (s *ReservationStore) GetReservation(ctx context.Context, id int64) (*domain.Reservation, error) {
	var r domain.Reservation
	err := s.forUpdate(s.db.WithContext(ctx)).
		Preload("Items").
		Preload("Items.Listing").
		Preload("Resident").
		First(&r, id).Error
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *ReservationStore) ListReservations(ctx context.Context) ([]domain.Reservation, error) {
	var out []domain.Reservation
	err := s.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Listing").
		Preload("Resident").
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (s *ReservationStore) ListReservationsByResident(ctx context.Context, residentID int64) ([]domain.Reservation, error) {
	var out []domain.Reservation
	err := s.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Listing").
		Where("resident_id = ?", residentID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (s *ReservationStore) CreateReservation(ctx context.Context, r *domain.Reservation) error {
	return s.db.WithContext(ctx).Omit("Resident", "Items.Listing").Create(r).Error
}

// SaveReservation persists the record and rewrites its line items
// wholesale. The item set per reservation is tiny, so delete-and-recreate
// beats diffing it.
func (s *ReservationStore) SaveReservation(ctx context.Context, r *domain.Reservation) error {
	if err := s.db.WithContext(ctx).Omit("Items", "Resident").Save(r).Error; err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).
		Where("reservation_id = ?", r.ID).
		Delete(&domain.ReservationItem{}).Error; err != nil {
		return err
	}
	if len(r.Items) == 0 {
		return nil
	}
	for i := range r.Items {
		r.Items[i].ID = 0
		r.Items[i].ReservationID = r.ID
	}
	return s.db.WithContext(ctx).Omit("Listing").Create(&r.Items).Error
}

func (s *ReservationStore) DeleteReservation(ctx context.Context, id int64) error {
	if err := s.db.WithContext(ctx).
		Where("reservation_id = ?", id).
		Delete(&domain.ReservationItem{}).Error; err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(&domain.Reservation{}, id).Error
}

func (s *ReservationStore) GetListing(ctx context.Context, id int64) (*domain.Listing, error) {
	var l domain.Listing
	err := s.forUpdate(s.db.WithContext(ctx)).First(&l, id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *ReservationStore) SaveListing(ctx context.Context, l *domain.Listing) error {
	return s.db.WithContext(ctx).Save(l).Error
}
