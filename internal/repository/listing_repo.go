package repository

import (
	"context"

	"canbrs/internal/domain"

	"gorm.io/gorm"
)

type ListingRepository struct {
	db *gorm.DB
}

func NewListingRepository(db *gorm.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

// listingColumnsNoImage mirrors the original API's excludeImages switch:
// the catalog list can get heavy when every row carries a base64 photo.
var listingColumnsNoImage = []string{
	"id", "name", "description", "kind", "inventory", "address",
	"image_content_type", "created_at", "updated_at",
}

func (r *ListingRepository) List(ctx context.Context, excludeImages bool) ([]domain.Listing, error) {
	q := r.db.WithContext(ctx)
	if excludeImages {
		q = q.Select(listingColumnsNoImage)
	}

	var out []domain.Listing
	err := q.Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *ListingRepository) GetByID(ctx context.Context, id int64) (*domain.Listing, error) {
	var l domain.Listing
	if err := r.db.WithContext(ctx).First(&l, id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *ListingRepository) Create(ctx context.Context, l *domain.Listing) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *ListingRepository) Update(ctx context.Context, l *domain.Listing) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *ListingRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Listing{}, id).Error
}

// CountReservationItems reports how many reservation line items still point
// at the listing. Used to block deleting a listing that history refers to.
func (r *ListingRepository) CountReservationItems(ctx context.Context, listingID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&domain.ReservationItem{}).
		Where("listing_id = ?", listingID).
		Count(&n).Error
	return n, err
}
