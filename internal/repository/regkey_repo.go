package repository

import (
	"context"
	"time"

	"canbrs/internal/domain"

	"gorm.io/gorm"
)

type RegKeyRepository struct {
	db *gorm.DB
}

func NewRegKeyRepository(db *gorm.DB) *RegKeyRepository {
	return &RegKeyRepository{db: db}
}

func (r *RegKeyRepository) Create(ctx context.Context, k *domain.RegistrationKey) error {
	return r.db.WithContext(ctx).Create(k).Error
}

func (r *RegKeyRepository) GetByKey(ctx context.Context, key string) (*domain.RegistrationKey, error) {
	var k domain.RegistrationKey
	if err := r.db.WithContext(ctx).Where("key = ?", key).First(&k).Error; err != nil {
		return nil, err
	}
	return &k, nil
}

func (r *RegKeyRepository) List(ctx context.Context) ([]domain.RegistrationKey, error) {
	var out []domain.RegistrationKey
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *RegKeyRepository) Update(ctx context.Context, k *domain.RegistrationKey) error {
	return r.db.WithContext(ctx).Save(k).Error
}

func (r *RegKeyRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.RegistrationKey{}, id).Error
}

// DeleteUnusedOlderThan purges keys that were never redeemed and are past
// the retention cutoff.
func (r *RegKeyRepository) DeleteUnusedOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tx := r.db.WithContext(ctx).
		Where("used_by_id IS NULL AND created_at < ?", cutoff).
		Delete(&domain.RegistrationKey{})
	return tx.RowsAffected, tx.Error
}
