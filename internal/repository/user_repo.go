package repository

import (
	"context"
	"time"

	"canbrs/internal/domain"

	"gorm.io/gorm"
)

type AdminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) Create(ctx context.Context, a *domain.Admin) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AdminRepository) GetByID(ctx context.Context, id int64) (*domain.Admin, error) {
	var a domain.Admin
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	var a domain.Admin
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AdminRepository) GetByResetToken(ctx context.Context, token string) (*domain.Admin, error) {
	var a domain.Admin
	err := r.db.WithContext(ctx).
		Where("reset_password_token = ? AND reset_password_expires_at > ?", token, time.Now()).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AdminRepository) Update(ctx context.Context, a *domain.Admin) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *AdminRepository) List(ctx context.Context) ([]domain.Admin, error) {
	var out []domain.Admin
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error
	return out, err
}

// ClearExpiredResetTokens blanks reset tokens that passed their expiry.
func (r *AdminRepository) ClearExpiredResetTokens(ctx context.Context) (int64, error) {
	tx := r.db.WithContext(ctx).
		Model(&domain.Admin{}).
		Where("reset_password_token <> '' AND reset_password_expires_at < ?", time.Now()).
		Updates(map[string]any{
			"reset_password_token":      "",
			"reset_password_expires_at": nil,
		})
	return tx.RowsAffected, tx.Error
}

type ResidentRepository struct {
	db *gorm.DB
}

func NewResidentRepository(db *gorm.DB) *ResidentRepository {
	return &ResidentRepository{db: db}
}

func (r *ResidentRepository) Create(ctx context.Context, res *domain.Resident) error {
	return r.db.WithContext(ctx).Create(res).Error
}

func (r *ResidentRepository) GetByID(ctx context.Context, id int64) (*domain.Resident, error) {
	var res domain.Resident
	if err := r.db.WithContext(ctx).First(&res, id).Error; err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *ResidentRepository) GetByPhone(ctx context.Context, phone string) (*domain.Resident, error) {
	var res domain.Resident
	if err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&res).Error; err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *ResidentRepository) GetByResetToken(ctx context.Context, token string) (*domain.Resident, error) {
	var res domain.Resident
	err := r.db.WithContext(ctx).
		Where("reset_password_token = ? AND reset_password_expires_at > ?", token, time.Now()).
		First(&res).Error
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *ResidentRepository) Update(ctx context.Context, res *domain.Resident) error {
	return r.db.WithContext(ctx).Save(res).Error
}

func (r *ResidentRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Resident{}, id).Error
}

// List returns residents with the heavy ID images omitted, matching the
// original admin view which never ships them in bulk.
func (r *ResidentRepository) List(ctx context.Context) ([]domain.Resident, error) {
	var out []domain.Resident
	err := r.db.WithContext(ctx).
		Omit("valid_id_front", "valid_id_back", "selfie").
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

// ClearExpiredResetTokens blanks reset tokens that passed their expiry.
func (r *ResidentRepository) ClearExpiredResetTokens(ctx context.Context) (int64, error) {
	tx := r.db.WithContext(ctx).
		Model(&domain.Resident{}).
		Where("reset_password_token <> '' AND reset_password_expires_at < ?", time.Now()).
		Updates(map[string]any{
			"reset_password_token":      "",
			"reset_password_expires_at": nil,
		})
	return tx.RowsAffected, tx.Error
}
