package auth

import (
	"context"

	"canbrs/internal/domain"
)

// AdminStore — only the methods the auth service uses.
type AdminStore interface {
	Create(ctx context.Context, a *domain.Admin) error
	GetByID(ctx context.Context, id int64) (*domain.Admin, error)
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)
	GetByResetToken(ctx context.Context, token string) (*domain.Admin, error)
	Update(ctx context.Context, a *domain.Admin) error
}

// ResidentStore — only the methods the auth service uses.
type ResidentStore interface {
	Create(ctx context.Context, r *domain.Resident) error
	GetByID(ctx context.Context, id int64) (*domain.Resident, error)
	GetByPhone(ctx context.Context, phone string) (*domain.Resident, error)
	GetByResetToken(ctx context.Context, token string) (*domain.Resident, error)
	Update(ctx context.Context, r *domain.Resident) error
}

type RegKeyStore interface {
	Create(ctx context.Context, k *domain.RegistrationKey) error
	GetByKey(ctx context.Context, key string) (*domain.RegistrationKey, error)
	List(ctx context.Context) ([]domain.RegistrationKey, error)
	Update(ctx context.Context, k *domain.RegistrationKey) error
	Delete(ctx context.Context, id int64) error
}
