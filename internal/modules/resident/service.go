package resident

import (
	"context"
	"errors"

	"canbrs/internal/domain"
	"canbrs/internal/notification"

	"gorm.io/gorm"
)

const maxDeclineReasonLen = 80

// ResidentStore — only the methods this service uses.
type ResidentStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Resident, error)
	Update(ctx context.Context, r *domain.Resident) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.Resident, error)
}

type AdminStore interface {
	List(ctx context.Context) ([]domain.Admin, error)
}

// Service handles the admin review of resident signups.
type Service struct {
	residents ResidentStore
	admins    AdminStore
	notifier  notification.Sender
}

func NewService(residents ResidentStore, admins AdminStore, notifier notification.Sender) *Service {
	return &Service{residents: residents, admins: admins, notifier: notifier}
}

func (s *Service) List(ctx context.Context) ([]domain.Resident, error) {
	return s.residents.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Resident, error) {
	r, err := s.residents.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrResidentNotFound
	}
	return r, err
}

// Approve activates a pending account and records its priority
// classification. The resident gets an SMS; delivery failures do not
// undo the approval.
func (s *Service) Approve(ctx context.Context, id int64, req ApproveRequest) (*domain.Resident, error) {
	r, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.IsApproved {
		return nil, ErrAlreadyApproved
	}

	classification, ok := domain.ParseClassification(req.Classification)
	if !ok {
		return nil, ErrInvalidClassification
	}

	r.IsApproved = true
	r.IsVerified = true
	r.Classification = classification
	if err := s.residents.Update(ctx, r); err != nil {
		return nil, err
	}

	_ = s.notifier.AccountApproved(ctx, r.Phone)
	return r, nil
}

// Decline removes a pending account. The reason is texted to the
// resident before the record is deleted.
func (s *Service) Decline(ctx context.Context, id int64, req DeclineRequest) error {
	if len(req.Reason) > maxDeclineReasonLen {
		return ErrReasonTooLong
	}

	r, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if r.IsApproved {
		return ErrAlreadyApproved
	}

	_ = s.notifier.AccountDeclined(ctx, r.Phone, req.Reason)
	return s.residents.Delete(ctx, id)
}

func (s *Service) ListAdmins(ctx context.Context) ([]domain.Admin, error) {
	return s.admins.List(ctx)
}
