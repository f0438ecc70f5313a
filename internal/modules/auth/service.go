package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"canbrs/internal/domain"
	"canbrs/internal/notification"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type jwtService interface {
	GenerateToken(userID int64, role domain.Role) (string, error)
}

type Service struct {
	admins      AdminStore
	residents   ResidentStore
	regKeys     RegKeyStore
	jwt         jwtService
	notifier    notification.Sender
	resetTTL    time.Duration
	frontendURL string
}

type LoginResult struct {
	Account AccountPublic
	Token   string
}

func NewService(
	admins AdminStore,
	residents ResidentStore,
	regKeys RegKeyStore,
	jwt jwtService,
	notifier notification.Sender,
	resetTTL time.Duration,
	frontendURL string,
) *Service {
	return &Service{
		admins:      admins,
		residents:   residents,
		regKeys:     regKeys,
		jwt:         jwt,
		notifier:    notifier,
		resetTTL:    resetTTL,
		frontendURL: frontendURL,
	}
}

// RegisterAdmin creates a staff account. Signup is gated: the request
// must carry an unused registration key, which is consumed on success.
func (s *Service) RegisterAdmin(ctx context.Context, req RegisterAdminRequest) (*domain.Admin, error) {
	key, err := s.regKeys.GetByKey(ctx, strings.TrimSpace(req.RegistrationKey))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRegistrationKey
		}
		return nil, err
	}
	if key.UsedByID != nil {
		return nil, ErrRegistrationKeyUsed
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := s.admins.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	admin := &domain.Admin{
		Name:         req.Name,
		Sitio:        req.Sitio,
		Email:        email,
		Phone:        req.Phone,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		IsVerified:   true,
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		return nil, err
	}

	now := time.Now()
	key.LastUsed = &now
	key.UsedByID = &admin.ID
	if err := s.regKeys.Update(ctx, key); err != nil {
		return nil, err
	}

	return admin, nil
}

// RegisterResident creates a resident account in the pending state. The
// account cannot log in until an admin approves it.
func (s *Service) RegisterResident(ctx context.Context, req RegisterResidentRequest) (*domain.Resident, error) {
	phone := strings.TrimSpace(req.Phone)
	if _, err := s.residents.GetByPhone(ctx, phone); err == nil {
		return nil, ErrPhoneAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	birthdate, err := time.Parse("2006-01-02", req.Birthdate)
	if err != nil {
		return nil, fmt.Errorf("invalid birthdate, want YYYY-MM-DD: %w", err)
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	resident := &domain.Resident{
		Firstname:     req.Firstname,
		Middlename:    req.Middlename,
		Lastname:      req.Lastname,
		Suffix:        req.Suffix,
		Birthdate:     birthdate,
		Gender:        req.Gender,
		BlkNum:        req.BlkNum,
		LotNum:        req.LotNum,
		Sitio:         req.Sitio,
		Phone:         phone,
		PasswordHash:  hash,
		Role:          domain.RoleResident,
		ValidIDNumber: req.ValidIDNumber,

		ValidIDFront:     req.ValidIDFront,
		ValidIDFrontType: req.ValidIDFrontType,
		ValidIDBack:      req.ValidIDBack,
		ValidIDBackType:  req.ValidIDBackType,
		Selfie:           req.Selfie,
		SelfieType:       req.SelfieType,

		IsApproved: false,
		IsVerified: false,
	}
	if err := s.residents.Create(ctx, resident); err != nil {
		return nil, err
	}

	return resident, nil
}

func (s *Service) LoginAdmin(ctx context.Context, req AdminLoginRequest) (*LoginResult, error) {
	admin, err := s.admins.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	admin.LastLogin = time.Now()
	if err := s.admins.Update(ctx, admin); err != nil {
		return nil, err
	}

	token, err := s.jwt.GenerateToken(admin.ID, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Account: AccountPublic{
			ID:    admin.ID,
			Role:  string(domain.RoleAdmin),
			Name:  admin.Name,
			Email: admin.Email,
			Phone: admin.Phone,
		},
		Token: token,
	}, nil
}

func (s *Service) LoginResident(ctx context.Context, req ResidentLoginRequest) (*LoginResult, error) {
	resident, err := s.residents.GetByPhone(ctx, strings.TrimSpace(req.Phone))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(resident.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// Pending accounts authenticate but may not enter.
	if !resident.IsApproved {
		return nil, ErrAccountNotApproved
	}

	resident.LastLogin = time.Now()
	if err := s.residents.Update(ctx, resident); err != nil {
		return nil, err
	}

	token, err := s.jwt.GenerateToken(resident.ID, domain.RoleResident)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Account: AccountPublic{
			ID:    resident.ID,
			Role:  string(domain.RoleResident),
			Name:  residentDisplayName(resident),
			Phone: resident.Phone,
		},
		Token: token,
	}, nil
}

// CheckAuth resolves the token's subject back to an account summary.
func (s *Service) CheckAuth(ctx context.Context, userID int64, role string) (*AccountPublic, error) {
	switch domain.Role(role) {
	case domain.RoleAdmin:
		admin, err := s.admins.GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrAccountNotFound
			}
			return nil, err
		}
		return &AccountPublic{
			ID:    admin.ID,
			Role:  string(domain.RoleAdmin),
			Name:  admin.Name,
			Email: admin.Email,
			Phone: admin.Phone,
		}, nil
	case domain.RoleResident:
		resident, err := s.residents.GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrAccountNotFound
			}
			return nil, err
		}
		return &AccountPublic{
			ID:    resident.ID,
			Role:  string(domain.RoleResident),
			Name:  residentDisplayName(resident),
			Phone: resident.Phone,
		}, nil
	}
	return nil, ErrAccountNotFound
}

/* ---------- REGISTRATION KEYS ---------- */

func (s *Service) GenerateRegistrationKey(ctx context.Context) (*domain.RegistrationKey, error) {
	raw, err := randomHex(16)
	if err != nil {
		return nil, err
	}

	key := &domain.RegistrationKey{Key: raw}
	if err := s.regKeys.Create(ctx, key); err != nil {
		return nil, err
	}
	return key, nil
}

func (s *Service) ListRegistrationKeys(ctx context.Context) ([]domain.RegistrationKey, error) {
	return s.regKeys.List(ctx)
}

func (s *Service) DeleteRegistrationKey(ctx context.Context, id int64) error {
	return s.regKeys.Delete(ctx, id)
}

/* ---------- PASSWORD RESET ---------- */

// ForgotPasswordAdmin issues a reset token and emails the link. Unknown
// emails are answered with success to avoid account enumeration.
func (s *Service) ForgotPasswordAdmin(ctx context.Context, email string) error {
	admin, err := s.admins.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	token, err := randomHex(32)
	if err != nil {
		return err
	}
	expires := time.Now().Add(s.resetTTL)
	admin.ResetPasswordToken = token
	admin.ResetPasswordExpiresAt = &expires
	if err := s.admins.Update(ctx, admin); err != nil {
		return err
	}

	return s.notifier.PasswordResetEmail(ctx, admin.Email, s.resetURL(token))
}

// ForgotPasswordResident issues a reset token and texts the link.
func (s *Service) ForgotPasswordResident(ctx context.Context, phone string) error {
	resident, err := s.residents.GetByPhone(ctx, strings.TrimSpace(phone))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	token, err := randomHex(32)
	if err != nil {
		return err
	}
	expires := time.Now().Add(s.resetTTL)
	resident.ResetPasswordToken = token
	resident.ResetPasswordExpiresAt = &expires
	if err := s.residents.Update(ctx, resident); err != nil {
		return err
	}

	return s.notifier.PasswordResetSMS(ctx, resident.Phone, s.resetURL(token))
}

func (s *Service) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	hash, err := hashPassword(req.Password)
	if err != nil {
		return err
	}

	switch domain.Role(req.Role) {
	case domain.RoleAdmin:
		admin, err := s.admins.GetByResetToken(ctx, req.Token)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidResetToken
			}
			return err
		}
		admin.PasswordHash = hash
		admin.ResetPasswordToken = ""
		admin.ResetPasswordExpiresAt = nil
		return s.admins.Update(ctx, admin)
	case domain.RoleResident:
		resident, err := s.residents.GetByResetToken(ctx, req.Token)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidResetToken
			}
			return err
		}
		resident.PasswordHash = hash
		resident.ResetPasswordToken = ""
		resident.ResetPasswordExpiresAt = nil
		return s.residents.Update(ctx, resident)
	}
	return ErrInvalidResetToken
}

func (s *Service) resetURL(token string) string {
	return fmt.Sprintf("%s/reset-password?token=%s", strings.TrimRight(s.frontendURL, "/"), token)
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func residentDisplayName(r *domain.Resident) string {
	name := r.Firstname
	if r.Middlename != "" {
		name += " " + r.Middlename
	}
	name += " " + r.Lastname
	if r.Suffix != "" {
		name += " " + r.Suffix
	}
	return name
}
