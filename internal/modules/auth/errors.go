package auth

import "errors"

var (
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrEmailAlreadyExists     = errors.New("email already exists")
	ErrPhoneAlreadyExists     = errors.New("phone already registered")
	ErrAccountNotApproved     = errors.New("account pending approval")
	ErrInvalidRegistrationKey = errors.New("invalid registration key")
	ErrRegistrationKeyUsed    = errors.New("registration key already used")
	ErrInvalidResetToken      = errors.New("invalid or expired reset token")
	ErrAccountNotFound        = errors.New("account not found")
)
