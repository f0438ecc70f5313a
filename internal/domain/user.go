package domain

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleResident Role = "resident"
)

type Classification string

const (
	ClassificationRegular  Classification = "Regular"
	ClassificationPWD      Classification = "PWD"
	ClassificationPregnant Classification = "Pregnant"
	ClassificationElderly  Classification = "Elderly"
)

func ParseClassification(s string) (Classification, bool) {
	switch Classification(s) {
	case ClassificationRegular, ClassificationPWD, ClassificationPregnant, ClassificationElderly:
		return Classification(s), true
	}
	return "", false
}

// Resident is a barangay resident account. Accounts start unapproved and
// become usable only after an admin review (see modules/resident).
type Resident struct {
	ID           int64     `json:"id"`
	Firstname    string    `json:"firstname" validate:"required"`
	Middlename   string    `json:"middlename,omitempty"`
	Lastname     string    `json:"lastname" validate:"required"`
	Suffix       string    `json:"suffix,omitempty"`
	Birthdate    time.Time `json:"birthdate"`
	Gender       string    `json:"gender"`
	BlkNum       string    `json:"blknum"`
	LotNum       string    `json:"lotnum"`
	Sitio        string    `json:"sitio"`
	Phone        string    `json:"phone" validate:"required"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`

	ValidIDNumber string `json:"valid_id_number"`

	// Verification images, base64 encoded.
	ValidIDFront     string `json:"-" gorm:"type:text"`
	ValidIDFrontType string `json:"-"`
	ValidIDBack      string `json:"-" gorm:"type:text"`
	ValidIDBackType  string `json:"-"`
	Selfie           string `json:"-" gorm:"type:text"`
	SelfieType       string `json:"-"`

	IsApproved     bool           `json:"is_approved"`
	IsVerified     bool           `json:"is_verified"`
	Classification Classification `json:"classification,omitempty"`

	LastLogin time.Time `json:"last_login"`

	ResetPasswordToken     string     `json:"-"`
	ResetPasswordExpiresAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Admin is a barangay office staff account. Signup is gated by a
// single-use registration key handed out by an existing admin.
type Admin struct {
	ID           int64  `json:"id"`
	Name         string `json:"name" validate:"required"`
	Sitio        string `json:"sitio"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone,omitempty"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`
	IsVerified   bool   `json:"is_verified"`

	LastLogin time.Time `json:"last_login"`

	ResetPasswordToken     string     `json:"-"`
	ResetPasswordExpiresAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
