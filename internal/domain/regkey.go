package domain

import "time"

// RegistrationKey is a single-use key that gates admin signup.
type RegistrationKey struct {
	ID        int64      `json:"id"`
	Key       string     `json:"key" gorm:"uniqueIndex"`
	CreatedAt time.Time  `json:"created_at"`
	LastUsed  *time.Time `json:"last_used,omitempty"`
	UsedByID  *int64     `json:"used_by,omitempty"`
}
