package resident

import "errors"

var (
	ErrResidentNotFound      = errors.New("resident not found")
	ErrAlreadyApproved       = errors.New("resident already approved")
	ErrInvalidClassification = errors.New("invalid classification")
	ErrReasonTooLong         = errors.New("decline reason too long")
)
