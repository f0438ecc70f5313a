package domain

import "time"

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "Pending"
	ReservationApproved  ReservationStatus = "Approved"
	ReservationDeclined  ReservationStatus = "Declined"
	ReservationCancelled ReservationStatus = "Cancelled"
	ReservationInUse     ReservationStatus = "In-Use"
	ReservationReturned  ReservationStatus = "Returned"
)

// ParseReservationStatus validates a status string coming from the API.
// Cancelled is accepted as a revert target but is never the stored value
// of a freshly created reservation.
func ParseReservationStatus(s string) (ReservationStatus, bool) {
	switch ReservationStatus(s) {
	case ReservationPending, ReservationApproved, ReservationDeclined,
		ReservationCancelled, ReservationInUse, ReservationReturned:
		return ReservationStatus(s), true
	}
	return "", false
}

// ReservationItem is one requested resource row on a reservation.
type ReservationItem struct {
	ID            int64    `json:"id"`
	ReservationID int64    `json:"reservation_id"`
	ListingID     int64    `json:"listing_id"`
	Quantity      int      `json:"quantity" validate:"required,gte=1"`
	Listing       *Listing `json:"listing,omitempty" gorm:"foreignKey:ListingID"`
}

type Reservation struct {
	ID              int64             `json:"id"`
	ResidentID      int64             `json:"resident_id"`
	Items           []ReservationItem `json:"resources" gorm:"foreignKey:ReservationID" validate:"required,min=1,dive"`
	Purpose         string            `json:"purpose" validate:"required"`
	StartDate       time.Time         `json:"start_date"`
	EndDate         time.Time         `json:"end_date"`
	AppointmentDate *time.Time        `json:"appointment_date,omitempty"`
	Status          ReservationStatus `json:"status"`
	Address         string            `json:"address,omitempty"`
	InitialRemarks  string            `json:"initial_remarks,omitempty" gorm:"type:text"`
	ReturnedRemarks string            `json:"returned_remarks,omitempty" gorm:"type:text"`
	AdminMessage    string            `json:"admin_message,omitempty" gorm:"type:text"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`

	Resident *Resident `json:"resident,omitempty" gorm:"foreignKey:ResidentID"`
}
