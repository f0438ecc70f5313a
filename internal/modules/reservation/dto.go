package reservation

import "time"

type LineItemRequest struct {
	ListingID int64 `json:"listing_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required,gte=1"`
}

type CreateReservationRequest struct {
	Resources []LineItemRequest `json:"resources" binding:"required,min=1,dive"`
	Purpose   string            `json:"purpose" binding:"required"`
	StartDate time.Time         `json:"start_date" binding:"required"`
	EndDate   time.Time         `json:"end_date" binding:"required"`
	Address   string            `json:"address"`
}

// UpdateReservationRequest is the admin patch body. Nil fields are left
// untouched.
type UpdateReservationRequest struct {
	Status          *string            `json:"status"`
	Resources       *[]LineItemRequest `json:"resources"`
	Purpose         *string            `json:"purpose"`
	StartDate       *time.Time         `json:"start_date"`
	EndDate         *time.Time         `json:"end_date"`
	AppointmentDate *time.Time         `json:"appointment_date"`
	InitialRemarks  *string            `json:"initial_remarks"`
	ReturnedRemarks *string            `json:"returned_remarks"`
	AdminMessage    *string            `json:"admin_message"`
}
