package domain

import "time"

type ListingKind string

const (
	ListingEquipment ListingKind = "equipment"
	ListingFacility  ListingKind = "facility"
)

func ParseListingKind(s string) (ListingKind, bool) {
	switch ListingKind(s) {
	case ListingEquipment, ListingFacility:
		return ListingKind(s), true
	}
	return "", false
}

// Listing is a bookable resource in the barangay catalog. Equipment
// listings carry a numeric pool of available units; facility listings are
// availability-gated and keep Inventory at zero.
type Listing struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name" validate:"required"`
	Description string      `json:"description" validate:"required" gorm:"type:text"`
	Kind        ListingKind `json:"type" gorm:"column:kind"`
	Inventory   int         `json:"inventory"`
	Address     string      `json:"address,omitempty"`

	// Inline image payload, base64 encoded like the rest of the upload
	// surfaces in this app.
	ImageData        string `json:"image_data,omitempty" gorm:"type:text"`
	ImageContentType string `json:"image_content_type,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
