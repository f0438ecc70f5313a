package catalog

// CreateListingRequest carries the form fields of a new catalog entry.
// The image arrives as a separate multipart file and is attached by the
// handler after base64 encoding.
type CreateListingRequest struct {
	Name        string `form:"name" binding:"required"`
	Description string `form:"description" binding:"required"`
	Type        string `form:"type" binding:"required"`
	Inventory   *int   `form:"inventory"`
	Address     string `form:"address"`

	ImageData        string `form:"-"`
	ImageContentType string `form:"-"`
}

// UpdateListingRequest is a partial update. Nil means "leave unchanged".
type UpdateListingRequest struct {
	Name        *string `form:"name"`
	Description *string `form:"description"`
	Type        *string `form:"type"`
	Inventory   *int    `form:"inventory"`
	Address     *string `form:"address"`

	ImageData        string `form:"-"`
	ImageContentType string `form:"-"`
}
