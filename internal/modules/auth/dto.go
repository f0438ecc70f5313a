package auth

type RegisterAdminRequest struct {
	Name            string `json:"name" binding:"required,min=2"`
	Sitio           string `json:"sitio"`
	Email           string `json:"email" binding:"required,email"`
	Phone           string `json:"phone"`
	Password        string `json:"password" binding:"required,min=8"`
	RegistrationKey string `json:"registration_key" binding:"required"`
}

// RegisterResidentRequest arrives as a multipart form. The three
// verification images are separate files and get attached by the handler
// after base64 encoding.
type RegisterResidentRequest struct {
	Firstname     string `form:"firstname" binding:"required"`
	Middlename    string `form:"middlename"`
	Lastname      string `form:"lastname" binding:"required"`
	Suffix        string `form:"suffix"`
	Birthdate     string `form:"birthdate" binding:"required"`
	Gender        string `form:"gender"`
	BlkNum        string `form:"blknum"`
	LotNum        string `form:"lotnum"`
	Sitio         string `form:"sitio"`
	Phone         string `form:"phone" binding:"required"`
	Password      string `form:"password" binding:"required,min=8"`
	ValidIDNumber string `form:"valid_id_number" binding:"required"`

	ValidIDFront     string `form:"-"`
	ValidIDFrontType string `form:"-"`
	ValidIDBack      string `form:"-"`
	ValidIDBackType  string `form:"-"`
	Selfie           string `form:"-"`
	SelfieType       string `form:"-"`
}

type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ResidentLoginRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ForgotPasswordAdminRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ForgotPasswordResidentRequest struct {
	Phone string `json:"phone" binding:"required"`
}

type ResetPasswordRequest struct {
	Role     string `json:"role" binding:"required,oneof=admin resident"`
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// AccountPublic is the slim account view returned by login and checkAuth.
type AccountPublic struct {
	ID    int64  `json:"id"`
	Role  string `json:"role"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}
