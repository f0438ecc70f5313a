package auth

import (
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"strconv"

	"canbrs/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

const maxIDImageSize = 5 * 1024 * 1024 // 5 MB

var allowedIDImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes registers the unauthenticated auth surface.
// Base path is /api/v1/auth
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/register/admin", h.RegisterAdmin)
		authGroup.POST("/register/resident", h.RegisterResident)
		authGroup.POST("/login/admin", h.LoginAdmin)
		authGroup.POST("/login/resident", h.LoginResident)
		authGroup.POST("/forgot-password/admin", h.ForgotPasswordAdmin)
		authGroup.POST("/forgot-password/resident", h.ForgotPasswordResident)
		authGroup.POST("/reset-password", h.ResetPassword)
	}
}

// RegisterProtectedRoutes requires a valid JWT.
func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.GET("/auth/check", h.CheckAuth)
}

// RegisterAdminRoutes registers registration key management (admin only).
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/registration-keys", h.CreateRegistrationKey)
	rg.GET("/auth/registration-keys", h.ListRegistrationKeys)
	rg.DELETE("/auth/registration-keys/:id", h.DeleteRegistrationKey)
}

func (h *Handler) RegisterAdmin(c *gin.Context) {
	var req RegisterAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	admin, err := h.service.RegisterAdmin(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"admin": admin})
}

func (h *Handler) RegisterResident(c *gin.Context) {
	var req RegisterResidentRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	ok := h.attachIDImage(c, "valid_id_front", &req.ValidIDFront, &req.ValidIDFrontType, true) &&
		h.attachIDImage(c, "valid_id_back", &req.ValidIDBack, &req.ValidIDBackType, true) &&
		h.attachIDImage(c, "selfie", &req.Selfie, &req.SelfieType, true)
	if !ok {
		return
	}

	resident, err := h.service.RegisterResident(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"resident": resident,
		"message":  "Registration submitted, wait for admin approval",
	})
}

func (h *Handler) LoginAdmin(c *gin.Context) {
	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.service.LoginAdmin(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": result.Account, "token": result.Token})
}

func (h *Handler) LoginResident(c *gin.Context) {
	var req ResidentLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.service.LoginResident(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": result.Account, "token": result.Token})
}

func (h *Handler) CheckAuth(c *gin.Context) {
	userID := c.GetInt64("user_id")
	role := c.GetString("role")

	account, err := h.service.CheckAuth(c.Request.Context(), userID, role)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": account})
}

func (h *Handler) CreateRegistrationKey(c *gin.Context) {
	key, err := h.service.GenerateRegistrationKey(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "KEY_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"key": key})
}

func (h *Handler) ListRegistrationKeys(c *gin.Context) {
	keys, err := h.service.ListRegistrationKeys(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"keys": keys})
}

func (h *Handler) DeleteRegistrationKey(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid key ID")
		return
	}

	if err := h.service.DeleteRegistrationKey(c.Request.Context(), id); err != nil {
		response.Error(c, http.StatusInternalServerError, "DELETE_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Registration key deleted"})
}

func (h *Handler) ForgotPasswordAdmin(c *gin.Context) {
	var req ForgotPasswordAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.service.ForgotPasswordAdmin(c.Request.Context(), req.Email); err != nil {
		response.Error(c, http.StatusInternalServerError, "RESET_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "If the account exists, a reset link was sent"})
}

func (h *Handler) ForgotPasswordResident(c *gin.Context) {
	var req ForgotPasswordResidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.service.ForgotPasswordResident(c.Request.Context(), req.Phone); err != nil {
		response.Error(c, http.StatusInternalServerError, "RESET_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "If the account exists, a reset link was sent"})
}

func (h *Handler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.service.ResetPassword(c.Request.Context(), req); err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Password updated"})
}

// attachIDImage reads one multipart image field and stores it base64
// encoded. Returns false after writing an error response.
func (h *Handler) attachIDImage(c *gin.Context, field string, data, contentType *string, required bool) bool {
	file, err := c.FormFile(field)
	if err != nil {
		if required {
			response.Error(c, http.StatusBadRequest, "MISSING_FILE", field+" image is required")
			return false
		}
		return true
	}

	if file.Size > maxIDImageSize {
		response.Error(c, http.StatusBadRequest, "FILE_TOO_LARGE", field+" exceeds 5 MB limit")
		return false
	}

	ct := file.Header.Get("Content-Type")
	if !allowedIDImageTypes[ct] {
		response.Error(c, http.StatusBadRequest, "INVALID_FORMAT", "Only jpeg, png, webp images are allowed")
		return false
	}

	f, err := file.Open()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "READ_FAILED", "Failed to read "+field)
		return false
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "READ_FAILED", "Failed to read "+field)
		return false
	}

	*data = base64.StdEncoding.EncodeToString(raw)
	*contentType = ct
	return true
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid credentials")
	case errors.Is(err, ErrAccountNotApproved):
		response.Error(c, http.StatusForbidden, "ACCOUNT_NOT_APPROVED", "Account is pending admin approval")
	case errors.Is(err, ErrEmailAlreadyExists):
		response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "Email already registered")
	case errors.Is(err, ErrPhoneAlreadyExists):
		response.Error(c, http.StatusConflict, "PHONE_EXISTS", "Phone already registered")
	case errors.Is(err, ErrInvalidRegistrationKey):
		response.Error(c, http.StatusBadRequest, "INVALID_REGISTRATION_KEY", "Registration key is invalid")
	case errors.Is(err, ErrRegistrationKeyUsed):
		response.Error(c, http.StatusConflict, "REGISTRATION_KEY_USED", "Registration key was already used")
	case errors.Is(err, ErrInvalidResetToken):
		response.Error(c, http.StatusBadRequest, "INVALID_RESET_TOKEN", "Reset token is invalid or expired")
	case errors.Is(err, ErrAccountNotFound):
		response.Error(c, http.StatusNotFound, "ACCOUNT_NOT_FOUND", "Account not found")
	default:
		response.Error(c, http.StatusBadRequest, "AUTH_ERROR", err.Error())
	}
}
