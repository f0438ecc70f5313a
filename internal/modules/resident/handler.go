package resident

import (
	"errors"
	"net/http"
	"strconv"

	"canbrs/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterAdminRoutes registers the account review endpoints (admin only).
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/residents", h.List)
	rg.GET("/residents/:id", h.Get)
	rg.PUT("/residents/:id/approve", h.Approve)
	rg.DELETE("/residents/:id/decline", h.Decline)
	rg.GET("/admins", h.ListAdmins)
}

func (h *Handler) List(c *gin.Context) {
	residents, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"residents": residents})
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid resident ID")
		return
	}

	r, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"resident": r})
}

func (h *Handler) Approve(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid resident ID")
		return
	}

	var req ApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	r, err := h.service.Approve(c.Request.Context(), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"resident": r})
}

func (h *Handler) Decline(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid resident ID")
		return
	}

	var req DeclineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.service.Decline(c.Request.Context(), id, req); err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Resident declined"})
}

func (h *Handler) ListAdmins(c *gin.Context) {
	admins, err := h.service.ListAdmins(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"admins": admins})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrResidentNotFound):
		response.Error(c, http.StatusNotFound, "RESIDENT_NOT_FOUND", "Resident not found")
	case errors.Is(err, ErrAlreadyApproved):
		response.Error(c, http.StatusConflict, "ALREADY_APPROVED", "Resident is already approved")
	case errors.Is(err, ErrInvalidClassification):
		response.Error(c, http.StatusBadRequest, "INVALID_CLASSIFICATION", "Classification must be Regular, PWD, Pregnant or Elderly")
	case errors.Is(err, ErrReasonTooLong):
		response.Error(c, http.StatusBadRequest, "REASON_TOO_LONG", "Decline reason must be 80 characters or fewer")
	default:
		response.Error(c, http.StatusInternalServerError, "RESIDENT_ERROR", err.Error())
	}
}
