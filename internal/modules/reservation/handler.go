package reservation

import (
	"errors"
	"net/http"
	"strconv"

	"canbrs/internal/domain"
	"canbrs/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterResidentRoutes mounts the endpoints a logged-in resident may
// call; RegisterAdminRoutes mounts the admin-only lifecycle endpoints.
func (h *Handler) RegisterResidentRoutes(rg *gin.RouterGroup) {
	rg.POST("/reservations", h.Create)
	rg.GET("/reservations/mine", h.ListMine)
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/reservations", h.ListAll)
	rg.GET("/reservations/:id", h.Get)
	rg.PUT("/reservations/:id", h.Update)
	rg.DELETE("/reservations/:id", h.Delete)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	residentID := c.GetInt64("user_id")
	r, err := h.service.Create(c.Request.Context(), residentID, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, r)
}

func (h *Handler) ListMine(c *gin.Context) {
	residentID := c.GetInt64("user_id")
	list, err := h.service.ListForResident(c.Request.Context(), residentID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) ListAll(c *gin.Context) {
	list, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid reservation ID")
		return
	}

	r, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, r)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid reservation ID")
		return
	}

	var req UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	patch, err := patchFromRequest(req)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	r, err := h.service.ApplyUpdate(c.Request.Context(), id, patch)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, r)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid reservation ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	var (
		notFound     *ResourceNotFoundError
		insufficient *InsufficientInventoryError
		invalid      *InvalidTransitionError
	)

	switch {
	case errors.Is(err, ErrReservationNotFound):
		response.Error(c, http.StatusNotFound, "RESERVATION_NOT_FOUND", "Reservation not found")
	case errors.As(err, &notFound):
		response.Error(c, http.StatusNotFound, "RESOURCE_NOT_FOUND", notFound.Error())
	case errors.As(err, &insufficient):
		response.ErrorWithDetails(c, http.StatusConflict, "INSUFFICIENT_INVENTORY", insufficient.Error(), gin.H{
			"listing_id": insufficient.ListingID,
			"available":  insufficient.Available,
			"requested":  insufficient.Requested,
		})
	case errors.As(err, &invalid):
		response.Error(c, http.StatusUnprocessableEntity, "INVALID_TRANSITION", invalid.Error())
	case errors.Is(err, ErrConcurrencyConflict):
		response.Error(c, http.StatusConflict, "CONFLICT", "Reservation was modified concurrently, please retry")
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid reservation data")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process reservation")
	}
}

func patchFromRequest(req UpdateReservationRequest) (UpdatePatch, error) {
	patch := UpdatePatch{
		Purpose:         req.Purpose,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		AppointmentDate: req.AppointmentDate,
		InitialRemarks:  req.InitialRemarks,
		ReturnedRemarks: req.ReturnedRemarks,
		AdminMessage:    req.AdminMessage,
	}

	if req.Status != nil {
		status, ok := domain.ParseReservationStatus(*req.Status)
		if !ok {
			return UpdatePatch{}, errors.New("unknown reservation status")
		}
		patch.Status = &status
	}

	if req.Resources != nil {
		items := make([]LineItem, 0, len(*req.Resources))
		for _, it := range *req.Resources {
			if it.Quantity < 1 {
				return UpdatePatch{}, errors.New("line item quantity must be at least 1")
			}
			items = append(items, LineItem{ListingID: it.ListingID, Quantity: it.Quantity})
		}
		patch.Resources = items
	}

	return patch, nil
}

func parseID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
