package catalog

import (
	"encoding/base64"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"canbrs/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

const maxImageSize = 5 * 1024 * 1024 // 5 MB

var allowedImageTypes = map[string]bool{
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

// RegisterRoutes registers read endpoints for any authenticated user.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/listings", h.List)
	rg.GET("/listings/:id", h.Get)
}

// RegisterAdminRoutes registers the catalog mutations (admin only).
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/listings", h.Create)
	rg.PUT("/listings/:id", h.Update)
	rg.DELETE("/listings/:id", h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	excludeImages := c.DefaultQuery("excludeImages", "false") == "true"

	listings, err := h.service.List(c.Request.Context(), excludeImages)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"listings": listings})
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid listing ID")
		return
	}

	l, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"listing": l})
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateListingRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if ok := h.attachImage(c, &req.ImageData, &req.ImageContentType); !ok {
		return
	}

	l, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"listing": l})
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid listing ID")
		return
	}

	var req UpdateListingRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if ok := h.attachImage(c, &req.ImageData, &req.ImageContentType); !ok {
		return
	}

	l, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"listing": l})
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid listing ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Listing deleted"})
}

// attachImage reads the optional multipart "image" file and stores it
// base64 encoded. Returns false after writing an error response.
func (h *Handler) attachImage(c *gin.Context, data, contentType *string) bool {
	file, err := c.FormFile("image")
	if err != nil {
		// No file is fine, the image is optional.
		return true
	}

	if file.Size > maxImageSize {
		response.Error(c, http.StatusBadRequest, "FILE_TOO_LARGE", "Image exceeds 5 MB limit")
		return false
	}

	ct := file.Header.Get("Content-Type")
	if !allowedImageTypes[ct] {
		response.Error(c, http.StatusBadRequest, "INVALID_FORMAT", "Only jpeg, png, webp images are allowed")
		return false
	}

	encoded, err := encodeImage(file)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "READ_FAILED", "Failed to read uploaded image")
		return false
	}

	*data = encoded
	*contentType = ct
	return true
}

func encodeImage(file *multipart.FileHeader) (string, error) {
	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrListingNotFound):
		response.Error(c, http.StatusNotFound, "LISTING_NOT_FOUND", "Listing not found")
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrListingInUse):
		response.Error(c, http.StatusConflict, "LISTING_IN_USE", "Listing is referenced by existing reservations")
	default:
		response.Error(c, http.StatusInternalServerError, "CATALOG_ERROR", err.Error())
	}
}
