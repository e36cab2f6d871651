package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/GymVisa/gymvisa-admin-dashboard/internal/core"
	"github.com/GymVisa/gymvisa-admin-dashboard/internal/models"
)

// maxImageUploadBytes caps gym image uploads at 10 MiB.
const maxImageUploadBytes = 10 << 20

// GymHandler handles partner gym endpoints.
type GymHandler struct {
	gymService core.GymService
}

// NewGymHandler creates a new GymHandler.
func NewGymHandler(gs core.GymService) *GymHandler {
	return &GymHandler{gymService: gs}
}

// ListGyms handles GET /api/v1/gyms.
func (h *GymHandler) ListGyms(c *gin.Context) {
	gyms, err := h.gymService.ListGyms(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if gyms == nil {
		gyms = []*models.Gym{}
	}
	c.JSON(http.StatusOK, gyms)
}

// GetGym handles GET /api/v1/gyms/:id.
func (h *GymHandler) GetGym(c *gin.Context) {
	gym, err := h.gymService.GetGym(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gym)
}

// CreateGym handles POST /api/v1/gyms.
func (h *GymHandler) CreateGym(c *gin.Context) {
	var req models.UpsertGymRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Details: err.Error()})
		return
	}

	gym, err := h.gymService.CreateGym(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gym)
}

// UpdateGym handles PUT /api/v1/gyms/:id.
func (h *GymHandler) UpdateGym(c *gin.Context) {
	var req models.UpsertGymRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Details: err.Error()})
		return
	}

	gym, err := h.gymService.UpdateGym(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gym)
}

// UpdateHours handles PATCH /api/v1/gyms/:id/hours: a unified-mode toggle
// or a single day's schedule edit.
func (h *GymHandler) UpdateHours(c *gin.Context) {
	var req models.UpdateHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Details: err.Error()})
		return
	}

	gym, err := h.gymService.UpdateHours(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gym)
}

// DeleteGym handles DELETE /api/v1/gyms/:id.
func (h *GymHandler) DeleteGym(c *gin.Context) {
	if err := h.gymService.DeleteGym(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "Gym deleted"})
}

// GetAccessCode handles GET /api/v1/gyms/:id/qrcode, generating the code
// first for gyms that never had one stored.
func (h *GymHandler) GetAccessCode(c *gin.Context) {
	gymID := c.Param("id")
	code, err := h.gymService.AccessCode(c.Request.Context(), gymID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, AccessCodeResponse{
		GymID:   gymID,
		QRCode:  code,
		Payload: core.AccessCodePayload(gymID),
	})
}

// RegenerateAccessCode handles POST /api/v1/gyms/:id/qrcode.
func (h *GymHandler) RegenerateAccessCode(c *gin.Context) {
	gymID := c.Param("id")
	code, err := h.gymService.RegenerateAccessCode(c.Request.Context(), gymID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, AccessCodeResponse{
		GymID:   gymID,
		QRCode:  code,
		Payload: core.AccessCodePayload(gymID),
	})
}

// UploadImage handles POST /api/v1/gyms/:id/images/:slot. The image comes
// as the "image" field of a multipart form.
func (h *GymHandler) UploadImage(c *gin.Context) {
	slot, err := strconv.Atoi(c.Param("slot"))
	if err != nil || (slot != 1 && slot != 2) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Image slot must be 1 or 2"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Multipart field 'image' is required", Details: err.Error()})
		return
	}
	if fileHeader.Size > maxImageUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "Image exceeds the 10MB limit"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Failed to read uploaded image", Details: err.Error()})
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := h.gymService.UploadImage(c.Request.Context(), c.Param("id"), slot, contentType, file)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ImageUploadResponse{Success: true, ImageURL: url})
}
