package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GymVisa/gymvisa-admin-dashboard/internal/core"
	"github.com/GymVisa/gymvisa-admin-dashboard/internal/models"
)

// NotificationHandler handles push notification endpoints.
type NotificationHandler struct {
	notifService core.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(ns core.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifService: ns}
}

// Send handles POST /api/v1/send-notification. Per-token failures do not
// fail the request; the report carries them.
func (h *NotificationHandler) Send(c *gin.Context) {
	var req models.SendNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Details: err.Error()})
		return
	}
	if len(req.Tokens) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "tokens list cannot be empty"})
		return
	}

	report, err := h.notifService.Send(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, NotificationResponse{
		Success: report.Successful > 0,
		Message: fmt.Sprintf("Sent to %d of %d devices", report.Successful, len(req.Tokens)),
		Results: report,
	})
}

// Recipients handles GET /api/v1/notifications/recipients, listing users
// that currently hold a device token.
func (h *NotificationHandler) Recipients(c *gin.Context) {
	users, err := h.notifService.Recipients(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}
