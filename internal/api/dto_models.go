package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GymVisa/gymvisa-admin-dashboard/internal/core"
)

// ErrorResponse is the standard error body for every endpoint.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// MessageResponse is a bare success acknowledgement.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ResetPasswordResponse returns the freshly generated password for
// one-time display to the admin.
type ResetPasswordResponse struct {
	Success  bool   `json:"success"`
	Password string `json:"password"`
}

// CreateOrgUsersResponse reports a bulk onboarding outcome.
type CreateOrgUsersResponse struct {
	Success      bool                     `json:"success"`
	Message      string                   `json:"message"`
	Results      []core.OrgUserCredential `json:"results"`
	Errors       []string                 `json:"errors,omitempty"`
	EmailResults core.EmailReport         `json:"emailResults"`
}

// DeleteOrganizationResponse reports an organization removal outcome.
type DeleteOrganizationResponse struct {
	Success      bool                  `json:"success"`
	Message      string                `json:"message"`
	DeletedUsers []core.DeletedOrgUser `json:"deletedUsers"`
	Errors       []string              `json:"errors,omitempty"`
}

// NotificationResponse reports a push dispatch outcome.
type NotificationResponse struct {
	Success bool                 `json:"success"`
	Message string               `json:"message"`
	Results *core.DispatchReport `json:"results"`
}

// AccessCodeResponse carries a gym's access code as a PNG data URL.
type AccessCodeResponse struct {
	GymID   string `json:"gymID"`
	QRCode  string `json:"qrCode"`
	Payload string `json:"payload"`
}

// ImageUploadResponse carries the download URL of a stored gym image.
type ImageUploadResponse struct {
	Success  bool   `json:"success"`
	ImageURL string `json:"imageUrl"`
}

// PendingCountResponse carries the live pending payout counter.
type PendingCountResponse struct {
	PendingCount int `json:"pendingCount"`
}

// respondError translates service errors into HTTP statuses. Anything not
// covered by a sentinel is reported as a 500 with the error text attached.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, core.ErrUserNotFound),
		errors.Is(err, core.ErrGymNotFound),
		errors.Is(err, core.ErrPlanNotFound),
		errors.Is(err, core.ErrOrganizationNotFound),
		errors.Is(err, core.ErrPayoutNotFound):
		status = http.StatusNotFound
	case errors.Is(err, core.ErrDuplicateEmail),
		errors.Is(err, core.ErrPayoutNotPending):
		status = http.StatusConflict
	case errors.Is(err, core.ErrInvalidEmail),
		errors.Is(err, core.ErrWeakPassword),
		errors.Is(err, core.ErrInvalidPeriod),
		errors.Is(err, core.ErrInvalidHoursEdit):
		status = http.StatusBadRequest
	}
	c.JSON(status, ErrorResponse{Error: err.Error()})
}
