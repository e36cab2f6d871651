package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GymVisa/gymvisa-admin-dashboard/internal/core"
	"github.com/GymVisa/gymvisa-admin-dashboard/internal/models"
)

// PayoutHandler handles gym withdrawal request endpoints.
type PayoutHandler struct {
	payoutService core.PayoutService
}

// NewPayoutHandler creates a new PayoutHandler.
func NewPayoutHandler(ps core.PayoutService) *PayoutHandler {
	return &PayoutHandler{payoutService: ps}
}

// ListPayouts handles GET /api/v1/payout-requests. The optional "status"
// query narrows to one lifecycle state.
func (h *PayoutHandler) ListPayouts(c *gin.Context) {
	status := c.Query("status")
	switch status {
	case "", models.PayoutStatusPending, models.PayoutStatusApproved, models.PayoutStatusRejected:
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "status must be pending, approved or rejected"})
		return
	}

	requests, err := h.payoutService.ListPayouts(c.Request.Context(), status)
	if err != nil {
		respondError(c, err)
		return
	}
	if requests == nil {
		requests = []*models.GymPayoutRequest{}
	}
	c.JSON(http.StatusOK, requests)
}

// GetPayout handles GET /api/v1/payout-requests/:id.
func (h *PayoutHandler) GetPayout(c *gin.Context) {
	req, err := h.payoutService.GetPayout(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

// ApprovePayout handles POST /api/v1/payout-requests/:id/approve.
func (h *PayoutHandler) ApprovePayout(c *gin.Context) {
	req, err := h.payoutService.ApprovePayout(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

// RejectPayout handles POST /api/v1/payout-requests/:id/reject.
func (h *PayoutHandler) RejectPayout(c *gin.Context) {
	req, err := h.payoutService.RejectPayout(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

// PendingCount handles GET /api/v1/payout-requests/pending-count. It reads
// the watcher's cached counter, so it is cheap enough to poll.
func (h *PayoutHandler) PendingCount(c *gin.Context) {
	c.JSON(http.StatusOK, PendingCountResponse{PendingCount: h.payoutService.PendingCount()})
}
