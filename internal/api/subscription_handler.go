package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GymVisa/gymvisa-admin-dashboard/internal/core"
	"github.com/GymVisa/gymvisa-admin-dashboard/internal/models"
)

// SubscriptionHandler handles subscription plan endpoints.
type SubscriptionHandler struct {
	subService core.SubscriptionService
}

// NewSubscriptionHandler creates a new SubscriptionHandler.
func NewSubscriptionHandler(ss core.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subService: ss}
}

// ListPlans handles GET /api/v1/subscriptions.
func (h *SubscriptionHandler) ListPlans(c *gin.Context) {
	plans, err := h.subService.ListPlans(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if plans == nil {
		plans = []*models.SubscriptionPlan{}
	}
	c.JSON(http.StatusOK, plans)
}

// GetPlan handles GET /api/v1/subscriptions/:id.
func (h *SubscriptionHandler) GetPlan(c *gin.Context) {
	plan, err := h.subService.GetPlan(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// UpdatePlan handles PUT /api/v1/subscriptions/:id.
func (h *SubscriptionHandler) UpdatePlan(c *gin.Context) {
	var req models.UpdateSubscriptionPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Details: err.Error()})
		return
	}

	plan, err := h.subService.UpdatePlan(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}
