package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GymVisa/gymvisa-admin-dashboard/internal/core"
	"github.com/GymVisa/gymvisa-admin-dashboard/internal/models"
)

// OrganizationHandler handles the organization roll-up and bulk flows.
type OrganizationHandler struct {
	orgService core.OrganizationService
}

// NewOrganizationHandler creates a new OrganizationHandler.
func NewOrganizationHandler(os core.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{orgService: os}
}

// ListOrganizations handles GET /api/v1/organizations.
func (h *OrganizationHandler) ListOrganizations(c *gin.Context) {
	groups, err := h.orgService.ListOrganizations(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if groups == nil {
		groups = []core.OrganizationGroup{}
	}
	c.JSON(http.StatusOK, groups)
}

// OrganizationUsers handles GET /api/v1/organizations/:name/users.
func (h *OrganizationHandler) OrganizationUsers(c *gin.Context) {
	users, err := h.orgService.OrganizationUsers(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// CreateOrgUsers handles POST /api/v1/organizations/users. A partially
// failed batch is still a 201: the response carries both sides and the
// caller decides what to retry.
func (h *OrganizationHandler) CreateOrgUsers(c *gin.Context) {
	var req models.CreateOrgUsersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Details: err.Error()})
		return
	}
	if len(req.Users) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "users list cannot be empty"})
		return
	}

	report, err := h.orgService.CreateOrgUsers(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, core.ErrNoOrgUsersCreated) {
			c.JSON(http.StatusUnprocessableEntity, CreateOrgUsersResponse{
				Success:      false,
				Message:      err.Error(),
				Results:      []core.OrgUserCredential{},
				Errors:       report.Errors,
				EmailResults: report.EmailResults,
			})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, CreateOrgUsersResponse{
		Success:      true,
		Message:      fmt.Sprintf("Created %d users for %s", len(report.Results), req.OrgName),
		Results:      report.Results,
		Errors:       report.Errors,
		EmailResults: report.EmailResults,
	})
}

// DeleteOrganization handles DELETE /api/v1/organizations.
func (h *OrganizationHandler) DeleteOrganization(c *gin.Context) {
	var req models.DeleteOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Details: err.Error()})
		return
	}

	report, err := h.orgService.DeleteOrganization(c.Request.Context(), req.OrganizationName)
	if err != nil {
		if errors.Is(err, core.ErrNoOrgUsersDeleted) {
			c.JSON(http.StatusUnprocessableEntity, DeleteOrganizationResponse{
				Success:      false,
				Message:      err.Error(),
				DeletedUsers: []core.DeletedOrgUser{},
				Errors:       report.Errors,
			})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, DeleteOrganizationResponse{
		Success:      true,
		Message:      fmt.Sprintf("Deleted %d users from %s", len(report.DeletedUsers), req.OrganizationName),
		DeletedUsers: report.DeletedUsers,
		Errors:       report.Errors,
	})
}
