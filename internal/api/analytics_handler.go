package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GymVisa/gymvisa-admin-dashboard/internal/core"
)

// AnalyticsHandler handles reporting endpoints.
type AnalyticsHandler struct {
	analyticsService core.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(as core.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: as}
}

// ScanAnalytics handles GET /api/v1/analytics/scans.
// Query params: period (daily|weekly|monthly, default daily), gym, user,
// start, end (YYYY-MM-DD, inclusive).
func (h *AnalyticsHandler) ScanAnalytics(c *gin.Context) {
	period, err := core.ParsePeriod(c.Query("period"))
	if err != nil {
		respondError(c, err)
		return
	}

	filter := core.ScanFilter{
		GymName: c.Query("gym"),
		UserID:  c.Query("user"),
	}
	filter.Start, filter.End, err = parseDateBounds(c.Query("start"), c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.analyticsService.ScanAnalytics(c.Request.Context(), period, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// TransactionAnalytics handles GET /api/v1/analytics/transactions.
// Query params: period, user, status, start, end.
func (h *AnalyticsHandler) TransactionAnalytics(c *gin.Context) {
	period, err := core.ParsePeriod(c.Query("period"))
	if err != nil {
		respondError(c, err)
		return
	}

	filter := core.TransactionFilter{
		UserID: c.Query("user"),
		Status: c.Query("status"),
	}
	filter.Start, filter.End, err = parseDateBounds(c.Query("start"), c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.analyticsService.TransactionAnalytics(c.Request.Context(), period, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// DashboardStats handles GET /api/v1/analytics/dashboard.
func (h *AnalyticsHandler) DashboardStats(c *gin.Context) {
	stats, err := h.analyticsService.DashboardStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// parseDateBounds turns the start/end query params into inclusive bounds.
// The end bound is pushed to the last instant of its day so "end=2024-01-05"
// includes scans from any time on the 5th.
func parseDateBounds(startStr, endStr string) (*time.Time, *time.Time, error) {
	var start, end *time.Time
	if startStr != "" {
		t, err := time.Parse("2006-01-02", startStr)
		if err != nil {
			return nil, nil, err
		}
		start = &t
	}
	if endStr != "" {
		t, err := time.Parse("2006-01-02", endStr)
		if err != nil {
			return nil, nil, err
		}
		t = t.Add(24*time.Hour - time.Nanosecond)
		end = &t
	}
	return start, end, nil
}
