package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/GymVisa/gymvisa-admin-dashboard/internal/core"
)

// MockAnalyticsService is a mock implementation of core.AnalyticsService.
type MockAnalyticsService struct {
	mock.Mock
}

func (m *MockAnalyticsService) ScanAnalytics(ctx context.Context, period core.Period, filter core.ScanFilter) (*core.ScanAnalytics, error) {
	args := m.Called(ctx, period, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*core.ScanAnalytics), args.Error(1)
}

func (m *MockAnalyticsService) TransactionAnalytics(ctx context.Context, period core.Period, filter core.TransactionFilter) (*core.TransactionAnalytics, error) {
	args := m.Called(ctx, period, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*core.TransactionAnalytics), args.Error(1)
}

func (m *MockAnalyticsService) DashboardStats(ctx context.Context) (*core.DashboardStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*core.DashboardStats), args.Error(1)
}

func newAnalyticsRouter(svc core.AnalyticsService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewAnalyticsHandler(svc)
	router.GET("/analytics/scans", handler.ScanAnalytics)
	router.GET("/analytics/transactions", handler.TransactionAnalytics)
	router.GET("/analytics/dashboard", handler.DashboardStats)
	return router
}

func TestScanAnalyticsEndpoint(t *testing.T) {
	svc := new(MockAnalyticsService)
	router := newAnalyticsRouter(svc)

	svc.On("ScanAnalytics", mock.Anything, core.PeriodWeekly,
		mock.MatchedBy(func(f core.ScanFilter) bool {
			return f.GymName == "Iron Temple" && f.Start != nil && f.End != nil
		})).
		Return(&core.ScanAnalytics{
			Summary: core.ScanSummary{TotalScans: 5},
			Gyms:    []string{"Iron Temple"},
		}, nil)

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/analytics/scans?period=weekly&gym=Iron+Temple&start=2024-01-01&end=2024-01-31", nil)
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)

	var body core.ScanAnalytics
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, 5, body.Summary.TotalScans)
	svc.AssertExpectations(t)
}

func TestScanAnalyticsRejectsBadPeriod(t *testing.T) {
	router := newAnalyticsRouter(new(MockAnalyticsService))

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/analytics/scans?period=hourly", nil)
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestScanAnalyticsRejectsBadDate(t *testing.T) {
	router := newAnalyticsRouter(new(MockAnalyticsService))

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/analytics/scans?start=yesterday", nil)
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestTransactionAnalyticsEndpoint(t *testing.T) {
	svc := new(MockAnalyticsService)
	router := newAnalyticsRouter(svc)

	svc.On("TransactionAnalytics", mock.Anything, core.PeriodDaily, core.TransactionFilter{}).
		Return(&core.TransactionAnalytics{TotalRevenue: 175, TotalCount: 5}, nil)

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/analytics/transactions", nil)
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)

	var body core.TransactionAnalytics
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, 175.0, body.TotalRevenue)
}

func TestDashboardStatsEndpoint(t *testing.T) {
	svc := new(MockAnalyticsService)
	router := newAnalyticsRouter(svc)

	svc.On("DashboardStats", mock.Anything).
		Return(&core.DashboardStats{TotalGyms: 3, TotalUsers: 40}, nil)

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/analytics/dashboard", nil)
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"totalGyms":3`)
}
