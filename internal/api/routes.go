package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GymVisa/gymvisa-admin-dashboard/internal/core"
	"github.com/GymVisa/gymvisa-admin-dashboard/internal/middleware"
)

// Services bundles everything the route table needs. Global middleware
// (logging, recovery, CORS) is applied to the engine before SetupRoutes
// is called, in main.
type Services struct {
	Users         core.UserService
	Organizations core.OrganizationService
	Gyms          core.GymService
	Subscriptions core.SubscriptionService
	Payouts       core.PayoutService
	Notifications core.NotificationService
	Analytics     core.AnalyticsService
}

// SetupRoutes wires every endpoint under /api/v1 behind the admin gate,
// plus the public health check.
func SetupRoutes(router *gin.Engine, authMW *middleware.AuthMiddleware, services Services, logger *zap.Logger) {
	userHandler := NewUserHandler(services.Users)
	orgHandler := NewOrganizationHandler(services.Organizations)
	gymHandler := NewGymHandler(services.Gyms)
	subHandler := NewSubscriptionHandler(services.Subscriptions)
	payoutHandler := NewPayoutHandler(services.Payouts)
	notifHandler := NewNotificationHandler(services.Notifications)
	analyticsHandler := NewAnalyticsHandler(services.Analytics)

	apiV1 := router.Group("/api/v1", authMW.RequireAdmin())
	{
		users := apiV1.Group("/users")
		{
			users.POST("", userHandler.CreateUser)
			users.GET("", userHandler.ListUsers)
			users.GET("/:id", userHandler.GetUser)
			users.PUT("/:id", userHandler.UpdateUser)
			users.PATCH("/:id/freeze", userHandler.SetFrozen)
			users.DELETE("/:id", userHandler.DeleteUser)
		}
		apiV1.POST("/reset-password", userHandler.ResetPassword)

		orgs := apiV1.Group("/organizations")
		{
			orgs.GET("", orgHandler.ListOrganizations)
			orgs.GET("/:name/users", orgHandler.OrganizationUsers)
			orgs.POST("/users", orgHandler.CreateOrgUsers)
			orgs.DELETE("", orgHandler.DeleteOrganization)
		}

		gyms := apiV1.Group("/gyms")
		{
			gyms.GET("", gymHandler.ListGyms)
			gyms.POST("", gymHandler.CreateGym)
			gyms.GET("/:id", gymHandler.GetGym)
			gyms.PUT("/:id", gymHandler.UpdateGym)
			gyms.PATCH("/:id/hours", gymHandler.UpdateHours)
			gyms.DELETE("/:id", gymHandler.DeleteGym)
			gyms.GET("/:id/qrcode", gymHandler.GetAccessCode)
			gyms.POST("/:id/qrcode", gymHandler.RegenerateAccessCode)
			gyms.POST("/:id/images/:slot", gymHandler.UploadImage)
		}

		subscriptions := apiV1.Group("/subscriptions")
		{
			subscriptions.GET("", subHandler.ListPlans)
			subscriptions.GET("/:id", subHandler.GetPlan)
			subscriptions.PUT("/:id", subHandler.UpdatePlan)
		}

		payouts := apiV1.Group("/payout-requests")
		{
			payouts.GET("", payoutHandler.ListPayouts)
			payouts.GET("/pending-count", payoutHandler.PendingCount)
			payouts.GET("/:id", payoutHandler.GetPayout)
			payouts.POST("/:id/approve", payoutHandler.ApprovePayout)
			payouts.POST("/:id/reject", payoutHandler.RejectPayout)
		}

		apiV1.POST("/send-notification", notifHandler.Send)
		apiV1.GET("/notifications/recipients", notifHandler.Recipients)

		analytics := apiV1.Group("/analytics")
		{
			analytics.GET("/scans", analyticsHandler.ScanAnalytics)
			analytics.GET("/transactions", analyticsHandler.TransactionAnalytics)
			analytics.GET("/dashboard", analyticsHandler.DashboardStats)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP"})
	})

	logger.Info("API routes configured under /api/v1 and /health")
}
