package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/GymVisa/gymvisa-admin-dashboard/internal/api"
	"github.com/GymVisa/gymvisa-admin-dashboard/internal/config"
	"github.com/GymVisa/gymvisa-admin-dashboard/internal/core"
	"github.com/GymVisa/gymvisa-admin-dashboard/internal/db"
	"github.com/GymVisa/gymvisa-admin-dashboard/internal/mailer"
	"github.com/GymVisa/gymvisa-admin-dashboard/internal/middleware"
	"github.com/GymVisa/gymvisa-admin-dashboard/pkg/cache"
	"github.com/GymVisa/gymvisa-admin-dashboard/pkg/messagequeue"
)

func main() {
	// .env is a local development convenience; in deployment the variables
	// come from the environment directly.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not load .env file: %v", err)
	}

	appConfig, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load application configuration: %v", err)
	}

	var zapLogger *zap.Logger
	if strings.ToLower(appConfig.GinMode) == "release" {
		zapLogger, err = zap.NewProduction()
	} else {
		zapLogger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Failed to initialize Zap logger: %v", err)
	}
	defer zapLogger.Sync()
	zapLogger.Info("Configuration loaded", zap.String("port", appConfig.Port))

	initCtx, cancelInit := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelInit()
	clients, err := db.NewClients(initCtx, appConfig)
	if err != nil {
		zapLogger.Fatal("Failed to initialize Firebase clients", zap.Error(err))
	}
	defer clients.Close()
	zapLogger.Info("Firebase Admin SDK initialized",
		zap.String("project", appConfig.FirebaseProjectID))

	// Repositories.
	userRepo := db.NewFirestoreUserRepository(clients.Firestore)
	gymRepo := db.NewFirestoreGymRepository(clients.Firestore)
	scanRepo := db.NewFirestoreScanRepository(clients.Firestore)
	txnRepo := db.NewFirestoreTransactionRepository(clients.Firestore)
	subRepo := db.NewFirestoreSubscriptionRepository(clients.Firestore)
	payoutRepo := db.NewFirestorePayoutRepository(clients.Firestore)
	auditRepo := db.NewFirestoreAuditRepository(clients.Firestore)
	imageStore := db.NewFirebaseImageStore(clients.Storage, appConfig.StorageBucket)

	// Optional infrastructure. The dashboard runs without any of these,
	// with the corresponding feature degraded.
	var responseCache cache.Cache
	if appConfig.RedisAddress != "" {
		responseCache, err = cache.NewRedisCache(initCtx, cache.RedisConfig{
			Address:  appConfig.RedisAddress,
			Password: appConfig.RedisPassword,
			DB:       appConfig.RedisDB,
		})
		if err != nil {
			zapLogger.Warn("Redis unavailable, analytics caching disabled", zap.Error(err))
			responseCache = nil
		}
	}

	var auditPublisher messagequeue.Publisher
	if appConfig.AMQPURL != "" {
		auditPublisher, err = messagequeue.NewRabbitMQPublisher(appConfig.AMQPURL)
		if err != nil {
			zapLogger.Warn("AMQP unavailable, audit events will not be published", zap.Error(err))
			auditPublisher = nil
		} else {
			defer auditPublisher.Close()
		}
	}

	var credentialMailer mailer.Mailer
	if appConfig.SMTPUser != "" && appConfig.SMTPPass != "" {
		credentialMailer, err = mailer.NewSMTPMailer(mailer.SMTPConfig{
			Host:   appConfig.SMTPHost,
			Port:   appConfig.SMTPPort,
			User:   appConfig.SMTPUser,
			Pass:   appConfig.SMTPPass,
			Sender: appConfig.SMTPSender,
		})
		if err != nil {
			zapLogger.Warn("SMTP misconfigured, credential emails disabled", zap.Error(err))
			credentialMailer = nil
		}
	} else {
		zapLogger.Warn("SMTP credentials not set, credential emails disabled")
	}

	// Services.
	auditService := core.NewAuditService(auditRepo, auditPublisher, zapLogger)
	userService := core.NewUserService(userRepo, clients.Auth, auditService, zapLogger)
	orgService := core.NewOrganizationService(userRepo, clients.Auth, credentialMailer, auditService, zapLogger)
	gymService := core.NewGymService(gymRepo, imageStore, auditService, zapLogger)
	subService := core.NewSubscriptionService(subRepo, auditService, zapLogger)
	payoutService := core.NewPayoutService(payoutRepo, auditService, zapLogger)
	notifService := core.NewNotificationService(clients.Messaging, userRepo, auditService, zapLogger)
	analyticsService := core.NewAnalyticsService(scanRepo, txnRepo, userRepo, gymRepo, responseCache, zapLogger)

	// The pending payout counter runs for the lifetime of the process.
	watcherCtx, stopWatcher := context.WithCancel(context.Background())
	defer stopWatcher()
	payoutService.StartPendingWatcher(watcherCtx)

	if strings.ToLower(appConfig.GinMode) == "release" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	router := gin.New()

	router.Use(middleware.RequestLogger(zapLogger))
	router.Use(middleware.RecoveryMiddleware(zapLogger))
	if appConfig.ClientURL != "" {
		router.Use(middleware.CORSMiddleware(appConfig.ClientURL))
	} else {
		zapLogger.Warn("CLIENT_URL not configured, CORS middleware skipped")
	}

	authMW := middleware.NewAuthMiddleware(clients.Auth, appConfig.AdminEmail, zapLogger)
	api.SetupRoutes(router, authMW, api.Services{
		Users:         userService,
		Organizations: orgService,
		Gyms:          gymService,
		Subscriptions: subService,
		Payouts:       payoutService,
		Notifications: notifService,
		Analytics:     analyticsService,
	}, zapLogger)

	server := &http.Server{
		Addr:    ":" + appConfig.Port,
		Handler: router,
	}

	go func() {
		zapLogger.Info("Server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("Shutdown signal received")

	stopWatcher()
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Graceful shutdown failed", zap.Error(err))
	}
	zapLogger.Info("Server stopped")
}
