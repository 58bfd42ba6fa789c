package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"smarta-landlord-svc/docs"
	"smarta-landlord-svc/internal/config"
	"smarta-landlord-svc/internal/database"
	"smarta-landlord-svc/internal/handler"
	"smarta-landlord-svc/internal/metrics"
	"smarta-landlord-svc/internal/middleware"
	"smarta-landlord-svc/internal/mpesa"
	"smarta-landlord-svc/internal/repository"
	"smarta-landlord-svc/internal/scheduler"
	"smarta-landlord-svc/internal/service"
	"smarta-landlord-svc/internal/session"
	"smarta-landlord-svc/pkg/logger"
)

// @title Smarta Landlord Service API
// @version 1.0
// @description Property, tenant, meter, billing and M-Pesa payment API for landlords

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Swagger documentation
	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%s", cfg.Server.Port)

	// Initialize logger
	appLogger := logger.NewLogger(cfg.Logger.Level, cfg.Logger.Format)
	appLogger.Info("Starting Smarta Landlord Service...")

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Initialize database
	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		appLogger.WithField("error", err).Fatal("Failed to connect to database")
	}
	appLogger.WithField("driver", cfg.Database.Driver).Info("Database connected successfully")

	// Run auto migration
	if err := db.AutoMigrate(); err != nil {
		appLogger.WithField("error", err).Fatal("Failed to run database migrations")
	}
	appLogger.Info("Database migrations completed successfully")

	// Initialize repositories
	propertyRepo := repository.NewPropertyRepository(db.DB)
	tenantRepo := repository.NewTenantRepository(db.DB)
	meterRepo := repository.NewMeterRepository(db.DB)
	readingRepo := repository.NewMeterReadingRepository(db.DB)
	billingRepo := repository.NewBillingRepository(db.DB)
	paymentRepo := repository.NewPaymentRepository(db.DB)
	mpesaRepo := repository.NewMpesaTransactionRepository(db.DB)
	dashboardRepo := repository.NewDashboardRepository(db.DB)
	profileRepo := repository.NewProfileRepository(db.DB)
	logSchedulerRepo := repository.NewLogSchedulerRepository(db.DB)

	// Initialize services
	mpesaClient := mpesa.NewClient(cfg.Mpesa, appLogger)
	propertyService := service.NewPropertyService(propertyRepo, tenantRepo, meterRepo, appLogger)
	tenantService := service.NewTenantService(tenantRepo, propertyRepo, appLogger)
	meterService := service.NewMeterService(meterRepo, propertyRepo, tenantRepo, appLogger)
	readingService := service.NewMeterReadingService(readingRepo, meterRepo, db.DB, appLogger)
	billingService := service.NewBillingService(billingRepo, tenantRepo, meterRepo, cfg.Billing.Currency, appLogger)
	paymentService := service.NewPaymentService(paymentRepo, mpesaRepo, billingRepo, tenantRepo, mpesaClient, db.DB, appLogger)
	dashboardService := service.NewDashboardService(dashboardRepo, readingRepo, paymentRepo, appLogger)
	profileService := service.NewProfileService(profileRepo, appLogger)

	// Initialize scheduler
	overdueScheduler := scheduler.NewOverdueScheduler(billingService, logSchedulerRepo, appLogger, cfg.Scheduler.OverdueCronExpression)
	if err := overdueScheduler.Start(); err != nil {
		appLogger.WithField("error", err).Fatal("Failed to start overdue scheduler")
	}

	// Initialize Gin router
	router := gin.New()

	// Add middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(cfg.CORS.AllowedOriginList()))
	router.Use(middleware.LoggerMiddleware(appLogger))
	router.Use(middleware.ErrorHandler(appLogger))
	if cfg.Metrics.Enabled {
		router.Use(metrics.Middleware())
		router.GET("/metrics", metrics.Handler())
	}
	router.NoRoute(middleware.NoRouteHandler())
	router.NoMethod(middleware.NoMethodHandler())
	router.HandleMethodNotAllowed = true

	// Setup routes
	handler.SetupRoutes(
		router,
		session.NewVerifier(cfg.JWT.Secret),
		propertyService,
		tenantService,
		meterService,
		readingService,
		billingService,
		paymentService,
		dashboardService,
		profileService,
		appLogger,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		appLogger.WithField("port", cfg.Server.Port).Info("Server starting...")
		appLogger.WithField("swagger", fmt.Sprintf("http://localhost:%s/swagger/index.html", cfg.Server.Port)).Info("Swagger documentation available")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.WithField("error", err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.WithField("error", err).Error("Server forced to shutdown")
	}

	overdueScheduler.Stop()

	// Close database connection
	if err := db.Close(); err != nil {
		appLogger.WithField("error", err).Error("Failed to close database connection")
	}

	appLogger.Info("Server exited successfully")
}
