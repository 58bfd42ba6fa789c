package handler

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"smarta-landlord-svc/internal/middleware"
	"smarta-landlord-svc/internal/service"
	"smarta-landlord-svc/internal/session"
	"smarta-landlord-svc/pkg/logger"
)

// SetupRoutes sets up all API routes
func SetupRoutes(
	router *gin.Engine,
	verifier *session.Verifier,
	propertyService service.PropertyService,
	tenantService service.TenantService,
	meterService service.MeterService,
	readingService service.MeterReadingService,
	billingService service.BillingService,
	paymentService service.PaymentService,
	dashboardService service.DashboardService,
	profileService service.ProfileService,
	logger *logger.Logger,
) {
	// Initialize handlers
	propertyHandler := NewPropertyHandler(propertyService, tenantService, meterService, logger)
	tenantHandler := NewTenantHandler(tenantService, billingService, paymentService, logger)
	meterHandler := NewMeterHandler(meterService, readingService, logger)
	billingHandler := NewBillingHandler(billingService, logger)
	paymentHandler := NewPaymentHandler(paymentService, logger)
	dashboardHandler := NewDashboardHandler(dashboardService, logger)
	profileHandler := NewProfileHandler(profileService, logger)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/api/v1")

	// Health check
	v1.GET("/health", HealthCheck)

	api := v1.Group("", middleware.Auth(verifier, logger))
	{
		api.GET("/profile", profileHandler.GetProfile)
		api.GET("/dashboard/stats", dashboardHandler.GetStats)

		properties := api.Group("/properties")
		{
			properties.GET("", propertyHandler.ListProperties)
			properties.POST("", propertyHandler.CreateProperty)
			properties.GET("/:id", propertyHandler.GetProperty)
			properties.PUT("/:id", propertyHandler.UpdateProperty)
			properties.DELETE("/:id", propertyHandler.DeleteProperty)
			properties.GET("/:id/overview", propertyHandler.GetPropertyOverview)
			properties.GET("/:id/tenants", propertyHandler.ListPropertyTenants)
			properties.GET("/:id/meters", propertyHandler.ListPropertyMeters)
		}

		tenants := api.Group("/tenants")
		{
			tenants.GET("", tenantHandler.ListTenants)
			tenants.POST("", tenantHandler.CreateTenant)
			tenants.PUT("/:id", tenantHandler.UpdateTenant)
			tenants.DELETE("/:id", tenantHandler.DeleteTenant)
			tenants.GET("/:id/billings", tenantHandler.ListTenantBillings)
			tenants.GET("/:id/payments", tenantHandler.ListTenantPayments)
		}

		meters := api.Group("/meters")
		{
			meters.GET("", meterHandler.ListMeters)
			meters.POST("", meterHandler.CreateMeter)
			meters.GET("/available", meterHandler.ListAvailableMeters)
			meters.PUT("/:id", meterHandler.UpdateMeter)
			meters.DELETE("/:id", meterHandler.DeleteMeter)
			meters.POST("/:id/assign", meterHandler.AssignMeter)
			meters.POST("/:id/unassign", meterHandler.UnassignMeter)
			meters.GET("/:id/readings", meterHandler.ListMeterReadings)
			meters.POST("/:id/readings", meterHandler.CreateMeterReading)
		}

		api.GET("/readings/recent", meterHandler.ListRecentReadings)

		billings := api.Group("/billings")
		{
			billings.GET("", billingHandler.ListBillings)
			billings.POST("", billingHandler.CreateBilling)
			billings.GET("/pending", billingHandler.ListPendingBillings)
			billings.GET("/export", billingHandler.ExportBillings)
			billings.GET("/:id", billingHandler.GetBilling)
			billings.PUT("/:id", billingHandler.UpdateBilling)
		}

		payments := api.Group("/payments")
		{
			payments.GET("", paymentHandler.ListPayments)
			payments.GET("/stats", paymentHandler.GetPaymentStats)
			payments.POST("/manual", paymentHandler.CreateManualPayment)
			payments.POST("/mpesa/initiate", paymentHandler.InitiateMpesaPayment)
			payments.GET("/:id/status", paymentHandler.GetPaymentStatus)
		}
	}
}

// HealthCheck handles GET /api/v1/health
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /api/v1/health [get]
func HealthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "ok",
		"message": "Server is running",
		"service": "Smarta Landlord Service",
	})
}
