package handler

import (
	"github.com/gin-gonic/gin"

	"smarta-landlord-svc/internal/service"
	"smarta-landlord-svc/pkg/logger"
	"smarta-landlord-svc/pkg/utils"
)

// PaymentHandler handles payment-related HTTP requests
type PaymentHandler struct {
	paymentService service.PaymentService
	logger         *logger.Logger
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService service.PaymentService, logger *logger.Logger) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		logger:         logger,
	}
}

// ListPayments handles GET /api/v1/payments
// @Summary List payments
// @Description Payments newest first with their bill, tenant and property
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default: 1)"
// @Param per_page query int false "Items per page (default: 20, max: 100)"
// @Success 200 {object} utils.PaginatedResponse{data=[]models.Payment} "Payments retrieved successfully"
// @Router /api/v1/payments [get]
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}

	page, perPage := utils.GetPaginationParams(c)

	payments, total, err := h.paymentService.List(c.Request.Context(), s, page, perPage)
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve payments")
		return
	}

	utils.PaginatedSuccessResponse(c, "Payments retrieved successfully", payments, page, perPage, total)
}

// GetPaymentStats handles GET /api/v1/payments/stats
// @Summary Get payment statistics
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse{data=response.PaymentStatsResponse} "Payment statistics retrieved successfully"
// @Router /api/v1/payments/stats [get]
func (h *PaymentHandler) GetPaymentStats(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}

	stats, err := h.paymentService.GetStats(c.Request.Context(), s)
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve payment statistics")
		return
	}

	utils.SuccessResponse(c, "Payment statistics retrieved successfully", stats)
}

// CreateManualPayment handles POST /api/v1/payments/manual
// @Summary Record a manual payment
// @Description Records a completed cash or bank payment and marks the bill paid in one transaction
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.ManualPaymentInput true "Payment"
// @Success 201 {object} utils.APIResponse{data=models.Payment} "Payment recorded successfully"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 404 {object} utils.APIResponse "Billing not found"
// @Failure 409 {object} utils.APIResponse "Bill is already paid or cancelled"
// @Router /api/v1/payments/manual [post]
func (h *PaymentHandler) CreateManualPayment(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}

	var req service.ManualPaymentInput
	if !bindJSON(c, h.logger, &req) {
		return
	}

	payment, err := h.paymentService.CreateManual(c.Request.Context(), s, req)
	if err != nil {
		respondError(c, h.logger, err, "Failed to record payment")
		return
	}

	utils.CreatedResponse(c, "Payment recorded successfully", payment)
}

// InitiateMpesaPayment handles POST /api/v1/payments/mpesa/initiate
// @Summary Start an M-Pesa STK push
// @Description Creates a pending payment and prompts the customer's phone. The bill stays unpaid until confirmation.
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.MpesaPaymentInput true "STK push request"
// @Success 200 {object} utils.APIResponse{data=response.MpesaInitiationResponse} "STK push sent"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 404 {object} utils.APIResponse "Billing not found"
// @Failure 409 {object} utils.APIResponse "Bill is already paid or cancelled"
// @Failure 502 {object} utils.APIResponse "M-Pesa unavailable"
// @Router /api/v1/payments/mpesa/initiate [post]
func (h *PaymentHandler) InitiateMpesaPayment(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}

	var req service.MpesaPaymentInput
	if !bindJSON(c, h.logger, &req) {
		return
	}

	resp, err := h.paymentService.InitiateMpesa(c.Request.Context(), s, req)
	if err != nil {
		respondError(c, h.logger, err, "Failed to initiate M-Pesa payment")
		return
	}

	utils.SuccessResponse(c, "STK push sent", resp)
}

// GetPaymentStatus handles GET /api/v1/payments/:id/status
// @Summary Query the provider status of a payment
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payment ID"
// @Success 200 {object} utils.APIResponse{data=response.PaymentStatusResponse} "Payment status retrieved successfully"
// @Failure 404 {object} utils.APIResponse "Payment not found"
// @Failure 502 {object} utils.APIResponse "M-Pesa unavailable"
// @Router /api/v1/payments/{id}/status [get]
func (h *PaymentHandler) GetPaymentStatus(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}

	status, err := h.paymentService.CheckStatus(c.Request.Context(), s, c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "Failed to check payment status")
		return
	}

	utils.SuccessResponse(c, "Payment status retrieved successfully", status)
}
