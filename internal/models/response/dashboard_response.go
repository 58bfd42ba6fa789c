package response

import (
	"github.com/shopspring/decimal"

	"smarta-landlord-svc/internal/models"
)

// DashboardStatsResponse represents the landlord dashboard summary
type DashboardStatsResponse struct {
	TotalProperties   int                    `json:"total_properties" example:"3"`
	ActiveTenants     int                    `json:"active_tenants" example:"12"`
	TotalMeters       int                    `json:"total_meters" example:"15"`
	ActiveMeters      int                    `json:"active_meters" example:"12"`
	MeterActivityRate int                    `json:"meter_activity_rate" example:"80"`
	RecentReadings    []*models.MeterReading `json:"recent_readings"`
	TotalRevenue      decimal.Decimal        `json:"total_revenue" swaggertype:"string" example:"48200.00"`
}

// PaymentStatsResponse represents payment monitoring statistics
type PaymentStatsResponse struct {
	TotalRevenue      decimal.Decimal `json:"total_revenue" swaggertype:"string" example:"48200.00"`
	PendingPayments   decimal.Decimal `json:"pending_payments" swaggertype:"string" example:"2000.00"`
	CompletedPayments decimal.Decimal `json:"completed_payments" swaggertype:"string" example:"12000.00"`
	AveragePayment    decimal.Decimal `json:"average_payment" swaggertype:"string" example:"4016.67"`
	MonthlyGrowth     decimal.Decimal `json:"monthly_growth" swaggertype:"string" example:"0"`
	TotalTransactions int             `json:"total_transactions" example:"12"`
}

// PropertyOverviewResponse bundles a property with its tenants and meters
type PropertyOverviewResponse struct {
	Property *models.Property `json:"property"`
	Tenants  []*models.Tenant `json:"tenants"`
	Meters   []*models.Meter  `json:"meters"`
}

// ProfileResponse represents the signed-in landlord's profile
type ProfileResponse struct {
	LandlordID      string `json:"landlord_id" example:"5d1c7f7e-3b1a-4d7a-9f3a-2a8f1c0d9e11"`
	Phone           string `json:"phone" example:"254712345678"`
	Role            string `json:"role" example:"landlord"`
	TotalProperties int64  `json:"total_properties" example:"3"`
	TotalTenants    int64  `json:"total_tenants" example:"12"`
	TotalMeters     int64  `json:"total_meters" example:"15"`
}

// MpesaInitiationResponse is returned after an STK push is accepted by the provider
type MpesaInitiationResponse struct {
	PaymentID           string `json:"payment_id" example:"0b6f2a1e-1d7c-4b5e-9a61-5c2f9d6e3a10"`
	TransactionID       string `json:"transaction_id" example:"7c9e6679-7425-40de-944b-e07fc1f90ae7"`
	MerchantRequestID   string `json:"merchant_request_id" example:"29115-34620561-1"`
	CheckoutRequestID   string `json:"checkout_request_id" example:"ws_CO_191220191020363925"`
	CustomerMessage     string `json:"customer_message" example:"Success. Request accepted for processing"`
	ResponseDescription string `json:"response_description" example:"Success. Request accepted for processing"`
}

// PaymentStatusResponse reports the provider's view of an STK push
type PaymentStatusResponse struct {
	PaymentID     string               `json:"payment_id"`
	PaymentStatus models.PaymentStatus `json:"payment_status" example:"pending"`
	ResultCode    *int                 `json:"result_code,omitempty" example:"0"`
	ResultDesc    string               `json:"result_desc,omitempty" example:"The service request is processed successfully."`
	ProviderState string               `json:"provider_state" example:"completed"`
}
