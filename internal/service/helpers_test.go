package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"gorm.io/gorm"

	"smarta-landlord-svc/internal/mpesa"
	"smarta-landlord-svc/internal/repository"
	"smarta-landlord-svc/internal/testutil"
	"smarta-landlord-svc/pkg/logger"
)

var fixedNow = time.Date(2025, time.June, 15, 9, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

type fakeGateway struct {
	mu        sync.Mutex
	pushes    []mpesa.STKPushRequest
	queries   []string
	pushErr   error
	queryResp *mpesa.STKQueryResponse
	queryErr  error
}

func (g *fakeGateway) STKPush(_ context.Context, in mpesa.STKPushRequest) (*mpesa.STKPushResponse, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.pushes = append(g.pushes, in)
	if g.pushErr != nil {
		return nil, g.pushErr
	}
	return &mpesa.STKPushResponse{
		MerchantRequestID:   "29115-1",
		CheckoutRequestID:   "ws_CO_1",
		ResponseCode:        "0",
		ResponseDescription: "Success. Request accepted for processing",
		CustomerMessage:     "Success. Request accepted for processing",
		Raw:                 []byte(`{"ResponseCode":"0"}`),
	}, nil
}

func (g *fakeGateway) STKQuery(_ context.Context, checkoutRequestID string) (*mpesa.STKQueryResponse, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.queries = append(g.queries, checkoutRequestID)
	if g.queryErr != nil {
		return nil, g.queryErr
	}
	if g.queryResp == nil {
		return nil, errors.New("no query response configured")
	}
	return g.queryResp, nil
}

// services bundles every service over one test database
type services struct {
	db       *gorm.DB
	property PropertyService
	tenant   TenantService
	meter    MeterService
	reading  MeterReadingService
	billing  BillingService
	payment  PaymentService
	dash     DashboardService
	profile  ProfileService
	gateway  *fakeGateway
}

func newServices(t *testing.T) *services {
	t.Helper()
	db := testutil.NewTestDB(t)
	log := logger.NewTestLogger()

	propertyRepo := repository.NewPropertyRepository(db)
	tenantRepo := repository.NewTenantRepository(db)
	meterRepo := repository.NewMeterRepository(db)
	readingRepo := repository.NewMeterReadingRepository(db)
	billingRepo := repository.NewBillingRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	mpesaRepo := repository.NewMpesaTransactionRepository(db)
	gateway := &fakeGateway{}

	reading := NewMeterReadingService(readingRepo, meterRepo, db, log).(*meterReadingService)
	reading.now = clock
	billing := NewBillingService(billingRepo, tenantRepo, meterRepo, "KES", log).(*billingService)
	billing.now = clock
	payment := NewPaymentService(paymentRepo, mpesaRepo, billingRepo, tenantRepo, gateway, db, log).(*paymentService)
	payment.now = clock

	return &services{
		db:       db,
		property: NewPropertyService(propertyRepo, tenantRepo, meterRepo, log),
		tenant:   NewTenantService(tenantRepo, propertyRepo, log),
		meter:    NewMeterService(meterRepo, propertyRepo, tenantRepo, log),
		reading:  reading,
		billing:  billing,
		payment:  payment,
		dash:     NewDashboardService(repository.NewDashboardRepository(db), readingRepo, paymentRepo, log),
		profile:  NewProfileService(repository.NewProfileRepository(db), log),
		gateway:  gateway,
	}
}
