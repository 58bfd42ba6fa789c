package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"smarta-landlord-svc/internal/metrics"
	"smarta-landlord-svc/internal/models"
	"smarta-landlord-svc/internal/models/response"
	"smarta-landlord-svc/internal/mpesa"
	"smarta-landlord-svc/internal/repository"
	"smarta-landlord-svc/internal/session"
	"smarta-landlord-svc/pkg/logger"
)

const (
	// statsWindow is the trailing window for recent payment statistics
	statsWindow = 30 * 24 * time.Hour

	// mpesaCancelledResultCode is Daraja's "request cancelled by user"
	mpesaCancelledResultCode = 1032
)

// MobileMoneyGateway initiates and queries STK pushes
type MobileMoneyGateway interface {
	STKPush(ctx context.Context, in mpesa.STKPushRequest) (*mpesa.STKPushResponse, error)
	STKQuery(ctx context.Context, checkoutRequestID string) (*mpesa.STKQueryResponse, error)
}

// ManualPaymentInput records a payment received outside the mobile-money flow
type ManualPaymentInput struct {
	BillingID        string               `json:"billing_id" binding:"required"`
	TenantID         string               `json:"tenant_id" binding:"required"`
	Amount           decimal.Decimal      `json:"amount" swaggertype:"string" example:"2000"`
	PaymentMethod    models.PaymentMethod `json:"payment_method" binding:"required" example:"cash"`
	PaymentReference string               `json:"payment_reference,omitempty" example:"PAY_1717230000000_X7K2QD"`
}

// MpesaPaymentInput starts an STK push for a bill
type MpesaPaymentInput struct {
	TenantID         string          `json:"tenant_id" binding:"required"`
	BillingID        string          `json:"billing_id" binding:"required"`
	Amount           decimal.Decimal `json:"amount" swaggertype:"string" example:"2000"`
	PhoneNumber      string          `json:"phone_number" binding:"required" example:"0712345678"`
	AccountReference string          `json:"account_reference,omitempty" example:"BILL_9e11c0d2"`
	TransactionDesc  string          `json:"transaction_desc,omitempty" example:"Water bill payment"`
}

// PaymentService defines the interface for payment business operations
type PaymentService interface {
	List(ctx context.Context, s session.Session, page, perPage int) ([]*models.Payment, int64, error)
	ListByTenant(ctx context.Context, s session.Session, tenantID string) ([]*models.Payment, error)
	GetStats(ctx context.Context, s session.Session) (*response.PaymentStatsResponse, error)
	CreateManual(ctx context.Context, s session.Session, in ManualPaymentInput) (*models.Payment, error)
	InitiateMpesa(ctx context.Context, s session.Session, in MpesaPaymentInput) (*response.MpesaInitiationResponse, error)
	CheckStatus(ctx context.Context, s session.Session, paymentID string) (*response.PaymentStatusResponse, error)
}

// paymentService implements PaymentService
type paymentService struct {
	paymentRepo repository.PaymentRepository
	mpesaRepo   repository.MpesaTransactionRepository
	billingRepo repository.BillingRepository
	tenantRepo  repository.TenantRepository
	gateway     MobileMoneyGateway
	db          *gorm.DB
	logger      *logger.Logger
	now         func() time.Time
}

// NewPaymentService creates a new instance of PaymentService
func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	mpesaRepo repository.MpesaTransactionRepository,
	billingRepo repository.BillingRepository,
	tenantRepo repository.TenantRepository,
	gateway MobileMoneyGateway,
	db *gorm.DB,
	logger *logger.Logger,
) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		mpesaRepo:   mpesaRepo,
		billingRepo: billingRepo,
		tenantRepo:  tenantRepo,
		gateway:     gateway,
		db:          db,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// NewPaymentReference generates a reference of the form PAY_<unix-millis>_<6 alphanumerics>
func NewPaymentReference(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:6]
	return fmt.Sprintf("PAY_%d_%s", now.UnixMilli(), suffix)
}

// List retrieves one page of the landlord's payments and the total count
func (s *paymentService) List(ctx context.Context, sess session.Session, page, perPage int) ([]*models.Payment, int64, error) {
	payments, total, err := s.paymentRepo.List(ctx, sess, page, perPage)
	if err != nil {
		s.logger.WithError(err).WithFields(map[string]interface{}{
			"page":     page,
			"per_page": perPage,
		}).Error("Failed to list payments")
		return nil, 0, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, total, nil
}

// ListByTenant retrieves the payments of one tenant
func (s *paymentService) ListByTenant(ctx context.Context, sess session.Session, tenantID string) ([]*models.Payment, error) {
	if _, err := s.tenantRepo.GetByID(ctx, sess, tenantID); err != nil {
		return nil, notFoundOr(err, "tenant")
	}

	payments, err := s.paymentRepo.ListByTenant(ctx, sess, tenantID)
	if err != nil {
		s.logger.WithError(err).WithField("tenant_id", tenantID).Error("Failed to list tenant payments")
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}

// payableBill loads a bill for payment and checks it against the paying tenant
func payableBill(ctx context.Context, billings repository.BillingRepository, sess session.Session, billingID, tenantID string) (*models.Billing, error) {
	bill, err := billings.GetByIDForUpdate(ctx, sess, billingID)
	if err != nil {
		return nil, notFoundOr(err, "billing")
	}
	if bill.TenantID != tenantID {
		return nil, invalidf("billing %s does not belong to tenant %s", billingID, tenantID)
	}
	if !bill.Status.Payable() {
		return nil, fmt.Errorf("%w: billing %s is %s", ErrBillNotPayable, billingID, bill.Status)
	}
	return bill, nil
}

// CreateManual records a trusted payment as completed and marks its bill paid, atomically
func (s *paymentService) CreateManual(ctx context.Context, sess session.Session, in ManualPaymentInput) (*models.Payment, error) {
	if !in.PaymentMethod.Valid() {
		return nil, invalidf("payment_method must be mpesa, bank_transfer or cash")
	}
	if !in.Amount.IsPositive() {
		return nil, invalidf("amount must be greater than zero")
	}

	now := s.now()
	reference := strings.TrimSpace(in.PaymentReference)
	if reference == "" {
		reference = NewPaymentReference(now)
	}

	payment := &models.Payment{
		BillingID:        in.BillingID,
		TenantID:         in.TenantID,
		Amount:           in.Amount.Round(minorUnitPlaces),
		PaymentMethod:    in.PaymentMethod,
		PaymentStatus:    models.PaymentStatusCompleted,
		PaymentReference: reference,
		PaymentDate:      now,
		ConfirmedAt:      &now,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		billings := repository.NewBillingRepository(tx)

		if _, err := payableBill(ctx, billings, sess, in.BillingID, in.TenantID); err != nil {
			return err
		}

		if err := repository.NewPaymentRepository(tx).Create(ctx, payment); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return invalidf("payment_reference %q is already used", reference)
			}
			return fmt.Errorf("failed to create payment: %w", err)
		}

		if err := billings.MarkPaid(ctx, in.BillingID, now); err != nil {
			return fmt.Errorf("failed to mark billing paid: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.WithError(err).WithFields(map[string]interface{}{
			"billing_id": in.BillingID,
			"tenant_id":  in.TenantID,
		}).Error("Failed to record manual payment")
		return nil, err
	}

	metrics.RecordPayment(string(payment.PaymentMethod))
	s.logger.WithFields(map[string]interface{}{
		"payment_id":        payment.ID,
		"billing_id":        payment.BillingID,
		"payment_reference": payment.PaymentReference,
		"amount":            payment.Amount.String(),
	}).Info("Manual payment recorded")

	return payment, nil
}

// InitiateMpesa creates a pending payment and asks the provider to prompt the customer's phone.
// Confirmation arrives out of band; the payment stays pending here.
func (s *paymentService) InitiateMpesa(ctx context.Context, sess session.Session, in MpesaPaymentInput) (*response.MpesaInitiationResponse, error) {
	if !in.Amount.IsPositive() {
		return nil, invalidf("amount must be greater than zero")
	}
	phone, err := mpesa.NormalizePhone(in.PhoneNumber)
	if err != nil {
		return nil, invalidf("phone_number must be a Kenyan mobile number")
	}

	accountRef := strings.TrimSpace(in.AccountReference)
	if accountRef == "" {
		accountRef = defaultAccountReference(in.BillingID)
	}
	desc := strings.TrimSpace(in.TransactionDesc)
	if desc == "" {
		desc = "Water bill payment"
	}

	now := s.now()
	amount := in.Amount.Round(minorUnitPlaces)
	payment := &models.Payment{
		BillingID:        in.BillingID,
		TenantID:         in.TenantID,
		Amount:           amount,
		PaymentMethod:    models.PaymentMethodMpesa,
		PaymentStatus:    models.PaymentStatusPending,
		PaymentReference: NewPaymentReference(now),
		PaymentDate:      now,
	}
	txn := &models.MpesaTransaction{
		Amount:           amount,
		PhoneNumber:      phone,
		AccountReference: accountRef,
		TransactionDesc:  desc,
		Status:           models.MpesaStatusInitiated,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := payableBill(ctx, repository.NewBillingRepository(tx), sess, in.BillingID, in.TenantID); err != nil {
			return err
		}
		if err := repository.NewPaymentRepository(tx).Create(ctx, payment); err != nil {
			return fmt.Errorf("failed to create payment: %w", err)
		}
		txn.PaymentID = &payment.ID
		if err := repository.NewMpesaTransactionRepository(tx).Create(ctx, txn); err != nil {
			return fmt.Errorf("failed to create mpesa transaction: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.WithError(err).WithField("billing_id", in.BillingID).Error("Failed to prepare M-Pesa payment")
		return nil, err
	}

	log := s.logger.WithFields(map[string]interface{}{
		"payment_id":     payment.ID,
		"transaction_id": txn.ID,
		"billing_id":     in.BillingID,
	})

	pushed, err := s.gateway.STKPush(ctx, mpesa.STKPushRequest{
		Amount:           amount,
		PhoneNumber:      phone,
		AccountReference: accountRef,
		TransactionDesc:  desc,
	})
	if err != nil {
		metrics.RecordMpesaInitiation("failed")
		log.WithError(err).Error("STK push failed")

		// the failure is recorded even when the request context is already cancelled
		cleanupCtx := context.WithoutCancel(ctx)
		reason := err.Error()
		if uerr := s.mpesaRepo.Update(cleanupCtx, txn.ID, map[string]interface{}{
			"status":      models.MpesaStatusFailed,
			"result_desc": &reason,
		}); uerr != nil {
			log.WithError(uerr).Error("Failed to mark mpesa transaction failed")
		}
		if uerr := s.paymentRepo.UpdateStatus(cleanupCtx, payment.ID, models.PaymentStatusFailed); uerr != nil {
			log.WithError(uerr).Error("Failed to mark payment failed")
		}
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}

	if err := s.mpesaRepo.Update(ctx, txn.ID, map[string]interface{}{
		"merchant_request_id": pushed.MerchantRequestID,
		"checkout_request_id": pushed.CheckoutRequestID,
		"status":              models.MpesaStatusPending,
		"raw_response":        rawJSON(pushed.Raw),
	}); err != nil {
		log.WithError(err).Error("Failed to store STK push acknowledgement")
		return nil, fmt.Errorf("failed to update mpesa transaction: %w", err)
	}
	if err := s.paymentRepo.SetMpesaTransactionID(ctx, payment.ID, pushed.CheckoutRequestID); err != nil {
		log.WithError(err).Warn("Failed to link checkout request to payment")
	}

	metrics.RecordMpesaInitiation("accepted")
	log.WithField("checkout_request_id", pushed.CheckoutRequestID).Info("M-Pesa payment initiated")

	return &response.MpesaInitiationResponse{
		PaymentID:           payment.ID,
		TransactionID:       txn.ID,
		MerchantRequestID:   pushed.MerchantRequestID,
		CheckoutRequestID:   pushed.CheckoutRequestID,
		CustomerMessage:     pushed.CustomerMessage,
		ResponseDescription: pushed.ResponseDescription,
	}, nil
}

// defaultAccountReference is BILL_ followed by the last eight characters of the bill id
func defaultAccountReference(billingID string) string {
	id := billingID
	if len(id) > 8 {
		id = id[len(id)-8:]
	}
	return "BILL_" + id
}

// CheckStatus queries the provider for the payment's STK push and records the result on the
// transaction row. The payment itself is not completed here.
func (s *paymentService) CheckStatus(ctx context.Context, sess session.Session, paymentID string) (*response.PaymentStatusResponse, error) {
	payment, err := s.paymentRepo.GetByID(ctx, sess, paymentID)
	if err != nil {
		return nil, notFoundOr(err, "payment")
	}
	if payment.PaymentMethod != models.PaymentMethodMpesa {
		return &response.PaymentStatusResponse{
			PaymentID:     payment.ID,
			PaymentStatus: payment.PaymentStatus,
			ProviderState: string(payment.PaymentStatus),
		}, nil
	}

	txn, err := s.mpesaRepo.GetByPaymentID(ctx, paymentID)
	if err != nil {
		return nil, notFoundOr(err, "mpesa transaction")
	}

	status := &response.PaymentStatusResponse{
		PaymentID:     payment.ID,
		PaymentStatus: payment.PaymentStatus,
		ResultCode:    txn.ResultCode,
		ProviderState: string(txn.Status),
	}
	if txn.ResultDesc != nil {
		status.ResultDesc = *txn.ResultDesc
	}
	if txn.CheckoutRequestID == "" {
		return status, nil
	}

	queried, err := s.gateway.STKQuery(ctx, txn.CheckoutRequestID)
	if err != nil {
		s.logger.WithError(err).WithField("payment_id", paymentID).Error("STK query failed")
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}

	fields := map[string]interface{}{
		"raw_response": rawJSON(queried.Raw),
	}
	state := models.MpesaStatusPending
	if code, ok := queried.ResultCodeInt(); ok {
		state = mpesaStateForResult(code)
		desc := queried.ResultDesc
		fields["result_code"] = &code
		fields["result_desc"] = &desc
		status.ResultCode = &code
		status.ResultDesc = desc
	}
	fields["status"] = state
	status.ProviderState = string(state)

	if err := s.mpesaRepo.Update(ctx, txn.ID, fields); err != nil {
		s.logger.WithError(err).WithField("transaction_id", txn.ID).Error("Failed to record STK query result")
		return nil, fmt.Errorf("failed to update mpesa transaction: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"payment_id":     paymentID,
		"provider_state": status.ProviderState,
	}).Info("M-Pesa status checked")

	return status, nil
}

func mpesaStateForResult(code int) models.MpesaTransactionStatus {
	switch code {
	case 0:
		return models.MpesaStatusCompleted
	case mpesaCancelledResultCode:
		return models.MpesaStatusCancelled
	default:
		return models.MpesaStatusFailed
	}
}

// GetStats aggregates payment totals. averagePayment divides all-time revenue by the number
// of payments made in the trailing 30 days and is zero when there are none.
func (s *paymentService) GetStats(ctx context.Context, sess session.Session) (*response.PaymentStatsResponse, error) {
	completed := models.PaymentStatusCompleted
	pending := models.PaymentStatusPending
	since := s.now().Add(-statsWindow)

	var allCompleted, allPending, recentCompleted, recent []decimal.Decimal

	g, gctx := errgroup.WithContext(ctx)
	fetch := func(dst *[]decimal.Decimal, filter repository.PaymentAmountFilter) {
		g.Go(func() error {
			amounts, err := s.paymentRepo.Amounts(gctx, sess, filter)
			if err != nil {
				return err
			}
			*dst = amounts
			return nil
		})
	}
	fetch(&allCompleted, repository.PaymentAmountFilter{Status: &completed})
	fetch(&allPending, repository.PaymentAmountFilter{Status: &pending})
	fetch(&recentCompleted, repository.PaymentAmountFilter{Status: &completed, Since: &since})
	fetch(&recent, repository.PaymentAmountFilter{Since: &since})

	if err := g.Wait(); err != nil {
		s.logger.WithError(err).Error("Failed to load payment statistics")
		return nil, fmt.Errorf("failed to load payment statistics: %w", err)
	}

	stats := &response.PaymentStatsResponse{
		TotalRevenue:      sumDecimals(allCompleted),
		PendingPayments:   sumDecimals(allPending),
		CompletedPayments: sumDecimals(recentCompleted),
		AveragePayment:    decimal.Zero,
		MonthlyGrowth:     decimal.Zero,
		TotalTransactions: len(recent),
	}
	if stats.TotalTransactions > 0 {
		stats.AveragePayment = stats.TotalRevenue.DivRound(decimal.NewFromInt(int64(stats.TotalTransactions)), minorUnitPlaces)
	}

	return stats, nil
}

func sumDecimals(values []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// rawJSON keeps a provider payload only when it is valid JSON
func rawJSON(b []byte) datatypes.JSON {
	if len(b) == 0 || !json.Valid(b) {
		return nil
	}
	return datatypes.JSON(b)
}
