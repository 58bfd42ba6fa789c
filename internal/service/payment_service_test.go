package service

import (
	"errors"
	"regexp"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smarta-landlord-svc/internal/models"
	"smarta-landlord-svc/internal/mpesa"
	"smarta-landlord-svc/internal/testutil"
)

func TestNewPaymentReference(t *testing.T) {
	ref := NewPaymentReference(fixedNow)
	assert.Regexp(t, regexp.MustCompile(`^PAY_1749978000000_[0-9A-Z]{6}$`), ref)
	assert.NotEqual(t, ref, NewPaymentReference(fixedNow))
}

func TestPaymentService_CreateManualMarksBillPaid(t *testing.T) {
	f := newBillingFixture(t)

	for _, status := range []models.BillingStatus{models.BillingStatusPending, models.BillingStatusOverdue} {
		t.Run(string(status), func(t *testing.T) {
			bill := testutil.CreateBilling(t, f.db, f.tenant.ID, f.meter.ID, 2000, status, nil)

			payment, err := f.payment.CreateManual(f.ctx, f.sess, ManualPaymentInput{
				BillingID:     bill.ID,
				TenantID:      f.tenant.ID,
				Amount:        decimal.NewFromInt(2000),
				PaymentMethod: models.PaymentMethodCash,
			})
			require.NoError(t, err)
			assert.Equal(t, models.PaymentStatusCompleted, payment.PaymentStatus)
			require.NotNil(t, payment.ConfirmedAt)
			assert.True(t, fixedNow.Equal(*payment.ConfirmedAt))
			assert.Regexp(t, `^PAY_\d+_[0-9A-Z]{6}$`, payment.PaymentReference)

			got, err := f.billing.GetByID(f.ctx, f.sess, bill.ID)
			require.NoError(t, err)
			assert.Equal(t, models.BillingStatusPaid, got.Status)
			require.NotNil(t, got.PaidDate)
			assert.True(t, fixedNow.Equal(*got.PaidDate))
		})
	}
}

func TestPaymentService_CreateManualRejects(t *testing.T) {
	f := newBillingFixture(t)
	paid := testutil.CreateBilling(t, f.db, f.tenant.ID, f.meter.ID, 2000, models.BillingStatusPaid, nil)
	cancelled := testutil.CreateBilling(t, f.db, f.tenant.ID, f.meter.ID, 2000, models.BillingStatusCancelled, nil)
	open := testutil.CreateBilling(t, f.db, f.tenant.ID, f.meter.ID, 2000, models.BillingStatusPending, nil)
	other := testutil.CreateTenant(t, f.db, f.tenant.PropertyID, "Z9")

	valid := func(billingID string) ManualPaymentInput {
		return ManualPaymentInput{
			BillingID:     billingID,
			TenantID:      f.tenant.ID,
			Amount:        decimal.NewFromInt(100),
			PaymentMethod: models.PaymentMethodBankTransfer,
		}
	}

	_, err := f.payment.CreateManual(f.ctx, f.sess, valid(paid.ID))
	assert.ErrorIs(t, err, ErrBillNotPayable)

	_, err = f.payment.CreateManual(f.ctx, f.sess, valid(cancelled.ID))
	assert.ErrorIs(t, err, ErrBillNotPayable)

	in := valid(open.ID)
	in.Amount = decimal.Zero
	_, err = f.payment.CreateManual(f.ctx, f.sess, in)
	assert.ErrorIs(t, err, ErrInvalidInput)

	in = valid(open.ID)
	in.PaymentMethod = "cheque"
	_, err = f.payment.CreateManual(f.ctx, f.sess, in)
	assert.ErrorIs(t, err, ErrInvalidInput)

	in = valid(open.ID)
	in.TenantID = other.ID
	_, err = f.payment.CreateManual(f.ctx, f.sess, in)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.payment.CreateManual(f.ctx, testutil.Session(), valid(open.ID))
	assert.ErrorIs(t, err, ErrNotFound)

	var count int64
	require.NoError(t, f.db.Model(&models.Payment{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestPaymentService_CreateManualIsAtomic(t *testing.T) {
	f := newBillingFixture(t)
	first := testutil.CreateBilling(t, f.db, f.tenant.ID, f.meter.ID, 2000, models.BillingStatusPending, nil)
	second := testutil.CreateBilling(t, f.db, f.tenant.ID, f.meter.ID, 2000, models.BillingStatusPending, nil)

	in := ManualPaymentInput{
		BillingID:        first.ID,
		TenantID:         f.tenant.ID,
		Amount:           decimal.NewFromInt(2000),
		PaymentMethod:    models.PaymentMethodCash,
		PaymentReference: "RCPT-001",
	}
	_, err := f.payment.CreateManual(f.ctx, f.sess, in)
	require.NoError(t, err)

	in.BillingID = second.ID
	_, err = f.payment.CreateManual(f.ctx, f.sess, in)
	assert.ErrorIs(t, err, ErrInvalidInput)

	got, err := f.billing.GetByID(f.ctx, f.sess, second.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BillingStatusPending, got.Status)
	assert.Nil(t, got.PaidDate)
}

func TestPaymentService_InitiateMpesa(t *testing.T) {
	f := newBillingFixture(t)
	bill := testutil.CreateBilling(t, f.db, f.tenant.ID, f.meter.ID, 2000, models.BillingStatusPending, nil)

	resp, err := f.payment.InitiateMpesa(f.ctx, f.sess, MpesaPaymentInput{
		TenantID:    f.tenant.ID,
		BillingID:   bill.ID,
		Amount:      decimal.NewFromInt(2000),
		PhoneNumber: "0712 345 678",
	})
	require.NoError(t, err)
	assert.Equal(t, "ws_CO_1", resp.CheckoutRequestID)

	require.Len(t, f.gateway.pushes, 1)
	push := f.gateway.pushes[0]
	assert.Equal(t, "254712345678", push.PhoneNumber)
	assert.Equal(t, "BILL_"+bill.ID[len(bill.ID)-8:], push.AccountReference)

	var payment models.Payment
	require.NoError(t, f.db.First(&payment, "id = ?", resp.PaymentID).Error)
	assert.Equal(t, models.PaymentStatusPending, payment.PaymentStatus)
	assert.Equal(t, models.PaymentMethodMpesa, payment.PaymentMethod)
	require.NotNil(t, payment.MpesaTransactionID)
	assert.Equal(t, "ws_CO_1", *payment.MpesaTransactionID)

	var txn models.MpesaTransaction
	require.NoError(t, f.db.First(&txn, "id = ?", resp.TransactionID).Error)
	assert.Equal(t, models.MpesaStatusPending, txn.Status)
	assert.Equal(t, "29115-1", txn.MerchantRequestID)
	assert.JSONEq(t, `{"ResponseCode":"0"}`, string(txn.RawResponse))

	got, err := f.billing.GetByID(f.ctx, f.sess, bill.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BillingStatusPending, got.Status)
}

func TestPaymentService_InitiateMpesaGatewayFailure(t *testing.T) {
	f := newBillingFixture(t)
	bill := testutil.CreateBilling(t, f.db, f.tenant.ID, f.meter.ID, 2000, models.BillingStatusPending, nil)
	f.gateway.pushErr = errors.New("connection refused")

	_, err := f.payment.InitiateMpesa(f.ctx, f.sess, MpesaPaymentInput{
		TenantID:    f.tenant.ID,
		BillingID:   bill.ID,
		Amount:      decimal.NewFromInt(2000),
		PhoneNumber: "254712345678",
	})
	assert.ErrorIs(t, err, ErrGatewayUnavailable)

	var txn models.MpesaTransaction
	require.NoError(t, f.db.First(&txn).Error)
	assert.Equal(t, models.MpesaStatusFailed, txn.Status)

	var payment models.Payment
	require.NoError(t, f.db.First(&payment).Error)
	assert.Equal(t, models.PaymentStatusFailed, payment.PaymentStatus)
}

func TestPaymentService_InitiateMpesaValidation(t *testing.T) {
	f := newBillingFixture(t)
	bill := testutil.CreateBilling(t, f.db, f.tenant.ID, f.meter.ID, 2000, models.BillingStatusPaid, nil)

	_, err := f.payment.InitiateMpesa(f.ctx, f.sess, MpesaPaymentInput{
		TenantID: f.tenant.ID, BillingID: bill.ID, Amount: decimal.NewFromInt(10), PhoneNumber: "12345",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.payment.InitiateMpesa(f.ctx, f.sess, MpesaPaymentInput{
		TenantID: f.tenant.ID, BillingID: bill.ID, Amount: decimal.NewFromInt(10), PhoneNumber: "0712345678",
	})
	assert.ErrorIs(t, err, ErrBillNotPayable)
	assert.Empty(t, f.gateway.pushes)
}

func TestPaymentService_CheckStatus(t *testing.T) {
	f := newBillingFixture(t)
	bill := testutil.CreateBilling(t, f.db, f.tenant.ID, f.meter.ID, 2000, models.BillingStatusPending, nil)
	resp, err := f.payment.InitiateMpesa(f.ctx, f.sess, MpesaPaymentInput{
		TenantID: f.tenant.ID, BillingID: bill.ID, Amount: decimal.NewFromInt(2000), PhoneNumber: "0712345678",
	})
	require.NoError(t, err)

	f.gateway.queryResp = &mpesa.STKQueryResponse{
		ResponseCode: "0",
		ResultCode:   "0",
		ResultDesc:   "The service request is processed successfully.",
		Raw:          []byte(`{"ResultCode":"0"}`),
	}

	status, err := f.payment.CheckStatus(f.ctx, f.sess, resp.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, "completed", status.ProviderState)
	require.NotNil(t, status.ResultCode)
	assert.Equal(t, 0, *status.ResultCode)
	assert.Equal(t, models.PaymentStatusPending, status.PaymentStatus)
	assert.Equal(t, []string{"ws_CO_1"}, f.gateway.queries)

	var txn models.MpesaTransaction
	require.NoError(t, f.db.First(&txn, "id = ?", resp.TransactionID).Error)
	assert.Equal(t, models.MpesaStatusCompleted, txn.Status)
	require.NotNil(t, txn.ResultDesc)

	got, err := f.billing.GetByID(f.ctx, f.sess, bill.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BillingStatusPending, got.Status)

	f.gateway.queryErr = errors.New("timeout")
	_, err = f.payment.CheckStatus(f.ctx, f.sess, resp.PaymentID)
	assert.ErrorIs(t, err, ErrGatewayUnavailable)

	_, err = f.payment.CheckStatus(f.ctx, testutil.Session(), resp.PaymentID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPaymentService_GetStats(t *testing.T) {
	f := newBillingFixture(t)
	bill := testutil.CreateBilling(t, f.db, f.tenant.ID, f.meter.ID, 9000, models.BillingStatusPending, nil)

	testutil.CreatePayment(t, f.db, bill, 3000, models.PaymentStatusCompleted, fixedNow.AddDate(0, 0, -60))
	testutil.CreatePayment(t, f.db, bill, 2000, models.PaymentStatusCompleted, fixedNow.AddDate(0, 0, -10))
	testutil.CreatePayment(t, f.db, bill, 1000, models.PaymentStatusPending, fixedNow.AddDate(0, 0, -2))
	testutil.CreatePayment(t, f.db, bill, 500, models.PaymentStatusFailed, fixedNow.AddDate(0, 0, -1))

	stats, err := f.payment.GetStats(f.ctx, f.sess)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(5000).Equal(stats.TotalRevenue), "revenue %s", stats.TotalRevenue)
	assert.True(t, decimal.NewFromInt(1000).Equal(stats.PendingPayments))
	assert.True(t, decimal.NewFromInt(2000).Equal(stats.CompletedPayments))
	assert.Equal(t, 3, stats.TotalTransactions)
	assert.True(t, decimal.RequireFromString("1666.67").Equal(stats.AveragePayment), "average %s", stats.AveragePayment)
	assert.True(t, stats.MonthlyGrowth.IsZero())
}

func TestPaymentService_GetStatsEmpty(t *testing.T) {
	f := newBillingFixture(t)

	stats, err := f.payment.GetStats(f.ctx, f.sess)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalTransactions)
	assert.True(t, stats.AveragePayment.IsZero())
	assert.True(t, stats.TotalRevenue.IsZero())
}
