package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smarta-landlord-svc/internal/models"
	"smarta-landlord-svc/internal/testutil"
)

func TestMeterActivityRate(t *testing.T) {
	tests := []struct {
		name          string
		active, total int64
		want          int
	}{
		{name: "no meters", active: 0, total: 0, want: 0},
		{name: "all active", active: 4, total: 4, want: 100},
		{name: "rounds down", active: 1, total: 3, want: 33},
		{name: "rounds up", active: 2, total: 3, want: 67},
		{name: "half rounds away from zero", active: 1, total: 8, want: 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MeterActivityRate(tt.active, tt.total))
		})
	}
}

func TestDashboardService_GetStats(t *testing.T) {
	svc := newServices(t)
	ctx := context.Background()
	s := testutil.Session()

	p := testutil.CreateProperty(t, svc.db, s, "Karen Villas")
	testutil.CreateProperty(t, svc.db, s, "Kilimani Court")
	active := testutil.CreateTenant(t, svc.db, p.ID, "A1")
	moved := testutil.CreateTenant(t, svc.db, p.ID, "A2")
	require.NoError(t, svc.db.Model(moved).Update("status", models.TenantStatusInactive).Error)

	assigned := testutil.CreateMeter(t, svc.db, p.ID, &active.ID, "WM-1")
	testutil.CreateMeter(t, svc.db, p.ID, nil, "WM-2")
	testutil.CreateMeter(t, svc.db, p.ID, nil, "WM-3")

	for i := 0; i < 12; i++ {
		require.NoError(t, svc.db.Create(&models.MeterReading{
			MeterID:      assigned.ID,
			ReadingValue: decimal.NewFromInt(int64(100 + i)),
			ReadingDate:  fixedNow.Add(time.Duration(i) * time.Hour),
		}).Error)
	}

	bill := testutil.CreateBilling(t, svc.db, active.ID, assigned.ID, 5000, models.BillingStatusPending, nil)
	testutil.CreatePayment(t, svc.db, bill, 3000, models.PaymentStatusCompleted, fixedNow)
	testutil.CreatePayment(t, svc.db, bill, 1500, models.PaymentStatusCompleted, fixedNow)
	testutil.CreatePayment(t, svc.db, bill, 900, models.PaymentStatusPending, fixedNow)

	other := testutil.Session()
	op := testutil.CreateProperty(t, svc.db, other, "Elsewhere")
	testutil.CreateMeter(t, svc.db, op.ID, nil, "WM-X")

	stats, err := svc.dash.GetStats(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalProperties)
	assert.Equal(t, 1, stats.ActiveTenants)
	assert.Equal(t, 3, stats.TotalMeters)
	assert.Equal(t, 1, stats.ActiveMeters)
	assert.Equal(t, 33, stats.MeterActivityRate)
	assert.True(t, decimal.NewFromInt(4500).Equal(stats.TotalRevenue), "revenue %s", stats.TotalRevenue)

	require.Len(t, stats.RecentReadings, 10)
	assert.True(t, decimal.NewFromInt(111).Equal(stats.RecentReadings[0].ReadingValue))
}

func TestDashboardService_GetStatsEmpty(t *testing.T) {
	svc := newServices(t)

	stats, err := svc.dash.GetStats(context.Background(), testutil.Session())
	require.NoError(t, err)
	assert.Zero(t, stats.TotalProperties)
	assert.Zero(t, stats.MeterActivityRate)
	assert.NotNil(t, stats.RecentReadings)
	assert.Empty(t, stats.RecentReadings)
	assert.True(t, stats.TotalRevenue.IsZero())
}
