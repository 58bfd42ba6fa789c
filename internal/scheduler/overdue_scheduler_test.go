package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smarta-landlord-svc/internal/models"
	"smarta-landlord-svc/internal/repository"
	"smarta-landlord-svc/internal/service"
	"smarta-landlord-svc/internal/testutil"
	"smarta-landlord-svc/pkg/logger"
)

func TestOverdueScheduler_RunOnce(t *testing.T) {
	db := testutil.NewTestDB(t)
	log := logger.NewTestLogger()
	ctx := context.Background()

	s := testutil.Session()
	p := testutil.CreateProperty(t, db, s, "Karen Villas")
	tenant := testutil.CreateTenant(t, db, p.ID, "A1")
	m := testutil.CreateMeter(t, db, p.ID, &tenant.ID, "WM-1")

	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	tomorrow := time.Now().UTC().AddDate(0, 0, 1)
	late := testutil.CreateBilling(t, db, tenant.ID, m.ID, 2000, models.BillingStatusPending, &yesterday)
	upcoming := testutil.CreateBilling(t, db, tenant.ID, m.ID, 2000, models.BillingStatusPending, &tomorrow)

	billingService := service.NewBillingService(
		repository.NewBillingRepository(db),
		repository.NewTenantRepository(db),
		repository.NewMeterRepository(db),
		"KES",
		log,
	)
	logRepo := repository.NewLogSchedulerRepository(db)
	sched := NewOverdueScheduler(billingService, logRepo, log, "0 0 1 * * *")

	runID, err := sched.RunOnce(ctx)
	require.NoError(t, err)

	var got models.Billing
	require.NoError(t, db.First(&got, "id = ?", late.ID).Error)
	assert.Equal(t, models.BillingStatusOverdue, got.Status)
	require.NoError(t, db.First(&got, "id = ?", upcoming.ID).Error)
	assert.Equal(t, models.BillingStatusPending, got.Status)

	logs, err := logRepo.ListByRunID(ctx, runID)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, statusStart, logs[0].Status)
	assert.Equal(t, statusSuccess, logs[1].Status)
	assert.Equal(t, "Marked 1 billings overdue", logs[1].Message)
	assert.Equal(t, overdueSchedulerCode, logs[1].SchedulerCode)
}

func TestOverdueScheduler_StartRejectsBadExpression(t *testing.T) {
	db := testutil.NewTestDB(t)
	log := logger.NewTestLogger()
	billingService := service.NewBillingService(
		repository.NewBillingRepository(db),
		repository.NewTenantRepository(db),
		repository.NewMeterRepository(db),
		"KES",
		log,
	)

	sched := NewOverdueScheduler(billingService, repository.NewLogSchedulerRepository(db), log, "not a cron")
	assert.Error(t, sched.Start())

	sched = NewOverdueScheduler(billingService, repository.NewLogSchedulerRepository(db), log, "0 0 1 * * *")
	require.NoError(t, sched.Start())
	sched.Stop()
}
