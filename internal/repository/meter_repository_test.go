package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"smarta-landlord-svc/internal/models"
	"smarta-landlord-svc/internal/testutil"
)

func TestMeterRepository_ListAvailable(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewMeterRepository(db)
	ctx := context.Background()

	s := testutil.Session()
	p := testutil.CreateProperty(t, db, s, "Parklands Suites")
	tenant := testutil.CreateTenant(t, db, p.ID, "B2")
	free := testutil.CreateMeter(t, db, p.ID, nil, "WM-010")
	testutil.CreateMeter(t, db, p.ID, &tenant.ID, "WM-011")
	maint := testutil.CreateMeter(t, db, p.ID, nil, "WM-012")
	require.NoError(t, repo.SetAssignment(ctx, s, maint.ID, nil, models.MeterStatusMaintenance))

	meters, err := repo.ListAvailable(ctx, s)
	require.NoError(t, err)
	require.Len(t, meters, 1)
	assert.Equal(t, free.ID, meters[0].ID)
}

func TestMeterRepository_SetAssignment(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewMeterRepository(db)
	ctx := context.Background()

	s := testutil.Session()
	p := testutil.CreateProperty(t, db, s, "Parklands Suites")
	tenant := testutil.CreateTenant(t, db, p.ID, "B2")
	m := testutil.CreateMeter(t, db, p.ID, nil, "WM-020")

	require.NoError(t, repo.SetAssignment(ctx, s, m.ID, &tenant.ID, models.MeterStatusActive))
	got, err := repo.GetByID(ctx, s, m.ID)
	require.NoError(t, err)
	require.NotNil(t, got.TenantID)
	assert.Equal(t, tenant.ID, *got.TenantID)
	assert.Equal(t, models.MeterStatusActive, got.Status)

	require.NoError(t, repo.SetAssignment(ctx, s, m.ID, nil, models.MeterStatusAvailable))
	got, err = repo.GetByID(ctx, s, m.ID)
	require.NoError(t, err)
	assert.Nil(t, got.TenantID)
	assert.Equal(t, models.MeterStatusAvailable, got.Status)

	err = repo.SetAssignment(ctx, testutil.Session(), m.ID, nil, models.MeterStatusAvailable)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
