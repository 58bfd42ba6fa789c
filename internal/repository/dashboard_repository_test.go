package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smarta-landlord-svc/internal/models"
	"smarta-landlord-svc/internal/testutil"
)

func TestDashboardRepository_Counts(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewDashboardRepository(db)
	profiles := NewProfileRepository(db)
	ctx := context.Background()

	s := testutil.Session()
	p1 := testutil.CreateProperty(t, db, s, "Hurlingham Place")
	p2 := testutil.CreateProperty(t, db, s, "Upper Hill Towers")
	active := testutil.CreateTenant(t, db, p1.ID, "1")
	inactive := testutil.CreateTenant(t, db, p2.ID, "2")
	require.NoError(t, db.Model(inactive).Update("status", models.TenantStatusInactive).Error)
	testutil.CreateMeter(t, db, p1.ID, &active.ID, "WM-400")
	testutil.CreateMeter(t, db, p2.ID, nil, "WM-401")

	other := testutil.Session()
	op := testutil.CreateProperty(t, db, other, "Elsewhere")
	testutil.CreateMeter(t, db, op.ID, nil, "WM-999")

	n, err := repo.CountProperties(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = repo.CountTenantsByStatus(ctx, s, models.TenantStatusActive)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	meters, err := repo.GetMeterCounts(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, int64(2), meters.Total)
	assert.Equal(t, int64(1), meters.Active)

	summary, err := profiles.GetPortfolioSummary(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.TotalProperties)
	assert.Equal(t, int64(2), summary.TotalTenants)
	assert.Equal(t, int64(2), summary.TotalMeters)

	empty, err := repo.GetMeterCounts(ctx, testutil.Session())
	require.NoError(t, err)
	assert.Zero(t, empty.Total)
}
