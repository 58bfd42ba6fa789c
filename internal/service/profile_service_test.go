package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smarta-landlord-svc/internal/session"
	"smarta-landlord-svc/internal/testutil"
)

func TestProfileService_GetProfile(t *testing.T) {
	svc := newServices(t)
	ctx := context.Background()
	s := testutil.Session()

	p := testutil.CreateProperty(t, svc.db, s, "Karen Villas")
	tenant := testutil.CreateTenant(t, svc.db, p.ID, "A1")
	testutil.CreateMeter(t, svc.db, p.ID, &tenant.ID, "WM-1")
	testutil.CreateMeter(t, svc.db, p.ID, nil, "WM-2")

	profile, err := svc.profile.GetProfile(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, s.LandlordID, profile.LandlordID)
	assert.Equal(t, s.Phone, profile.Phone)
	assert.Equal(t, "landlord", profile.Role)
	assert.Equal(t, int64(1), profile.TotalProperties)
	assert.Equal(t, int64(1), profile.TotalTenants)
	assert.Equal(t, int64(2), profile.TotalMeters)
}

func TestProfileService_GetProfileRequiresLandlord(t *testing.T) {
	svc := newServices(t)

	_, err := svc.profile.GetProfile(context.Background(), session.Session{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
