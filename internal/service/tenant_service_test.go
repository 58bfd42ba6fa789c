package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smarta-landlord-svc/internal/models"
	"smarta-landlord-svc/internal/testutil"
)

func tenantInput(propertyID string) TenantInput {
	return TenantInput{
		PropertyID:     propertyID,
		UnitNumber:     "C7",
		LeaseStartDate: "2025-01-01",
		LeaseEndDate:   "2025-12-31",
		MonthlyRent:    decimal.NewFromInt(30000),
	}
}

func TestTenantService_Create(t *testing.T) {
	svc := newServices(t)
	ctx := context.Background()
	s := testutil.Session()
	p := testutil.CreateProperty(t, svc.db, s, "Runda Homes")

	tenant, err := svc.tenant.Create(ctx, s, tenantInput(p.ID))
	require.NoError(t, err)
	assert.Equal(t, models.TenantStatusActive, tenant.Status)
	require.NotNil(t, tenant.Property)
	assert.Equal(t, p.ID, tenant.Property.ID)
	assert.Equal(t, 2025, tenant.LeaseEndDate.Year())

	_, err = svc.tenant.Create(ctx, testutil.Session(), tenantInput(p.ID))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTenantService_Validation(t *testing.T) {
	svc := newServices(t)
	ctx := context.Background()
	s := testutil.Session()
	p := testutil.CreateProperty(t, svc.db, s, "Runda Homes")

	cases := map[string]func(in *TenantInput){
		"negative rent": func(in *TenantInput) { in.MonthlyRent = decimal.NewFromInt(-1) },
		"bad status":    func(in *TenantInput) { in.Status = "evicted" },
		"bad date":      func(in *TenantInput) { in.LeaseStartDate = "01/01/2025" },
		"end before":    func(in *TenantInput) { in.LeaseEndDate = "2024-12-31" },
		"blank unit":    func(in *TenantInput) { in.UnitNumber = "  " },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := tenantInput(p.ID)
			mutate(&in)
			_, err := svc.tenant.Create(ctx, s, in)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestTenantService_UpdateAndListByProperty(t *testing.T) {
	svc := newServices(t)
	ctx := context.Background()
	s := testutil.Session()
	p := testutil.CreateProperty(t, svc.db, s, "Runda Homes")
	tenant := testutil.CreateTenant(t, svc.db, p.ID, "A1")

	in := tenantInput(p.ID)
	in.Status = models.TenantStatusInactive
	updated, err := svc.tenant.Update(ctx, s, tenant.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "C7", updated.UnitNumber)
	assert.Equal(t, models.TenantStatusInactive, updated.Status)
	assert.True(t, decimal.NewFromInt(30000).Equal(updated.MonthlyRent))

	list, err := svc.tenant.ListByProperty(ctx, s, p.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = svc.tenant.ListByProperty(ctx, testutil.Session(), p.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.tenant.Delete(ctx, s, tenant.ID))
	assert.ErrorIs(t, svc.tenant.Delete(ctx, s, tenant.ID), ErrNotFound)
}
