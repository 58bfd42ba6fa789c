package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smarta-landlord-svc/internal/models"
	"smarta-landlord-svc/internal/testutil"
)

func TestPropertyService_Create(t *testing.T) {
	svc := newServices(t)
	ctx := context.Background()
	s := testutil.Session()

	p, err := svc.property.Create(ctx, s, PropertyInput{
		Name:         "  Kilimani Court ",
		Address:      "Argwings Kodhek Rd",
		PropertyType: models.PropertyTypeMixed,
		TotalUnits:   8,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, s.LandlordID, p.LandlordID)
	assert.Equal(t, "Kilimani Court", p.Name)

	invalid := []PropertyInput{
		{Name: "", Address: "x", PropertyType: models.PropertyTypeResidential},
		{Name: "x", Address: " ", PropertyType: models.PropertyTypeResidential},
		{Name: "x", Address: "y", PropertyType: "castle"},
		{Name: "x", Address: "y", PropertyType: models.PropertyTypeResidential, TotalUnits: -1},
	}
	for _, in := range invalid {
		_, err := svc.property.Create(ctx, s, in)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestPropertyService_UpdateAndDeleteScoped(t *testing.T) {
	svc := newServices(t)
	ctx := context.Background()
	s := testutil.Session()
	p := testutil.CreateProperty(t, svc.db, s, "Old Name")

	in := PropertyInput{Name: "New Name", Address: "Ngong Rd", PropertyType: models.PropertyTypeCommercial, TotalUnits: 3}
	updated, err := svc.property.Update(ctx, s, p.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, models.PropertyTypeCommercial, updated.PropertyType)

	_, err = svc.property.Update(ctx, testutil.Session(), p.ID, in)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, svc.property.Delete(ctx, testutil.Session(), p.ID), ErrNotFound)
	require.NoError(t, svc.property.Delete(ctx, s, p.ID))
	_, err = svc.property.GetByID(ctx, s, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPropertyService_GetOverview(t *testing.T) {
	svc := newServices(t)
	ctx := context.Background()
	s := testutil.Session()
	p := testutil.CreateProperty(t, svc.db, s, "Lavington Gardens")
	testutil.CreateTenant(t, svc.db, p.ID, "B1")
	a1 := testutil.CreateTenant(t, svc.db, p.ID, "A1")
	testutil.CreateMeter(t, svc.db, p.ID, &a1.ID, "WM-2")
	testutil.CreateMeter(t, svc.db, p.ID, nil, "WM-1")

	overview, err := svc.property.GetOverview(ctx, s, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, overview.Property.ID)
	require.Len(t, overview.Tenants, 2)
	assert.Equal(t, "A1", overview.Tenants[0].UnitNumber)
	require.Len(t, overview.Meters, 2)
	assert.Equal(t, "WM-1", overview.Meters[0].MeterNumber)

	_, err = svc.property.GetOverview(ctx, testutil.Session(), p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
