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

func TestMeterReadingService_CreateChainsReadings(t *testing.T) {
	svc := newServices(t)
	ctx := context.Background()
	s := testutil.Session()
	p := testutil.CreateProperty(t, svc.db, s, "Karen Villas")
	m := testutil.CreateMeter(t, svc.db, p.ID, nil, "WM-1")

	first, err := svc.reading.Create(ctx, s, m.ID, ReadingInput{ReadingValue: decimal.NewFromInt(100)})
	require.NoError(t, err)
	assert.True(t, first.PreviousReading.IsZero())
	assert.True(t, decimal.NewFromInt(100).Equal(first.Consumption))
	assert.True(t, fixedNow.Equal(first.ReadingDate))
	require.NotNil(t, first.RecordedBy)
	assert.Equal(t, s.LandlordID, *first.RecordedBy)

	later := fixedNow.Add(24 * time.Hour)
	second, err := svc.reading.Create(ctx, s, m.ID, ReadingInput{
		ReadingValue: decimal.RequireFromString("142.5"),
		ReadingDate:  &later,
	})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(100).Equal(second.PreviousReading))
	assert.True(t, decimal.RequireFromString("42.5").Equal(second.Consumption))

	var meter models.Meter
	require.NoError(t, svc.db.First(&meter, "id = ?", m.ID).Error)
	require.True(t, meter.LastReadingValue.Valid)
	assert.True(t, decimal.RequireFromString("142.5").Equal(meter.LastReadingValue.Decimal))
	require.NotNil(t, meter.LastReadingDate)
	assert.True(t, later.Equal(*meter.LastReadingDate))

	readings, err := svc.reading.ListByMeter(ctx, s, m.ID)
	require.NoError(t, err)
	require.Len(t, readings, 2)
	assert.Equal(t, second.ID, readings[0].ID)
}

func TestMeterReadingService_CreateRejectsBadValues(t *testing.T) {
	svc := newServices(t)
	ctx := context.Background()
	s := testutil.Session()
	p := testutil.CreateProperty(t, svc.db, s, "Karen Villas")
	m := testutil.CreateMeter(t, svc.db, p.ID, nil, "WM-1")

	_, err := svc.reading.Create(ctx, s, m.ID, ReadingInput{ReadingValue: decimal.NewFromInt(-5)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.reading.Create(ctx, s, m.ID, ReadingInput{ReadingValue: decimal.NewFromInt(50)})
	require.NoError(t, err)

	_, err = svc.reading.Create(ctx, s, m.ID, ReadingInput{ReadingValue: decimal.NewFromInt(40)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	var count int64
	require.NoError(t, svc.db.Model(&models.MeterReading{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	_, err = svc.reading.Create(ctx, testutil.Session(), m.ID, ReadingInput{ReadingValue: decimal.NewFromInt(60)})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMeterReadingService_ListRecent(t *testing.T) {
	svc := newServices(t)
	ctx := context.Background()
	s := testutil.Session()
	p := testutil.CreateProperty(t, svc.db, s, "Karen Villas")
	m := testutil.CreateMeter(t, svc.db, p.ID, nil, "WM-1")

	old := fixedNow.AddDate(0, 0, -45)
	recent := fixedNow.AddDate(0, 0, -3)
	for i, at := range []time.Time{old, recent} {
		at := at
		_, err := svc.reading.Create(ctx, s, m.ID, ReadingInput{ReadingValue: decimal.NewFromInt(int64(10 * (i + 1))), ReadingDate: &at})
		require.NoError(t, err)
	}

	readings, err := svc.reading.ListRecent(ctx, s)
	require.NoError(t, err)
	require.Len(t, readings, 1)
	assert.True(t, recent.Equal(readings[0].ReadingDate))
	require.NotNil(t, readings[0].Meter)
	assert.Equal(t, p.ID, readings[0].Meter.Property.ID)
}
