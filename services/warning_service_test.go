package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/chemsecure/models"
)

func newWarningService(t *testing.T, now time.Time) *WarningService {
	s := NewWarningService(newTestDB(t))
	s.now = func() time.Time { return now }
	return s
}

func TestAddWarning(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	s := newWarningService(t, now)
	ctx := context.Background()

	_, err := s.Add(ctx, nil)
	assert.ErrorIs(t, err, ErrBadRequest)
	assert.Equal(t, "Warning data is required.", err.Error())

	w, err := s.Add(ctx, &WarningInput{ClientName: "user1", Capacity: 1000, CurrentVolume: 700, TankID: 3, Type: models.Oils})
	require.NoError(t, err)
	assert.NotZero(t, w.ID)
	assert.True(t, now.Equal(w.CreationDate))
	assert.False(t, w.IsManaged)
	assert.Nil(t, w.ManagedDate)
}

func TestAddWarningRejectsUnknownType(t *testing.T) {
	s := newWarningService(t, time.Now())
	ctx := context.Background()

	_, err := s.Add(ctx, &WarningInput{ClientName: "user1", Capacity: 1000, CurrentVolume: 700, TankID: 3, Type: models.WasteType(42)})
	assert.ErrorIs(t, err, ErrBadRequest)
	assert.Equal(t, "Unknown waste type 42.", err.Error())

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.Pending)
}

func TestManageAndUnmanage(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	s := newWarningService(t, now)
	ctx := context.Background()

	_, err := s.ListPending(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	w, err := s.Add(ctx, &WarningInput{ClientName: "user1", Capacity: 100, CurrentVolume: 90, TankID: 1})
	require.NoError(t, err)

	managed, err := s.MarkManaged(ctx, w.ID)
	require.NoError(t, err)
	assert.True(t, managed.IsManaged)
	require.NotNil(t, managed.ManagedDate)
	assert.True(t, now.Equal(*managed.ManagedDate))

	_, err = s.ListPending(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	list, err := s.ListManaged(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].ManagedDate)

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, WarningStats{Pending: 0, Managed: 1, Total: 1}, stats)

	unmanaged, err := s.MarkUnmanaged(ctx, w.ID)
	require.NoError(t, err)
	assert.False(t, unmanaged.IsManaged)
	assert.Nil(t, unmanaged.ManagedDate)

	stored, err := s.Get(ctx, w.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsManaged)
	assert.Nil(t, stored.ManagedDate)

	_, err = s.ListManaged(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.MarkManaged(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "Warning with ID 999 not found.", err.Error())
}
