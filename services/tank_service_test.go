package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/chemsecure/models"
)

func TestTankUpdateIDMismatchDoesNotTouchStore(t *testing.T) {
	s := NewTankService(newTestDB(t))
	ctx := context.Background()

	err := s.Update(ctx, 1, TankInput{ID: 2, Capacity: 10, Type: models.Oils})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBadRequest))
	assert.Equal(t, "The ID does not match with the ID of the tank.", err.Error())
}

func TestTankUpdateValidatesInput(t *testing.T) {
	s := NewTankService(newTestDB(t))
	ctx := context.Background()
	tank := seedTank(t, s, 100, 10, nil)

	err := s.Update(ctx, tank.ID, TankInput{ID: tank.ID, Capacity: 0, Type: models.Oils})
	assert.True(t, errors.Is(err, ErrBadRequest))

	err = s.Update(ctx, tank.ID, TankInput{ID: tank.ID, Capacity: 10, Type: models.WasteType(9)})
	assert.True(t, errors.Is(err, ErrBadRequest))
}

func TestTankSaveDetectsStaleVersion(t *testing.T) {
	s := NewTankService(newTestDB(t))
	ctx := context.Background()
	tank := seedTank(t, s, 100, 10, nil)

	first, err := s.Get(ctx, tank.ID)
	require.NoError(t, err)
	second, err := s.Get(ctx, tank.ID)
	require.NoError(t, err)

	first.CurrentVolume = 20
	require.NoError(t, s.save(ctx, &first))
	assert.Equal(t, uint(2), first.Version)

	second.CurrentVolume = 30
	assert.ErrorIs(t, s.save(ctx, &second), ErrConflict)

	stored, err := s.Get(ctx, tank.ID)
	require.NoError(t, err)
	assert.Equal(t, 20.0, stored.CurrentVolume)
}

func TestTankSaveOnDeletedRowIsConflict(t *testing.T) {
	s := NewTankService(newTestDB(t))
	ctx := context.Background()
	tank := seedTank(t, s, 100, 10, nil)

	require.NoError(t, s.Delete(ctx, tank.ID))
	assert.ErrorIs(t, s.save(ctx, &tank), ErrConflict)

	exists, err := s.Exists(ctx, tank.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUpdateVolume(t *testing.T) {
	s := NewTankService(newTestDB(t))
	ctx := context.Background()
	tank := seedTank(t, s, 1000, 100, nil)

	require.NoError(t, s.UpdateVolume(ctx, tank.ID, 1000))

	err := s.UpdateVolume(ctx, tank.ID, 1000.01)
	assert.ErrorIs(t, err, ErrBadRequest)
	assert.Equal(t, "The volume exceeds the tank capacity.", err.Error())

	err = s.UpdateVolume(ctx, tank.ID, -5)
	assert.ErrorIs(t, err, ErrBadRequest)

	stored, err := s.Get(ctx, tank.ID)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, stored.CurrentVolume)
	assert.Equal(t, uint(2), stored.Version)

	err = s.UpdateVolume(ctx, 404, 1)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "Tank does not exist.", err.Error())
}

func TestListForUser(t *testing.T) {
	db := newTestDB(t)
	s := NewTankService(db)
	ctx := context.Background()
	owner := "0b5a3d1c-0000-4000-8000-000000000001"
	require.NoError(t, db.Create(&models.User{ID: owner, UserName: "owner", Email: "owner@example.com", NormalizedEmail: "OWNER@EXAMPLE.COM", Password: "x"}).Error)
	seedTank(t, s, 1000, 500, &owner)
	seedTank(t, s, 2000, 1000, &owner)
	seedTank(t, s, 10, 1, nil)

	_, err := s.ListForUser(ctx, "")
	assert.ErrorIs(t, err, ErrUnauthorized)

	tanks, err := s.ListForUser(ctx, owner)
	require.NoError(t, err)
	require.Len(t, tanks, 2)
	for _, tank := range tanks {
		assert.InDelta(t, 50.0, tank.Percentage(), 0.0001)
	}

	_, err = s.ListForUser(ctx, "someone-else")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateTankEmptyOwnerIsUnowned(t *testing.T) {
	s := NewTankService(newTestDB(t))
	empty := ""
	tank := seedTank(t, s, 10, 0, &empty)
	assert.Nil(t, tank.ClientID)
	assert.Equal(t, uint(1), tank.Version)
}

func TestCreateTankDuplicateIDIsStoreError(t *testing.T) {
	s := NewTankService(newTestDB(t))
	ctx := context.Background()
	tank := seedTank(t, s, 10, 0, nil)

	_, err := s.Create(ctx, TankInput{ID: tank.ID, Capacity: 10, Type: models.Acids})
	var serr *StoreError
	assert.ErrorAs(t, err, &serr)
}

func TestCreateTankUnknownOwnerIsStoreError(t *testing.T) {
	s := NewTankService(newTestDB(t))
	ctx := context.Background()
	ghost := "00000000-0000-4000-8000-00000000dead"

	_, err := s.Create(ctx, TankInput{Capacity: 10, Type: models.Acids, ClientID: &ghost})
	var serr *StoreError
	require.ErrorAs(t, err, &serr)

	tanks, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, tanks)
}

func TestDeletingOwnerClearsTankClient(t *testing.T) {
	db := newTestDB(t)
	s := NewTankService(db)
	ctx := context.Background()
	owner := "0b5a3d1c-0000-4000-8000-000000000002"
	require.NoError(t, db.Create(&models.User{ID: owner, UserName: "owner", Email: "owner@example.com", NormalizedEmail: "OWNER@EXAMPLE.COM", Password: "x"}).Error)
	tank := seedTank(t, s, 100, 10, &owner)

	require.NoError(t, db.Delete(&models.User{ID: owner}).Error)

	stored, err := s.Get(ctx, tank.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.ClientID)
}
