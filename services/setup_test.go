package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/chemsecure/models"
	"github.com/yeremiapane/chemsecure/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testJWT = utils.JWTSettings{
	Key:               "service-test-key",
	Issuer:            "ChemSecureApi",
	Audience:          "ChemSecureWeb",
	ExpirationMinutes: 60,
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:svc_%s?mode=memory&cache=shared&_foreign_keys=on", name)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	for _, name := range models.DefaultRoles {
		require.NoError(t, db.Create(&models.Role{Name: name}).Error)
	}
	return db
}

func seedTank(t *testing.T, s *TankService, capacity, volume float64, owner *string) models.Tank {
	t.Helper()
	tank, err := s.Create(context.Background(), TankInput{
		Capacity:      capacity,
		CurrentVolume: volume,
		Type:          models.Acids,
		ClientID:      owner,
	})
	require.NoError(t, err)
	return tank
}
