package main

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/chemsecure/config"
	"github.com/yeremiapane/chemsecure/database"
	"github.com/yeremiapane/chemsecure/models"
	"github.com/yeremiapane/chemsecure/services"
	"github.com/yeremiapane/chemsecure/utils"
	"gorm.io/gorm"
)

type seedUser struct {
	input services.RegisterInput
	admin bool
	tanks []services.TankInput
}

var seedUsers = []seedUser{
	{
		input: services.RegisterInput{Email: "admin1@chemsecure.local", Password: "Admin123!", Name: "admin1", Phone: "600000001", Address: "Plant office"},
		admin: true,
		tanks: []services.TankInput{
			{Capacity: 5000, CurrentVolume: 1200, Type: models.Acids},
		},
	},
	{
		input: services.RegisterInput{Email: "user1@chemsecure.local", Password: "User123!", Name: "user1", Phone: "600000002", Address: "Lab A"},
		tanks: []services.TankInput{
			{Capacity: 1000, CurrentVolume: 500, Type: models.HalogenatedSolvents},
			{Capacity: 2000, CurrentVolume: 1000, Type: models.Oils},
		},
	},
	{
		input: services.RegisterInput{Email: "user2@chemsecure.local", Password: "User123!", Name: "user2", Phone: "600000003", Address: "Lab B"},
	},
}

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	utils.InitLogger(cfg.LogLevel)

	db, err := config.InitDB(cfg.DB)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	utils.InfoLogger.Println("Running database migrations...")
	if err := database.AutoMigrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}

	if err := seed(context.Background(), db, cfg.JWT.Settings()); err != nil {
		utils.ErrorLogger.Fatalf("Seeding failed: %v", err)
	}
	utils.InfoLogger.Println("Database seeding completed")
}

func seed(ctx context.Context, db *gorm.DB, settings utils.JWTSettings) error {
	auth := services.NewAuthService(db, settings)
	tanks := services.NewTankService(db)

	for _, su := range seedUsers {
		var existing models.User
		err := db.WithContext(ctx).Where("normalized_email = ?", models.NormalizeEmail(su.input.Email)).First(&existing).Error
		if err == nil {
			utils.InfoLogger.Printf("User %s already present, skipping", su.input.Name)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		register := auth.Register
		if su.admin {
			register = auth.RegisterAdmin
		}
		user, err := register(ctx, su.input)
		if err != nil {
			return err
		}

		for _, t := range su.tanks {
			t.ClientID = &user.ID
			if _, err := tanks.Create(ctx, t); err != nil {
				return err
			}
		}
		utils.InfoLogger.Printf("Seeded %s with %d tanks", su.input.Name, len(su.tanks))
	}
	return nil
}
