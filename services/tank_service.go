package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yeremiapane/chemsecure/models"
	"github.com/yeremiapane/chemsecure/utils"
	"gorm.io/gorm"
)

// TankInput is the body accepted when creating or replacing a tank.
type TankInput struct {
	ID            uint             `json:"id"`
	Capacity      float64          `json:"capacity"`
	CurrentVolume float64          `json:"currentVolume"`
	Type          models.WasteType `json:"type"`
	ClientID      *string          `json:"clientId"`
}

func (in TankInput) validate() error {
	if !in.Type.Valid() {
		return newBadRequest(fmt.Sprintf("Unknown waste type %d.", int(in.Type)))
	}
	if in.Capacity <= 0 {
		return newBadRequest("The capacity must be greater than zero.")
	}
	if in.CurrentVolume < 0 {
		return newBadRequest("The volume cannot be negative.")
	}
	return nil
}

type TankService struct {
	db *gorm.DB
}

func NewTankService(db *gorm.DB) *TankService {
	return &TankService{db: db}
}

func (s *TankService) List(ctx context.Context) ([]models.Tank, error) {
	var tanks []models.Tank
	if err := s.db.WithContext(ctx).Order("id").Find(&tanks).Error; err != nil {
		return nil, err
	}
	return tanks, nil
}

func (s *TankService) Get(ctx context.Context, id uint) (models.Tank, error) {
	var tank models.Tank
	err := s.db.WithContext(ctx).First(&tank, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Tank{}, newNotFound("Tank was not found.")
	}
	if err != nil {
		return models.Tank{}, err
	}
	return tank, nil
}

func (s *TankService) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Tank{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create stores a new tank. Rejected writes come back as *StoreError with the driver message.
func (s *TankService) Create(ctx context.Context, in TankInput) (models.Tank, error) {
	if err := in.validate(); err != nil {
		return models.Tank{}, err
	}

	tank := models.Tank{
		ID:            in.ID,
		Capacity:      in.Capacity,
		CurrentVolume: in.CurrentVolume,
		Type:          in.Type,
		ClientID:      emptyToNil(in.ClientID),
		Version:       1,
	}
	if err := s.db.WithContext(ctx).Create(&tank).Error; err != nil {
		return models.Tank{}, &StoreError{Err: err}
	}

	utils.WithFields("tank", map[string]interface{}{"tank_id": tank.ID}).Info("Tank created")
	return tank, nil
}

func (s *TankService) Delete(ctx context.Context, id uint) error {
	tank, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&tank).Error; err != nil {
		return err
	}
	utils.WithFields("tank", map[string]interface{}{"tank_id": id}).Info("Tank deleted")
	return nil
}

// Update replaces every editable field of the tank. The path id must match the body id.
func (s *TankService) Update(ctx context.Context, id uint, in TankInput) error {
	if in.ID != id {
		return newBadRequest("The ID does not match with the ID of the tank.")
	}

	tank, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := in.validate(); err != nil {
		return err
	}

	tank.Capacity = in.Capacity
	tank.CurrentVolume = in.CurrentVolume
	tank.Type = in.Type
	tank.ClientID = emptyToNil(in.ClientID)

	err = s.save(ctx, &tank)
	if errors.Is(err, ErrConflict) {
		exists, existsErr := s.Exists(ctx, id)
		if existsErr != nil {
			return existsErr
		}
		if !exists {
			return newNotFound("Tank does not exist.")
		}
		utils.WithError(err, "tank").WithField("tank_id", id).Error("Tank update conflict")
	}
	return err
}

// UpdateVolume sets the current volume of a tank.
func (s *TankService) UpdateVolume(ctx context.Context, id uint, volume float64) error {
	tank, err := s.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return newNotFound("Tank does not exist.")
	}
	if err != nil {
		return err
	}

	// The loaded record takes the new value before the checks; it is saved only when they pass.
	tank.CurrentVolume = volume

	if volume > tank.Capacity {
		return newBadRequest("The volume exceeds the tank capacity.")
	}
	if volume < 0 {
		return newBadRequest("The volume cannot be negative.")
	}

	if err := s.save(ctx, &tank); err != nil {
		if errors.Is(err, ErrConflict) {
			utils.WithError(err, "tank").WithField("tank_id", id).Error("Tank volume update conflict")
		}
		return err
	}
	return nil
}

// ListForUser returns the tanks owned by the given user id.
func (s *TankService) ListForUser(ctx context.Context, userID string) ([]models.Tank, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}

	var tanks []models.Tank
	if err := s.db.WithContext(ctx).Where("client_id = ?", userID).Order("id").Find(&tanks).Error; err != nil {
		return nil, err
	}
	if len(tanks) == 0 {
		return nil, newNotFound("No tanks were found for this user.")
	}
	return tanks, nil
}

// save writes the tank only if its version is still the stored one, then bumps the version.
func (s *TankService) save(ctx context.Context, tank *models.Tank) error {
	result := s.db.WithContext(ctx).
		Model(&models.Tank{}).
		Where("id = ? AND version = ?", tank.ID, tank.Version).
		Updates(map[string]interface{}{
			"capacity":       tank.Capacity,
			"current_volume": tank.CurrentVolume,
			"type":           tank.Type,
			"client_id":      tank.ClientID,
			"version":        tank.Version + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrConflict
	}
	tank.Version++
	return nil
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
