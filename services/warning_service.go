package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yeremiapane/chemsecure/models"
	"gorm.io/gorm"
)

// WarningInput is the snapshot a client submits. Timestamps are always set server side.
type WarningInput struct {
	ClientName    string           `json:"clientName"`
	Capacity      float64          `json:"capacity"`
	CurrentVolume float64          `json:"currentVolume"`
	TankID        uint             `json:"tankId"`
	Type          models.WasteType `json:"type"`
}

// WarningStats counts warnings per state.
type WarningStats struct {
	Pending int64 `json:"pending"`
	Managed int64 `json:"managed"`
	Total   int64 `json:"total"`
}

type WarningService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewWarningService(db *gorm.DB) *WarningService {
	return &WarningService{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// ListPending returns unmanaged warnings, or ErrNotFound when there are none.
func (s *WarningService) ListPending(ctx context.Context) ([]models.Warning, error) {
	return s.listByState(ctx, false, "No warnings found.")
}

// ListManaged returns managed warnings, or ErrNotFound when there are none.
func (s *WarningService) ListManaged(ctx context.Context) ([]models.Warning, error) {
	return s.listByState(ctx, true, "No managed warnings found.")
}

func (s *WarningService) listByState(ctx context.Context, managed bool, emptyMsg string) ([]models.Warning, error) {
	var warnings []models.Warning
	if err := s.db.WithContext(ctx).Where("is_managed = ?", managed).Order("id").Find(&warnings).Error; err != nil {
		return nil, err
	}
	if len(warnings) == 0 {
		return nil, newNotFound(emptyMsg)
	}
	return warnings, nil
}

func (s *WarningService) Get(ctx context.Context, id uint) (models.Warning, error) {
	var warning models.Warning
	err := s.db.WithContext(ctx).First(&warning, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Warning{}, newNotFound(fmt.Sprintf("Warning with ID %d not found.", id))
	}
	if err != nil {
		return models.Warning{}, err
	}
	return warning, nil
}

// MarkManaged sets the managed flag and stamps the managed date.
func (s *WarningService) MarkManaged(ctx context.Context, id uint) (models.Warning, error) {
	warning, err := s.Get(ctx, id)
	if err != nil {
		return models.Warning{}, err
	}

	now := s.now()
	warning.IsManaged = true
	warning.ManagedDate = &now
	if err := s.saveState(ctx, warning); err != nil {
		return models.Warning{}, err
	}
	return warning, nil
}

// MarkUnmanaged returns a warning to the pending list.
func (s *WarningService) MarkUnmanaged(ctx context.Context, id uint) (models.Warning, error) {
	warning, err := s.Get(ctx, id)
	if err != nil {
		return models.Warning{}, err
	}

	warning.IsManaged = false
	warning.ManagedDate = nil
	if err := s.saveState(ctx, warning); err != nil {
		return models.Warning{}, err
	}
	return warning, nil
}

func (s *WarningService) saveState(ctx context.Context, w models.Warning) error {
	return s.db.WithContext(ctx).
		Model(&models.Warning{}).
		Where("id = ?", w.ID).
		Updates(map[string]interface{}{
			"is_managed":   w.IsManaged,
			"managed_date": w.ManagedDate,
		}).Error
}

// Add stores a new pending warning. A nil input is a bad request.
func (s *WarningService) Add(ctx context.Context, in *WarningInput) (models.Warning, error) {
	if in == nil {
		return models.Warning{}, newBadRequest("Warning data is required.")
	}
	if !in.Type.Valid() {
		return models.Warning{}, newBadRequest(fmt.Sprintf("Unknown waste type %d.", int(in.Type)))
	}

	warning := models.Warning{
		ClientName:    in.ClientName,
		Capacity:      in.Capacity,
		CurrentVolume: in.CurrentVolume,
		CreationDate:  s.now(),
		TankID:        in.TankID,
		Type:          in.Type,
		IsManaged:     false,
		ManagedDate:   nil,
	}
	if err := s.db.WithContext(ctx).Create(&warning).Error; err != nil {
		return models.Warning{}, err
	}
	return warning, nil
}

func (s *WarningService) Stats(ctx context.Context) (WarningStats, error) {
	var stats WarningStats
	db := s.db.WithContext(ctx)
	if err := db.Model(&models.Warning{}).Where("is_managed = ?", false).Count(&stats.Pending).Error; err != nil {
		return WarningStats{}, err
	}
	if err := db.Model(&models.Warning{}).Where("is_managed = ?", true).Count(&stats.Managed).Error; err != nil {
		return WarningStats{}, err
	}
	stats.Total = stats.Pending + stats.Managed
	return stats, nil
}
