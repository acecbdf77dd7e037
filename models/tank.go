package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// WasteType is the category of residue stored in a tank.
type WasteType int

const (
	HalogenatedSolvents WasteType = iota
	NonHalogenatedSolvents
	AqueousSolutions
	Acids
	Oils
)

var wasteTypeNames = [...]string{
	"HalogenatedSolvents",
	"NonHalogenatedSolvents",
	"AqueousSolutions",
	"Acids",
	"Oils",
}

func (t WasteType) Valid() bool {
	return t >= HalogenatedSolvents && t <= Oils
}

func (t WasteType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("WasteType(%d)", int(t))
	}
	return wasteTypeNames[t]
}

// ParseWasteType accepts the type name, case insensitive.
func ParseWasteType(s string) (WasteType, error) {
	for i, name := range wasteTypeNames {
		if strings.EqualFold(name, s) {
			return WasteType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown waste type %q", s)
}

func (t WasteType) MarshalJSON() ([]byte, error) {
	if !t.Valid() {
		return json.Marshal(int(t))
	}
	return json.Marshal(t.String())
}

// UnmarshalJSON accepts either the type name or its numeric value.
func (t *WasteType) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err == nil {
		parsed, err := ParseWasteType(name)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	}
	var n int
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("waste type must be a name or a number: %w", err)
	}
	*t = WasteType(n)
	return nil
}

type Tank struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Capacity      float64   `gorm:"not null" json:"capacity"`
	CurrentVolume float64   `gorm:"not null" json:"currentVolume"`
	Type          WasteType `gorm:"not null" json:"type"`
	ClientID      *string   `gorm:"type:varchar(36);index" json:"clientId"`
	Client        *User     `gorm:"foreignKey:ClientID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	Version       uint      `gorm:"not null;default:1" json:"-"`
}

// Percentage is the fill ratio of the tank expressed as a percentage.
func (t Tank) Percentage() float64 {
	return FillPercentage(t.CurrentVolume, t.Capacity)
}

// FillPercentage returns volume/capacity*100, or 0 for a non-positive capacity.
func FillPercentage(volume, capacity float64) float64 {
	if capacity <= 0 {
		return 0
	}
	return volume / capacity * 100
}

// TankView is the lightweight shape returned by the tank endpoints. Owner details are left out.
type TankView struct {
	ID            uint      `json:"id"`
	Capacity      float64   `json:"capacity"`
	CurrentVolume float64   `json:"currentVolume"`
	Type          WasteType `json:"type"`
	Percentage    float64   `json:"percentage"`
}

func (t Tank) View() TankView {
	return TankView{
		ID:            t.ID,
		Capacity:      t.Capacity,
		CurrentVolume: t.CurrentVolume,
		Type:          t.Type,
		Percentage:    t.Percentage(),
	}
}

func TankViews(tanks []Tank) []TankView {
	views := make([]TankView, 0, len(tanks))
	for _, t := range tanks {
		views = append(views, t.View())
	}
	return views
}
