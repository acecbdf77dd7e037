package models

import (
	"sort"
	"time"
)

// WarningThreshold is the fill percentage from which a client may raise a warning.
const WarningThreshold = 65.0

// Warning is a snapshot of a tank taken when a client reported it as filling up.
// Only IsManaged and ManagedDate change after creation.
type Warning struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	ClientName    string     `gorm:"type:varchar(255)" json:"clientName"`
	Capacity      float64    `gorm:"not null" json:"capacity"`
	CurrentVolume float64    `gorm:"not null" json:"currentVolume"`
	CreationDate  time.Time  `gorm:"not null;index" json:"creationDate"`
	TankID        uint       `gorm:"not null;index" json:"tankId"`
	Type          WasteType  `gorm:"not null" json:"type"`
	IsManaged     bool       `gorm:"not null;default:false;index" json:"isManaged"`
	ManagedDate   *time.Time `json:"managedDate"`
}

func (w Warning) Percentage() float64 {
	return FillPercentage(w.CurrentVolume, w.Capacity)
}

// Priority tiers, highest first.
const (
	PriorityCritical = 4
	PriorityHigh     = 3
	PriorityWarning  = 2
	PriorityNormal   = 1
)

// Priority maps the snapshot fill ratio to a display tier.
func (w Warning) Priority() int {
	return PriorityFor(w.Percentage())
}

func PriorityFor(percentage float64) int {
	switch {
	case percentage >= 90:
		return PriorityCritical
	case percentage >= 80:
		return PriorityHigh
	case percentage >= 70:
		return PriorityWarning
	default:
		return PriorityNormal
	}
}

// ReachesThreshold reports whether a tank is full enough to raise a warning.
func ReachesThreshold(volume, capacity float64) bool {
	return FillPercentage(volume, capacity) >= WarningThreshold
}

// SortByPriority orders warnings by descending tier, then newest first.
func SortByPriority(warnings []Warning) {
	sort.SliceStable(warnings, func(i, j int) bool {
		pi, pj := warnings[i].Priority(), warnings[j].Priority()
		if pi != pj {
			return pi > pj
		}
		return warnings[i].CreationDate.After(warnings[j].CreationDate)
	})
}

// SortByManagedDate orders managed warnings newest first; entries without a date go last.
func SortByManagedDate(warnings []Warning) {
	sort.SliceStable(warnings, func(i, j int) bool {
		a, b := warnings[i].ManagedDate, warnings[j].ManagedDate
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
}
