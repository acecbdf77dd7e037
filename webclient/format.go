package webclient

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/yeremiapane/chemsecure/models"
)

// FormatPercentage renders a fill ratio with two decimals, e.g. 66.666 -> "66.67%".
func FormatPercentage(p float64) string {
	return decimal.NewFromFloat(p).StringFixed(2) + "%"
}

// FormatVolume renders a volume with at most two decimals and no trailing zeros.
func FormatVolume(v float64) string {
	return decimal.NewFromFloat(v).Round(2).String()
}

func PriorityLabel(tier int) string {
	switch tier {
	case models.PriorityCritical:
		return "critical"
	case models.PriorityHigh:
		return "high"
	case models.PriorityWarning:
		return "warning"
	default:
		return "normal"
	}
}

// TankRow is a tank as shown on the client dashboard.
type TankRow struct {
	models.TankView
	Fill          string `json:"fill"`
	Volume        string `json:"volume"`
	Priority      int    `json:"priority"`
	PriorityLabel string `json:"priorityLabel"`
	CanWarn       bool   `json:"canWarn"`
}

func NewTankRow(t models.TankView) TankRow {
	tier := models.PriorityFor(t.Percentage)
	return TankRow{
		TankView:      t,
		Fill:          FormatPercentage(t.Percentage),
		Volume:        FormatVolume(t.CurrentVolume) + " / " + FormatVolume(t.Capacity),
		Priority:      tier,
		PriorityLabel: PriorityLabel(tier),
		CanWarn:       models.ReachesThreshold(t.CurrentVolume, t.Capacity),
	}
}

// WarningRow is a warning as shown on the manager dashboard.
type WarningRow struct {
	models.Warning
	Fill          string `json:"fill"`
	Priority      int    `json:"priority"`
	PriorityLabel string `json:"priorityLabel"`
	Created       string `json:"created"`
	Managed       string `json:"managed,omitempty"`
}

func NewWarningRow(w models.Warning) WarningRow {
	row := WarningRow{
		Warning:       w,
		Fill:          FormatPercentage(w.Percentage()),
		Priority:      w.Priority(),
		PriorityLabel: PriorityLabel(w.Priority()),
		Created:       w.CreationDate.Format(time.DateTime),
	}
	if w.ManagedDate != nil {
		row.Managed = w.ManagedDate.Format(time.DateTime)
	}
	return row
}
