package webclient

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/yeremiapane/chemsecure/models"
)

func TestFormatPercentage(t *testing.T) {
	assert.Equal(t, "66.67%", FormatPercentage(200.0/3))
	assert.Equal(t, "65.00%", FormatPercentage(65))
	assert.Equal(t, "0.00%", FormatPercentage(0))
}

func TestFormatVolume(t *testing.T) {
	assert.Equal(t, "1000", FormatVolume(1000))
	assert.Equal(t, "12.35", FormatVolume(12.345))
	assert.Equal(t, "0.5", FormatVolume(0.5))
}

func TestNewTankRow(t *testing.T) {
	row := NewTankRow(models.TankView{ID: 1, Capacity: 1000, CurrentVolume: 850, Percentage: 85})
	assert.Equal(t, "85.00%", row.Fill)
	assert.Equal(t, "850 / 1000", row.Volume)
	assert.Equal(t, models.PriorityHigh, row.Priority)
	assert.Equal(t, "high", row.PriorityLabel)
	assert.True(t, row.CanWarn)

	row = NewTankRow(models.TankView{ID: 2, Capacity: 1000, CurrentVolume: 500, Percentage: 50})
	assert.False(t, row.CanWarn)
	assert.Equal(t, "normal", row.PriorityLabel)
}

func TestNewWarningRow(t *testing.T) {
	created := time.Date(2024, 3, 2, 8, 30, 0, 0, time.UTC)
	row := NewWarningRow(models.Warning{Capacity: 100, CurrentVolume: 91, CreationDate: created})
	assert.Equal(t, "critical", row.PriorityLabel)
	assert.Equal(t, "91.00%", row.Fill)
	assert.Equal(t, "2024-03-02 08:30:00", row.Created)
	assert.Empty(t, row.Managed)
}
