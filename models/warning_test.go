package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPriorityFor(t *testing.T) {
	cases := []struct {
		pct  float64
		want int
	}{
		{100, PriorityCritical},
		{90, PriorityCritical},
		{89.99, PriorityHigh},
		{80, PriorityHigh},
		{79.9, PriorityWarning},
		{70, PriorityWarning},
		{69.9, PriorityNormal},
		{65, PriorityNormal},
		{0, PriorityNormal},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, PriorityFor(tc.pct), "percentage %v", tc.pct)
	}
}

func TestReachesThreshold(t *testing.T) {
	assert.True(t, ReachesThreshold(650, 1000))
	assert.True(t, ReachesThreshold(1000, 1000))
	assert.False(t, ReachesThreshold(649.9, 1000))
	assert.False(t, ReachesThreshold(500, 1000))
	assert.False(t, ReachesThreshold(10, 0))
}

func TestSortByPriority(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	warnings := []Warning{
		{ID: 1, Capacity: 100, CurrentVolume: 70, CreationDate: base},
		{ID: 2, Capacity: 100, CurrentVolume: 95, CreationDate: base},
		{ID: 3, Capacity: 100, CurrentVolume: 72, CreationDate: base.Add(time.Hour)},
		{ID: 4, Capacity: 100, CurrentVolume: 85, CreationDate: base},
		{ID: 5, Capacity: 100, CurrentVolume: 66, CreationDate: base},
	}

	SortByPriority(warnings)

	ids := make([]uint, 0, len(warnings))
	for _, w := range warnings {
		ids = append(ids, w.ID)
	}
	assert.Equal(t, []uint{2, 4, 3, 1, 5}, ids)
}

func TestSortByManagedDate(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	later := base.Add(time.Hour)
	warnings := []Warning{
		{ID: 1, ManagedDate: &base},
		{ID: 2},
		{ID: 3, ManagedDate: &later},
	}

	SortByManagedDate(warnings)

	assert.Equal(t, uint(3), warnings[0].ID)
	assert.Equal(t, uint(1), warnings[1].ID)
	assert.Equal(t, uint(2), warnings[2].ID)
}
