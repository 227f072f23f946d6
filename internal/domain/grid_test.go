package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WashBooking/pkg/types"
)

func newTestGrid(t *testing.T) *Grid {
	t.Helper()
	grid, err := NewGrid(GridConfig{
		OpenTime:            "07:00",
		CloseTime:           "18:00",
		SlotIntervalMinutes: 15,
		UTCOffsetMinutes:    120,
		ZoneName:            "SAST",
	})
	require.NoError(t, err)
	return grid
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewGrid_Invalid(t *testing.T) {
	tests := []struct {
		name string
		cfg  GridConfig
	}{
		{name: "bad open", cfg: GridConfig{OpenTime: "7", CloseTime: "18:00", SlotIntervalMinutes: 15}},
		{name: "close before open", cfg: GridConfig{OpenTime: "18:00", CloseTime: "07:00", SlotIntervalMinutes: 15}},
		{name: "zero interval", cfg: GridConfig{OpenTime: "07:00", CloseTime: "18:00"}},
		{name: "interval does not divide", cfg: GridConfig{OpenTime: "07:00", CloseTime: "18:00", SlotIntervalMinutes: 25}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGrid(tt.cfg)
			assert.ErrorIs(t, err, ErrInvalidGrid)
		})
	}
}

func TestGrid_Generate(t *testing.T) {
	grid := newTestGrid(t)

	labels := grid.Generate()

	require.Len(t, labels, (18-7)*60/15)
	assert.Equal(t, types.TimeString("07:00"), labels[0])
	assert.Equal(t, types.TimeString("17:45"), labels[len(labels)-1])
	for i := 1; i < len(labels); i++ {
		assert.True(t, labels[i-1].IsBefore(labels[i]), "labels must be strictly increasing at %d", i)
	}
}

func TestGrid_SlotsForDuration(t *testing.T) {
	grid := newTestGrid(t)

	assert.Equal(t, 1, grid.SlotsForDuration(15))
	assert.Equal(t, 2, grid.SlotsForDuration(30))
	assert.Equal(t, 3, grid.SlotsForDuration(31))
	assert.Equal(t, 0, grid.SlotsForDuration(0))
}

func TestGrid_InstantAndSlotAtUseSameOffset(t *testing.T) {
	grid := newTestGrid(t)
	day := date(2025, 3, 10)

	instant := grid.Instant(day, "09:00")
	assert.Equal(t, time.Date(2025, 3, 10, 7, 0, 0, 0, time.UTC), instant)

	for _, label := range grid.Generate() {
		assert.Equal(t, label, grid.SlotAt(grid.Instant(day, label)))
	}

	// Момент внутри слота округляется вниз
	assert.Equal(t, types.TimeString("09:00"), grid.SlotAt(instant.Add(7*time.Minute)))
}

func TestGrid_Contains(t *testing.T) {
	grid := newTestGrid(t)

	assert.True(t, grid.Contains("07:00"))
	assert.True(t, grid.Contains("17:45"))
	assert.False(t, grid.Contains("18:00"))
	assert.False(t, grid.Contains("09:10"))
	assert.False(t, grid.Contains("06:45"))
}

func TestGrid_DayBoundsAndDateOf(t *testing.T) {
	grid := newTestGrid(t)

	start, end := grid.DayBounds(date(2025, 3, 10))
	assert.Equal(t, time.Date(2025, 3, 9, 22, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 3, 10, 22, 0, 0, 0, time.UTC), end)

	lateEvening := time.Date(2025, 3, 9, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, date(2025, 3, 10), grid.DateOf(lateEvening))
	assert.Equal(t, types.TimeString("01:30"), grid.TimeOf(lateEvening))
}

func TestGrid_CoveredSlots(t *testing.T) {
	grid := newTestGrid(t)
	day := date(2025, 3, 10)

	assert.Equal(t,
		[]types.TimeString{"09:00", "09:15"},
		grid.CoveredSlots(grid.Instant(day, "09:00"), 30),
	)
	assert.Equal(t,
		[]types.TimeString{"17:45", "18:00"},
		grid.CoveredSlots(grid.Instant(day, "17:45"), 30),
	)
}
