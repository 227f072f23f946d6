package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-WashBooking/pkg/types"
)

var (
	// ErrInvalidGrid возвращается при некорректных параметрах сетки
	ErrInvalidGrid = errors.New("domain: invalid slot grid configuration")

	// ErrLabelNotOnGrid возвращается, когда метка не совпадает ни с одним слотом сетки
	ErrLabelNotOnGrid = errors.New("domain: time is not a slot of the grid")
)

// GridConfig параметры сетки слотов
type GridConfig struct {
	OpenTime            string // HH:MM в опорной зоне
	CloseTime           string // HH:MM в опорной зоне
	SlotIntervalMinutes int
	UTCOffsetMinutes    int
	ZoneName            string
}

// Grid сетка слотов рабочего дня в опорной зоне
// Один и тот же Grid используется и при расчете доступности, и при бронировании
type Grid struct {
	open     int // минуты от полуночи
	close    int
	interval int
	location *time.Location
}

// NewGrid создает сетку слотов
func NewGrid(cfg GridConfig) (*Grid, error) {
	open, err := types.NewTimeStringFromString(cfg.OpenTime)
	if err != nil {
		return nil, fmt.Errorf("%w: open time: %v", ErrInvalidGrid, err)
	}
	closeAt, err := types.NewTimeStringFromString(cfg.CloseTime)
	if err != nil {
		return nil, fmt.Errorf("%w: close time: %v", ErrInvalidGrid, err)
	}
	if !open.IsBefore(closeAt) {
		return nil, fmt.Errorf("%w: close time must be after open time", ErrInvalidGrid)
	}
	window := closeAt.Minutes() - open.Minutes()
	if cfg.SlotIntervalMinutes <= 0 || window%cfg.SlotIntervalMinutes != 0 {
		return nil, fmt.Errorf("%w: interval %d does not divide the %d minute window",
			ErrInvalidGrid, cfg.SlotIntervalMinutes, window)
	}

	zone := cfg.ZoneName
	if zone == "" {
		zone = fmt.Sprintf("UTC%+03d:%02d", cfg.UTCOffsetMinutes/60, abs(cfg.UTCOffsetMinutes%60))
	}

	return &Grid{
		open:     open.Minutes(),
		close:    closeAt.Minutes(),
		interval: cfg.SlotIntervalMinutes,
		location: time.FixedZone(zone, cfg.UTCOffsetMinutes*60),
	}, nil
}

// Interval возвращает шаг сетки в минутах
func (g *Grid) Interval() int {
	return g.interval
}

// Location возвращает опорную зону
func (g *Grid) Location() *time.Location {
	return g.location
}

// Generate возвращает метки слотов в [open, close) по возрастанию
func (g *Grid) Generate() []types.TimeString {
	labels := make([]types.TimeString, 0, (g.close-g.open)/g.interval)
	for m := g.open; m < g.close; m += g.interval {
		label, _ := types.NewTimeStringFromMinutes(m)
		labels = append(labels, label)
	}
	return labels
}

// Contains проверяет, что метка является слотом сетки
func (g *Grid) Contains(label types.TimeString) bool {
	m := label.Minutes()
	if m < g.open || m >= g.close {
		return false
	}
	return (m-g.open)%g.interval == 0
}

// SlotsForDuration возвращает ceil(duration / interval)
func (g *Grid) SlotsForDuration(durationMinutes int) int {
	if durationMinutes <= 0 {
		return 0
	}
	return (durationMinutes + g.interval - 1) / g.interval
}

// SlotAt возвращает метку слота, в который попадает момент времени
// Время переводится в опорную зону и округляется вниз до шага сетки
func (g *Grid) SlotAt(instant time.Time) types.TimeString {
	local := instant.In(g.location)
	m := local.Hour()*60 + local.Minute()
	m -= floorMod(m-g.open, g.interval)
	label, _ := types.NewTimeStringFromMinutes(m)
	return label
}

// CoveredSlots возвращает метки слотов, занимаемых бронированием
// Хвост за пределами рабочего дня не обрезается
func (g *Grid) CoveredSlots(start time.Time, durationMinutes int) []types.TimeString {
	n := g.SlotsForDuration(durationMinutes)
	first := g.SlotAt(start)
	labels := make([]types.TimeString, 0, n)
	for i := 0; i < n; i++ {
		label, err := first.AddMinutes(i * g.interval)
		if err != nil {
			break
		}
		labels = append(labels, label)
	}
	return labels
}

// Instant переводит дату и метку опорной зоны в момент UTC
// Для SAST (UTC+2) это метка минус два часа
func (g *Grid) Instant(date time.Time, label types.TimeString) time.Time {
	m := label.Minutes()
	return time.Date(date.Year(), date.Month(), date.Day(), m/60, m%60, 0, 0, g.location).UTC()
}

// DayBounds возвращает границы суток даты в опорной зоне как [start, end) в UTC
func (g *Grid) DayBounds(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, g.location)
	return start.UTC(), start.AddDate(0, 0, 1).UTC()
}

// DateOf возвращает календарную дату момента в опорной зоне (00:00 UTC)
func (g *Grid) DateOf(instant time.Time) time.Time {
	y, m, d := instant.In(g.location).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TimeOf возвращает время суток момента в опорной зоне
func (g *Grid) TimeOf(instant time.Time) types.TimeString {
	return types.NewTimeString(instant.In(g.location))
}

func floorMod(a, b int) int {
	r := a % b
	if r < 0 {
		r += b
	}
	return r
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
