package domain

import "github.com/m04kA/SMC-WashBooking/pkg/types"

// Occupancy количество занятых боксов по меткам слотов
type Occupancy map[types.TimeString]int

// DurationResolver возвращает длительность бронирования в минутах
// ok == false, если длительность определить нельзя (услуга удалена)
type DurationResolver func(b *Booking) (minutes int, ok bool)

// ServiceDurations строит DurationResolver: сначала снимок в бронировании,
// затем текущая длительность услуги по её ID
func ServiceDurations(services []*Service) DurationResolver {
	byID := make(map[string]int, len(services))
	for _, s := range services {
		byID[s.ID] = s.DurationMinutes
	}
	return func(b *Booking) (int, bool) {
		if b.DurationMinutes > 0 {
			return b.DurationMinutes, true
		}
		d, ok := byID[b.ServiceID]
		return d, ok && d > 0
	}
}

// ComputeOccupancy раскладывает бронирования по слотам сетки
// Каждое бронирование занимает SlotsForDuration слотов начиная с SlotAt(start).
// Бронирования без известной длительности пропускаются и возвращаются вторым значением.
func ComputeOccupancy(grid *Grid, bookings []*Booking, durationOf DurationResolver) (Occupancy, []*Booking) {
	occupancy := make(Occupancy)
	var skipped []*Booking

	for _, b := range bookings {
		duration, ok := durationOf(b)
		if !ok {
			skipped = append(skipped, b)
			continue
		}
		for _, label := range grid.CoveredSlots(b.StartTime, duration) {
			occupancy[label]++
		}
	}

	return occupancy, skipped
}
