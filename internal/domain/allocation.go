package domain

import (
	"errors"
	"time"
)

// ErrCapacityExceeded возвращается, когда для нового бронирования нет свободного бокса
var ErrCapacityExceeded = errors.New("domain: no free bay for the requested slot")

// AssignBay проверяет вместимость и выбирает бокс для нового бронирования
//
// Бронирование допускается, только если каждый занимаемый им слот
// заполнен меньше чем на activeBays. Номер бокса: наименьший, не занятый
// пересекающимися бронированиями. При отсутствии пересечений результат
// равен count(same instant) + 1.
//
// Вместимость считается по слотам, а не по боксам, поэтому бывает, что
// каждый бокс занят пересекающимся бронированием, хотя ни один слот не
// переполнен. Тогда выбирается бокс с наименьшим пересечением по времени
// (при равенстве наименьший номер), не занятый бронированием с тем же
// моментом начала. Такой бокс физически занят часть интервала: номер
// бокса в этом случае условный, гарантируется только вместимость слотов.
func AssignBay(
	grid *Grid,
	existing []*Booking,
	durationOf DurationResolver,
	start time.Time,
	durationMinutes int,
	activeBays int,
) (int, error) {
	occupancy, _ := ComputeOccupancy(grid, existing, durationOf)
	for _, label := range grid.CoveredSlots(start, durationMinutes) {
		if occupancy[label] >= activeBays {
			return 0, ErrCapacityExceeded
		}
	}

	end := start.Add(time.Duration(durationMinutes) * time.Minute)
	overlap := make(map[int]time.Duration)
	sameInstant := make(map[int]bool)
	for _, b := range existing {
		if b.StartTime.Equal(start) {
			sameInstant[b.BayID] = true
		}
		d, ok := durationOf(b)
		if !ok {
			continue
		}
		if shared := intersection(start, end, b.StartTime, b.EndTime(d)); shared > 0 {
			overlap[b.BayID] += shared
		}
	}

	best, bestOverlap := 0, time.Duration(0)
	for bay := 1; bay <= activeBays; bay++ {
		if sameInstant[bay] {
			continue
		}
		if best == 0 || overlap[bay] < bestOverlap {
			best, bestOverlap = bay, overlap[bay]
		}
	}
	if best == 0 {
		return 0, ErrCapacityExceeded
	}
	return best, nil
}

// intersection длина пересечения интервалов [aStart, aEnd) и [bStart, bEnd)
func intersection(aStart, aEnd, bStart, bEnd time.Time) time.Duration {
	from, to := aStart, aEnd
	if bStart.After(from) {
		from = bStart
	}
	if bEnd.Before(to) {
		to = bEnd
	}
	if !to.After(from) {
		return 0
	}
	return to.Sub(from)
}
