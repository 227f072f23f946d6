package get_availability

import (
	"time"

	"github.com/m04kA/SMC-WashBooking/internal/domain"
	"github.com/m04kA/SMC-WashBooking/pkg/types"
)

// filterAvailable оставляет слоты, где занято меньше activeBays боксов
// и которые не заблокированы менеджером
func filterAvailable(
	slots []types.TimeString,
	occupancy domain.Occupancy,
	blocked map[types.TimeString]struct{},
	activeBays int,
) []types.TimeString {
	result := make([]types.TimeString, 0, len(slots))
	for _, slot := range slots {
		if occupancy[slot] >= activeBays {
			continue
		}
		if _, ok := blocked[slot]; ok {
			continue
		}
		result = append(result, slot)
	}
	return result
}

// dropStarted убирает слоты, время начала которых уже наступило
// Слот, начинающийся ровно сейчас, тоже считается прошедшим
func dropStarted(grid *domain.Grid, date time.Time, slots []types.TimeString, now time.Time) []types.TimeString {
	result := make([]types.TimeString, 0, len(slots))
	for _, slot := range slots {
		if grid.Instant(date, slot).After(now) {
			result = append(result, slot)
		}
	}
	return result
}

// blockedSet собирает метки заблокированных слотов в множество
func blockedSet(slots []*domain.BlockedSlot) map[types.TimeString]struct{} {
	set := make(map[types.TimeString]struct{}, len(slots))
	for _, s := range slots {
		set[s.TimeSlot] = struct{}{}
	}
	return set
}
