package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-WashBooking/pkg/types"
)

// BlockedSlot слот, закрытый менеджером для записи
type BlockedSlot struct {
	LocationID string
	Date       time.Time
	TimeSlot   types.TimeString
	CreatedAt  time.Time
}

// Key возвращает ключ вида "2025-03-10_09:15"
func (s *BlockedSlot) Key() string {
	return fmt.Sprintf("%s_%s", s.Date.Format(DateFormat), s.TimeSlot)
}
