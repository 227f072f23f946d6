package get_availability

import (
	"time"

	"github.com/m04kA/SMC-WashBooking/pkg/types"
)

// Request модель запроса доступных слотов
type Request struct {
	LocationID string    // ID точки
	Date       time.Time // Дата в опорной зоне (00:00 UTC)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date       time.Time          // Дата, на которую запрашивались слоты
	LocationID string             // ID точки
	ActiveBays int                // Вместимость точки на дату
	Slots      []types.TimeString // Свободные метки по возрастанию
}
