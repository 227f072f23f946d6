package blockedslots

import "errors"

var (
	// ErrLocationNotFound возвращается, когда точка не найдена
	ErrLocationNotFound = errors.New("blocked_slots: location not found")

	// ErrInvalidTimeSlot возвращается, когда время не является слотом сетки
	ErrInvalidTimeSlot = errors.New("blocked_slots: invalid time slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("blocked_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("blocked_slots: internal error")
)
