package redeem_free_wash

import "errors"

var (
	// ErrLocationNotFound возвращается, когда точка не найдена
	ErrLocationNotFound = errors.New("redeem_free_wash: location not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена или выключена
	ErrServiceNotFound = errors.New("redeem_free_wash: service not found")

	// ErrNoRewardAvailable возвращается, когда у пользователя нет бесплатных моек на точке
	ErrNoRewardAvailable = errors.New("redeem_free_wash: no free wash available")

	// ErrInvalidDate возвращается, когда слот уже начался или дата в прошлом
	ErrInvalidDate = errors.New("redeem_free_wash: invalid booking date")

	// ErrInvalidTimeSlot возвращается, когда время не совпадает со слотом сетки
	ErrInvalidTimeSlot = errors.New("redeem_free_wash: invalid time slot")

	// ErrSlotNotAvailable возвращается, когда все боксы слота заняты
	ErrSlotNotAvailable = errors.New("redeem_free_wash: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("redeem_free_wash: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("redeem_free_wash: internal error")
)
