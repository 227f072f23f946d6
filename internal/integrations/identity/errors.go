package identity

import "errors"

var (
	// ErrUserNotFound возвращается, когда identity provider не знает пользователя
	ErrUserNotFound = errors.New("identity client: user not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("identity client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("identity client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Профиль создается без имени и email, заполнить их можно позже
	ErrServiceDegraded = errors.New("identity provider unavailable: graceful degradation applied")
)
