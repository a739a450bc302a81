package users

import "errors"

var (
	// ErrUnauthenticated возвращается для запроса без проверенной личности
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrUserNotFound возвращается, когда профиль не найден
	ErrUserNotFound = errors.New("user not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав root
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrStoreUnavailable возвращается при ошибках хранилища
	ErrStoreUnavailable = errors.New("service: store unavailable")
)
