package get_available_slots

import "errors"

var (
	// ErrUnauthenticated возвращается для запроса без проверенной личности
	ErrUnauthenticated = errors.New("get_available_slots: unauthenticated")

	// ErrDeskNotFound возвращается, когда стол не найден
	ErrDeskNotFound = errors.New("get_available_slots: desk not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrStoreUnavailable возвращается при ошибках хранилища
	ErrStoreUnavailable = errors.New("get_available_slots: store unavailable")
)
