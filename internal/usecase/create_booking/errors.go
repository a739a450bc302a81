package create_booking

import "errors"

var (
	// ErrUnauthenticated возвращается для запроса без проверенной личности
	ErrUnauthenticated = errors.New("create_booking: unauthenticated")

	// ErrNotApproved возвращается, когда профиль пользователя не одобрен
	ErrNotApproved = errors.New("create_booking: user is not approved")

	// ErrDeskNotFound возвращается, когда стол не найден
	ErrDeskNotFound = errors.New("create_booking: desk not found")

	// ErrInvalidDate возвращается для даты в прошлом
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrSlotTaken возвращается, когда слот занят, а права переопределения нет
	ErrSlotTaken = errors.New("create_booking: slot is already taken")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrStoreUnavailable возвращается при ошибках хранилища
	ErrStoreUnavailable = errors.New("create_booking: store unavailable")
)
