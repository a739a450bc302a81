package identity

import "errors"

var (
	// ErrMissingToken возвращается, когда токен не передан
	ErrMissingToken = errors.New("identity: missing token")

	// ErrInvalidToken возвращается при неверной подписи, формате или claims
	ErrInvalidToken = errors.New("identity: invalid token")

	// ErrExpiredToken возвращается для просроченного токена
	ErrExpiredToken = errors.New("identity: token expired")
)
