package identity

import jwtlib "github.com/golang-jwt/jwt/v5"

// Claims набор claims токена провайдера идентификации
// sub - идентификатор пользователя, root - привилегия, выданная провайдером
type Claims struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture,omitempty"`
	Root    bool   `json:"root,omitempty"`
	jwtlib.RegisteredClaims
}

// Identity проверенная личность вызывающего
type Identity struct {
	UserID    string
	Name      string
	Email     string
	AvatarURL *string
	Root      bool
}
