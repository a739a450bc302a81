package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/yakidesk/internal/api/handlers"
	"github.com/m04kA/yakidesk/internal/domain"
	"github.com/m04kA/yakidesk/internal/integrations/identity"
)

const (
	msgMissingToken = "отсутствует токен авторизации"
	msgInvalidToken = "некорректный токен авторизации"
	msgExpiredToken = "срок действия токена истек"
)

type TokenVerifier interface {
	Verify(token string) (*identity.Identity, error)
}

type ActorResolver interface {
	ResolveActor(ctx context.Context, id *identity.Identity) (domain.Actor, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Auth проверяет Bearer токен и кладет Actor и Identity в контекст
// Токен проверяется локально, права root берутся из резолвера.
func Auth(verifier TokenVerifier, resolver ActorResolver, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				logger.Warn("Auth: %s %s - missing bearer token", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			id, err := verifier.Verify(token)
			if err != nil {
				logger.Warn("Auth: %s %s - token rejected: %v", r.Method, r.URL.Path, err)
				if errors.Is(err, identity.ErrExpiredToken) {
					handlers.RespondUnauthorized(w, msgExpiredToken)
					return
				}
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			actor, err := resolver.ResolveActor(r.Context(), id)
			if err != nil {
				logger.Error("Auth: failed to resolve actor user_id=%s: %v", id.UserID, err)
				handlers.RespondServiceUnavailable(w)
				return
			}

			ctx := WithIdentity(r.Context(), id)
			ctx = WithActor(ctx, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
