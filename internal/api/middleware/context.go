package middleware

import (
	"context"

	"github.com/m04kA/yakidesk/internal/domain"
	"github.com/m04kA/yakidesk/internal/integrations/identity"
)

type contextKey string

const (
	actorKey    contextKey = "actor"
	identityKey contextKey = "identity"
)

// WithActor кладет Actor в контекст запроса
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// GetActor возвращает Actor из контекста
// Без middleware Auth возвращается domain.Anonymous.
func GetActor(ctx context.Context) domain.Actor {
	actor, ok := ctx.Value(actorKey).(domain.Actor)
	if !ok {
		return domain.Anonymous
	}
	return actor
}

// WithIdentity кладет проверенную личность в контекст запроса
func WithIdentity(ctx context.Context, id *identity.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// GetIdentity возвращает проверенную личность или nil
func GetIdentity(ctx context.Context) *identity.Identity {
	id, _ := ctx.Value(identityKey).(*identity.Identity)
	return id
}
