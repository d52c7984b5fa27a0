package console

import (
	"context"
	"strings"
)

type actorKey struct{}

// WithActor asocia al contexto el usuario que firma la bitácora.
func WithActor(ctx context.Context, actor string) context.Context {
	actor = strings.TrimSpace(actor)
	if actor == "" {
		return ctx
	}
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFrom usuario del contexto; vacío si no hay.
func ActorFrom(ctx context.Context) string {
	s, _ := ctx.Value(actorKey{}).(string)
	return s
}
