package middleware

import (
	"context"
	"net/http"
	"strings"

	"wardrobe/pkg/model"
)

const (
	actorKey      contextKey = "actor"
	actorErrKey   contextKey = "actor_error"
	bearerPrefix             = "bearer "
)

// CredentialResolver turns a bearer credential into the caller's identity.
type CredentialResolver interface {
	ResolveActor(ctx context.Context, credential string) (*model.Actor, error)
}

// Authenticate resolves the bearer credential, when present, and stores the
// actor (or the resolution error) in the request context. It never rejects a
// request itself; operations decide whether an actor is required.
func Authenticate(resolver CredentialResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			credential, ok := BearerCredential(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			actor, err := resolver.ResolveActor(ctx, credential)
			if err != nil {
				ctx = context.WithValue(ctx, actorErrKey, err)
			} else {
				ctx = context.WithValue(ctx, actorKey, actor)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func BearerCredential(r *http.Request) (string, bool) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}
	credential := strings.TrimSpace(header[len(bearerPrefix):])
	return credential, credential != ""
}

// ActorFromContext returns the resolved actor, nil when no credential was
// sent, or the error that resolving a supplied credential produced.
func ActorFromContext(ctx context.Context) (*model.Actor, error) {
	if err, ok := ctx.Value(actorErrKey).(error); ok {
		return nil, err
	}
	actor, _ := ctx.Value(actorKey).(*model.Actor)
	return actor, nil
}

// WithActor is used by tests and internal callers to bind an actor directly.
func WithActor(ctx context.Context, actor *model.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}
