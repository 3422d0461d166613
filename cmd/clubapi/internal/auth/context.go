package auth

import "context"

type sessionTokenContextKey struct{}

// WithSessionToken stores the caller's raw session token on the context.
func WithSessionToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, sessionTokenContextKey{}, token)
}

// SessionTokenFromContext returns the token stored by WithSessionToken, or "".
func SessionTokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(sessionTokenContextKey{}).(string)
	return token
}

// Actor is the resolved caller of an operation.
type Actor struct {
	UserID   int64
	Username string
	Role     Role
}

// Anonymous reports whether the actor has no session.
func (a Actor) Anonymous() bool { return a.UserID == 0 }

// Owns builds the Ownership of the actor against a resource owned by ownerID.
func (a Actor) Owns(ownerID int64) Ownership {
	return Ownership{ActorID: a.UserID, OwnerID: ownerID}
}

type actorContextKey struct{}

// SetActorContext stores the resolved actor on the context for downstream consumers.
func SetActorContext(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

// GetActorFromContext retrieves the resolved actor from the context.
func GetActorFromContext(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(actorContextKey{}).(Actor)
	return actor, ok
}
