// Package middleware holds the HTTP middleware of the club API.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/auth"
)

// ActorResolver resolves a session token to the acting user.
type ActorResolver interface {
	Actor(ctx context.Context, token string) (auth.Actor, error)
}

// NewSessionMiddleware extracts the session token from the club.session
// cookie or the Authorization header and stores it on the request context.
// When resolver is set the actor is resolved once here and stored too.
//
// It never rejects a request: missing, expired and unknown tokens pass
// through, and whichever operation needs a session reports
// auth.ErrUnauthenticated itself.
func NewSessionMiddleware(resolver ActorResolver, log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if shouldSkipSession(r) {
				next.ServeHTTP(w, r)
				return
			}

			token := auth.TokenFromRequest(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := auth.WithSessionToken(r.Context(), token)
			if resolver != nil {
				actor, err := resolver.Actor(ctx, token)
				switch {
				case err == nil:
					ctx = auth.SetActorContext(ctx, actor)
				case !errors.Is(err, auth.ErrUnauthenticated):
					log.Warnf("[Session] Actor lookup failed for %s %s: %v", r.Method, r.URL.Path, err)
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// shouldSkipSession determines if session extraction should be skipped for the request
func shouldSkipSession(r *http.Request) bool {
	if r.Method == http.MethodOptions {
		return true
	}
	for _, prefix := range []string{"/health", "/metrics"} {
		if strings.HasPrefix(r.URL.Path, prefix) {
			return true
		}
	}
	return false
}
