package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/auth"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// decodeObject reads a JSON object body.
func decodeObject(w http.ResponseWriter, r *http.Request) (map[string]any, error) {
	var payload map[string]any
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: request body must be a JSON object: %v", auth.ErrInvalidInput, err)
	}
	if payload == nil {
		return nil, fmt.Errorf("%w: request body must be a JSON object", auth.ErrInvalidInput)
	}
	return payload, nil
}

// idParam parses the {id} URL parameter.
func idParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id %q", auth.ErrInvalidInput, raw)
	}
	return id, nil
}

// requireSession rejects requests without a valid session before the handler
// parses ids or bodies. The gateway still checks the session and policy
// itself; the actor resolved here is reused from the request context.
func (h *handlers) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := h.gw.Actor(r.Context(), sessionToken(r)); err != nil {
			writeError(w, r, h.log, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func sessionToken(r *http.Request) string {
	return auth.SessionTokenFromContext(r.Context())
}

// stringField returns payload[key] for a payload already validated to hold
// a string there.
func stringField(payload map[string]any, key string) string {
	s, _ := payload[key].(string)
	return s
}

// intField returns payload[key] for a payload already validated to hold an
// integer there.
func intField(payload map[string]any, key string) int64 {
	f, _ := payload[key].(float64)
	return int64(f)
}
