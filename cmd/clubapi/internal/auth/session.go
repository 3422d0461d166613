package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	// SessionDuration is the default absolute session lifetime (12 hours)
	SessionDuration = 12 * time.Hour

	// SessionCookieName carries the session token for browser clients
	SessionCookieName = "club.session"

	// TokenLength is the length of generated bearer tokens in bytes
	TokenLength = 32
)

// GenerateBearerToken generates a cryptographically secure random bearer token
// Returns: token (hex string), token hash (SHA256 hex), error
func GenerateBearerToken() (string, string, error) {
	tokenBytes := make([]byte, TokenLength)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", "", fmt.Errorf("generate random token: %w", err)
	}

	token := hex.EncodeToString(tokenBytes)
	return token, HashBearerToken(token), nil
}

// HashBearerToken hashes a bearer token for storage/lookup
// Returns SHA256 hex hash
func HashBearerToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

// CalculateExpiry returns the absolute expiry for a session created at createdAt.
func CalculateExpiry(createdAt time.Time, ttl time.Duration) time.Time {
	if ttl <= 0 {
		ttl = SessionDuration
	}
	return createdAt.Add(ttl)
}

// TokenFromRequest extracts the session token from the Authorization header
// or, failing that, the session cookie. It returns "" when neither is present.
func TokenFromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		scheme, token, ok := strings.Cut(header, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
	}
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		return cookie.Value
	}
	return ""
}
