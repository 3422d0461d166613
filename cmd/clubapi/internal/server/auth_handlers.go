package server

import (
	"net/http"
	"time"

	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/auth"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/db/models"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/services/session"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/services/validation"
)

// LoginResponse represents the response from POST /api/login
type LoginResponse struct {
	User      *models.User `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// register handles POST /api/register - public sign-up
func (h *handlers) register(w http.ResponseWriter, r *http.Request) {
	payload, err := decodeObject(w, r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := h.validator.Validate(r.Context(), validation.UserRegister, payload); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	user, err := h.gw.Users.Register(r.Context(),
		stringField(payload, "username"),
		stringField(payload, "password"),
		stringField(payload, "email"),
	)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// login handles POST /api/login. On success the session token is set as an
// HttpOnly cookie and also returned for Authorization header clients.
func (h *handlers) login(w http.ResponseWriter, r *http.Request) {
	payload, err := decodeObject(w, r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := h.validator.Validate(r.Context(), validation.UserLogin, payload); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	token, sess, user, err := h.sessions.Login(r.Context(),
		stringField(payload, "username"),
		stringField(payload, "password"),
		session.ClientInfo{UserAgent: r.UserAgent(), IPAddress: r.RemoteAddr},
	)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		Secure:   h.cookieSecure || r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, LoginResponse{User: user, Token: token, ExpiresAt: sess.ExpiresAt})
}

// logout handles POST /api/logout. It succeeds without a session too.
func (h *handlers) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Destroy(r.Context(), sessionToken(r)); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	// Clear the session cookie
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure || r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// me handles GET /api/me and GET /api/users/me
func (h *handlers) me(w http.ResponseWriter, r *http.Request) {
	user, err := h.gw.Users.Me(r.Context(), sessionToken(r))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// updateMe handles PATCH /api/users/me
func (h *handlers) updateMe(w http.ResponseWriter, r *http.Request) {
	payload, err := decodeObject(w, r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	user, err := h.gw.Users.UpdateMe(r.Context(), sessionToken(r), payload)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// resolveDashboard handles GET /api/dashboard. Visitors without a session
// get the unauthenticated view with a redirect to the login page.
func (h *handlers) resolveDashboard(w http.ResponseWriter, r *http.Request) {
	res, err := h.dashboard.Resolve(r.Context(), sessionToken(r))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
