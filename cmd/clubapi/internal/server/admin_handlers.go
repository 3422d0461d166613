package server

import (
	"net/http"

	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/services/validation"
)

// listUsers handles GET /api/users?role= (admin only)
func (h *handlers) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.gw.Users.ListUsers(r.Context(), sessionToken(r), r.URL.Query().Get("role"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// getUser handles GET /api/users/{id} (admin only)
func (h *handlers) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	user, err := h.gw.Users.Get(r.Context(), sessionToken(r), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// setUserRole handles PATCH /api/users/{id}/role (admin only)
func (h *handlers) setUserRole(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	payload, err := decodeObject(w, r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := h.validator.Validate(r.Context(), validation.UserRole, payload); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	user, err := h.gw.Users.SetUserRole(r.Context(), sessionToken(r), id, stringField(payload, "role"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
