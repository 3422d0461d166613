package server

import (
	"net/http"

	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/services/validation"
)

// myComments handles GET /api/users/me/comments
func (h *handlers) myComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.gw.Comments.ListMine(r.Context(), sessionToken(r))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, comments)
}

// createComment handles POST /api/comments
func (h *handlers) createComment(w http.ResponseWriter, r *http.Request) {
	payload, err := decodeObject(w, r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	comment, err := h.gw.Comments.Create(r.Context(), sessionToken(r), payload)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}

// updateComment handles PATCH /api/comments/{id}
func (h *handlers) updateComment(w http.ResponseWriter, r *http.Request) {
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

	comment, err := h.gw.Comments.Update(r.Context(), sessionToken(r), id, payload)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, comment)
}

// deleteComment handles DELETE /api/comments/{id}
func (h *handlers) deleteComment(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := h.gw.Comments.Delete(r.Context(), sessionToken(r), id); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// myRegistrations handles GET /api/users/me/event-registrations
func (h *handlers) myRegistrations(w http.ResponseWriter, r *http.Request) {
	regs, err := h.gw.Registrations.ListMine(r.Context(), sessionToken(r))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, regs)
}

// registerForEvent handles POST /api/event-registrations
func (h *handlers) registerForEvent(w http.ResponseWriter, r *http.Request) {
	payload, err := decodeObject(w, r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := h.validator.Validate(r.Context(), validation.RegistrationCreate, payload); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	reg, err := h.gw.Registrations.Register(r.Context(), sessionToken(r), intField(payload, "event_id"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, reg)
}

// cancelRegistration handles DELETE /api/event-registrations/{id}
func (h *handlers) cancelRegistration(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := h.gw.Registrations.Cancel(r.Context(), sessionToken(r), id); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// eventRegistrations handles GET /api/events/{id}/registrations
func (h *handlers) eventRegistrations(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	regs, err := h.gw.Registrations.ListForEvent(r.Context(), sessionToken(r), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, regs)
}

// listMessages handles GET /api/messages
func (h *handlers) listMessages(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.gw.Messages.List(r.Context(), sessionToken(r))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, msgs)
}

// createMessage handles POST /api/messages
func (h *handlers) createMessage(w http.ResponseWriter, r *http.Request) {
	payload, err := decodeObject(w, r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := h.validator.Validate(r.Context(), validation.MessageCreate, payload); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	msg, err := h.gw.Messages.Create(r.Context(), sessionToken(r), stringField(payload, "content"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, msg)
}

// deleteMessage handles DELETE /api/messages/{id}
func (h *handlers) deleteMessage(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := h.gw.Messages.Delete(r.Context(), sessionToken(r), id); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
