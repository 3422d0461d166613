package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/db/models"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/services/access"
)

// mountContent registers the CRUD routes of one content collection under
// path, plus the comment listing when the kind takes comments.
func mountContent[T any, PT interface {
	*T
	models.Content
}](r chi.Router, path string, h *handlers, svc *access.ContentService[T, PT], commentable bool) {
	ch := &contentHandlers[T, PT]{handlers: h, svc: svc}

	r.Get(path, ch.list)
	r.Get(path+"/{id}", ch.get)

	authed := r.With(h.requireSession)
	authed.Post(path, ch.create)
	authed.Patch(path+"/{id}", ch.update)
	authed.Delete(path+"/{id}", ch.delete)
	if commentable {
		r.Get(path+"/{id}/comments", ch.comments)
	}
}

type contentHandlers[T any, PT interface {
	*T
	models.Content
}] struct {
	*handlers
	svc *access.ContentService[T, PT]
}

// list handles GET /api/{kind}?filter=<expression>
func (ch *contentHandlers[T, PT]) list(w http.ResponseWriter, r *http.Request) {
	items, err := ch.svc.List(r.Context(), r.URL.Query().Get("filter"))
	if err != nil {
		writeError(w, r, ch.log, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (ch *contentHandlers[T, PT]) get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, ch.log, err)
		return
	}

	item, err := ch.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, ch.log, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (ch *contentHandlers[T, PT]) create(w http.ResponseWriter, r *http.Request) {
	payload, err := decodeObject(w, r)
	if err != nil {
		writeError(w, r, ch.log, err)
		return
	}

	item, err := ch.svc.Create(r.Context(), sessionToken(r), payload)
	if err != nil {
		writeError(w, r, ch.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (ch *contentHandlers[T, PT]) update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, ch.log, err)
		return
	}
	payload, err := decodeObject(w, r)
	if err != nil {
		writeError(w, r, ch.log, err)
		return
	}

	item, err := ch.svc.Update(r.Context(), sessionToken(r), id, payload)
	if err != nil {
		writeError(w, r, ch.log, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (ch *contentHandlers[T, PT]) delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, ch.log, err)
		return
	}

	if err := ch.svc.Delete(r.Context(), sessionToken(r), id); err != nil {
		writeError(w, r, ch.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// comments handles GET /api/{kind}/{id}/comments
func (ch *contentHandlers[T, PT]) comments(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, ch.log, err)
		return
	}

	comments, err := ch.gw.Comments.ListForTarget(r.Context(), ch.svc.Kind(), id)
	if err != nil {
		writeError(w, r, ch.log, err)
		return
	}
	writeJSON(w, http.StatusOK, comments)
}
