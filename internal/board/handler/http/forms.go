package http

import (
	"errors"
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/MyNameIsWhaaat/commentboard/internal/board/model"
	"github.com/MyNameIsWhaaat/commentboard/internal/board/service"
	"github.com/MyNameIsWhaaat/commentboard/internal/board/state"
	"github.com/MyNameIsWhaaat/commentboard/internal/board/view"
	"github.com/MyNameIsWhaaat/commentboard/internal/logging"
)

// Index renders the current snapshot as the board page.
func (h *Handler) Index(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := view.RenderHTML(w, h.svc.Snapshot(r.Context())); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("render board")
		stdhttp.Error(w, "internal error", stdhttp.StatusInternalServerError)
	}
}

func (h *Handler) FormPost(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	if err := r.ParseForm(); err != nil {
		stdhttp.Error(w, "bad form", stdhttp.StatusBadRequest)
		return
	}
	h.formDispatch(w, r, state.SetNewCommentText(r.PostForm.Get("text")), state.PostComment())
}

func (h *Handler) FormDelete(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	id, ok := formID(w, r, "id")
	if !ok {
		return
	}
	h.formDispatch(w, r, state.DeleteComment(id))
}

func (h *Handler) FormStar(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	id, ok := formID(w, r, "id")
	if !ok {
		return
	}
	h.formDispatch(w, r, state.ToggleStar(id))
}

func (h *Handler) FormReply(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	id, ok := formID(w, r, "id")
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		stdhttp.Error(w, "bad form", stdhttp.StatusBadRequest)
		return
	}
	h.formDispatch(w, r, state.SetReplyText(r.PostForm.Get("text")), state.ReplyToComment(id))
}

func (h *Handler) FormDeleteReply(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	id, ok := formID(w, r, "id")
	if !ok {
		return
	}
	replyID, ok := formID(w, r, "replyID")
	if !ok {
		return
	}
	h.formDispatch(w, r, state.DeleteReply(id, replyID))
}

func (h *Handler) FormSort(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	mode := model.Sort(chi.URLParam(r, "mode"))
	if !mode.Valid() {
		stdhttp.Error(w, "invalid sort", stdhttp.StatusBadRequest)
		return
	}
	h.formDispatch(w, r, state.SortBy(mode))
}

func (h *Handler) formDispatch(w stdhttp.ResponseWriter, r *stdhttp.Request, actions ...state.Action) {
	if _, err := h.svc.Dispatch(r.Context(), actions...); err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			stdhttp.Error(w, "invalid input", stdhttp.StatusBadRequest)
			return
		}
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("dispatch failed")
		stdhttp.Error(w, "internal error, request "+logging.RequestID(r.Context()), stdhttp.StatusInternalServerError)
		return
	}
	stdhttp.Redirect(w, r, "/", stdhttp.StatusSeeOther)
}

func formID(w stdhttp.ResponseWriter, r *stdhttp.Request, name string) (int64, bool) {
	id, err := parseInt64(chi.URLParam(r, name))
	if err != nil {
		stdhttp.Error(w, "invalid "+name, stdhttp.StatusBadRequest)
		return 0, false
	}
	return id, true
}
