package http

import (
	"encoding/json"
	"errors"
	"io"
	stdhttp "net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/MyNameIsWhaaat/commentboard/internal/board/model"
	"github.com/MyNameIsWhaaat/commentboard/internal/board/service"
	"github.com/MyNameIsWhaaat/commentboard/internal/board/state"
	"github.com/MyNameIsWhaaat/commentboard/internal/logging"
)

type Handler struct {
	svc service.BoardService
	log zerolog.Logger
}

func New(svc service.BoardService, log zerolog.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

type textRequest struct {
	Text string `json:"text"`
}

// optionalTextRequest distinguishes "no text sent" from "empty text sent".
type optionalTextRequest struct {
	Text *string `json:"text"`
}

func (h *Handler) GetBoard(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	writeJSON(w, stdhttp.StatusOK, h.svc.Snapshot(r.Context()))
}

func (h *Handler) SetDraft(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	var req textRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, stdhttp.StatusBadRequest, map[string]any{"error": "bad json"})
		return
	}
	h.respond(w, r, stdhttp.StatusOK, state.SetNewCommentText(req.Text))
}

func (h *Handler) SetReplyDraft(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	var req textRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, stdhttp.StatusBadRequest, map[string]any{"error": "bad json"})
		return
	}
	h.respond(w, r, stdhttp.StatusOK, state.SetReplyText(req.Text))
}

func (h *Handler) PostComment(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	var req optionalTextRequest
	if err := decodeOptional(r, &req); err != nil {
		writeJSON(w, stdhttp.StatusBadRequest, map[string]any{"error": "bad json"})
		return
	}

	actions := make([]state.Action, 0, 2)
	if req.Text != nil {
		actions = append(actions, state.SetNewCommentText(*req.Text))
	}
	actions = append(actions, state.PostComment())

	h.respond(w, r, stdhttp.StatusCreated, actions...)
}

func (h *Handler) DeleteComment(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	h.respond(w, r, stdhttp.StatusOK, state.DeleteComment(id))
}

func (h *Handler) ToggleStar(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	h.respond(w, r, stdhttp.StatusOK, state.ToggleStar(id))
}

// ReplyToComment answers 201 when a reply was appended and 200 when the
// comment does not exist; the shared draft is cleared either way.
func (h *Handler) ReplyToComment(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req optionalTextRequest
	if err := decodeOptional(r, &req); err != nil {
		writeJSON(w, stdhttp.StatusBadRequest, map[string]any{"error": "bad json"})
		return
	}

	actions := make([]state.Action, 0, 2)
	if req.Text != nil {
		actions = append(actions, state.SetReplyText(*req.Text))
	}
	actions = append(actions, state.ReplyToComment(id))

	b, err := h.svc.Dispatch(r.Context(), actions...)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	status := stdhttp.StatusCreated
	if b.Find(id) < 0 {
		status = stdhttp.StatusOK
	}
	writeJSON(w, status, b)
}

func (h *Handler) DeleteReply(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	replyID, ok := pathID(w, r, "replyID")
	if !ok {
		return
	}
	h.respond(w, r, stdhttp.StatusOK, state.DeleteReply(id, replyID))
}

func (h *Handler) Sort(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	mode := model.Sort(r.URL.Query().Get("by"))
	if !mode.Valid() {
		writeJSON(w, stdhttp.StatusBadRequest, map[string]any{"error": "invalid sort"})
		return
	}
	h.respond(w, r, stdhttp.StatusOK, state.SortBy(mode))
}

func (h *Handler) respond(w stdhttp.ResponseWriter, r *stdhttp.Request, status int, actions ...state.Action) {
	b, err := h.svc.Dispatch(r.Context(), actions...)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, status, b)
}

func (h *Handler) writeError(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		writeJSON(w, stdhttp.StatusBadRequest, map[string]any{"error": "invalid input"})
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("dispatch failed")
		writeJSON(w, stdhttp.StatusInternalServerError, map[string]any{
			"error":      "internal error",
			"request_id": logging.RequestID(r.Context()),
		})
	}
}

func writeJSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeOptional(r *stdhttp.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func pathID(w stdhttp.ResponseWriter, r *stdhttp.Request, name string) (int64, bool) {
	id, err := parseInt64(chi.URLParam(r, name))
	if err != nil {
		writeJSON(w, stdhttp.StatusBadRequest, map[string]any{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

func parseInt64(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return n, nil
}
