package http

import (
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MyNameIsWhaaat/commentboard/internal/logging"
)

func (h *Handler) Routes() stdhttp.Handler {
	mux := chi.NewRouter()
	mux.Use(logging.Middleware(h.log))
	mux.Use(middleware.Recoverer)

	mux.Get("/healthz", func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(stdhttp.StatusOK)
		_, _ = w.Write([]byte(`{"result":"ok"}`))
	})

	mux.Get("/", h.Index)
	mux.Post("/post", h.FormPost)
	mux.Post("/comments/{id}/delete", h.FormDelete)
	mux.Post("/comments/{id}/star", h.FormStar)
	mux.Post("/comments/{id}/reply", h.FormReply)
	mux.Post("/comments/{id}/replies/{replyID}/delete", h.FormDeleteReply)
	mux.Post("/sort/{mode}", h.FormSort)

	mux.Route("/api", func(r chi.Router) {
		r.Get("/board", h.GetBoard)
		r.Put("/board/draft", h.SetDraft)
		r.Put("/board/reply-draft", h.SetReplyDraft)
		r.Post("/comments", h.PostComment)
		r.Delete("/comments/{id}", h.DeleteComment)
		r.Post("/comments/{id}/star", h.ToggleStar)
		r.Post("/comments/{id}/replies", h.ReplyToComment)
		r.Delete("/comments/{id}/replies/{replyID}", h.DeleteReply)
		r.Post("/sort", h.Sort)
		r.Get("/events", h.Events)
	})

	return mux
}
