package http

import (
	"encoding/json"
	"fmt"
	stdhttp "net/http"

	"github.com/rs/zerolog"
)

// Events streams a "snapshot" server-sent event for the current board and
// for every later change, until the client goes away.
func (h *Handler) Events(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	flusher, ok := w.(stdhttp.Flusher)
	if !ok {
		writeJSON(w, stdhttp.StatusInternalServerError, map[string]any{"error": "streaming unsupported"})
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(stdhttp.StatusOK)
	flusher.Flush()

	for b := range h.svc.Subscribe(r.Context()) {
		data, err := json.Marshal(b)
		if err != nil {
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("encode snapshot")
			return
		}
		if _, err := fmt.Fprintf(w, "id: %d\nevent: snapshot\ndata: %s\n\n", b.Revision, data); err != nil {
			return
		}
		flusher.Flush()
	}
}
