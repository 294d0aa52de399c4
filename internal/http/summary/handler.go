package summary

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rqsn/donasi/internal/aggregate"
	"github.com/rqsn/donasi/internal/http/respond"
)

const keepAlive = 15 * time.Second

type Handler struct {
	tracker *aggregate.Tracker
}

func NewHandler(tracker *aggregate.Tracker) *Handler {
	return &Handler{tracker: tracker}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.current)
	r.Get("/stream", h.stream)
}

func (h *Handler) current(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, h.tracker.Current())
}

// stream pushes a server-sent event for every recomputed snapshot, starting
// with the current one.
func (h *Handler) stream(w http.ResponseWriter, r *http.Request) {
	sub, err := h.tracker.Subscribe(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	defer sub.Close()

	rc := http.NewResponseController(w)

	// The stream outlives the server's write timeout.
	if err := rc.SetWriteDeadline(time.Time{}); err != nil {
		slog.Debug("write deadline not supported", "error", err)
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	ticker := time.NewTicker(keepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
				return
			}
		case u, ok := <-sub.Updates():
			if !ok {
				return
			}

			var writeErr error

			sub.Deliver(u, func(s aggregate.Snapshot) {
				writeErr = writeEvent(w, u.Version, s)
			})

			if writeErr != nil {
				slog.Debug("summary stream closed", "error", writeErr)
				return
			}
		}

		if err := rc.Flush(); err != nil {
			return
		}
	}
}

func writeEvent(w http.ResponseWriter, version uint64, s aggregate.Snapshot) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}

	_, err = fmt.Fprintf(w, "id: %d\nevent: summary\ndata: %s\n\n", version, data)

	return err
}
