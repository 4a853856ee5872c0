package notifier

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/notifykit/notifier/pkg/logger"
	"github.com/notifykit/notifier/pkg/pipeline"
)

const (
	statusSuccess = "SUCCESS"
	statusError   = "ERROR"

	// maxBodySize bounds inbound event payloads.
	maxBodySize = 1 << 20
)

type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Router builds the HTTP surface for sidecar mode: the event push endpoint,
// the subscription list, and a liveness probe.
func Router(proc *pipeline.Processor, pubsubName string, log *slog.Logger) chi.Router {
	if log == nil {
		log = slog.Default()
	}

	r := chi.NewRouter()

	r.Post("/events/{eventType}", handleEvent(proc, log))

	r.Get("/dapr/subscribe", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, Subscriptions(pubsubName))
	})

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, statusResponse{Status: statusSuccess})
	})

	return r
}

// handleEvent processes one pushed event. A skipped event is still a 200:
// redelivering a permanently malformed payload cannot help. Only an
// unexpected fault produces a 500, which triggers the sidecar's redelivery
// with backoff.
func handleEvent(proc *pipeline.Processor, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		eventType := chi.URLParam(req, "eventType")

		body, err := io.ReadAll(io.LimitReader(req.Body, maxBodySize))
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, statusResponse{
				Status:  statusError,
				Message: "failed to read request body",
			})
			return
		}

		if err := process(proc, req, body, eventType); err != nil {
			log.LogAttrs(req.Context(), slog.LevelError, "event processing failed",
				logger.EventType(eventType),
				logger.Error(err),
			)
			writeJSON(w, http.StatusInternalServerError, statusResponse{
				Status:  statusError,
				Message: err.Error(),
			})
			return
		}

		writeJSON(w, http.StatusOK, statusResponse{Status: statusSuccess})
	}
}

// process invokes the pipeline with panic recovery so a panicking handler
// surfaces as a 500 instead of tearing down the connection.
func process(proc *pipeline.Processor, req *http.Request, body []byte, eventType string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while processing event: %v", r)
		}
	}()
	return proc.Process(req.Context(), body, eventType)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
