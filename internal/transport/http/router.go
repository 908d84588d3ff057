package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// NewRouter configures the task API. metricsHandler is mounted at /metrics
// when non-nil.
func NewRouter(handler *Handler, metricsHandler http.Handler, logger zerolog.Logger) *mux.Router {
	r := mux.NewRouter()
	r.Use(RequestID, AccessLog(logger), Recoverer(logger))

	r.HandleFunc("/process", handler.Process).Methods(http.MethodPost)
	r.HandleFunc("/status/{task_id}", handler.Status).Methods(http.MethodGet)
	r.HandleFunc("/health", handler.Health).Methods(http.MethodGet)
	if metricsHandler != nil {
		r.Handle("/metrics", metricsHandler).Methods(http.MethodGet)
	}
	return r
}
