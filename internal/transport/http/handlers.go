package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	appmedia "videosvc/internal/application/media"
	mediadomain "videosvc/internal/domain/media"
	vlog "videosvc/internal/log"
)

const maxRequestBytes = 1 << 20

type taskUseCases interface {
	Submit(ctx context.Context, req appmedia.Request) (appmedia.Handle, error)
	Status(taskID string) (mediadomain.TaskRecord, bool)
}

type Handler struct {
	tasks  taskUseCases
	logger zerolog.Logger
}

// NewHandler wires HTTP handlers with the processing coordinator.
func NewHandler(tasks taskUseCases, logger zerolog.Logger) *Handler {
	return &Handler{tasks: tasks, logger: logger}
}

type processRequest struct {
	VideoID       string `json:"video_id"`
	TaskID        string `json:"task_id"`
	TargetFormat  string `json:"target_format"`
	SkipThumbnail bool   `json:"skip_thumbnail"`
}

type processResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	TaskID  string `json:"task_id"`
}

// Process handles POST /process. It answers before any media work runs.
func (h *Handler) Process(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)

	var req processRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	_, err := h.tasks.Submit(r.Context(), appmedia.Request{
		VideoID:       req.VideoID,
		TaskID:        req.TaskID,
		Target:        mediadomain.DeliveryTarget(req.TargetFormat),
		SkipThumbnail: req.SkipThumbnail,
	})
	if err != nil {
		status := submitErrorStatus(err)
		if status == http.StatusInternalServerError {
			reqLogger := vlog.WithContext(r.Context(), h.logger)
			reqLogger.Error().Err(err).Str("task_id", req.TaskID).Msg("submission failed")
		}
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, processResponse{
		Status:  "accepted",
		Message: "Processing started in background",
		TaskID:  req.TaskID,
	})
}

// Status handles GET /status/{task_id}. Unknown ids answer 200 with a JSON
// null body.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	record, ok := h.tasks.Status(mux.Vars(r)["task_id"])
	if !ok {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func submitErrorStatus(err error) int {
	switch {
	case errors.Is(err, mediadomain.ErrTaskExists):
		return http.StatusConflict
	case errors.Is(err, mediadomain.ErrInvalidRequest), errors.Is(err, mediadomain.ErrInvalidSource):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
