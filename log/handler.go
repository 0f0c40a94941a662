package log

import (
	"net/http"
	"time"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

type loggingHandler struct {
	handler http.Handler
	logger  Logger
}

// NewLoggingHandler logs method, path, status and duration of every request
// served by handler.
func NewLoggingHandler(handler http.Handler, logger Logger) http.Handler {
	return &loggingHandler{handler: handler, logger: logger}
}

func (h *loggingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	h.handler.ServeHTTP(recorder, r)
	h.logger.Info("request",
		"method", r.Method,
		"path", r.URL.Path,
		"status", recorder.status,
		"duration", time.Since(start))
}
