package rest

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/ewilliams-labs/seekwave/internal/core/services"
	"github.com/ewilliams-labs/seekwave/internal/worker"
)

const requestIDHeader = "X-Request-ID"

// Handler manages the HTTP interface for our application.
type Handler struct {
	svc    *services.Orchestrator
	pool   *worker.Pool // optional
	router *http.ServeMux
}

// NewHandler initializes the HTTP adapter and sets up routes.
// pool may be nil, in which case prefetch requests are refused.
func NewHandler(svc *services.Orchestrator, pool *worker.Pool) *Handler {
	h := &Handler{
		svc:    svc,
		pool:   pool,
		router: http.NewServeMux(),
	}

	h.routes()

	return h
}

// ServeHTTP satisfies the http.Handler interface. Every request gets an
// X-Request-ID, reusing the caller's when supplied.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := r.Header.Get(requestIDHeader)
	if id == "" {
		id = uuid.NewString()
		r.Header.Set(requestIDHeader, id)
	}
	w.Header().Set(requestIDHeader, id)

	h.router.ServeHTTP(w, r)
}

func (h *Handler) routes() {
	h.router.HandleFunc("GET /health", h.HealthCheck)

	h.router.HandleFunc("GET /tracks/{id}/waveform", h.GetWaveform)
	h.router.HandleFunc("GET /tracks/{id}/profile", h.GetProfile)
	h.router.HandleFunc("POST /tracks/{id}/prefetch", h.Prefetch)
}

// HealthCheck is a simple endpoint to verify the API is running.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "message": "Seekwave is live 🌊"})
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("WARN rest: failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func writeErrorWithCode(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, errorResponse{Error: message, Code: code})
}
