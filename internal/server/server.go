package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dshills/autoreview/internal/export"
	"github.com/dshills/autoreview/internal/redact"
	"github.com/dshills/autoreview/internal/review"
)

// Handlers exposes the review workflow and the export sink over HTTP.
type Handlers struct {
	Orch *review.Orchestrator
	Sink export.Sink
	Log  Logger
}

// NewHandlers wires the HTTP layer.
func NewHandlers(orch *review.Orchestrator, sink export.Sink, log Logger) *Handlers {
	return &Handlers{Orch: orch, Sink: sink, Log: log}
}

// NewRouter builds the HTTP route table.
func NewRouter(h *Handlers) http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", h.Health).Methods("GET")
	r.HandleFunc("/api/v1/review", h.Review).Methods("POST")
	r.HandleFunc("/api/v1/export", h.Export).Methods("POST")
	return r
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func errorResp(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"status": "error", "message": msg})
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

// Review runs one orchestration. Malformed requests are 400; per-run
// failures come back as a structured error result with HTTP 200, so the
// caller always gets the RunResult shape.
func (h *Handlers) Review(w http.ResponseWriter, r *http.Request) {
	var req review.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResp(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Owner == "" || req.Repo == "" || req.Number <= 0 {
		errorResp(w, http.StatusBadRequest, "owner, repo, and pr_number are required")
		return
	}

	h.Log.Infof("reviewing %s/%s#%d (auto_merge=%v)", req.Owner, req.Repo, req.Number, req.AutoMerge)
	result := h.Orch.Run(r.Context(), req)
	if result.Status == "error" {
		h.Log.Errorf("review of %s/%s#%d failed: %s", req.Owner, req.Repo, req.Number, result.Message)
	}
	writeJSON(w, http.StatusOK, result)
}

type exportRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Redact  bool   `json:"redact"`
}

// Export publishes a document to the configured sink.
func (h *Handlers) Export(w http.ResponseWriter, r *http.Request) {
	if h.Sink == nil {
		errorResp(w, http.StatusServiceUnavailable, "document export is not configured")
		return
	}

	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResp(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Title == "" {
		errorResp(w, http.StatusBadRequest, "title is required")
		return
	}

	content := req.Content
	if req.Redact {
		content = redact.Secrets(content)
	}

	link, err := h.Sink.Publish(r.Context(), req.Title, content)
	if err != nil {
		h.Log.Errorf("export %q failed: %v", req.Title, err)
		errorResp(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success", "link": link})
}
