package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"SeqSearch/internal/search"
)

// Handler holds the HTTP handlers of the SeqSearch API.
type Handler struct {
	mgr    *IndexManager
	logger *slog.Logger
}

// NewHandler creates a Handler backed by the given IndexManager.
func NewHandler(mgr *IndexManager, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{mgr: mgr, logger: logger}
}

// RegisterRoutes registers all API routes on the given mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /indexes", h.withRequestLog(h.handleListIndexes))
	mux.HandleFunc("POST /indexes", h.withRequestLog(h.handleCreateIndex))
	mux.HandleFunc("GET /indexes/{name}", h.withRequestLog(h.handleGetIndex))
	mux.HandleFunc("DELETE /indexes/{name}", h.withRequestLog(h.handleDeleteIndex))
	mux.HandleFunc("POST /indexes/{name}/search", h.withRequestLog(h.handleSearch))
}

// withRequestLog tags each request with an ID and logs its outcome.
func (h *Handler) withRequestLog(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.NewString()
		start := time.Now()
		next(w, r)
		h.logger.Debug("request",
			"request_id", reqID,
			"method", r.Method,
			"path", r.URL.Path,
			"took", time.Since(start),
		)
	}
}

func (h *Handler) handleListIndexes(w http.ResponseWriter, r *http.Request) {
	names := h.mgr.List()
	infos := make([]*IndexInstance, 0, len(names))
	for _, name := range names {
		if inst, err := h.mgr.Get(name); err == nil {
			infos = append(infos, inst)
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"indexes": infos})
}

func (h *Handler) handleCreateIndex(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Sequence string `json:"sequence"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "index name is required")
		return
	}
	if req.Sequence == "" {
		writeError(w, http.StatusBadRequest, "sequence is required")
		return
	}

	inst, err := h.mgr.Create(req.Name, req.Sequence)
	if err != nil {
		switch {
		case errors.Is(err, ErrIndexExists):
			writeError(w, http.StatusConflict, err.Error())
		default:
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusCreated, inst)
}

func (h *Handler) handleGetIndex(w http.ResponseWriter, r *http.Request) {
	inst, err := h.mgr.Get(r.PathValue("name"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, inst)
}

func (h *Handler) handleDeleteIndex(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if err := h.mgr.Delete(name); err != nil {
		if errors.Is(err, ErrIndexNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": name})
}

// searchRequest is the wire form of one search call.
type searchRequest struct {
	Queries      []string           `json:"queries"`
	MaxError     *search.Budget     `json:"max_error,omitempty"`
	MaxErrorRate *search.ErrorRates `json:"max_error_rate,omitempty"`
	Mode         string             `json:"mode,omitempty"`
	Strata       int                `json:"strata,omitempty"`
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	inst, err := h.mgr.Get(r.PathValue("name"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if len(req.Queries) == 0 {
		writeError(w, http.StatusBadRequest, "at least one query is required")
		return
	}

	mode, err := search.ParseMode(req.Mode)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	cfg := search.Config{
		MaxError:     req.MaxError,
		MaxErrorRate: req.MaxErrorRate,
		Mode:         mode,
		Strata:       req.Strata,
	}

	queries := make([][]byte, len(req.Queries))
	for i, q := range req.Queries {
		ranks, err := inst.Codec().Encode(q)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		queries[i] = ranks
	}

	start := time.Now()
	results, err := search.Run(inst.Index(), queries, cfg)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp := make([]map[string]any, len(results))
	for i, res := range results {
		positions := res.Positions
		if positions == nil {
			positions = []int{}
		}
		resp[i] = map[string]any{
			"query":     req.Queries[i],
			"positions": positions,
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"results": resp,
		"took":    time.Since(start).String(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]string{"message": message},
	})
}
