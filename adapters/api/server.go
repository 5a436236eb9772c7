package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Mazzol/MVA/adapters/stats/engine"
	"github.com/Mazzol/MVA/domain/sensitivity"
	"github.com/Mazzol/MVA/internal"
	"github.com/Mazzol/MVA/internal/errors"
)

// Server exposes sensitivity index computation over HTTP: callers POST a raw
// output vector plus the method encoding and receive the result table as
// JSON. The computation itself is identical to the CLI path.
type Server struct {
	router *chi.Mux
	engine *engine.Engine
	log    *internal.Logger
}

// NewServer creates the HTTP surface around an engine.
func NewServer(eng *engine.Engine, logger *internal.Logger) *Server {
	s := &Server{
		router: chi.NewRouter(),
		engine: eng,
		log:    logger,
	}
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	s.router.Get("/healthz", s.handleHealth)
	s.router.Post("/api/v1/indices", s.handleIndices)
	return s
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler { return s.router }

type indicesRequest struct {
	Outputs []float64 `json:"outputs"`
	NSets   int       `json:"nsets"`
	Method  string    `json:"method"`
}

type indicesResponse struct {
	Method     string            `json:"method"`
	Parameters sensitivity.Table `json:"parameters"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleIndices(w http.ResponseWriter, r *http.Request) {
	var req indicesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: errors.CodeInvalidInput, Message: "malformed request body: " + err.Error()})
		return
	}

	method, err := sensitivity.ParseMethodSpec(req.Method)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: errors.CodeFor(err), Message: err.Error()})
		return
	}

	table, err := s.engine.Run(r.Context(), req.Outputs, req.NSets, method)
	if err != nil {
		code := errors.CodeFor(err)
		status := http.StatusUnprocessableEntity
		if code == errors.CodeInternalError {
			status = http.StatusInternalServerError
		}
		s.log.Warn("indices request failed: %v", err)
		writeJSON(w, status, errorResponse{Code: code, Message: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, indicesResponse{Method: method.Name(), Parameters: table})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
