// Package server is the HTTP glue around the card extraction service and
// the query router: request/response marshaling, CORS, health checks.
package server

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/prescottcassy/insurance-assistant/constants"
	"github.com/prescottcassy/insurance-assistant/internal/card"
	"github.com/prescottcassy/insurance-assistant/internal/dataset"
	"github.com/prescottcassy/insurance-assistant/internal/extract"
	"github.com/prescottcassy/insurance-assistant/internal/router"
)

const maxUploadBytes = 20 << 20 // 20MB

type Server struct {
	logger  *slog.Logger
	card    *card.Service
	router  *router.Router
	drugs   router.DrugSuggester
	dataset *dataset.Table
	docs    []string
	origins []string
}

func New(cardSvc *card.Service, rt *router.Router, drugs router.DrugSuggester,
	table *dataset.Table, docs []string, origins []string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		logger:  logger,
		card:    cardSvc,
		router:  rt,
		drugs:   drugs,
		dataset: table,
		docs:    docs,
		origins: origins,
	}
}

// Handler returns the routed HTTP handler with CORS applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("POST /api/insurance/extract", s.handleExtract)
	mux.HandleFunc("POST /api/chat/query", s.handleChatQuery)
	mux.HandleFunc("POST /api/nlp/drugs", s.handleDrugs)
	return s.cors(mux)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Backend is working!"})
}

// handleExtract accepts a multipart card upload, runs the extraction
// service, and returns {fields, summary}.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	ext := constants.NormalizeExt(filepath.Ext(header.Filename))
	if _, ok := constants.AllowedExtensions[ext]; !ok {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unsupported file extension %q", ext))
		return
	}

	tmp, err := os.CreateTemp("", "card-*."+ext)
	if err != nil {
		s.logger.Error("server.extract.tmpfile", "error", err)
		writeError(w, http.StatusInternalServerError, "could not store upload")
		return
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()
	if _, err := io.Copy(tmp, file); err != nil {
		_ = tmp.Close()
		writeError(w, http.StatusInternalServerError, "could not store upload")
		return
	}
	_ = tmp.Close()

	result, err := s.card.AnalyzeCard(r.Context(), tmp.Name())
	if err != nil {
		// undecodable input is the caller's problem, not ours
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type chatRequest struct {
	Query      string            `json:"query"`
	CardFields map[string]string `json:"card_fields,omitempty"`
}

// handleChatQuery routes a free-text question. Card fields may be supplied
// inline; the plan dataset and document set are the server's configured ones.
func (s *Server) handleChatQuery(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	qc := router.Context{
		Dataset:   s.dataset,
		Documents: s.docs,
	}
	if len(req.CardFields) > 0 {
		qc.CardFields = extract.FieldMap(req.CardFields)
	}

	resp := s.router.Route(r.Context(), req.Query, qc)
	writeJSON(w, http.StatusOK, map[string]any{"result": resp})
}

type drugsRequest struct {
	Symptom string `json:"symptom"`
}

func (s *Server) handleDrugs(w http.ResponseWriter, r *http.Request) {
	var req drugsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Symptom == "" {
		writeError(w, http.StatusBadRequest, "symptom is required")
		return
	}
	suggestions := []string{}
	if s.drugs != nil {
		suggestions = append(suggestions, s.drugs.SuggestForSymptom(r.Context(), req.Symptom)...)
	}
	writeJSON(w, http.StatusOK, map[string]any{"drugs": suggestions})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
