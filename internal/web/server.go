// Copyright Lease Lens contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package web exposes the analysis pipeline over HTTP: upload a lease, get
// the analysis as JSON, download the highlighted PDF.
package web

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"lease-lens/internal/analyzer"
	"lease-lens/internal/config"
	"lease-lens/internal/extract"
	"lease-lens/internal/observability"
	"lease-lens/internal/version"
)

// Server serves the analysis API.
type Server struct {
	router   *chi.Mux
	cfg      *config.Config
	analyzer *analyzer.Analyzer
	observer *observability.Observer
	workDir  string

	mu   sync.Mutex
	runs map[string]string // run ID -> highlighted PDF path
}

// NewServer builds the HTTP server. workDir receives uploads and highlighted
// outputs; it must exist and be writable.
func NewServer(cfg *config.Config, a *analyzer.Analyzer, observer *observability.Observer, workDir string) *Server {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	s := &Server{
		router:   r,
		cfg:      cfg,
		analyzer: a,
		observer: observer,
		workDir:  workDir,
		runs:     make(map[string]string),
	}

	r.Get("/", s.handleIndex)
	r.Get("/health", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/analyze", s.handleAnalyze)
		r.Get("/results/{runID}/document", s.handleDownload)
	})

	return s
}

// Handler exposes the router for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves until the listener fails.
func (s *Server) Run(addr string) error {
	return http.ListenAndServe(addr, s.router)
}

// indexPage is the minimal upload form for trying the API from a browser.
const indexPage = `<!DOCTYPE html>
<html>
<head><title>Lease Lens</title></head>
<body>
<h1>Lease Lens</h1>
<p>Upload a lease agreement (.pdf, .docx, .txt) for clause analysis.</p>
<form action="/api/v1/analyze" method="post" enctype="multipart/form-data">
  <input type="file" name="file" accept=".pdf,.docx,.txt" required>
  <button type="submit">Analyze</button>
</form>
</body>
</html>
`

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, indexPage)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"name":    version.Name,
		"version": version.Version,
	})
}

// AnalyzeResponse is the upload endpoint's reply.
type AnalyzeResponse struct {
	RunID       string                  `json:"run_id"`
	Filename    string                  `json:"filename"`
	Result      *analyzer.Result        `json:"result"`
	Stats       analyzer.HighlightStats `json:"highlight_stats"`
	DocumentURL string                  `json:"document_url"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	maxBytes := int64(s.cfg.Web.MaxUploadMB) << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		respondError(w, http.StatusBadRequest, "file too large or invalid form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "no file provided")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !supportedExtension(ext) {
		respondError(w, http.StatusBadRequest,
			fmt.Sprintf("unsupported file type %q (supported: %s)",
				ext, strings.Join(extract.SupportedExtensions, ", ")))
		return
	}

	runID := uuid.New().String()
	observer := s.observer.WithRunID(runID)
	observer.Event("web", "upload", true, map[string]any{"filename": header.Filename})

	uploadPath := filepath.Join(s.workDir, runID+ext)
	outputPath := filepath.Join(s.workDir, runID+"_highlighted.pdf")

	dst, err := os.Create(uploadPath)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to store upload")
		return
	}
	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		respondError(w, http.StatusInternalServerError, "failed to store upload")
		return
	}
	dst.Close()
	defer os.Remove(uploadPath)

	result, stats, err := s.analyzer.RunFile(r.Context(), uploadPath, outputPath)
	if err != nil {
		observer.Event("web", "analyze", false, map[string]any{"error": err.Error()})
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.mu.Lock()
	s.runs[runID] = outputPath
	s.mu.Unlock()

	respondJSON(w, http.StatusOK, AnalyzeResponse{
		RunID:       runID,
		Filename:    header.Filename,
		Result:      result,
		Stats:       stats,
		DocumentURL: "/api/v1/results/" + runID + "/document",
	})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "runID")
	if _, err := uuid.Parse(runID); err != nil {
		respondError(w, http.StatusBadRequest, "invalid run id")
		return
	}

	s.mu.Lock()
	path, ok := s.runs[runID]
	s.mu.Unlock()
	if !ok {
		respondError(w, http.StatusNotFound, "unknown run id")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="lease_highlighted.pdf"`)
	http.ServeFile(w, r, path)
}

func supportedExtension(ext string) bool {
	for _, s := range extract.SupportedExtensions {
		if s == ext {
			return true
		}
	}
	return false
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
