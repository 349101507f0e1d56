// Package web is the thin HTTP shell around the degrade engine: multipart
// upload in, transformed package out. It holds no state between requests
// and performs no persistence; each request is one pipeline run.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/tsawler/tackify"
	"github.com/tsawler/tackify/deck"
	"github.com/tsawler/tackify/format"
	"github.com/tsawler/tackify/pipeline"
)

// pptxContentType is the MIME type of a presentation package.
const pptxContentType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"

// Server handles HTTP requests for the degrade engine.
type Server struct {
	cfg    Config
	logger *log.Logger
	router chi.Router
}

// New builds a server with its routes mounted.
func New(cfg Config, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{cfg: cfg, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/", s.handleIndex)
	r.Get("/api/health", s.handleHealth)
	r.Post("/api/process", s.handleProcess)
	s.router = r
	return s
}

// Handler returns the server's HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe runs the server until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// writeError sends a JSON error body with the given status.
func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
		"app":    "tackify",
	})
}

// parseLevel reads an intensity level from a query or form parameter,
// enforcing the [1,10] range with the engine's reject policy.
func parseLevel(r *http.Request, name string, fallback int) (int, error) {
	raw := r.FormValue(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	if v < 1 || v > 10 {
		return 0, fmt.Errorf("%s must be between 1 and 10", name)
	}
	return v, nil
}

// handleProcess accepts a multipart PPTX upload, runs the pipeline, and
// responds with the transformed package. Metrics and the effective seed
// travel in X-Tackify-* headers.
func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	reqID := uuid.NewString()
	logger := s.logger.With("request", reqID)

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	defer file.Close()

	designLevel, err := parseLevel(r, "design_level", s.cfg.DefaultDesignLevel)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	contentLevel, err := parseLevel(r, "content_level", s.cfg.DefaultContentLevel)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if format.DetectFromFilename(header.Filename) != format.PPTX {
		s.writeError(w, http.StatusBadRequest, "only .pptx files are supported")
		return
	}

	src, err := io.ReadAll(file)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "could not read upload")
		return
	}

	t := tackify.FromBytes(src).
		DesignLevel(designLevel).
		ContentLevel(contentLevel).
		Logger(logger)
	if raw := r.FormValue("seed"); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "seed must be an integer")
			return
		}
		t = t.Seed(seed)
	}

	result, warnings, err := t.Run()
	switch {
	case errors.Is(err, deck.ErrInvalidPackage):
		s.writeError(w, http.StatusBadRequest, "not a valid presentation file")
		return
	case errors.Is(err, pipeline.ErrInvalidLevel):
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		logger.Error("pipeline failed", "err", err)
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	logger.Info("processed",
		"file", header.Filename,
		"design_level", designLevel,
		"content_level", contentLevel,
		"seed", result.Seed,
		"skipped", len(warnings))

	before, _ := json.Marshal(result.Before)
	after, _ := json.Marshal(result.After)
	w.Header().Set("Content-Type", pptxContentType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", outputName(header.Filename)))
	w.Header().Set("X-Tackify-Seed", strconv.FormatInt(result.Seed, 10))
	w.Header().Set("X-Tackify-Metrics-Before", string(before))
	w.Header().Set("X-Tackify-Metrics-After", string(after))
	w.Write(result.Output)
}

// outputName derives the download filename, stripping any client path.
func outputName(uploadName string) string {
	base := filepath.Base(strings.ReplaceAll(uploadName, "\\", "/"))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." {
		base = "presentation"
	}
	return base + "_TACKY.pptx"
}
