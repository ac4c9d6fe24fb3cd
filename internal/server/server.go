package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"log/slog"

	"github.com/google/uuid"

	"reelmate/internal/api"
	"reelmate/internal/compare"
	"reelmate/internal/config"
	"reelmate/internal/importer"
	"reelmate/internal/logging"
	"reelmate/internal/services"
	"reelmate/internal/store"
)

// Version identifies the server build in status payloads.
const Version = "0.1.0"

// Server hosts the HTTP API over a store and an import pipeline.
type Server struct {
	bind      string
	token     string
	maxUpload int64
	logger    *slog.Logger
	store     *store.Store
	importer  *importer.Importer
	startedAt time.Time

	handler  http.Handler
	listener net.Listener
	server   *http.Server
}

// New wires the API routes over the supplied collaborators.
func New(cfg *config.Config, st *store.Store, imp *importer.Importer, logger *slog.Logger) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("server requires a config")
	}
	if st == nil {
		return nil, errors.New("server requires a store")
	}
	if imp == nil {
		return nil, errors.New("server requires an importer")
	}
	bind := strings.TrimSpace(cfg.Paths.APIBind)
	if bind == "" {
		return nil, services.Wrap(services.ErrConfiguration, "server", "new", "api_bind is empty", nil)
	}

	srv := &Server{
		bind:      bind,
		token:     strings.TrimSpace(cfg.Paths.APIToken),
		maxUpload: int64(cfg.Import.MaxUploadMiB) << 20,
		logger:    logging.NewComponentLogger(logger, "api-server"),
		store:     st,
		importer:  imp,
		startedAt: time.Now(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/status", authMiddleware(srv.token, srv.handleStatus))
	mux.HandleFunc("/api/users", authMiddleware(srv.token, srv.handleUsers))
	mux.HandleFunc("/api/users/", authMiddleware(srv.token, srv.handleUserResource))
	mux.HandleFunc("/api/compare", authMiddleware(srv.token, srv.handleCompare))
	srv.handler = srv.withRequestID(mux)

	srv.server = &http.Server{
		Handler:           srv.handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      5 * time.Minute,
		IdleTimeout:       60 * time.Second,
	}
	return srv, nil
}

// Handler exposes the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Addr reports the bound listen address once Start has succeeded.
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.bind
	}
	return s.listener.Addr().String()
}

// Start binds the listener and serves until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("api server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	s.logger.Info("api server listening", logging.String("address", listener.Addr().String()))
	return nil
}

// Stop shuts the server down, draining in-flight requests briefly.
func (s *Server) Stop() {
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(services.WithRequestID(r.Context(), requestID)))
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	users, err := s.store.ListUsers(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, api.StatusResponse{
		Running:   true,
		PID:       os.Getpid(),
		Version:   Version,
		StorePath: s.store.Path(),
		UserCount: len(users),
		StartedAt: api.FormatTime(s.startedAt),
	})
}

func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	users, err := s.store.ListUsers(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, api.FromUserSummaries(users))
}

// handleUserResource routes /api/users/{id}/movies and
// /api/users/{id}/profile.
func (s *Server) handleUserResource(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/users/")
	userID, resource, ok := strings.Cut(rest, "/")
	userID = strings.TrimSpace(userID)
	if !ok || userID == "" {
		s.writeError(w, http.StatusNotFound, "not found")
		return
	}

	switch resource {
	case "movies":
		switch r.Method {
		case http.MethodGet:
			s.handleGetMovies(w, r, userID)
		case http.MethodPost:
			s.handleImport(w, r, userID)
		default:
			s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	case "profile":
		if r.Method != http.MethodPut {
			s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		s.handleSaveProfile(w, r, userID)
	default:
		s.writeError(w, http.StatusNotFound, "not found")
	}
}

func (s *Server) handleGetMovies(w http.ResponseWriter, r *http.Request, userID string) {
	records, err := s.store.GetMovies(r.Context(), userID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, api.MoviesResponse{
		UserID: userID,
		Count:  len(records),
		Movies: records,
	})
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request, userID string) {
	body := http.MaxBytesReader(w, r.Body, s.maxUpload)
	defer body.Close()

	summary, err := s.importer.Run(r.Context(), userID, body, nil)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, http.StatusRequestEntityTooLarge, "upload exceeds size limit")
			return
		}
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, api.FromImportSummary(summary))
}

func (s *Server) handleSaveProfile(w http.ResponseWriter, r *http.Request, userID string) {
	var req api.ProfileRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid profile payload")
		return
	}
	if err := s.store.SaveProfile(r.Context(), userID, req.Profile()); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, api.FromUserSummary(store.UserSummary{
		UserID:      userID,
		DisplayName: req.DisplayName,
		Email:       req.Email,
		PhotoURL:    req.PhotoURL,
	}))
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	query := r.URL.Query()
	userID := strings.TrimSpace(query.Get("user"))
	friendID := strings.TrimSpace(query.Get("friend"))
	if userID == "" || friendID == "" {
		s.writeError(w, http.StatusBadRequest, "user and friend query parameters are required")
		return
	}

	userRecords, err := s.store.GetMovies(r.Context(), userID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	friendRecords, err := s.store.GetMovies(r.Context(), friendID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	result := compare.Compare(userRecords, friendRecords)
	s.writeJSON(w, http.StatusOK, api.FromCompareResult(userID, friendID, result))
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", logging.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, api.ErrorResponse{Error: message})
}

// writeServiceError maps a service error to its HTTP status and logs
// server-side failures.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := services.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			logging.String("path", r.URL.Path),
			logging.Error(err),
		)
	}
	s.writeError(w, status, err.Error())
}
