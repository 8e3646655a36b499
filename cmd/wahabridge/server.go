package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"wahabridge/internal/constants"
	"wahabridge/internal/middleware"
	"wahabridge/internal/models"
	"wahabridge/internal/service"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type Server struct {
	router   *mux.Router
	logger   *logrus.Logger
	cfg      *models.Config
	pipeline *service.PipelineService
	server   *http.Server
}

func NewServer(cfg *models.Config, pipeline *service.PipelineService, logger *logrus.Logger) *Server {
	s := &Server{
		router:   mux.NewRouter(),
		logger:   logger,
		cfg:      cfg,
		pipeline: pipeline,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.Observability(s.logger))

	// Health / readiness
	s.router.HandleFunc("/", s.handleHealth()).Methods(http.MethodGet)
	s.router.HandleFunc("/health", s.handleHealth()).Methods(http.MethodGet)

	// Metrics
	s.router.HandleFunc("/metrics", s.handleMetrics()).Methods(http.MethodGet)

	// WAHA webhook
	waha := s.router.PathPrefix("/waha").Subrouter()
	waha.HandleFunc("/webhook", s.handleWebhook()).Methods(http.MethodPost)
}

func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Server.Port),
		Handler:      s.router,
		ReadTimeout:  constants.DefaultServerReadTimeoutSec * time.Second,
		WriteTimeout: constants.DefaultServerWriteTimeoutSec * time.Second,
		IdleTimeout:  constants.DefaultServerIdleTimeoutSec * time.Second,
	}

	s.logger.Infof("Starting server on port %d", s.cfg.Server.Port)
	err := s.server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}

// handleWebhook decodes the inbound event and runs it through the
// pipeline. All modeled outcomes answer HTTP 200; errors travel in the
// response body.
func (s *Server) handleWebhook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := verifySignature(r, s.cfg.Server.WebhookSecret)
		if err != nil {
			s.logger.WithError(err).Warn("Webhook signature verification failed")
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var event models.InboundEvent
		if err := json.Unmarshal(body, &event); err != nil {
			s.writeResult(w, &models.PipelineResult{
				Status:  models.StatusError,
				Message: fmt.Sprintf("invalid request body: %v", err),
			})
			return
		}

		result := s.pipeline.Process(r.Context(), &event)
		s.writeResult(w, result)
	}
}

func (s *Server) writeResult(w http.ResponseWriter, result *models.PipelineResult) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		s.logger.WithError(err).Error("Failed to encode webhook response")
	}
}
