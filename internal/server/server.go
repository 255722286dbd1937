// Package server exposes the itinerary workflow over HTTP. Each browser gets
// its own session, identified by a cookie, so cached itineraries are never
// shared between users.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Yates-Labs/roam/internal/logging"
	"github.com/Yates-Labs/roam/internal/orchestrator"
	"github.com/Yates-Labs/roam/internal/session"
)

// Options tunes the HTTP host.
type Options struct {
	// SessionTTL bounds the cookie lifetime and the sweep interval.
	SessionTTL time.Duration

	// AllowedOrigins enables CORS for browser front-ends served elsewhere.
	AllowedOrigins []string
}

// Server is the gin-based HTTP host.
type Server struct {
	orch    *orchestrator.Orchestrator
	store   *session.Store
	logger  *zap.Logger
	options Options
	engine  *gin.Engine
}

// New builds the server and its routes.
func New(orch *orchestrator.Orchestrator, store *session.Store, logger *zap.Logger, options Options) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if options.SessionTTL <= 0 {
		options.SessionTTL = session.DefaultTTL
	}
	s := &Server{
		orch:    orch,
		store:   store,
		logger:  logger,
		options: options,
	}
	s.engine = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(logging.GinMiddleware(s.logger), gin.Recovery())
	if len(s.options.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     s.options.AllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders:     []string{"Content-Type", "Accept", "Origin", logging.RequestIDHeader},
			ExposeHeaders:    []string{"Content-Disposition", logging.RequestIDHeader, WarningHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	if err := r.SetTrustedProxies(nil); err != nil {
		s.logger.Warn("failed to set trusted proxies", zap.Error(err))
	}

	r.NoRoute(func(c *gin.Context) {
		respondError(c, http.StatusNotFound, "not_found", "route not found", nil)
	})

	api := r.Group("/api")
	{
		api.GET("/health", s.health)
		api.GET("/languages", s.languages)

		itineraries := api.Group("/itineraries", s.withSession)
		itineraries.POST("", s.submit)
		itineraries.GET("/current", s.current)
		itineraries.GET("/current/document", s.document)
		itineraries.GET("/current/export", s.export)
	}
	return r
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
// Expired sessions are swept in the background while the server runs.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go s.sweep(sweepCtx)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) sweep(ctx context.Context) {
	ticker := time.NewTicker(s.options.SessionTTL / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.store.Sweep(); n > 0 {
				s.logger.Debug("expired sessions removed", zap.Int("count", n))
			}
		}
	}
}
