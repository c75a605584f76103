// Package status serves health and metrics for a running reconciliation.
// A single upload wait can block for minutes, so the endpoint is the only
// way to observe a run from outside while it is in flight.
package status

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/danmuck/libctl/internal/observability"
)

type Server struct {
	ID      string
	Addr    string
	Started time.Time

	router *gin.Engine
	srv    *http.Server
	log    zerolog.Logger
}

func New(id, addr string, logger zerolog.Logger) *Server {
	observability.RegisterMetrics()
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestLogger(logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"http://localhost:3000"},
		AllowMethods: []string{"GET"},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))
	_ = r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	s := &Server{
		ID:      id,
		Addr:    addr,
		Started: time.Now(),
		router:  r,
		log:     logger,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"uptime":  time.Since(s.Started).String(),
			"service": s.ID,
			"version": "0.1.0",
		})
	})
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// Start serves in the background; reconciliation owns the foreground.
func (s *Server) Start() {
	s.srv = &http.Server{Addr: s.Addr, Handler: s.router}
	go func() {
		s.log.Info().Str("addr", s.Addr).Msg("status server started")
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error().Err(err).Msg("status server stopped")
		}
	}()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

// Router exposes the gin engine for in-process tests.
func (s *Server) Router() http.Handler {
	return s.router
}
