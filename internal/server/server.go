// Package server exposes the summarization comparison over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sumarena/internal/config"
	"sumarena/internal/orchestrator"
	"sumarena/internal/prober"
	"sumarena/internal/registry"
)

const shutdownTimeout = 10 * time.Second

// Server wraps the gin engine with graceful shutdown helpers.
type Server struct {
	cfg    config.Config
	engine *gin.Engine
	log    *slog.Logger

	registry     *registry.Registry
	orchestrator *orchestrator.Orchestrator
	prober       *prober.Prober

	fetchClient *http.Client
}

func New(
	cfg config.Config,
	reg *registry.Registry,
	orch *orchestrator.Orchestrator,
	prb *prober.Prober,
	log *slog.Logger,
) *Server {
	s := &Server{
		cfg:          cfg,
		log:          log,
		registry:     reg,
		orchestrator: orch,
		prober:       prb,
		fetchClient:  &http.Client{Timeout: 30 * time.Second},
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), s.observe())

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := engine.Group("/api")
	api.GET("/models", s.listModels)
	api.GET("/status", s.providerStatus)
	api.GET("/samples", s.listSamples)
	api.POST("/document", s.prepareDocument)
	api.POST("/summaries", s.summarize)

	s.engine = engine

	return s
}

// Handler exposes the routed engine, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run starts the listener and shuts it down when ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:    s.cfg.Addr,
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.InfoContext(ctx, "HTTP server listening", "addr", s.cfg.Addr)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}

		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		s.log.Info("Shutting down HTTP server")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}

// observe logs each request and feeds the request metrics. The route
// template is used as the path label so parameterized paths do not
// explode cardinality.
func (s *Server) observe() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		elapsed := time.Since(start)
		status := c.Writer.Status()

		recordRequest(c.Request.Method, path, strconv.Itoa(status), elapsed.Seconds())

		s.log.InfoContext(c.Request.Context(), "Request handled",
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"elapsedMs", elapsed.Milliseconds())
	}
}
