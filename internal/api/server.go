// Package api serves the draft, the estimate and the filing workflow over
// HTTP for the mobile and web front ends.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rgehrsitz/taxpilot/internal/calculation"
	"github.com/rgehrsitz/taxpilot/internal/store"
	"github.com/rgehrsitz/taxpilot/internal/workflow"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// Config holds the HTTP options taken from settings.
type Config struct {
	Addr           string
	AllowedOrigins []string
}

// Server wires the session, engine and workflow to gin routes.
type Server struct {
	session  *store.Session
	engine   *calculation.Engine
	workflow *workflow.Workflow
	logger   *zap.Logger
	cfg      Config
	router   *gin.Engine
}

// NewServer builds the router. A nil workflow uses workflow.New and a nil
// logger discards output.
func NewServer(session *store.Session, engine *calculation.Engine, wf *workflow.Workflow, logger *zap.Logger, cfg Config) *Server {
	if wf == nil {
		wf = workflow.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		session:  session,
		engine:   engine,
		workflow: wf,
		logger:   logger,
		cfg:      cfg,
	}
	s.router = s.routes()
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(configureCORS(s.cfg.AllowedOrigins))
	router.Use(CorrelationIDMiddleware())
	router.Use(RequestLoggingMiddleware(s.logger))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		v1.GET("/states", s.listStates)
		v1.GET("/states/:code", s.getState)
		v1.POST("/calculate", s.calculate)

		draft := v1.Group("/draft")
		{
			draft.GET("", s.getDraft)
			draft.PUT("", s.replaceDraft)
			draft.PATCH("", s.patchDraft)
			draft.DELETE("", s.resetDraft)
			draft.GET("/calculation", s.draftCalculation)
			draft.GET("/preview", s.draftPreview)
		}

		wizard := v1.Group("/wizard")
		{
			wizard.GET("/steps", s.listSteps)
			wizard.GET("/steps/:step/check", s.checkStep)
		}

		status := v1.Group("/status")
		{
			status.GET("", s.getStatus)
			status.POST("/review", s.markReviewed)
			status.POST("/pay", s.markPaid)
			status.POST("/submit", s.markSubmitted)
			status.POST("/accept", s.markAccepted)
		}
	}

	return router
}

func configureCORS(origins []string) gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	if len(origins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", CorrelationIDHeader}
	corsConfig.ExposeHeaders = []string{CorrelationIDHeader}
	return cors.New(corsConfig)
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("API server listening", zap.String("addr", s.cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
