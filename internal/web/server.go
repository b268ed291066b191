// Package web serves the Frog Cafe browser frontend: the login page, the
// guarded menu, admin and display views, and the order confirmation page.
package web

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/frog-cafe/frogcafe/internal/client"
	"github.com/frog-cafe/frogcafe/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

// Server represents the HTTP server
type Server struct {
	router  *gin.Engine
	config  config.WebConfig
	api     *client.Client
	logger  zerolog.Logger
	version string
}

// New creates a new server instance. api is the unauthenticated base
// client; every request gets a copy bound to its session cookie.
func New(cfg config.WebConfig, api *client.Client, zlog zerolog.Logger, version string) (*Server, error) {
	if cfg.BasePath == "" {
		cfg.BasePath = "/"
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"http://localhost:5173"}
	}
	if cfg.DisplayRefresh <= 0 {
		cfg.DisplayRefresh = 5 * time.Second
	}

	server := &Server{
		config:  cfg,
		api:     api,
		logger:  zlog,
		version: version,
	}

	if err := server.setupRouter(); err != nil {
		return nil, err
	}

	return server, nil
}

// Handler returns the configured router
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupRouter configures the Gin router with the route table and middleware
func (s *Server) setupRouter() error {
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	s.router = gin.New()

	tmpl, err := template.New("").Funcs(s.templateFuncs()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}
	s.router.SetHTMLTemplate(tmpl)

	// Add middleware
	s.router.Use(gin.Recovery())
	s.router.Use(s.loggingMiddleware())

	// CORS only applies to the display feed polled by external screens,
	// page forms are same-origin
	feedCORS := cors.New(cors.Config{
		AllowOrigins:     s.config.AllowedOrigins,
		AllowMethods:     []string{"GET", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})

	base := s.router.Group(s.config.BasePath)
	base.Use(s.sessionMiddleware())
	for _, r := range s.routes() {
		handlers := make([]gin.HandlerFunc, 0, 3)
		if r.CORS {
			handlers = append(handlers, feedCORS)
		}
		if r.Guarded {
			handlers = append(handlers, s.requireSession(r.JSON))
		}
		handlers = append(handlers, r.Handler)
		base.Handle(r.Method, r.Path, handlers...)
	}

	s.router.NoRoute(func(c *gin.Context) {
		s.renderError(c, http.StatusNotFound, "Page not found")
	})

	return nil
}

// link joins p onto the base path
func (s *Server) link(p string) string {
	base := strings.TrimRight(s.config.BasePath, "/")
	if p == "" {
		p = "/"
	}
	return base + p
}

func (s *Server) cookiePath() string {
	return s.link("/")
}

func (s *Server) templateFuncs() template.FuncMap {
	return template.FuncMap{
		"link": s.link,
		"deref": func(v *int) int {
			if v == nil {
				return 0
			}
			return *v
		},
		"str": func(v *string) string {
			if v == nil {
				return ""
			}
			return *v
		},
		"clock": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Local().Format("15:04")
		},
	}
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "online",
		"timestamp": time.Now().UTC(),
		"service":   "frogcafe-web",
		"version":   s.version,
	})
}

// Start starts the HTTP server and blocks until SIGINT or SIGTERM
func (s *Server) Start() error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	srv := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.router,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info().
			Str("addr", s.config.Addr).
			Str("base_path", s.config.BasePath).
			Str("api_url", s.api.BaseURL()).
			Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		s.logger.Error().Err(err).Msg("HTTP server error")
		return err
	case <-sigChan:
		s.logger.Info().Msg("Received shutdown signal, shutting down gracefully...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Error().Err(err).Msg("Error shutting down HTTP server")
		return err
	}

	s.logger.Info().Msg("Server shutdown complete")
	return nil
}
