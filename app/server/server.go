// Package server provides the HTTP server for the booth pages and the theme API.
package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/snaapy/app/server/api"
	"github.com/umputun/snaapy/app/server/web"
	"github.com/umputun/snaapy/app/theme"
)

// Server represents the HTTP server.
type Server struct {
	cfg        Config
	version    string
	auth       *OperatorAuth
	apiHandler *api.Handler
	webHandler *web.Handler
	staticFS   fs.FS // embedded static files
}

// Config holds server configuration.
type Config struct {
	Address         string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	Version         string
	AuthUser        string // operator user for theme mutation API
	PasswordHash    string // bcrypt hash (empty = auth disabled)

	// limits
	BodySizeLimit  int64 // max request body size in bytes
	RequestsPerSec int64 // max requests per second
}

// New creates a new Server instance. The theme store must be initialized before,
// handlers refuse to attach to a store that isn't.
func New(st *theme.Store, cfg Config) (*Server, error) {
	auth, err := NewOperatorAuth(cfg.AuthUser, cfg.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize auth: %w", err)
	}

	staticContent, err := web.StaticFS()
	if err != nil {
		return nil, fmt.Errorf("failed to load static files: %w", err)
	}

	s := &Server{
		cfg:      cfg,
		version:  cfg.Version,
		auth:     auth,
		staticFS: staticContent,
	}

	webHandler, err := web.New(st, web.Config{Version: cfg.Version})
	if err != nil {
		return nil, fmt.Errorf("failed to create web handler: %w", err)
	}
	s.webHandler = webHandler

	apiHandler, err := api.New(st)
	if err != nil {
		webHandler.Close()
		return nil, fmt.Errorf("failed to create api handler: %w", err)
	}
	s.apiHandler = apiHandler

	return s, nil
}

// Run starts the HTTP server and blocks until context is canceled.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.cfg.Address,
		Handler:           s.routes(),
		ReadHeaderTimeout: s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
		IdleTimeout:       s.cfg.IdleTimeout,
	}

	// graceful shutdown
	go func() {
		<-ctx.Done()
		log.Printf("[INFO] shutting down server")
		s.webHandler.Close() // hijacked websocket connections are not closed by Shutdown
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] shutdown error: %v", err)
		}
	}()

	log.Printf("[DEBUG] started server on %s", s.cfg.Address)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// routes configures and returns the HTTP handler with all routes and middleware.
func (s *Server) routes() http.Handler {
	router := routegroup.New(http.NewServeMux())

	// global middleware (applies to all routes)
	router.Use(
		rest.Recoverer(log.Default()),
		rest.RealIP, // must be before Throttle to rate-limit by real client IP
		rest.Throttle(s.requestsPerSec()),
		rest.Trace,
		rest.SizeLimit(s.bodySizeLimit()),
		rest.AppInfo("snaapy", "umputun", s.version),
		rest.Ping,
	)

	router.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(s.staticFS))))

	// web UI, the kiosk toggle stays open
	s.webHandler.Register(router)

	router.Mount("/api/v1").Route(func(apiRouter *routegroup.Bundle) {
		s.apiHandler.Register(apiRouter)
		apiRouter.Group().Route(func(w *routegroup.Bundle) {
			w.Use(s.auth.Middleware())
			s.apiHandler.RegisterWrite(w)
		})
	})

	return router
}

// bodySizeLimit returns the configured body size limit, or default 64KB if not set.
func (s *Server) bodySizeLimit() int64 {
	if s.cfg.BodySizeLimit > 0 {
		return s.cfg.BodySizeLimit
	}
	return 64 * 1024 // 64KB default
}

// requestsPerSec returns the configured requests per second limit, or default 100 if not set.
func (s *Server) requestsPerSec() int64 {
	if s.cfg.RequestsPerSec > 0 {
		return s.cfg.RequestsPerSec
	}
	return 100 // default
}
