package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Raisondetr3/tasklist-service/internal/config"
	"github.com/Raisondetr3/tasklist-service/internal/transport/http/middleware"
	"github.com/gorilla/mux"
)

type HTTPServer struct {
	server   *http.Server
	handlers *HTTPHandlers
	config   *config.Config
}

// NewRouter wires routes and middleware. CORS wraps the router itself so
// that preflight requests, which match no route, are still answered.
func NewRouter(cfg *config.Config, handlers *HTTPHandlers) http.Handler {
	router := newBaseRouter()
	handlers.SetupRoutes(router)

	return middleware.CORS(cfg.Server.CORSAllowedOrigins)(router)
}

// newBaseRouter returns a router with middleware and JSON fallbacks but no
// routes. Logging runs outermost so recovery already sees the request id.
func newBaseRouter() *mux.Router {
	router := mux.NewRouter()

	router.Use(middleware.LoggingMiddleware)
	router.Use(middleware.PanicRecoveryMiddleware)

	// mux не прогоняет fallback-хендлеры через router.Use
	router.NotFoundHandler = middleware.LoggingMiddleware(http.HandlerFunc(handleNotFound))
	router.MethodNotAllowedHandler = middleware.LoggingMiddleware(http.HandlerFunc(handleMethodNotAllowed))

	return router
}

func NewHTTPServer(cfg *config.Config, handlers *HTTPHandlers) *HTTPServer {
	return &HTTPServer{
		handlers: handlers,
		config:   cfg,
		server: &http.Server{
			Addr:         ":" + cfg.Server.HTTPPort,
			Handler:      NewRouter(cfg, handlers),
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
		},
	}
}

func (s *HTTPServer) StartServer() error {
	slog.Info("Starting HTTP server",
		slog.String("address", s.server.Addr),
	)

	if err := s.server.ListenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			slog.Info("HTTP server stopped")
			return nil
		}
		slog.Error("HTTP server error", slog.String("error", err.Error()))
		return err
	}

	return nil
}

func (s *HTTPServer) Stop(ctx context.Context) error {
	slog.Info("Stopping HTTP server")
	return s.server.Shutdown(ctx)
}
