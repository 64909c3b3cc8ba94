package infra

import (
	"context"
	"net/http"
)

// HTTPServer is the API listener. Start blocks until Shutdown is called or
// the listener fails; every timeout comes from Config.
type HTTPServer struct {
	server *http.Server
}

// NewHTTPServer binds the router to the configured port.
func NewHTTPServer(cfg *Config, handler http.Handler) *HTTPServer {
	return &HTTPServer{server: &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadTimeout:       cfg.HTTPReadTimeout,
		ReadHeaderTimeout: cfg.HTTPReadTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
	}}
}

// Addr reports the listen address, ":8080" style.
func (s *HTTPServer) Addr() string {
	return s.server.Addr
}

// Start serves requests until shutdown. http.ErrServerClosed signals a
// clean stop.
func (s *HTTPServer) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown drains in-flight requests, bounded by ctx.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
