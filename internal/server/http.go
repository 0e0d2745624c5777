package server

import (
	"context"
	"errors"
	stdlog "log"
	"net/http"
	"time"

	"github.com/MKhiriev/eagle-pass/internal/config"
	"github.com/MKhiriev/eagle-pass/internal/logger"
)

const (
	readHeaderTimeout = 5 * time.Second
	idleTimeout       = 60 * time.Second
	shutdownTimeout   = 10 * time.Second

	requestTimeoutMessage = `{"message":"Request timeout"}`
)

type httpServer struct {
	server *http.Server
	logger *logger.Logger
}

// newHTTPServer wraps handler in http.TimeoutHandler when a request timeout
// is configured.
func newHTTPServer(handler http.Handler, cfg config.Server, logger *logger.Logger) *httpServer {
	if cfg.RequestTimeout > 0 {
		handler = http.TimeoutHandler(handler, cfg.RequestTimeout, requestTimeoutMessage)
	}

	errorLog := logger.With().Str("component", "net/http").Logger()

	return &httpServer{
		server: &http.Server{
			Addr:              cfg.HTTPAddress,
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
			IdleTimeout:       idleTimeout,
			ErrorLog:          stdlog.New(errorLog, "", 0),
		},
		logger: logger,
	}
}

// RunServer returns nil once the server was shut down.
func (h *httpServer) RunServer() error {
	if err := h.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (h *httpServer) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := h.server.Shutdown(ctx); err != nil {
		h.logger.Error().Err(err).Msg("HTTP server Shutdown")
	}
}
