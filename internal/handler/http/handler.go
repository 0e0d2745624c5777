package http

import (
	"github.com/MKhiriev/eagle-pass/internal/config"
	"github.com/MKhiriev/eagle-pass/internal/logger"
	"github.com/MKhiriev/eagle-pass/internal/service"
)

type Handler struct {
	services *service.Services

	allowedOrigins []string
	// limiter is nil when rate limiting is disabled.
	limiter *ipRateLimiter

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.Server, logger *logger.Logger) *Handler {
	h := &Handler{
		services:       services,
		allowedOrigins: cfg.AllowedOrigins,
		logger:         logger,
	}
	if cfg.RateLimit > 0 {
		h.limiter = newIPRateLimiter(cfg.RateLimit, cfg.RateBurst)
	}

	logger.Info().
		Strs("allowed_origins", cfg.AllowedOrigins).
		Float64("rate_limit", cfg.RateLimit).
		Msg("http handler created")
	return h
}
