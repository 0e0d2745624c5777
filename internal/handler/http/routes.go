package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   h.allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", traceIDHeader},
		ExposedHeaders:   []string{traceIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	if h.limiter != nil {
		router.Use(h.withRateLimit)
	}
	router.Use(withGZip)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/api/version", h.getServerVersion)
		r.Get("/api/status", h.getStatus)

		r.Get("/api/auth", h.login)
		r.Get("/api/auth/callback", h.callback)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/passwords", h.getPasswords)
		r.Post("/api/passwords", h.addPassword)
		r.Put("/api/passwords/{passwordID}", h.updatePassword)
		r.Delete("/api/passwords/{passwordID}", h.deletePassword)

		r.Get("/api/user/i/{id}", h.getUserByID)
		r.Get("/api/user/u/{username}", h.getUserByUsername)
		r.Delete("/api/user/i/{id}", h.deleteUser)

		r.Post("/api/twofactor/enable/{id}", h.enableTwoFactor)
		r.Post("/api/twofactor/verify/{id}", h.verifyTwoFactor)
		r.Post("/api/twofactor/disable/{id}", h.disableTwoFactor)
	})

	router.MethodNotAllowed(CheckHTTPMethod())

	return router
}
