package handler

import (
	"github.com/go-chi/chi/v5"
)

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.HealthCheck)

	r.Group(func(r chi.Router) {
		r.Use(h.limiter.Middleware())
		r.Post("/resize", h.Resize)
		r.Post("/rotate", h.Rotate)
	})
}
