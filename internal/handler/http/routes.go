package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(middleware.Recoverer)

	router.Route("/api", func(api chi.Router) {
		// public routes
		api.Group(func(r chi.Router) {
			r.Get("/vehicles", h.listVehicles)
			r.Get("/vehicles/{id}", h.getVehicle)
			r.With(h.contactOrigin).Post("/contact", h.contact)
			r.Post("/admin/login", h.login)
			r.Get("/admin/session", h.session)
		})

		// session-protected routes
		api.Group(func(r chi.Router) {
			r.Use(h.sessionAuth)
			r.Post("/admin/logout", h.logout)
			r.Get("/admin/csrf-token", h.csrfToken)
			r.Get("/leads", h.listLeads)
		})

		// mutations additionally require a valid CSRF token
		api.Group(func(r chi.Router) {
			r.Use(h.sessionAuth, h.csrf)
			r.Post("/vehicles", h.createVehicle)
			r.Put("/vehicles/{id}", h.updateVehicle)
			r.Delete("/vehicles/{id}", h.deleteVehicle)
			r.Delete("/leads/{id}", h.deleteLead)
		})
	})

	return router
}
