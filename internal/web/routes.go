package web

import (
	"github.com/go-chi/chi/v5"
	"github.com/kozaktomas/photo-archive/internal/links"
	"github.com/kozaktomas/photo-archive/internal/web/handlers"
	"github.com/kozaktomas/photo-archive/internal/web/middleware"
)

func (s *Server) setupRoutes() {
	searchHandler := handlers.NewSearchHandler(s.metrics)

	// Health check and metrics
	s.router.Get("/api/v1/health", handlers.HealthCheck)
	s.router.Handle("/metrics", s.metrics.Handler())

	// Search view, the target of group links
	s.router.Get(links.SearchPath, searchHandler.Search)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/search", searchHandler.Search)
		r.Get("/autocomplete", handlers.Autocomplete)

		// Writes require the API token
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuthorized)
			r.Post("/facets", handlers.CreateFacet)
		})
	})
}
