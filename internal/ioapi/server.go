// Package ioapi exposes the service operations over HTTP. Credentials
// travel with every request: login and password as Basic auth, the
// repository selection and agent identity as headers.
package ioapi

import (
	"context"
	"net/http"
	"time"

	"github.com/diversityworkbench/divservice/pkg/config"
	"github.com/diversityworkbench/divservice/pkg/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP front of the service.
type Server struct {
	router  *chi.Mux
	handler *Handler
	server  *http.Server
	cfg     config.APIConfig
}

// NewServer wires the router with its middleware stack and routes.
func NewServer(cfg config.APIConfig, svc service.Service, version, build string) *Server {
	handler := NewHandler(svc, version, build)
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(RecoverMiddleware)
	router.Use(LoggingMiddleware)
	router.Use(middleware.Compress(5))

	router.Get("/health", handler.Health)
	router.Get("/version", handler.Version)
	router.Get("/repositories", handler.Repositories)

	router.Route("/", func(r chi.Router) {
		r.Use(CredentialsMiddleware)

		r.Get("/login", handler.ValidateLogin)
		r.Get("/user", handler.UserInfo)

		r.Get("/vocabulary", handler.StandardVocabulary)
		r.Get("/qualifications", handler.Qualifications)
		r.Get("/projects", handler.Projects)
		r.Get("/projects/{projectID}/analyses", handler.Analyses)
		r.Get("/projects/{projectID}/analysis-results", handler.AnalysisResults)
		r.Get("/projects/{projectID}/analysis-groups", handler.AnalysisTaxonomicGroups)

		r.Get("/taxon-lists", handler.TaxonLists)
		r.Get("/taxon-lists/names", handler.TaxonNames)
		r.Get("/properties", handler.Properties)
		r.Get("/properties/{propertyID}/values", handler.PropertyValues)

		r.Get("/series", handler.EventSeriesByQuery)
		r.Get("/series/{seriesID}", handler.EventSeriesByID)
		r.Get("/series/{seriesID}/localizations", handler.LocalizationsForSeries)
		r.Get("/events", handler.EventsByLocality)
		r.Get("/events/{eventID}/properties", handler.PropertiesForEvent)
		r.Get("/events/{eventID}/specimens", handler.SpecimensForEvent)
		r.Get("/specimens/{specimenID}/units", handler.UnitsForSpecimen)
		r.Get("/units/{unitID}/subunits", handler.SubUnits)
		r.Get("/units/{unitID}/analyses", handler.AnalysesForUnit)

		r.Post("/series", handler.InsertEventSeries)
		r.Post("/events", handler.InsertEvent)
		r.Post("/specimens", handler.InsertSpecimen)
		r.Post("/units", handler.InsertUnit)
		r.Post("/multimedia", handler.InsertMultimedia)
	})

	return &Server{
		router:  router,
		handler: handler,
		cfg:     cfg,
	}
}

// Start blocks serving HTTP until the listener fails or the server is
// shut down.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}
	return s.server.ListenAndServe()
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router exposes the chi router for tests.
func (s *Server) Router() *chi.Mux {
	return s.router
}
