package server

import (
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"walink/internal/generator"
	"walink/internal/handlers"
	"walink/internal/handlers/api"
	"walink/internal/middleware"
	"walink/internal/validation"
)

// Deps are the collaborators the routes are wired to.
type Deps struct {
	Generator generator.Options
	Validator *validation.Validator
	Upstreams api.UpstreamStatus // Optional
	Checks    map[string]handlers.CheckFunc
	Gatherer  prometheus.Gatherer // Defaults to the global registry
}

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(deps Deps) {
	// Initialize handlers
	generatorHandler := handlers.NewGeneratorHandler(s.Cfg, deps.Generator)
	apiHandler := api.NewGeneratorHandler(deps.Generator, deps.Validator, deps.Upstreams)
	probeHandler := handlers.NewProbeHandler(deps.Checks)

	// Probes and metrics
	s.App.Get("/healthz", probeHandler.Liveness)
	s.App.Get("/readyz", probeHandler.Readiness)

	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	// Frontend routes
	s.App.Get("/", middleware.Device, generatorHandler.Index)
	s.App.Get("/countries", middleware.Device, generatorHandler.Countries)
	s.App.Post("/country", middleware.Device, generatorHandler.SelectCountry)
	s.App.Post("/number", middleware.Device, generatorHandler.InputNumber)
	s.App.Post("/message", middleware.Device, generatorHandler.SetMessage)
	s.App.Post("/generate", middleware.Device, generatorHandler.Generate)
	s.App.Get("/result", middleware.Device, generatorHandler.Result)
	s.App.Post("/copy", middleware.Device, generatorHandler.Copy)
	s.App.Post("/share", middleware.Device, generatorHandler.Share)
	s.App.Post("/history/:id/restore", middleware.Device, generatorHandler.Restore)
	s.App.Delete("/history", middleware.Device, generatorHandler.ClearHistory)
	s.App.Post("/theme", middleware.Device, generatorHandler.ToggleTheme)

	// JSON API
	v1 := s.App.Group("/api/v1", middleware.Device)
	v1.Get("/countries", apiHandler.Countries)
	v1.Post("/format", apiHandler.Format)
	v1.Post("/links", apiHandler.CreateLink)
	v1.Get("/history", apiHandler.History)
	v1.Delete("/history", apiHandler.ClearHistory)
	v1.Post("/history/:id/restore", apiHandler.Restore)
	v1.Get("/upstreams", apiHandler.Upstreams)
}
