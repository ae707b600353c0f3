package handlers

import (
	"context"
	"maps"
	"slices"

	"github.com/gofiber/fiber/v3"
)

// CheckFunc reports whether a dependency is reachable.
type CheckFunc func(ctx context.Context) error

// ProbeHandler handles Kubernetes health probe endpoints.
type ProbeHandler struct {
	checks map[string]CheckFunc
}

// NewProbeHandler creates a new probe handler. Every check must pass for the
// service to be ready.
func NewProbeHandler(checks map[string]CheckFunc) *ProbeHandler {
	return &ProbeHandler{checks: checks}
}

// Liveness handles the /healthz endpoint for Kubernetes liveness probes.
// Returns 200 OK if the application is running.
func (h *ProbeHandler) Liveness(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}

// Readiness handles the /readyz endpoint for Kubernetes readiness probes.
// Returns 200 OK if the application can serve traffic (storage is reachable).
func (h *ProbeHandler) Readiness(c fiber.Ctx) error {
	for _, name := range slices.Sorted(maps.Keys(h.checks)) {
		if err := h.checks[name](c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "error",
				"error":  name + " unavailable",
			})
		}
	}

	return c.JSON(fiber.Map{
		"status": "ok",
	})
}
