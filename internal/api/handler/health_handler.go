package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
)

// PingFunc reports whether a dependency is reachable.
type PingFunc func(ctx context.Context) error

// HealthHandler serves the liveness, readiness and status probes.
type HealthHandler struct {
	version string
	// database is pinged by /api/status; checks are the readiness set and
	// always include it.
	database PingFunc
	checks   map[string]PingFunc
	now      func() time.Time
}

func NewHealthHandler(version string, database PingFunc, extra map[string]PingFunc) *HealthHandler {
	checks := map[string]PingFunc{"database": database}
	for name, fn := range extra {
		checks[name] = fn
	}
	return &HealthHandler{version: version, database: database, checks: checks, now: time.Now}
}

// Liveness handles GET /health. Returns 200 immediately.
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

// Readiness handles GET /health/ready. Every dependency must answer.
func (h *HealthHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	deps := make(map[string]dependencyStatus, len(names))
	healthy := true
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			deps[name] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
			healthy = false
			continue
		}
		deps[name] = dependencyStatus{Status: "ok"}
	}

	status := "ok"
	httpStatus := http.StatusOK
	if !healthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	return c.JSON(httpStatus, readinessResponse{
		Status:       status,
		Dependencies: deps,
	})
}

// Status handles GET /api/status. It always answers 200; an unreachable
// database is reported in the body.
//
// @Summary      API status
// @Tags         status
// @Produce      json
// @Success      200  {object}  statusResponse
// @Router       /api/status [get]
func (h *HealthHandler) Status(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	database := "connected"
	if err := h.database(ctx); err != nil {
		database = "disconnected"
	}

	return c.JSON(http.StatusOK, statusResponse{
		Status:    "online",
		Version:   h.version,
		Database:  database,
		Timestamp: h.now().UTC(),
	})
}
