package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/bookmarks/internal/config"
	"github.com/deppfellow/bookmarks/internal/middleware"
	"github.com/deppfellow/bookmarks/internal/server"
	"github.com/labstack/echo/v4"
)

var errNotConfigured = errors.New("not configured")

type healthCheck struct {
	name  string
	check func(ctx context.Context) error
}

// HealthHandler reports the service status and the dependency checks named
// in observability.health_checks.
type HealthHandler struct {
	Handler
	checks  []healthCheck
	timeout time.Duration
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	cfg := config.DefaultObservabilityConfig().HealthChecks
	if s.Config.Observability != nil {
		cfg = s.Config.Observability.HealthChecks
	}

	h := &HealthHandler{
		Handler: NewHandler(s),
		timeout: cfg.Timeout,
	}

	for _, name := range cfg.Checks {
		switch name {
		case config.CheckDatabase:
			h.checks = append(h.checks, healthCheck{name: name, check: func(ctx context.Context) error {
				if s.DB == nil {
					return errNotConfigured
				}
				return s.DB.Pool.Ping(ctx)
			}})
		case config.CheckRedis:
			h.checks = append(h.checks, healthCheck{name: name, check: func(ctx context.Context) error {
				if s.Redis == nil {
					return errNotConfigured
				}
				return s.Redis.Ping(ctx).Err()
			}})
		}
	}

	return h
}

func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := make(map[string]any, len(h.checks))
	response := map[string]any{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}

	isHealthy := true
	for _, hc := range h.checks {
		ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
		checkStart := time.Now()
		err := hc.check(ctx)
		elapsed := time.Since(checkStart)
		cancel()

		if err != nil {
			isHealthy = false
			checks[hc.name] = map[string]any{
				"status":        "unhealthy",
				"response_time": elapsed.String(),
				"error":         err.Error(),
			}

			logger.Error().
				Err(err).
				Str("check", hc.name).
				Dur("response_time", elapsed).
				Msg("health check failed")

			h.recordHealthCheckError(map[string]any{
				"check_type":       hc.name,
				"operation":        "health_check",
				"error_type":       hc.name + "_unhealthy",
				"response_time_ms": elapsed.Milliseconds(),
				"error_message":    err.Error(),
			})
			continue
		}

		checks[hc.name] = map[string]any{
			"status":        "healthy",
			"response_time": elapsed.String(),
		}

		logger.Debug().
			Str("check", hc.name).
			Dur("response_time", elapsed).
			Msg("health check passed")
	}

	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		h.recordHealthCheckError(map[string]any{
			"check_type":        "overall",
			"operation":         "health_check",
			"error_type":        "overall_unhealthy",
			"total_duration_ms": time.Since(start).Milliseconds(),
		})

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}

func (h *HealthHandler) recordHealthCheckError(attrs map[string]any) {
	if app := h.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("HealthCheckError", attrs)
	}
}
