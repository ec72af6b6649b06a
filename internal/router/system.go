package router

import (
	"net/http"

	"github.com/deppfellow/bookmarks/internal/handler"
	"github.com/deppfellow/bookmarks/internal/server"
	"github.com/deppfellow/bookmarks/static"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func registerSystemRoutes(r *echo.Echo, s *server.Server, h *handler.Handlers) {
	if s.Config.Observability == nil || s.Config.Observability.HealthChecks.Enabled {
		r.GET("/status", h.Health.CheckHealth)
	}

	if s.Metrics != nil {
		r.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.Metrics, promhttp.HandlerOpts{})))
	}

	r.StaticFS("/static", static.FS)

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
	r.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusTemporaryRedirect, "/docs")
	})
}
