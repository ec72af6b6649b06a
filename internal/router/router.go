// Package router builds the echo instance: the global middleware chain, the
// system routes and the versioned API routes.
package router

import (
	"github.com/deppfellow/bookmarks/internal/config"
	"github.com/deppfellow/bookmarks/internal/handler"
	"github.com/deppfellow/bookmarks/internal/middleware"
	"github.com/deppfellow/bookmarks/internal/server"
	"github.com/labstack/echo/v4"
)

func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	bodyLogging := config.BodyLoggingConfig{}
	if s.Config.Observability != nil {
		bodyLogging = s.Config.Observability.Logging.Body
	}

	// order matters: request id and the request logger must exist before
	// anything that logs
	router.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middleware.Metrics(),
		middleware.BodyLogger(bodyLogging),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, s, h)

	v1 := router.Group("/v1", middlewares.RateLimit.Limit())
	registerBookmarkRoutes(v1, h)

	return router
}
