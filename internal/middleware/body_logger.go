package middleware

import (
	"github.com/deppfellow/bookmarks/internal/config"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// BodyLogger logs request and/or response bodies at debug level, truncated
// to MaxBodyLength bytes. It is a pass-through when body logging is
// disabled.
func BodyLogger(cfg config.BodyLoggingConfig) echo.MiddlewareFunc {
	if !cfg.Enabled || (!cfg.IncludeRequestBody && !cfg.IncludeResponseBody) {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}

	return middleware.BodyDumpWithConfig(middleware.BodyDumpConfig{
		Handler: func(c echo.Context, reqBody, resBody []byte) {
			e := GetLogger(c).Debug().Int("status", c.Response().Status)
			if cfg.IncludeRequestBody {
				e = e.Str("request_body", truncateBody(reqBody, cfg.MaxBodyLength))
			}
			if cfg.IncludeResponseBody {
				e = e.Str("response_body", truncateBody(resBody, cfg.MaxBodyLength))
			}
			e.Msg("HTTP body")
		},
	})
}

// truncateBody returns body as a string cut to limit bytes. A limit of zero
// means no limit.
func truncateBody(body []byte, limit int) string {
	if limit > 0 && len(body) > limit {
		return string(body[:limit]) + "...(truncated)"
	}
	return string(body)
}
