// Package handler holds the echo handlers. Typed handlers go through
// handleRequest, which binds, validates, logs and traces each request.
package handler

import (
	"github.com/deppfellow/bookmarks/internal/server"
	"github.com/deppfellow/bookmarks/internal/service"
)

type Handlers struct {
	Bookmark *BookmarkHandler
	Health   *HealthHandler
	OpenAPI  *OpenAPIHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Bookmark: NewBookmarkHandler(s, services.Bookmark),
		Health:   NewHealthHandler(s),
		OpenAPI:  NewOpenAPIHandler(s),
	}
}
