// Package service holds the business layer: it calls repositories and
// turns their outcomes into results the transport can write.
package service

import (
	"github.com/deppfellow/bookmarks/internal/repository"
	"github.com/deppfellow/bookmarks/internal/server"
)

type Services struct {
	Bookmark *BookmarkService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		Bookmark: NewBookmarkService(repos.Bookmark, s.Config.API.SurfaceStorageErrors),
	}, nil
}
