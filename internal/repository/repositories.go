// Package repository holds the storage accessors over the PostgreSQL pool.
package repository

import (
	"github.com/deppfellow/bookmarks/internal/server"
)

type Repositories struct {
	Bookmark *BookmarkRepository
}

func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Bookmark: NewBookmarkRepository(s.DB.Pool),
	}
}
