package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/deppfellow/bookmarks/internal/errs"
	"github.com/deppfellow/bookmarks/internal/metrics"
	"github.com/deppfellow/bookmarks/internal/model"
	"github.com/deppfellow/bookmarks/internal/sqlerr"
	"github.com/rs/zerolog"
)

// BookmarkStore is the storage the bookmark service depends on.
type BookmarkStore interface {
	ListPage(ctx context.Context, offset, limit int) ([]model.Bookmark, error)
	GetByID(ctx context.Context, id int64) (*model.Bookmark, error)
	Insert(ctx context.Context, b model.Bookmark) (int64, error)
	UpdateTitleAndURL(ctx context.Context, id int64, title, url string) error
	DeleteByID(ctx context.Context, id int64) error
}

// Result is the outcome of a bookmark operation: the HTTP status to answer
// with and the JSON body.
type Result struct {
	Status int
	Body   map[string]any
}

func result(status int, key string, value any) *Result {
	return &Result{Status: status, Body: map[string]any{key: value}}
}

// Operation outcomes, used as metric labels.
const (
	outcomeSuccess  = "success"
	outcomeNotFound = "not_found"
	outcomeInvalid  = "invalid"
	outcomeError    = "error"
)

// BookmarkService maps storage outcomes onto HTTP results.
//
// Every method issues at most one storage call and never returns an error;
// failures are part of the Result.
type BookmarkService struct {
	store BookmarkStore

	// surfaceStorageErrors answers update/delete storage failures other than
	// "not found" with 500 instead of 404.
	surfaceStorageErrors bool
}

func NewBookmarkService(store BookmarkStore, surfaceStorageErrors bool) *BookmarkService {
	return &BookmarkService{
		store:                store,
		surfaceStorageErrors: surfaceStorageErrors,
	}
}

// List returns page number page (zero based) of size bookmarks.
func (s *BookmarkService) List(ctx context.Context, page, size int) *Result {
	log := zerolog.Ctx(ctx).With().Str("operation", "list").Int("page", page).Int("size", size).Logger()

	if page < 0 || size <= 0 {
		msg := "page must not be negative and size must be greater than 0"
		log.Warn().Msg(msg)
		return s.done("list", outcomeInvalid, result(http.StatusBadRequest, "error", msg))
	}

	offset := page * size
	if offset/size != page {
		msg := "page is out of range"
		log.Warn().Msg(msg)
		return s.done("list", outcomeInvalid, result(http.StatusBadRequest, "error", msg))
	}

	bookmarks, err := s.store.ListPage(ctx, offset, size)
	if errors.Is(err, errs.ErrInvalidArgument) {
		log.Warn().Err(err).Msg("invalid page request")
		return s.done("list", outcomeInvalid, result(http.StatusBadRequest, "error", err.Error()))
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to list bookmarks")
		return s.done("list", outcomeError, result(http.StatusInternalServerError, "error", "An error occurred while fetching the bookmarks"))
	}

	if len(bookmarks) == 0 {
		log.Debug().Msg("no bookmarks on page")
		return s.done("list", outcomeNotFound, result(http.StatusNotFound, "message", "Bookmarks not found"))
	}

	log.Debug().Int("count", len(bookmarks)).Msg("listed bookmarks")
	return s.done("list", outcomeSuccess, result(http.StatusOK, "data", bookmarks))
}

// GetByID returns a single bookmark.
func (s *BookmarkService) GetByID(ctx context.Context, id int64) *Result {
	log := zerolog.Ctx(ctx).With().Str("operation", "get").Int64("bookmark_id", id).Logger()

	bookmark, err := s.store.GetByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch bookmark")
		return s.done("get", outcomeError, result(http.StatusInternalServerError, "error", "An error occurred while fetching the bookmark"))
	}

	if bookmark == nil {
		log.Debug().Msg("bookmark not found")
		return s.done("get", outcomeNotFound, result(http.StatusNotFound, "error", fmt.Sprintf("Bookmark NOT found with id: %d", id)))
	}

	return s.done("get", outcomeSuccess, result(http.StatusOK, "data", bookmark))
}

// Create stores a new bookmark and returns its id.
func (s *BookmarkService) Create(ctx context.Context, title, url string) *Result {
	log := zerolog.Ctx(ctx).With().Str("operation", "create").Logger()

	if msg := checkNotBlank(title, url); msg != "" {
		log.Warn().Msg(msg)
		return s.done("create", outcomeInvalid, result(http.StatusBadRequest, "error", msg))
	}

	id, err := s.store.Insert(ctx, model.Bookmark{Title: title, URL: url})
	if err != nil {
		log.Error().Err(err).Msg("failed to create bookmark")
		return s.done("create", outcomeError, result(http.StatusInternalServerError, "error", sqlerr.UserMessage(err)))
	}

	log.Info().Int64("bookmark_id", id).Msg("bookmark created")
	return s.done("create", outcomeSuccess, &Result{
		Status: http.StatusCreated,
		Body: map[string]any{
			"id":      id,
			"message": "Bookmark created successfully",
		},
	})
}

// Update overwrites the title and url of bookmark b.ID.
func (s *BookmarkService) Update(ctx context.Context, b model.Bookmark) *Result {
	log := zerolog.Ctx(ctx).With().Str("operation", "update").Int64("bookmark_id", b.ID).Logger()

	if msg := checkNotBlank(b.Title, b.URL); msg != "" {
		log.Warn().Msg(msg)
		return s.done("update", outcomeInvalid, result(http.StatusBadRequest, "error", msg))
	}

	if err := s.store.UpdateTitleAndURL(ctx, b.ID, b.Title, b.URL); err != nil {
		return s.writeFailure(log, "update", err, b.ID)
	}

	log.Info().Msg("bookmark updated")
	return s.done("update", outcomeSuccess, result(http.StatusNoContent, "message", "Bookmark updated successfully"))
}

// Delete removes bookmark id.
func (s *BookmarkService) Delete(ctx context.Context, id int64) *Result {
	log := zerolog.Ctx(ctx).With().Str("operation", "delete").Int64("bookmark_id", id).Logger()

	if err := s.store.DeleteByID(ctx, id); err != nil {
		return s.writeFailure(log, "delete", err, id)
	}

	log.Info().Msg("bookmark deleted")
	return s.done("delete", outcomeSuccess, result(http.StatusNoContent, "message", "Bookmark deleted successfully"))
}

// writeFailure maps an update/delete error. Unless surfaceStorageErrors is
// set, every failure is reported as not found.
func (s *BookmarkService) writeFailure(log zerolog.Logger, operation string, err error, id int64) *Result {
	notFound := errors.Is(err, errs.ErrNotFound)

	if s.surfaceStorageErrors && !notFound {
		log.Error().Err(err).Msg("storage failure")
		return s.done(operation, outcomeError, result(http.StatusInternalServerError, "error", fmt.Sprintf("An error occurred while trying to %s the bookmark", operation)))
	}

	if notFound {
		log.Debug().Err(err).Msg("bookmark not found")
	} else {
		log.Error().Err(err).Msg("storage failure reported as not found")
	}
	return s.done(operation, outcomeNotFound, result(http.StatusNotFound, "error", fmt.Sprintf("Bookmark not found with ID: %d", id)))
}

func (s *BookmarkService) done(operation, outcome string, r *Result) *Result {
	metrics.BookmarkOperations.WithLabelValues(operation, outcome).Inc()
	return r
}

func checkNotBlank(title, url string) string {
	switch {
	case strings.TrimSpace(title) == "":
		return "title must not be blank"
	case strings.TrimSpace(url) == "":
		return "url must not be blank"
	}
	return ""
}
