package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/deppfellow/bookmarks/internal/errs"
	"github.com/deppfellow/bookmarks/internal/model"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	listPage func(ctx context.Context, offset, limit int) ([]model.Bookmark, error)
	getByID  func(ctx context.Context, id int64) (*model.Bookmark, error)
	insert   func(ctx context.Context, b model.Bookmark) (int64, error)
	update   func(ctx context.Context, id int64, title, url string) error
	delete   func(ctx context.Context, id int64) error

	calls int
}

func (f *fakeStore) ListPage(ctx context.Context, offset, limit int) ([]model.Bookmark, error) {
	f.calls++
	return f.listPage(ctx, offset, limit)
}

func (f *fakeStore) GetByID(ctx context.Context, id int64) (*model.Bookmark, error) {
	f.calls++
	return f.getByID(ctx, id)
}

func (f *fakeStore) Insert(ctx context.Context, b model.Bookmark) (int64, error) {
	f.calls++
	return f.insert(ctx, b)
}

func (f *fakeStore) UpdateTitleAndURL(ctx context.Context, id int64, title, url string) error {
	f.calls++
	return f.update(ctx, id, title, url)
}

func (f *fakeStore) DeleteByID(ctx context.Context, id int64) error {
	f.calls++
	return f.delete(ctx, id)
}

var errBoom = errors.New("connection reset")

func notFoundErr(id int64) error {
	return fmt.Errorf("%w: Bookmark NOT found with id: %d", errs.ErrNotFound, id)
}

func TestList(t *testing.T) {
	bookmarks := []model.Bookmark{
		{ID: 1, Title: "a", URL: "https://a", CreatedAt: time.Now()},
		{ID: 2, Title: "b", URL: "https://b", CreatedAt: time.Now()},
	}

	tests := []struct {
		name       string
		page, size int
		rows       []model.Bookmark
		err        error
		wantStatus int
		wantKey    string
		wantValue  any
		wantCalls  int
	}{
		{name: "non-empty page", page: 0, size: 10, rows: bookmarks, wantStatus: http.StatusOK, wantKey: "data", wantValue: bookmarks, wantCalls: 1},
		{name: "empty page", page: 3, size: 10, wantStatus: http.StatusNotFound, wantKey: "message", wantValue: "Bookmarks not found", wantCalls: 1},
		{name: "storage failure", page: 0, size: 10, err: errBoom, wantStatus: http.StatusInternalServerError, wantKey: "error", wantValue: "An error occurred while fetching the bookmarks", wantCalls: 1},
		{name: "negative page", page: -1, size: 10, wantStatus: http.StatusBadRequest, wantKey: "error"},
		{name: "zero size", page: 0, size: 0, wantStatus: http.StatusBadRequest, wantKey: "error"},
		{name: "offset overflow", page: int(^uint(0) >> 2), size: 8, wantStatus: http.StatusBadRequest, wantKey: "error", wantValue: "page is out of range"},
		{name: "invalid argument from storage", page: 0, size: 10, err: fmt.Errorf("%w: limit", errs.ErrInvalidArgument), wantStatus: http.StatusBadRequest, wantKey: "error", wantCalls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{
				listPage: func(_ context.Context, offset, limit int) ([]model.Bookmark, error) {
					assert.Equal(t, tt.page*tt.size, offset)
					assert.Equal(t, tt.size, limit)
					return tt.rows, tt.err
				},
			}

			res := NewBookmarkService(store, false).List(context.Background(), tt.page, tt.size)

			assert.Equal(t, tt.wantStatus, res.Status)
			require.Contains(t, res.Body, tt.wantKey)
			if tt.wantValue != nil {
				assert.Equal(t, tt.wantValue, res.Body[tt.wantKey])
			}
			assert.Equal(t, tt.wantCalls, store.calls)
		})
	}
}

func TestGetByID(t *testing.T) {
	found := &model.Bookmark{ID: 7, Title: "Go", URL: "https://go.dev", CreatedAt: time.Now()}

	tests := []struct {
		name       string
		bookmark   *model.Bookmark
		err        error
		wantStatus int
		wantBody   map[string]any
	}{
		{name: "found", bookmark: found, wantStatus: http.StatusOK, wantBody: map[string]any{"data": found}},
		{name: "missing", wantStatus: http.StatusNotFound, wantBody: map[string]any{"error": "Bookmark NOT found with id: 7"}},
		{name: "storage failure", err: errBoom, wantStatus: http.StatusInternalServerError, wantBody: map[string]any{"error": "An error occurred while fetching the bookmark"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{
				getByID: func(_ context.Context, id int64) (*model.Bookmark, error) {
					assert.EqualValues(t, 7, id)
					return tt.bookmark, tt.err
				},
			}

			res := NewBookmarkService(store, false).GetByID(context.Background(), 7)

			assert.Equal(t, tt.wantStatus, res.Status)
			assert.Equal(t, tt.wantBody, res.Body)
		})
	}
}

func TestCreate(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		store := &fakeStore{
			insert: func(_ context.Context, b model.Bookmark) (int64, error) {
				assert.Equal(t, "Test", b.Title)
				assert.Equal(t, "https://test.com", b.URL)
				assert.Zero(t, b.ID)
				return 12, nil
			},
		}

		res := NewBookmarkService(store, false).Create(context.Background(), "Test", "https://test.com")

		assert.Equal(t, http.StatusCreated, res.Status)
		assert.Equal(t, map[string]any{"id": int64(12), "message": "Bookmark created successfully"}, res.Body)
	})

	t.Run("blank fields never reach storage", func(t *testing.T) {
		store := &fakeStore{}
		svc := NewBookmarkService(store, false)

		res := svc.Create(context.Background(), "  ", "https://test.com")
		assert.Equal(t, http.StatusBadRequest, res.Status)
		assert.Equal(t, "title must not be blank", res.Body["error"])

		res = svc.Create(context.Background(), "Test", "")
		assert.Equal(t, http.StatusBadRequest, res.Status)
		assert.Equal(t, "url must not be blank", res.Body["error"])

		assert.Zero(t, store.calls)
	})

	t.Run("storage failure", func(t *testing.T) {
		store := &fakeStore{
			insert: func(context.Context, model.Bookmark) (int64, error) {
				return 0, &pgconn.PgError{Code: "23502", TableName: "bookmarks", ColumnName: "url"}
			},
		}

		res := NewBookmarkService(store, false).Create(context.Background(), "Test", "https://test.com")

		assert.Equal(t, http.StatusInternalServerError, res.Status)
		assert.Equal(t, "The Url is required", res.Body["error"])
	})
}

func TestUpdate(t *testing.T) {
	bookmark := model.Bookmark{ID: 5, Title: "New", URL: "https://new.example"}

	tests := []struct {
		name       string
		surface    bool
		err        error
		wantStatus int
		wantBody   map[string]any
	}{
		{name: "success", wantStatus: http.StatusNoContent, wantBody: map[string]any{"message": "Bookmark updated successfully"}},
		{name: "not found", err: notFoundErr(5), wantStatus: http.StatusNotFound, wantBody: map[string]any{"error": "Bookmark not found with ID: 5"}},
		{name: "storage failure collapses to not found", err: errBoom, wantStatus: http.StatusNotFound, wantBody: map[string]any{"error": "Bookmark not found with ID: 5"}},
		{name: "storage failure surfaced", surface: true, err: errBoom, wantStatus: http.StatusInternalServerError, wantBody: map[string]any{"error": "An error occurred while trying to update the bookmark"}},
		{name: "not found with surfacing on", surface: true, err: notFoundErr(5), wantStatus: http.StatusNotFound, wantBody: map[string]any{"error": "Bookmark not found with ID: 5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{
				update: func(_ context.Context, id int64, title, url string) error {
					assert.EqualValues(t, 5, id)
					assert.Equal(t, "New", title)
					assert.Equal(t, "https://new.example", url)
					return tt.err
				},
			}

			res := NewBookmarkService(store, tt.surface).Update(context.Background(), bookmark)

			assert.Equal(t, tt.wantStatus, res.Status)
			assert.Equal(t, tt.wantBody, res.Body)
		})
	}

	t.Run("blank title", func(t *testing.T) {
		store := &fakeStore{}
		res := NewBookmarkService(store, false).Update(context.Background(), model.Bookmark{ID: 5, Title: "", URL: "https://x"})

		assert.Equal(t, http.StatusBadRequest, res.Status)
		assert.Zero(t, store.calls)
	})
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name       string
		surface    bool
		err        error
		wantStatus int
		wantBody   map[string]any
	}{
		{name: "success", wantStatus: http.StatusNoContent, wantBody: map[string]any{"message": "Bookmark deleted successfully"}},
		{name: "not found", err: notFoundErr(9), wantStatus: http.StatusNotFound, wantBody: map[string]any{"error": "Bookmark not found with ID: 9"}},
		{name: "storage failure collapses to not found", err: errBoom, wantStatus: http.StatusNotFound, wantBody: map[string]any{"error": "Bookmark not found with ID: 9"}},
		{name: "storage failure surfaced", surface: true, err: errBoom, wantStatus: http.StatusInternalServerError, wantBody: map[string]any{"error": "An error occurred while trying to delete the bookmark"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{
				delete: func(_ context.Context, id int64) error {
					assert.EqualValues(t, 9, id)
					return tt.err
				},
			}

			res := NewBookmarkService(store, tt.surface).Delete(context.Background(), 9)

			assert.Equal(t, tt.wantStatus, res.Status)
			assert.Equal(t, tt.wantBody, res.Body)
			assert.Equal(t, 1, store.calls)
		})
	}
}
