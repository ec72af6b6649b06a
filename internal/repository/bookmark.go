package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/bookmarks/internal/errs"
	"github.com/deppfellow/bookmarks/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BookmarkRepository runs parameterized SQL against the bookmarks table.
// Every method is a single autocommitted statement.
type BookmarkRepository struct {
	pool *pgxpool.Pool
}

func NewBookmarkRepository(pool *pgxpool.Pool) *BookmarkRepository {
	return &BookmarkRepository{pool: pool}
}

const bookmarkColumns = `id, title, url, created_at`

// ListPage returns up to limit bookmarks ordered by ascending id, skipping
// the first offset rows.
func (r *BookmarkRepository) ListPage(ctx context.Context, offset, limit int) ([]model.Bookmark, error) {
	if offset < 0 {
		return nil, fmt.Errorf("%w: offset must not be negative, got %d", errs.ErrInvalidArgument, offset)
	}
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be greater than 0, got %d", errs.ErrInvalidArgument, limit)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+bookmarkColumns+`
		FROM bookmarks
		ORDER BY id
		OFFSET $1 LIMIT $2`, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}

	bookmarks, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Bookmark])
	if err != nil {
		return nil, fmt.Errorf("scan bookmarks: %w", err)
	}

	return bookmarks, nil
}

// GetByID returns the bookmark with id, or nil without error when no such
// bookmark exists.
func (r *BookmarkRepository) GetByID(ctx context.Context, id int64) (*model.Bookmark, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+bookmarkColumns+`
		FROM bookmarks
		WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get bookmark %d: %w", id, err)
	}

	bookmark, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.Bookmark])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan bookmark %d: %w", id, err)
	}

	return bookmark, nil
}

// Insert stores title and url, stamping created_at on the server, and
// returns the generated id. b.ID and b.CreatedAt are ignored.
func (r *BookmarkRepository) Insert(ctx context.Context, b model.Bookmark) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO bookmarks (title, url, created_at)
		VALUES ($1, $2, now())
		RETURNING id`, b.Title, b.URL).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert bookmark: %w", err)
	}

	return id, nil
}

// UpdateTitleAndURL overwrites title and url of bookmark id; created_at is
// kept. It wraps errs.ErrNotFound when no row matched.
func (r *BookmarkRepository) UpdateTitleAndURL(ctx context.Context, id int64, title, url string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE bookmarks
		SET title = $1, url = $2
		WHERE id = $3`, title, url, id)
	if err != nil {
		return fmt.Errorf("update bookmark %d: %w", id, err)
	}

	if tag.RowsAffected() == 0 {
		return notFound(id)
	}
	return nil
}

// DeleteByID removes bookmark id. It wraps errs.ErrNotFound when no row
// matched.
func (r *BookmarkRepository) DeleteByID(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM bookmarks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete bookmark %d: %w", id, err)
	}

	if tag.RowsAffected() == 0 {
		return notFound(id)
	}
	return nil
}

func notFound(id int64) error {
	return fmt.Errorf("%w: Bookmark NOT found with id: %d", errs.ErrNotFound, id)
}
