package model

import "github.com/deppfellow/bookmarks/internal/validation"

// DefaultPageSize is used when a list request omits size.
const DefaultPageSize = 10

// ListBookmarksRequest selects a zero-based page of bookmarks.
type ListBookmarksRequest struct {
	Page int `query:"page" validate:"min=0"`
	Size int `query:"size" validate:"min=1"`
}

func NewListBookmarksRequest() *ListBookmarksRequest {
	return &ListBookmarksRequest{Size: DefaultPageSize}
}

func (r *ListBookmarksRequest) Validate() error {
	return validation.Struct(r)
}

type GetBookmarkRequest struct {
	ID int64 `param:"id"`
}

func (r *GetBookmarkRequest) Validate() error {
	return validation.Struct(r)
}

type CreateBookmarkRequest struct {
	Title string `json:"title" validate:"required,notblank"`
	URL   string `json:"url" validate:"required,notblank"`
}

func (r *CreateBookmarkRequest) Validate() error {
	return validation.Struct(r)
}

// UpdateBookmarkRequest carries the id in the body; it is a pointer so a
// missing id can be told apart from zero.
type UpdateBookmarkRequest struct {
	ID    *int64 `json:"id" validate:"required"`
	Title string `json:"title" validate:"required,notblank"`
	URL   string `json:"url" validate:"required,notblank"`
}

func (r *UpdateBookmarkRequest) Validate() error {
	return validation.Struct(r)
}

// Bookmark returns the bookmark to store.
func (r *UpdateBookmarkRequest) Bookmark() Bookmark {
	var id int64
	if r.ID != nil {
		id = *r.ID
	}
	return Bookmark{ID: id, Title: r.Title, URL: r.URL}
}

type DeleteBookmarkRequest struct {
	ID int64 `param:"id"`
}

func (r *DeleteBookmarkRequest) Validate() error {
	return validation.Struct(r)
}
