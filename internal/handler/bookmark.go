package handler

import (
	"github.com/deppfellow/bookmarks/internal/model"
	"github.com/deppfellow/bookmarks/internal/server"
	"github.com/deppfellow/bookmarks/internal/service"
	"github.com/labstack/echo/v4"
)

type BookmarkHandler struct {
	Handler
	bookmarkService *service.BookmarkService
}

func NewBookmarkHandler(s *server.Server, bookmarkService *service.BookmarkService) *BookmarkHandler {
	return &BookmarkHandler{
		Handler:         NewHandler(s),
		bookmarkService: bookmarkService,
	}
}

func (h *BookmarkHandler) ListBookmarks(c echo.Context, req *model.ListBookmarksRequest) (*service.Result, error) {
	return h.bookmarkService.List(c.Request().Context(), req.Page, req.Size), nil
}

func (h *BookmarkHandler) GetBookmark(c echo.Context, req *model.GetBookmarkRequest) (*service.Result, error) {
	return h.bookmarkService.GetByID(c.Request().Context(), req.ID), nil
}

func (h *BookmarkHandler) CreateBookmark(c echo.Context, req *model.CreateBookmarkRequest) (*service.Result, error) {
	return h.bookmarkService.Create(c.Request().Context(), req.Title, req.URL), nil
}

func (h *BookmarkHandler) UpdateBookmark(c echo.Context, req *model.UpdateBookmarkRequest) (*service.Result, error) {
	return h.bookmarkService.Update(c.Request().Context(), req.Bookmark()), nil
}

func (h *BookmarkHandler) DeleteBookmark(c echo.Context, req *model.DeleteBookmarkRequest) (*service.Result, error) {
	return h.bookmarkService.Delete(c.Request().Context(), req.ID), nil
}
