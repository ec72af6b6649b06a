package router

import (
	"github.com/deppfellow/bookmarks/internal/handler"
	"github.com/deppfellow/bookmarks/internal/model"
	"github.com/labstack/echo/v4"
)

func registerBookmarkRoutes(g *echo.Group, h *handler.Handlers) {
	bh := h.Bookmark
	bookmarks := g.Group("/bookmarks")

	bookmarks.GET("", handler.HandleResult(bh.Handler, bh.ListBookmarks, model.NewListBookmarksRequest))
	bookmarks.POST("", handler.HandleResult(bh.Handler, bh.CreateBookmark, func() *model.CreateBookmarkRequest {
		return &model.CreateBookmarkRequest{}
	}))
	bookmarks.PUT("", handler.HandleResult(bh.Handler, bh.UpdateBookmark, func() *model.UpdateBookmarkRequest {
		return &model.UpdateBookmarkRequest{}
	}))
	bookmarks.GET("/:id", handler.HandleResult(bh.Handler, bh.GetBookmark, func() *model.GetBookmarkRequest {
		return &model.GetBookmarkRequest{}
	}))
	bookmarks.DELETE("/:id", handler.HandleResult(bh.Handler, bh.DeleteBookmark, func() *model.DeleteBookmarkRequest {
		return &model.DeleteBookmarkRequest{}
	}))
}
