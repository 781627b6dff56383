package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fssotc/website/internal/dto"
	"github.com/fssotc/website/internal/service"
	"github.com/fssotc/website/pkg/response"
)

// PostHandler blog posts and the RSS feed.
type PostHandler struct {
	postSvc service.PostService
}

// NewPostHandler creates a PostHandler.
func NewPostHandler(postSvc service.PostService) *PostHandler {
	return &PostHandler{postSvc: postSvc}
}

// List published posts
// GET /blog
func (h *PostHandler) List(c *gin.Context) {
	var page dto.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, 10001, "invalid parameters")
		return
	}

	list, total, err := h.postSvc.List(c.Request.Context(), &page)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, list, total, page.GetPage(), page.GetPageSize())
}

// Get one published post
// GET /blog/:id
func (h *PostHandler) Get(c *gin.Context) {
	h.get(c, false)
}

// Feed RSS 2.0 of the latest posts
// GET /blog/feed
func (h *PostHandler) Feed(c *gin.Context) {
	rss, err := h.postSvc.Feed(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", []byte(rss))
}

// ListAll posts including drafts
// GET /api/v1/posts
func (h *PostHandler) ListAll(c *gin.Context) {
	var page dto.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, 10001, "invalid parameters")
		return
	}

	list, total, err := h.postSvc.ListAll(c.Request.Context(), &page)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, list, total, page.GetPage(), page.GetPageSize())
}

// GetAny one post, drafts included
// GET /api/v1/posts/:id
func (h *PostHandler) GetAny(c *gin.Context) {
	h.get(c, true)
}

func (h *PostHandler) get(c *gin.Context, withDrafts bool) {
	post, err := h.postSvc.Get(c.Request.Context(), c.Param("id"), withDrafts)
	if err != nil {
		h.handlePostError(c, err)
		return
	}
	response.OK(c, post)
}

// Create post authored by the logged-in admin
// POST /api/v1/posts
func (h *PostHandler) Create(c *gin.Context) {
	adminID, ok := MustGetAdminID(c)
	if !ok {
		return
	}

	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	post, err := h.postSvc.Create(c.Request.Context(), adminID, &req)
	if err != nil {
		h.handlePostError(c, err)
		return
	}

	response.Created(c, post)
}

// Update post
// PUT /api/v1/posts/:id
func (h *PostHandler) Update(c *gin.Context) {
	var req dto.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	post, err := h.postSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handlePostError(c, err)
		return
	}

	response.OK(c, post)
}

// Delete post
// DELETE /api/v1/posts/:id
func (h *PostHandler) Delete(c *gin.Context) {
	if err := h.postSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handlePostError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *PostHandler) handlePostError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPostNotFound):
		response.NotFound(c, 16001, "post not found")
	default:
		response.InternalError(c)
	}
}
