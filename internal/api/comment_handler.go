package api

import (
	"net/http"

	"github.com/emlips/nc-news/internal/apperr"
	"github.com/emlips/nc-news/internal/models"
	"github.com/emlips/nc-news/internal/service"
	"github.com/emlips/nc-news/internal/validation"
	"github.com/gin-gonic/gin"
)

// CommentHandler handles comment endpoints
type CommentHandler struct {
	services *service.Services
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(services *service.Services) *CommentHandler {
	return &CommentHandler{services: services}
}

// ListByArticle handles GET /api/articles/:article_id/comments?limit=&p=
func (h *CommentHandler) ListByArticle(c *gin.Context) {
	articleID, err := validation.ParseID(c.Param("article_id"))
	if err != nil {
		c.Error(err)
		return
	}
	values, err := queryValues(c)
	if err != nil {
		c.Error(err)
		return
	}
	page, err := validation.ParsePage(values)
	if err != nil {
		c.Error(err)
		return
	}

	comments, err := h.services.Comment.ListByArticle(c.Request.Context(), articleID, page)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// Create handles POST /api/articles/:article_id/comments
func (h *CommentHandler) Create(c *gin.Context) {
	articleID, err := validation.ParseID(c.Param("article_id"))
	if err != nil {
		c.Error(err)
		return
	}
	var req models.NewComment
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperr.BadRequest())
		return
	}

	comment, err := h.services.Comment.Create(c.Request.Context(), articleID, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"newComment": comment.Body})
}

// Vote handles PATCH /api/comments/:comment_id
func (h *CommentHandler) Vote(c *gin.Context) {
	id, err := validation.ParseID(c.Param("comment_id"))
	if err != nil {
		c.Error(err)
		return
	}
	delta, err := bindVote(c)
	if err != nil {
		c.Error(err)
		return
	}

	comment, err := h.services.Comment.Vote(c.Request.Context(), id, delta)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comment": comment})
}

// Delete handles DELETE /api/comments/:comment_id
func (h *CommentHandler) Delete(c *gin.Context) {
	id, err := validation.ParseID(c.Param("comment_id"))
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.services.Comment.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
