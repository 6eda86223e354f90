package api

import (
	"net/http"
	"net/url"

	"github.com/emlips/nc-news/internal/apperr"
	"github.com/emlips/nc-news/internal/models"
	"github.com/emlips/nc-news/internal/service"
	"github.com/emlips/nc-news/internal/validation"
	"github.com/gin-gonic/gin"
)

// ArticleHandler handles article endpoints
type ArticleHandler struct {
	services *service.Services
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(services *service.Services) *ArticleHandler {
	return &ArticleHandler{services: services}
}

// List handles GET /api/articles?topic=&sort_by=&order=&limit=&p=
func (h *ArticleHandler) List(c *gin.Context) {
	values, err := queryValues(c)
	if err != nil {
		c.Error(err)
		return
	}
	q, err := validation.ParseArticleQuery(values)
	if err != nil {
		c.Error(err)
		return
	}

	page, err := h.services.Article.List(c.Request.Context(), q)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// Get handles GET /api/articles/:article_id
func (h *ArticleHandler) Get(c *gin.Context) {
	id, err := validation.ParseID(c.Param("article_id"))
	if err != nil {
		c.Error(err)
		return
	}

	article, err := h.services.Article.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"article": article})
}

// Create handles POST /api/articles
func (h *ArticleHandler) Create(c *gin.Context) {
	var req models.NewArticle
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperr.BadRequest())
		return
	}

	article, err := h.services.Article.Create(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"article": article})
}

// Vote handles PATCH /api/articles/:article_id
func (h *ArticleHandler) Vote(c *gin.Context) {
	id, err := validation.ParseID(c.Param("article_id"))
	if err != nil {
		c.Error(err)
		return
	}
	delta, err := bindVote(c)
	if err != nil {
		c.Error(err)
		return
	}

	article, err := h.services.Article.Vote(c.Request.Context(), id, delta)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"article": article})
}

// Delete handles DELETE /api/articles/:article_id
func (h *ArticleHandler) Delete(c *gin.Context) {
	id, err := validation.ParseID(c.Param("article_id"))
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.services.Article.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// queryValues parses the raw query strictly. url.URL.Query drops pairs it
// cannot parse, which would turn "limit=5;" into a default limit.
func queryValues(c *gin.Context) (url.Values, error) {
	values, err := url.ParseQuery(c.Request.URL.RawQuery)
	if err != nil {
		return nil, apperr.BadRequest()
	}
	return values, nil
}

func bindVote(c *gin.Context) (int, error) {
	var update models.VoteUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		return 0, apperr.BadRequest()
	}
	return validation.VoteDelta(&update)
}
