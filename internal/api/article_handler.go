package api

import (
	"net/http"

	"github.com/ZeroSibe/nc-news/internal/service"
	"github.com/ZeroSibe/nc-news/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ArticleHandler handles article endpoints
type ArticleHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(services *service.Services, log zerolog.Logger) *ArticleHandler {
	return &ArticleHandler{
		services: services,
		log:      log.With().Str("handler", "article").Logger(),
	}
}

// ListArticles handles GET /api/articles
// Query parameters: sort_by, order, topic
func (h *ArticleHandler) ListArticles(c *gin.Context) {
	articles, err := h.services.Article.ListArticles(c.Request.Context(), queryParams(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"articles": articles})
}

// ListArticlesByTopic handles GET /api/topics/:topic
// The path segment takes precedence over a topic query parameter.
func (h *ArticleHandler) ListArticlesByTopic(c *gin.Context) {
	params := queryParams(c)
	params[validation.ParamTopic] = c.Param("topic")

	articles, err := h.services.Article.ListArticles(c.Request.Context(), params)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"articles": articles})
}

// GetArticle handles GET /api/articles/:article_id
func (h *ArticleHandler) GetArticle(c *gin.Context) {
	article, err := h.services.Article.GetArticle(c.Request.Context(), c.Param("article_id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"article": article})
}

// PatchArticle handles PATCH /api/articles/:article_id
// Body: {"inc_votes": <integer>}
func (h *ArticleHandler) PatchArticle(c *gin.Context) {
	payload, err := bindArticlePayload(c, h.services.Article)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	article, err := h.services.Article.IncrementVotes(c.Request.Context(), c.Param("article_id"), payload)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"article": article})
}
