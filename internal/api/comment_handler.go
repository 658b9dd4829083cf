package api

import (
	"net/http"

	"github.com/ZeroSibe/nc-news/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// CommentHandler handles comment endpoints
type CommentHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(services *service.Services, log zerolog.Logger) *CommentHandler {
	return &CommentHandler{
		services: services,
		log:      log.With().Str("handler", "comment").Logger(),
	}
}

// ListComments handles GET /api/articles/:article_id/comments
func (h *CommentHandler) ListComments(c *gin.Context) {
	comments, err := h.services.Comment.ListComments(c.Request.Context(), c.Param("article_id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// PostComment handles POST /api/articles/:article_id/comments
// Body: {"username": "...", "body": "..."}
func (h *CommentHandler) PostComment(c *gin.Context) {
	payload, err := bindArticlePayload(c, h.services.Article)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	comment, err := h.services.Comment.InsertComment(c.Request.Context(), c.Param("article_id"), payload)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"comment": comment})
}

// DeleteComment handles DELETE /api/comments/:comment_id
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	if err := h.services.Comment.DeleteComment(c.Request.Context(), c.Param("comment_id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
