package service

import (
	"context"

	"github.com/ZeroSibe/nc-news/internal/apperr"
	"github.com/ZeroSibe/nc-news/internal/models"
	"github.com/ZeroSibe/nc-news/internal/repository"
	"github.com/ZeroSibe/nc-news/internal/validation"
	"github.com/rs/zerolog"
)

// commentService is the concrete implementation of CommentService
type commentService struct {
	comments repository.CommentRepository
	articles repository.ArticleRepository
	users    repository.UserRepository
	log      zerolog.Logger
}

// newCommentService creates a new CommentService
func newCommentService(
	comments repository.CommentRepository,
	articles repository.ArticleRepository,
	users repository.UserRepository,
	log zerolog.Logger,
) *commentService {
	return &commentService{
		comments: comments,
		articles: articles,
		users:    users,
		log:      log.With().Str("service", "comment").Logger(),
	}
}

// requireArticle parses the article id and checks that the article exists
func (s *commentService) requireArticle(ctx context.Context, rawID string) (int64, error) {
	id, err := validation.ParseID(rawID)
	if err != nil {
		return 0, err
	}

	exists, err := s.articles.Exists(ctx, id)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, apperr.NotFound("Article Not Found: %d", id)
	}
	return id, nil
}

// ListComments returns the comments of an existing article, most recent first
func (s *commentService) ListComments(ctx context.Context, rawArticleID string) ([]*models.Comment, error) {
	articleID, err := s.requireArticle(ctx, rawArticleID)
	if err != nil {
		return nil, err
	}
	return s.comments.ListByArticle(ctx, articleID)
}

// InsertComment validates the payload and stores a new comment.
// Nothing is written unless every check passes.
func (s *commentService) InsertComment(ctx context.Context, rawArticleID string, payload map[string]interface{}) (*models.Comment, error) {
	articleID, err := s.requireArticle(ctx, rawArticleID)
	if err != nil {
		return nil, err
	}

	p, err := validation.DecodeCommentPayload(payload)
	if err != nil {
		return nil, err
	}

	exists, err := s.users.Exists(ctx, p.Username)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.InvalidPayload("username %q does not exist", p.Username)
	}

	comment, err := s.comments.Create(ctx, articleID, p.Username, p.Body)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Int64("comment_id", comment.CommentID).
		Int64("article_id", articleID).
		Str("author", comment.Author).
		Msg("Comment created")

	return comment, nil
}

// DeleteComment removes a comment. Deleting a missing comment is NotFound.
func (s *commentService) DeleteComment(ctx context.Context, rawCommentID string) error {
	id, err := validation.ParseID(rawCommentID)
	if err != nil {
		return err
	}

	deleted, err := s.comments.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.NotFound("Comment Not Found: %d", id)
	}

	s.log.Info().Int64("comment_id", id).Msg("Comment deleted")
	return nil
}
