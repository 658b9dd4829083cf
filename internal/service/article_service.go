package service

import (
	"context"

	"github.com/ZeroSibe/nc-news/internal/apperr"
	"github.com/ZeroSibe/nc-news/internal/models"
	"github.com/ZeroSibe/nc-news/internal/repository"
	"github.com/ZeroSibe/nc-news/internal/validation"
	"github.com/rs/zerolog"
)

// articleService is the concrete implementation of ArticleService
type articleService struct {
	articles repository.ArticleRepository
	topics   TopicService
	log      zerolog.Logger
}

// newArticleService creates a new ArticleService
func newArticleService(articles repository.ArticleRepository, topics TopicService, log zerolog.Logger) *articleService {
	return &articleService{
		articles: articles,
		topics:   topics,
		log:      log.With().Str("service", "article").Logger(),
	}
}

// ListArticles returns articles with their comment counts.
// An unknown topic is NotFound; a known topic without articles yields an empty list.
func (s *articleService) ListArticles(ctx context.Context, params map[string]string) ([]*models.Article, error) {
	filter, err := validation.ParseArticleFilter(params)
	if err != nil {
		return nil, err
	}

	if filter.Topic != "" {
		exists, err := s.topics.TopicExists(ctx, filter.Topic)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, apperr.NotFound("Topic Not Found: %q", filter.Topic)
		}
	}

	articles, err := s.articles.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	s.log.Debug().
		Str("sort_by", filter.SortBy).
		Str("order", filter.Order).
		Str("topic", filter.Topic).
		Int("count", len(articles)).
		Msg("Listed articles")

	return articles, nil
}

// GetArticle returns a single article including its body and comment count
func (s *articleService) GetArticle(ctx context.Context, rawID string) (*models.Article, error) {
	id, err := validation.ParseID(rawID)
	if err != nil {
		return nil, err
	}

	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, apperr.NotFound("Article Not Found: %d", id)
	}
	return article, nil
}

// IncrementVotes applies inc_votes to the article in one relative update
func (s *articleService) IncrementVotes(ctx context.Context, rawID string, payload map[string]interface{}) (*models.Article, error) {
	id, err := validation.ParseID(rawID)
	if err != nil {
		return nil, err
	}

	delta, err := validation.ParseVoteDelta(payload)
	if err != nil {
		return nil, err
	}

	article, err := s.articles.IncrementVotes(ctx, id, delta)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, apperr.NotFound("Article Not Found: %d", id)
	}

	s.log.Info().
		Int64("article_id", id).
		Int("delta", delta).
		Int("votes", article.Votes).
		Msg("Article votes updated")

	return article, nil
}
