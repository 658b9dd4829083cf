package service

import (
	"context"

	"github.com/ZeroSibe/nc-news/internal/apperr"
	"github.com/ZeroSibe/nc-news/internal/models"
	"github.com/ZeroSibe/nc-news/internal/repository"
	"github.com/ZeroSibe/nc-news/internal/validation"
	"github.com/rs/zerolog"
)

type topicService struct {
	topics repository.TopicRepository
	log    zerolog.Logger
}

func newTopicService(topics repository.TopicRepository, log zerolog.Logger) *topicService {
	return &topicService{
		topics: topics,
		log:    log.With().Str("service", "topic").Logger(),
	}
}

// ListTopics returns every topic, or only the one named by the slug parameter
func (s *topicService) ListTopics(ctx context.Context, params map[string]string) ([]*models.Topic, error) {
	slug, ok := params[validation.ParamSlug]
	if !ok {
		return s.topics.List(ctx)
	}

	topic, err := s.topics.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if topic == nil {
		return nil, apperr.NotFound("Topic Not Found: %q", slug)
	}
	return []*models.Topic{topic}, nil
}

// TopicExists reports whether a topic with the given slug is stored
func (s *topicService) TopicExists(ctx context.Context, slug string) (bool, error) {
	topic, err := s.topics.GetBySlug(ctx, slug)
	if err != nil {
		return false, err
	}
	return topic != nil, nil
}
