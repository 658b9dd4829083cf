package service

import (
	"context"

	"github.com/ZeroSibe/nc-news/internal/models"
	"github.com/ZeroSibe/nc-news/internal/repository"
	"github.com/rs/zerolog"
)

// TopicService defines the interface for topic operations
type TopicService interface {
	ListTopics(ctx context.Context, params map[string]string) ([]*models.Topic, error)
	TopicExists(ctx context.Context, slug string) (bool, error)
}

// ArticleService defines the interface for article operations
type ArticleService interface {
	ListArticles(ctx context.Context, params map[string]string) ([]*models.Article, error)
	GetArticle(ctx context.Context, rawID string) (*models.Article, error)
	IncrementVotes(ctx context.Context, rawID string, payload map[string]interface{}) (*models.Article, error)
}

// CommentService defines the interface for comment operations
type CommentService interface {
	ListComments(ctx context.Context, rawArticleID string) ([]*models.Comment, error)
	InsertComment(ctx context.Context, rawArticleID string, payload map[string]interface{}) (*models.Comment, error)
	DeleteComment(ctx context.Context, rawCommentID string) error
}

// UserService defines the interface for user operations
type UserService interface {
	ListUsers(ctx context.Context) ([]*models.User, error)
	GetUser(ctx context.Context, username string) (*models.User, error)
}

// StatsService reports table sizes
type StatsService interface {
	GetCount(ctx context.Context, resource string) (int, error)
	Counts(ctx context.Context) (map[string]int, error)
}

// Services holds all service interfaces
type Services struct {
	Topic   TopicService
	Article ArticleService
	Comment CommentService
	User    UserService
	Stats   StatsService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, log zerolog.Logger) *Services {
	topicSvc := newTopicService(repos.Topic, log)

	return &Services{
		Topic:   topicSvc,
		Article: newArticleService(repos.Article, topicSvc, log),
		Comment: newCommentService(repos.Comment, repos.Article, repos.User, log),
		User:    newUserService(repos.User, log),
		Stats:   newStatsService(repos, log),
	}
}
