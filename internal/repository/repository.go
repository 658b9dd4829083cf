package repository

import (
	"context"
	"fmt"

	"github.com/ZeroSibe/nc-news/internal/apperr"
	"github.com/ZeroSibe/nc-news/internal/database"
	"github.com/ZeroSibe/nc-news/internal/models"
)

// TopicRepository defines the interface for topic data operations
type TopicRepository interface {
	List(ctx context.Context) ([]*models.Topic, error)
	GetBySlug(ctx context.Context, slug string) (*models.Topic, error)
	Count(ctx context.Context) (int, error)
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	List(ctx context.Context) ([]*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Exists(ctx context.Context, username string) (bool, error)
	Count(ctx context.Context) (int, error)
}

// ArticleRepository defines the interface for article data operations
type ArticleRepository interface {
	List(ctx context.Context, filter models.ArticleFilter) ([]*models.Article, error)
	GetByID(ctx context.Context, id int64) (*models.Article, error)
	Exists(ctx context.Context, id int64) (bool, error)
	IncrementVotes(ctx context.Context, id int64, delta int) (*models.Article, error)
	Count(ctx context.Context) (int, error)
}

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	ListByArticle(ctx context.Context, articleID int64) ([]*models.Comment, error)
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
	Create(ctx context.Context, articleID int64, author, body string) (*models.Comment, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context) (int, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	Topic   TopicRepository
	User    UserRepository
	Article ArticleRepository
	Comment CommentRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Topic:   NewTopicRepo(db),
		User:    NewUserRepo(db),
		Article: NewArticleRepo(db),
		Comment: NewCommentRepo(db),
	}
}

// storageErr classifies a driver error as a storage failure, keeping the driver code in the message
func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if code := database.ErrorCode(err); code != "" {
		if database.IsConstraintViolation(err) {
			op = fmt.Sprintf("%s: constraint violation (code %s)", op, code)
		} else {
			op = fmt.Sprintf("%s (code %s)", op, code)
		}
	}
	return apperr.Storage(op, err)
}

// count runs a SELECT COUNT(*) over a fixed table name
func count(ctx context.Context, db *database.DB, table string) (int, error) {
	var n int
	if err := db.GetContext(ctx, &n, "SELECT COUNT(*) FROM "+table); err != nil {
		return 0, storageErr("count "+table, err)
	}
	return n, nil
}
