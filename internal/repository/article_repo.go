package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ZeroSibe/nc-news/internal/database"
	"github.com/ZeroSibe/nc-news/internal/models"
)

// articleRepo is the concrete implementation of ArticleRepository
type articleRepo struct {
	db *database.DB
}

// NewArticleRepo creates a new article repository
func NewArticleRepo(db *database.DB) ArticleRepository {
	return &articleRepo{db: db}
}

// List returns articles with their comment counts, filtered and ordered by filter
func (r *articleRepo) List(ctx context.Context, filter models.ArticleFilter) ([]*models.Article, error) {
	query, args, err := buildArticleListQuery(filter)
	if err != nil {
		return nil, err
	}

	articles := []*models.Article{}
	if err := r.db.SelectContext(ctx, &articles, r.db.Rebind(query), args...); err != nil {
		return nil, storageErr("list articles", err)
	}
	return articles, nil
}

// GetByID retrieves an article with its comment count
func (r *articleRepo) GetByID(ctx context.Context, id int64) (*models.Article, error) {
	var article models.Article
	err := r.db.GetContext(ctx, &article, r.db.Rebind(articleDetailSelect), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("get article", err)
	}
	return &article, nil
}

// Exists checks if an article with the given ID exists
func (r *articleRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, r.db.Rebind("SELECT EXISTS(SELECT 1 FROM articles WHERE article_id = ?)"), id)
	if err != nil {
		return false, storageErr("check article", err)
	}
	return exists, nil
}

// IncrementVotes adds delta to the stored vote count in a single relative update.
// It returns nil when no article matched.
func (r *articleRepo) IncrementVotes(ctx context.Context, id int64, delta int) (*models.Article, error) {
	result, err := r.db.ExecContext(ctx,
		r.db.Rebind("UPDATE articles SET votes = votes + ? WHERE article_id = ?"),
		delta, id,
	)
	if err != nil {
		return nil, storageErr("increment votes", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, storageErr("increment votes", err)
	}
	if rows == 0 {
		return nil, nil
	}

	return r.GetByID(ctx, id)
}

// Count returns the total number of articles
func (r *articleRepo) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db, "articles")
}
