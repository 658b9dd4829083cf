package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ZeroSibe/nc-news/internal/database"
	"github.com/ZeroSibe/nc-news/internal/models"
)

type topicRepo struct {
	db *database.DB
}

// NewTopicRepo creates a new topic repository
func NewTopicRepo(db *database.DB) TopicRepository {
	return &topicRepo{db: db}
}

func (r *topicRepo) List(ctx context.Context) ([]*models.Topic, error) {
	topics := []*models.Topic{}
	if err := r.db.SelectContext(ctx, &topics, "SELECT slug, description FROM topics ORDER BY slug"); err != nil {
		return nil, storageErr("list topics", err)
	}
	return topics, nil
}

func (r *topicRepo) GetBySlug(ctx context.Context, slug string) (*models.Topic, error) {
	var topic models.Topic
	err := r.db.GetContext(ctx, &topic, r.db.Rebind("SELECT slug, description FROM topics WHERE slug = ?"), slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("get topic", err)
	}
	return &topic, nil
}

func (r *topicRepo) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db, "topics")
}
