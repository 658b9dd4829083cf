package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/ZeroSibe/nc-news/internal/database"
	"github.com/ZeroSibe/nc-news/internal/models"
)

const commentColumns = "comment_id, article_id, author, body, votes, created_at"

// commentRepo is the concrete implementation of CommentRepository
type commentRepo struct {
	db  *database.DB
	now func() time.Time
}

// NewCommentRepo creates a new comment repository
func NewCommentRepo(db *database.DB) CommentRepository {
	return &commentRepo{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// ListByArticle returns the comments of an article, most recent first
func (r *commentRepo) ListByArticle(ctx context.Context, articleID int64) ([]*models.Comment, error) {
	query := r.db.Rebind(`SELECT ` + commentColumns + ` FROM comments
		WHERE article_id = ?
		ORDER BY created_at DESC, comment_id ASC`)

	comments := []*models.Comment{}
	if err := r.db.SelectContext(ctx, &comments, query, articleID); err != nil {
		return nil, storageErr("list comments", err)
	}
	return comments, nil
}

// GetByID retrieves a comment by ID
func (r *commentRepo) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.GetContext(ctx, &comment, r.db.Rebind(`SELECT `+commentColumns+` FROM comments WHERE comment_id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("get comment", err)
	}
	return &comment, nil
}

// Create inserts a new comment with zero votes and returns the stored row
func (r *commentRepo) Create(ctx context.Context, articleID int64, author, body string) (*models.Comment, error) {
	query := r.db.Rebind(`
		INSERT INTO comments (body, article_id, author, votes, created_at)
		VALUES (?, ?, ?, 0, ?)
		RETURNING comment_id
	`)

	var id int64
	if err := r.db.GetContext(ctx, &id, query, body, articleID, author, r.now()); err != nil {
		return nil, storageErr("insert comment", err)
	}

	comment, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, storageErr("insert comment", sql.ErrNoRows)
	}
	return comment, nil
}

// Delete removes a comment and reports whether a row was deleted
func (r *commentRepo) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, r.db.Rebind("DELETE FROM comments WHERE comment_id = ?"), id)
	if err != nil {
		return false, storageErr("delete comment", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, storageErr("delete comment", err)
	}
	return rows > 0, nil
}

// Count returns the total number of comments
func (r *commentRepo) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db, "comments")
}
