package models

import (
	"time"
)

// Comment represents a comment on an article
type Comment struct {
	CommentID int64     `json:"comment_id" db:"comment_id"`
	ArticleID int64     `json:"article_id" db:"article_id"`
	Author    string    `json:"author" db:"author"`
	Body      string    `json:"body" db:"body"`
	Votes     int       `json:"votes" db:"votes"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CommentPayload is the body of a new comment request
type CommentPayload struct {
	Username string `mapstructure:"username" validate:"required,notblank"`
	Body     string `mapstructure:"body" validate:"required,notblank"`
}
