package models

import (
	"time"
)

// Article represents an article together with its derived comment count
type Article struct {
	ArticleID     int64     `json:"article_id" db:"article_id"`
	Author        string    `json:"author" db:"author"`
	Title         string    `json:"title" db:"title"`
	Body          string    `json:"body,omitempty" db:"body"`
	Topic         string    `json:"topic" db:"topic"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	Votes         int       `json:"votes" db:"votes"`
	ArticleImgURL string    `json:"article_img_url" db:"article_img_url"`
	CommentCount  int       `json:"comment_count" db:"comment_count"` // computed, never stored
}

// Sort columns accepted by the article listing
const (
	SortTitle        = "title"
	SortTopic        = "topic"
	SortAuthor       = "author"
	SortArticleID    = "article_id"
	SortCreatedAt    = "created_at"
	SortVotes        = "votes"
	SortCommentCount = "comment_count"
)

// ValidSortColumns defines allowed sort_by values
var ValidSortColumns = []string{
	SortTitle, SortTopic, SortAuthor, SortArticleID, SortCreatedAt, SortVotes, SortCommentCount,
}

// Sort directions
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// ValidOrders defines allowed order values
var ValidOrders = []string{OrderAsc, OrderDesc}

// ArticleFilter is a validated article listing query
type ArticleFilter struct {
	SortBy string
	Order  string
	Topic  string // empty means all topics
}

// DefaultArticleFilter returns the filter used when no query is given
func DefaultArticleFilter() ArticleFilter {
	return ArticleFilter{SortBy: SortCreatedAt, Order: OrderDesc}
}

// DefaultArticleImgURL is stored when a seed article has no image
const DefaultArticleImgURL = "https://images.pexels.com/photos/97050/pexels-photo-97050.jpeg?w=700&h=700"
