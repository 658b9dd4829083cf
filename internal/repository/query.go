package repository

import (
	"strings"

	"github.com/ZeroSibe/nc-news/internal/apperr"
	"github.com/ZeroSibe/nc-news/internal/models"
)

// articleSortColumns maps each accepted sort_by token to the expression used in ORDER BY.
// Nothing outside this map ever reaches the query text.
var articleSortColumns = map[string]string{
	models.SortTitle:        "a.title",
	models.SortTopic:        "a.topic",
	models.SortAuthor:       "a.author",
	models.SortArticleID:    "a.article_id",
	models.SortCreatedAt:    "a.created_at",
	models.SortVotes:        "a.votes",
	models.SortCommentCount: "comment_count",
}

var sortDirections = map[string]string{
	models.OrderAsc:  "ASC",
	models.OrderDesc: "DESC",
}

const articleListSelect = `
	SELECT a.article_id, a.author, a.title, a.topic, a.created_at, a.votes, a.article_img_url,
		COUNT(c.comment_id) AS comment_count
	FROM articles a
	LEFT JOIN comments c ON c.article_id = a.article_id`

const articleDetailSelect = `
	SELECT a.article_id, a.author, a.title, a.body, a.topic, a.created_at, a.votes, a.article_img_url,
		COUNT(c.comment_id) AS comment_count
	FROM articles a
	LEFT JOIN comments c ON c.article_id = a.article_id
	WHERE a.article_id = ?
	GROUP BY a.article_id`

// buildArticleListQuery assembles the listing query from allow-listed clauses.
// Placeholders are written as "?" and rebound by the caller for the active driver.
func buildArticleListQuery(filter models.ArticleFilter) (string, []interface{}, error) {
	column, ok := articleSortColumns[filter.SortBy]
	if !ok {
		return "", nil, apperr.InvalidQuery("invalid sort_by %q", filter.SortBy)
	}
	direction, ok := sortDirections[filter.Order]
	if !ok {
		return "", nil, apperr.InvalidQuery("invalid order %q", filter.Order)
	}

	var (
		sb   strings.Builder
		args []interface{}
	)
	sb.WriteString(articleListSelect)
	if filter.Topic != "" {
		sb.WriteString("\n\tWHERE a.topic = ?")
		args = append(args, filter.Topic)
	}
	sb.WriteString("\n\tGROUP BY a.article_id")
	sb.WriteString("\n\tORDER BY " + column + " " + direction + ", a.article_id ASC")

	return sb.String(), args, nil
}
