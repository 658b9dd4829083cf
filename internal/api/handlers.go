package api

import (
	"errors"
	"io"

	"github.com/ZeroSibe/nc-news/internal/apperr"
	"github.com/ZeroSibe/nc-news/internal/service"
	"github.com/gin-gonic/gin"
)

// queryParams flattens the query string, keeping the first value of each key
func queryParams(c *gin.Context) map[string]string {
	values := c.Request.URL.Query()
	params := make(map[string]string, len(values))
	for key, vals := range values {
		if len(vals) > 0 {
			params[key] = vals[0]
		}
	}
	return params
}

// bindPayload decodes a JSON object body. An empty body decodes to an empty payload
// so missing fields are reported by the service.
func bindPayload(c *gin.Context) (map[string]interface{}, error) {
	payload := map[string]interface{}{}
	if c.Request.Body == nil {
		return payload, nil
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]interface{}{}, nil
		}
		return nil, apperr.InvalidPayload("malformed JSON body: %v", err)
	}
	if payload == nil {
		payload = map[string]interface{}{}
	}
	return payload, nil
}

// bindArticlePayload decodes the body of a request addressed to an article.
// When the body is malformed, a bad or unknown article id is reported instead.
func bindArticlePayload(c *gin.Context, articles service.ArticleService) (map[string]interface{}, error) {
	payload, err := bindPayload(c)
	if err == nil {
		return payload, nil
	}
	if _, lookupErr := articles.GetArticle(c.Request.Context(), c.Param("article_id")); lookupErr != nil {
		return nil, lookupErr
	}
	return nil, err
}
