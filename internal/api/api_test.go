package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ZeroSibe/nc-news/internal/api"
	"github.com/ZeroSibe/nc-news/internal/apperr"
	"github.com/ZeroSibe/nc-news/internal/config"
	"github.com/ZeroSibe/nc-news/internal/mocks"
	"github.com/ZeroSibe/nc-news/internal/models"
	"github.com/ZeroSibe/nc-news/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type mockServices struct {
	topic   *mocks.MockTopicService
	article *mocks.MockArticleService
	comment *mocks.MockCommentService
	user    *mocks.MockUserService
	stats   *mocks.MockStatsService
}

type stubHealth struct{ err error }

func (s stubHealth) HealthCheck(ctx context.Context) error { return s.err }

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: "9090", AllowedOrigins: []string{"*"}},
	}
}

func setupTestRouter() (*gin.Engine, *mockServices) {
	gin.SetMode(gin.TestMode)

	m := &mockServices{
		topic:   mocks.NewMockTopicService(),
		article: mocks.NewMockArticleService(),
		comment: mocks.NewMockCommentService(),
		user:    mocks.NewMockUserService(),
		stats:   mocks.NewMockStatsService(),
	}

	services := &service.Services{
		Topic:   m.topic,
		Article: m.article,
		Comment: m.comment,
		User:    m.user,
		Stats:   m.stats,
	}

	router := api.NewRouter(services, stubHealth{}, testConfig(), zerolog.Nop())
	return router, m
}

func doRequest(router http.Handler, method, path string, body []byte) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to decode response %q: %v", w.Body.String(), err)
	}
	return response
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := setupTestRouter()

	w := doRequest(router, "GET", "/health", nil)
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	response := decode(t, w)
	if response["status"] != "healthy" {
		t.Errorf("Expected status 'healthy', got %v", response["status"])
	}
	if response["service"] != "nc-news" {
		t.Errorf("Expected service name, got %v", response["service"])
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("Expected a request id header")
	}
}

func TestHealthEndpoint_DatabaseDown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := api.NewRouter(&service.Services{}, stubHealth{err: errors.New("connection refused")}, testConfig(), zerolog.Nop())

	w := doRequest(router, "GET", "/health", nil)
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503, got %d", w.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router, m := setupTestRouter()
	m.stats.CountsMap["topics"] = 3
	m.stats.CountsMap["articles"] = 13
	m.stats.CountsMap["comments"] = 18

	w := doRequest(router, "GET", "/metrics", nil)
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	db := decode(t, w)["database"].(map[string]interface{})
	if db["articles"].(float64) != 13 {
		t.Errorf("Expected 13 articles, got %v", db["articles"])
	}
}

func TestEndpointsCatalogue(t *testing.T) {
	router, _ := setupTestRouter()

	w := doRequest(router, "GET", "/api", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	endpoints, ok := decode(t, w)["endpoints"].(map[string]interface{})
	if !ok {
		t.Fatal("Expected endpoints object")
	}
	for _, key := range []string{"GET /api/topics", "GET /api/articles", "PATCH /api/articles/:article_id", "DELETE /api/comments/:comment_id"} {
		if _, ok := endpoints[key]; !ok {
			t.Errorf("Endpoint %q missing from catalogue", key)
		}
	}
}

func TestPathNotFound(t *testing.T) {
	router, _ := setupTestRouter()

	for _, path := range []string{"/api/not-a-route", "/nope", "/api/articles/1/votes"} {
		w := doRequest(router, "GET", path, nil)
		if w.Code != http.StatusNotFound {
			t.Errorf("%s: expected status 404, got %d", path, w.Code)
		}
		if msg := decode(t, w)["msg"]; msg != "Path Not Found" {
			t.Errorf("%s: expected 'Path Not Found', got %v", path, msg)
		}
	}
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
		wantDetail bool
	}{
		{"invalid identifier", apperr.InvalidIdentifier("bad id"), http.StatusBadRequest, "Bad Request", true},
		{"invalid query", apperr.InvalidQuery("bad sort"), http.StatusBadRequest, "Invalid Query", true},
		{"invalid payload", apperr.InvalidPayload("bad body"), http.StatusBadRequest, "Bad Request", true},
		{"not found", apperr.NotFound("Article Not Found: 9"), http.StatusNotFound, "Not Found", true},
		{"storage failure", apperr.Storage("get article", errors.New("dial tcp: refused")), http.StatusInternalServerError, "Internal Server Error", false},
		{"foreign error", errors.New("boom"), http.StatusInternalServerError, "Internal Server Error", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, m := setupTestRouter()
			m.article.GetFunc = func(ctx context.Context, rawID string) (*models.Article, error) {
				return nil, tt.err
			}

			w := doRequest(router, "GET", "/api/articles/9", nil)
			if w.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, w.Code)
			}

			response := decode(t, w)
			if response["msg"] != tt.wantMsg {
				t.Errorf("Expected msg %q, got %v", tt.wantMsg, response["msg"])
			}
			_, hasDetail := response["detail"]
			if hasDetail != tt.wantDetail {
				t.Errorf("Expected detail present=%v, got %v", tt.wantDetail, response)
			}
		})
	}
}

func TestListArticles_PassesQuery(t *testing.T) {
	router, m := setupTestRouter()

	w := doRequest(router, "GET", "/api/articles?sort_by=votes&order=asc&topic=cats&page=2", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	want := map[string]string{"sort_by": "votes", "order": "asc", "topic": "cats", "page": "2"}
	for k, v := range want {
		if m.article.LastParams[k] != v {
			t.Errorf("Expected %s=%s, got %q", k, v, m.article.LastParams[k])
		}
	}

	articles, ok := decode(t, w)["articles"].([]interface{})
	if !ok || len(articles) != 0 {
		t.Errorf("Expected empty articles array, got %v", w.Body.String())
	}
}

func TestListArticlesByTopic_UsesPathSegment(t *testing.T) {
	router, m := setupTestRouter()

	w := doRequest(router, "GET", "/api/topics/cats?topic=mitch&order=asc", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if m.article.LastParams["topic"] != "cats" {
		t.Errorf("Expected topic cats, got %q", m.article.LastParams["topic"])
	}
	if m.article.LastParams["order"] != "asc" {
		t.Errorf("Expected order asc, got %q", m.article.LastParams["order"])
	}
}

func TestPatchArticle_DecodesNumbers(t *testing.T) {
	router, m := setupTestRouter()

	var got interface{}
	m.article.VoteFunc = func(ctx context.Context, rawID string, payload map[string]interface{}) (*models.Article, error) {
		got = payload["inc_votes"]
		return &models.Article{ArticleID: 1, Votes: 99}, nil
	}

	w := doRequest(router, "PATCH", "/api/articles/1", []byte(`{"inc_votes": -1}`))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if n, ok := got.(json.Number); !ok || n.String() != "-1" {
		t.Errorf("Expected json.Number -1, got %T %v", got, got)
	}
}

func TestPatchArticle_MalformedJSON(t *testing.T) {
	router, m := setupTestRouter()
	called := false
	m.article.VoteFunc = func(ctx context.Context, rawID string, payload map[string]interface{}) (*models.Article, error) {
		called = true
		return nil, nil
	}

	w := doRequest(router, "PATCH", "/api/articles/1", []byte(`{"inc_votes": `))
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
	if called {
		t.Error("Service should not be called for a malformed body")
	}
}

func TestPostComment_MalformedJSONOnMissingArticle(t *testing.T) {
	router, m := setupTestRouter()
	var lookedUp string
	m.article.GetFunc = func(ctx context.Context, rawID string) (*models.Article, error) {
		lookedUp = rawID
		return nil, apperr.NotFound("Article Not Found: %s", rawID)
	}
	called := false
	m.comment.InsertFunc = func(ctx context.Context, rawArticleID string, payload map[string]interface{}) (*models.Comment, error) {
		called = true
		return nil, nil
	}

	w := doRequest(router, "POST", "/api/articles/9999/comments", []byte(`{"body": `))
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected status 404, got %d: %s", w.Code, w.Body.String())
	}
	if lookedUp != "9999" {
		t.Errorf("Expected article 9999 to be looked up, got %q", lookedUp)
	}
	if called {
		t.Error("Service should not be called for a malformed body")
	}
}

func TestPatchArticle_MalformedJSONOnBadID(t *testing.T) {
	router, m := setupTestRouter()
	m.article.GetFunc = func(ctx context.Context, rawID string) (*models.Article, error) {
		return nil, apperr.InvalidIdentifier("identifier must be a non-negative integer, got %q", rawID)
	}

	w := doRequest(router, "PATCH", "/api/articles/abc", []byte(`{"inc_votes": `))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", w.Code)
	}
	if got := decode(t, w)["detail"]; got != `identifier must be a non-negative integer, got "abc"` {
		t.Errorf("Expected identifier detail, got %v", got)
	}
}

func TestPostComment_Created(t *testing.T) {
	router, m := setupTestRouter()
	m.comment.InsertFunc = func(ctx context.Context, rawArticleID string, payload map[string]interface{}) (*models.Comment, error) {
		return &models.Comment{CommentID: 19, ArticleID: 1, Author: "butter_bridge", Body: "hi"}, nil
	}

	w := doRequest(router, "POST", "/api/articles/1/comments", []byte(`{"username":"butter_bridge","body":"hi"}`))
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", w.Code)
	}

	comment := decode(t, w)["comment"].(map[string]interface{})
	if comment["comment_id"].(float64) != 19 {
		t.Errorf("Expected comment_id 19, got %v", comment["comment_id"])
	}
	if m.comment.LastPayload["username"] != "butter_bridge" {
		t.Errorf("Expected payload to reach the service, got %v", m.comment.LastPayload)
	}
}

func TestPostComment_EmptyBody(t *testing.T) {
	router, m := setupTestRouter()
	m.comment.InsertFunc = func(ctx context.Context, rawArticleID string, payload map[string]interface{}) (*models.Comment, error) {
		if len(payload) != 0 {
			t.Errorf("Expected empty payload, got %v", payload)
		}
		return nil, apperr.InvalidPayload("body is required and must not be blank")
	}

	req := httptest.NewRequest("POST", "/api/articles/1/comments", http.NoBody)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestDeleteComment_NoContent(t *testing.T) {
	router, _ := setupTestRouter()

	w := doRequest(router, "DELETE", "/api/comments/1", nil)
	if w.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Errorf("Expected empty body, got %q", w.Body.String())
	}
}

func TestCORSPreflight(t *testing.T) {
	router, _ := setupTestRouter()

	req := httptest.NewRequest("OPTIONS", "/api/articles/1", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "PATCH")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("Expected wildcard origin, got %q", w.Header().Get("Access-Control-Allow-Origin"))
	}
}
