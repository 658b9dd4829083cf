package mocks

import (
	"context"

	"github.com/ZeroSibe/nc-news/internal/models"
	"github.com/ZeroSibe/nc-news/internal/service"
)

// MockTopicService is a mock implementation of TopicService
type MockTopicService struct {
	ListFunc   func(ctx context.Context, params map[string]string) ([]*models.Topic, error)
	Topics     []*models.Topic
	LastParams map[string]string
}

// Verify interface compliance
var _ service.TopicService = (*MockTopicService)(nil)

func NewMockTopicService() *MockTopicService {
	return &MockTopicService{Topics: []*models.Topic{}}
}

func (m *MockTopicService) ListTopics(ctx context.Context, params map[string]string) ([]*models.Topic, error) {
	m.LastParams = params
	if m.ListFunc != nil {
		return m.ListFunc(ctx, params)
	}
	return m.Topics, nil
}

func (m *MockTopicService) TopicExists(ctx context.Context, slug string) (bool, error) {
	for _, t := range m.Topics {
		if t.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

// MockArticleService is a mock implementation of ArticleService
type MockArticleService struct {
	ListFunc   func(ctx context.Context, params map[string]string) ([]*models.Article, error)
	GetFunc    func(ctx context.Context, rawID string) (*models.Article, error)
	VoteFunc   func(ctx context.Context, rawID string, payload map[string]interface{}) (*models.Article, error)
	LastParams map[string]string
}

// Verify interface compliance
var _ service.ArticleService = (*MockArticleService)(nil)

func NewMockArticleService() *MockArticleService {
	return &MockArticleService{}
}

func (m *MockArticleService) ListArticles(ctx context.Context, params map[string]string) ([]*models.Article, error) {
	m.LastParams = params
	if m.ListFunc != nil {
		return m.ListFunc(ctx, params)
	}
	return []*models.Article{}, nil
}

func (m *MockArticleService) GetArticle(ctx context.Context, rawID string) (*models.Article, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, rawID)
	}
	return nil, nil
}

func (m *MockArticleService) IncrementVotes(ctx context.Context, rawID string, payload map[string]interface{}) (*models.Article, error) {
	if m.VoteFunc != nil {
		return m.VoteFunc(ctx, rawID, payload)
	}
	return nil, nil
}

// MockCommentService is a mock implementation of CommentService
type MockCommentService struct {
	ListFunc    func(ctx context.Context, rawArticleID string) ([]*models.Comment, error)
	InsertFunc  func(ctx context.Context, rawArticleID string, payload map[string]interface{}) (*models.Comment, error)
	DeleteFunc  func(ctx context.Context, rawCommentID string) error
	LastPayload map[string]interface{}
}

// Verify interface compliance
var _ service.CommentService = (*MockCommentService)(nil)

func NewMockCommentService() *MockCommentService {
	return &MockCommentService{}
}

func (m *MockCommentService) ListComments(ctx context.Context, rawArticleID string) ([]*models.Comment, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, rawArticleID)
	}
	return []*models.Comment{}, nil
}

func (m *MockCommentService) InsertComment(ctx context.Context, rawArticleID string, payload map[string]interface{}) (*models.Comment, error) {
	m.LastPayload = payload
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, rawArticleID, payload)
	}
	return nil, nil
}

func (m *MockCommentService) DeleteComment(ctx context.Context, rawCommentID string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, rawCommentID)
	}
	return nil
}

// MockUserService is a mock implementation of UserService
type MockUserService struct {
	Users []*models.User
	Err   error
}

// Verify interface compliance
var _ service.UserService = (*MockUserService)(nil)

func NewMockUserService() *MockUserService {
	return &MockUserService{Users: []*models.User{}}
}

func (m *MockUserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return m.Users, m.Err
}

func (m *MockUserService) GetUser(ctx context.Context, username string) (*models.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, u := range m.Users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

// MockStatsService is a mock implementation of StatsService
type MockStatsService struct {
	CountsMap map[string]int
	Err       error
}

// Verify interface compliance
var _ service.StatsService = (*MockStatsService)(nil)

func NewMockStatsService() *MockStatsService {
	return &MockStatsService{CountsMap: make(map[string]int)}
}

func (m *MockStatsService) GetCount(ctx context.Context, resource string) (int, error) {
	return m.CountsMap[resource], m.Err
}

func (m *MockStatsService) Counts(ctx context.Context) (map[string]int, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.CountsMap, nil
}
