package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ZeroSibe/nc-news/internal/models"
	"github.com/ZeroSibe/nc-news/internal/repository"
)

// Verify interface compliance
var (
	_ repository.TopicRepository   = (*MockTopicRepository)(nil)
	_ repository.UserRepository    = (*MockUserRepository)(nil)
	_ repository.ArticleRepository = (*MockArticleRepository)(nil)
	_ repository.CommentRepository = (*MockCommentRepository)(nil)
)

// MockTopicRepository is a mock implementation of TopicRepository
type MockTopicRepository struct {
	Topics   map[string]*models.Topic
	Err      error
	GetCalls int
}

func NewMockTopicRepository() *MockTopicRepository {
	return &MockTopicRepository{Topics: make(map[string]*models.Topic)}
}

func (m *MockTopicRepository) Add(topics ...*models.Topic) {
	for _, t := range topics {
		m.Topics[t.Slug] = t
	}
}

func (m *MockTopicRepository) List(ctx context.Context) ([]*models.Topic, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	topics := make([]*models.Topic, 0, len(m.Topics))
	for _, t := range m.Topics {
		topics = append(topics, t)
	}
	sort.Slice(topics, func(i, j int) bool { return topics[i].Slug < topics[j].Slug })
	return topics, nil
}

func (m *MockTopicRepository) GetBySlug(ctx context.Context, slug string) (*models.Topic, error) {
	m.GetCalls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Topics[slug], nil
}

func (m *MockTopicRepository) Count(ctx context.Context) (int, error) {
	return len(m.Topics), m.Err
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	Users map[string]*models.User
	Err   error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{Users: make(map[string]*models.User)}
}

func (m *MockUserRepository) Add(users ...*models.User) {
	for _, u := range users {
		m.Users[u.Username] = u
	}
}

func (m *MockUserRepository) List(ctx context.Context) ([]*models.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	users := make([]*models.User, 0, len(m.Users))
	for _, u := range m.Users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Users[username], nil
}

func (m *MockUserRepository) Exists(ctx context.Context, username string) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	_, exists := m.Users[username]
	return exists, nil
}

func (m *MockUserRepository) Count(ctx context.Context) (int, error) {
	return len(m.Users), m.Err
}

// MockArticleRepository is a mock implementation of ArticleRepository.
// CommentCount is not derived; tests set it on the stored record.
type MockArticleRepository struct {
	mu         sync.Mutex
	Articles   map[int64]*models.Article
	Err        error
	ListCalls  int
	LastFilter models.ArticleFilter
	VoteCalls  int
}

func NewMockArticleRepository() *MockArticleRepository {
	return &MockArticleRepository{Articles: make(map[int64]*models.Article)}
}

func (m *MockArticleRepository) Add(articles ...*models.Article) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range articles {
		m.Articles[a.ArticleID] = a
	}
}

func (m *MockArticleRepository) List(ctx context.Context, filter models.ArticleFilter) ([]*models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListCalls++
	m.LastFilter = filter
	if m.Err != nil {
		return nil, m.Err
	}

	articles := []*models.Article{}
	for _, a := range m.Articles {
		if filter.Topic != "" && a.Topic != filter.Topic {
			continue
		}
		row := *a
		row.Body = ""
		articles = append(articles, &row)
	}
	sort.Slice(articles, func(i, j int) bool { return articles[i].ArticleID < articles[j].ArticleID })
	return articles, nil
}

func (m *MockArticleRepository) GetByID(ctx context.Context, id int64) (*models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	a, ok := m.Articles[id]
	if !ok {
		return nil, nil
	}
	copied := *a
	return &copied, nil
}

func (m *MockArticleRepository) Exists(ctx context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return false, m.Err
	}
	_, exists := m.Articles[id]
	return exists, nil
}

func (m *MockArticleRepository) IncrementVotes(ctx context.Context, id int64, delta int) (*models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.VoteCalls++
	if m.Err != nil {
		return nil, m.Err
	}
	a, ok := m.Articles[id]
	if !ok {
		return nil, nil
	}
	a.Votes += delta
	copied := *a
	return &copied, nil
}

func (m *MockArticleRepository) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Articles), m.Err
}

// MockCommentRepository is a mock implementation of CommentRepository
type MockCommentRepository struct {
	mu          sync.Mutex
	Comments    map[int64]*models.Comment
	NextID      int64
	Err         error
	CreateCalls int
	DeleteCalls int
}

func NewMockCommentRepository() *MockCommentRepository {
	return &MockCommentRepository{
		Comments: make(map[int64]*models.Comment),
		NextID:   1,
	}
}

func (m *MockCommentRepository) Add(comments ...*models.Comment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range comments {
		m.Comments[c.CommentID] = c
		if c.CommentID >= m.NextID {
			m.NextID = c.CommentID + 1
		}
	}
}

func (m *MockCommentRepository) ListByArticle(ctx context.Context, articleID int64) ([]*models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	comments := []*models.Comment{}
	for _, c := range m.Comments {
		if c.ArticleID == articleID {
			comments = append(comments, c)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		if !comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].CreatedAt.After(comments[j].CreatedAt)
		}
		return comments[i].CommentID < comments[j].CommentID
	})
	return comments, nil
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Comments[id], nil
}

func (m *MockCommentRepository) Create(ctx context.Context, articleID int64, author, body string) (*models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls++
	if m.Err != nil {
		return nil, m.Err
	}
	c := &models.Comment{
		CommentID: m.NextID,
		ArticleID: articleID,
		Author:    author,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}
	m.Comments[c.CommentID] = c
	m.NextID++
	return c, nil
}

func (m *MockCommentRepository) Delete(ctx context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalls++
	if m.Err != nil {
		return false, m.Err
	}
	if _, ok := m.Comments[id]; !ok {
		return false, nil
	}
	delete(m.Comments, id)
	return true, nil
}

func (m *MockCommentRepository) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Comments), m.Err
}
