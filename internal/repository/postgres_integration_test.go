//go:build integration
// +build integration

package repository_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ZeroSibe/nc-news/internal/apperr"
	"github.com/ZeroSibe/nc-news/internal/config"
	"github.com/ZeroSibe/nc-news/internal/database"
	"github.com/ZeroSibe/nc-news/internal/models"
	"github.com/ZeroSibe/nc-news/internal/repository"
	"github.com/ZeroSibe/nc-news/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupPostgres starts a PostgreSQL container and returns its connection string
func setupPostgres(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:alpine",
		postgres.WithDatabase("nc_news_test"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("Failed to get connection string: %v", err)
	}
	return connStr
}

func TestPostgres_Repositories(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	connStr := setupPostgres(t)

	for _, driver := range []string{config.DriverPostgres, config.DriverPgx} {
		t.Run(driver, func(t *testing.T) {
			cfg := &config.DatabaseConfig{
				Driver:       driver,
				URL:          connStr,
				MaxOpenConns: 10,
				MaxIdleConns: 2,
				MaxLifetime:  time.Minute,
			}
			db, err := database.New(cfg, zerolog.Nop())
			require.NoError(t, err)
			t.Cleanup(func() { db.Close() })

			require.NoError(t, db.RunMigrations())
			testutil.Seed(t, db)

			runContract(t, repository.New(db))
		})
	}
}

func runContract(t *testing.T, repos *repository.Repositories) {
	ctx := context.Background()

	articles, err := repos.Article.List(ctx, models.DefaultArticleFilter())
	require.NoError(t, err)
	require.Len(t, articles, 13)
	assert.Equal(t, int64(3), articles[0].ArticleID)

	for _, column := range models.ValidSortColumns {
		for _, order := range models.ValidOrders {
			_, err := repos.Article.List(ctx, models.ArticleFilter{SortBy: column, Order: order})
			require.NoError(t, err, "%s %s", column, order)
		}
	}

	paper, err := repos.Article.List(ctx, models.ArticleFilter{SortBy: "votes", Order: "asc", Topic: "paper"})
	require.NoError(t, err)
	assert.Empty(t, paper)

	article, err := repos.Article.GetByID(ctx, 2)
	require.NoError(t, err)
	require.NotNil(t, article)
	assert.Equal(t, 0, article.CommentCount)

	article, err = repos.Article.IncrementVotes(ctx, 1, -1)
	require.NoError(t, err)
	assert.Equal(t, 99, article.Votes)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = repos.Article.IncrementVotes(ctx, 1, -1)
		}()
		go func() {
			defer wg.Done()
			_, _ = repos.Article.IncrementVotes(ctx, 1, 1)
		}()
	}
	wg.Wait()

	article, err = repos.Article.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 99, article.Votes)
	assert.Equal(t, 11, article.CommentCount)

	comments, err := repos.Comment.ListByArticle(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, comments, 11)

	comment, err := repos.Comment.Create(ctx, 2, "lurker", "hello from postgres")
	require.NoError(t, err)
	assert.Equal(t, int64(19), comment.CommentID)
	assert.Equal(t, 0, comment.Votes)

	_, err = repos.Comment.Create(ctx, 2, "nobody", "hello")
	require.Error(t, err)
	assert.Equal(t, apperr.KindStorageFailure, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "code 23503")

	deleted, err := repos.Comment.Delete(ctx, comment.CommentID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repos.Comment.Delete(ctx, comment.CommentID)
	require.NoError(t, err)
	assert.False(t, deleted)

	// ids past the 32-bit range are valid lookups that match nothing
	const hugeID = int64(99999999999)

	article, err = repos.Article.GetByID(ctx, hugeID)
	require.NoError(t, err)
	assert.Nil(t, article)

	exists, err := repos.Article.Exists(ctx, hugeID)
	require.NoError(t, err)
	assert.False(t, exists)

	article, err = repos.Article.IncrementVotes(ctx, hugeID, 1)
	require.NoError(t, err)
	assert.Nil(t, article)

	comments, err = repos.Comment.ListByArticle(ctx, hugeID)
	require.NoError(t, err)
	assert.Empty(t, comments)

	deleted, err = repos.Comment.Delete(ctx, hugeID)
	require.NoError(t, err)
	assert.False(t, deleted)
}
