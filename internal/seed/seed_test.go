package seed_test

import (
	"context"
	"testing"

	"github.com/ZeroSibe/nc-news/internal/seed"
	"github.com/ZeroSibe/nc-news/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_StandardFixture(t *testing.T) {
	f := testutil.LoadFixture(t)

	assert.Len(t, f.Topics, 3)
	assert.Len(t, f.Users, 4)
	assert.Len(t, f.Articles, 13)
	assert.Len(t, f.Comments, 18)
}

func TestParse_RejectsDanglingReferences(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "unknown topic",
			doc: `
topics: [{slug: mitch, description: x}]
users: [{username: u1, name: n}]
articles: [{article_id: 1, title: t, topic: dogs, author: u1, body: b}]`,
		},
		{
			name: "unknown author",
			doc: `
topics: [{slug: mitch, description: x}]
users: [{username: u1, name: n}]
articles: [{article_id: 1, title: t, topic: mitch, author: ghost, body: b}]`,
		},
		{
			name: "comment on unknown article",
			doc: `
topics: [{slug: mitch, description: x}]
users: [{username: u1, name: n}]
comments: [{comment_id: 1, article_id: 7, author: u1, body: b}]`,
		},
		{
			name: "duplicate article id",
			doc: `
topics: [{slug: mitch, description: x}]
users: [{username: u1, name: n}]
articles:
  - {article_id: 1, title: t, topic: mitch, author: u1, body: b}
  - {article_id: 1, title: t2, topic: mitch, author: u1, body: b}`,
		},
		{
			name: "missing comment id",
			doc: `
topics: [{slug: mitch, description: x}]
users: [{username: u1, name: n}]
articles: [{article_id: 1, title: t, topic: mitch, author: u1, body: b}]
comments: [{article_id: 1, author: u1, body: b}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := seed.Parse([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := seed.Parse([]byte("topics: [unclosed"))
	assert.Error(t, err)
}

func TestRun_SQLite(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	ctx := context.Background()
	f := testutil.LoadFixture(t)
	s := seed.New(db, zerolog.Nop())

	result, err := s.Run(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, 13, result.Articles)

	// seeding twice leaves the same contents
	_, err = s.Run(ctx, f)
	require.NoError(t, err)

	counts := map[string]int{"topics": 3, "users": 4, "articles": 13, "comments": 18}
	for table, want := range counts {
		var n int
		require.NoError(t, db.Get(&n, "SELECT COUNT(*) FROM "+table))
		assert.Equal(t, want, n, table)
	}

	// new rows continue after the fixture ids
	var id int64
	require.NoError(t, db.Get(&id,
		`INSERT INTO comments (body, article_id, author) VALUES ('next', 2, 'lurker') RETURNING comment_id`))
	assert.Equal(t, int64(19), id)
}

func TestRun_DefaultImage(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	f, err := seed.Parse([]byte(`
topics: [{slug: mitch, description: x}]
users: [{username: u1, name: n}]
articles: [{article_id: 1, title: t, topic: mitch, author: u1, body: b, created_at: 2020-01-01T00:00:00Z}]`))
	require.NoError(t, err)

	_, err = seed.New(db, zerolog.Nop()).Run(context.Background(), f)
	require.NoError(t, err)

	var img string
	require.NoError(t, db.Get(&img, "SELECT article_img_url FROM articles WHERE article_id = 1"))
	assert.Contains(t, img, "pexels-photo-97050")
}
