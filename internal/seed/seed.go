// Package seed loads the YAML fixture that populates a fresh database.
package seed

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ZeroSibe/nc-news/internal/database"
	"github.com/ZeroSibe/nc-news/internal/models"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Fixture is the on-disk seed document
type Fixture struct {
	Topics   []models.Topic `yaml:"topics"`
	Users    []models.User  `yaml:"users"`
	Articles []Article      `yaml:"articles"`
	Comments []Comment      `yaml:"comments"`
}

// Article is a seed article with an explicit id
type Article struct {
	ArticleID     int64     `yaml:"article_id" db:"article_id"`
	Title         string    `yaml:"title" db:"title"`
	Topic         string    `yaml:"topic" db:"topic"`
	Author        string    `yaml:"author" db:"author"`
	Body          string    `yaml:"body" db:"body"`
	CreatedAt     time.Time `yaml:"created_at" db:"created_at"`
	Votes         int       `yaml:"votes" db:"votes"`
	ArticleImgURL string    `yaml:"article_img_url" db:"article_img_url"`
}

// Comment is a seed comment with an explicit id
type Comment struct {
	CommentID int64     `yaml:"comment_id" db:"comment_id"`
	ArticleID int64     `yaml:"article_id" db:"article_id"`
	Author    string    `yaml:"author" db:"author"`
	Body      string    `yaml:"body" db:"body"`
	Votes     int       `yaml:"votes" db:"votes"`
	CreatedAt time.Time `yaml:"created_at" db:"created_at"`
}

// Result reports how many rows of each kind were written
type Result struct {
	Topics   int
	Users    int
	Articles int
	Comments int
}

// Load reads and validates a fixture file
func Load(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a fixture document and checks its references
func Parse(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks that every article and comment points at rows defined in the fixture
func (f *Fixture) Validate() error {
	topics := make(map[string]bool, len(f.Topics))
	for _, t := range f.Topics {
		if t.Slug == "" {
			return fmt.Errorf("topic with empty slug")
		}
		topics[t.Slug] = true
	}
	users := make(map[string]bool, len(f.Users))
	for _, u := range f.Users {
		if u.Username == "" {
			return fmt.Errorf("user with empty username")
		}
		users[u.Username] = true
	}

	articles := make(map[int64]bool, len(f.Articles))
	for _, a := range f.Articles {
		if a.ArticleID <= 0 {
			return fmt.Errorf("article %q has no article_id", a.Title)
		}
		if articles[a.ArticleID] {
			return fmt.Errorf("duplicate article_id %d", a.ArticleID)
		}
		if !topics[a.Topic] {
			return fmt.Errorf("article %d references unknown topic %q", a.ArticleID, a.Topic)
		}
		if !users[a.Author] {
			return fmt.Errorf("article %d references unknown author %q", a.ArticleID, a.Author)
		}
		articles[a.ArticleID] = true
	}

	comments := make(map[int64]bool, len(f.Comments))
	for _, c := range f.Comments {
		if c.CommentID <= 0 {
			return fmt.Errorf("comment on article %d has no comment_id", c.ArticleID)
		}
		if comments[c.CommentID] {
			return fmt.Errorf("duplicate comment_id %d", c.CommentID)
		}
		if !articles[c.ArticleID] {
			return fmt.Errorf("comment %d references unknown article %d", c.CommentID, c.ArticleID)
		}
		if !users[c.Author] {
			return fmt.Errorf("comment %d references unknown author %q", c.CommentID, c.Author)
		}
		comments[c.CommentID] = true
	}
	return nil
}

// Seeder replaces the database contents with a fixture
type Seeder struct {
	db  *database.DB
	log zerolog.Logger
}

// New creates a seeder for the given connection
func New(db *database.DB, log zerolog.Logger) *Seeder {
	return &Seeder{
		db:  db,
		log: log.With().Str("component", "seed").Logger(),
	}
}

// Run empties every table and inserts the fixture in a single transaction
func (s *Seeder) Run(ctx context.Context, f *Fixture) (*Result, error) {
	start := time.Now()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.reset(ctx, tx); err != nil {
		return nil, err
	}

	for _, t := range f.Topics {
		if _, err := tx.ExecContext(ctx, tx.Rebind(
			"INSERT INTO topics (slug, description) VALUES (?, ?)"),
			t.Slug, t.Description,
		); err != nil {
			return nil, fmt.Errorf("failed to insert topic %q: %w", t.Slug, err)
		}
	}

	for _, u := range f.Users {
		if _, err := tx.ExecContext(ctx, tx.Rebind(
			"INSERT INTO users (username, name, avatar_url) VALUES (?, ?, ?)"),
			u.Username, u.Name, u.AvatarURL,
		); err != nil {
			return nil, fmt.Errorf("failed to insert user %q: %w", u.Username, err)
		}
	}

	for _, a := range f.Articles {
		if a.ArticleImgURL == "" {
			a.ArticleImgURL = models.DefaultArticleImgURL
		}
		a.CreatedAt = a.CreatedAt.UTC()
		if _, err := tx.NamedExecContext(ctx, `
			INSERT INTO articles (article_id, title, topic, author, body, created_at, votes, article_img_url)
			VALUES (:article_id, :title, :topic, :author, :body, :created_at, :votes, :article_img_url)`, a,
		); err != nil {
			return nil, fmt.Errorf("failed to insert article %d: %w", a.ArticleID, err)
		}
	}

	for _, c := range f.Comments {
		c.CreatedAt = c.CreatedAt.UTC()
		if _, err := tx.NamedExecContext(ctx, `
			INSERT INTO comments (comment_id, article_id, author, body, votes, created_at)
			VALUES (:comment_id, :article_id, :author, :body, :votes, :created_at)`, c,
		); err != nil {
			return nil, fmt.Errorf("failed to insert comment %d: %w", c.CommentID, err)
		}
	}

	if err := s.syncSequences(ctx, tx); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit seed transaction: %w", err)
	}

	result := &Result{
		Topics:   len(f.Topics),
		Users:    len(f.Users),
		Articles: len(f.Articles),
		Comments: len(f.Comments),
	}

	s.log.Info().
		Int("topics", result.Topics).
		Int("users", result.Users).
		Int("articles", result.Articles).
		Int("comments", result.Comments).
		Dur("duration", time.Since(start)).
		Msg("Database seeded")

	return result, nil
}

func (s *Seeder) reset(ctx context.Context, tx *sqlx.Tx) error {
	if !s.db.IsSQLite() {
		if _, err := tx.ExecContext(ctx, "TRUNCATE comments, articles, users, topics RESTART IDENTITY CASCADE"); err != nil {
			return fmt.Errorf("failed to truncate tables: %w", err)
		}
		return nil
	}

	// children first so foreign keys hold at every step
	for _, table := range []string{"comments", "articles", "users", "topics"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM sqlite_sequence"); err != nil {
		return fmt.Errorf("failed to reset sequences: %w", err)
	}
	return nil
}

// syncSequences moves serial counters past the explicit ids written by the fixture.
// sqlite AUTOINCREMENT tracks the maximum on its own.
func (s *Seeder) syncSequences(ctx context.Context, tx *sqlx.Tx) error {
	if s.db.IsSQLite() {
		return nil
	}
	for _, seq := range []struct{ table, column string }{
		{"articles", "article_id"},
		{"comments", "comment_id"},
	} {
		query := fmt.Sprintf(
			"SELECT setval(pg_get_serial_sequence('%[1]s', '%[2]s'), COALESCE(MAX(%[2]s), 0) + 1, false) FROM %[1]s",
			seq.table, seq.column,
		)
		if _, err := tx.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to sync %s sequence: %w", seq.table, err)
		}
	}
	return nil
}
