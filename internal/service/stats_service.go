package service

import (
	"context"
	"fmt"

	"github.com/ZeroSibe/nc-news/internal/repository"
	"github.com/rs/zerolog"
)

// Resources reported by the stats service, in display order
var Resources = []string{"topics", "users", "articles", "comments"}

// statsService is the concrete implementation of StatsService
type statsService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

// newStatsService creates a new StatsService
func newStatsService(repos *repository.Repositories, log zerolog.Logger) *statsService {
	return &statsService{
		repos: repos,
		log:   log.With().Str("service", "stats").Logger(),
	}
}

// GetCount returns count for a resource
func (s *statsService) GetCount(ctx context.Context, resource string) (int, error) {
	switch resource {
	case "topics":
		return s.repos.Topic.Count(ctx)
	case "users":
		return s.repos.User.Count(ctx)
	case "articles":
		return s.repos.Article.Count(ctx)
	case "comments":
		return s.repos.Comment.Count(ctx)
	default:
		return 0, fmt.Errorf("unknown resource: %s", resource)
	}
}

// Counts returns the row count of every resource
func (s *statsService) Counts(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int, len(Resources))
	for _, resource := range Resources {
		n, err := s.GetCount(ctx, resource)
		if err != nil {
			return nil, err
		}
		counts[resource] = n
	}
	return counts, nil
}
