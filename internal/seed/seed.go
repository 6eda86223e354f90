// Package seed loads the bundled development dataset into the store.
package seed

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/emlips/nc-news/internal/models"
	"github.com/emlips/nc-news/internal/repository"
	"github.com/rs/zerolog"
)

//go:embed data/*.json
var dataFS embed.FS

// Load parses the embedded development dataset
func Load() (*models.Dataset, error) {
	data := &models.Dataset{}
	files := []struct {
		name string
		dest interface{}
	}{
		{"data/topics.json", &data.Topics},
		{"data/users.json", &data.Users},
		{"data/articles.json", &data.Articles},
		{"data/comments.json", &data.Comments},
	}

	for _, f := range files {
		raw, err := dataFS.ReadFile(f.name)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", f.name, err)
		}
		if err := json.Unmarshal(raw, f.dest); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", f.name, err)
		}
	}

	return data, nil
}

// Seeder replaces the contents of every table with a dataset
type Seeder struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

// New creates a Seeder
func New(repos *repository.Repositories, log zerolog.Logger) *Seeder {
	return &Seeder{
		repos: repos,
		log:   log.With().Str("component", "seed").Logger(),
	}
}

// Run truncates all tables, restarting identities, and loads data in one
// transaction. On failure the previous contents remain.
func (s *Seeder) Run(ctx context.Context, data *models.Dataset) error {
	if err := s.repos.Dataset.Replace(ctx, data); err != nil {
		return fmt.Errorf("failed to seed database: %w", err)
	}

	s.log.Info().
		Int("topics", len(data.Topics)).
		Int("users", len(data.Users)).
		Int("articles", len(data.Articles)).
		Int("comments", len(data.Comments)).
		Msg("Database seeded")
	return nil
}
