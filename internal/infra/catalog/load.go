package catalog

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"telegram-movie-bot/internal/config"
	"telegram-movie-bot/internal/domain/model"
	"telegram-movie-bot/internal/infra/metrics"
)

// Load builds the catalog from the configured source.
func Load(ctx context.Context, cfg config.CatalogConfig) (*Repo, error) {
	movies, err := loadMovies(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewRepo(movies), nil
}

func loadMovies(ctx context.Context, cfg config.CatalogConfig) ([]*model.Movie, error) {
	switch cfg.Source {
	case "", "static":
		return Seed(), nil
	case "yaml":
		return LoadYAML(cfg.Path)
	case "mongo":
		return LoadMongo(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection)
	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.Source)
	}
}

// Reloader re-reads the configured source into a Repo. A failed or empty
// load keeps the current catalog.
type Reloader struct {
	cfg  config.CatalogConfig
	repo *Repo
	log  *zerolog.Logger
}

func NewReloader(cfg config.CatalogConfig, repo *Repo, logger *zerolog.Logger) *Reloader {
	return &Reloader{cfg: cfg, repo: repo, log: logger}
}

// Refresh returns the number of movies now served.
func (r *Reloader) Refresh(ctx context.Context) (int, error) {
	movies, err := loadMovies(ctx, r.cfg)
	if err != nil {
		return 0, fmt.Errorf("reload catalog: %w", err)
	}
	if len(movies) == 0 {
		return 0, fmt.Errorf("reload catalog: source %q returned no movies", r.cfg.Source)
	}
	r.repo.Replace(movies)
	metrics.SetCatalogSize(len(movies))
	r.log.Debug().Int("movies", len(movies)).Msg("catalog reloaded")
	return len(movies), nil
}
