// Package catalog holds the read-only movie catalog and the loaders that
// fill it from built-in data, a YAML file or a MongoDB collection.
package catalog

import (
	"context"
	"sync"

	"telegram-movie-bot/internal/domain"
	"telegram-movie-bot/internal/domain/model"
	"telegram-movie-bot/internal/domain/ports/repository"
)

var _ repository.CatalogRepository = (*Repo)(nil)

// Repo is an in-memory catalog. The slice is swapped wholesale by Replace and
// never mutated in place, so callers may keep the result of All.
type Repo struct {
	mu     sync.RWMutex
	movies []*model.Movie
}

func NewRepo(movies []*model.Movie) *Repo {
	return &Repo{movies: movies}
}

// Replace swaps in a freshly loaded catalog.
func (r *Repo) Replace(movies []*model.Movie) {
	r.mu.Lock()
	r.movies = movies
	r.mu.Unlock()
}

func (r *Repo) snapshot() []*model.Movie {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.movies
}

func (r *Repo) All(ctx context.Context) ([]*model.Movie, error) {
	return r.snapshot(), nil
}

func (r *Repo) FindByTitle(ctx context.Context, title string) (*model.Movie, error) {
	for _, m := range r.snapshot() {
		if m.Title == title {
			return m, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *Repo) Count(ctx context.Context) (int, error) {
	return len(r.snapshot()), nil
}
