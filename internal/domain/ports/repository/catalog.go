package repository

import (
	"context"

	"telegram-movie-bot/internal/domain/model"
)

// -----------------------------
// Catalog
// -----------------------------

// CatalogRepository is a read-only view of the movie catalog. All returns
// records in catalog insertion order.
type CatalogRepository interface {
	All(ctx context.Context) ([]*model.Movie, error)
	// FindByTitle returns the first record whose title equals title exactly,
	// or domain.ErrNotFound.
	FindByTitle(ctx context.Context, title string) (*model.Movie, error)
	Count(ctx context.Context) (int, error)
}
