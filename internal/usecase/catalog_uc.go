package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"telegram-movie-bot/internal/domain"
	"telegram-movie-bot/internal/domain/model"
	"telegram-movie-bot/internal/domain/ports/repository"
	"telegram-movie-bot/internal/domain/query"
	"telegram-movie-bot/internal/infra/logging"
	"telegram-movie-bot/internal/infra/metrics"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ CatalogUseCase = (*catalogUC)(nil)

// SearchResult carries the resolved query alongside its matches so callers
// can report which predicate was applied.
type SearchResult struct {
	Query  query.Query
	Movies []*model.Movie
}

// CatalogUseCase exposes read operations over the movie catalog.
type CatalogUseCase interface {
	Search(ctx context.Context, text string) (*SearchResult, error)
	FindByTitle(ctx context.Context, title string) (*model.Movie, error)
	Resolve(ctx context.Context, title string) (*model.Movie, error)
	Recommend(ctx context.Context, tgID int64, limit int) ([]*model.Movie, error)
	Genres(ctx context.Context) ([]string, error)
}

type catalogUC struct {
	catalog repository.CatalogRepository
	users   repository.UserStateRepository
	log     *zerolog.Logger
}

func NewCatalogUseCase(catalog repository.CatalogRepository, users repository.UserStateRepository, logger *zerolog.Logger) *catalogUC {
	return &catalogUC{
		catalog: catalog,
		users:   users,
		log:     logger,
	}
}

func (c *catalogUC) Search(ctx context.Context, text string) (*SearchResult, error) {
	defer logging.TraceDuration(c.log, "CatalogUC.Search")()

	q, err := query.Parse(text)
	if err != nil {
		return nil, err
	}
	all, err := c.catalog.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	movies := query.Filter(all, q)
	metrics.ObserveSearch(q.Kind.String(), len(movies))
	return &SearchResult{Query: q, Movies: movies}, nil
}

func (c *catalogUC) FindByTitle(ctx context.Context, title string) (*model.Movie, error) {
	defer logging.TraceDuration(c.log, "CatalogUC.FindByTitle")()
	return c.catalog.FindByTitle(ctx, title)
}

// Resolve looks a title up for typed commands: an exact match wins, otherwise
// the first case-insensitive match.
func (c *catalogUC) Resolve(ctx context.Context, title string) (*model.Movie, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, domain.ErrInvalidArgument
	}
	m, err := c.catalog.FindByTitle(ctx, title)
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	all, err := c.catalog.All(ctx)
	if err != nil {
		return nil, err
	}
	for _, m := range all {
		if strings.EqualFold(m.Title, title) {
			return m, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Recommend picks unwatched movies in the user's preferred genre, then
// unwatched trending movies, then anything unwatched.
func (c *catalogUC) Recommend(ctx context.Context, tgID int64, limit int) ([]*model.Movie, error) {
	defer logging.TraceDuration(c.log, "CatalogUC.Recommend")()
	if limit <= 0 {
		limit = 1
	}

	profile, err := c.users.Profile(ctx, tgID)
	if err != nil {
		return nil, err
	}
	all, err := c.catalog.All(ctx)
	if err != nil {
		return nil, err
	}

	picks := make([]*model.Movie, 0, limit)
	seen := map[*model.Movie]bool{}
	take := func(pred func(m *model.Movie) bool) {
		for _, m := range all {
			if len(picks) >= limit {
				return
			}
			if seen[m] || profile.Watched(m.Title) || !pred(m) {
				continue
			}
			seen[m] = true
			picks = append(picks, m)
		}
	}
	if profile.Preference != "" {
		take(func(m *model.Movie) bool { return m.HasGenre(profile.Preference) })
	}
	take(func(m *model.Movie) bool { return m.Trending })
	take(func(m *model.Movie) bool { return true })

	if len(picks) == 0 {
		return nil, domain.ErrNotFound
	}
	return picks, nil
}

// Genres lists distinct genre labels in first-seen catalog order.
func (c *catalogUC) Genres(ctx context.Context) ([]string, error) {
	all, err := c.catalog.All(ctx)
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	var out []string
	for _, m := range all {
		for _, g := range m.Genres {
			if !seen[g] {
				seen[g] = true
				out = append(out, g)
			}
		}
	}
	return out, nil
}
