//go:build !integration

package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"telegram-movie-bot/internal/domain"
	"telegram-movie-bot/internal/domain/model"
	"telegram-movie-bot/internal/domain/query"
	"telegram-movie-bot/internal/usecase"
)

func titlesOf(ms []*model.Movie) []string {
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.Title)
	}
	return out
}

func TestCatalogUseCase_Search(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewCatalogUseCase(NewMockCatalogRepo(testMovies()...), NewMockUserStateRepo(), newTestLogger())

	t.Run("should apply the typed predicate in catalog order", func(t *testing.T) {
		res, err := uc.Search(ctx, "trending")
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if res.Query.Kind != query.KindTrending {
			t.Errorf("expected trending query, got %s", res.Query.Kind)
		}
		if diff := cmp.Diff([]string{"Kalki 2898 AD", "Dune Part Two"}, titlesOf(res.Movies)); diff != "" {
			t.Errorf("unexpected results (-want +got):\n%s", diff)
		}
	})

	t.Run("should fall back to title substring", func(t *testing.T) {
		res, err := uc.Search(ctx, "KALKI")
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if len(res.Movies) != 2 {
			t.Errorf("expected both Kalki records, got %v", titlesOf(res.Movies))
		}
	})

	t.Run("should surface invalid year", func(t *testing.T) {
		_, err := uc.Search(ctx, "best of next year")
		if !errors.Is(err, query.ErrInvalidYear) {
			t.Fatalf("expected ErrInvalidYear, got %v", err)
		}
	})

	t.Run("should propagate catalog failures", func(t *testing.T) {
		repo := NewMockCatalogRepo()
		repo.AllErr = errors.New("mongo down")
		broken := usecase.NewCatalogUseCase(repo, NewMockUserStateRepo(), newTestLogger())
		if _, err := broken.Search(ctx, "dune"); !errors.Is(err, repo.AllErr) {
			t.Fatalf("expected wrapped catalog error, got %v", err)
		}
	})
}

func TestCatalogUseCase_FindAndResolve(t *testing.T) {
	ctx := context.Background()
	movies := testMovies()
	uc := usecase.NewCatalogUseCase(NewMockCatalogRepo(movies...), NewMockUserStateRepo(), newTestLogger())

	m, err := uc.FindByTitle(ctx, "Kalki 2898 AD")
	if err != nil {
		t.Fatalf("FindByTitle failed: %v", err)
	}
	if m != movies[0] {
		t.Error("expected first matching record to win")
	}

	if _, err := uc.FindByTitle(ctx, "kalki 2898 ad"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected exact lookup to be case-sensitive, got %v", err)
	}

	r, err := uc.Resolve(ctx, "  stree 2 ")
	if err != nil || r.Title != "Stree 2" {
		t.Errorf("expected case-insensitive resolve, got %v, %v", r, err)
	}
	if _, err := uc.Resolve(ctx, "Nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := uc.Resolve(ctx, " "); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestCatalogUseCase_Recommend(t *testing.T) {
	ctx := context.Background()
	users := NewMockUserStateRepo()
	uc := usecase.NewCatalogUseCase(NewMockCatalogRepo(testMovies()...), users, newTestLogger())

	t.Run("should prefer the user's genre", func(t *testing.T) {
		_ = users.SetPreference(ctx, 1, "Comedy")
		got, err := uc.Recommend(ctx, 1, 2)
		if err != nil {
			t.Fatalf("Recommend failed: %v", err)
		}
		if diff := cmp.Diff([]string{"Stree 2", "3 Idiots"}, titlesOf(got)); diff != "" {
			t.Errorf("unexpected picks (-want +got):\n%s", diff)
		}
	})

	t.Run("should skip watched titles and fill with trending", func(t *testing.T) {
		_ = users.SetPreference(ctx, 2, "Comedy")
		_ = users.AppendHistory(ctx, 2, "Stree 2")
		got, err := uc.Recommend(ctx, 2, 2)
		if err != nil {
			t.Fatalf("Recommend failed: %v", err)
		}
		if diff := cmp.Diff([]string{"3 Idiots", "Kalki 2898 AD"}, titlesOf(got)); diff != "" {
			t.Errorf("unexpected picks (-want +got):\n%s", diff)
		}
	})

	t.Run("should report not found when everything is watched", func(t *testing.T) {
		for _, m := range testMovies() {
			_ = users.AppendHistory(ctx, 3, m.Title)
		}
		if _, err := uc.Recommend(ctx, 3, 1); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestCatalogUseCase_Genres(t *testing.T) {
	uc := usecase.NewCatalogUseCase(NewMockCatalogRepo(testMovies()...), NewMockUserStateRepo(), newTestLogger())
	got, err := uc.Genres(context.Background())
	if err != nil {
		t.Fatalf("Genres failed: %v", err)
	}
	want := []string{"Action", "Sci-Fi", "Comedy", "Horror", "Drama"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected genres (-want +got):\n%s", diff)
	}
}
