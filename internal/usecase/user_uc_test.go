//go:build !integration

package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"telegram-movie-bot/internal/domain"
	"telegram-movie-bot/internal/usecase"
)

func newUserUC(users *MockUserStateRepo) usecase.UserUseCase {
	catalog := usecase.NewCatalogUseCase(NewMockCatalogRepo(testMovies()...), users, newTestLogger())
	return usecase.NewUserUseCase(users, catalog, newTestLogger())
}

func TestUserUseCase_SetPreference(t *testing.T) {
	ctx := context.Background()

	t.Run("should canonicalize a known genre", func(t *testing.T) {
		users := NewMockUserStateRepo()
		uc := newUserUC(users)

		got, err := uc.SetPreference(ctx, 10, "  comedy ")
		if err != nil {
			t.Fatalf("SetPreference failed: %v", err)
		}
		if got != "Comedy" {
			t.Errorf("expected catalog spelling 'Comedy', got %q", got)
		}
		p, _ := users.Profile(ctx, 10)
		if p.Preference != "Comedy" {
			t.Errorf("expected stored preference 'Comedy', got %q", p.Preference)
		}
	})

	t.Run("should keep unknown genres as typed", func(t *testing.T) {
		uc := newUserUC(NewMockUserStateRepo())
		got, err := uc.SetPreference(ctx, 10, "Western")
		if err != nil || got != "Western" {
			t.Fatalf("got %q, %v", got, err)
		}
	})

	t.Run("should reject empty genre", func(t *testing.T) {
		uc := newUserUC(NewMockUserStateRepo())
		if _, err := uc.SetPreference(ctx, 10, " "); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Fatalf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("should propagate store errors", func(t *testing.T) {
		users := NewMockUserStateRepo()
		users.WriteErr = errors.New("redis down")
		uc := newUserUC(users)
		if _, err := uc.SetPreference(ctx, 10, "Drama"); !errors.Is(err, users.WriteErr) {
			t.Fatalf("expected wrapped store error, got %v", err)
		}
	})
}

func TestUserUseCase_Favorites(t *testing.T) {
	ctx := context.Background()
	users := NewMockUserStateRepo()
	uc := newUserUC(users)

	m, added, err := uc.AddFavorite(ctx, 1, "dune part two")
	if err != nil {
		t.Fatalf("AddFavorite failed: %v", err)
	}
	if !added || m.Title != "Dune Part Two" {
		t.Errorf("expected Dune Part Two to be added, got %v added=%v", m, added)
	}
	if _, added, _ := uc.AddFavorite(ctx, 1, "Dune Part Two"); added {
		t.Error("expected duplicate favorite to be ignored")
	}
	if _, _, err := uc.AddFavorite(ctx, 1, "Unknown"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	_, _, _ = uc.AddFavorite(ctx, 1, "Stree 2")

	got, err := uc.Favorites(ctx, 1)
	if err != nil {
		t.Fatalf("Favorites failed: %v", err)
	}
	if diff := cmp.Diff([]string{"Dune Part Two", "Stree 2"}, got); diff != "" {
		t.Errorf("favorites mismatch (-want +got):\n%s", diff)
	}

	other, _ := uc.Favorites(ctx, 2)
	if len(other) != 0 {
		t.Errorf("expected favorites to be per user, got %v", other)
	}
}

func TestUserUseCase_RateMovie(t *testing.T) {
	ctx := context.Background()
	users := NewMockUserStateRepo()
	uc := newUserUC(users)

	if _, err := uc.RateMovie(ctx, 1, "Stree 2", 7); err != nil {
		t.Fatalf("RateMovie failed: %v", err)
	}
	if _, err := uc.RateMovie(ctx, 1, "Stree 2", 9); err != nil {
		t.Fatalf("RateMovie failed: %v", err)
	}
	p, _ := users.Profile(ctx, 1)
	if p.Ratings["Stree 2"] != 9 {
		t.Errorf("expected rating to be overwritten with 9, got %d", p.Ratings["Stree 2"])
	}

	for _, score := range []int{0, 11, -3} {
		if _, err := uc.RateMovie(ctx, 1, "Stree 2", score); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("score %d: expected ErrInvalidArgument, got %v", score, err)
		}
	}
	if _, err := uc.RateMovie(ctx, 1, "Missing", 5); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUserUseCase_HistoryAndFeedback(t *testing.T) {
	ctx := context.Background()
	users := NewMockUserStateRepo()
	uc := newUserUC(users)

	_ = uc.RecordView(ctx, 5, "Stree 2")
	_ = uc.RecordView(ctx, 5, "3 Idiots")
	_ = uc.RecordView(ctx, 5, "Stree 2")

	hist, err := uc.WatchHistory(ctx, 5)
	if err != nil {
		t.Fatalf("WatchHistory failed: %v", err)
	}
	if diff := cmp.Diff([]string{"Stree 2", "3 Idiots", "Stree 2"}, hist); diff != "" {
		t.Errorf("history mismatch (-want +got):\n%s", diff)
	}

	fb, err := uc.SubmitFeedback(ctx, 5, "more anime please")
	if err != nil {
		t.Fatalf("SubmitFeedback failed: %v", err)
	}
	stored, err := uc.Feedback(ctx, 5)
	if err != nil {
		t.Fatalf("Feedback failed: %v", err)
	}
	if len(stored) != 1 || stored[0].ID != fb.ID {
		t.Errorf("expected feedback to be stored, got %v", stored)
	}
	if _, err := uc.SubmitFeedback(ctx, 5, ""); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}
