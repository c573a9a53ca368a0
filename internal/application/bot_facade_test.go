//go:build !integration

package application_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"telegram-movie-bot/internal/application"
	"telegram-movie-bot/internal/domain/model"
	"telegram-movie-bot/internal/infra/catalog"
	"telegram-movie-bot/internal/infra/memory"
	"telegram-movie-bot/internal/usecase"
)

// keyTranslator renders "key" or "key:arg1,arg2" so assertions stay
// independent of locale wording.
type keyTranslator struct{}

func (keyTranslator) T(key string, args ...interface{}) string {
	if len(args) == 0 {
		return key
	}
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = fmt.Sprint(a)
	}
	return key + ":" + strings.Join(parts, ",")
}

func (keyTranslator) Help() string { return "help text" }

type countingPublisher struct {
	published []string
	err       error
}

func (p *countingPublisher) PublishCard(ctx context.Context, m *model.Movie) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, m.Title)
	return nil
}

func newFacade(t *testing.T) (*application.BotFacade, *countingPublisher) {
	t.Helper()
	logger := zerolog.New(io.Discard)
	movies := catalog.NewRepo(catalog.Seed())
	users := memory.NewUserStateRepo()
	pub := &countingPublisher{}

	catalogUC := usecase.NewCatalogUseCase(movies, users, &logger)
	userUC := usecase.NewUserUseCase(users, catalogUC, &logger)
	repostUC := usecase.NewRepostUseCase(movies, pub, &logger)
	return application.NewBotFacade(catalogUC, userUC, repostUC, keyTranslator{}), pub
}

func TestBotFacade_StartAndHelp(t *testing.T) {
	f, _ := newFacade(t)
	if got := f.HandleStart("Rafi", "rafi_bd"); got != "start_welcome:Rafi" {
		t.Errorf("unexpected greeting %q", got)
	}
	if got := f.HandleStart("", "rafi_bd"); got != "start_welcome:rafi_bd" {
		t.Errorf("expected username fallback, got %q", got)
	}
	if got := f.HandleHelp(); got != "help text" {
		t.Errorf("unexpected help %q", got)
	}
}

func TestBotFacade_Preferences(t *testing.T) {
	ctx := context.Background()
	f, _ := newFacade(t)

	tests := []struct {
		name string
		call func() (string, error)
		want string
	}{
		{"setup without genre", func() (string, error) { return f.HandleSetupProfile(ctx, 1, "  ") }, "setup_profile_usage"},
		{"setup canonicalizes genre", func() (string, error) { return f.HandleSetupProfile(ctx, 1, "sci-fi") }, "setup_profile_done:Sci-Fi"},
		{"set without genre", func() (string, error) { return f.HandleSetPreferences(ctx, 1, "") }, "set_preferences_usage"},
		{"set genre", func() (string, error) { return f.HandleSetPreferences(ctx, 1, "Drama") }, "set_preferences_done:Drama"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.call()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBotFacade_Recommend(t *testing.T) {
	ctx := context.Background()
	f, _ := newFacade(t)

	_, _ = f.HandleSetPreferences(ctx, 5, "Drama")
	m, text, err := f.HandleRecommend(ctx, 5)
	if err != nil {
		t.Fatalf("HandleRecommend failed: %v", err)
	}
	if m == nil || m.Title != "Hawa" || text != "recommend_header" {
		t.Fatalf("expected Hawa as first drama pick, got %v %q", m, text)
	}

	next, _, _ := f.HandleRecommend(ctx, 5)
	if next == nil || next.Title == "Hawa" {
		t.Errorf("expected a different movie once Hawa is in history, got %v", next)
	}

	hist, _ := f.HandleWatchHistory(ctx, 5)
	if !strings.HasPrefix(hist, "history_header\n1. Hawa") {
		t.Errorf("expected recommendation recorded in history, got %q", hist)
	}
}

func TestBotFacade_Favorites(t *testing.T) {
	ctx := context.Background()
	f, _ := newFacade(t)

	if got, _ := f.HandleFavorites(ctx, 2); got != "favorites_empty" {
		t.Errorf("expected empty notice, got %q", got)
	}
	if got, _ := f.HandleAddFavorite(ctx, 2, ""); got != "add_favorite_usage" {
		t.Errorf("expected usage, got %q", got)
	}
	if got, _ := f.HandleAddFavorite(ctx, 2, "Unknown Movie"); got != "not_found:Unknown Movie" {
		t.Errorf("expected not found, got %q", got)
	}
	if got, _ := f.HandleAddFavorite(ctx, 2, "hawa"); got != "add_favorite_done:Hawa" {
		t.Errorf("expected case-insensitive resolve, got %q", got)
	}
	if got, _ := f.HandleAddFavorite(ctx, 2, "Hawa"); got != "add_favorite_exists:Hawa" {
		t.Errorf("expected duplicate notice, got %q", got)
	}
	if got, _ := f.HandleFavoriteButton(ctx, 2, "Stree 2"); got != "fav_added_cb" {
		t.Errorf("expected button toast, got %q", got)
	}
	if got, _ := f.HandleFavoriteButton(ctx, 2, "Stree 2"); got != "fav_exists_cb" {
		t.Errorf("expected duplicate toast, got %q", got)
	}

	got, _ := f.HandleFavorites(ctx, 2)
	if got != "favorites_header\n1. Hawa\n2. Stree 2" {
		t.Errorf("unexpected list %q", got)
	}
}

func TestBotFacade_RateMovie(t *testing.T) {
	ctx := context.Background()
	f, _ := newFacade(t)

	tests := []struct {
		args string
		want string
	}{
		{"", "rate_usage:1,10"},
		{"Hawa", "rate_usage:1,10"},
		{"Hawa great", "rate_usage:1,10"},
		{"Hawa 11", "rate_usage:1,10"},
		{"Nope 5", "not_found:Nope"},
		{"Dune: Part Two 9", "rate_done:Dune: Part Two,9"},
	}
	for _, tt := range tests {
		t.Run(tt.args, func(t *testing.T) {
			got, err := f.HandleRateMovie(ctx, 3, tt.args)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBotFacade_Feedback(t *testing.T) {
	ctx := context.Background()
	f, _ := newFacade(t)
	if got, _ := f.HandleFeedback(ctx, 4, "   "); got != "feedback_usage" {
		t.Errorf("expected usage, got %q", got)
	}
	if got, _ := f.HandleFeedback(ctx, 4, "love it"); got != "feedback_thanks:1" {
		t.Errorf("expected thanks, got %q", got)
	}
	if got, _ := f.HandleFeedback(ctx, 4, "more horror"); got != "feedback_thanks:2" {
		t.Errorf("expected running count, got %q", got)
	}
	if got, _ := f.HandleFeedback(ctx, 5, "first"); got != "feedback_thanks:1" {
		t.Errorf("expected counts per user, got %q", got)
	}
}

func TestBotFacade_Repost(t *testing.T) {
	ctx := context.Background()
	f, pub := newFacade(t)

	got, err := f.HandleRepost(ctx, "Stree 2")
	if err != nil || got != "repost_done:Stree 2" {
		t.Fatalf("unexpected result %q %v", got, err)
	}
	got, err = f.HandleRepost(ctx, "stree 2")
	if err != nil || got != "not_found:stree 2" {
		t.Errorf("expected exact-match repost, got %q %v", got, err)
	}
	if len(pub.published) != 1 {
		t.Errorf("expected one publish, got %v", pub.published)
	}

	pub.err = errors.New("telegram down")
	if _, err := f.HandleRepost(ctx, "Stree 2"); err == nil {
		t.Error("expected publish error to surface")
	}
}

func TestBotFacade_Browse(t *testing.T) {
	ctx := context.Background()
	f, _ := newFacade(t)

	movies, err := f.Browse(ctx, "genre:Comedy")
	if err != nil {
		t.Fatalf("Browse failed: %v", err)
	}
	if len(movies) != 2 || movies[0].Title != "Stree 2" || movies[1].Title != "3 Idiots" {
		t.Errorf("unexpected genre results %v", movies)
	}
	genres, _ := f.Genres(ctx)
	if len(genres) == 0 || genres[0] != "Action" {
		t.Errorf("unexpected genres %v", genres)
	}
}
