package application

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"telegram-movie-bot/internal/domain"
	"telegram-movie-bot/internal/domain/model"
	"telegram-movie-bot/internal/usecase"
)

// BotFacade composes usecases into high-level bot commands.
// Methods return ready-to-send localized text; expected failures (unknown
// title, bad arguments) become a notice and only unexpected errors are
// returned to the adapter.
type BotFacade struct {
	CatalogUC usecase.CatalogUseCase
	UserUC    usecase.UserUseCase
	RepostUC  usecase.RepostUseCase

	tr Translator
}

func NewBotFacade(
	catalogUC usecase.CatalogUseCase,
	userUC usecase.UserUseCase,
	repostUC usecase.RepostUseCase,
	tr Translator,
) *BotFacade {
	return &BotFacade{
		CatalogUC: catalogUC,
		UserUC:    userUC,
		RepostUC:  repostUC,
		tr:        tr,
	}
}

// HandleStart greets the user by first name, falling back to username.
func (b *BotFacade) HandleStart(firstName, username string) string {
	name := strings.TrimSpace(firstName)
	if name == "" {
		name = strings.TrimSpace(username)
	}
	if name == "" {
		name = "👋"
	}
	return b.tr.T("start_welcome", name)
}

func (b *BotFacade) HandleHelp() string {
	return b.tr.Help()
}

func (b *BotFacade) HandleSetupProfile(ctx context.Context, tgID int64, args string) (string, error) {
	return b.setPreference(ctx, tgID, args, "setup_profile_usage", "setup_profile_done")
}

func (b *BotFacade) HandleSetPreferences(ctx context.Context, tgID int64, args string) (string, error) {
	return b.setPreference(ctx, tgID, args, "set_preferences_usage", "set_preferences_done")
}

func (b *BotFacade) setPreference(ctx context.Context, tgID int64, args, usageKey, doneKey string) (string, error) {
	genre, err := b.UserUC.SetPreference(ctx, tgID, args)
	if errors.Is(err, domain.ErrInvalidArgument) {
		return b.tr.T(usageKey), nil
	}
	if err != nil {
		return "", err
	}
	return b.tr.T(doneKey, genre), nil
}

// HandleRecommend returns the recommended movie (nil when there is none) and
// a heading. The pick is recorded in the user's watch history so the next
// call suggests something else.
func (b *BotFacade) HandleRecommend(ctx context.Context, tgID int64) (*model.Movie, string, error) {
	picks, err := b.CatalogUC.Recommend(ctx, tgID, 1)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, b.tr.T("recommend_none"), nil
	}
	if err != nil {
		return nil, "", err
	}
	m := picks[0]
	if err := b.UserUC.RecordView(ctx, tgID, m.Title); err != nil {
		return nil, "", fmt.Errorf("record view: %w", err)
	}
	return m, b.tr.T("recommend_header"), nil
}

func (b *BotFacade) HandleAddFavorite(ctx context.Context, tgID int64, args string) (string, error) {
	title := strings.TrimSpace(args)
	if title == "" {
		return b.tr.T("add_favorite_usage"), nil
	}
	movie, added, err := b.UserUC.AddFavorite(ctx, tgID, title)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return b.tr.T("not_found", title), nil
	case errors.Is(err, domain.ErrInvalidArgument):
		return b.tr.T("add_favorite_usage"), nil
	case err != nil:
		return "", err
	case !added:
		return b.tr.T("add_favorite_exists", movie.Title), nil
	}
	return b.tr.T("add_favorite_done", movie.Title), nil
}

// HandleRateMovie expects "<title words...> <score>"; the last field is the
// score so titles may contain spaces.
func (b *BotFacade) HandleRateMovie(ctx context.Context, tgID int64, args string) (string, error) {
	usage := b.tr.T("rate_usage", usecase.MinScore, usecase.MaxScore)
	fields := strings.Fields(args)
	if len(fields) < 2 {
		return usage, nil
	}
	score, err := strconv.Atoi(fields[len(fields)-1])
	if err != nil {
		return usage, nil
	}
	title := strings.Join(fields[:len(fields)-1], " ")

	movie, err := b.UserUC.RateMovie(ctx, tgID, title, score)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return b.tr.T("not_found", title), nil
	case errors.Is(err, domain.ErrInvalidArgument):
		return usage, nil
	case err != nil:
		return "", err
	}
	if err := b.UserUC.RecordView(ctx, tgID, movie.Title); err != nil {
		return "", fmt.Errorf("record view: %w", err)
	}
	return b.tr.T("rate_done", movie.Title, score), nil
}

func (b *BotFacade) HandleFavorites(ctx context.Context, tgID int64) (string, error) {
	favs, err := b.UserUC.Favorites(ctx, tgID)
	if err != nil {
		return "", err
	}
	return b.titleList(favs, "favorites_header", "favorites_empty"), nil
}

func (b *BotFacade) HandleWatchHistory(ctx context.Context, tgID int64) (string, error) {
	hist, err := b.UserUC.WatchHistory(ctx, tgID)
	if err != nil {
		return "", err
	}
	return b.titleList(hist, "history_header", "history_empty"), nil
}

func (b *BotFacade) titleList(titles []string, headerKey, emptyKey string) string {
	if len(titles) == 0 {
		return b.tr.T(emptyKey)
	}
	var sb strings.Builder
	sb.WriteString(b.tr.T(headerKey))
	for i, t := range titles {
		sb.WriteString(fmt.Sprintf("\n%d. %s", i+1, t))
	}
	return sb.String()
}

func (b *BotFacade) HandleFeedback(ctx context.Context, tgID int64, args string) (string, error) {
	_, err := b.UserUC.SubmitFeedback(ctx, tgID, args)
	if errors.Is(err, domain.ErrInvalidArgument) {
		return b.tr.T("feedback_usage"), nil
	}
	if err != nil {
		return "", err
	}
	// the entry is already stored; a failed count only changes the wording
	sent := 1
	if list, err := b.UserUC.Feedback(ctx, tgID); err == nil {
		sent = len(list)
	}
	return b.tr.T("feedback_thanks", sent), nil
}

// HandleRepost publishes the exact title to the channel and returns the
// acknowledgement for the person who pressed the button.
func (b *BotFacade) HandleRepost(ctx context.Context, title string) (string, error) {
	movie, err := b.RepostUC.Repost(ctx, title)
	if errors.Is(err, domain.ErrNotFound) {
		return b.tr.T("not_found", title), nil
	}
	if err != nil {
		return "", err
	}
	return b.tr.T("repost_done", movie.Title), nil
}

// HandleFavoriteButton is the callback twin of /add_favorite and answers with
// a short toast text.
func (b *BotFacade) HandleFavoriteButton(ctx context.Context, tgID int64, title string) (string, error) {
	_, added, err := b.UserUC.AddFavorite(ctx, tgID, title)
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrInvalidArgument):
		return b.tr.T("not_found", title), nil
	case err != nil:
		return "", err
	case !added:
		return b.tr.T("fav_exists_cb"), nil
	}
	return b.tr.T("fav_added_cb"), nil
}

// Browse runs a menu query ("trending", "genre:Drama", ...) through the same
// filter as inline search.
func (b *BotFacade) Browse(ctx context.Context, text string) ([]*model.Movie, error) {
	res, err := b.CatalogUC.Search(ctx, text)
	if err != nil {
		return nil, err
	}
	return res.Movies, nil
}

func (b *BotFacade) Genres(ctx context.Context) ([]string, error) {
	return b.CatalogUC.Genres(ctx)
}
