package usecase

import (
	"context"
	"fmt"
	"strings"

	"telegram-movie-bot/internal/domain"
	"telegram-movie-bot/internal/domain/model"
	"telegram-movie-bot/internal/domain/ports/repository"
	"telegram-movie-bot/internal/infra/logging"
	"telegram-movie-bot/internal/infra/metrics"

	"github.com/rs/zerolog"
)

const (
	MinScore = 1
	MaxScore = 10
)

// Compile-time check
var _ UserUseCase = (*userUC)(nil)

// UserUseCase exposes per-user preference, favorites, ratings, history and
// feedback operations used by bot flows.
type UserUseCase interface {
	Profile(ctx context.Context, tgID int64) (*model.UserProfile, error)
	SetPreference(ctx context.Context, tgID int64, genre string) (string, error)
	AddFavorite(ctx context.Context, tgID int64, title string) (*model.Movie, bool, error)
	RateMovie(ctx context.Context, tgID int64, title string, score int) (*model.Movie, error)
	Favorites(ctx context.Context, tgID int64) ([]string, error)
	WatchHistory(ctx context.Context, tgID int64) ([]string, error)
	RecordView(ctx context.Context, tgID int64, title string) error
	SubmitFeedback(ctx context.Context, tgID int64, text string) (*model.Feedback, error)
	Feedback(ctx context.Context, tgID int64) ([]*model.Feedback, error)
}

type userUC struct {
	users   repository.UserStateRepository
	catalog CatalogUseCase
	log     *zerolog.Logger
}

func NewUserUseCase(users repository.UserStateRepository, catalog CatalogUseCase, logger *zerolog.Logger) *userUC {
	return &userUC{
		users:   users,
		catalog: catalog,
		log:     logger,
	}
}

func (u *userUC) Profile(ctx context.Context, tgID int64) (*model.UserProfile, error) {
	defer logging.TraceDuration(u.log, "UserUC.Profile")()
	return u.users.Profile(ctx, tgID)
}

// SetPreference stores one genre per user. A case-insensitive match against a
// catalog genre is stored with the catalog's spelling so genre filters match.
func (u *userUC) SetPreference(ctx context.Context, tgID int64, genre string) (string, error) {
	defer logging.TraceDuration(u.log, "UserUC.SetPreference")()

	genre = strings.TrimSpace(genre)
	if genre == "" {
		return "", domain.ErrInvalidArgument
	}
	if known, err := u.catalog.Genres(ctx); err == nil {
		for _, g := range known {
			if strings.EqualFold(g, genre) {
				genre = g
				break
			}
		}
	}
	if err := u.users.SetPreference(ctx, tgID, genre); err != nil {
		return "", fmt.Errorf("set preference: %w", err)
	}
	return genre, nil
}

func (u *userUC) AddFavorite(ctx context.Context, tgID int64, title string) (*model.Movie, bool, error) {
	defer logging.TraceDuration(u.log, "UserUC.AddFavorite")()

	movie, err := u.catalog.Resolve(ctx, title)
	if err != nil {
		return nil, false, err
	}
	added, err := u.users.AddFavorite(ctx, tgID, movie.Title)
	if err != nil {
		return nil, false, fmt.Errorf("add favorite: %w", err)
	}
	return movie, added, nil
}

func (u *userUC) RateMovie(ctx context.Context, tgID int64, title string, score int) (*model.Movie, error) {
	defer logging.TraceDuration(u.log, "UserUC.RateMovie")()

	if score < MinScore || score > MaxScore {
		return nil, fmt.Errorf("%w: score must be between %d and %d", domain.ErrInvalidArgument, MinScore, MaxScore)
	}
	movie, err := u.catalog.Resolve(ctx, title)
	if err != nil {
		return nil, err
	}
	if err := u.users.SetRating(ctx, tgID, movie.Title, score); err != nil {
		return nil, fmt.Errorf("set rating: %w", err)
	}
	return movie, nil
}

func (u *userUC) Favorites(ctx context.Context, tgID int64) ([]string, error) {
	p, err := u.users.Profile(ctx, tgID)
	if err != nil {
		return nil, err
	}
	return p.Favorites, nil
}

func (u *userUC) WatchHistory(ctx context.Context, tgID int64) ([]string, error) {
	p, err := u.users.Profile(ctx, tgID)
	if err != nil {
		return nil, err
	}
	return p.History, nil
}

func (u *userUC) RecordView(ctx context.Context, tgID int64, title string) error {
	return u.users.AppendHistory(ctx, tgID, title)
}

func (u *userUC) SubmitFeedback(ctx context.Context, tgID int64, text string) (*model.Feedback, error) {
	defer logging.TraceDuration(u.log, "UserUC.SubmitFeedback")()

	fb, err := model.NewFeedback(tgID, text)
	if err != nil {
		return nil, err
	}
	if err := u.users.AddFeedback(ctx, fb); err != nil {
		return nil, fmt.Errorf("add feedback: %w", err)
	}
	metrics.IncFeedback()
	u.log.Info().Int64("tg_id", tgID).Str("feedback_id", fb.ID).Msg("feedback received")
	return fb, nil
}

// Feedback lists what the user has submitted, oldest first.
func (u *userUC) Feedback(ctx context.Context, tgID int64) ([]*model.Feedback, error) {
	list, err := u.users.ListFeedback(ctx, tgID)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	return list, nil
}
