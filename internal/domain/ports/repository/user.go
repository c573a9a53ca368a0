package repository

import (
	"context"

	"telegram-movie-bot/internal/domain/model"
)

// -----------------------------
// Users
// -----------------------------

// UserStateRepository holds per-user preference, favorites, ratings, watch
// history and feedback. Implementations must serialize writes per user.
type UserStateRepository interface {
	// Profile returns the user's state; unknown users get an empty profile.
	Profile(ctx context.Context, tgID int64) (*model.UserProfile, error)
	SetPreference(ctx context.Context, tgID int64, genre string) error
	// AddFavorite appends title unless it is already a favorite. It reports
	// whether the title was added.
	AddFavorite(ctx context.Context, tgID int64, title string) (bool, error)
	SetRating(ctx context.Context, tgID int64, title string, score int) error
	AppendHistory(ctx context.Context, tgID int64, title string) error
	AddFeedback(ctx context.Context, fb *model.Feedback) error
	ListFeedback(ctx context.Context, tgID int64) ([]*model.Feedback, error)
}
