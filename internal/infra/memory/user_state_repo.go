// Package memory holds process-local implementations of the stateful ports.
// Nothing here survives a restart.
package memory

import (
	"context"
	"sync"

	"telegram-movie-bot/internal/domain/model"
	"telegram-movie-bot/internal/domain/ports/repository"
	"telegram-movie-bot/internal/infra/metrics"
)

var _ repository.UserStateRepository = (*UserStateRepo)(nil)

const backendName = "memory"

type userEntry struct {
	mu       sync.Mutex
	profile  *model.UserProfile
	feedback []*model.Feedback
}

// UserStateRepo keeps one entry per user, each guarded by its own mutex, so
// writes for different users never contend and writes for one user are
// serialized.
type UserStateRepo struct {
	mu    sync.Mutex
	users map[int64]*userEntry
}

func NewUserStateRepo() *UserStateRepo {
	return &UserStateRepo{users: map[int64]*userEntry{}}
}

func (r *UserStateRepo) entry(tgID int64) *userEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.users[tgID]
	if !ok {
		e = &userEntry{profile: model.NewUserProfile(tgID)}
		r.users[tgID] = e
	}
	return e
}

func (r *UserStateRepo) update(tgID int64, op string, fn func(e *userEntry)) {
	e := r.entry(tgID)
	e.mu.Lock()
	fn(e)
	e.mu.Unlock()
	metrics.IncUserStateOp(backendName, op, nil)
}

func (r *UserStateRepo) Profile(ctx context.Context, tgID int64) (*model.UserProfile, error) {
	e := r.entry(tgID)
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.profile.Clone(), nil
}

func (r *UserStateRepo) SetPreference(ctx context.Context, tgID int64, genre string) error {
	r.update(tgID, "set_preference", func(e *userEntry) { e.profile.Preference = genre })
	return nil
}

func (r *UserStateRepo) AddFavorite(ctx context.Context, tgID int64, title string) (bool, error) {
	var added bool
	r.update(tgID, "add_favorite", func(e *userEntry) {
		if e.profile.HasFavorite(title) {
			return
		}
		e.profile.Favorites = append(e.profile.Favorites, title)
		added = true
	})
	return added, nil
}

func (r *UserStateRepo) SetRating(ctx context.Context, tgID int64, title string, score int) error {
	r.update(tgID, "set_rating", func(e *userEntry) { e.profile.Ratings[title] = score })
	return nil
}

func (r *UserStateRepo) AppendHistory(ctx context.Context, tgID int64, title string) error {
	r.update(tgID, "append_history", func(e *userEntry) {
		e.profile.History = append(e.profile.History, title)
	})
	return nil
}

func (r *UserStateRepo) AddFeedback(ctx context.Context, fb *model.Feedback) error {
	cp := *fb
	r.update(fb.TelegramID, "add_feedback", func(e *userEntry) {
		e.feedback = append(e.feedback, &cp)
	})
	return nil
}

func (r *UserStateRepo) ListFeedback(ctx context.Context, tgID int64) ([]*model.Feedback, error) {
	e := r.entry(tgID)
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]*model.Feedback, 0, len(e.feedback))
	for _, fb := range e.feedback {
		cp := *fb
		out = append(out, &cp)
	}
	return out, nil
}
