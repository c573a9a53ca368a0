package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"telegram-movie-bot/internal/domain/model"
	"telegram-movie-bot/internal/domain/ports/repository"
	"telegram-movie-bot/internal/infra/metrics"
)

var _ repository.UserStateRepository = (*UserStateRepo)(nil)

const backendName = "redis"

// UserStateRepo stores each profile field under its own key. Every write is
// a single command except favorites, which pair an ordered list with a
// dedupe set:
//
//	user:<id>:pref      string
//	user:<id>:favs      list (order) + user:<id>:favset set (dedupe)
//	user:<id>:ratings   hash title -> score
//	user:<id>:history   list
//	user:<id>:feedback  list of JSON entries
type UserStateRepo struct {
	client RedisClient
}

func NewUserStateRepo(client RedisClient) *UserStateRepo {
	return &UserStateRepo{client: client}
}

func userKey(tgID int64, field string) string {
	return fmt.Sprintf("user:%d:%s", tgID, field)
}

func (r *UserStateRepo) Profile(ctx context.Context, tgID int64) (*model.UserProfile, error) {
	p := model.NewUserProfile(tgID)

	pref, err := r.client.Get(ctx, userKey(tgID, "pref"))
	if err != nil && !errors.Is(err, Nil) {
		metrics.IncUserStateOp(backendName, "profile", err)
		return nil, fmt.Errorf("get preference: %w", err)
	}
	p.Preference = pref

	if p.Favorites, err = r.client.LRange(ctx, userKey(tgID, "favs"), 0, -1); err != nil {
		metrics.IncUserStateOp(backendName, "profile", err)
		return nil, fmt.Errorf("get favorites: %w", err)
	}
	if p.History, err = r.client.LRange(ctx, userKey(tgID, "history"), 0, -1); err != nil {
		metrics.IncUserStateOp(backendName, "profile", err)
		return nil, fmt.Errorf("get history: %w", err)
	}

	ratings, err := r.client.HGetAll(ctx, userKey(tgID, "ratings"))
	if err != nil {
		metrics.IncUserStateOp(backendName, "profile", err)
		return nil, fmt.Errorf("get ratings: %w", err)
	}
	for title, raw := range ratings {
		score, convErr := strconv.Atoi(raw)
		if convErr != nil {
			continue
		}
		p.Ratings[title] = score
	}

	metrics.IncUserStateOp(backendName, "profile", nil)
	return p, nil
}

func (r *UserStateRepo) SetPreference(ctx context.Context, tgID int64, genre string) error {
	err := r.client.Set(ctx, userKey(tgID, "pref"), genre, 0)
	metrics.IncUserStateOp(backendName, "set_preference", err)
	return err
}

func (r *UserStateRepo) AddFavorite(ctx context.Context, tgID int64, title string) (bool, error) {
	n, err := r.client.SAdd(ctx, userKey(tgID, "favset"), title)
	if err != nil {
		metrics.IncUserStateOp(backendName, "add_favorite", err)
		return false, err
	}
	if n == 0 {
		metrics.IncUserStateOp(backendName, "add_favorite", nil)
		return false, nil
	}
	if err = r.client.RPush(ctx, userKey(tgID, "favs"), title); err != nil {
		// drop the set member again so a retry is not mistaken for a duplicate
		if undoErr := r.client.SRem(ctx, userKey(tgID, "favset"), title); undoErr != nil {
			err = errors.Join(err, fmt.Errorf("undo favorite: %w", undoErr))
		}
		metrics.IncUserStateOp(backendName, "add_favorite", err)
		return false, err
	}
	metrics.IncUserStateOp(backendName, "add_favorite", nil)
	return true, nil
}

func (r *UserStateRepo) SetRating(ctx context.Context, tgID int64, title string, score int) error {
	err := r.client.HSet(ctx, userKey(tgID, "ratings"), title, score)
	metrics.IncUserStateOp(backendName, "set_rating", err)
	return err
}

func (r *UserStateRepo) AppendHistory(ctx context.Context, tgID int64, title string) error {
	err := r.client.RPush(ctx, userKey(tgID, "history"), title)
	metrics.IncUserStateOp(backendName, "append_history", err)
	return err
}

func (r *UserStateRepo) AddFeedback(ctx context.Context, fb *model.Feedback) error {
	data, err := json.Marshal(fb)
	if err != nil {
		return err
	}
	err = r.client.RPush(ctx, userKey(fb.TelegramID, "feedback"), data)
	metrics.IncUserStateOp(backendName, "add_feedback", err)
	return err
}

func (r *UserStateRepo) ListFeedback(ctx context.Context, tgID int64) ([]*model.Feedback, error) {
	raw, err := r.client.LRange(ctx, userKey(tgID, "feedback"), 0, -1)
	metrics.IncUserStateOp(backendName, "list_feedback", err)
	if err != nil {
		return nil, err
	}
	out := make([]*model.Feedback, 0, len(raw))
	for _, s := range raw {
		var fb model.Feedback
		if err := json.Unmarshal([]byte(s), &fb); err != nil {
			return nil, fmt.Errorf("decode feedback: %w", err)
		}
		out = append(out, &fb)
	}
	return out, nil
}
