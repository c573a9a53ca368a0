//go:build !integration

package usecase_test

import (
	"context"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"telegram-movie-bot/internal/domain"
	"telegram-movie-bot/internal/domain/model"
)

// newTestLogger creates a silent logger for tests.
func newTestLogger() *zerolog.Logger {
	logger := zerolog.New(io.Discard)
	return &logger
}

// ---- Mock CatalogRepository ----

type MockCatalogRepo struct {
	Movies []*model.Movie
	AllErr error
}

func NewMockCatalogRepo(movies ...*model.Movie) *MockCatalogRepo {
	return &MockCatalogRepo{Movies: movies}
}

func (m *MockCatalogRepo) All(ctx context.Context) ([]*model.Movie, error) {
	if m.AllErr != nil {
		return nil, m.AllErr
	}
	return m.Movies, nil
}

func (m *MockCatalogRepo) FindByTitle(ctx context.Context, title string) (*model.Movie, error) {
	if m.AllErr != nil {
		return nil, m.AllErr
	}
	for _, mv := range m.Movies {
		if mv.Title == title {
			return mv, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockCatalogRepo) Count(ctx context.Context) (int, error) { return len(m.Movies), nil }

// ---- Mock UserStateRepository ----

type MockUserStateRepo struct {
	mu       sync.Mutex
	profiles map[int64]*model.UserProfile
	feedback []*model.Feedback

	WriteErr error
}

func NewMockUserStateRepo() *MockUserStateRepo {
	return &MockUserStateRepo{profiles: map[int64]*model.UserProfile{}}
}

func (m *MockUserStateRepo) get(tgID int64) *model.UserProfile {
	p, ok := m.profiles[tgID]
	if !ok {
		p = model.NewUserProfile(tgID)
		m.profiles[tgID] = p
	}
	return p
}

func (m *MockUserStateRepo) Profile(ctx context.Context, tgID int64) (*model.UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.get(tgID).Clone(), nil
}

func (m *MockUserStateRepo) SetPreference(ctx context.Context, tgID int64, genre string) error {
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.get(tgID).Preference = genre
	return nil
}

func (m *MockUserStateRepo) AddFavorite(ctx context.Context, tgID int64, title string) (bool, error) {
	if m.WriteErr != nil {
		return false, m.WriteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.get(tgID)
	if p.HasFavorite(title) {
		return false, nil
	}
	p.Favorites = append(p.Favorites, title)
	return true, nil
}

func (m *MockUserStateRepo) SetRating(ctx context.Context, tgID int64, title string, score int) error {
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.get(tgID).Ratings[title] = score
	return nil
}

func (m *MockUserStateRepo) AppendHistory(ctx context.Context, tgID int64, title string) error {
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.get(tgID)
	p.History = append(p.History, title)
	return nil
}

func (m *MockUserStateRepo) AddFeedback(ctx context.Context, fb *model.Feedback) error {
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.feedback = append(m.feedback, fb)
	return nil
}

func (m *MockUserStateRepo) ListFeedback(ctx context.Context, tgID int64) ([]*model.Feedback, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Feedback
	for _, fb := range m.feedback {
		if fb.TelegramID == tgID {
			out = append(out, fb)
		}
	}
	return out, nil
}

// ---- Mock ChannelPublisher ----

type MockPublisher struct {
	mu        sync.Mutex
	Published []string
	Err       error
}

func (m *MockPublisher) PublishCard(ctx context.Context, movie *model.Movie) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Published = append(m.Published, movie.Title)
	return nil
}

// ---- Fixtures ----

func testMovies() []*model.Movie {
	return []*model.Movie{
		{Title: "Kalki 2898 AD", Genres: []string{"Action", "Sci-Fi"}, Trending: true, NewRelease: true},
		{Title: "Stree 2", Genres: []string{"Comedy", "Horror"}, Comedy: true},
		{Title: "Dune Part Two", Genres: []string{"Sci-Fi"}, TopRated: true, Trending: true},
		{Title: "3 Idiots", Genres: []string{"Comedy", "Drama"}, Comedy: true},
		{Title: "Kalki 2898 AD", Genres: []string{"Drama"}},
	}
}
