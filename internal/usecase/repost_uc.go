package usecase

import (
	"context"
	"errors"
	"fmt"

	"telegram-movie-bot/internal/domain"
	"telegram-movie-bot/internal/domain/model"
	"telegram-movie-bot/internal/domain/ports/adapter"
	"telegram-movie-bot/internal/domain/ports/repository"
	"telegram-movie-bot/internal/infra/logging"
	"telegram-movie-bot/internal/infra/metrics"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ RepostUseCase = (*repostUC)(nil)

// RepostUseCase publishes a catalog movie to the broadcast channel. Every call
// publishes; repeated presses post repeatedly.
type RepostUseCase interface {
	Repost(ctx context.Context, title string) (*model.Movie, error)
}

type repostUC struct {
	catalog   repository.CatalogRepository
	publisher adapter.ChannelPublisher
	log       *zerolog.Logger
}

func NewRepostUseCase(catalog repository.CatalogRepository, publisher adapter.ChannelPublisher, logger *zerolog.Logger) *repostUC {
	return &repostUC{
		catalog:   catalog,
		publisher: publisher,
		log:       logger,
	}
}

// SetPublisher swaps the channel publisher; the Telegram adapter is built
// after the use case because it depends on the facade.
func (r *repostUC) SetPublisher(p adapter.ChannelPublisher) { r.publisher = p }

func (r *repostUC) Repost(ctx context.Context, title string) (*model.Movie, error) {
	defer logging.TraceDuration(r.log, "RepostUC.Repost")()

	movie, err := r.catalog.FindByTitle(ctx, title)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			metrics.IncRepost("not_found")
		} else {
			metrics.IncRepost("error")
		}
		return nil, err
	}
	if r.publisher == nil {
		metrics.IncRepost("error")
		return nil, errors.New("channel publisher is not configured")
	}
	if err := r.publisher.PublishCard(ctx, movie); err != nil {
		metrics.IncRepost("error")
		return nil, fmt.Errorf("publish %q: %w", movie.Title, err)
	}
	metrics.IncRepost("published")
	r.log.Info().Str("title", movie.Title).Msg("movie reposted to channel")
	return movie, nil
}
