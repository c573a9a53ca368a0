package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"telegram-movie-bot/internal/application"
	"telegram-movie-bot/internal/config"
	"telegram-movie-bot/internal/domain/model"
	"telegram-movie-bot/internal/domain/ports/adapter"
	"telegram-movie-bot/internal/infra/logging"
	"telegram-movie-bot/internal/infra/metrics"
)

var _ adapter.ChannelPublisher = (*RealTelegramBotAdapter)(nil)

// botClient is the part of *tgbotapi.BotAPI the adapter uses.
type botClient interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// RateLimiter is satisfied by both the Redis and the in-memory limiter.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// RealTelegramBotAdapter uses tgbotapi to poll updates and delegates to BotFacade.
type RealTelegramBotAdapter struct {
	bot         botClient
	cfg         *config.Config
	facade      *application.BotFacade
	translator  application.Translator
	rateLimiter RateLimiter
	log         *zerolog.Logger

	channelID       int64
	channelUsername string
	updateWorkers   int
}

func NewRealTelegramBotAdapter(cfg *config.Config, facade *application.BotFacade, translator application.Translator, rateLimiter RateLimiter, logger *zerolog.Logger) (*RealTelegramBotAdapter, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	bot, err := tgbotapi.NewBotAPI(cfg.Bot.Token)
	if err != nil {
		return nil, fmt.Errorf("telegram login: %w", err)
	}
	r, err := newAdapter(bot, cfg, facade, translator, rateLimiter, logger)
	if err != nil {
		return nil, err
	}
	r.log.Info().Str("username", bot.Self.UserName).Msg("telegram bot authorized")
	return r, nil
}

func newAdapter(bot botClient, cfg *config.Config, facade *application.BotFacade, translator application.Translator, rateLimiter RateLimiter, logger *zerolog.Logger) (*RealTelegramBotAdapter, error) {
	if facade == nil {
		return nil, errors.New("bot facade is nil")
	}
	if translator == nil {
		return nil, errors.New("translator is nil")
	}
	chatID, username, err := cfg.Channel.Target()
	if err != nil {
		return nil, err
	}
	workers := cfg.Bot.Workers
	if workers <= 0 {
		workers = 4
	}
	l := logger.With().Str("component", "telegram").Logger()
	return &RealTelegramBotAdapter{
		bot:             bot,
		cfg:             cfg,
		facade:          facade,
		translator:      translator,
		rateLimiter:     rateLimiter,
		log:             &l,
		channelID:       chatID,
		channelUsername: username,
		updateWorkers:   workers,
	}, nil
}

// StartPolling blocks until ctx is cancelled or the update stream closes. Updates are fanned out to a
// fixed pool of workers; a full queue blocks the poller rather than dropping.
func (r *RealTelegramBotAdapter) StartPolling(ctx context.Context) error {
	if err := r.SetMenuCommands(ctx); err != nil {
		r.log.Warn().Err(err).Msg("failed to register bot commands")
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = r.cfg.Bot.PollTimeout
	updates := r.bot.GetUpdatesChan(u)
	defer r.bot.StopReceivingUpdates()

	var wg sync.WaitGroup
	updateChan := make(chan tgbotapi.Update, 100)

	for i := 0; i < r.updateWorkers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for up := range updateChan {
				r.dispatch(ctx, id, up)
			}
		}(i)
	}

	r.log.Info().Int("workers", r.updateWorkers).Msg("polling started")
	defer func() {
		close(updateChan)
		wg.Wait()
		r.log.Info().Msg("polling stopped")
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case up, ok := <-updates:
			if !ok {
				return nil
			}
			select {
			case updateChan <- up:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

// dispatch handles one update; failures are logged and never stop the worker.
func (r *RealTelegramBotAdapter) dispatch(ctx context.Context, worker int, up tgbotapi.Update) {
	ctx = logging.WithTraceID(ctx, strconv.Itoa(up.UpdateID))
	if from := up.SentFrom(); from != nil {
		ctx = logging.WithTgID(ctx, from.ID)
	}
	defer func() {
		if rec := recover(); rec != nil {
			metrics.IncUpdateError()
			logging.With(ctx, r.log).Error().Interface("panic", rec).Int("worker", worker).Msg("update handler panicked")
		}
	}()
	if err := r.handleUpdate(ctx, up); err != nil {
		metrics.IncUpdateError()
		logging.With(ctx, r.log).Error().Err(err).Int("worker", worker).Msg("update handling failed")
	}
}

func (r *RealTelegramBotAdapter) handleUpdate(ctx context.Context, update tgbotapi.Update) error {
	switch {
	case update.InlineQuery != nil:
		return r.handleInlineQuery(ctx, update.InlineQuery)
	case update.CallbackQuery != nil:
		return r.handleCallbackQuery(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.From != nil && update.Message.IsCommand():
		return r.handleCommand(ctx, update.Message)
	}
	return nil
}

// allow applies the per-user limit for action. Limiter errors fail open.
func (r *RealTelegramBotAdapter) allow(ctx context.Context, tgID int64, action string, limit int) bool {
	if r.rateLimiter == nil {
		return true
	}
	ok, err := r.rateLimiter.Allow(ctx, userActionKey(tgID, action), limit, time.Minute)
	if err != nil {
		logging.With(ctx, r.log).Warn().Err(err).Msg("rate limiter unavailable")
		return true
	}
	if !ok {
		metrics.IncRateLimitTriggered()
	}
	return ok
}

func userActionKey(tgID int64, action string) string {
	return fmt.Sprintf("rate_limit:%d:%s", tgID, action)
}

// SetMenuCommands publishes the command list shown by Telegram clients.
func (r *RealTelegramBotAdapter) SetMenuCommands(ctx context.Context) error {
	cmds := []tgbotapi.BotCommand{
		{Command: "start", Description: "Main menu"},
		{Command: "help", Description: "How to use the bot"},
		{Command: "setup_profile", Description: "Set up your profile"},
		{Command: "recommend_movie", Description: "Get a recommendation"},
		{Command: "add_favorite", Description: "Save a favorite"},
		{Command: "rate_movie", Description: "Rate a movie 1-10"},
		{Command: "set_preferences", Description: "Change preferred genre"},
		{Command: "favorites", Description: "Your favorites"},
		{Command: "watch_history", Description: "Your watch history"},
		{Command: "feedback", Description: "Send feedback"},
	}
	_, err := r.bot.Request(tgbotapi.NewSetMyCommands(cmds...))
	return err
}

// SendMessage sends plain text to a chat.
func (r *RealTelegramBotAdapter) SendMessage(ctx context.Context, chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := r.bot.Send(msg)
	return err
}

// SendButtons sends a message with inline buttons using tgbotapi.
func (r *RealTelegramBotAdapter) SendButtons(ctx context.Context, chatID int64, text string, rows [][]adapter.InlineButton) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	msg := tgbotapi.NewMessage(chatID, text)
	if markup, ok := toMarkup(rows); ok {
		msg.ReplyMarkup = markup
	}
	_, err := r.bot.Send(msg)
	return err
}

// PublishCard posts the movie card to the configured channel.
func (r *RealTelegramBotAdapter) PublishCard(ctx context.Context, movie *model.Movie) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	_, err := r.bot.Send(r.cardChattable(r.channelID, r.channelUsername, movie, r.channelButtons(movie)))
	return err
}

// sendMainMenu shows the main actions as inline buttons.
func (r *RealTelegramBotAdapter) sendMainMenu(ctx context.Context, chatID int64, intro string) error {
	rows := [][]adapter.InlineButton{
		{{Text: r.translator.T("menu_trending"), Data: "menu:trending"}, {Text: r.translator.T("menu_top_rated"), Data: "menu:top_rated"}},
		{{Text: r.translator.T("menu_new"), Data: "menu:new"}, {Text: r.translator.T("menu_genre"), Data: "menu:genres"}},
		{{Text: r.translator.T("menu_search"), SwitchInline: true}},
	}
	if link := r.cfg.Channel.Link; link != "" {
		rows = append(rows, []adapter.InlineButton{{Text: r.translator.T("menu_channel"), URL: link}})
	}
	return r.SendButtons(ctx, chatID, intro, rows)
}
