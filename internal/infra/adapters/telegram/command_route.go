package telegram

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"telegram-movie-bot/internal/infra/logging"
	"telegram-movie-bot/internal/infra/metrics"
)

type commandHandler func(ctx context.Context, message *tgbotapi.Message) error

// commandRoutes defines all available bot commands and their handlers.
func (r *RealTelegramBotAdapter) commandRoutes() map[string]commandHandler {
	return map[string]commandHandler{
		"start":           r.handleStartCommand,
		"help":            r.handleHelpCommand,
		"setup_profile":   r.handleSetupProfileCommand,
		"recommend_movie": r.handleRecommendCommand,
		"add_favorite":    r.handleAddFavoriteCommand,
		"rate_movie":      r.handleRateMovieCommand,
		"set_preferences": r.handleSetPreferencesCommand,
		"favorites":       r.handleFavoritesCommand,
		"watch_history":   r.handleWatchHistoryCommand,
		"feedback":        r.handleFeedbackCommand,
	}
}

func (r *RealTelegramBotAdapter) handleCommand(ctx context.Context, message *tgbotapi.Message) error {
	name := message.Command()
	handler, ok := r.commandRoutes()[name]
	if !ok {
		metrics.IncTelegramCommand("unknown")
		return r.SendMessage(ctx, message.Chat.ID, r.translator.T("unknown_command"))
	}
	metrics.IncTelegramCommand("/" + name)

	if !r.allow(ctx, message.From.ID, "/"+name, r.cfg.Limits.CommandsPerMinute) {
		return r.SendMessage(ctx, message.Chat.ID, r.translator.T("rate_limited"))
	}
	logging.With(ctx, r.log).Debug().Str("command", name).Msg("command received")
	return handler(ctx, message)
}

// reply sends text, or the generic error notice when err is set. The error is
// still returned so the dispatcher logs it.
func (r *RealTelegramBotAdapter) reply(ctx context.Context, chatID int64, text string, err error) error {
	if err != nil {
		_ = r.SendMessage(ctx, chatID, r.translator.T("generic_error"))
		return err
	}
	return r.SendMessage(ctx, chatID, text)
}

// handleStartCommand shows the main menu. "/start help" is what Telegram
// sends after the inline search hint button is pressed.
func (r *RealTelegramBotAdapter) handleStartCommand(ctx context.Context, message *tgbotapi.Message) error {
	if strings.TrimSpace(message.CommandArguments()) == "help" {
		return r.handleHelpCommand(ctx, message)
	}
	text := r.facade.HandleStart(message.From.FirstName, message.From.UserName)
	return r.sendMainMenu(ctx, message.Chat.ID, text)
}

func (r *RealTelegramBotAdapter) handleHelpCommand(ctx context.Context, message *tgbotapi.Message) error {
	return r.SendMessage(ctx, message.Chat.ID, r.facade.HandleHelp())
}

func (r *RealTelegramBotAdapter) handleSetupProfileCommand(ctx context.Context, message *tgbotapi.Message) error {
	text, err := r.facade.HandleSetupProfile(ctx, message.From.ID, message.CommandArguments())
	return r.reply(ctx, message.Chat.ID, text, err)
}

func (r *RealTelegramBotAdapter) handleSetPreferencesCommand(ctx context.Context, message *tgbotapi.Message) error {
	text, err := r.facade.HandleSetPreferences(ctx, message.From.ID, message.CommandArguments())
	return r.reply(ctx, message.Chat.ID, text, err)
}

// handleRecommendCommand sends a heading followed by the movie card.
func (r *RealTelegramBotAdapter) handleRecommendCommand(ctx context.Context, message *tgbotapi.Message) error {
	movie, text, err := r.facade.HandleRecommend(ctx, message.From.ID)
	if err != nil || movie == nil {
		return r.reply(ctx, message.Chat.ID, text, err)
	}
	if err := r.SendMessage(ctx, message.Chat.ID, text); err != nil {
		return err
	}
	_, err = r.bot.Send(r.cardChattable(message.Chat.ID, "", movie, r.cardButtons(movie)))
	return err
}

func (r *RealTelegramBotAdapter) handleAddFavoriteCommand(ctx context.Context, message *tgbotapi.Message) error {
	text, err := r.facade.HandleAddFavorite(ctx, message.From.ID, message.CommandArguments())
	return r.reply(ctx, message.Chat.ID, text, err)
}

func (r *RealTelegramBotAdapter) handleRateMovieCommand(ctx context.Context, message *tgbotapi.Message) error {
	text, err := r.facade.HandleRateMovie(ctx, message.From.ID, message.CommandArguments())
	return r.reply(ctx, message.Chat.ID, text, err)
}

func (r *RealTelegramBotAdapter) handleFavoritesCommand(ctx context.Context, message *tgbotapi.Message) error {
	text, err := r.facade.HandleFavorites(ctx, message.From.ID)
	return r.reply(ctx, message.Chat.ID, text, err)
}

func (r *RealTelegramBotAdapter) handleWatchHistoryCommand(ctx context.Context, message *tgbotapi.Message) error {
	text, err := r.facade.HandleWatchHistory(ctx, message.From.ID)
	return r.reply(ctx, message.Chat.ID, text, err)
}

func (r *RealTelegramBotAdapter) handleFeedbackCommand(ctx context.Context, message *tgbotapi.Message) error {
	text, err := r.facade.HandleFeedback(ctx, message.From.ID, message.CommandArguments())
	return r.reply(ctx, message.Chat.ID, text, err)
}
