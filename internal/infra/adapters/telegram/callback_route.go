package telegram

import (
	"context"
	"errors"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"telegram-movie-bot/internal/domain/ports/adapter"
	"telegram-movie-bot/internal/infra/metrics"
)

// maxMenuCards caps how many cards one menu button sends to a chat.
const maxMenuCards = 10

// cbHandler returns the text shown in the callback acknowledgement ("" for a
// silent ack).
type cbHandler func(ctx context.Context, query *tgbotapi.CallbackQuery, chatID int64, data string) (string, error)

type prefixCB struct {
	Prefix string
	Fn     cbHandler
}

// Exact-match callbacks
func (r *RealTelegramBotAdapter) cbRoutes() map[string]cbHandler {
	return map[string]cbHandler{
		"menu:trending":  r.browseCBRoute("trending"),
		"menu:top_rated": r.browseCBRoute("top rated"),
		"menu:new":       r.browseCBRoute("new"),
		"menu:genres":    r.genresCBRoute,
	}
}

// Prefix-match callbacks
func (r *RealTelegramBotAdapter) cbPrefixRoutes() []prefixCB {
	return []prefixCB{
		{Prefix: actionPost + "|", Fn: r.postCBRoute},
		{Prefix: actionFav + "|", Fn: r.favCBRoute},
		{Prefix: "genre:", Fn: r.genreCBRoute},
	}
}

// callbackAction is the metric label for data: the part before '|' or ':'.
func callbackAction(data string) string {
	if action, _, ok := parseCallbackData(data); ok {
		return action
	}
	if i := strings.IndexByte(data, ':'); i > 0 {
		return data[:i]
	}
	return "unknown"
}

// handleCallbackQuery routes a button press and answers it exactly once.
func (r *RealTelegramBotAdapter) handleCallbackQuery(ctx context.Context, query *tgbotapi.CallbackQuery) error {
	if query == nil || query.From == nil {
		return errors.New("invalid callback query")
	}

	var chatID int64
	if query.Message != nil && query.Message.Chat != nil {
		chatID = query.Message.Chat.ID
	} else {
		chatID = query.From.ID
	}

	data := query.Data
	action := callbackAction(data)

	if !r.allow(ctx, query.From.ID, "cb:"+action, r.cfg.Limits.CallbacksPerMinute) {
		metrics.IncCallback(action, "rate_limited")
		return r.answerCallback(query.ID, r.translator.T("rate_limited"))
	}

	fn := r.matchCallback(data)
	if fn == nil {
		metrics.IncCallback(action, "unknown")
		_ = r.answerCallback(query.ID, "")
		return errors.New("unknown callback data")
	}

	text, err := fn(ctx, query, chatID, data)
	if err != nil {
		metrics.IncCallback(action, "error")
		_ = r.answerCallback(query.ID, r.translator.T("generic_error"))
		return err
	}
	metrics.IncCallback(action, "ok")
	return r.answerCallback(query.ID, text)
}

func (r *RealTelegramBotAdapter) matchCallback(data string) cbHandler {
	if fn, ok := r.cbRoutes()[data]; ok {
		return fn
	}
	for _, pr := range r.cbPrefixRoutes() {
		if strings.HasPrefix(data, pr.Prefix) {
			return pr.Fn
		}
	}
	return nil
}

func (r *RealTelegramBotAdapter) answerCallback(id, text string) error {
	_, err := r.bot.Request(tgbotapi.NewCallback(id, text))
	return err
}

// postCBRoute reposts the exact title to the channel. Each press posts again.
func (r *RealTelegramBotAdapter) postCBRoute(ctx context.Context, _ *tgbotapi.CallbackQuery, _ int64, data string) (string, error) {
	_, title, _ := parseCallbackData(data)
	return r.facade.HandleRepost(ctx, title)
}

func (r *RealTelegramBotAdapter) favCBRoute(ctx context.Context, query *tgbotapi.CallbackQuery, _ int64, data string) (string, error) {
	_, title, _ := parseCallbackData(data)
	return r.facade.HandleFavoriteButton(ctx, query.From.ID, title)
}

func (r *RealTelegramBotAdapter) browseCBRoute(text string) cbHandler {
	return func(ctx context.Context, _ *tgbotapi.CallbackQuery, chatID int64, _ string) (string, error) {
		return "", r.sendMovieCards(ctx, chatID, text)
	}
}

func (r *RealTelegramBotAdapter) genreCBRoute(ctx context.Context, _ *tgbotapi.CallbackQuery, chatID int64, data string) (string, error) {
	return "", r.sendMovieCards(ctx, chatID, data)
}

// genresCBRoute lists catalog genres as buttons, two per row.
func (r *RealTelegramBotAdapter) genresCBRoute(ctx context.Context, _ *tgbotapi.CallbackQuery, chatID int64, _ string) (string, error) {
	genres, err := r.facade.Genres(ctx)
	if err != nil {
		return "", err
	}
	var rows [][]adapter.InlineButton
	var row []adapter.InlineButton
	for _, g := range genres {
		data := "genre:" + g
		if len(data) > maxCallbackData {
			continue
		}
		row = append(row, adapter.InlineButton{Text: g, Data: data})
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return "", r.SendMessage(ctx, chatID, r.translator.T("menu_empty"))
	}
	return "", r.SendButtons(ctx, chatID, r.translator.T("genre_pick"), rows)
}

// sendMovieCards runs a catalog query and sends up to maxMenuCards cards.
func (r *RealTelegramBotAdapter) sendMovieCards(ctx context.Context, chatID int64, text string) error {
	movies, err := r.facade.Browse(ctx, text)
	if err != nil {
		return err
	}
	if len(movies) == 0 {
		return r.SendMessage(ctx, chatID, r.translator.T("menu_empty"))
	}
	if len(movies) > maxMenuCards {
		movies = movies[:maxMenuCards]
	}
	for _, m := range movies {
		if _, err := r.bot.Send(r.cardChattable(chatID, "", m, r.cardButtons(m))); err != nil {
			return err
		}
	}
	return nil
}
