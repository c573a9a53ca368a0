package telegram

import (
	"context"
	"errors"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"telegram-movie-bot/internal/domain"
	"telegram-movie-bot/internal/domain/query"
	"telegram-movie-bot/internal/infra/metrics"
)

// inlinePageSize is Telegram's maximum number of results per answer. Longer
// result lists are paged through NextOffset.
const inlinePageSize = 50

// helpStartParameter is passed to /start by the inline hint button.
const helpStartParameter = "help"

func (r *RealTelegramBotAdapter) handleInlineQuery(ctx context.Context, iq *tgbotapi.InlineQuery) error {
	answer := tgbotapi.InlineConfig{
		InlineQueryID: iq.ID,
		CacheTime:     r.cfg.Bot.InlineCacheTime,
		Results:       []interface{}{},
	}

	if iq.From != nil && !r.allow(ctx, iq.From.ID, "inline", r.cfg.Limits.InlinePerMinute) {
		metrics.IncInlineQuery("rate_limited")
		answer.CacheTime = 0
		return r.answerInline(answer)
	}

	text := strings.TrimSpace(iq.Query)
	res, err := r.facade.CatalogUC.Search(ctx, text)
	switch {
	case errors.Is(err, domain.ErrEmptyQuery):
		metrics.IncInlineQuery("empty")
		return r.answerInline(answer)
	case errors.Is(err, query.ErrInvalidYear):
		metrics.IncInlineQuery("invalid")
		answer.SwitchPMText = r.translator.T("inline_invalid_year")
		answer.SwitchPMParameter = helpStartParameter
		return r.answerInline(answer)
	case query.IsInvalid(err):
		metrics.IncInlineQuery("invalid")
		answer.SwitchPMText = r.translator.T("inline_invalid_query")
		answer.SwitchPMParameter = helpStartParameter
		return r.answerInline(answer)
	case err != nil:
		_ = r.answerInline(answer)
		return err
	}
	metrics.IncInlineQuery(res.Query.Kind.String())

	if len(res.Movies) == 0 {
		answer.SwitchPMText = r.translator.T("inline_no_results")
		answer.SwitchPMParameter = helpStartParameter
		return r.answerInline(answer)
	}

	offset, _ := strconv.Atoi(iq.Offset)
	if offset < 0 || offset > len(res.Movies) {
		offset = 0
	}
	end := offset + inlinePageSize
	if end < len(res.Movies) {
		answer.NextOffset = strconv.Itoa(end)
	} else {
		end = len(res.Movies)
	}
	for _, m := range res.Movies[offset:end] {
		answer.Results = append(answer.Results, r.inlineResult(uuid.NewString(), m))
	}
	return r.answerInline(answer)
}

func (r *RealTelegramBotAdapter) answerInline(cfg tgbotapi.InlineConfig) error {
	_, err := r.bot.Request(cfg)
	return err
}
