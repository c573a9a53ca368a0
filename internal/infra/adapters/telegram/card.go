package telegram

import (
	"strconv"
	"strings"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"telegram-movie-bot/internal/domain/model"
	"telegram-movie-bot/internal/domain/ports/adapter"
)

// Telegram API limits.
const (
	maxCaptionLen   = 1024
	maxCallbackData = 64
)

const (
	actionPost = "post"
	actionFav  = "fav"
)

func esc(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

// caption renders the movie card in MarkdownV2. Every catalog value is
// escaped and each part is cut to what is left of maxCaptionLen, so oversized
// genre or tag lists cannot push the caption over the limit.
func (r *RealTelegramBotAdapter) caption(m *model.Movie) string {
	var sb strings.Builder
	left := maxCaptionLen
	// add writes prefix, the escaped and possibly truncated text, and suffix,
	// as long as a little text still fits.
	add := func(prefix, text, suffix string) bool {
		room := left - utf8.RuneCountInString(prefix) - utf8.RuneCountInString(suffix)
		if room < 2 {
			return false
		}
		part := prefix + escapeWithin(text, room) + suffix
		sb.WriteString(part)
		left -= utf8.RuneCountInString(part)
		return true
	}

	if !add("*", m.Title, "*") {
		return ""
	}
	line := func(icon, key, value string) {
		if strings.TrimSpace(value) == "" {
			return
		}
		add("\n"+icon+" ", r.translator.T(key)+": "+value, "")
	}
	line("⭐", "card_rating", m.Rating)
	line("🎭", "card_genres", strings.Join(m.Genres, ", "))
	line("🏷", "card_tags", strings.Join(m.Tags, ", "))
	if m.ReleaseYear > 0 {
		line("📅", "card_year", strconv.Itoa(m.ReleaseYear))
	}
	line("📺", "card_source", m.Source)

	if desc := strings.TrimSpace(m.Description); desc != "" {
		add("\n\n", desc, "")
	}
	return sb.String()
}

// escapeWithin escapes s and truncates it, rune by rune, so the escaped form
// never exceeds limit runes. A truncated result ends with an ellipsis.
func escapeWithin(s string, limit int) string {
	full := esc(s)
	if utf8.RuneCountInString(full) <= limit {
		return full
	}
	var sb strings.Builder
	used := 0
	for _, rn := range s {
		part := esc(string(rn))
		n := utf8.RuneCountInString(part)
		if used+n+1 > limit {
			break
		}
		sb.WriteString(part)
		used += n
	}
	sb.WriteString("…")
	return sb.String()
}

// callbackData builds "<action>|<title>". ok is false when the payload would
// exceed Telegram's 64 byte limit; such buttons are omitted.
func callbackData(action, title string) (string, bool) {
	data := action + "|" + title
	return data, len(data) <= maxCallbackData
}

// parseCallbackData splits on the first separator so titles may contain '|'.
func parseCallbackData(data string) (action, title string, ok bool) {
	i := strings.IndexByte(data, '|')
	if i <= 0 {
		return "", "", false
	}
	return data[:i], data[i+1:], true
}

// cardButtons is the keyboard under search results and private cards.
func (r *RealTelegramBotAdapter) cardButtons(m *model.Movie) [][]adapter.InlineButton {
	rows := [][]adapter.InlineButton{
		{{Text: r.translator.T("btn_trailer"), URL: m.TrailerLink()}},
	}
	var actions []adapter.InlineButton
	if data, ok := callbackData(actionPost, m.Title); ok {
		actions = append(actions, adapter.InlineButton{Text: r.translator.T("btn_post"), Data: data})
	}
	if data, ok := callbackData(actionFav, m.Title); ok {
		actions = append(actions, adapter.InlineButton{Text: r.translator.T("btn_fav"), Data: data})
	}
	if len(actions) > 0 {
		rows = append(rows, actions)
	}
	return rows
}

// channelButtons is the keyboard under cards posted to the channel.
func (r *RealTelegramBotAdapter) channelButtons(m *model.Movie) [][]adapter.InlineButton {
	row := []adapter.InlineButton{{Text: r.translator.T("btn_trailer"), URL: m.TrailerLink()}}
	if link := r.cfg.Channel.Link; link != "" {
		row = append(row, adapter.InlineButton{Text: r.translator.T("btn_channel"), URL: link})
	}
	return [][]adapter.InlineButton{row}
}

// toMarkup converts port buttons to a tgbotapi keyboard.
// - If btn.URL is set, the button opens a link
// - Else if btn.SwitchInline is set, it opens inline search in the chat
// - Else btn.Data (or btn.Text as a fallback) is sent as callback data
func toMarkup(rows [][]adapter.InlineButton) (tgbotapi.InlineKeyboardMarkup, bool) {
	kbRows := make([][]tgbotapi.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		out := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, btn := range row {
			label := strings.TrimSpace(btn.Text)
			if label == "" {
				label = "•"
			}
			var kb tgbotapi.InlineKeyboardButton
			switch {
			case btn.URL != "":
				kb = tgbotapi.NewInlineKeyboardButtonURL(label, btn.URL)
			case btn.SwitchInline:
				empty := ""
				kb = tgbotapi.InlineKeyboardButton{Text: label, SwitchInlineQueryCurrentChat: &empty}
			case btn.Data != "":
				kb = tgbotapi.NewInlineKeyboardButtonData(label, btn.Data)
			default:
				kb = tgbotapi.NewInlineKeyboardButtonData(label, label)
			}
			out = append(out, kb)
		}
		kbRows = append(kbRows, out)
	}
	if len(kbRows) == 0 {
		return tgbotapi.InlineKeyboardMarkup{}, false
	}
	return tgbotapi.NewInlineKeyboardMarkup(kbRows...), true
}

// cardChattable builds a photo card, or a text card when the movie has no
// poster. A non-empty username targets a public channel by name.
func (r *RealTelegramBotAdapter) cardChattable(chatID int64, username string, m *model.Movie, rows [][]adapter.InlineButton) tgbotapi.Chattable {
	markup, hasMarkup := toMarkup(rows)
	text := r.caption(m)

	if m.PosterURL != "" {
		var photo tgbotapi.PhotoConfig
		if username != "" {
			photo = tgbotapi.NewPhotoToChannel(username, tgbotapi.FileURL(m.PosterURL))
		} else {
			photo = tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(m.PosterURL))
		}
		photo.Caption = text
		photo.ParseMode = tgbotapi.ModeMarkdownV2
		if hasMarkup {
			photo.ReplyMarkup = markup
		}
		return photo
	}

	var msg tgbotapi.MessageConfig
	if username != "" {
		msg = tgbotapi.NewMessageToChannel(username, text)
	} else {
		msg = tgbotapi.NewMessage(chatID, text)
	}
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	if hasMarkup {
		msg.ReplyMarkup = markup
	}
	return msg
}

// inlineResult renders one search hit as a photo result, or an article when
// there is no poster.
func (r *RealTelegramBotAdapter) inlineResult(id string, m *model.Movie) interface{} {
	markup, hasMarkup := toMarkup(r.cardButtons(m))
	summary := strings.Join(m.Genres, ", ")
	if m.ReleaseYear > 0 {
		summary = strings.TrimPrefix(summary+" · "+strconv.Itoa(m.ReleaseYear), " · ")
	}

	if m.PosterURL != "" {
		res := tgbotapi.NewInlineQueryResultPhoto(id, m.PosterURL)
		res.ThumbURL = m.PosterURL
		res.Title = m.Title
		res.Description = summary
		res.Caption = r.caption(m)
		res.ParseMode = tgbotapi.ModeMarkdownV2
		if hasMarkup {
			res.ReplyMarkup = &markup
		}
		return res
	}

	res := tgbotapi.NewInlineQueryResultArticleMarkdownV2(id, m.Title, r.caption(m))
	res.Description = summary
	if hasMarkup {
		res.ReplyMarkup = &markup
	}
	return res
}
