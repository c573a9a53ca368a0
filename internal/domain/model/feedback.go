package model

import (
	"strings"
	"time"

	"telegram-movie-bot/internal/domain"

	"github.com/oklog/ulid/v2"
)

// Feedback is a free-text note left by a user via /feedback.
type Feedback struct {
	ID         string    `json:"id"`
	TelegramID int64     `json:"tg_id"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewFeedback(tgID int64, text string) (*Feedback, error) {
	text = strings.TrimSpace(text)
	if tgID == 0 || text == "" {
		return nil, domain.ErrInvalidArgument
	}
	now := time.Now().UTC()
	return &Feedback{
		ID:         ulid.Make().String(),
		TelegramID: tgID,
		Text:       text,
		CreatedAt:  now,
	}, nil
}
