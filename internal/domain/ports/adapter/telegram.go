// File: internal/domain/ports/adapter/telegram.go
package adapter

import (
	"context"

	"telegram-movie-bot/internal/domain/model"
)

// InlineButton is one keyboard button. Exactly one of Data, URL or
// SwitchInline is expected to be set.
type InlineButton struct {
	Text         string
	Data         string
	URL          string
	SwitchInline bool // opens inline search in the current chat
}

// ChannelPublisher posts a formatted movie card to the configured broadcast
// channel.
type ChannelPublisher interface {
	PublishCard(ctx context.Context, movie *model.Movie) error
}
