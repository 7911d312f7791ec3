package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

// SendVoice uploads an OGG/Opus file as a voice note.
func (c *Client) SendVoice(ctx context.Context, chatID int64, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	voice := tgbotapi.NewVoice(chatID, tgbotapi.FilePath(path))
	if _, err := c.bot.Send(voice); err != nil {
		return fmt.Errorf("telegram sendVoice: %w", err)
	}

	log.Info().Int64("chat_id", chatID).Msg("Voice answer sent")
	return nil
}
