package telegram

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

func (c *Client) SendText(ctx context.Context, chatID int64, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	message := tgbotapi.NewMessage(chatID, truncateText(text))
	sent, err := c.bot.Send(message)
	if err != nil {
		return fmt.Errorf("telegram sendMessage: %w", err)
	}

	log.Debug().
		Int64("chat_id", chatID).
		Int("message_id", sent.MessageID).
		Msg("Telegram message sent")

	return nil
}

// SendLanguageMenu sends one inline button per configured language. Pressing
// a button produces a callback query with data "set_lang_<CODE>".
func (c *Client) SendLanguageMenu(ctx context.Context, chatID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(c.languages))
	for _, option := range c.languages {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(option.Label, option.SelectionData()),
		))
	}

	message := tgbotapi.NewMessage(chatID, menuPrompt)
	message.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)

	if _, err := c.bot.Send(message); err != nil {
		return fmt.Errorf("telegram language menu: %w", err)
	}

	log.Info().Int64("chat_id", chatID).Msg("Language options sent")
	return nil
}

// AnswerCallback stops the client-side spinner on the pressed button.
func (c *Client) AnswerCallback(ctx context.Context, callbackID, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if callbackID == "" {
		return nil
	}

	if _, err := c.bot.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		return fmt.Errorf("telegram answerCallbackQuery: %w", err)
	}
	return nil
}

func truncateText(text string) string {
	text = strings.ToValidUTF8(text, "")
	if utf8.RuneCountInString(text) <= maxMessageLength {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxMessageLength-3]) + "..."
}
