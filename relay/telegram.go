package relay

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/NextMind-AI/relay-go/identity"
)

func (r *Relay) telegramConversation(chatID, userID int64) conversation {
	return conversation{
		userID:  identity.MapInt(userID),
		channel: "telegram",
		sendText: func(ctx context.Context, text string) error {
			return r.telegram.SendText(ctx, chatID, text)
		},
		sendVoice: func(ctx context.Context, path string) error {
			return r.telegram.SendVoice(ctx, chatID, path)
		},
	}
}

func (r *Relay) handleTelegramMessage(ctx context.Context, msg TelegramMessage) Status {
	conv := r.telegramConversation(msg.ChatID, msg.UserID)

	log.Info().
		Int64("chat_id", msg.ChatID).
		Str("user_id", conv.userID).
		Bool("has_text", msg.HasText).
		Bool("has_voice", msg.VoiceFileID != "").
		Msg("Processing Telegram message")

	switch {
	case msg.HasText && isStartCommand(msg.Text):
		if err := r.telegram.SendLanguageMenu(ctx, msg.ChatID); err != nil {
			return r.deliveryFailed(conv, err)
		}
		return Success()

	case msg.HasText:
		return r.answerText(ctx, conv, msg.Text)

	case msg.VoiceFileID != "":
		location, err := r.telegram.ResolveFileLocation(ctx, msg.VoiceFileID)
		if err != nil {
			return r.fail(ctx, conv, err)
		}
		return r.answerVoice(ctx, conv, voiceSource{url: location})

	default:
		return Status{Status: StatusUnhandled}
	}
}

func (r *Relay) handleTelegramCallback(ctx context.Context, cb TelegramCallback) Status {
	conv := r.telegramConversation(cb.ChatID, cb.UserID)

	code, ok := r.selectLanguage(conv.userID, cb.Data)
	if !ok {
		log.Info().Str("data", cb.Data).Msg("Ignoring unknown callback data")
		return Status{Status: StatusUnhandled}
	}

	confirmation := languageSetMessage(code)
	if err := r.telegram.AnswerCallback(ctx, cb.CallbackID, confirmation); err != nil {
		log.Warn().Err(err).Str("callback_id", cb.CallbackID).Msg("Failed to answer callback query")
	}
	if err := conv.sendText(ctx, confirmation); err != nil {
		return r.deliveryFailed(conv, err)
	}
	return Success()
}
