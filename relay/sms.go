package relay

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/NextMind-AI/relay-go/audio"
	"github.com/NextMind-AI/relay-go/identity"
)

var errSMSDisabled = errors.New("SMS gateway not configured")

const noContentMessage = "Sorry, I didn't receive any message content."

func (r *Relay) handleSMS(ctx context.Context, msg SMSMessage) Status {
	if r.sms == nil {
		log.Warn().Str("from", msg.From).Msg("SMS received but no SMS gateway is configured")
		return ErrorStatus(errSMSDisabled)
	}

	conv := conversation{
		userID:  identity.Map(msg.From),
		channel: "sms",
		sendText: func(ctx context.Context, text string) error {
			return r.sms.SendText(ctx, msg.From, text)
		},
		sendVoice: func(ctx context.Context, path string) error {
			return r.sms.SendVoice(ctx, msg.From, path)
		},
	}

	log.Info().
		Str("from", msg.From).
		Str("user_id", conv.userID).
		Int("num_media", msg.NumMedia).
		Msg("Processing SMS message")

	body := strings.TrimSpace(msg.Body)

	switch {
	case msg.NumMedia > 0 && audio.IsAudio(msg.MediaContentType):
		return r.answerVoice(ctx, conv, voiceSource{
			url:  msg.MediaURL,
			name: audio.FileName(msg.MediaURL, msg.MediaContentType),
			auth: r.sms.MediaAuth(),
		})

	case msg.NumMedia > 0:
		return r.reply(ctx, conv, fmt.Sprintf("Received your %s file.", msg.MediaContentType))

	case body == "":
		return r.reply(ctx, conv, noContentMessage)

	case isStartCommand(body):
		if err := r.sms.SendLanguageMenu(ctx, msg.From); err != nil {
			return r.deliveryFailed(conv, err)
		}
		return Success()

	default:
		if code, ok := r.selectLanguage(conv.userID, body); ok {
			return r.reply(ctx, conv, languageSetMessage(code))
		}
		return r.answerText(ctx, conv, body)
	}
}

func (r *Relay) reply(ctx context.Context, conv conversation, text string) Status {
	if err := conv.sendText(ctx, text); err != nil {
		return r.deliveryFailed(conv, err)
	}
	return Success()
}
