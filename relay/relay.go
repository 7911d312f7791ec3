// Package relay turns inbound webhook events into backend questions and sends
// the answers back over the channel they came from.
package relay

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/NextMind-AI/relay-go/language"
	"github.com/NextMind-AI/relay-go/morseverse"
)

// errorReplyTimeout bounds the error message sent after the request
// context has already expired.
const errorReplyTimeout = 10 * time.Second

// Voice reply sources.
const (
	VoiceSourceVoiceAnswer = "voice_answer"
	VoiceSourceAnswer      = "answer"
)

type Config struct {
	ErrorMessage      string
	AudioDir          string
	VoiceReplyEnabled bool
	VoiceReplySource  string
	Languages         []language.Option
}

type Relay struct {
	config     Config
	backend    Backend
	store      language.Store
	telegram   TelegramSender
	sms        SMSSender
	fetcher    AudioFetcher
	transcoder Transcoder
}

// New wires the relay. sms may be nil when no SMS gateway is configured.
func New(config Config, backend Backend, store language.Store, telegram TelegramSender, sms SMSSender, fetcher AudioFetcher, transcoder Transcoder) *Relay {
	return &Relay{
		config:     config,
		backend:    backend,
		store:      store,
		telegram:   telegram,
		sms:        sms,
		fetcher:    fetcher,
		transcoder: transcoder,
	}
}

// conversation is the reply side of one inbound event.
type conversation struct {
	userID    string
	channel   string
	sendText  func(ctx context.Context, text string) error
	sendVoice func(ctx context.Context, path string) error
}

// Handle runs the event to completion and reports the outcome. It never
// panics; a panic in any step is logged and reported as an error status.
func (r *Relay) Handle(ctx context.Context, event Event) (status Status) {
	defer func() {
		if p := recover(); p != nil {
			log.Error().
				Interface("panic", p).
				Str("event", event.eventName()).
				Msg("Recovered from panic while handling event")
			status = ErrorStatus(fmt.Errorf("%w: %v", ErrUnexpected, p))
		}
	}()

	switch ev := event.(type) {
	case TelegramMessage:
		return r.handleTelegramMessage(ctx, ev)
	case TelegramCallback:
		return r.handleTelegramCallback(ctx, ev)
	case SMSMessage:
		return r.handleSMS(ctx, ev)
	case Unrecognized:
		log.Info().Str("status", ev.Status).Msg("Ignoring unrecognized event")
		return Status{Status: ev.Status}
	default:
		return Status{Status: StatusUnhandled}
	}
}

func (r *Relay) answerText(ctx context.Context, conv conversation, question string) Status {
	lang := r.store.Get(conv.userID)

	log.Info().
		Str("user_id", conv.userID).
		Str("channel", conv.channel).
		Str("lang", lang).
		Msg("Forwarding text question to backend")

	response, err := r.backend.AskText(ctx, conv.userID, lang, question)
	if err != nil {
		return r.fail(ctx, conv, err)
	}

	return r.relayAnswer(ctx, conv, response)
}

func (r *Relay) relayAnswer(ctx context.Context, conv conversation, response *morseverse.Response) Status {
	text := FormatAnswer(response)
	if text == "" {
		log.Warn().Str("user_id", conv.userID).Msg("Backend returned an empty answer")
		return Success()
	}

	if err := conv.sendText(ctx, text); err != nil {
		return r.deliveryFailed(conv, err)
	}
	return Success()
}

// FormatAnswer appends each link on its own line after the answer.
func FormatAnswer(response *morseverse.Response) string {
	if response == nil {
		return ""
	}
	if len(response.Links) == 0 {
		return response.Answer
	}
	return response.Answer + "\n" + strings.Join(response.Links, "\n")
}

// fail reports a failed request to the user with the generic error message.
func (r *Relay) fail(ctx context.Context, conv conversation, err error) Status {
	log.Error().
		Err(err).
		AnErr("kind", Classify(err)).
		Str("user_id", conv.userID).
		Str("channel", conv.channel).
		Msg("Error handling event")

	// The request may have failed because its deadline passed; the user is
	// still told.
	replyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), errorReplyTimeout)
	defer cancel()

	if sendErr := conv.sendText(replyCtx, r.config.ErrorMessage); sendErr != nil {
		log.Error().
			Err(sendErr).
			Str("user_id", conv.userID).
			Msg("Failed to deliver error message")
	}

	return ErrorStatus(err)
}

func (r *Relay) deliveryFailed(conv conversation, err error) Status {
	err = fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	log.Error().
		Err(err).
		Str("user_id", conv.userID).
		Str("channel", conv.channel).
		Msg("Failed to deliver reply")
	return ErrorStatus(err)
}

func (r *Relay) selectLanguage(userID, data string) (string, bool) {
	code, ok := language.ParseSelection(data)
	if !ok {
		return "", false
	}
	for _, option := range r.config.Languages {
		if strings.EqualFold(option.Code, code) {
			code = option.Code
			break
		}
	}

	r.store.Set(userID, code)
	log.Info().Str("user_id", userID).Str("lang", code).Msg("User language updated")
	return code, true
}

func languageSetMessage(code string) string {
	return fmt.Sprintf("Language set to %s.", code)
}

func isStartCommand(text string) bool {
	text = strings.ToLower(strings.TrimSpace(text))
	return text == "start" || text == "/start"
}
