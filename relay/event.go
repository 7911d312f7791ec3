package relay

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	contentTypeJSON = "application/json"
	contentTypeForm = "application/x-www-form-urlencoded"
)

// Event is one inbound webhook call, parsed into exactly one of
// TelegramMessage, TelegramCallback, SMSMessage or Unrecognized.
type Event interface {
	eventName() string
}

type TelegramMessage struct {
	ChatID      int64
	UserID      int64
	Text        string
	HasText     bool
	VoiceFileID string
}

type TelegramCallback struct {
	CallbackID string
	ChatID     int64
	UserID     int64
	Data       string
}

type SMSMessage struct {
	From             string
	To               string
	Body             string
	NumMedia         int
	MediaURL         string
	MediaContentType string
	// Params holds every posted field, for signature validation.
	Params map[string]string
}

// Unrecognized carries the status to report for payloads nothing handles.
type Unrecognized struct {
	Status string
}

func (TelegramMessage) eventName() string  { return "telegram_message" }
func (TelegramCallback) eventName() string { return "telegram_callback" }
func (SMSMessage) eventName() string       { return "sms_message" }
func (Unrecognized) eventName() string     { return "unrecognized" }

// ParseEvent decides which transport sent body from its content type and
// shape. Bodies that cannot be decoded at all return ErrMalformedEvent.
func ParseEvent(contentType string, body []byte) (Event, error) {
	mediaType := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))

	switch mediaType {
	case contentTypeJSON:
		return parseTelegram(body)
	case contentTypeForm:
		return parseSMS(body)
	default:
		return Unrecognized{Status: StatusUnsupported}, nil
	}
}

func parseTelegram(body []byte) (Event, error) {
	var update tgbotapi.Update
	if err := json.Unmarshal(body, &update); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedEvent, err)
	}

	switch {
	case update.Message != nil:
		message := update.Message
		if message.Chat == nil {
			return Unrecognized{Status: StatusUnhandled}, nil
		}
		event := TelegramMessage{
			ChatID:  message.Chat.ID,
			UserID:  message.Chat.ID,
			Text:    message.Text,
			HasText: message.Text != "",
		}
		if message.From != nil {
			event.UserID = message.From.ID
		}
		if message.Voice != nil {
			event.VoiceFileID = message.Voice.FileID
		}
		return event, nil

	case update.CallbackQuery != nil:
		query := update.CallbackQuery
		if query.Message == nil || query.Message.Chat == nil || query.From == nil {
			return Unrecognized{Status: StatusUnhandled}, nil
		}
		return TelegramCallback{
			CallbackID: query.ID,
			ChatID:     query.Message.Chat.ID,
			UserID:     query.From.ID,
			Data:       query.Data,
		}, nil

	default:
		return Unrecognized{Status: StatusUnhandled}, nil
	}
}

func parseSMS(body []byte) (Event, error) {
	values, err := url.ParseQuery(string(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedEvent, err)
	}
	if !values.Has("Body") || values.Get("From") == "" {
		return Unrecognized{Status: StatusUnhandled}, nil
	}

	params := make(map[string]string, len(values))
	for key := range values {
		params[key] = values.Get(key)
	}

	numMedia, _ := strconv.Atoi(values.Get("NumMedia"))

	return SMSMessage{
		From:             values.Get("From"),
		To:               values.Get("To"),
		Body:             values.Get("Body"),
		NumMedia:         numMedia,
		MediaURL:         values.Get("MediaUrl0"),
		MediaContentType: values.Get("MediaContentType0"),
		Params:           params,
	}, nil
}
