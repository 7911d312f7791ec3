// Package twilio sends relay replies over SMS and WhatsApp via Twilio.
package twilio

import (
	"context"
	"strings"
	"time"

	twiliogo "github.com/twilio/twilio-go"
	"github.com/twilio/twilio-go/client"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/NextMind-AI/relay-go/audio"
	"github.com/NextMind-AI/relay-go/language"
)

const (
	whatsappPrefix = "whatsapp:"
	menuPrompt     = "Please select your language by replying with one of:"
)

type messageCreator interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

// AudioUploader publishes a voice reply and returns a URL Twilio can fetch.
type AudioUploader interface {
	UploadAudio(ctx context.Context, data []byte, ext, contentType string) (string, error)
}

type Config struct {
	AccountSID  string
	AuthToken   string
	PhoneNumber string
}

type Client struct {
	config    Config
	messages  messageCreator
	uploader  AudioUploader
	languages []language.Option
	validator client.RequestValidator
}

// NewClient builds a Twilio REST client. uploader may be nil, in which case
// voice replies are rejected.
func NewClient(accountSID, authToken, phoneNumber string, languages []language.Option, uploader AudioUploader, timeout time.Duration) *Client {
	rest := twiliogo.NewRestClientWithParams(twiliogo.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	if timeout > 0 {
		rest.SetTimeout(timeout)
	}

	return newClient(Config{
		AccountSID:  accountSID,
		AuthToken:   authToken,
		PhoneNumber: phoneNumber,
	}, rest.Api, uploader, languages)
}

func newClient(config Config, messages messageCreator, uploader AudioUploader, languages []language.Option) *Client {
	return &Client{
		config:    config,
		messages:  messages,
		uploader:  uploader,
		languages: languages,
		validator: client.NewRequestValidator(config.AuthToken),
	}
}

// MediaAuth returns the account credentials Twilio requires on media URLs.
func (c *Client) MediaAuth() *audio.BasicAuth {
	return &audio.BasicAuth{
		Username: c.config.AccountSID,
		Password: c.config.AuthToken,
	}
}

// ValidateSignature checks the X-Twilio-Signature header against the public
// webhook URL and the posted form parameters.
func (c *Client) ValidateSignature(url string, params map[string]string, signature string) bool {
	if signature == "" {
		return false
	}
	return c.validator.Validate(url, params, signature)
}

// senderFor mirrors the channel of the inbound number, so WhatsApp users get
// replies from the WhatsApp sender.
func (c *Client) senderFor(to string) string {
	from := c.config.PhoneNumber
	if isWhatsApp(to) && !isWhatsApp(from) {
		return whatsappPrefix + from
	}
	return from
}

func isWhatsApp(number string) bool {
	return strings.HasPrefix(number, whatsappPrefix)
}
