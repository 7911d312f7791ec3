// Package telegram sends relay replies through the Telegram Bot API.
package telegram

import (
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/NextMind-AI/relay-go/language"
)

const (
	maxMessageLength = 4096
	menuPrompt       = "Please select your language:"
)

type Client struct {
	bot          *tgbotapi.BotAPI
	fileEndpoint string
	languages    []language.Option
}

// NewClient builds a bot client without calling getMe, so startup does not
// depend on Telegram being reachable. apiEndpoint and fileEndpoint are
// format strings taking the token and the method or file path.
func NewClient(token, apiEndpoint, fileEndpoint string, languages []language.Option, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if apiEndpoint == "" {
		apiEndpoint = tgbotapi.APIEndpoint
	}
	if fileEndpoint == "" {
		fileEndpoint = tgbotapi.FileEndpoint
	}

	bot := &tgbotapi.BotAPI{
		Token:  token,
		Client: httpClient,
		Buffer: 100,
	}
	bot.SetAPIEndpoint(apiEndpoint)

	return &Client{
		bot:          bot,
		fileEndpoint: fileEndpoint,
		languages:    languages,
	}
}
