package relay

import (
	"context"

	"github.com/NextMind-AI/relay-go/audio"
	"github.com/NextMind-AI/relay-go/morseverse"
)

type Backend interface {
	AskText(ctx context.Context, userID, lang, question string) (*morseverse.Response, error)
	AskVoice(ctx context.Context, userID, lang string, wav []byte) (*morseverse.Response, error)
	SynthesizeVoice(ctx context.Context, text string) (*morseverse.Audio, error)
}

type TelegramSender interface {
	SendText(ctx context.Context, chatID int64, text string) error
	SendVoice(ctx context.Context, chatID int64, path string) error
	SendLanguageMenu(ctx context.Context, chatID int64) error
	AnswerCallback(ctx context.Context, callbackID, text string) error
	ResolveFileLocation(ctx context.Context, fileID string) (string, error)
}

type SMSSender interface {
	SendText(ctx context.Context, to, text string) error
	SendVoice(ctx context.Context, to, path string) error
	SendLanguageMenu(ctx context.Context, to string) error
	MediaAuth() *audio.BasicAuth
}

type AudioFetcher interface {
	Fetch(ctx context.Context, ws *audio.Workspace, mediaURL, name string, auth *audio.BasicAuth) (string, error)
}

type Transcoder interface {
	ToWAV(ctx context.Context, input string) (string, error)
	ToOpus(ctx context.Context, input string) (string, error)
}
