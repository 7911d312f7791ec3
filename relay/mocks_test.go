package relay

import (
	"context"
	"os"
	"strconv"
	"sync"

	"github.com/NextMind-AI/relay-go/audio"
	"github.com/NextMind-AI/relay-go/morseverse"
)

type fakeBackend struct {
	mu         sync.Mutex
	textCalls  []string
	voiceCalls [][]byte
	langs      []string
	ttsCalls   []string

	response *morseverse.Response
	err      error
	speech   *morseverse.Audio
	ttsErr   error
}

func (f *fakeBackend) AskText(_ context.Context, userID, lang, question string) (*morseverse.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.textCalls = append(f.textCalls, question)
	f.langs = append(f.langs, lang)
	return f.response, f.err
}

func (f *fakeBackend) AskVoice(_ context.Context, userID, lang string, wav []byte) (*morseverse.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.voiceCalls = append(f.voiceCalls, wav)
	f.langs = append(f.langs, lang)
	return f.response, f.err
}

func (f *fakeBackend) SynthesizeVoice(_ context.Context, text string) (*morseverse.Audio, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ttsCalls = append(f.ttsCalls, text)
	if f.ttsErr != nil {
		return nil, f.ttsErr
	}
	if f.speech != nil {
		return f.speech, nil
	}
	return &morseverse.Audio{Data: []byte("mp3"), ContentType: "audio/mpeg"}, nil
}

func (f *fakeBackend) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.textCalls) + len(f.voiceCalls)
}

type sentText struct {
	to   string
	text string
}

type fakeTelegram struct {
	texts     []sentText
	voices    []string
	menus     []int64
	callbacks []string
	sendErr   error
	location  string
	fileErr   error
	panicOn   string
}

func (f *fakeTelegram) SendText(ctx context.Context, chatID int64, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if f.panicOn == text {
		panic("send exploded")
	}
	f.texts = append(f.texts, sentText{to: formatChat(chatID), text: text})
	return f.sendErr
}

func (f *fakeTelegram) SendVoice(_ context.Context, chatID int64, path string) error {
	data, _ := os.ReadFile(path)
	f.voices = append(f.voices, string(data))
	return f.sendErr
}

func (f *fakeTelegram) SendLanguageMenu(_ context.Context, chatID int64) error {
	f.menus = append(f.menus, chatID)
	return f.sendErr
}

func (f *fakeTelegram) AnswerCallback(_ context.Context, callbackID, text string) error {
	f.callbacks = append(f.callbacks, callbackID+":"+text)
	return nil
}

func (f *fakeTelegram) ResolveFileLocation(_ context.Context, fileID string) (string, error) {
	if f.fileErr != nil {
		return "", f.fileErr
	}
	if f.location != "" {
		return f.location, nil
	}
	return "https://files.example.com/" + fileID + ".oga", nil
}

func formatChat(chatID int64) string {
	return "chat:" + strconv.FormatInt(chatID, 10)
}

type fakeSMS struct {
	texts   []sentText
	voices  []string
	menus   []string
	sendErr error
}

func (f *fakeSMS) SendText(_ context.Context, to, text string) error {
	f.texts = append(f.texts, sentText{to: to, text: text})
	return f.sendErr
}

func (f *fakeSMS) SendVoice(_ context.Context, to, path string) error {
	data, _ := os.ReadFile(path)
	f.voices = append(f.voices, string(data))
	return f.sendErr
}

func (f *fakeSMS) SendLanguageMenu(_ context.Context, to string) error {
	f.menus = append(f.menus, to)
	return f.sendErr
}

func (f *fakeSMS) MediaAuth() *audio.BasicAuth {
	return &audio.BasicAuth{Username: "AC123", Password: "secret"}
}

type fetchCall struct {
	url  string
	name string
	auth *audio.BasicAuth
}

type fakeFetcher struct {
	calls      []fetchCall
	workspaces []string
	err        error
}

func (f *fakeFetcher) Fetch(_ context.Context, ws *audio.Workspace, mediaURL, name string, auth *audio.BasicAuth) (string, error) {
	f.calls = append(f.calls, fetchCall{url: mediaURL, name: name, auth: auth})
	f.workspaces = append(f.workspaces, ws.Dir())
	if f.err != nil {
		return "", f.err
	}
	if name == "" {
		name = audio.FileName(mediaURL, "")
	}
	return ws.WriteFile(name, []byte("ogg-input"))
}

type fakeTranscoder struct {
	wavErr  error
	opusErr error
}

func (f *fakeTranscoder) ToWAV(_ context.Context, input string) (string, error) {
	if f.wavErr != nil {
		return "", f.wavErr
	}
	output := input + ".wav"
	return output, os.WriteFile(output, []byte("RIFF-wav"), 0o600)
}

func (f *fakeTranscoder) ToOpus(_ context.Context, input string) (string, error) {
	if f.opusErr != nil {
		return "", f.opusErr
	}
	data, err := os.ReadFile(input)
	if err != nil {
		return "", err
	}
	output := input + ".ogg"
	return output, os.WriteFile(output, append([]byte("opus:"), data...), 0o600)
}
