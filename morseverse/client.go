// Package morseverse is a client for the Morseverse conversational-AI backend:
// text questions, voice questions and text-to-speech.
package morseverse

import (
	"net/http"
	"strings"
)

const (
	TextMessagePath  = "/textusermessage"
	VoiceMessagePath = "/usermessage"
)

// WAV payload encodings accepted by the voice endpoint.
const (
	EncodingBase64 = "base64"
	EncodingHex    = "hex"
)

type Config struct {
	CompanyID   string
	BaseURL     string
	TTSURL      string
	WAVEncoding string
}

type Client struct {
	config     Config
	httpClient *http.Client
}

func NewClient(companyID, baseURL, ttsURL, wavEncoding string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if wavEncoding == "" {
		wavEncoding = EncodingBase64
	}

	return &Client{
		config: Config{
			CompanyID:   companyID,
			BaseURL:     strings.TrimRight(baseURL, "/"),
			TTSURL:      ttsURL,
			WAVEncoding: wavEncoding,
		},
		httpClient: httpClient,
	}
}
