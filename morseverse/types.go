package morseverse

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable covers network failures and non-200 responses.
	ErrUnavailable = errors.New("morseverse unavailable")
	// ErrMalformedResponse is returned when a 200 response is not valid JSON.
	ErrMalformedResponse = errors.New("invalid JSON response from Morseverse API")
)

type TextMessageRequest struct {
	CompanyID string `json:"companyId"`
	UserID    string `json:"userId"`
	Lang      string `json:"lang"`
	Question  string `json:"question"`
}

type VoiceMessageRequest struct {
	CompanyID string `json:"companyId"`
	UserID    string `json:"userId"`
	Lang      string `json:"lang"`
	WAVData   string `json:"wavData"`
}

type TextToAudioRequest struct {
	Text string `json:"text"`
}

// Response is the backend's answer to a text or voice question.
type Response struct {
	Answer      string   `json:"answer"`
	Links       []string `json:"links"`
	VoiceAnswer string   `json:"voiceAnswer"`
}

// Audio is synthesized speech as returned by the text-to-speech endpoint.
type Audio struct {
	Data        []byte
	ContentType string
}

type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP error %d: %s", e.StatusCode, e.Body)
}

func (e *APIError) Is(target error) bool {
	return target == ErrUnavailable
}
