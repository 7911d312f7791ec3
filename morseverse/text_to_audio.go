package morseverse

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
)

var errEmptyAudio = errors.New("text to audio returned an empty body")

// SynthesizeVoice converts text to speech. Only a 200 response yields audio.
func (c *Client) SynthesizeVoice(ctx context.Context, text string) (*Audio, error) {
	log.Info().
		Int("text_length", len(text)).
		Msg("Converting text to speech")

	data, header, err := c.postJSON(ctx, c.config.TTSURL, TextToAudioRequest{Text: text})
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errEmptyAudio
	}

	log.Info().
		Int("audio_size_bytes", len(data)).
		Msg("Text to speech conversion completed")

	return &Audio{
		Data:        data,
		ContentType: header.Get("Content-Type"),
	}, nil
}
