package morseverse

import (
	"context"
	"encoding/base64"
	"encoding/hex"

	"github.com/rs/zerolog/log"
)

// AskVoice sends a WAV recording as the question. The response status is
// checked the same way as for text questions.
func (c *Client) AskVoice(ctx context.Context, userID, lang string, wav []byte) (*Response, error) {
	log.Info().
		Str("user_id", userID).
		Str("language", lang).
		Int("wav_size_bytes", len(wav)).
		Str("encoding", c.config.WAVEncoding).
		Msg("Sending voice question to Morseverse")

	request := VoiceMessageRequest{
		CompanyID: c.config.CompanyID,
		UserID:    userID,
		Lang:      lang,
		WAVData:   c.encodeWAV(wav),
	}

	return c.askJSON(ctx, c.config.BaseURL+VoiceMessagePath, request)
}

func (c *Client) encodeWAV(wav []byte) string {
	if c.config.WAVEncoding == EncodingHex {
		return hex.EncodeToString(wav)
	}
	return base64.StdEncoding.EncodeToString(wav)
}
