package morseverse

import (
	"context"

	"github.com/rs/zerolog/log"
)

// AskText sends a text question on behalf of userID.
func (c *Client) AskText(ctx context.Context, userID, lang, question string) (*Response, error) {
	log.Info().
		Str("user_id", userID).
		Str("language", lang).
		Msg("Sending text question to Morseverse")

	request := TextMessageRequest{
		CompanyID: c.config.CompanyID,
		UserID:    userID,
		Lang:      lang,
		Question:  question,
	}

	return c.askJSON(ctx, c.config.BaseURL+TextMessagePath, request)
}
