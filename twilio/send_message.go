package twilio

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

func (c *Client) SendText(ctx context.Context, to, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	params := c.createMessage(to)
	params.SetBody(text)

	return c.send(params, "text")
}

// SendLanguageMenu lists the selection replies the user can send back.
func (c *Client) SendLanguageMenu(ctx context.Context, to string) error {
	var b strings.Builder
	b.WriteString(menuPrompt)
	for _, option := range c.languages {
		fmt.Fprintf(&b, "\n%s - %s", option.SelectionData(), option.Label)
	}
	return c.SendText(ctx, to, b.String())
}

func (c *Client) createMessage(to string) *openapi.CreateMessageParams {
	params := &openapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(c.senderFor(to))
	return params
}

func (c *Client) send(params *openapi.CreateMessageParams, kind string) error {
	resp, err := c.messages.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("twilio create %s message: %w", kind, err)
	}

	event := log.Info().Str("to", *params.To).Str("kind", kind)
	if resp != nil && resp.Sid != nil {
		event = event.Str("sid", *resp.Sid)
	}
	event.Msg("Twilio message sent")

	return nil
}
