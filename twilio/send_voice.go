package twilio

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var errNoUploader = errors.New("voice replies need S3 storage configured")

// SendVoice publishes the file and sends it as a media message.
func (c *Client) SendVoice(ctx context.Context, to, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.uploader == nil {
		return errNoUploader
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read voice reply: %w", err)
	}

	mediaURL, err := c.uploader.UploadAudio(ctx, data, filepath.Ext(path), "audio/ogg")
	if err != nil {
		return err
	}

	params := c.createMessage(to)
	params.SetMediaUrl([]string{mediaURL})

	return c.send(params, "voice")
}
