package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// ResolveFileLocation turns a file_id into a download URL.
func (c *Client) ResolveFileLocation(ctx context.Context, fileID string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	file, err := c.bot.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return "", fmt.Errorf("telegram getFile: %w", err)
	}
	if file.FilePath == "" {
		return "", fmt.Errorf("telegram getFile: no file_path for %s", fileID)
	}

	return fmt.Sprintf(c.fileEndpoint, c.bot.Token, file.FilePath), nil
}
