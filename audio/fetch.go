package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/rs/zerolog/log"
)

// ErrTooLarge is returned when a download exceeds the configured limit.
var ErrTooLarge = errors.New("audio file too large")

// BasicAuth holds optional credentials for media URLs that require them.
type BasicAuth struct {
	Username string
	Password string
}

type Fetcher struct {
	httpClient *http.Client
	maxBytes   int64
}

func NewFetcher(httpClient *http.Client, maxBytes int64) *Fetcher {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Fetcher{
		httpClient: httpClient,
		maxBytes:   maxBytes,
	}
}

// Fetch downloads mediaURL into the workspace. When name is empty the file name is
// derived from the URL or the response content type.
func (f *Fetcher) Fetch(ctx context.Context, ws *Workspace, mediaURL, name string, auth *BasicAuth) (string, error) {
	log.Debug().Str("url", RedactURL(mediaURL)).Msg("Downloading audio file")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mediaURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create download request: %w", withoutURL(err))
	}
	if auth != nil && auth.Username != "" {
		req.SetBasicAuth(auth.Username, auth.Password)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download %s: %w", RedactURL(mediaURL), withoutURL(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("failed to download file: HTTP %d", resp.StatusCode)
	}

	if f.maxBytes > 0 && resp.ContentLength > f.maxBytes {
		return "", fmt.Errorf("%w: %d bytes", ErrTooLarge, resp.ContentLength)
	}

	if name == "" {
		name = FileName(mediaURL, resp.Header.Get("Content-Type"))
	}
	target := ws.Path(name)

	file, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", target, err)
	}
	defer file.Close()

	var body io.Reader = resp.Body
	if f.maxBytes > 0 {
		body = io.LimitReader(resp.Body, f.maxBytes+1)
	}

	written, err := io.Copy(file, body)
	if err != nil {
		return "", fmt.Errorf("failed to read file data: %w", err)
	}
	if f.maxBytes > 0 && written > f.maxBytes {
		return "", fmt.Errorf("%w: more than %d bytes", ErrTooLarge, f.maxBytes)
	}

	log.Debug().
		Int64("file_size", written).
		Str("path", target).
		Msg("Audio file downloaded successfully")

	return target, nil
}

// RedactURL keeps only the scheme, host and last path segment of rawURL.
// Telegram file URLs carry the bot token in an earlier segment.
func RedactURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "<invalid url>"
	}
	return u.Scheme + "://" + u.Host + "/.../" + path.Base(u.Path)
}

// withoutURL drops the request URL that net/http puts in its errors.
func withoutURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s: %w", urlErr.Op, urlErr.Err)
	}
	return err
}

// FileName picks a local file name from the URL's last segment, falling back
// to an extension derived from the content type.
func FileName(rawURL, contentType string) string {
	if u, err := url.Parse(rawURL); err == nil {
		base := path.Base(u.Path)
		if base != "." && base != "/" && strings.Contains(base, ".") {
			return base
		}
	}
	return "voice_message" + ExtensionFor(contentType)
}

// ExtensionFor returns a file extension for an audio content type.
func ExtensionFor(contentType string) string {
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = strings.TrimSpace(contentType[:idx])
	}

	switch contentType {
	case "audio/mpeg", "audio/mp3":
		return ".mp3"
	case "audio/wav", "audio/wave", "audio/x-wav":
		return ".wav"
	case "audio/ogg", "audio/opus":
		return ".ogg"
	case "audio/aac":
		return ".aac"
	case "audio/amr":
		return ".amr"
	case "audio/mp4", "audio/m4a", "audio/x-m4a":
		return ".m4a"
	case "audio/webm":
		return ".webm"
	default:
		return ".audio"
	}
}

// IsAudio reports whether a media content type is audio.
func IsAudio(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "audio/")
}
