package morseverse

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

const maxErrorBodyLength = 512

// postJSON sends body as JSON and returns the raw response body of a 200 reply.
func (c *Client) postJSON(ctx context.Context, url string, body any) ([]byte, http.Header, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: request failed: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: failed to read response body: %w", ErrUnavailable, err)
	}

	log.Debug().
		Str("url", url).
		Int("status_code", resp.StatusCode).
		Int("response_size", len(respBody)).
		Msg("Received response from Morseverse")

	if resp.StatusCode != http.StatusOK {
		return nil, nil, &APIError{
			StatusCode: resp.StatusCode,
			Body:       truncate(strings.TrimSpace(string(respBody)), maxErrorBodyLength),
		}
	}

	return respBody, resp.Header, nil
}

func (c *Client) askJSON(ctx context.Context, url string, body any) (*Response, error) {
	respBody, _, err := c.postJSON(ctx, url, body)
	if err != nil {
		return nil, err
	}

	var result Response
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	// null, {} and error objects decode cleanly but carry nothing to relay.
	if result.Answer == "" && len(result.Links) == 0 {
		return nil, fmt.Errorf("%w: no answer in %s", ErrMalformedResponse, truncate(strings.TrimSpace(string(respBody)), maxErrorBodyLength))
	}

	return &result, nil
}

func truncate(text string, maxLength int) string {
	if len(text) <= maxLength {
		return text
	}
	return text[:maxLength] + "..."
}
