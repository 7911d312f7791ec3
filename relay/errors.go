package relay

import (
	"errors"

	"github.com/NextMind-AI/relay-go/audio"
	"github.com/NextMind-AI/relay-go/morseverse"
)

var (
	ErrTransportUnrecognized = errors.New("transport unrecognized")
	ErrMalformedEvent        = errors.New("malformed event payload")
	ErrBackendUnavailable    = errors.New("backend unavailable")
	ErrBackendMalformed      = errors.New("backend returned malformed response")
	ErrTranscodeFailure      = errors.New("audio transcode failed")
	ErrDeliveryFailed        = errors.New("delivery failed")
	ErrUnexpected            = errors.New("unexpected error")
)

// Classify maps an error from any layer of the relay onto one of the
// sentinel kinds above. It returns nil for a nil error.
func Classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrTransportUnrecognized):
		return ErrTransportUnrecognized
	case errors.Is(err, ErrMalformedEvent):
		return ErrMalformedEvent
	case errors.Is(err, ErrDeliveryFailed):
		return ErrDeliveryFailed
	case errors.Is(err, morseverse.ErrMalformedResponse), errors.Is(err, ErrBackendMalformed):
		return ErrBackendMalformed
	case errors.Is(err, morseverse.ErrUnavailable), errors.Is(err, ErrBackendUnavailable):
		return ErrBackendUnavailable
	case errors.Is(err, audio.ErrTranscode), errors.Is(err, ErrTranscodeFailure):
		return ErrTranscodeFailure
	default:
		return ErrUnexpected
	}
}
