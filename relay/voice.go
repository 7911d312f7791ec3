package relay

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/NextMind-AI/relay-go/audio"
	"github.com/NextMind-AI/relay-go/morseverse"
)

type voiceSource struct {
	url  string
	name string
	auth *audio.BasicAuth
}

// answerVoice downloads the voice note, asks the backend about it and relays
// the answer as text followed by an optional synthesized voice reply. Every
// file lives in a workspace that is removed before returning.
func (r *Relay) answerVoice(ctx context.Context, conv conversation, source voiceSource) Status {
	ws, err := audio.NewWorkspace(r.config.AudioDir)
	if err != nil {
		return r.fail(ctx, conv, err)
	}
	defer ws.Close()

	input, err := r.fetcher.Fetch(ctx, ws, source.url, source.name, source.auth)
	if err != nil {
		return r.fail(ctx, conv, err)
	}

	wavPath, err := r.transcoder.ToWAV(ctx, input)
	if err != nil {
		return r.fail(ctx, conv, fmt.Errorf("%w: %w", ErrTranscodeFailure, err))
	}

	wav, err := os.ReadFile(wavPath)
	if err != nil {
		return r.fail(ctx, conv, fmt.Errorf("failed to read WAV file: %w", err))
	}

	lang := r.store.Get(conv.userID)

	log.Info().
		Str("user_id", conv.userID).
		Str("channel", conv.channel).
		Str("lang", lang).
		Int("wav_size", len(wav)).
		Msg("Forwarding voice question to backend")

	response, err := r.backend.AskVoice(ctx, conv.userID, lang, wav)
	if err != nil {
		return r.fail(ctx, conv, err)
	}

	status := r.relayAnswer(ctx, conv, response)
	if status.Status != StatusSuccess || !r.config.VoiceReplyEnabled {
		return status
	}

	// A failed voice reply does not undo the text answer already sent.
	if err := r.sendVoiceReply(ctx, ws, conv, response); err != nil {
		log.Error().
			Err(err).
			AnErr("kind", Classify(err)).
			Str("user_id", conv.userID).
			Msg("Failed to send voice reply")
	}
	return status
}

func (r *Relay) sendVoiceReply(ctx context.Context, ws *audio.Workspace, conv conversation, response *morseverse.Response) error {
	text := r.voiceReplyText(response)
	if text == "" {
		return nil
	}

	speech, err := r.backend.SynthesizeVoice(ctx, text)
	if err != nil {
		return err
	}

	raw, err := ws.WriteFile("reply"+audio.ExtensionFor(speech.ContentType), speech.Data)
	if err != nil {
		return err
	}

	oggPath, err := r.transcoder.ToOpus(ctx, raw)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTranscodeFailure, err)
	}

	if err := conv.sendVoice(ctx, oggPath); err != nil {
		return fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}

	log.Info().Str("user_id", conv.userID).Msg("Voice reply delivered")
	return nil
}

func (r *Relay) voiceReplyText(response *morseverse.Response) string {
	if r.config.VoiceReplySource == VoiceSourceAnswer || response.VoiceAnswer == "" {
		return response.Answer
	}
	return response.VoiceAnswer
}
