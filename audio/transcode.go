package audio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// ErrTranscode wraps every failure of the external transcoder.
var ErrTranscode = errors.New("audio transcode failed")

type Transcoder struct {
	ffmpegPath  string
	ffprobePath string
}

func NewTranscoder(ffmpegPath, ffprobePath string) *Transcoder {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &Transcoder{
		ffmpegPath:  ffmpegPath,
		ffprobePath: ffprobePath,
	}
}

// ToWAV converts input to a mono 16 kHz PCM WAV file next to it.
func (t *Transcoder) ToWAV(ctx context.Context, input string) (string, error) {
	output := replaceExt(input, ".wav")
	if output == input {
		output = replaceExt(input, ".converted.wav")
	}

	err := t.run(ctx, input, output,
		"-vn",
		"-ac", "1",
		"-ar", "16000",
		"-c:a", "pcm_s16le",
	)
	if err != nil {
		return "", err
	}

	log.Debug().Str("input", input).Str("output", output).Msg("Converted to WAV")
	return output, nil
}

// ToOpus converts input to an OGG container with Opus audio, the format
// messaging apps play as a voice note.
func (t *Transcoder) ToOpus(ctx context.Context, input string) (string, error) {
	output := replaceExt(input, ".ogg")
	if output == input {
		output = replaceExt(input, ".opus.ogg")
	}

	err := t.run(ctx, input, output,
		"-vn",
		"-ac", "1",
		"-ar", "48000",
		"-c:a", "libopus",
		"-b:a", "24k",
		"-application", "voip",
		"-f", "ogg",
	)
	if err != nil {
		return "", err
	}

	log.Debug().Str("input", input).Str("output", output).Msg("Converted to OGG/Opus")
	return output, nil
}

// Duration returns the length of an audio file in seconds.
func (t *Transcoder) Duration(ctx context.Context, input string) (float64, error) {
	cmd := exec.CommandContext(ctx, t.ffprobePath,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		input,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("%w: ffprobe: %w: %s", ErrTranscode, err, strings.TrimSpace(stderr.String()))
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: unexpected ffprobe output %q", ErrTranscode, strings.TrimSpace(string(out)))
	}
	return duration, nil
}

func (t *Transcoder) run(ctx context.Context, input, output string, codecArgs ...string) error {
	args := []string{"-hide_banner", "-loglevel", "error", "-y", "-i", input}
	args = append(args, codecArgs...)
	args = append(args, output)

	cmd := exec.CommandContext(ctx, t.ffmpegPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: ffmpeg: %w: %s", ErrTranscode, err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
