// Package audio downloads voice notes, converts them between container formats
// with ffmpeg and keeps every intermediate file inside a per-request workspace.
package audio

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Workspace is a private directory for the files of one voice interaction.
type Workspace struct {
	dir string
}

// NewWorkspace creates a uniquely named directory under root.
func NewWorkspace(root string) (*Workspace, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create audio root: %w", err)
	}

	dir, err := os.MkdirTemp(root, "voice-"+uuid.NewString()+"-")
	if err != nil {
		return nil, fmt.Errorf("failed to create audio workspace: %w", err)
	}

	return &Workspace{dir: dir}, nil
}

func (w *Workspace) Dir() string {
	return w.dir
}

// Path returns the location of name inside the workspace.
func (w *Workspace) Path(name string) string {
	return filepath.Join(w.dir, filepath.Base(name))
}

// WriteFile stores data under name and returns its path.
func (w *Workspace) WriteFile(name string, data []byte) (string, error) {
	path := w.Path(name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	return path, nil
}

// Close removes the workspace and everything in it.
func (w *Workspace) Close() error {
	if err := os.RemoveAll(w.dir); err != nil {
		log.Warn().Err(err).Str("dir", w.dir).Msg("Failed to remove audio workspace")
		return err
	}
	return nil
}
