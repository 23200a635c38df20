package core

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Mirror writes each stage's raw reply to <dir>/<stage>.txt for debugging.
// The latest run wins. A nil Mirror discards writes.
type Mirror struct {
	fs  afero.Fs
	dir string
}

// NewMirror returns a Mirror rooted at dir, or nil when dir is empty.
func NewMirror(fs afero.Fs, dir string) *Mirror {
	if dir == "" {
		return nil
	}
	return &Mirror{fs: fs, dir: dir}
}

// Path returns the file a stage's reply is mirrored to.
func (m *Mirror) Path(stage string) string {
	return filepath.Join(m.dir, stage+".txt")
}

// Write stores raw for stage, replacing the previous copy.
func (m *Mirror) Write(stage, raw string) error {
	if m == nil {
		return nil
	}
	if err := m.fs.MkdirAll(m.dir, 0o755); err != nil {
		return fmt.Errorf("create mirror dir: %w", err)
	}
	if err := afero.WriteFile(m.fs, m.Path(stage), []byte(raw), os.FileMode(0o644)); err != nil {
		return fmt.Errorf("write mirror %s: %w", stage, err)
	}
	return nil
}
