//go:build darwin

package screen

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

type darwinBackend struct {
	tempDir string
}

// New creates a capturer backed by the macOS screencapture utility.
func New() (Capturer, error) {
	tempDir, err := os.MkdirTemp("", "screenlex-screen-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	return newBase(&darwinBackend{tempDir: tempDir}, tempDir), nil
}

func (b *darwinBackend) captureRaw(r Region) []byte {
	if !r.Valid() {
		return nil
	}
	path := filepath.Join(b.tempDir, "frame.jpg")
	rect := fmt.Sprintf("%d,%d,%d,%d", r.X, r.Y, r.Width, r.Height)
	cmd := exec.Command("screencapture", "-x", "-t", "jpg", "-R", rect, path)
	if err := cmd.Run(); err != nil {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	return data
}

func (b *darwinBackend) cleanup() {}
