//go:build linux

package screen

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

type linuxBackend struct {
	tempDir string
	tool    string
}

// New creates a capturer using scrot or maim, whichever is installed.
func New() (Capturer, error) {
	tool := ""
	for _, candidate := range []string{"scrot", "maim"} {
		if _, err := exec.LookPath(candidate); err == nil {
			tool = candidate
			break
		}
	}
	if tool == "" {
		return nil, fmt.Errorf("no screenshot tool found (need scrot or maim)")
	}
	tempDir, err := os.MkdirTemp("", "screenlex-screen-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	return newBase(&linuxBackend{tempDir: tempDir, tool: tool}, tempDir), nil
}

func (b *linuxBackend) captureRaw(r Region) []byte {
	if !r.Valid() {
		return nil
	}
	path := filepath.Join(b.tempDir, "frame.png")
	var cmd *exec.Cmd
	switch b.tool {
	case "scrot":
		area := fmt.Sprintf("%d,%d,%d,%d", r.X, r.Y, r.Width, r.Height)
		cmd = exec.Command("scrot", "-a", area, "-o", path)
	case "maim":
		geom := fmt.Sprintf("%dx%d+%d+%d", r.Width, r.Height, r.X, r.Y)
		cmd = exec.Command("maim", "-g", geom, path)
	default:
		return nil
	}
	if err := cmd.Run(); err != nil {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	return data
}

func (b *linuxBackend) cleanup() {}
