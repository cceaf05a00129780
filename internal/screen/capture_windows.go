//go:build windows

package screen

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

type windowsBackend struct {
	tempDir string
}

// New creates a capturer that shells out to PowerShell's System.Drawing.
func New() (Capturer, error) {
	tempDir, err := os.MkdirTemp("", "screenlex-screen-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	return newBase(&windowsBackend{tempDir: tempDir}, tempDir), nil
}

func (b *windowsBackend) captureRaw(r Region) []byte {
	if !r.Valid() {
		return nil
	}
	path := filepath.Join(b.tempDir, "frame.png")
	script := fmt.Sprintf(`Add-Type -AssemblyName System.Drawing
$bmp = New-Object System.Drawing.Bitmap(%d, %d)
$g = [System.Drawing.Graphics]::FromImage($bmp)
$g.CopyFromScreen(%d, %d, 0, 0, $bmp.Size)
$bmp.Save('%s', [System.Drawing.Imaging.ImageFormat]::Png)
$g.Dispose()
$bmp.Dispose()`, r.Width, r.Height, r.X, r.Y, path)
	cmd := exec.Command("powershell", "-NoProfile", "-NonInteractive", "-Command", script)
	if err := cmd.Run(); err != nil {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	return data
}

func (b *windowsBackend) cleanup() {}
