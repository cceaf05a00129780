// Package screen provides platform-agnostic capture of a screen region
package screen

import (
	"crypto/md5"
	"fmt"
	"os"
)

// Region is the user-selected capture area in screen pixels.
type Region struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Valid reports whether the region has positive dimensions.
func (r Region) Valid() bool { return r.Width > 0 && r.Height > 0 }

func (r Region) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", r.Width, r.Height, r.X, r.Y)
}

// Capturer captures a screen region with change detection.
type Capturer interface {
	// Capture returns encoded image bytes for the region and whether the
	// content changed since the previous call. Unchanged frames return
	// (nil, false).
	Capture(r Region) ([]byte, bool)
	// CaptureAlways captures regardless of change detection.
	CaptureAlways(r Region) []byte
	Close()
}

// backend implements platform-specific raw capture
type backend interface {
	captureRaw(r Region) []byte
	cleanup()
}

// baseCapturer provides shared hash-based change detection
type baseCapturer struct {
	backend
	lastHash [16]byte
	tempDir  string
}

func newBase(b backend, tempDir string) *baseCapturer {
	return &baseCapturer{backend: b, tempDir: tempDir}
}

func (c *baseCapturer) Capture(r Region) ([]byte, bool) {
	data := c.captureRaw(r)
	if data == nil {
		return nil, false
	}
	// Hash the first 4KB only; enough to catch real changes cheaply.
	hash := md5.Sum(data[:min(len(data), 4096)])
	if hash == c.lastHash {
		return nil, false
	}
	c.lastHash = hash
	return data, true
}

func (c *baseCapturer) CaptureAlways(r Region) []byte {
	data := c.captureRaw(r)
	if data != nil {
		c.lastHash = md5.Sum(data[:min(len(data), 4096)])
	}
	return data
}

func (c *baseCapturer) Close() {
	c.cleanup()
	if c.tempDir != "" {
		os.RemoveAll(c.tempDir)
	}
}
