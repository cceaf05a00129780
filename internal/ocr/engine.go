// Package ocr extracts text from captured screen images.
package ocr

import (
	"context"
	"strings"
)

// Result is one recognition outcome.
type Result struct {
	Text       string
	Confidence float64 // 0..100
}

// Engine recognizes text in an encoded image (PNG or JPEG bytes).
type Engine interface {
	Name() string
	Recognize(ctx context.Context, image []byte) (Result, error)
}

// CleanText normalizes raw OCR output: blank lines dropped, remaining
// lines joined, runs of whitespace collapsed.
func CleanText(text string) string {
	var parts []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}
