// Package server provides HTTP and WebSocket handlers
package server

import "time"

// Server configuration constants
const (
	// Text truncation limit for API responses
	TextPreviewLimit = 500

	// Per-connection WebSocket rate limiting
	RateLimitMessages = 20          // Max messages per connection per window
	RateLimitWindow   = time.Second // Sliding window duration

	// Longest text accepted by the translate endpoint
	MaxTranslateLength = 5000

	// Most texts accepted per batch-translate request
	MaxBatchTexts = 50
)
