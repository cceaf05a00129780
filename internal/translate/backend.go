package translate

import (
	"context"
	"fmt"

	"github.com/screenlex/platform/internal/httpx"
)

// Backend is one interchangeable translation service. The gateway owns
// input gating, caching and result shaping; a backend only turns already
// validated source text into target-language text.
type Backend interface {
	// Name returns the service tag recorded in results.
	Name() string
	// Model returns the backend model identifier, "" when not model-backed.
	Model() string
	// IsAvailable reports the backend's connectivity decision.
	IsAvailable(ctx context.Context) bool
	// Translate converts text from source to target language, returning
	// the translated text and a heuristic confidence in [0,1].
	Translate(ctx context.Context, text, source, target string) (string, float64, error)
}

// describeFailure renders a request error with its failure class so the
// UI can tell a dead backend from a slow one.
func describeFailure(err error) string {
	switch httpx.Classify(err) {
	case httpx.KindConnect:
		return fmt.Sprintf("backend unreachable: %v", err)
	case httpx.KindTimeout:
		return fmt.Sprintf("backend read timeout: %v", err)
	case httpx.KindStatus:
		return fmt.Sprintf("backend rejected request: %v", err)
	case httpx.KindProtocol:
		return fmt.Sprintf("backend protocol error: %v", err)
	default:
		return err.Error()
	}
}
