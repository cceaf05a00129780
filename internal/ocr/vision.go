package ocr

import (
	"context"

	"github.com/screenlex/platform/internal/ollama"
)

const visionPrompt = "Read all text in this image. Return only the text, no explanation."

// The model reports no real confidence; use a fixed score for non-empty
// output so downstream thresholds still work.
const visionConfidence = 90.0

// Low temperature: transcription, not generation.
var visionOptions = ollama.GenerateOptions{
	Temperature: 0.1,
	MaxTokens:   1024,
}

// VisionEngine recognizes text by prompting a local vision-language model.
// It shares the Ollama client's request, timeout and error classification
// with the translation backend.
type VisionEngine struct {
	client *ollama.Client
	model  string
}

// NewVisionEngine creates an engine using the given vision model.
func NewVisionEngine(client *ollama.Client, model string) *VisionEngine {
	return &VisionEngine{client: client, model: model}
}

func (e *VisionEngine) Name() string { return "vision" }

// Recognize sends the image to the model and cleans the echoed text.
func (e *VisionEngine) Recognize(ctx context.Context, image []byte) (Result, error) {
	text, err := e.client.GenerateWithImage(ctx, e.model, visionPrompt, image, visionOptions)
	if err != nil {
		return Result{}, err
	}

	cleaned := CleanText(text)
	confidence := 0.0
	if cleaned != "" {
		confidence = visionConfidence
	}
	return Result{Text: cleaned, Confidence: confidence}, nil
}
