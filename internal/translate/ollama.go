package translate

import (
	"context"
	"fmt"
	"strings"

	"github.com/screenlex/platform/internal/ollama"
)

// Sampling settings tuned for consistent translations rather than
// creative output.
var translationOptions = ollama.GenerateOptions{
	Temperature: 0.3,
	TopP:        0.9,
	MaxTokens:   1000,
}

const ollamaConfidence = 0.9

// Boilerplate the model sometimes echoes in front of the translation.
var unwantedPrefixes = []string{
	"Thai translation:",
	"Translation:",
	"ความหมาย:",
	"แปลเป็นไทย:",
	"คำแปล:",
	"ผลลัพธ์:",
}

// OllamaBackend translates by prompting a local LLM. Connectivity is
// decided once at construction: the factory probes it and falls back to
// the cloud backend when the probe fails.
type OllamaBackend struct {
	client    *ollama.Client
	model     string
	available bool
}

// NewOllamaBackend creates an LLM translation backend and probes the
// server for the configured model.
func NewOllamaBackend(ctx context.Context, client *ollama.Client, model string) *OllamaBackend {
	return &OllamaBackend{
		client:    client,
		model:     model,
		available: client.HasModel(ctx, model),
	}
}

func (b *OllamaBackend) Name() string  { return ServiceOllama }
func (b *OllamaBackend) Model() string { return b.model }

// IsAvailable returns the construction-time connectivity decision.
func (b *OllamaBackend) IsAvailable(context.Context) bool { return b.available }

// Translate prompts the model for English-to-Thai translation and cleans
// boilerplate from its answer.
func (b *OllamaBackend) Translate(ctx context.Context, text, source, target string) (string, float64, error) {
	out, err := b.client.Generate(ctx, b.model, buildPrompt(text), translationOptions)
	if err != nil {
		return "", 0, err
	}
	return cleanTranslation(out), ollamaConfidence, nil
}

// buildPrompt instructs the model to answer with only the translated
// sentence, no labels or explanations.
func buildPrompt(text string) string {
	return fmt.Sprintf(`You are a professional English to Thai translator.

Rules:
- ONLY translate from English to Thai
- Use clear, natural Thai that Thai speakers would actually use
- Keep the original meaning and tone; keep accepted English loanwords for technical terms
- If the input is already Thai or another language, return it unchanged
- Return ONLY the final Thai translation, no explanations or formatting

English text: "%s"

Thai translation:`, text)
}

// cleanTranslation strips echoed labels and surrounding quotes.
func cleanTranslation(text string) string {
	for _, prefix := range unwantedPrefixes {
		text = strings.TrimSpace(strings.ReplaceAll(text, prefix, ""))
	}
	text = strings.Trim(text, `"'`)
	return strings.TrimSpace(text)
}
