// Package ollama provides a client for the local Ollama HTTP API.
package ollama

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/screenlex/platform/internal/httpx"
	"github.com/screenlex/platform/internal/resilience"
)

// Probe requests use a short timeout independent of generation timeouts.
const probeTimeout = 5 * time.Second

// GenerateOptions tunes model sampling.
type GenerateOptions struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
	MaxTokens   int     `json:"max_tokens,omitempty"`
}

type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Images  []string        `json:"images,omitempty"`
	Stream  bool            `json:"stream"`
	Options GenerateOptions `json:"options"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Model describes one installed model from /api/tags.
type Model struct {
	Name string `json:"name"`
	Size int64  `json:"size,omitempty"`
}

type tagsResponse struct {
	Models []Model `json:"models"`
}

// Client talks to an Ollama server over loopback HTTP. Generation calls
// run behind a circuit breaker so a stopped server fails fast instead of
// burning the full timeout on every capture tick.
type Client struct {
	baseURL string
	http    *http.Client
	probes  *http.Client
	breaker *resilience.Breaker
}

// New creates a client for the given base URL (e.g. http://localhost:11434)
// with split connect/read timeouts for generation requests.
func New(baseURL string, connectTimeout, readTimeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpx.NewClient(connectTimeout, readTimeout),
		probes:  httpx.NewClient(probeTimeout, probeTimeout),
		breaker: resilience.NewBreaker(resilience.DefaultBreakerConfig()),
	}
}

// Generate runs a non-streaming text generation and returns the trimmed
// model response.
func (c *Client) Generate(ctx context.Context, model, prompt string, opts GenerateOptions) (string, error) {
	return c.generate(ctx, generateRequest{
		Model:   model,
		Prompt:  prompt,
		Stream:  false,
		Options: opts,
	})
}

// GenerateWithImage runs a vision generation with a single base64-encoded
// image attached. Same request, timeout and error shape as Generate.
func (c *Client) GenerateWithImage(ctx context.Context, model, prompt string, image []byte, opts GenerateOptions) (string, error) {
	return c.generate(ctx, generateRequest{
		Model:   model,
		Prompt:  prompt,
		Images:  []string{base64.StdEncoding.EncodeToString(image)},
		Stream:  false,
		Options: opts,
	})
}

func (c *Client) generate(ctx context.Context, req generateRequest) (string, error) {
	return resilience.ExecuteWithResult(c.breaker, func() (string, error) {
		var resp generateResponse
		if err := httpx.PostJSON(ctx, c.http, c.baseURL+"/api/generate", req, &resp); err != nil {
			return "", fmt.Errorf("ollama generate (%s): %w", req.Model, err)
		}
		return strings.TrimSpace(resp.Response), nil
	})
}

// Models lists installed models via /api/tags.
func (c *Client) Models(ctx context.Context) ([]Model, error) {
	var resp tagsResponse
	if err := httpx.GetJSON(ctx, c.probes, c.baseURL+"/api/tags", &resp); err != nil {
		return nil, fmt.Errorf("ollama tags: %w", err)
	}
	return resp.Models, nil
}

// ModelNames lists installed model identifiers.
func (c *Client) ModelNames(ctx context.Context) ([]string, error) {
	models, err := c.Models(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(models))
	for _, m := range models {
		if m.Name != "" {
			names = append(names, m.Name)
		}
	}
	return names, nil
}

// IsAvailable reports whether the server answers the tags endpoint.
func (c *Client) IsAvailable(ctx context.Context) bool {
	_, err := c.Models(ctx)
	return err == nil
}

// HasModel reports whether any installed model name contains model.
func (c *Client) HasModel(ctx context.Context, model string) bool {
	names, err := c.ModelNames(ctx)
	if err != nil {
		return false
	}
	for _, name := range names {
		if strings.Contains(name, model) {
			return true
		}
	}
	return false
}

// visionKeywords mark model names likely to accept image input.
var visionKeywords = []string{"vision", "vlm", "multimodal", "llava", "gemma"}

// VisionModels filters installed models down to likely vision-capable
// ones, falling back to the full list when the heuristic matches nothing.
func (c *Client) VisionModels(ctx context.Context) ([]string, error) {
	names, err := c.ModelNames(ctx)
	if err != nil {
		return nil, err
	}
	var vision []string
	for _, name := range names {
		lower := strings.ToLower(name)
		for _, kw := range visionKeywords {
			if strings.Contains(lower, kw) {
				vision = append(vision, name)
				break
			}
		}
	}
	if len(vision) == 0 {
		return names, nil
	}
	return vision, nil
}

// BreakerState exposes the generation breaker state for diagnostics.
func (c *Client) BreakerState() resilience.State {
	return c.breaker.State()
}
