package translate

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/screenlex/platform/internal/config"
	"github.com/screenlex/platform/internal/ollama"
	"github.com/screenlex/platform/internal/resilience"
)

// NewGateway selects a backend per config and wraps it in a gateway.
//
// When the LLM backend is requested, its connectivity probe runs with a
// short retry; if it still fails, the gateway falls back to the cloud
// backend. This is a one-time construction decision, not a per-call
// branch.
func NewGateway(ctx context.Context, cfg *config.Config, client *ollama.Client) *Gateway {
	cache := NewCache(cfg.TranslationCacheSize)

	if cfg.TranslationService == ServiceOllama {
		if err := probeOllama(ctx, client, cfg.TranslationModel); err == nil {
			slog.Info("translation backend ready", "service", ServiceOllama, "model", cfg.TranslationModel)
			return NewGatewayWith(NewOllamaBackend(ctx, client, cfg.TranslationModel), cache)
		}
		slog.Warn("ollama probe failed, falling back to cloud translation", "model", cfg.TranslationModel)
	}

	slog.Info("translation backend ready", "service", ServiceGoogle)
	return NewGatewayWith(NewGoogleBackend(cfg.ConnectTimeout, cfg.ReadTimeout), cache)
}

func probeOllama(ctx context.Context, client *ollama.Client, model string) error {
	return resilience.Retry(ctx, resilience.ProbeConfig(), func() error {
		if !client.IsAvailable(ctx) {
			return fmt.Errorf("ollama unreachable")
		}
		if !client.HasModel(ctx, model) {
			return fmt.Errorf("model %s not installed", model)
		}
		return nil
	})
}
