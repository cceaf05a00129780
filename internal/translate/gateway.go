package translate

import (
	"context"
	"strings"
	"time"

	"github.com/screenlex/platform/internal/trace"
)

// TargetThai is the only translation target this system supports.
const TargetThai = "th"

// batchPause spaces out consecutive LLM calls so the local server does
// not queue up behind itself.
const batchPause = 500 * time.Millisecond

// Gateway fronts one selected backend with input gating, caching and
// pass-through-on-failure semantics. Every failure mode is converted into
// a structured Result; the gateway never returns an error and never drops
// the caller's text.
type Gateway struct {
	backend Backend
	cache   *Cache
}

// NewGatewayWith wraps an already selected backend. Use NewGateway for
// the probing factory.
func NewGatewayWith(backend Backend, cache *Cache) *Gateway {
	if cache == nil {
		cache = NewCache(DefaultCacheSize)
	}
	return &Gateway{backend: backend, cache: cache}
}

// Service returns the active backend's service tag.
func (g *Gateway) Service() string { return g.backend.Name() }

// Translate converts text to targetLanguage.
//
// Short-circuits, in order: blank input, cache hit, unreachable backend,
// unsupported target, text already in the target script, unsupported
// source script. Only English text bound for Thai reaches the backend.
func (g *Gateway) Translate(ctx context.Context, text, targetLanguage string) Result {
	if strings.TrimSpace(text) == "" {
		return Result{
			DetectedLanguage: LangUnknown,
			Service:          g.backend.Name(),
		}
	}

	if cached, ok := g.cache.Get(text, targetLanguage); ok {
		return cached
	}

	if !g.backend.IsAvailable(ctx) {
		return g.failure(text, g.backend.Name()+" not connected")
	}

	if targetLanguage != TargetThai {
		return Result{
			TranslatedText:   text,
			DetectedLanguage: LangUnsupported,
			Service:          g.backend.Name(),
			Error:            "target language " + targetLanguage + " not supported",
		}
	}

	detected := DetectLanguage(text)
	if detected == TargetThai {
		// Already in the target language.
		return Result{
			TranslatedText:   text,
			DetectedLanguage: TargetThai,
			Confidence:       1.0,
			Service:          g.backend.Name(),
		}
	}
	if detected != "en" {
		return Result{
			TranslatedText:   text,
			DetectedLanguage: detected,
			Service:          g.backend.Name(),
			Error:            "unsupported source language",
		}
	}

	translated, confidence, err := g.backend.Translate(ctx, text, detected, targetLanguage)
	if err != nil {
		trace.Logger(ctx).Warn("translation failed", "service", g.backend.Name(), "error", err)
		return g.failure(text, describeFailure(err))
	}

	result := Result{
		TranslatedText:   translated,
		DetectedLanguage: detected,
		Confidence:       confidence,
		Service:          g.backend.Name(),
		Model:            g.backend.Model(),
	}
	g.cache.Put(text, targetLanguage, result)
	return result
}

// TranslateBatch translates texts sequentially with a short pause between
// backend calls. Cache hits and short-circuits do not pause.
func (g *Gateway) TranslateBatch(ctx context.Context, texts []string, targetLanguage string) []Result {
	results := make([]Result, 0, len(texts))
	for i, text := range texts {
		result := g.Translate(ctx, text, targetLanguage)
		results = append(results, result)

		if i < len(texts)-1 && !result.FromCache && !result.Failed() {
			select {
			case <-ctx.Done():
				return results
			case <-time.After(batchPause):
			}
		}
	}
	return results
}

// failure builds the pass-through error result: original text echoed back,
// never cached.
func (g *Gateway) failure(text, msg string) Result {
	return Result{
		TranslatedText:   text,
		DetectedLanguage: LangError,
		Service:          g.backend.Name(),
		Error:            msg,
	}
}
