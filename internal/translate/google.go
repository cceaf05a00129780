package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/screenlex/platform/internal/httpx"
)

// Unauthenticated web endpoint, same one the original client library uses.
const googleTranslateURL = "https://translate.googleapis.com/translate_a/single"

const googleConfidence = 0.9

// GoogleBackend translates through the hosted Google endpoint with
// automatic source-language detection.
type GoogleBackend struct {
	baseURL string
	http    *http.Client
}

// NewGoogleBackend creates a cloud translation backend with split
// connect/read timeouts.
func NewGoogleBackend(connectTimeout, readTimeout time.Duration) *GoogleBackend {
	return &GoogleBackend{
		baseURL: googleTranslateURL,
		http:    httpx.NewClient(connectTimeout, readTimeout),
	}
}

func (b *GoogleBackend) Name() string  { return ServiceGoogle }
func (b *GoogleBackend) Model() string { return "" }

// IsAvailable always reports true: the hosted service has no cheap probe,
// so connectivity failures surface per call instead.
func (b *GoogleBackend) IsAvailable(context.Context) bool { return true }

// Translate calls the endpoint with sl=auto and concatenates the returned
// translation segments.
func (b *GoogleBackend) Translate(ctx context.Context, text, source, target string) (string, float64, error) {
	q := url.Values{}
	q.Set("client", "gtx")
	q.Set("sl", "auto")
	q.Set("tl", target)
	q.Set("dt", "t")
	q.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", 0, fmt.Errorf("create request: %w", err)
	}

	resp, err := b.http.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", 0, &httpx.StatusError{StatusCode: resp.StatusCode, Body: resp.Status}
	}

	var payload []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", 0, &httpx.ProtocolError{Cause: err}
	}
	translated, err := parseSegments(payload)
	if err != nil {
		return "", 0, &httpx.ProtocolError{Cause: err}
	}
	return translated, googleConfidence, nil
}

// parseSegments joins the first field of each translation segment in the
// endpoint's nested-array response.
func parseSegments(payload []json.RawMessage) (string, error) {
	if len(payload) == 0 {
		return "", fmt.Errorf("empty payload")
	}
	var segments [][]json.RawMessage
	if err := json.Unmarshal(payload[0], &segments); err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, seg := range segments {
		if len(seg) == 0 {
			continue
		}
		var part string
		if err := json.Unmarshal(seg[0], &part); err != nil {
			continue
		}
		sb.WriteString(part)
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("no translation segments")
	}
	return sb.String(), nil
}
