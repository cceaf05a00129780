// Package httpx provides the shared HTTP call, timeout and error
// classification logic used by the translation and vision-OCR backends.
package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// Kind classifies a request failure for error reporting.
type Kind int

const (
	KindNone     Kind = iota
	KindConnect       // unreachable or connect timeout
	KindTimeout       // reachable but no response within the read timeout
	KindStatus        // non-2xx HTTP status
	KindProtocol      // malformed response body
)

func (k Kind) String() string {
	switch k {
	case KindConnect:
		return "connect"
	case KindTimeout:
		return "timeout"
	case KindStatus:
		return "status"
	case KindProtocol:
		return "protocol"
	default:
		return "none"
	}
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

// ProtocolError is returned when a 2xx response body cannot be decoded.
type ProtocolError struct {
	Cause error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("malformed response body: %v", e.Cause)
}

func (e *ProtocolError) Unwrap() error { return e.Cause }

// NewClient builds an HTTP client with a split connect/read timeout, the
// shape both loopback LLM calls and cloud translation calls use.
func NewClient(connectTimeout, readTimeout time.Duration) *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: connectTimeout,
			}).DialContext,
			ResponseHeaderTimeout: readTimeout,
		},
	}
}

// Classify maps a request error to its failure kind.
// Dial failures (including connect timeouts) classify as KindConnect.
func Classify(err error) Kind {
	if err == nil {
		return KindNone
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return KindStatus
	}
	var protoErr *ProtocolError
	if errors.As(err, &protoErr) {
		return KindProtocol
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return KindConnect
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	// Generic network failure: treat as unreachable.
	return KindConnect
}

// PostJSON posts in as JSON and decodes the response into out.
// Non-2xx responses become *StatusError, undecodable bodies *ProtocolError.
func PostJSON(ctx context.Context, client *http.Client, url string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return do(client, req, out)
}

// GetJSON fetches url and decodes the response into out.
func GetJSON(ctx context.Context, client *http.Client, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	return do(client, req, out)
}

func do(client *http.Client, req *http.Request, out any) error {
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{StatusCode: resp.StatusCode, Body: truncate(string(data), 512)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &ProtocolError{Cause: err}
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
