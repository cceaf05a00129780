// Package trace provides request-scoped trace IDs and span timing for
// structured logging. W3C-style IDs, no external dependencies.
package trace

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"net/http"
	"time"
)

// HTTP header names for trace propagation.
const (
	TraceIDHeader = "x-trace-id"
	SpanIDHeader  = "x-span-id"
)

type ctxKey struct{}

var traceCtxKey = ctxKey{}

// Context identifies a single span within a trace.
type Context struct {
	TraceID      string
	SpanID       string
	ParentSpanID string
}

// New creates a trace context with fresh IDs.
func New() Context {
	return Context{TraceID: newID(16), SpanID: newID(8)}
}

// FromContext extracts the trace context, if any.
func FromContext(ctx context.Context) (Context, bool) {
	tc, ok := ctx.Value(traceCtxKey).(Context)
	return tc, ok
}

// WithContext attaches a trace context.
func WithContext(ctx context.Context, tc Context) context.Context {
	return context.WithValue(ctx, traceCtxKey, tc)
}

func newID(bytes int) string {
	b := make([]byte, bytes)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// Span is a timed operation within a trace.
type Span struct {
	Name  string
	Ctx   Context
	start time.Time
}

// StartSpan begins a span, creating a child of any existing context.
func StartSpan(ctx context.Context, name string) (context.Context, *Span) {
	tc := New()
	if parent, ok := FromContext(ctx); ok {
		tc.TraceID = parent.TraceID
		tc.ParentSpanID = parent.SpanID
	}
	s := &Span{Name: name, Ctx: tc, start: time.Now()}
	return WithContext(ctx, tc), s
}

// End logs span completion with its duration.
func (s *Span) End(ctx context.Context) {
	Logger(ctx).Debug("span complete",
		"span", s.Name,
		"duration", time.Since(s.start))
}

// Duration returns elapsed time since the span started.
func (s *Span) Duration() time.Duration {
	return time.Since(s.start)
}

// Logger returns a slog.Logger carrying the trace identifiers.
func Logger(ctx context.Context) *slog.Logger {
	tc, ok := FromContext(ctx)
	if !ok {
		return slog.Default()
	}
	args := []any{"trace_id", tc.TraceID, "span_id", tc.SpanID}
	if tc.ParentSpanID != "" {
		args = append(args, "parent_span_id", tc.ParentSpanID)
	}
	return slog.Default().With(args...)
}

// Middleware ensures every HTTP request carries a trace context,
// honoring incoming trace headers when present.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tc := Context{
			TraceID:      r.Header.Get(TraceIDHeader),
			ParentSpanID: r.Header.Get(SpanIDHeader),
			SpanID:       newID(8),
		}
		if tc.TraceID == "" {
			tc.TraceID = newID(16)
		}
		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), tc)))
	})
}
