// Package server provides HTTP and WebSocket handlers
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/screenlex/platform/internal/ollama"
	"github.com/screenlex/platform/internal/pipeline"
	"github.com/screenlex/platform/internal/screen"
	"github.com/screenlex/platform/internal/trace"
	"github.com/screenlex/platform/internal/translate"
	"github.com/screenlex/platform/internal/vocab"
)

// Message types.
type Message struct {
	Type string `json:"type"`
}

type TranslateRequest struct {
	Type   string `json:"type"`
	Text   string `json:"text"`
	Target string `json:"target,omitempty"`
}

type TranslateResponse struct {
	Type   string           `json:"type"`
	Result translate.Result `json:"result"`
}

type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// rateLimiter tracks message timestamps using a sliding window.
type rateLimiter struct {
	timestamps []time.Time
	mu         sync.Mutex
}

// allow checks if a message is allowed and records the timestamp if so.
func (r *rateLimiter) allow() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-RateLimitWindow)

	// Prune old timestamps
	valid := r.timestamps[:0]
	for _, t := range r.timestamps {
		if t.After(cutoff) {
			valid = append(valid, t)
		}
	}
	r.timestamps = valid

	if len(r.timestamps) >= RateLimitMessages {
		return false
	}

	r.timestamps = append(r.timestamps, now)
	return true
}

// Server handles HTTP and WebSocket connections.
type Server struct {
	proc    *pipeline.Processor
	gateway *translate.Gateway
	manager *vocab.Manager
	models  *ollama.Client // nil when the vision/translation host is not configured
	target  string

	mu         sync.RWMutex
	conns      map[*websocket.Conn]struct{}
	rateLimits map[*websocket.Conn]*rateLimiter
}

// New creates a server around the processing pipeline. models may be nil.
func New(proc *pipeline.Processor, gateway *translate.Gateway, manager *vocab.Manager, models *ollama.Client, target string) *Server {
	if target == "" {
		target = translate.TargetThai
	}
	s := &Server{
		proc:       proc,
		gateway:    gateway,
		manager:    manager,
		models:     models,
		target:     target,
		conns:      make(map[*websocket.Conn]struct{}),
		rateLimits: make(map[*websocket.Conn]*rateLimiter),
	}

	go s.broadcastEvents()

	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// WebSocket endpoint
	mux.HandleFunc("/ws", s.handleWebSocket)

	// REST API
	mux.HandleFunc("GET /api/capture", s.handleCaptureState)
	mux.HandleFunc("POST /api/capture/start", s.handleCaptureStart)
	mux.HandleFunc("POST /api/capture/stop", s.handleCaptureStop)
	mux.HandleFunc("GET /api/region", s.handleRegionGet)
	mux.HandleFunc("POST /api/region", s.handleRegionSet)
	mux.HandleFunc("POST /api/translate", s.handleTranslate)
	mux.HandleFunc("POST /api/translate/batch", s.handleTranslateBatch)
	mux.HandleFunc("GET /api/vocabulary", s.handleVocabulary)
	mux.HandleFunc("POST /api/vocabulary/extract", s.handleVocabularyExtract)
	mux.HandleFunc("GET /api/vocabulary/stats", s.handleVocabularyStats)
	mux.HandleFunc("DELETE /api/vocabulary", s.handleVocabularyClear)
	mux.HandleFunc("GET /api/models", s.handleModels)
	mux.HandleFunc("GET /api/status", s.handleStatus)

	// Apply middleware: trace -> CORS
	return corsMiddleware(trace.Middleware(mux))
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		slog.Error("websocket accept error", "error", err)
		return
	}
	defer func() { _ = conn.Close(websocket.StatusNormalClosure, "") }()

	s.mu.Lock()
	s.conns[conn] = struct{}{}
	s.rateLimits[conn] = &rateLimiter{}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.conns, conn)
		delete(s.rateLimits, conn)
		s.mu.Unlock()
	}()

	baseCtx := r.Context()
	log := trace.Logger(baseCtx)
	log.Info("websocket connected", "remote", r.RemoteAddr)

	for {
		var msg json.RawMessage
		if err := wsjson.Read(baseCtx, conn, &msg); err != nil {
			log.Debug("websocket read error", "error", err)
			return
		}

		s.mu.RLock()
		rl := s.rateLimits[conn]
		s.mu.RUnlock()

		if !rl.allow() {
			log.Warn("rate limit exceeded", "remote", r.RemoteAddr)
			_ = wsjson.Write(baseCtx, conn, ErrorMessage{
				Type:    "error",
				Message: "rate limit exceeded",
			})
			continue
		}

		var base Message
		if err := json.Unmarshal(msg, &base); err != nil {
			continue
		}

		switch base.Type {
		case "translate":
			var req TranslateRequest
			if err := json.Unmarshal(msg, &req); err != nil {
				continue
			}
			s.handleWSTranslate(baseCtx, conn, req)
		}
	}
}

func (s *Server) handleWSTranslate(ctx context.Context, conn *websocket.Conn, req TranslateRequest) {
	ctx, span := trace.StartSpan(ctx, "ws_translate")
	defer span.End(ctx)

	target := req.Target
	if target == "" {
		target = s.target
	}
	result := s.gateway.Translate(ctx, req.Text, target)
	_ = wsjson.Write(ctx, conn, TranslateResponse{Type: "translation", Result: result})
}

// broadcastEvents fans pipeline events out to all connected clients.
func (s *Server) broadcastEvents() {
	for evt := range s.proc.Events() {
		s.mu.RLock()
		for conn := range s.conns {
			go func(c *websocket.Conn, ev pipeline.Event) {
				_ = wsjson.Write(context.Background(), c, ev)
			}(conn, evt)
		}
		s.mu.RUnlock()
	}
}

func (s *Server) handleCaptureState(w http.ResponseWriter, r *http.Request) {
	snap := s.proc.State()
	text := snap.Text
	if len(text) > TextPreviewLimit {
		text = text[:TextPreviewLimit] + "..."
	}

	writeJSON(w, map[string]any{
		"running":     s.proc.Running(),
		"text":        text,
		"translation": snap.Translation,
		"captured_at": snap.CapturedAt,
	})
}

func (s *Server) handleCaptureStart(w http.ResponseWriter, r *http.Request) {
	s.proc.Start(r.Context())
	writeJSON(w, map[string]string{"status": "capture_started"})
}

func (s *Server) handleCaptureStop(w http.ResponseWriter, r *http.Request) {
	s.proc.Stop(r.Context())
	writeJSON(w, map[string]string{"status": "capture_stopped"})
}

func (s *Server) handleRegionGet(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.proc.Region())
}

func (s *Server) handleRegionSet(w http.ResponseWriter, r *http.Request) {
	var region screen.Region
	if err := json.NewDecoder(r.Body).Decode(&region); err != nil {
		httpError(w, http.StatusBadRequest, "invalid region payload")
		return
	}
	if !region.Valid() {
		httpError(w, http.StatusBadRequest, "region must have positive width and height")
		return
	}
	s.proc.SetRegion(region)
	trace.Logger(r.Context()).Info("region updated", "region", region.String())
	writeJSON(w, region)
}

func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	var req TranslateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "invalid translate payload")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		httpError(w, http.StatusBadRequest, "text is required")
		return
	}
	if len(req.Text) > MaxTranslateLength {
		httpError(w, http.StatusRequestEntityTooLarge, "text too long")
		return
	}

	target := req.Target
	if target == "" {
		target = s.target
	}
	writeJSON(w, s.gateway.Translate(r.Context(), req.Text, target))
}

func (s *Server) handleTranslateBatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Texts  []string `json:"texts"`
		Target string   `json:"target,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "invalid batch payload")
		return
	}
	if len(req.Texts) == 0 {
		httpError(w, http.StatusBadRequest, "texts is required")
		return
	}
	if len(req.Texts) > MaxBatchTexts {
		httpError(w, http.StatusRequestEntityTooLarge, "too many texts")
		return
	}

	target := req.Target
	if target == "" {
		target = s.target
	}
	results := s.gateway.TranslateBatch(r.Context(), req.Texts, target)
	writeJSON(w, map[string]any{"results": results})
}

func (s *Server) handleVocabulary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"words": s.manager.DisplayTable(),
	})
}

func (s *Server) handleVocabularyExtract(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text     string `json:"text"`
		Language string `json:"language,omitempty"`
		MaxCount int    `json:"max_count,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "invalid extract payload")
		return
	}
	if req.Language == "" {
		req.Language = "auto"
	}
	words := s.manager.ExtractWords(req.Text, req.Language, req.MaxCount)
	if words == nil {
		words = []string{}
	}
	writeJSON(w, map[string]any{"words": words})
}

func (s *Server) handleVocabularyStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.manager.Statistics())
}

func (s *Server) handleVocabularyClear(w http.ResponseWriter, r *http.Request) {
	s.manager.Clear()
	trace.Logger(r.Context()).Info("vocabulary cleared")
	writeJSON(w, map[string]string{"status": "cleared"})
}

func (s *Server) handleModels(w http.ResponseWriter, r *http.Request) {
	if s.models == nil {
		writeJSON(w, map[string]any{"available": false, "models": []string{}, "vision_models": []string{}})
		return
	}

	ctx := r.Context()
	names, err := s.models.ModelNames(ctx)
	if err != nil {
		httpError(w, http.StatusBadGateway, "model host unreachable")
		return
	}
	vision, err := s.models.VisionModels(ctx)
	if err != nil {
		vision = nil
	}
	writeJSON(w, map[string]any{
		"available":     true,
		"models":        names,
		"vision_models": vision,
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"capturing": s.proc.Running(),
		"service":   s.gateway.Service(),
		"region":    s.proc.Region(),
	}
	if s.models != nil {
		status["backend_reachable"] = s.models.IsAvailable(r.Context())
	}
	writeJSON(w, status)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func httpError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
