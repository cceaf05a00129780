// Package pipeline drives the capture, recognition and translation loop.
package pipeline

import (
	"bytes"
	"context"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"sync"
	"time"

	"github.com/corona10/goimagehash"

	"github.com/screenlex/platform/internal/ocr"
	"github.com/screenlex/platform/internal/screen"
	"github.com/screenlex/platform/internal/syncx"
	"github.com/screenlex/platform/internal/trace"
	"github.com/screenlex/platform/internal/translate"
	"github.com/screenlex/platform/internal/vocab"
)

const (
	// maxHashDistance is the perceptual-hash Hamming distance below
	// which two frames count as the same content.
	maxHashDistance = 5

	// minTextLength skips OCR noise shorter than this many runes.
	minTextLength = 3

	// contextLabelMax caps the stored vocabulary context snippet.
	contextLabelMax = 80

	eventBuffer = 64
)

// Event types published on the processor's event stream.
const (
	EventTranslation = "translation"
	EventVocabulary  = "vocabulary"
	EventStatus      = "status"
)

// Event is one update emitted by the processing loop.
type Event struct {
	Type        string            `json:"type"`
	Text        string            `json:"text,omitempty"`
	Translation *translate.Result `json:"translation,omitempty"`
	Stats       *vocab.Stats      `json:"stats,omitempty"`
	Message     string            `json:"message,omitempty"`
}

// Snapshot is the most recent recognition and translation state.
type Snapshot struct {
	Text        string           `json:"text"`
	Translation translate.Result `json:"translation"`
	CapturedAt  time.Time        `json:"captured_at"`
}

// Processor ticks at a fixed interval, captures the configured region,
// and feeds changed frames through OCR, translation and vocabulary
// extraction. Ticks that arrive while recognition is in flight are
// skipped, never queued.
type Processor struct {
	capturer screen.Capturer
	worker   *Worker
	gateway  *translate.Gateway
	manager  *vocab.Manager

	interval time.Duration
	target   string

	region   *syncx.Guard[screen.Region]
	snapshot *syncx.Guard[Snapshot]
	events   chan Event

	mu       sync.Mutex
	running  bool
	stop     chan struct{}
	done     chan struct{}
	lastHash *goimagehash.ImageHash
}

func NewProcessor(capturer screen.Capturer, worker *Worker, gateway *translate.Gateway, manager *vocab.Manager, interval time.Duration, region screen.Region, target string) *Processor {
	return &Processor{
		capturer: capturer,
		worker:   worker,
		gateway:  gateway,
		manager:  manager,
		interval: interval,
		target:   target,
		region:   syncx.NewGuard(region),
		snapshot: syncx.NewGuard(Snapshot{}),
		events:   make(chan Event, eventBuffer),
	}
}

// Events returns the stream of processing updates. Slow consumers lose
// events rather than stalling the loop.
func (p *Processor) Events() <-chan Event { return p.events }

// State returns the latest recognition snapshot.
func (p *Processor) State() Snapshot { return p.snapshot.Get() }

// Region returns the current capture region.
func (p *Processor) Region() screen.Region { return p.region.Get() }

// SetRegion updates the capture region for subsequent ticks.
func (p *Processor) SetRegion(r screen.Region) { p.region.Set(r) }

// Running reports whether the capture loop is active.
func (p *Processor) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// Start launches the capture loop. Calling Start while running is a
// no-op.
func (p *Processor) Start(ctx context.Context) {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	p.running = true
	p.stop = make(chan struct{})
	p.done = make(chan struct{})
	stop, done := p.stop, p.done
	p.mu.Unlock()

	trace.Logger(ctx).Info("capture started",
		"interval", p.interval,
		"region", p.region.Get().String())
	p.publish(Event{Type: EventStatus, Message: "capture started"})

	go p.loop(ctx, stop, done)
}

// Stop halts the capture loop and cancels any in-flight recognition.
func (p *Processor) Stop(ctx context.Context) {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	close(p.stop)
	done := p.done
	p.mu.Unlock()

	<-done
	p.worker.Cancel()
	trace.Logger(ctx).Info("capture stopped")
	p.publish(Event{Type: EventStatus, Message: "capture stopped"})
}

func (p *Processor) loop(ctx context.Context, stop, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.tick(ctx)
		}
	}
}

func (p *Processor) tick(ctx context.Context) {
	log := trace.Logger(ctx)
	if p.worker.Busy() {
		log.Debug("tick skipped, recognition in flight")
		return
	}

	data, changed := p.capturer.Capture(p.region.Get())
	if !changed {
		return
	}
	if !p.contentChanged(data) {
		log.Debug("tick skipped, frame visually unchanged")
		return
	}

	jobID, ok := p.worker.TryDispatch(ctx, data, func(id string, res ocr.Result, err error) {
		p.handleRecognition(ctx, id, res, err)
	})
	if ok {
		log.Debug("recognition dispatched", "job_id", jobID, "bytes", len(data))
	}
}

// contentChanged compares perceptual hashes so cursor blinks and
// antialiasing jitter do not trigger recognition.
func (p *Processor) contentChanged(data []byte) bool {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return true
	}
	hash, err := goimagehash.PerceptionHash(img)
	if err != nil {
		return true
	}
	prev := p.lastHash
	p.lastHash = hash
	if prev == nil {
		return true
	}
	dist, err := hash.Distance(prev)
	if err != nil {
		return true
	}
	return dist > maxHashDistance
}

func (p *Processor) handleRecognition(ctx context.Context, jobID string, res ocr.Result, err error) {
	log := trace.Logger(ctx).With("job_id", jobID)
	if err != nil {
		log.Warn("recognition failed", "error", err)
		p.publish(Event{Type: EventStatus, Message: "recognition failed: " + err.Error()})
		return
	}

	text := ocr.CleanText(res.Text)
	if len([]rune(text)) < minTextLength {
		return
	}
	if text == p.snapshot.Get().Text {
		log.Debug("recognized text unchanged")
		return
	}

	result := p.gateway.Translate(ctx, text, p.target)
	p.snapshot.Set(Snapshot{Text: text, Translation: result, CapturedAt: time.Now()})
	p.publish(Event{Type: EventTranslation, Text: text, Translation: &result})

	added := p.manager.ProcessText(ctx, text, contextLabel(text))
	if added > 0 {
		stats := p.manager.Statistics()
		p.publish(Event{Type: EventVocabulary, Stats: &stats})
	}
	log.Info("frame processed",
		"chars", len([]rune(text)),
		"confidence", res.Confidence,
		"new_words", added)
}

// publish never blocks; the event is dropped if no consumer keeps up.
func (p *Processor) publish(ev Event) {
	select {
	case p.events <- ev:
	default:
	}
}

func contextLabel(text string) string {
	runes := []rune(text)
	if len(runes) <= contextLabelMax {
		return text
	}
	return string(runes[:contextLabelMax]) + "…"
}
