// Package vocab maintains the vocabulary table built from recognized text.
package vocab

import (
	"sort"
	"strings"
	"sync"
)

// DefaultCapacity bounds the store when no capacity is configured.
const DefaultCapacity = 1000

// Fraction of entries removed when the store exceeds capacity.
const evictFraction = 10

// Entry is one tracked vocabulary word.
type Entry struct {
	Word         string   `json:"-"`
	OriginalWord string   `json:"original_word"`
	Meaning      string   `json:"meaning"`
	Frequency    int      `json:"frequency"`
	Contexts     []string `json:"contexts"`

	seq int // insertion order, breaks frequency ties deterministically
}

// Store is a capacity-bounded in-memory vocabulary map keyed by the
// case-folded word. Mutating operations are guarded so the capture worker
// and HTTP handlers can share one store.
type Store struct {
	mu       sync.Mutex
	entries  map[string]*Entry
	capacity int
	nextSeq  int
}

// NewStore creates a store evicting down from the given capacity.
func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{
		entries:  make(map[string]*Entry),
		capacity: capacity,
	}
}

// Upsert records an observation of word. Existing entries get their
// frequency bumped, the context appended if unseen, and the meaning set
// only when still empty. New entries start at frequency 1. Exceeding
// capacity evicts the lowest-frequency tenth of entries (at least one),
// never the word just upserted.
func (s *Store) Upsert(word, meaning, context string) {
	key := strings.ToLower(word)
	if key == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[key]; ok {
		e.Frequency++
		if context != "" && !contains(e.Contexts, context) {
			e.Contexts = append(e.Contexts, context)
		}
		if meaning != "" && e.Meaning == "" {
			e.Meaning = meaning
		}
		return
	}

	e := &Entry{
		Word:         key,
		OriginalWord: word,
		Meaning:      meaning,
		Frequency:    1,
		seq:          s.nextSeq,
	}
	s.nextSeq++
	if context != "" {
		e.Contexts = []string{context}
	}
	s.entries[key] = e

	if len(s.entries) > s.capacity {
		s.evictLocked(key)
	}
}

// evictLocked removes the least-used tenth of entries, sparing keep.
func (s *Store) evictLocked(keep string) {
	candidates := make([]*Entry, 0, len(s.entries))
	for k, e := range s.entries {
		if k != keep {
			candidates = append(candidates, e)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Frequency != candidates[j].Frequency {
			return candidates[i].Frequency < candidates[j].Frequency
		}
		return candidates[i].seq < candidates[j].seq
	})

	remove := len(s.entries) / evictFraction
	if remove < 1 {
		remove = 1
	}
	if remove > len(candidates) {
		remove = len(candidates)
	}
	for _, e := range candidates[:remove] {
		delete(s.entries, e.Word)
	}
}

// GetMeaning returns the stored meaning, or "" when absent or untranslated.
func (s *Store) GetMeaning(word string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[strings.ToLower(word)]; ok {
		return e.Meaning
	}
	return ""
}

// SetMeaning updates the meaning of an existing word; no-op when absent.
func (s *Store) SetMeaning(word, meaning string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[strings.ToLower(word)]; ok {
		e.Meaning = meaning
	}
}

// Has reports whether the case-folded word is tracked.
func (s *Store) Has(word string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[strings.ToLower(word)]
	return ok
}

// Size returns the number of tracked words.
func (s *Store) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Clear removes all entries.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]*Entry)
	s.nextSeq = 0
}

// EntriesByFrequency returns copies of all entries sorted by descending
// frequency, ties broken by first-seen order.
func (s *Store) EntriesByFrequency() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		c := *e
		c.Contexts = append([]string(nil), e.Contexts...)
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Frequency != out[j].Frequency {
			return out[i].Frequency > out[j].Frequency
		}
		return out[i].seq < out[j].seq
	})
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
