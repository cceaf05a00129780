package vocab

import (
	"encoding/json"
	"fmt"
	"os"
)

// SaveFile writes the store as a JSON object of
// word -> {meaning, frequency, contexts, original_word}.
func (s *Store) SaveFile(path string) error {
	s.mu.Lock()
	out := make(map[string]*Entry, len(s.entries))
	for k, e := range s.entries {
		out[k] = e
	}
	s.mu.Unlock()

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal vocabulary: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write vocabulary file: %w", err)
	}
	return nil
}

// LoadFile replaces the store contents with a previously saved file.
// Insertion order restarts from zero; relative order of loaded entries
// is not preserved across save/load.
func (s *Store) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read vocabulary file: %w", err)
	}
	loaded := make(map[string]*Entry)
	if err := json.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("parse vocabulary file: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]*Entry, len(loaded))
	s.nextSeq = 0
	for key, e := range loaded {
		if key == "" || e == nil {
			continue
		}
		e.Word = key
		if e.OriginalWord == "" {
			e.OriginalWord = key
		}
		if e.Frequency < 1 {
			e.Frequency = 1
		}
		e.seq = s.nextSeq
		s.nextSeq++
		s.entries[key] = e
	}
	return nil
}
