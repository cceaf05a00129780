package vocab

import (
	"context"
	"strings"

	"github.com/screenlex/platform/internal/textproc"
	"github.com/screenlex/platform/internal/trace"
	"github.com/screenlex/platform/internal/translate"
)

// PendingMeaning is shown for words whose translation has not arrived yet.
const PendingMeaning = "กำลังแปล..."

// Translator is the slice of the translation gateway the manager needs.
type Translator interface {
	Translate(ctx context.Context, text, targetLanguage string) translate.Result
}

// TableRow is one display-ready vocabulary line.
type TableRow struct {
	Word    string `json:"word"`
	Meaning string `json:"meaning"`
}

// Stats summarizes translation progress over the store.
type Stats struct {
	TotalWords       int     `json:"total_words"`
	WordsWithMeaning int     `json:"words_with_meaning"`
	CompletionRate   float64 `json:"completion_rate"`
}

// Manager runs the tokenize-filter-translate-store pipeline over each
// recognized text batch and exposes the display table.
type Manager struct {
	store          *Store
	extractor      *textproc.Extractor
	translator     Translator // may be nil
	targetLanguage string
	autoTranslate  bool
}

// NewManager creates a manager around store. translator may be nil; words
// then accumulate with empty meanings until one is set.
func NewManager(store *Store, minWordLength int, translator Translator, targetLanguage string, autoTranslate bool) *Manager {
	if targetLanguage == "" {
		targetLanguage = translate.TargetThai
	}
	return &Manager{
		store:          store,
		extractor:      textproc.NewExtractor(minWordLength),
		translator:     translator,
		targetLanguage: targetLanguage,
		autoTranslate:  autoTranslate,
	}
}

// Store returns the underlying vocabulary store.
func (m *Manager) Store() *Store { return m.store }

// SetAutoTranslate toggles automatic translation of new words.
func (m *Manager) SetAutoTranslate(enabled bool) { m.autoTranslate = enabled }

// ProcessText tokenizes text, filters stop words and merges the surviving
// content words into the store, translating words that still lack a
// meaning. A failed or panicking translation of one word never aborts the
// rest of the batch. Returns the number of words not previously tracked.
func (m *Manager) ProcessText(ctx context.Context, text, contextLabel string) int {
	tokens := m.extractor.Tokenizer().Tokenize(text, textproc.LangAuto)

	added := 0
	for _, token := range tokens {
		lang := textproc.LanguageOf(token)
		if !m.extractor.Filter().IsContentWord(token, lang) {
			continue
		}

		key := strings.ToLower(token)
		if m.store.Has(key) {
			m.store.Upsert(token, "", contextLabel)
			if m.store.GetMeaning(key) == "" {
				if meaning := m.translateWord(ctx, token); meaning != "" {
					m.store.SetMeaning(key, meaning)
				}
			}
			continue
		}

		meaning := m.translateWord(ctx, token)
		m.store.Upsert(token, meaning, contextLabel)
		added++
	}
	return added
}

// translateWord returns the translated meaning or "" on any failure.
func (m *Manager) translateWord(ctx context.Context, word string) (meaning string) {
	if m.translator == nil || !m.autoTranslate {
		return ""
	}
	defer func() {
		if r := recover(); r != nil {
			trace.Logger(ctx).Error("panic translating word", "word", word, "panic", r)
			meaning = ""
		}
	}()

	result := m.translator.Translate(ctx, word, m.targetLanguage)
	if result.Failed() {
		trace.Logger(ctx).Debug("word translation failed", "word", word, "error", result.Error)
		return ""
	}
	return strings.TrimSpace(result.TranslatedText)
}

// ExtractWords returns up to maxCount display-ready content words from
// text without touching the store.
func (m *Manager) ExtractWords(text, language string, maxCount int) []string {
	return m.extractor.ExtractVocabulary(text, language, maxCount)
}

// DisplayTable returns (word, meaning) rows ordered by descending
// frequency, with a pending placeholder for untranslated words. Words are
// shown in their first-seen surface form.
func (m *Manager) DisplayTable() []TableRow {
	entries := m.store.EntriesByFrequency()
	rows := make([]TableRow, 0, len(entries))
	for _, e := range entries {
		meaning := e.Meaning
		if meaning == "" {
			meaning = PendingMeaning
		}
		rows = append(rows, TableRow{Word: e.OriginalWord, Meaning: meaning})
	}
	return rows
}

// Statistics reports totals and the completion percentage.
func (m *Manager) Statistics() Stats {
	entries := m.store.EntriesByFrequency()
	stats := Stats{TotalWords: len(entries)}
	for _, e := range entries {
		if e.Meaning != "" {
			stats.WordsWithMeaning++
		}
	}
	if stats.TotalWords > 0 {
		stats.CompletionRate = float64(stats.WordsWithMeaning) / float64(stats.TotalWords) * 100
	}
	return stats
}

// Clear drops all tracked vocabulary.
func (m *Manager) Clear() { m.store.Clear() }
