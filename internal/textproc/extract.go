package textproc

import "strings"

// Extractor bundles tokenization and stop-word filtering into the
// one-call vocabulary extraction used by the capture pipeline.
type Extractor struct {
	tokenizer *Tokenizer
	filter    *StopWordFilter
}

// NewExtractor creates an extractor with the given minimum word length.
func NewExtractor(minWordLength int) *Extractor {
	return &Extractor{
		tokenizer: NewTokenizer(),
		filter:    NewStopWordFilter(minWordLength),
	}
}

// ExtractVocabulary returns up to maxCount content words from text in
// first-seen order. Latin words are returned capitalized for display;
// Thai words pass through unchanged. maxCount <= 0 means no limit.
func (e *Extractor) ExtractVocabulary(text, sourceLanguage string, maxCount int) []string {
	tokens := e.tokenizer.Tokenize(text, sourceLanguage)

	var words []string
	for _, tok := range tokens {
		lang := LanguageOf(tok)
		if !e.filter.IsContentWord(tok, lang) {
			continue
		}
		if lang == LangEnglish {
			tok = capitalize(tok)
		}
		words = append(words, tok)
	}

	words = dedupe(words)
	if maxCount > 0 && len(words) > maxCount {
		words = words[:maxCount]
	}
	return words
}

// Tokenizer exposes the underlying tokenizer.
func (e *Extractor) Tokenizer() *Tokenizer { return e.tokenizer }

// Filter exposes the underlying stop-word filter.
func (e *Extractor) Filter() *StopWordFilter { return e.filter }

func capitalize(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
}
