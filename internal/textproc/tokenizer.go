// Package textproc extracts candidate vocabulary tokens from OCR text.
package textproc

import (
	"regexp"
	"strings"
	"unicode"
)

// Language hints accepted by the tokenizer.
const (
	LangEnglish = "en"
	LangThai    = "th"
	LangAuto    = "auto"
)

// Script-ratio thresholds for auto detection, measured over non-whitespace runes.
const (
	thaiRatioThreshold  = 0.3
	latinRatioThreshold = 0.5
)

// MaxThaiRunLength is the longest contiguous Thai run accepted when the run
// was not also delimited by whitespace. Longer runs are usually several words
// glued together. Tunable heuristic, not a domain rule.
const MaxThaiRunLength = 6

var (
	latinWordRE = regexp.MustCompile(`[a-zA-Z]+`)
	thaiRunRE   = regexp.MustCompile(`[\x{0E00}-\x{0E7F}]+`)
	nonThaiRE   = regexp.MustCompile(`[^\x{0E00}-\x{0E7F}]`)
)

// Tokenizer splits raw recognized text into candidate word tokens.
// English text is whitespace/punctuation delimited; Thai has no word
// boundaries and is handled by script-run extraction.
type Tokenizer struct{}

// NewTokenizer creates a tokenizer.
func NewTokenizer() *Tokenizer {
	return &Tokenizer{}
}

// Tokenize returns candidate tokens for the given language hint
// (LangEnglish, LangThai or LangAuto), de-duplicated in first-seen order.
// Empty, whitespace-only, or letterless input yields no tokens.
func (t *Tokenizer) Tokenize(text, hint string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	switch hint {
	case LangEnglish:
		return dedupe(t.english(text))
	case LangThai:
		return dedupe(t.thai(text))
	default:
		switch detectDominantScript(text) {
		case LangThai:
			return dedupe(t.thai(text))
		case LangEnglish:
			return dedupe(t.english(text))
		default:
			// Mixed text: run both extractors and union.
			return dedupe(append(t.thai(text), t.english(text)...))
		}
	}
}

// english extracts maximal ASCII-letter runs, case preserved.
func (t *Tokenizer) english(text string) []string {
	return latinWordRE.FindAllString(text, -1)
}

// thai unions two extraction passes: whitespace-delimited chunks stripped to
// Thai script (recovers words a human separated with spaces), and maximal
// Thai script runs (recovers words in unspaced text). Runs longer than
// MaxThaiRunLength survive only if the whitespace pass also produced them.
func (t *Tokenizer) thai(text string) []string {
	spaced := make(map[string]bool)
	var tokens []string

	for _, chunk := range strings.Fields(text) {
		word := nonThaiRE.ReplaceAllString(chunk, "")
		if word == "" {
			continue
		}
		spaced[word] = true
		tokens = append(tokens, word)
	}

	for _, run := range thaiRunRE.FindAllString(text, -1) {
		if len([]rune(run)) > MaxThaiRunLength && !spaced[run] {
			continue
		}
		tokens = append(tokens, run)
	}

	return tokens
}

// detectDominantScript classifies text by script character ratios.
// Returns LangAuto when neither script dominates (mixed text).
func detectDominantScript(text string) string {
	var thai, latin, total int
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		switch {
		case unicode.Is(unicode.Thai, r):
			thai++
		case r < 128 && unicode.IsLetter(r):
			latin++
		}
	}
	if total == 0 {
		return LangAuto
	}
	if float64(thai)/float64(total) > thaiRatioThreshold {
		return LangThai
	}
	if float64(latin)/float64(total) > latinRatioThreshold {
		return LangEnglish
	}
	return LangAuto
}

// LanguageOf reports the script of a single token: LangThai if it contains
// any Thai code point, LangEnglish if it contains any Latin letter,
// otherwise LangAuto.
func LanguageOf(token string) string {
	for _, r := range token {
		if unicode.Is(unicode.Thai, r) {
			return LangThai
		}
	}
	for _, r := range token {
		if r < 128 && unicode.IsLetter(r) {
			return LangEnglish
		}
	}
	return LangAuto
}

func dedupe(tokens []string) []string {
	if len(tokens) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(tokens))
	out := tokens[:0]
	for _, tok := range tokens {
		if seen[tok] {
			continue
		}
		seen[tok] = true
		out = append(out, tok)
	}
	return out
}
