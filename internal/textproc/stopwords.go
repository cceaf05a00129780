package textproc

import (
	"strings"
	"unicode"
)

// englishStopWords holds articles, conjunctions, prepositions, copulas,
// modal verbs and pronouns excluded from vocabulary.
var englishStopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "from": true, "up": true, "about": true,
	"into": true, "through": true, "during": true, "before": true, "after": true,
	"above": true, "below": true, "between": true, "among": true, "around": true,
	"until": true, "since": true,
	"is": true, "are": true, "was": true, "were": true, "be": true,
	"been": true, "being": true, "have": true, "has": true, "had": true,
	"do": true, "does": true, "did": true, "will": true, "would": true,
	"could": true, "should": true, "may": true, "might": true, "can": true,
	"must": true, "shall": true,
	"this": true, "that": true, "these": true, "those": true,
	"i": true, "you": true, "he": true, "she": true, "it": true, "we": true,
	"they": true, "me": true, "him": true, "her": true, "us": true,
	"them": true, "my": true, "your": true, "his": true, "its": true,
	"our": true, "their": true, "mine": true, "yours": true, "ours": true,
	"theirs": true,
}

// thaiStopWords is the equivalent closed set of Thai connectives,
// pronouns and copulas.
var thaiStopWords = map[string]bool{
	"และ": true, "หรือ": true, "แต่": true, "ใน": true, "บน": true,
	"ที่": true, "เพื่อ": true, "ของ": true, "กับ": true, "โดย": true,
	"เป็น": true, "คือ": true, "มี": true, "ได้": true, "จะ": true,
	"ก็": true, "ไป": true, "มา": true, "อยู่": true,
	"นี้": true, "นั้น": true, "เหล่านี้": true, "เหล่านั้น": true,
	"ฉัน": true, "คุณ": true, "เขา": true, "เธอ": true, "มัน": true,
	"เรา": true, "พวกเขา": true, "ผม": true, "ดิฉัน": true,
	"ของฉัน": true, "ของคุณ": true, "ของเขา": true,
}

// StopWordFilter rejects function words and degenerate tokens.
// It is a pure function holder: no state, no side effects.
type StopWordFilter struct {
	minWordLength int
}

// NewStopWordFilter creates a filter with the given per-language minimum
// token length in runes. The minimum is applied uniformly to both scripts.
func NewStopWordFilter(minWordLength int) *StopWordFilter {
	if minWordLength <= 0 {
		minWordLength = 2
	}
	return &StopWordFilter{minWordLength: minWordLength}
}

// IsContentWord reports whether token is meaningful vocabulary for the
// given language (LangEnglish or LangThai). A token is rejected when its
// case-folded form is a stop word, it is purely numeric, all of its runes
// are identical, or it is shorter than the configured minimum.
func (f *StopWordFilter) IsContentWord(token, language string) bool {
	runes := []rune(token)
	if len(runes) < f.minWordLength {
		return false
	}
	if isNumeric(runes) || isRepeatedRune(runes) {
		return false
	}

	folded := strings.ToLower(token)
	switch language {
	case LangThai:
		return !thaiStopWords[folded]
	default:
		return !englishStopWords[folded]
	}
}

func isNumeric(runes []rune) bool {
	for _, r := range runes {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(runes) > 0
}

func isRepeatedRune(runes []rune) bool {
	for _, r := range runes[1:] {
		if r != runes[0] {
			return false
		}
	}
	return true
}
