// Package translate dispatches translation requests across interchangeable
// backends and normalizes their answers into one result shape.
package translate

import "unicode"

// Detected-language sentinel values used alongside real language tags.
const (
	LangUnknown     = "unknown"
	LangError       = "error"
	LangUnsupported = "unsupported"
)

// Service tags identifying which backend produced a result.
const (
	ServiceOllama = "ollama"
	ServiceGoogle = "google"
)

// Result is the common shape returned by the gateway regardless of backend.
// A populated Error means the call failed; TranslatedText then echoes the
// input so user text is never lost.
type Result struct {
	TranslatedText   string  `json:"translated_text"`
	DetectedLanguage string  `json:"detected_language"`
	Confidence       float64 `json:"confidence"`
	Service          string  `json:"service"`
	Model            string  `json:"model,omitempty"`
	Error            string  `json:"error,omitempty"`
	FromCache        bool    `json:"from_cache,omitempty"`
}

// Failed reports whether the result carries an error.
func (r Result) Failed() bool { return r.Error != "" }

// DetectLanguage classifies text by script: "th" when any Thai code point
// is present, "en" when any Latin letter is present, LangUnknown otherwise.
func DetectLanguage(text string) string {
	for _, r := range text {
		if unicode.Is(unicode.Thai, r) {
			return "th"
		}
	}
	for _, r := range text {
		if r < 128 && unicode.IsLetter(r) {
			return "en"
		}
	}
	return LangUnknown
}
