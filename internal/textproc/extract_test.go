package textproc

import (
	"reflect"
	"testing"
)

func TestExtractVocabularyEnglish(t *testing.T) {
	e := NewExtractor(2)

	text := "Welcome to our restaurant. Today special includes grilled salmon with vegetables."
	got := e.ExtractVocabulary(text, LangEnglish, 0)
	want := []string{"Welcome", "Restaurant", "Today", "Special", "Includes", "Grilled", "Salmon", "Vegetables"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractVocabulary = %v, want %v", got, want)
	}
}

func TestExtractVocabularyMaxCount(t *testing.T) {
	e := NewExtractor(2)

	text := "Welcome to our restaurant. Today special includes grilled salmon with vegetables."
	got := e.ExtractVocabulary(text, LangEnglish, 6)

	if len(got) != 6 {
		t.Fatalf("got %d words, want 6: %v", len(got), got)
	}
	if got[0] != "Welcome" || got[5] != "Grilled" {
		t.Errorf("first-seen order broken: %v", got)
	}
}

func TestExtractVocabularyThaiUnchanged(t *testing.T) {
	e := NewExtractor(2)

	got := e.ExtractVocabulary("โรงพยาบาล และ ห้องตรวจ", LangThai, 0)
	want := []string{"โรงพยาบาล", "ห้องตรวจ"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestExtractVocabularyEmpty(t *testing.T) {
	e := NewExtractor(2)

	if got := e.ExtractVocabulary("", LangAuto, 10); got != nil {
		t.Errorf("empty text produced %v", got)
	}
	if got := e.ExtractVocabulary("the and or 123", LangEnglish, 10); got != nil {
		t.Errorf("stop-word-only text produced %v", got)
	}
}

func TestCapitalize(t *testing.T) {
	tests := []struct{ in, want string }{
		{"hello", "Hello"},
		{"WORLD", "World"},
		{"x", "X"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := capitalize(tt.in); got != tt.want {
			t.Errorf("capitalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
