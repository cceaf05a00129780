package ocr

import (
	"reflect"
	"testing"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Hello world", "Hello world"},
		{"blank lines dropped", "Hello\n\n\nworld\n", "Hello world"},
		{"leading trailing space", "  Hello  \n  world  ", "Hello world"},
		{"whitespace runs collapsed", "Hello\t\t  world", "Hello world"},
		{"thai preserved", "สวัสดี\nครับ", "สวัสดี ครับ"},
		{"empty", "", ""},
		{"whitespace only", " \n \t \n ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanText(tt.in); got != tt.want {
				t.Errorf("CleanText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewTesseractEngineLanguages(t *testing.T) {
	tests := []struct {
		langs string
		want []string
	}{
		{"tha+eng", []string{"tha", "eng"}},
		{"eng", []string{"eng"}},
		{"", []string{"eng"}},
	}

	for _, tt := range tests {
		e := NewTesseractEngine(tt.langs)
		if !reflect.DeepEqual(e.languages, tt.want) {
			t.Errorf("languages(%q) = %v, want %v", tt.langs, e.languages, tt.want)
		}
	}
}

func TestEngineNames(t *testing.T) {
	if got := NewTesseractEngine("eng").Name(); got != "tesseract" {
		t.Errorf("tesseract name = %q", got)
	}
	if got := NewVisionEngine(nil, "gemma3:4b").Name(); got != "vision" {
		t.Errorf("vision name = %q", got)
	}
}
