package textproc

import "testing"

func TestIsContentWordEnglish(t *testing.T) {
	f := NewStopWordFilter(2)

	tests := []struct {
		token string
		want  bool
	}{
		{"hospital", true},
		{"Emergency", true},
		{"the", false},
		{"The", false}, // case-insensitive stop lookup
		{"THEIR", false},
		{"a", false},    // below minimum length
		{"ab", true},    // at minimum length
		{"123", false},  // numeric
		{"aaa", false},  // repeated rune
		{"ii", false},   // repeated rune, two runes
		{"is", false},   // stop word
		{"isle", true},
	}

	for _, tt := range tests {
		if got := f.IsContentWord(tt.token, LangEnglish); got != tt.want {
			t.Errorf("IsContentWord(%q) = %v, want %v", tt.token, got, tt.want)
		}
	}
}

func TestIsContentWordThai(t *testing.T) {
	f := NewStopWordFilter(2)

	tests := []struct {
		token string
		want  bool
	}{
		{"โรงพยาบาล", true},
		{"และ", false}, // stop word
		{"คือ", false},
		{"ๆๆๆ", false}, // repeated rune
		{"ด", false},   // single rune
		{"ครับ", true},
	}

	for _, tt := range tests {
		if got := f.IsContentWord(tt.token, LangThai); got != tt.want {
			t.Errorf("IsContentWord(%q) = %v, want %v", tt.token, got, tt.want)
		}
	}
}

func TestStopWordsNotInOtherLanguage(t *testing.T) {
	f := NewStopWordFilter(2)

	// An English stop word is fine as a Thai token and vice versa.
	if !f.IsContentWord("the", LangThai) {
		t.Error("english stop word rejected under thai rules")
	}
	if !f.IsContentWord("และ", LangEnglish) {
		t.Error("thai stop word rejected under english rules")
	}
}

func TestFilterMinimumLengthConfigurable(t *testing.T) {
	f := NewStopWordFilter(4)

	if f.IsContentWord("cat", LangEnglish) {
		t.Error("3-rune word passed a 4-rune minimum")
	}
	if !f.IsContentWord("cats", LangEnglish) {
		t.Error("4-rune word failed a 4-rune minimum")
	}
}

func TestFilterDefaultsMinimumLength(t *testing.T) {
	f := NewStopWordFilter(0)

	if f.IsContentWord("x", LangEnglish) {
		t.Error("single rune passed the default minimum")
	}
}
