package vocab

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/screenlex/platform/internal/translate"
)

// fakeTranslator returns canned meanings, or failures when broken.
type fakeTranslator struct {
	broken bool
	panics bool
	calls  int
}

func (f *fakeTranslator) Translate(_ context.Context, text, _ string) translate.Result {
	f.calls++
	if f.panics {
		panic("translator exploded")
	}
	if f.broken {
		return translate.Result{
			TranslatedText:   text,
			DetectedLanguage: translate.LangError,
			Error:            "backend unreachable",
		}
	}
	return translate.Result{
		TranslatedText:   "ไทย:" + strings.ToLower(text),
		DetectedLanguage: "en",
		Confidence:       0.9,
	}
}

func newTestManager(tr Translator) (*Manager, *Store) {
	store := NewStore(100)
	return NewManager(store, 2, tr, "th", true), store
}

func TestProcessTextAddsContentWords(t *testing.T) {
	m, store := newTestManager(&fakeTranslator{})

	added := m.ProcessText(context.Background(), "Hello world the and", "test snippet")

	assert.Equal(t, 2, added)
	assert.Equal(t, 2, store.Size())
	assert.Equal(t, "ไทย:hello", store.GetMeaning("hello"))
	assert.Equal(t, "ไทย:world", store.GetMeaning("world"))
	assert.False(t, store.Has("the"), "stop words never stored")
}

func TestProcessTextRepeatBumpsFrequency(t *testing.T) {
	m, store := newTestManager(&fakeTranslator{})

	m.ProcessText(context.Background(), "coffee", "menu")
	added := m.ProcessText(context.Background(), "coffee", "receipt")

	assert.Equal(t, 0, added, "repeat words are not new")
	entries := store.EntriesByFrequency()
	require.Len(t, entries, 1)
	assert.Equal(t, 2, entries[0].Frequency)
	assert.ElementsMatch(t, []string{"menu", "receipt"}, entries[0].Contexts)
}

func TestProcessTextThaiStopWordsSkipped(t *testing.T) {
	m, store := newTestManager(&fakeTranslator{})

	added := m.ProcessText(context.Background(), "และ หรือ แต่", "")

	assert.Equal(t, 0, added)
	assert.Equal(t, 0, store.Size())
}

func TestProcessTextFailedTranslationStoresWordAnyway(t *testing.T) {
	tr := &fakeTranslator{broken: true}
	m, store := newTestManager(tr)

	added := m.ProcessText(context.Background(), "hospital", "")

	assert.Equal(t, 1, added)
	assert.True(t, store.Has("hospital"))
	assert.Equal(t, "", store.GetMeaning("hospital"))
}

func TestProcessTextRetriesMeaningOnReencounter(t *testing.T) {
	tr := &fakeTranslator{broken: true}
	m, store := newTestManager(tr)

	m.ProcessText(context.Background(), "hospital", "")
	require.Equal(t, "", store.GetMeaning("hospital"))

	tr.broken = false
	m.ProcessText(context.Background(), "hospital", "")

	assert.Equal(t, "ไทย:hospital", store.GetMeaning("hospital"))
	entries := store.EntriesByFrequency()
	require.Len(t, entries, 1)
	assert.Equal(t, 2, entries[0].Frequency)
}

func TestProcessTextPanickingTranslatorRecovered(t *testing.T) {
	m, store := newTestManager(&fakeTranslator{panics: true})

	assert.NotPanics(t, func() {
		m.ProcessText(context.Background(), "hospital emergency", "")
	})
	assert.Equal(t, 2, store.Size())
	assert.Equal(t, "", store.GetMeaning("hospital"))
}

func TestProcessTextNilTranslator(t *testing.T) {
	store := NewStore(100)
	m := NewManager(store, 2, nil, "th", true)

	m.ProcessText(context.Background(), "quiet words", "")

	assert.Equal(t, 2, store.Size())
	assert.Equal(t, "", store.GetMeaning("quiet"))
}

func TestProcessTextAutoTranslateOff(t *testing.T) {
	tr := &fakeTranslator{}
	store := NewStore(100)
	m := NewManager(store, 2, tr, "th", false)

	m.ProcessText(context.Background(), "silent mode", "")

	assert.Equal(t, 0, tr.calls, "translator never called when auto-translate is off")
	assert.Equal(t, "", store.GetMeaning("silent"))
}

func TestDisplayTablePendingPlaceholder(t *testing.T) {
	m, store := newTestManager(nil)

	store.Upsert("Known", "รู้จัก", "")
	store.Upsert("pending", "", "")

	rows := m.DisplayTable()
	require.Len(t, rows, 2)
	assert.Equal(t, "Known", rows[0].Word)
	assert.Equal(t, "รู้จัก", rows[0].Meaning)
	assert.Equal(t, "pending", rows[1].Word)
	assert.Equal(t, PendingMeaning, rows[1].Meaning)
}

func TestDisplayTableFrequencyOrder(t *testing.T) {
	m, store := newTestManager(nil)

	store.Upsert("rare", "", "")
	store.Upsert("common", "", "")
	store.Upsert("common", "", "")

	rows := m.DisplayTable()
	require.Len(t, rows, 2)
	assert.Equal(t, "common", rows[0].Word)
	assert.Equal(t, "rare", rows[1].Word)
}

func TestStatistics(t *testing.T) {
	m, store := newTestManager(nil)

	store.Upsert("one", "หนึ่ง", "")
	store.Upsert("two", "สอง", "")
	store.Upsert("three", "", "")
	store.Upsert("four", "", "")

	stats := m.Statistics()
	assert.Equal(t, 4, stats.TotalWords)
	assert.Equal(t, 2, stats.WordsWithMeaning)
	assert.InDelta(t, 50.0, stats.CompletionRate, 0.01)
}

func TestStatisticsEmpty(t *testing.T) {
	m, _ := newTestManager(nil)

	stats := m.Statistics()
	assert.Equal(t, 0, stats.TotalWords)
	assert.Equal(t, 0.0, stats.CompletionRate)
}
