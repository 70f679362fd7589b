package i18n

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"legalkit/internal/model"
)

func TestTranslateFallsBackToKey(t *testing.T) {
	tr := New(Chinese)
	if got := tr.T("status_running"); got != "运行中" {
		t.Fatalf("expected chinese status, got %q", got)
	}
	if got := tr.T("missing_key"); got != "missing_key" {
		t.Fatalf("expected key fallback, got %q", got)
	}
	if got := New("fr").Lang(); got != English {
		t.Fatalf("expected invalid language to fall back to en, got %q", got)
	}
}

func TestTablesHaveSameKeys(t *testing.T) {
	for key := range tables[English] {
		if _, ok := tables[Chinese][key]; !ok {
			t.Fatalf("key %q missing from zh table", key)
		}
	}
	for key := range tables[Chinese] {
		if _, ok := tables[English][key]; !ok {
			t.Fatalf("key %q missing from en table", key)
		}
	}
}

func TestStatusTextPassesUnknownThrough(t *testing.T) {
	tr := New(English)
	if got := tr.StatusText(model.StatusCompleted); got != "Completed" {
		t.Fatalf("unexpected status text %q", got)
	}
	if got := tr.StatusText("cancelled"); got != "cancelled" {
		t.Fatalf("expected pass-through, got %q", got)
	}
}

func TestFormatDateByLocale(t *testing.T) {
	ts := time.Date(2024, 3, 1, 14, 5, 9, 0, time.UTC)
	if got := New(English).WithLocation(time.UTC).FormatDate(ts); got != "3/1/2024, 2:05:09 PM" {
		t.Fatalf("unexpected en date %q", got)
	}
	if got := New(Chinese).WithLocation(time.UTC).FormatDate(ts); got != "2024/3/1 14:05:09" {
		t.Fatalf("unexpected zh date %q", got)
	}
	if got := New(English).FormatDate(time.Time{}); got != "-" {
		t.Fatalf("expected dash for zero time, got %q", got)
	}
}

func TestParseLang(t *testing.T) {
	cases := map[string]Lang{
		"en":          English,
		"en-US":       English,
		"zh":          Chinese,
		"zh_CN.UTF-8": Chinese,
		"zh-Hans":     Chinese,
	}
	for input, want := range cases {
		got, err := ParseLang(input)
		if err != nil {
			t.Fatalf("%s: unexpected error %v", input, err)
		}
		if got != want {
			t.Fatalf("%s: expected %s, got %s", input, want, got)
		}
	}
	if _, err := ParseLang("fr"); err == nil {
		t.Fatalf("expected unsupported language error")
	}
	if _, err := ParseLang(""); err == nil {
		t.Fatalf("expected empty language error")
	}
}

func TestStoreRoundTrip(t *testing.T) {
	store := Store{Path: filepath.Join(t.TempDir(), "nested", PrefsFileName)}
	lang, err := store.Load()
	if err != nil {
		t.Fatalf("load missing prefs: %v", err)
	}
	if lang != DefaultLang {
		t.Fatalf("expected default language, got %s", lang)
	}
	if err := store.Save(Chinese); err != nil {
		t.Fatalf("save prefs: %v", err)
	}
	lang, err = store.Load()
	if err != nil {
		t.Fatalf("load prefs: %v", err)
	}
	if lang != Chinese {
		t.Fatalf("expected zh, got %s", lang)
	}
	if err := store.Save("fr"); err == nil {
		t.Fatalf("expected invalid language to be rejected")
	}
}

func TestStoreIgnoresUnknownLanguage(t *testing.T) {
	path := filepath.Join(t.TempDir(), PrefsFileName)
	if err := os.WriteFile(path, []byte("ui_lang: fr\n"), 0o644); err != nil {
		t.Fatalf("write prefs: %v", err)
	}
	lang, err := Store{Path: path}.Load()
	if err != nil {
		t.Fatalf("load prefs: %v", err)
	}
	if lang != DefaultLang {
		t.Fatalf("expected default language, got %s", lang)
	}
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	cases := []struct {
		lang Lang
		then time.Time
		want string
	}{
		{English, now.Add(-5 * time.Second), "5 seconds ago"},
		{English, now, "just now"},
		{English, now.Add(-3 * time.Minute), "3 minutes ago"},
		{Chinese, now.Add(-5 * time.Second), "5 秒前"},
		{Chinese, now.Add(-2 * time.Hour), "2 小时前"},
		{English, time.Time{}, "N/A"},
	}
	for _, tc := range cases {
		if got := New(tc.lang).RelativeTime(tc.then, now); got != tc.want {
			t.Fatalf("%s %v: expected %q, got %q", tc.lang, tc.then, tc.want, got)
		}
	}
}
