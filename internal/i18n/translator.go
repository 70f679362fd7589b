package i18n

import (
	"time"

	"legalkit/internal/model"
)

// Translator resolves message keys for one language.
type Translator struct {
	lang Lang
	loc  *time.Location
}

// New returns a translator for lang, falling back to the default language.
func New(lang Lang) Translator {
	if !lang.Valid() {
		lang = DefaultLang
	}
	return Translator{lang: lang, loc: time.Local}
}

// WithLocation returns a copy that formats dates in loc.
func (t Translator) WithLocation(loc *time.Location) Translator {
	if loc != nil {
		t.loc = loc
	}
	return t
}

// Lang returns the active language.
func (t Translator) Lang() Lang {
	if !t.lang.Valid() {
		return DefaultLang
	}
	return t.lang
}

// T returns the message for key, or the key itself when it is unknown.
func (t Translator) T(key string) string {
	if table, ok := tables[t.Lang()]; ok {
		if msg, ok := table[key]; ok {
			return msg
		}
	}
	return key
}

// StatusText localizes a task status; unknown statuses pass through.
func (t Translator) StatusText(status model.TaskStatus) string {
	switch status {
	case model.StatusPending:
		return t.T("status_pending")
	case model.StatusRunning:
		return t.T("status_running")
	case model.StatusCompleted:
		return t.T("status_completed")
	case model.StatusFailed:
		return t.T("status_failed")
	default:
		return string(status)
	}
}

// FormatDate renders a timestamp in the locale style of the language.
func (t Translator) FormatDate(ts time.Time) string {
	if ts.IsZero() {
		return "-"
	}
	loc := t.loc
	if loc == nil {
		loc = time.Local
	}
	ts = ts.In(loc)
	if t.Lang() == Chinese {
		return ts.Format("2006/1/2 15:04:05")
	}
	return ts.Format("1/2/2006, 3:04:05 PM")
}
