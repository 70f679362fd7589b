package i18n

import (
	"math"
	"time"

	"github.com/dustin/go-humanize"
)

var relMagnitudes = map[Lang][]humanize.RelTimeMagnitude{
	English: {
		{D: 2 * time.Second, Format: "just now", DivBy: 1},
		{D: time.Minute, Format: "%d seconds %s", DivBy: time.Second},
		{D: 2 * time.Minute, Format: "1 minute %s", DivBy: 1},
		{D: time.Hour, Format: "%d minutes %s", DivBy: time.Minute},
		{D: 2 * time.Hour, Format: "1 hour %s", DivBy: 1},
		{D: humanize.Day, Format: "%d hours %s", DivBy: time.Hour},
		{D: 2 * humanize.Day, Format: "1 day %s", DivBy: 1},
		{D: math.MaxInt64, Format: "%d days %s", DivBy: humanize.Day},
	},
	Chinese: {
		{D: 2 * time.Second, Format: "刚刚", DivBy: 1},
		{D: time.Minute, Format: "%d 秒%s", DivBy: time.Second},
		{D: time.Hour, Format: "%d 分钟%s", DivBy: time.Minute},
		{D: humanize.Day, Format: "%d 小时%s", DivBy: time.Hour},
		{D: math.MaxInt64, Format: "%d 天%s", DivBy: humanize.Day},
	},
}

var relLabels = map[Lang][2]string{
	English: {"ago", "from now"},
	Chinese: {"前", "后"},
}

// RelativeTime renders then relative to now ("5 seconds ago", "5 秒前").
func (t Translator) RelativeTime(then, now time.Time) string {
	if then.IsZero() {
		return t.T("na")
	}
	lang := t.Lang()
	labels := relLabels[lang]
	return humanize.CustomRelTime(then, now, labels[0], labels[1], relMagnitudes[lang])
}
