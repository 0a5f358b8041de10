// Package locale provides humanized elapsed-time phrases and named absolute
// date formats. A Locale bundles the magnitude table fed to go-humanize with
// the suffix appended to every elapsed phrase (ja: 「前」, en: "ago").
package locale

import (
	"time"

	"github.com/dustin/go-humanize"
)

type Locale struct {
	Code    string
	suffix  string
	mags    []humanize.RelTimeMagnitude
	formats map[string]string
}

// ForCode returns the locale for a config code, defaulting to Japanese.
func ForCode(code string) *Locale {
	if code == "en" {
		return English()
	}
	return Japanese()
}

func Japanese() *Locale {
	return &Locale{
		Code:   "ja",
		suffix: "前",
		mags: []humanize.RelTimeMagnitude{
			{D: time.Minute, Format: "1分未満%s", DivBy: 1},
			{D: 2 * time.Minute, Format: "1分%s", DivBy: 1},
			{D: time.Hour, Format: "%d分%s", DivBy: time.Minute},
			{D: 2 * time.Hour, Format: "約1時間%s", DivBy: 1},
			{D: humanize.Day, Format: "約%d時間%s", DivBy: time.Hour},
			{D: 2 * humanize.Day, Format: "1日%s", DivBy: 1},
			{D: humanize.Month, Format: "%d日%s", DivBy: humanize.Day},
			{D: 2 * humanize.Month, Format: "約1ヶ月%s", DivBy: 1},
			{D: humanize.Year, Format: "%dヶ月%s", DivBy: humanize.Month},
			{D: 18 * humanize.Month, Format: "約1年%s", DivBy: 1},
			{D: humanize.LongTime, Format: "%d年%s", DivBy: humanize.Year},
		},
		formats: map[string]string{
			"post_create": "2006年01月02日 15:04",
			"default":     "2006/01/02 15:04:05",
		},
	}
}

func English() *Locale {
	return &Locale{
		Code:   "en",
		suffix: "ago",
		mags: []humanize.RelTimeMagnitude{
			{D: time.Minute, Format: "less than a minute %s", DivBy: 1},
			{D: 2 * time.Minute, Format: "1 minute %s", DivBy: 1},
			{D: time.Hour, Format: "%d minutes %s", DivBy: time.Minute},
			{D: 2 * time.Hour, Format: "about 1 hour %s", DivBy: 1},
			{D: humanize.Day, Format: "about %d hours %s", DivBy: time.Hour},
			{D: 2 * humanize.Day, Format: "1 day %s", DivBy: 1},
			{D: humanize.Month, Format: "%d days %s", DivBy: humanize.Day},
			{D: 2 * humanize.Month, Format: "about 1 month %s", DivBy: 1},
			{D: humanize.Year, Format: "%d months %s", DivBy: humanize.Month},
			{D: 18 * humanize.Month, Format: "about 1 year %s", DivBy: 1},
			{D: humanize.LongTime, Format: "%d years %s", DivBy: humanize.Year},
		},
		formats: map[string]string{
			"post_create": "Jan 02, 2006 15:04",
			"default":     "2006-01-02 15:04:05",
		},
	}
}

// HumanizeElapsed renders the elapsed time between t and now as a relative
// phrase with the locale suffix appended.
func (l *Locale) HumanizeElapsed(t, now time.Time) string {
	return humanize.CustomRelTime(t, now, l.suffix, l.suffix, l.mags)
}

// FormatLocalized formats t with the named format, falling back to the
// locale default when the id is unknown.
func (l *Locale) FormatLocalized(t time.Time, formatID string) string {
	layout, ok := l.formats[formatID]
	if !ok {
		layout = l.formats["default"]
	}
	return t.Format(layout)
}
