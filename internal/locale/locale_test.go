package locale

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func TestJapaneseHumanizeElapsed(t *testing.T) {
	l := Japanese()

	cases := []struct {
		elapsed time.Duration
		want    string
	}{
		{30 * time.Second, "1分未満前"},
		{90 * time.Second, "1分前"},
		{3 * time.Minute, "3分前"},
		{90 * time.Minute, "約1時間前"},
		{5 * time.Hour, "約5時間前"},
		{30 * time.Hour, "1日前"},
		{72 * time.Hour, "3日前"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, l.HumanizeElapsed(now.Add(-c.elapsed), now))
	}
}

func TestEnglishHumanizeElapsed(t *testing.T) {
	l := English()

	assert.Equal(t, "3 minutes ago", l.HumanizeElapsed(now.Add(-3*time.Minute), now))
	assert.Equal(t, "less than a minute ago", l.HumanizeElapsed(now.Add(-10*time.Second), now))
}

func TestFormatLocalized(t *testing.T) {
	ts := time.Date(2024, 5, 1, 11, 57, 0, 0, time.UTC)

	assert.Equal(t, "2024年05月01日 11:57", Japanese().FormatLocalized(ts, "post_create"))
	assert.Equal(t, "May 01, 2024 11:57", English().FormatLocalized(ts, "post_create"))
	// Unknown format ids fall back to the locale default.
	assert.Equal(t, "2024/05/01 11:57:00", Japanese().FormatLocalized(ts, "nope"))
}

func TestForCode(t *testing.T) {
	assert.Equal(t, "en", ForCode("en").Code)
	assert.Equal(t, "ja", ForCode("ja").Code)
	assert.Equal(t, "ja", ForCode("").Code)
}
