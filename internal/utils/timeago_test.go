package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeAgo(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		t    time.Time
		want string
	}{
		{"seconds", now.Add(-30 * time.Second), "less than a minute"},
		{"one minute", now.Add(-90 * time.Second), "1 minute"},
		{"minutes", now.Add(-5 * time.Minute), "5 minutes"},
		{"hours", now.Add(-2 * time.Hour), "about 2 hours"},
		{"days", now.Add(-3 * 24 * time.Hour), "3 days"},
		{"months", now.Add(-65 * 24 * time.Hour), "about 2 months"},
		{"years", now.Add(-800 * 24 * time.Hour), "over 2 years"},
		{"future clamps to zero", now.Add(time.Hour), "less than a minute"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, TimeAgo(tc.t, now), tc.name)
	}
}

func TestFormatDateTime(t *testing.T) {
	ts := time.Date(2024, 1, 2, 15, 4, 0, 0, time.UTC)
	assert.Equal(t, "Jan 2, 2024, 3:04 PM", FormatDateTime(ts))
}
