package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tashkent(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Tashkent")
	require.NoError(t, err)
	return loc
}

func TestParseWeekly(t *testing.T) {
	loc := tashkent(t)

	tests := []struct {
		name    string
		spec    string
		want    Weekly
		wantErr bool
	}{
		{name: "short day", spec: "thu 08:00", want: Weekly{Day: time.Thursday, Hour: 8, Location: loc}},
		{name: "long day mixed case", spec: "Saturday 20:30", want: Weekly{Day: time.Saturday, Hour: 20, Minute: 30, Location: loc}},
		{name: "extra spaces", spec: "  sun   7:05 ", want: Weekly{Day: time.Sunday, Hour: 7, Minute: 5, Location: loc}},
		{name: "unknown day", spec: "funday 08:00", wantErr: true},
		{name: "bad time", spec: "thu 25:00", wantErr: true},
		{name: "missing time", spec: "thu", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseWeekly(tt.spec, loc)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWeeklyNext(t *testing.T) {
	loc := tashkent(t)
	poll := Weekly{Day: time.Thursday, Hour: 8, Location: loc}

	// 2026-10-15 is a Thursday.
	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "earlier in the week",
			now:  time.Date(2026, 10, 12, 9, 0, 0, 0, loc),
			want: time.Date(2026, 10, 15, 8, 0, 0, 0, loc),
		},
		{
			name: "same day before time",
			now:  time.Date(2026, 10, 15, 7, 59, 0, 0, loc),
			want: time.Date(2026, 10, 15, 8, 0, 0, 0, loc),
		},
		{
			name: "exactly at time goes to next week",
			now:  time.Date(2026, 10, 15, 8, 0, 0, 0, loc),
			want: time.Date(2026, 10, 22, 8, 0, 0, 0, loc),
		},
		{
			name: "later in the week",
			now:  time.Date(2026, 10, 17, 20, 0, 0, 0, loc),
			want: time.Date(2026, 10, 22, 8, 0, 0, 0, loc),
		},
		{
			name: "input in another zone",
			now:  time.Date(2026, 10, 15, 2, 30, 0, 0, time.UTC), // 07:30 in Tashkent
			want: time.Date(2026, 10, 15, 8, 0, 0, 0, loc),
		},
		{
			name: "month boundary",
			now:  time.Date(2026, 10, 30, 12, 0, 0, 0, loc),
			want: time.Date(2026, 11, 5, 8, 0, 0, 0, loc),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := poll.Next(tt.now)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestWeeklyString(t *testing.T) {
	w := Weekly{Day: time.Saturday, Hour: 20, Minute: 5}
	assert.Equal(t, "sat 20:05", w.String())
}
