package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestISOWeekday(t *testing.T) {
	tests := []struct {
		date time.Time
		want int
	}{
		{time.Date(2025, 1, 5, 12, 0, 0, 0, time.UTC), 7}, // Sunday
		{time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), 1},  // Monday
		{tuesday, 2},
		{time.Date(2025, 1, 11, 23, 59, 0, 0, time.UTC), 6}, // Saturday
	}

	for _, tt := range tests {
		t.Run(tt.date.Weekday().String(), func(t *testing.T) {
			assert.Equal(t, tt.want, ISOWeekday(tt.date))
		})
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    Minutes
		wantErr bool
	}{
		{in: "09:00", want: 540},
		{in: "17:30:00", want: 1050},
		{in: "00:00", want: 0},
		{in: "24:00", want: MinutesPerDay},
		{in: "24:01", wantErr: true},
		{in: "9", wantErr: true},
		{in: "aa:00", wantErr: true},
		{in: "10:75", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClock(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMinutesString(t *testing.T) {
	assert.Equal(t, "09:05", Minutes(545).String())
	assert.Equal(t, "24:00", MinutesPerDay.String())
}

func TestMinutesOn(t *testing.T) {
	loc := time.FixedZone("CST", -6*3600)
	date := time.Date(2025, 1, 7, 15, 42, 0, 0, loc)

	got := MustClock("10:30").On(date)

	assert.Equal(t, time.Date(2025, 1, 7, 10, 30, 0, 0, loc), got)
	assert.Equal(t, MustClock("10:30"), MinuteOfDay(got))
}

func TestDays(t *testing.T) {
	start := time.Date(2025, 1, 6, 18, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 8, 9, 0, 0, 0, time.UTC)

	days := Days(start, end)

	require.Len(t, days, 3)
	assert.Equal(t, time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), days[0])
	assert.Equal(t, time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC), days[2])
}
