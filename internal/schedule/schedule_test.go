package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMinutes(t *testing.T) {
	tests := []struct {
		clock   string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"23:59", 1439, false},
		{"09:30", 570, false},
		{"18:00", 1080, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"9:30", 0, true},
		{"0930", 0, true},
		{"ab:cd", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ToMinutes(tt.clock)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrMalformedTime, "input %q", tt.clock)
			continue
		}
		require.NoError(t, err, "input %q", tt.clock)
		assert.Equal(t, tt.want, got, "input %q", tt.clock)
	}
}

func TestMinutesToClock(t *testing.T) {
	assert.Equal(t, "00:00", MinutesToClock(0))
	assert.Equal(t, "23:59", MinutesToClock(1439))
	assert.Equal(t, "09:05", MinutesToClock(545))
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                   string
		aStart, aEnd, bStart, bEnd string
		want                   bool
	}{
		{"touching boundary does not overlap", "18:00", "19:00", "19:00", "20:00", false},
		{"partial overlap", "18:00", "19:30", "19:00", "20:00", true},
		{"identical intervals", "18:00", "19:00", "18:00", "19:00", true},
		{"contained interval", "18:00", "20:00", "18:30", "19:00", true},
		{"disjoint", "08:00", "09:00", "10:00", "11:00", false},
		{"touching on the other side", "19:00", "20:00", "18:00", "19:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := OverlapsClock(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOverlapsClockMalformed(t *testing.T) {
	_, err := OverlapsClock("18:00", "19:00", "25:00", "26:00")
	assert.ErrorIs(t, err, ErrMalformedTime)
}

func TestWeekdayKey(t *testing.T) {
	day, err := WeekdayKey("2025-06-02") // a Monday
	require.NoError(t, err)
	assert.Equal(t, "monday", day)

	day, err = WeekdayKey("2025-06-08")
	require.NoError(t, err)
	assert.Equal(t, "sunday", day)

	_, err = WeekdayKey("02/06/2025")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestGenerateStarts(t *testing.T) {
	// 09:00-12:00 window, 30 minute step, one hour reservations
	starts := GenerateStarts(540, 720, 30, 60)
	want := []int{540, 570, 600, 630, 660}
	assert.Equal(t, want, starts)

	assert.Empty(t, GenerateStarts(540, 560, 30, 60))
	assert.Nil(t, GenerateStarts(540, 720, 0, 60))
}
