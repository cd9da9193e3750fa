package facility

import (
	"testing"

	"campobook/internal/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mondayToFriday() WeekSchedule {
	ws := WeekSchedule{}
	for _, day := range []string{"monday", "tuesday", "wednesday", "thursday", "friday"} {
		ws[day] = DayHours{Enabled: true, Open: "09:00", Close: "22:00"}
	}
	ws["saturday"] = DayHours{Enabled: false, Open: "09:00", Close: "13:00"}
	return ws
}

func TestCheckWindow(t *testing.T) {
	ws := mondayToFriday()

	tests := []struct {
		name    string
		date    string
		start   string
		end     string
		wantErr error
	}{
		{"inside window", "2025-06-02", "18:00", "19:00", nil},
		{"starts at opening", "2025-06-02", "09:00", "10:00", nil},
		{"ends exactly at closing", "2025-06-02", "21:00", "22:00", nil},
		{"ends after closing", "2025-06-02", "23:00", "23:30", ErrOutsideOpeningHours},
		{"starts before opening", "2025-06-02", "08:00", "09:30", ErrOutsideOpeningHours},
		{"disabled day", "2025-06-07", "10:00", "11:00", ErrClosedOnDate},
		{"missing day", "2025-06-08", "10:00", "11:00", ErrClosedOnDate},
		{"bad date", "06/02/2025", "10:00", "11:00", schedule.ErrInvalidDate},
		{"bad start time", "2025-06-02", "25:00", "11:00", schedule.ErrMalformedTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ws.CheckWindow(tt.date, tt.start, tt.end)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestCheckWindowDisabledDayIgnoresTime(t *testing.T) {
	ws := mondayToFriday()

	// Saturday is disabled: every interval rejects, even one that would fit
	// the configured window.
	for _, interval := range [][2]string{{"09:00", "10:00"}, {"10:00", "11:30"}, {"00:00", "00:30"}} {
		err := ws.CheckWindow("2025-06-07", interval[0], interval[1])
		assert.ErrorIs(t, err, ErrClosedOnDate)
	}
}

func TestCheckWindowBlankWindow(t *testing.T) {
	ws := WeekSchedule{
		"monday": {Enabled: true, Open: "", Close: ""},
	}

	err := ws.CheckWindow("2025-06-02", "10:00", "11:00")
	assert.ErrorIs(t, err, ErrClosedOnDate)
}

func TestWindow(t *testing.T) {
	ws := mondayToFriday()

	open, close, err := ws.Window("2025-06-02")
	require.NoError(t, err)
	assert.Equal(t, 540, open)
	assert.Equal(t, 1320, close)

	_, _, err = ws.Window("2025-06-08")
	assert.ErrorIs(t, err, ErrClosedOnDate)
}

func TestWeekScheduleScanValue(t *testing.T) {
	ws := mondayToFriday()

	raw, err := ws.Value()
	require.NoError(t, err)

	var got WeekSchedule
	require.NoError(t, got.Scan(raw))
	assert.Equal(t, ws, got)

	var empty WeekSchedule
	require.NoError(t, empty.Scan(nil))
	assert.Empty(t, empty)
}
