package facility

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"campobook/internal/schedule"
)

var (
	ErrClosedOnDate        = errors.New("facility is closed on the requested date")
	ErrOutsideOpeningHours = errors.New("requested interval is outside opening hours")
)

// DayHours is one weekday's opening window.
type DayHours struct {
	Enabled bool   `json:"enabled"`
	Open    string `json:"open"`
	Close   string `json:"close"`
}

// WeekSchedule maps lower-cased weekday names ("sunday".."saturday") to
// opening windows. Stored as a JSONB column.
type WeekSchedule map[string]DayHours

// CheckWindow reports whether [startTime, endTime] fits inside the opening
// window of the weekday that date falls on. Boundaries are inclusive: a
// reservation may start at opening and end exactly at closing.
func (ws WeekSchedule) CheckWindow(date, startTime, endTime string) error {
	day, err := schedule.WeekdayKey(date)
	if err != nil {
		return err
	}

	hours, ok := ws[day]
	if !ok || !hours.Enabled || hours.Open == "" || hours.Close == "" {
		return ErrClosedOnDate
	}

	startMin, err := schedule.ToMinutes(startTime)
	if err != nil {
		return err
	}
	endMin, err := schedule.ToMinutes(endTime)
	if err != nil {
		return err
	}

	openMin, err := schedule.ToMinutes(hours.Open)
	if err != nil {
		return ErrClosedOnDate
	}
	closeMin, err := schedule.ToMinutes(hours.Close)
	if err != nil {
		return ErrClosedOnDate
	}

	if startMin < openMin || endMin > closeMin {
		return ErrOutsideOpeningHours
	}

	return nil
}

// Window returns the opening window of the weekday that date falls on, in
// minutes since midnight.
func (ws WeekSchedule) Window(date string) (openMin, closeMin int, err error) {
	day, err := schedule.WeekdayKey(date)
	if err != nil {
		return 0, 0, err
	}

	hours, ok := ws[day]
	if !ok || !hours.Enabled || hours.Open == "" || hours.Close == "" {
		return 0, 0, ErrClosedOnDate
	}

	openMin, err = schedule.ToMinutes(hours.Open)
	if err != nil {
		return 0, 0, ErrClosedOnDate
	}
	closeMin, err = schedule.ToMinutes(hours.Close)
	if err != nil {
		return 0, 0, ErrClosedOnDate
	}

	return openMin, closeMin, nil
}

func (ws WeekSchedule) Value() (driver.Value, error) {
	if ws == nil {
		return json.Marshal(WeekSchedule{})
	}
	return json.Marshal(ws)
}

func (ws *WeekSchedule) Scan(src interface{}) error {
	if src == nil {
		*ws = WeekSchedule{}
		return nil
	}

	switch data := src.(type) {
	case []byte:
		return json.Unmarshal(data, ws)
	case string:
		return json.Unmarshal([]byte(data), ws)
	default:
		return fmt.Errorf("unsupported type %T for week schedule", src)
	}
}
