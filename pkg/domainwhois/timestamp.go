package domainwhois

import (
	"encoding/json"
	"fmt"
	"time"
)

// Timestamp is a wall clock reading in the registry's civil calendar. The registry does not
// state an UTC offset, so this is deliberately not a time.Time.
type Timestamp struct {
	Year   int
	Month  time.Month
	Day    int
	Hour   int
	Minute int
	Second int
}

const timestampJsonLayout = "2006-01-02T15:04:05"

// NewTimestamp validates calendar ranges (no 32nd day, no 13th month, no 24th hour)
func NewTimestamp(year int, month time.Month, day int, hour int, minute int, second int) (Timestamp, error) {
	ts := Timestamp{
		Year:   year,
		Month:  month,
		Day:    day,
		Hour:   hour,
		Minute: minute,
		Second: second,
	}

	if err := ts.validate(); err != nil {
		return Timestamp{}, err
	}

	return ts, nil
}

func (t Timestamp) validate() error {
	switch {
	case t.Year < 1 || t.Year > 9999:
		return fmt.Errorf("year out of range: %d", t.Year)
	case t.Month < time.January || t.Month > time.December:
		return fmt.Errorf("month out of range: %d", t.Month)
	case t.Day < 1 || t.Day > daysIn(t.Year, t.Month):
		return fmt.Errorf("day out of range: %d", t.Day)
	case t.Hour < 0 || t.Hour > 23:
		return fmt.Errorf("hour out of range: %d", t.Hour)
	case t.Minute < 0 || t.Minute > 59:
		return fmt.Errorf("minute out of range: %d", t.Minute)
	case t.Second < 0 || t.Second > 59:
		return fmt.Errorf("second out of range: %d", t.Second)
	default:
		return nil
	}
}

// In pins the civil reading to a location
func (t Timestamp) In(loc *time.Location) time.Time {
	return time.Date(t.Year, t.Month, t.Day, t.Hour, t.Minute, t.Second, 0, loc)
}

// Compare returns -1, 0 or +1. No time zone is involved, the readings share a calendar.
func (t Timestamp) Compare(other Timestamp) int {
	a := t.In(time.UTC)
	b := other.In(time.UTC)

	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}

func (t Timestamp) Before(other Timestamp) bool {
	return t.Compare(other) < 0
}

func (t Timestamp) String() string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d", t.Year, t.Month, t.Day, t.Hour, t.Minute, t.Second)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.In(time.UTC).Format(timestampJsonLayout))
}

func (t *Timestamp) UnmarshalJSON(input []byte) error {
	var serialized string
	if err := json.Unmarshal(input, &serialized); err != nil {
		return err
	}

	parsed, err := time.Parse(timestampJsonLayout, serialized)
	if err != nil {
		return err
	}

	*t = Timestamp{
		Year:   parsed.Year(),
		Month:  parsed.Month(),
		Day:    parsed.Day(),
		Hour:   parsed.Hour(),
		Minute: parsed.Minute(),
		Second: parsed.Second(),
	}
	return nil
}

func daysIn(year int, month time.Month) int {
	// day 0 of the next month normalizes to the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
