package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

const (
	dateLayout = "2006-01-02"

	// Years ParseDate accepts.
	MinYear = 1900
	MaxYear = 2199

	secondsPerDay = 24 * 60 * 60
)

var ErrDateOutOfRange = errors.New("date out of range")

// Date is a calendar date without a time component. The zero value means unset.
type Date struct {
	t time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func DateOf(t time.Time) Date {
	if t.IsZero() {
		return Date{}
	}
	return NewDate(t.Year(), t.Month(), t.Day())
}

func ParseDate(s string) (Date, error) {
	if s == "" {
		return Date{}, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	if y := t.Year(); y < MinYear || y > MaxYear {
		return Date{}, fmt.Errorf("%w: %q, year must be within %d-%d", ErrDateOutOfRange, s, MinYear, MaxYear)
	}
	return DateOf(t), nil
}

func (d Date) IsZero() bool { return d.t.IsZero() }
func (d Date) Time() time.Time { return d.t }
func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }
func (d Date) Before(o Date) bool { return d.t.Before(o.t) }
func (d Date) Equal(o Date) bool { return d.t.Equal(o.t) }
func (d Date) Weekday() time.Weekday { return d.t.Weekday() }

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DaysInclusive counts the days from start to end, both endpoints included.
// An inverted range clamps to 1. Dates sit on UTC midnight, so the difference
// in Unix seconds is always a whole number of days.
func DaysInclusive(start, end Date) int {
	days := (end.t.Unix()-start.t.Unix())/secondsPerDay + 1
	if days <= 0 {
		return 1
	}
	return int(days)
}

// CalendarRange lists every date from start to end inclusive. It is empty when
// either endpoint is unset or the range is inverted.
func CalendarRange(start, end Date) []Date {
	if start.IsZero() || end.IsZero() {
		return nil
	}
	if end.Before(start) {
		return nil
	}
	days := make([]Date, 0, DaysInclusive(start, end))
	for cur := start; !end.Before(cur); cur = cur.AddDays(1) {
		days = append(days, cur)
	}
	return days
}
