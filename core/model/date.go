package model

import (
	"encoding/json"
	"time"
)

// DateLayout is the wire format for calendar dates in project documents.
const DateLayout = "2006-01-02"

// Date is a calendar day without a time component. All engine arithmetic is
// done on whole days in UTC.
type Date struct {
	time.Time
}

// NewDate builds a Date at UTC midnight.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day in UTC.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// AddDays returns the date n calendar days later (or earlier for negative n).
func (d Date) AddDays(n int) Date {
	return Date{d.Time.AddDate(0, 0, n)}
}

// DaysSince returns the number of calendar days from o to d.
func (d Date) DaysSince(o Date) int {
	return int(d.Time.Sub(o.Time) / (24 * time.Hour))
}

// Before reports whether d falls on an earlier day than o.
func (d Date) Before(o Date) bool { return d.Time.Before(o.Time) }

// After reports whether d falls on a later day than o.
func (d Date) After(o Date) bool { return d.Time.After(o.Time) }

// Equal reports whether both dates fall on the same day.
func (d Date) Equal(o Date) bool { return d.Time.Equal(o.Time) }

// MarshalText renders the date as YYYY-MM-DD. The zero date renders empty.
func (d Date) MarshalText() ([]byte, error) {
	if d.IsZero() {
		return []byte(""), nil
	}
	return []byte(d.Format(DateLayout)), nil
}

// UnmarshalText parses YYYY-MM-DD. Empty input yields the zero date.
func (d *Date) UnmarshalText(text []byte) error {
	s := string(text)
	if s == "" {
		*d = Date{}
		return nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return err
	}
	*d = Date{t}
	return nil
}

// MarshalJSON renders the date as a quoted YYYY-MM-DD string. Without it the
// embedded time.Time's JSON methods take precedence and emit RFC3339.
func (d Date) MarshalJSON() ([]byte, error) {
	text, err := d.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON parses a quoted YYYY-MM-DD string or null.
func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(s))
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}
