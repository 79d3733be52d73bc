package domain

import (
	"time"
)

const DateLayout = "2006-01-02"

// Date is a time-zone-naive calendar day, formatted as YYYY-MM-DD.
// The textual form orders lexically so BETWEEN queries work on it directly.
type Date string

func ParseDate(value string) (Date, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return "", err
	}
	return Date(t.Format(DateLayout)), nil
}

func DateOfTime(t time.Time) Date {
	return Date(t.Format(DateLayout))
}

func (d Date) Time() time.Time {
	t, err := time.Parse(DateLayout, string(d))
	if err != nil {
		return time.Time{}
	}
	return t
}

func (d Date) AddDays(days int) Date {
	return DateOfTime(d.Time().AddDate(0, 0, days))
}

func (d Date) String() string {
	return string(d)
}

func (d Date) IsZero() bool {
	return d == ""
}
