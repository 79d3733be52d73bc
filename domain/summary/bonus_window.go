package summary

import (
	"time"

	"github.com/fundwit/go-commons/types"
)

const clockLayout = "15:04"

// BonusWindow is the wall-clock range of a calendar day during which
// produced units count toward the incentive. A window with either bound
// missing admits nothing.
type BonusWindow struct {
	Start string // "HH:MM"
	End   string
}

func (w BonusWindow) IsZero() bool {
	return w.Start == "" || w.End == ""
}

// Contains reports whether the interval [start, end] lies fully inside the
// window on the entry's own day. An interval spanning a window boundary is
// wholly excluded.
func (w BonusWindow) Contains(start, end types.Timestamp) bool {
	if w.IsZero() {
		return false
	}
	windowStart, err := atClock(start.Time(), w.Start)
	if err != nil {
		return false
	}
	windowEnd, err := atClock(start.Time(), w.End)
	if err != nil {
		return false
	}
	if !windowEnd.After(windowStart) {
		return false
	}

	s := start.Time()
	e := end.Time()
	return !s.Before(windowStart) && !e.After(windowEnd)
}

func atClock(day time.Time, clock string) (time.Time, error) {
	t, err := time.Parse(clockLayout, clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location()), nil
}
