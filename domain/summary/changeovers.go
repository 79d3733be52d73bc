package summary

import (
	"shopfloor/domain"
)

// CountChangeovers walks the day's entries in start order and counts every
// transition between two different production orders. priorOrder seeds the
// walk with the trailing order of the previous day, so a job switch at the
// start of a shift is not undercounted.
func CountChangeovers(priorOrder *string, entries []domain.TimeEntry) int {
	count := 0
	previous := priorOrder
	for _, e := range entries {
		if e.OrderID == nil {
			continue
		}
		if previous != nil && *previous != *e.OrderID {
			count++
		}
		previous = e.OrderID
	}
	return count
}
