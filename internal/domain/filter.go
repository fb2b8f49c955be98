package domain

import (
	"strconv"
	"strings"
)

// StatusFilterAll disables status filtering in VisibleBookings.
const StatusFilterAll = "all"

// VisibleBookings computes the dashboard's visible set: a booking is kept
// when its status matches the filter (or the filter is "all"/empty) AND
// its id contains the search substring, case-insensitive. Pure function,
// no side effects; the input slice is never mutated.
func VisibleBookings(bs []Booking, statusFilter, search string) []Booking {
	q := strings.ToLower(strings.TrimSpace(search))
	sf := strings.TrimSpace(statusFilter)

	out := make([]Booking, 0, len(bs))
	for _, b := range bs {
		if sf != "" && sf != StatusFilterAll && string(b.Status) != sf {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(strconv.FormatInt(b.ID, 10)), q) {
			continue
		}
		out = append(out, b)
	}
	return out
}
