package wage

import "time"

// Night windows in local wall-clock time. A calendar day has two:
// [00:00, 07:00) and [21:00, 24:00).
const (
	nightEndHour   = 7
	nightStartHour = 21
)

// NightOverlap returns how much of [start, end) falls inside the
// nightly windows, computed as closed-interval overlap per calendar
// day, O(days spanned) rather than per-minute enumeration. Times are
// evaluated in start's location; end must not precede start.
func NightOverlap(start, end time.Time) time.Duration {
	if !end.After(start) {
		return 0
	}
	end = end.In(start.Location())

	var total time.Duration
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	for day.Before(end) {
		morningEnd := day.Add(nightEndHour * time.Hour)
		eveningStart := day.Add(nightStartHour * time.Hour)
		nextDay := day.AddDate(0, 0, 1)

		total += overlap(start, end, day, morningEnd)
		total += overlap(start, end, eveningStart, nextDay)

		day = nextDay
	}
	return total
}

func overlap(aStart, aEnd, bStart, bEnd time.Time) time.Duration {
	lo := aStart
	if bStart.After(lo) {
		lo = bStart
	}
	hi := aEnd
	if bEnd.Before(hi) {
		hi = bEnd
	}
	if !hi.After(lo) {
		return 0
	}
	return hi.Sub(lo)
}
