package wage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func localTime(t *testing.T, value string) time.Time {
	t.Helper()
	loc, err := time.LoadLocation("America/Santo_Domingo")
	assert.NoError(t, err)
	parsed, err := time.ParseInLocation("2006-01-02 15:04", value, loc)
	assert.NoError(t, err)
	return parsed
}

func TestNightOverlap_PartialEveningWindow(t *testing.T) {
	// 20:30-22:00 overlaps the 21:00 window for exactly 60 minutes.
	start := localTime(t, "2025-03-10 20:30")
	end := localTime(t, "2025-03-10 22:00")

	assert.Equal(t, 60*time.Minute, NightOverlap(start, end))
}

func TestNightOverlap_EntirelyDaytime(t *testing.T) {
	start := localTime(t, "2025-03-10 09:00")
	end := localTime(t, "2025-03-10 17:30")

	assert.Equal(t, time.Duration(0), NightOverlap(start, end))
}

func TestNightOverlap_SpansMidnight(t *testing.T) {
	// 22:00-06:00 next day: 2h evening window + 6h morning window.
	start := localTime(t, "2025-03-10 22:00")
	end := localTime(t, "2025-03-11 06:00")

	assert.Equal(t, 8*time.Hour, NightOverlap(start, end))
}

func TestNightOverlap_EndsInsideMorningWindow(t *testing.T) {
	// 05:00-09:00: only 05:00-07:00 counts.
	start := localTime(t, "2025-03-10 05:00")
	end := localTime(t, "2025-03-10 09:00")

	assert.Equal(t, 2*time.Hour, NightOverlap(start, end))
}

func TestNightOverlap_MultiDaySession(t *testing.T) {
	// A forgotten open session closed 26h later still sums each
	// night window it crossed: 7h morning day1 is skipped (starts at
	// 08:00), then 21:00-24:00 (3h), 00:00-07:00 (7h).
	start := localTime(t, "2025-03-10 08:00")
	end := localTime(t, "2025-03-11 10:00")

	assert.Equal(t, 10*time.Hour, NightOverlap(start, end))
}

func TestNightOverlap_RejectsInvertedInterval(t *testing.T) {
	start := localTime(t, "2025-03-10 22:00")
	end := localTime(t, "2025-03-10 21:00")

	assert.Equal(t, time.Duration(0), NightOverlap(start, end))
}

func TestNightOverlap_ZeroDuration(t *testing.T) {
	at := localTime(t, "2025-03-10 23:00")
	assert.Equal(t, time.Duration(0), NightOverlap(at, at))
}
