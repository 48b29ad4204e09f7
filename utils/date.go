package utils

import "time"

// LeagueTimezone is where the league plays; timestamps shown to users use it.
const LeagueTimezone = "America/Los_Angeles"

func FromUTCToTimezone(utcTime time.Time, timezone string) time.Time {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return utcTime
	}
	return utcTime.In(loc)
}

// FormatLocal renders t in the league timezone, e.g. "Mar 4, 2026 6:30 PM".
func FormatLocal(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return FromUTCToTimezone(t.UTC(), LeagueTimezone).Format("Jan 2, 2006 3:04 PM")
}
