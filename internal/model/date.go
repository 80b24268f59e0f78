package model

import "time"

// DateLayout is the scheduled-date wire format.
const DateLayout = "2006-01-02"

// FormatDate renders a scheduled date for display: "Hoje" for today,
// dd/mm/yyyy otherwise. Unparseable input is shown as-is so a backend
// format drift never blanks the column.
func FormatDate(date string, now time.Time) string {
	parsed, err := time.ParseInLocation(DateLayout, date, now.Location())
	if err != nil {
		return date
	}
	if sameDay(parsed, now) {
		return "Hoje"
	}
	return parsed.Format("02/01/2006")
}

// IsToday reports whether the wire date falls on the same calendar day
// as now.
func IsToday(date string, now time.Time) bool {
	parsed, err := time.ParseInLocation(DateLayout, date, now.Location())
	if err != nil {
		return false
	}
	return sameDay(parsed, now)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
