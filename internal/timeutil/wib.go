package timeutil

import (
	"time"
)

// WIB is Western Indonesia Time (UTC+7), the dashboard's reporting zone.
var WIB *time.Location

func init() {
	var err error
	WIB, err = time.LoadLocation("Asia/Jakarta")
	if err != nil {
		// Fallback: create fixed zone if Asia/Jakarta not available
		WIB = time.FixedZone("WIB", 7*60*60)
	}
}

// SetLocation replaces the reporting zone. Unknown names keep the current zone.
func SetLocation(name string) error {
	if name == "" {
		return nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return err
	}
	WIB = loc
	return nil
}

// Now returns the current time in the reporting zone
func Now() time.Time {
	return time.Now().In(WIB)
}

// ToWIB converts any time to the reporting zone
func ToWIB(t time.Time) time.Time {
	return t.In(WIB)
}

// FormatWIB formats a time in the reporting zone using the given layout
func FormatWIB(t time.Time, layout string) string {
	return t.In(WIB).Format(layout)
}

// StartOfDay returns 00:00:00 of t's calendar day in the reporting zone
func StartOfDay(t time.Time) time.Time {
	local := t.In(WIB)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, WIB)
}

// EndOfDay returns 23:59:59.999999999 of t's calendar day in the reporting zone
func EndOfDay(t time.Time) time.Time {
	local := t.In(WIB)
	return time.Date(local.Year(), local.Month(), local.Day(), 23, 59, 59, 999999999, WIB)
}

// SameDay reports whether a and b fall on the same calendar day in the reporting zone
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.In(WIB).Date()
	by, bm, bd := b.In(WIB).Date()
	return ay == by && am == bm && ad == bd
}

// Common layouts
const (
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04:05"
	DateTimeLayout = "2006-01-02 15:04:05"
	DisplayLayout  = "02 Jan 2006, 15:04"
)
