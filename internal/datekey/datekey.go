package datekey

import "time"

// Layout is the canonical calendar-day key format: YYYY-MM-DD in UTC.
const Layout = "2006-01-02"

// Clock supplies the current instant. Services take a Clock so day
// boundaries can be pinned in tests.
type Clock func() time.Time

// DayKey returns the UTC calendar-day key for an instant.
func DayKey(t time.Time) string {
	return t.UTC().Format(Layout)
}

// TodayKey returns the key for the clock's current UTC day.
func TodayKey(clock Clock) string {
	return DayKey(clock())
}

// YesterdayKey returns the key for the UTC day before the clock's current day.
func YesterdayKey(clock Clock) string {
	return DayKey(clock().UTC().AddDate(0, 0, -1))
}

// DayBounds returns the half-open UTC interval [start, end) covered by a key.
// The error is the parse error for a malformed key.
func DayBounds(key string) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(Layout, key, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, start.AddDate(0, 0, 1), nil
}

// SameDay reports whether two instants fall on the same UTC calendar day.
func SameDay(a, b time.Time) bool {
	return DayKey(a) == DayKey(b)
}
