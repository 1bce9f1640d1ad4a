package analytics

import "time"

// StartOfDay truncates t to midnight in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// DayBounds returns [start, end) for the business day containing t.
func DayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	start := StartOfDay(t, loc)
	return start, start.AddDate(0, 0, 1)
}

// WeekBounds returns [monday, next monday) for the ISO week containing t.
func WeekBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	day := StartOfDay(t, loc)
	offset := (int(day.Weekday()) + 6) % 7 // Monday=0
	start := day.AddDate(0, 0, -offset)
	return start, start.AddDate(0, 0, 7)
}

// MonthBounds returns [first of month, first of next month).
func MonthBounds(year int, month time.Month, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 1, 0)
}

func dayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(time.DateOnly)
}

func within(t time.Time, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}
