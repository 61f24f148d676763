package utils

import (
	"fmt"
	"time"
)

// Canonical wire formats for slot dates and times.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Time-of-day buckets.
const (
	Morning   = "morning"
	Afternoon = "afternoon"
	Evening   = "evening"
)

// TimeOfDay buckets an hour into morning [06:00,12:00), afternoon
// [12:00,17:00) or evening.
func TimeOfDay(hour int) string {
	switch {
	case hour >= 6 && hour < 12:
		return Morning
	case hour >= 12 && hour < 17:
		return Afternoon
	default:
		return Evening
	}
}

// TimeOfDayFor buckets a "HH:MM" time string. Unparseable input maps to an
// empty string.
func TimeOfDayFor(timeStr string) string {
	t, err := time.Parse(TimeLayout, timeStr)
	if err != nil {
		return ""
	}
	return TimeOfDay(t.Hour())
}

// WeekdayName returns the full weekday name for a "YYYY-MM-DD" date, or an
// empty string when the date does not parse.
func WeekdayName(dateStr string) string {
	d, err := time.Parse(DateLayout, dateStr)
	if err != nil {
		return ""
	}
	return d.Weekday().String()
}

// FormatTimeForDisplay converts a 24-hour "HH:MM" time into a 12-hour
// display form, e.g. "14:00" -> "2 PM" and "14:30" -> "2:30 PM".
func FormatTimeForDisplay(timeStr string) string {
	t, err := time.Parse(TimeLayout, timeStr)
	if err != nil {
		return timeStr
	}
	hour, minute := t.Hour(), t.Minute()

	suffix := "AM"
	display := hour
	switch {
	case hour == 0:
		display = 12
	case hour == 12:
		suffix = "PM"
	case hour > 12:
		display = hour - 12
		suffix = "PM"
	}

	if minute == 0 {
		return fmt.Sprintf("%d %s", display, suffix)
	}
	return fmt.Sprintf("%d:%02d %s", display, minute, suffix)
}

// DateLabel renders a date for natural speech, marking today and tomorrow,
// e.g. `today (Tuesday, January 27)` or `Friday, January 30`.
func DateLabel(dateStr string, now time.Time) string {
	d, err := time.Parse(DateLayout, dateStr)
	if err != nil {
		return dateStr
	}
	formatted := d.Format("Monday, January 2")

	today := now.Format(DateLayout)
	tomorrow := now.AddDate(0, 0, 1).Format(DateLayout)
	switch dateStr {
	case today:
		return fmt.Sprintf("today (%s)", formatted)
	case tomorrow:
		return fmt.Sprintf("tomorrow (%s)", formatted)
	default:
		return formatted
	}
}
