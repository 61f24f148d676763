// Package preference derives a rolling booking-preference summary. Pure
// computation, no storage: every successful booking or reschedule folds its
// date and time into the previous summary.
package preference

import (
	"voicebook/models"
	"voicebook/utils"
)

const maxPreferredDays = 3

// Update folds a booked (date, time) into the previous preferences. The most
// recent booking's time-of-day bucket wins outright, and the weekday list
// keeps the 3 most recent distinct weekdays, most recent first. Signal is
// never removed, cancellations included.
func Update(prev models.Preferences, date, timeStr string) models.Preferences {
	next := prev

	if bucket := utils.TimeOfDayFor(timeStr); bucket != "" {
		next.PreferredTimeOfDay = bucket
	}

	if day := utils.WeekdayName(date); day != "" {
		next.PreferredDays = promoteDay(prev.PreferredDays, day)
	}

	next.LastAppointmentDate = date
	next.LastAppointmentTime = timeStr
	return next
}

// promoteDay moves day to the front of the list, de-duplicated, capped at
// maxPreferredDays entries.
func promoteDay(days []string, day string) []string {
	out := make([]string, 0, maxPreferredDays)
	out = append(out, day)
	for _, d := range days {
		if d == day {
			continue
		}
		out = append(out, d)
		if len(out) == maxPreferredDays {
			break
		}
	}
	return out
}
