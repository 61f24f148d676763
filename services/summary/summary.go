// Package summary renders the deterministic end-of-call report from the
// accumulated session state and booking results.
package summary

import (
	"fmt"
	"strings"
	"time"

	"voicebook/models"
	"voicebook/utils"
)

// Input carries everything the renderer needs; it never reaches out to
// storage itself.
type Input struct {
	ContactNumber   string
	KnownUser       bool // identity existed before this session
	DurationSeconds int
	Invocations     []models.ToolInvocation
	Appointments    []models.Appointment // currently scheduled
	Preferences     models.Preferences
	Now             time.Time
}

// Operations that change booking state, in report order.
var bookingOps = []struct {
	name     string
	singular string
	plural   string
}{
	{"book_appointment", "booked 1 appointment", "booked %d appointments"},
	{"modify_appointment", "rescheduled 1 appointment", "rescheduled %d appointments"},
	{"cancel_appointment", "cancelled 1 appointment", "cancelled %d appointments"},
}

// Render produces the human-readable end-of-call report.
func Render(in Input) string {
	var b strings.Builder

	if in.KnownUser {
		fmt.Fprintf(&b, "Existing user %s", displayContact(in.ContactNumber))
	} else {
		fmt.Fprintf(&b, "New user %s", displayContact(in.ContactNumber))
	}
	fmt.Fprintf(&b, " — call lasted %s.\n", formatDuration(in.DurationSeconds))

	counts := make(map[string]int)
	for _, inv := range in.Invocations {
		if inv.Result == "success" {
			counts[inv.Operation]++
		}
	}

	var actions []string
	for _, op := range bookingOps {
		switch n := counts[op.name]; {
		case n == 1:
			actions = append(actions, op.singular)
		case n > 1:
			actions = append(actions, fmt.Sprintf(op.plural, n))
		}
	}
	if len(actions) == 0 {
		b.WriteString("No booking changes were made during this call.\n")
	} else {
		b.WriteString("Actions taken:\n")
		for _, a := range actions {
			fmt.Fprintf(&b, "- %s\n", a)
		}
	}

	if len(in.Appointments) > 0 {
		b.WriteString("Upcoming appointments:\n")
		for _, appt := range in.Appointments {
			fmt.Fprintf(&b, "- %s at %s\n",
				utils.DateLabel(appt.Date, in.Now),
				utils.FormatTimeForDisplay(appt.Time))
		}
	}

	if pref := preferenceStatement(in.Preferences); pref != "" {
		b.WriteString(pref)
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func preferenceStatement(p models.Preferences) string {
	if p.Empty() {
		return ""
	}
	var parts []string
	if p.PreferredTimeOfDay != "" {
		parts = append(parts, fmt.Sprintf("prefers %s appointments", p.PreferredTimeOfDay))
	}
	if len(p.PreferredDays) > 0 {
		parts = append(parts, fmt.Sprintf("usually books on %s", strings.Join(p.PreferredDays, ", ")))
	}
	if len(parts) == 0 {
		return ""
	}
	return "Preferences: " + strings.Join(parts, "; ") + "."
}

func formatDuration(seconds int) string {
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	return fmt.Sprintf("%dm %ds", seconds/60, seconds%60)
}

func displayContact(contact string) string {
	if contact == "" {
		return "(unidentified)"
	}
	return contact
}
