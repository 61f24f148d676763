package models

// Preferences is a derived, non-authoritative summary of booking behavior.
// It only ever accumulates signal: cancelling an appointment does not remove
// anything from it.
type Preferences struct {
	PreferredTimeOfDay  string   `bson:"preferred_time_of_day,omitempty" json:"preferred_time_of_day,omitempty"`
	PreferredDays       []string `bson:"preferred_days,omitempty" json:"preferred_days,omitempty"`
	LastAppointmentDate string   `bson:"last_appointment_date,omitempty" json:"last_appointment_date,omitempty"`
	LastAppointmentTime string   `bson:"last_appointment_time,omitempty" json:"last_appointment_time,omitempty"`
}

// Empty reports whether no preference signal has been collected yet.
func (p Preferences) Empty() bool {
	return p.PreferredTimeOfDay == "" && len(p.PreferredDays) == 0 && p.LastAppointmentDate == ""
}
