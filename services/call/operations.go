// Package call dispatches the fixed set of conversation operations through a
// single entry point. The external decision-maker issues one operation at a
// time per session and awaits its result.
package call

// Operation names, as they appear in events and the operation log.
const (
	OpIdentify = "identify_user"
	OpSlots    = "fetch_slots"
	OpBook     = "book_appointment"
	OpCancel   = "cancel_appointment"
	OpModify   = "modify_appointment"
	OpRetrieve = "retrieve_appointments"
	OpEnd      = "end_conversation"
)

// Operation is one of the fixed request variants below. There is no dynamic
// registration; the dispatcher switches over the concrete types.
type Operation interface {
	Name() string
	args() map[string]interface{}
}

// Identify resolves a contact number to an identity and binds it to the
// session.
type Identify struct {
	ContactNumber string
}

func (Identify) Name() string { return OpIdentify }
func (op Identify) args() map[string]interface{} {
	return map[string]interface{}{"contact_number": op.ContactNumber}
}

// FetchSlots lists available slots: all free slots on Date when set,
// otherwise the 3 nearest future slots.
type FetchSlots struct {
	Date string
}

func (FetchSlots) Name() string { return OpSlots }
func (op FetchSlots) args() map[string]interface{} {
	if op.Date == "" {
		return map[string]interface{}{"specific_date": "nearest_3"}
	}
	return map[string]interface{}{"specific_date": op.Date}
}

// Book creates an appointment at (Date, Time).
type Book struct {
	Date  string
	Time  string
	Notes string
}

func (Book) Name() string { return OpBook }
func (op Book) args() map[string]interface{} {
	return map[string]interface{}{"date": op.Date, "time": op.Time}
}

// Cancel cancels an appointment owned by the session's identity.
type Cancel struct {
	AppointmentID string
}

func (Cancel) Name() string { return OpCancel }
func (op Cancel) args() map[string]interface{} {
	return map[string]interface{}{"appointment_id": op.AppointmentID}
}

// Modify reschedules an appointment to a new slot.
type Modify struct {
	AppointmentID string
	NewDate       string
	NewTime       string
}

func (Modify) Name() string { return OpModify }
func (op Modify) args() map[string]interface{} {
	return map[string]interface{}{
		"appointment_id": op.AppointmentID,
		"new_date":       op.NewDate,
		"new_time":       op.NewTime,
	}
}

// Retrieve lists the identity's scheduled appointments.
type Retrieve struct{}

func (Retrieve) Name() string                 { return OpRetrieve }
func (Retrieve) args() map[string]interface{} { return map[string]interface{}{} }

// End terminates the session: summary, cost, persisted record, summary event.
type End struct {
	TranscriptRef string
}

func (End) Name() string                 { return OpEnd }
func (End) args() map[string]interface{} { return map[string]interface{}{} }
