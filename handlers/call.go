package handlers

import (
	"errors"
	"net/http"

	"voicebook/services/booking"
	"voicebook/services/call"
	"voicebook/utils"

	"github.com/gin-gonic/gin"
)

// IdentifyHandler looks up or creates the caller by contact number and binds
// the identity to the session.
func (hb *HandlerBundle) IdentifyHandler(c *gin.Context) {
	var input struct {
		ContactNumber string `json:"contact_number" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	hb.dispatch(c, call.Identify{ContactNumber: input.ContactNumber})
}

// FetchSlotsHandler returns available slots, optionally narrowed to one date.
func (hb *HandlerBundle) FetchSlotsHandler(c *gin.Context) {
	hb.dispatch(c, call.FetchSlots{Date: c.Query("date")})
}

// BookHandler books the slot at (date, time) for the identified caller.
func (hb *HandlerBundle) BookHandler(c *gin.Context) {
	var input struct {
		Date  string `json:"date" binding:"required"`
		Time  string `json:"time" binding:"required"`
		Notes string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	hb.dispatch(c, call.Book{Date: input.Date, Time: input.Time, Notes: input.Notes})
}

// CancelHandler cancels one of the caller's scheduled appointments.
func (hb *HandlerBundle) CancelHandler(c *gin.Context) {
	apptID := c.Param("appointmentID")
	if apptID == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "appointmentID is required")
		return
	}
	hb.dispatch(c, call.Cancel{AppointmentID: apptID})
}

// ModifyHandler moves an appointment to a new slot.
func (hb *HandlerBundle) ModifyHandler(c *gin.Context) {
	apptID := c.Param("appointmentID")
	var input struct {
		NewDate string `json:"new_date" binding:"required"`
		NewTime string `json:"new_time" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	hb.dispatch(c, call.Modify{AppointmentID: apptID, NewDate: input.NewDate, NewTime: input.NewTime})
}

// RetrieveHandler lists the caller's scheduled appointments.
func (hb *HandlerBundle) RetrieveHandler(c *gin.Context) {
	hb.dispatch(c, call.Retrieve{})
}

// EndSessionHandler finalizes the call: freezes the session, computes cost,
// emits the summary event and persists the call record.
func (hb *HandlerBundle) EndSessionHandler(c *gin.Context) {
	var input struct {
		TranscriptRef string `json:"transcript_ref"`
	}
	// Body is optional on end.
	_ = c.ShouldBindJSON(&input)
	hb.dispatch(c, call.End{TranscriptRef: input.TranscriptRef})
}

// dispatch runs one operation through the dispatcher and writes the result,
// mapping coded errors onto HTTP statuses.
func (hb *HandlerBundle) dispatch(c *gin.Context, op call.Operation) {
	sessionID := c.GetString("sessionID")

	data, err := hb.Dispatcher.Dispatch(c.Request.Context(), sessionID, op)
	if err != nil {
		status, message := httpStatusFor(err)
		utils.JSONError(c, status, message, "")
		return
	}
	c.JSON(http.StatusOK, data)
}

func httpStatusFor(err error) (int, string) {
	var be *booking.Error
	if !errors.As(err, &be) {
		return http.StatusInternalServerError, "internal error"
	}
	switch be.Code {
	case booking.CodeNotFound:
		return http.StatusNotFound, be.Message
	case booking.CodeConflict:
		return http.StatusConflict, be.Message
	case booking.CodeForbidden:
		return http.StatusForbidden, be.Message
	case booking.CodeIdentityRequired:
		return http.StatusPreconditionFailed, be.Message
	case booking.CodeAlreadyIdentified:
		return http.StatusConflict, be.Message
	case booking.CodeStorageUnavailable:
		return http.StatusServiceUnavailable, be.Message
	default:
		return http.StatusInternalServerError, be.Message
	}
}
