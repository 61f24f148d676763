package call

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	recordsRepo "voicebook/database/repository/records"
	userRepo "voicebook/database/repository/user"
	"voicebook/models"
	"voicebook/services/booking"
	"voicebook/services/cost"
	"voicebook/services/events"
	"voicebook/services/session"
	"voicebook/utils"

	"go.uber.org/zap"
)

// Dispatcher routes operations to their implementations and owns the
// lifecycle plumbing around each one: event emission, invocation logging and
// the single-in-flight-operation guarantee per session.
type Dispatcher struct {
	Sessions      *session.Registry
	Booking       booking.Coordinator
	Users         userRepo.Repository
	Records       recordsRepo.Repository
	Publisher     events.Publisher
	ChannelPrefix string
	Pricing       cost.PricingTable
	Logger        *zap.Logger
	Now           func() time.Time
}

// Dispatch executes one operation against a session. The started event is
// emitted before any side effect; exactly one terminal event follows,
// success or error.
func (d *Dispatcher) Dispatch(ctx context.Context, sessionID string, op Operation) (map[string]interface{}, error) {
	sess, err := d.Sessions.Get(sessionID)
	if err != nil {
		return nil, booking.NewNotFoundError("session not found")
	}

	sess.BeginOperation()
	defer sess.EndOperation()

	if sess.Ended() {
		return nil, booking.NewNotFoundError("session has ended")
	}

	emitter := events.NewEmitter(d.Publisher, d.channelFor(sessionID)).WithClock(d.now)

	if err := emitter.Operation(ctx, op.Name(), models.EventStarted, op.args()); err != nil {
		d.logger().Warn("started event not delivered",
			zap.String("operation", op.Name()), zap.Error(err))
	}

	data, err := d.execute(ctx, sess, emitter, op)
	at := d.now().UTC()
	if err != nil {
		if booking.CodeOf(err) == "" {
			err = booking.NewStorageError(err)
		}
		var be *booking.Error
		errors.As(err, &be)
		sess.LogInvocation(op.Name(), op.args(), be.Code, at)
		// The error payload carries only the coded message, never internal
		// fault detail.
		_ = emitter.Operation(ctx, op.Name(), models.EventError, map[string]interface{}{
			"error": be.Message,
			"code":  be.Code,
		})
		return nil, err
	}

	sess.LogInvocation(op.Name(), op.args(), "success", at)
	_ = emitter.Operation(ctx, op.Name(), models.EventSuccess, data)

	if op.Name() == OpEnd {
		d.Sessions.Destroy(sessionID)
	}
	return data, nil
}

func (d *Dispatcher) execute(ctx context.Context, sess *session.State, emitter *events.Emitter, op Operation) (map[string]interface{}, error) {
	switch v := op.(type) {
	case Identify:
		return d.identify(ctx, sess, v)
	case FetchSlots:
		return d.fetchSlots(ctx, v)
	case Book:
		return d.book(ctx, sess, v)
	case Cancel:
		return d.cancel(ctx, sess, v)
	case Modify:
		return d.modify(ctx, sess, v)
	case Retrieve:
		return d.retrieve(ctx, sess)
	case End:
		return d.endSession(ctx, sess, emitter, v)
	default:
		return nil, booking.NewNotFoundError(fmt.Sprintf("unknown operation %q", op.Name()))
	}
}

func (d *Dispatcher) identify(ctx context.Context, sess *session.State, op Identify) (map[string]interface{}, error) {
	clean := cleanContactNumber(op.ContactNumber)
	if clean == "" {
		return nil, booking.NewNotFoundError("contact number must not be empty")
	}

	user, existed, err := d.Users.FindOrCreate(ctx, clean)
	if err != nil {
		return nil, booking.NewStorageError(err)
	}

	if err := sess.Identify(clean, existed); err != nil {
		return nil, booking.NewAlreadyIdentifiedError()
	}

	action := "created"
	if existed {
		action = "found"
	}
	return map[string]interface{}{"user": user, "action": action}, nil
}

func (d *Dispatcher) fetchSlots(ctx context.Context, op FetchSlots) (map[string]interface{}, error) {
	now := d.now()
	fromDate := op.Date
	if fromDate == "" {
		fromDate = now.Format(utils.DateLayout)
	}

	slots, err := d.Booking.AvailableSlots(ctx, fromDate, now)
	if err != nil {
		return nil, err
	}

	if op.Date != "" {
		// A specific date returns every free slot that day, bucketed so the
		// caller can filter by time of day.
		filtered := slots[:0]
		for _, s := range slots {
			if s.Date == op.Date {
				filtered = append(filtered, s)
			}
		}
		slots = filtered
	} else if len(slots) > 3 {
		// Quick-booking path: the 3 nearest future slots.
		slots = slots[:3]
	}

	views := make([]models.SlotView, 0, len(slots))
	for _, s := range slots {
		view := models.SlotView{
			Date:        s.Date,
			Time:        s.Time,
			TimeDisplay: utils.FormatTimeForDisplay(s.Time),
			DateLabel:   utils.DateLabel(s.Date, now),
		}
		if op.Date != "" {
			view.TimeOfDay = utils.TimeOfDayFor(s.Time)
		}
		views = append(views, view)
	}

	return map[string]interface{}{
		"available_slots": views,
		"count":           len(views),
	}, nil
}

func (d *Dispatcher) book(ctx context.Context, sess *session.State, op Book) (map[string]interface{}, error) {
	appt, err := d.Booking.Book(ctx, sess.Contact(), op.Date, op.Time, op.Notes)
	if err != nil {
		return nil, err
	}
	sess.ApplyBooking(appt.Date, appt.Time)
	return map[string]interface{}{"appointment": appt}, nil
}

func (d *Dispatcher) cancel(ctx context.Context, sess *session.State, op Cancel) (map[string]interface{}, error) {
	appt, err := d.Booking.Cancel(ctx, sess.Contact(), op.AppointmentID)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"appointment": appt}, nil
}

func (d *Dispatcher) modify(ctx context.Context, sess *session.State, op Modify) (map[string]interface{}, error) {
	appt, err := d.Booking.Modify(ctx, sess.Contact(), op.AppointmentID, op.NewDate, op.NewTime)
	if err != nil {
		return nil, err
	}
	sess.ApplyBooking(appt.Date, appt.Time)
	return map[string]interface{}{"appointment": appt}, nil
}

func (d *Dispatcher) retrieve(ctx context.Context, sess *session.State) (map[string]interface{}, error) {
	appts, err := d.Booking.ListActive(ctx, sess.Contact())
	if err != nil {
		return nil, err
	}
	if appts == nil {
		appts = []models.Appointment{}
	}
	return map[string]interface{}{"appointments": appts, "count": len(appts)}, nil
}

func (d *Dispatcher) channelFor(sessionID string) string {
	prefix := d.ChannelPrefix
	if prefix == "" {
		prefix = "voicebook:events"
	}
	return prefix + ":" + sessionID
}

func (d *Dispatcher) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

func (d *Dispatcher) logger() *zap.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return utils.GetLogger()
}

// cleanContactNumber strips spacing and punctuation from a raw phone number.
func cleanContactNumber(raw string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')':
			return -1
		}
		return r
	}, strings.TrimSpace(raw))
}
