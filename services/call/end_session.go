package call

import (
	"context"

	"voicebook/models"
	"voicebook/services/booking"
	"voicebook/services/cost"
	"voicebook/services/events"
	"voicebook/services/session"
	"voicebook/services/summary"

	"go.uber.org/zap"
)

// endSession finalizes the conversation: it freezes the session, computes
// duration and cost, renders the report, persists the call record and emits
// the single summary event before the terminal operation event.
func (d *Dispatcher) endSession(ctx context.Context, sess *session.State, emitter *events.Emitter, op End) (map[string]interface{}, error) {
	if !sess.MarkEnded() {
		return nil, booking.NewNotFoundError("session has ended")
	}

	now := d.now()
	duration := int(now.Sub(sess.StartedAt()).Seconds())
	contact := sess.Contact()

	var appts []models.Appointment
	if contact != "" {
		listed, err := d.Booking.ListActive(ctx, contact)
		if err != nil {
			// The report still goes out with what the session knows; the
			// store being down must not swallow the end-of-call summary.
			d.logger().Warn("could not list appointments for summary", zap.Error(err))
		} else {
			appts = listed
		}
	}

	breakdown := cost.Calculate(sess.Usage(), d.Pricing, duration)
	text := summary.Render(summary.Input{
		ContactNumber:   contact,
		KnownUser:       sess.KnownUser(),
		DurationSeconds: duration,
		Invocations:     sess.Invocations(),
		Appointments:    appts,
		Preferences:     sess.Preferences(),
		Now:             now,
	})

	record := models.CallRecord{
		SessionID:       sess.ID(),
		ContactNumber:   contact,
		TranscriptRef:   op.TranscriptRef,
		Summary:         text,
		OperationLog:    sess.Invocations(),
		DurationSeconds: duration,
		CostBreakdown:   breakdown,
		Preferences:     sess.Preferences(),
	}
	if _, err := d.Records.Create(ctx, record); err != nil {
		d.logger().Error("failed to persist call record",
			zap.String("sessionId", sess.ID()), zap.Error(err))
	}

	if err := emitter.Summary(ctx, models.SummaryEvent{
		Summary:         text,
		Appointments:    appts,
		Preferences:     sess.Preferences(),
		CostBreakdown:   breakdown,
		DurationSeconds: duration,
	}); err != nil {
		d.logger().Warn("summary event not delivered",
			zap.String("sessionId", sess.ID()), zap.Error(err))
	}

	return map[string]interface{}{
		"summary":          text,
		"duration_seconds": duration,
		"cost_breakdown":   breakdown,
	}, nil
}
