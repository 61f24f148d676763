package events

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"voicebook/models"
	"voicebook/utils"
)

// Emitter publishes a session's lifecycle events to its channel. Events
// follow the fixed envelope {type, ..., timestamp}; per operation the order
// is exactly started then one terminal status.
type Emitter struct {
	pub     Publisher
	channel string
	logger  *zap.Logger
	now     func() time.Time
}

// NewEmitter binds a publisher to a session channel.
func NewEmitter(pub Publisher, channel string) *Emitter {
	return &Emitter{
		pub:     pub,
		channel: channel,
		logger:  utils.GetLogger(),
		now:     time.Now,
	}
}

// WithClock overrides the timestamp source. Test hook.
func (e *Emitter) WithClock(now func() time.Time) *Emitter {
	e.now = now
	return e
}

// Operation emits one lifecycle event for an operation.
func (e *Emitter) Operation(ctx context.Context, name, status string, data map[string]interface{}) error {
	if data == nil {
		data = map[string]interface{}{}
	}
	event := models.OperationEvent{
		Type:      models.EventTypeOperation,
		Name:      name,
		Status:    status,
		Data:      data,
		Timestamp: e.timestamp(),
	}
	return e.publish(ctx, event)
}

// Summary emits the end-of-session summary event. Called exactly once per
// session, after all booking data and cost figures are finalized.
func (e *Emitter) Summary(ctx context.Context, ev models.SummaryEvent) error {
	ev.Type = models.EventTypeSummary
	ev.Timestamp = e.timestamp()
	if ev.Appointments == nil {
		ev.Appointments = []models.Appointment{}
	}
	return e.publish(ctx, ev)
}

func (e *Emitter) publish(ctx context.Context, event interface{}) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if err := e.pub.Publish(ctx, e.channel, payload); err != nil {
		// Best-effort channel: log and report, never crash the session.
		e.logger.Error("failed to publish event",
			zap.String("channel", e.channel), zap.Error(err))
		return err
	}
	return nil
}

func (e *Emitter) timestamp() string {
	return e.now().UTC().Format(time.RFC3339)
}
