package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/careerredefine/admissions-service/internal/events"
	"github.com/careerredefine/admissions-service/internal/observability"
)

// ActivityWorker writes an audit trail of lifecycle events.
type ActivityWorker struct {
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewActivityWorker creates the worker.
func NewActivityWorker(logger *zap.Logger, metrics *observability.Metrics) *ActivityWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActivityWorker{logger: logger.Named("activity"), metrics: metrics}
}

// Start subscribes the worker to every lifecycle event.
func (w *ActivityWorker) Start(dispatcher events.Dispatcher) {
	if dispatcher == nil {
		return
	}
	events.SubscribeAll(dispatcher, w.handle)
}

func (w *ActivityWorker) handle(_ context.Context, event events.Event) error {
	w.metrics.RecordEvent(string(event.Type))

	fields := []zap.Field{
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
		zap.String("registration_id", event.RegistrationID),
		zap.Time("at", event.Timestamp),
	}
	if event.Actor.StaffID != "" {
		fields = append(fields, zap.String("staff_id", event.Actor.StaffID), zap.String("staff_email", event.Actor.Email))
	}

	switch payload := event.Payload.(type) {
	case events.RegistrationSubmittedPayload:
		fields = append(fields, zap.String("education", payload.Education))
	case events.StatusChangedPayload:
		fields = append(fields,
			zap.String("old_status", string(payload.OldStatus)),
			zap.String("new_status", string(payload.NewStatus)))
	case events.InterviewScheduledPayload:
		fields = append(fields,
			zap.String("old_status", string(payload.OldStatus)),
			zap.Time("interview_date", payload.InterviewDate),
			zap.String("notification", payload.NotificationResult))
	case events.NotesUpdatedPayload:
		fields = append(fields, zap.Int("notes_length", payload.Length))
	case events.ReminderSentPayload:
		fields = append(fields, zap.String("notification", payload.NotificationResult))
	}

	w.logger.Info("registration activity", fields...)
	return nil
}
