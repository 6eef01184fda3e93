package booking

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/harborview-health/scheduler-agent/pkg/logging"
)

var bookingTracer = otel.Tracer("scheduler.internal.booking")

// Notifier is invoked fire-and-forget once a booking commits. Failures are
// logged and never roll back the booking.
type Notifier interface {
	AppointmentConfirmed(ctx context.Context, appt Appointment) error
}

// Manager commits finalized appointments and hands off to notification
// collaborators.
type Manager struct {
	sink     Sink
	notifier Notifier
	logger   *logging.Logger
}

// NewManager builds a confirmation manager. notifier may be nil.
func NewManager(sink Sink, notifier Notifier, logger *logging.Logger) *Manager {
	if sink == nil {
		panic("booking: sink required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Manager{sink: sink, notifier: notifier, logger: logger.Component("booking")}
}

// Confirm persists the appointment and triggers notifications. A sink error
// is returned to the caller as a retryable condition; notification errors
// are swallowed after logging.
func (m *Manager) Confirm(ctx context.Context, appt Appointment) error {
	ctx, span := bookingTracer.Start(ctx, "booking.confirm")
	defer span.End()
	span.SetAttributes(
		attribute.String("scheduler.doctor", appt.Doctor),
		attribute.String("scheduler.date", appt.Date),
	)

	if err := m.sink.Save(ctx, appt); err != nil {
		span.RecordError(err)
		return fmt.Errorf("booking: confirm: %w", err)
	}

	m.logger.Info("appointment confirmed",
		"appointment_id", appt.ID,
		"doctor", appt.Doctor,
		"date", appt.Date,
		"time", appt.Time,
		"duration_minutes", appt.DurationMinutes,
	)

	if m.notifier != nil {
		go func(appt Appointment) {
			notifyCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := m.notifier.AppointmentConfirmed(notifyCtx, appt); err != nil {
				m.logger.Error("appointment notification failed",
					"appointment_id", appt.ID, "error", err)
			}
		}(appt)
	}

	return nil
}
