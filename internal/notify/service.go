package notify

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/harborview-health/scheduler-agent/internal/booking"
	"github.com/harborview-health/scheduler-agent/pkg/logging"
)

// Reminder kinds, sent in order as the appointment approaches.
const (
	ReminderConfirmation = "confirmation" // 3 days out, repeats the details
	ReminderFormCheck    = "form_check"   // 1 day out, asks about the intake form
	ReminderFinal        = "final"        // 2 hours out
)

// Reminder is one scheduled outbound email.
type Reminder struct {
	ID          string
	Kind        string
	DueAt       time.Time
	Appointment booking.Appointment
}

// Service implements the engine's notification hand-off: an immediate intake
// form email plus three scheduled reminders per booking.
type Service struct {
	email  EmailSender
	logger *logging.Logger
	now    func() time.Time

	mu      sync.Mutex
	pending []Reminder
}

// NewService creates the notification service.
func NewService(email EmailSender, logger *logging.Logger) *Service {
	if email == nil {
		email = NewLogSender(logger)
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		email:  email,
		logger: logger.Component("notify"),
		now:    time.Now,
	}
}

// AppointmentConfirmed sends the intake form and queues the reminder
// cadence. Called fire-and-forget by the booking manager.
func (s *Service) AppointmentConfirmed(ctx context.Context, appt booking.Appointment) error {
	if err := s.email.Send(ctx, intakeFormEmail(appt)); err != nil {
		return fmt.Errorf("notify: intake form: %w", err)
	}

	apptAt, err := appointmentTime(appt)
	if err != nil {
		return fmt.Errorf("notify: schedule reminders: %w", err)
	}

	reminders := []Reminder{
		{Kind: ReminderConfirmation, DueAt: apptAt.Add(-72 * time.Hour)},
		{Kind: ReminderFormCheck, DueAt: apptAt.Add(-24 * time.Hour)},
		{Kind: ReminderFinal, DueAt: apptAt.Add(-2 * time.Hour)},
	}

	s.mu.Lock()
	for _, r := range reminders {
		if r.DueAt.Before(s.now()) {
			continue // appointment is closer than the reminder window
		}
		r.ID = uuid.NewString()
		r.Appointment = appt
		s.pending = append(s.pending, r)
	}
	sort.Slice(s.pending, func(i, j int) bool { return s.pending[i].DueAt.Before(s.pending[j].DueAt) })
	queued := len(s.pending)
	s.mu.Unlock()

	s.logger.Info("reminders scheduled",
		"appointment_id", appt.ID, "pending_total", queued)
	return nil
}

// Run processes due reminders until ctx is cancelled.
func (s *Service) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n, err := s.ProcessDue(ctx); err != nil {
				s.logger.Error("reminder pass failed", "error", err)
			} else if n > 0 {
				s.logger.Info("reminders sent", "count", n)
			}
		}
	}
}

// ProcessDue sends every reminder whose due time has passed. Returns the
// number sent; a send failure leaves the reminder queued for the next pass.
func (s *Service) ProcessDue(ctx context.Context) (int, error) {
	now := s.now()

	s.mu.Lock()
	var due, rest []Reminder
	for _, r := range s.pending {
		if r.DueAt.After(now) {
			rest = append(rest, r)
		} else {
			due = append(due, r)
		}
	}
	s.pending = rest
	s.mu.Unlock()

	sent := 0
	for _, r := range due {
		if err := s.email.Send(ctx, reminderEmail(r)); err != nil {
			s.logger.Error("reminder send failed", "reminder_id", r.ID, "error", err)
			s.mu.Lock()
			s.pending = append(s.pending, r)
			s.mu.Unlock()
			continue
		}
		sent++
	}
	return sent, nil
}

// PendingCount reports queued reminders, for tests and admin stats.
func (s *Service) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

func appointmentTime(appt booking.Appointment) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", appt.Date+" "+appt.Time, time.Local)
}

func intakeFormEmail(appt booking.Appointment) EmailMessage {
	body := fmt.Sprintf(`Hi %s,

Your %d-minute appointment with %s on %s at %s is confirmed.

Please complete the attached patient intake form before your visit and
arrive 15 minutes early for check-in. If you need to reschedule, contact
us at least 24 hours in advance.

Thank you,
Harborview Scheduling`,
		appt.PatientName, appt.DurationMinutes, appt.Doctor, appt.Date, appt.Time)

	return EmailMessage{
		To:      appt.Email,
		ToName:  appt.PatientName,
		Subject: fmt.Sprintf("Appointment confirmed: %s at %s", appt.Date, appt.Time),
		Body:    body,
	}
}

func reminderEmail(r Reminder) EmailMessage {
	appt := r.Appointment

	var subject, lead string
	switch r.Kind {
	case ReminderConfirmation:
		subject = "Upcoming appointment reminder"
		lead = "This is a reminder about your upcoming appointment."
	case ReminderFormCheck:
		subject = "Your appointment is tomorrow"
		lead = "Your appointment is tomorrow. Have you completed your intake form?"
	default:
		subject = "Your appointment is in 2 hours"
		lead = "Your appointment is coming up in about 2 hours."
	}

	body := fmt.Sprintf(`Hi %s,

%s

Doctor: %s
Date: %s
Time: %s
Duration: %d minutes

If you need to cancel or reschedule, please reply to this email.`,
		appt.PatientName, lead, appt.Doctor, appt.Date, appt.Time, appt.DurationMinutes)

	return EmailMessage{
		To:      appt.Email,
		ToName:  appt.PatientName,
		Subject: subject,
		Body:    body,
	}
}
