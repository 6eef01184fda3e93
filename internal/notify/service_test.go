package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborview-health/scheduler-agent/internal/booking"
)

type recordingSender struct {
	mu   sync.Mutex
	sent []EmailMessage
	err  error
}

func (r *recordingSender) Send(_ context.Context, msg EmailMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, msg)
	return nil
}

func (r *recordingSender) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sent)
}

func futureAppointment(in time.Duration) booking.Appointment {
	at := time.Now().Add(in)
	return booking.Appointment{
		PatientName:     "Sarah Johnson",
		Email:           "sarah@example.com",
		Doctor:          "Dr. Michael Chen",
		Date:            at.Format("2006-01-02"),
		Time:            at.Format("15:04"),
		DurationMinutes: 60,
	}
}

func TestAppointmentConfirmed_SendsIntakeFormAndQueuesReminders(t *testing.T) {
	sender := &recordingSender{}
	s := NewService(sender, nil)

	appt := futureAppointment(7 * 24 * time.Hour)
	require.NoError(t, s.AppointmentConfirmed(context.Background(), appt))

	require.Equal(t, 1, sender.count(), "intake form goes out immediately")
	assert.Contains(t, sender.sent[0].Body, "intake form")
	assert.Equal(t, "sarah@example.com", sender.sent[0].To)
	assert.Equal(t, 3, s.PendingCount())
}

func TestAppointmentConfirmed_SkipsPastReminderWindows(t *testing.T) {
	s := NewService(&recordingSender{}, nil)

	// Appointment in 3 hours: only the 2-hour reminder still fits.
	appt := futureAppointment(3 * time.Hour)
	require.NoError(t, s.AppointmentConfirmed(context.Background(), appt))
	assert.Equal(t, 1, s.PendingCount())
}

func TestProcessDue(t *testing.T) {
	sender := &recordingSender{}
	s := NewService(sender, nil)

	appt := futureAppointment(7 * 24 * time.Hour)
	require.NoError(t, s.AppointmentConfirmed(context.Background(), appt))

	// Nothing is due yet.
	n, err := s.ProcessDue(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)

	// Jump the clock past the first two reminder windows.
	s.now = func() time.Time { return time.Now().Add(6*24*time.Hour + 1*time.Hour) }
	n, err = s.ProcessDue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 1, s.PendingCount())
}

func TestProcessDue_FailedSendStaysQueued(t *testing.T) {
	sender := &recordingSender{}
	s := NewService(sender, nil)

	appt := futureAppointment(7 * 24 * time.Hour)
	require.NoError(t, s.AppointmentConfirmed(context.Background(), appt))

	s.now = func() time.Time { return time.Now().Add(8 * 24 * time.Hour) }
	sender.mu.Lock()
	sender.err = errors.New("smtp down")
	sender.mu.Unlock()

	n, err := s.ProcessDue(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, 3, s.PendingCount(), "failed reminders requeue")
}

func TestAppointmentConfirmed_IntakeFormFailure(t *testing.T) {
	s := NewService(&recordingSender{err: errors.New("smtp down")}, nil)
	err := s.AppointmentConfirmed(context.Background(), futureAppointment(24*time.Hour))
	assert.Error(t, err)
}
