package booking

import (
	"context"
	"sync"
)

// Sink receives the finalized appointment exactly once per completed
// conversation.
type Sink interface {
	Save(ctx context.Context, appt Appointment) error
}

// MemorySink collects appointments in memory for development, tests, and the
// xlsx exporter.
type MemorySink struct {
	mu    sync.Mutex
	appts []Appointment
}

// NewMemorySink creates an empty in-memory sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// Save appends the appointment.
func (s *MemorySink) Save(_ context.Context, appt Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appts = append(s.appts, appt)
	return nil
}

// List returns a copy of all saved appointments in arrival order.
func (s *MemorySink) List() []Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Appointment, len(s.appts))
	copy(out, s.appts)
	return out
}
