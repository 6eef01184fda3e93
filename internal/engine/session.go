package engine

import (
	"time"

	"github.com/harborview-health/scheduler-agent/internal/insurance"
	"github.com/harborview-health/scheduler-agent/internal/patients"
)

// historyDepth bounds how many recent turns are kept on the session for
// extractor context.
const historyDepth = 10

// AppointmentDraft accumulates the scheduling details for the session. It is
// created when a doctor is matched and completed piece by piece through the
// scheduling and insurance stages.
type AppointmentDraft struct {
	Doctor          string         `json:"doctor"`
	Date            string         `json:"date,omitempty"`
	Time            string         `json:"time,omitempty"`
	DurationMinutes int            `json:"duration_minutes"`
	Insurance       insurance.Info `json:"insurance"`
}

// Session is the per-conversation record the engine persists between turns.
type Session struct {
	ID          string            `json:"id"`
	State       State             `json:"state"`
	Patient     patients.Draft    `json:"patient"`
	Appointment *AppointmentDraft `json:"appointment,omitempty"`
	History     []string          `json:"history,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func newSession(id string, now time.Time) *Session {
	return &Session{
		ID:        id,
		State:     StateGreeting,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// appendHistory records one user/assistant exchange, trimming to the
// retention depth.
func (s *Session) appendHistory(user, assistant string) {
	s.History = append(s.History, "Patient: "+user, "Assistant: "+assistant)
	if len(s.History) > historyDepth {
		s.History = s.History[len(s.History)-historyDepth:]
	}
}

// Snapshot is a read-only view of a session for diagnostics and the API.
type Snapshot struct {
	ID          string            `json:"id"`
	State       string            `json:"state"`
	Patient     patients.Draft    `json:"patient"`
	Appointment *AppointmentDraft `json:"appointment,omitempty"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func (s *Session) snapshot() Snapshot {
	snap := Snapshot{
		ID:        s.ID,
		State:     s.State.String(),
		Patient:   s.Patient,
		UpdatedAt: s.UpdatedAt,
	}
	if s.Appointment != nil {
		draft := *s.Appointment
		snap.Appointment = &draft
	}
	return snap
}
