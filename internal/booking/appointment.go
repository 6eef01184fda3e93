// Package booking finalizes appointments: computing duration, persisting the
// denormalized booking through a sink, and handing off to notification
// collaborators once a conversation completes.
package booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/harborview-health/scheduler-agent/internal/insurance"
	"github.com/harborview-health/scheduler-agent/internal/patients"
)

// Appointment durations in minutes, fixed by patient classification at
// slot-selection time.
const (
	DurationNewMinutes       = 60
	DurationReturningMinutes = 30
)

// DurationFor returns the appointment length for a patient classification.
func DurationFor(c patients.Classification) int {
	if c == patients.ClassificationNew {
		return DurationNewMinutes
	}
	return DurationReturningMinutes
}

// Appointment is the full denormalized booking written on completion.
type Appointment struct {
	ID              uuid.UUID               `json:"id"`
	PatientID       int64                   `json:"patient_id"`
	PatientName     string                  `json:"patient_name"`
	DateOfBirth     string                  `json:"date_of_birth"`
	Phone           string                  `json:"phone"`
	Email           string                  `json:"email"`
	Doctor          string                  `json:"doctor"`
	Date            string                  `json:"date"`
	Time            string                  `json:"time"`
	DurationMinutes int                     `json:"duration_minutes"`
	PatientType     patients.Classification `json:"patient_type"`
	Insurance       insurance.Info          `json:"insurance"`
	Status          string                  `json:"status"`
	CreatedAt       time.Time               `json:"created_at"`
}
