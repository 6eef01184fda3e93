// Package schedule owns the doctor roster and slot inventory: listing open
// slots, resolving free-form doctor mentions against the roster, and the
// atomic flip that prevents two sessions from booking the same slot.
package schedule

import "errors"

// Slot is one bookable unit of a doctor's calendar.
type Slot struct {
	Doctor    string `json:"doctor"`
	Date      string `json:"date"` // YYYY-MM-DD
	Time      string `json:"time"` // HH:MM, 24-hour
	Available bool   `json:"available"`
}

var (
	// ErrDoctorUnknown means no roster entry cleared the match threshold.
	ErrDoctorUnknown = errors.New("schedule: no matching doctor")

	// ErrOutOfRange means the slot ordinal fell outside the listed range.
	ErrOutOfRange = errors.New("schedule: slot choice out of range")

	// ErrSlotTaken means the slot was booked by another session between
	// listing and selection. Callers recover by re-listing current
	// availability.
	ErrSlotTaken = errors.New("schedule: slot no longer available")

	// ErrChoiceUnrecognized means the input named neither an ordinal nor a
	// literal date and time, so no slot was attempted.
	ErrChoiceUnrecognized = errors.New("schedule: slot choice not understood")
)
