package seed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDefaults(t *testing.T) {
	data := Generate(Options{Seed: 7})

	assert.Len(t, data.Patients, 50)
	// 14 weekdays x 16 doctors x 16 half-hour slots.
	assert.Len(t, data.Slots, 14*len(Doctors)*16)

	booked := 0
	for _, slot := range data.Slots {
		require.NotEmpty(t, slot.Doctor)
		require.Len(t, slot.Time, 5)
		if !slot.Available {
			booked++
		}
	}
	rate := float64(booked) / float64(len(data.Slots))
	assert.InDelta(t, 0.2, rate, 0.05)
}

func TestGenerateSkipsWeekends(t *testing.T) {
	// Start on a Saturday; every generated date must be a weekday.
	start := time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)
	data := Generate(Options{Seed: 1, Days: 5, Start: start})

	for _, slot := range data.Slots {
		day, err := time.Parse("2006-01-02", slot.Date)
		require.NoError(t, err)
		assert.NotEqual(t, time.Saturday, day.Weekday())
		assert.NotEqual(t, time.Sunday, day.Weekday())
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	start := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	a := Generate(Options{Seed: 42, Start: start})
	b := Generate(Options{Seed: 42, Start: start})
	assert.Equal(t, a, b)
}

func TestGeneratePatientIdentities(t *testing.T) {
	data := Generate(Options{Seed: 3, Patients: 10})
	require.Len(t, data.Patients, 10)
	for i, rec := range data.Patients {
		assert.Equal(t, int64(i+1), rec.ID)
		assert.Regexp(t, `^\d{2}/\d{2}/\d{4}$`, rec.DateOfBirth)
		assert.Regexp(t, `^555\d{7}$`, rec.Phone)
		assert.Contains(t, rec.Email, "@example.com")
	}
}
