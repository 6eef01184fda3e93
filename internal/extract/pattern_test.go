package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatternExtractor_Names(t *testing.T) {
	p := NewPatternExtractor()

	tests := []struct {
		utterance string
		first     string
		last      string
	}{
		{"my name is Sarah", "Sarah", ""},
		{"My name is sarah johnson", "Sarah", "Johnson"},
		{"I'm Michael", "Michael", ""},
		{"i am emily", "Emily", ""},
		{"call me Dave", "Dave", ""},
		{"Sarah", "Sarah", ""},
		{"my last name is Williams", "", "Williams"},
		{"Hi", "", ""},
		{"hello", "", ""},
		{"book", "", ""},
		{"I'd like to book an appointment", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.utterance, func(t *testing.T) {
			entities, err := p.Extract(context.Background(), tt.utterance, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.first, entities.FirstName)
			assert.Equal(t, tt.last, entities.LastName)
		})
	}
}

func TestPatternExtractor_ContactFields(t *testing.T) {
	p := NewPatternExtractor()

	entities, err := p.Extract(context.Background(), "it's sarah.j@example.com and my number is 555-123-4567", nil)
	require.NoError(t, err)
	assert.Equal(t, "sarah.j@example.com", entities.Email)
	assert.Equal(t, "555-123-4567", entities.Phone)

	entities, err = p.Extract(context.Background(), "03/22/1985", nil)
	require.NoError(t, err)
	assert.Equal(t, "03/22/1985", entities.DateOfBirth)
	assert.Empty(t, entities.Phone, "a date must not read as a phone number")

	entities, err = p.Extract(context.Background(), "born on 3-22-85", nil)
	require.NoError(t, err)
	assert.Equal(t, "3-22-85", entities.DateOfBirth)
}

func TestPatternExtractor_DoctorAndOrdinal(t *testing.T) {
	p := NewPatternExtractor()

	entities, err := p.Extract(context.Background(), "Dr. Chen", nil)
	require.NoError(t, err)
	assert.Equal(t, "Chen", entities.Doctor)

	entities, err = p.Extract(context.Background(), "doctor michael chen", nil)
	require.NoError(t, err)
	assert.Equal(t, "michael chen", entities.Doctor)

	entities, err = p.Extract(context.Background(), "slot 3 works for me", nil)
	require.NoError(t, err)
	assert.Equal(t, 3, entities.SlotChoice)

	entities, err = p.Extract(context.Background(), "99", nil)
	require.NoError(t, err)
	assert.Equal(t, 99, entities.SlotChoice)
}

func TestPatternExtractor_EmptyInput(t *testing.T) {
	p := NewPatternExtractor()
	entities, err := p.Extract(context.Background(), "   ", nil)
	require.NoError(t, err)
	assert.True(t, entities.IsEmpty())
}
