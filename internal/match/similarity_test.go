package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	assert.Equal(t, 100, Score("Sarah", "sarah"))
	assert.Equal(t, 100, Score("  Sarah  ", "SARAH"))
	assert.Greater(t, Score("Sarah", "Sara"), PatientFirstNameThreshold)
	assert.Less(t, Score("Sarah", "Michael"), PatientFirstNameThreshold)
}

func TestStripDoctorPrefix(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Dr. Chen", "chen"},
		{"dr chen", "chen"},
		{"Doctor Michael Chen", "michael chen"},
		{"Chen", "chen"},
		{"Drake", "drake"},
		{"dr.chen", "chen"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, StripDoctorPrefix(tt.in))
		})
	}
}

func TestScoreDoctor(t *testing.T) {
	roster := "Dr. Michael Chen"

	t.Run("exact last name clears the exact-token bar", func(t *testing.T) {
		assert.GreaterOrEqual(t, ScoreDoctor("Dr. Chen", roster), DoctorExactTokenScore)
		assert.GreaterOrEqual(t, ScoreDoctor("chen", roster), DoctorExactTokenScore)
	})

	t.Run("exact first name clears the exact-token bar", func(t *testing.T) {
		assert.GreaterOrEqual(t, ScoreDoctor("michael", roster), DoctorExactTokenScore)
	})

	t.Run("substring input gets the substring floor", func(t *testing.T) {
		assert.GreaterOrEqual(t, ScoreDoctor("michael chen", roster), DoctorSubstringScore)
	})

	t.Run("unrelated input stays below the full-name threshold", func(t *testing.T) {
		assert.Less(t, ScoreDoctor("Dr. Rodriguez", roster), DoctorFullNameThreshold)
	})

	t.Run("empty input scores zero", func(t *testing.T) {
		assert.Equal(t, 0, ScoreDoctor("   ", roster))
		assert.Equal(t, 0, ScoreDoctor("Dr.", roster))
	})
}
