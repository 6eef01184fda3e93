// Package match centralizes fuzzy-similarity scoring for patient and doctor
// name resolution. Both resolvers share the same scoring scale (0-100) so the
// acceptance thresholds live here as named constants rather than being
// duplicated at each call site.
package match

import (
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// Acceptance thresholds on the 0-100 similarity scale.
const (
	// PatientFirstNameThreshold is the minimum first-name similarity for a
	// stored patient record to count as the same person (DOB must also match
	// exactly).
	PatientFirstNameThreshold = 80

	// DoctorFullNameThreshold is the minimum full-name similarity for a
	// doctor match.
	DoctorFullNameThreshold = 60

	// DoctorSubstringScore is the floor applied when one name is a substring
	// of the other.
	DoctorSubstringScore = 80

	// DoctorTokenThreshold is the minimum similarity against an individual
	// name token (first or last name).
	DoctorTokenThreshold = 70

	// DoctorExactTokenScore is the score assigned when the input equals a
	// doctor's first or last name exactly.
	DoctorExactTokenScore = 90
)

// doctorPrefixes are stripped from user input before doctor matching.
var doctorPrefixes = []string{"dr.", "dr", "doctor"}

// Score returns the case-insensitive edit-distance similarity of two strings
// on a 0-100 scale.
func Score(a, b string) int {
	return fuzzy.Ratio(Normalize(a), Normalize(b))
}

// Normalize lowercases and trims a name for comparison.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// StripDoctorPrefix removes a leading "Dr."/"Doctor" honorific, if present.
func StripDoctorPrefix(s string) string {
	out := Normalize(s)
	for _, prefix := range doctorPrefixes {
		if !strings.HasPrefix(out, prefix) {
			continue
		}
		rest := out[len(prefix):]
		// A bare "dr" prefix must end the word, so "drake" stays intact.
		if prefix == "dr" && rest != "" && rest[0] != ' ' {
			continue
		}
		return strings.TrimSpace(rest)
	}
	return out
}

// ScoreDoctor scores free-form input against a roster entry using the tiered
// rules: full-name similarity, a substring floor, per-token similarity, and an
// exact first/last name bonus. The returned score is the best of all tiers;
// callers accept it when it clears DoctorFullNameThreshold.
func ScoreDoctor(input, doctor string) int {
	cleaned := StripDoctorPrefix(input)
	if cleaned == "" {
		return 0
	}
	full := Normalize(doctor)

	score := fuzzy.Ratio(cleaned, full)

	if strings.Contains(full, cleaned) || strings.Contains(cleaned, full) {
		score = max(score, DoctorSubstringScore)
	}

	tokens := doctorNameTokens(doctor)
	for _, token := range tokens {
		if len(token) <= 2 {
			continue
		}
		if tokenScore := fuzzy.Ratio(cleaned, token); tokenScore >= DoctorTokenThreshold {
			score = max(score, tokenScore)
		}
	}

	if len(tokens) >= 2 {
		if cleaned == tokens[0] || cleaned == tokens[len(tokens)-1] {
			score = max(score, DoctorExactTokenScore)
		}
	}

	return score
}

// doctorNameTokens splits a roster name into lowercase tokens with the
// honorific removed.
func doctorNameTokens(doctor string) []string {
	return strings.Fields(StripDoctorPrefix(doctor))
}
