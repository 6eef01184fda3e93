package extract

import (
	"context"
	"regexp"
	"strconv"
	"strings"
)

// PatternExtractor is the rule-based extractor. It relies entirely on
// regular expressions and simple token heuristics, so it is deterministic and
// needs no external backend.
type PatternExtractor struct{}

// NewPatternExtractor returns the rule-based extractor.
func NewPatternExtractor() *PatternExtractor {
	return &PatternExtractor{}
}

var (
	fullNameRe = regexp.MustCompile(`(?i)\b(?:my name is|i'm|i am|call me|name:)\s+([a-zA-Z]+)(?:\s+([a-zA-Z]+))?`)
	lastNameRe = regexp.MustCompile(`(?i)\b(?:my last name is|last name:?)\s+([a-zA-Z]+)`)
	dobRe      = regexp.MustCompile(`\b(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})\b`)
	emailRe    = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phoneRe    = regexp.MustCompile(`(\+?1[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}\b`)
	doctorRe   = regexp.MustCompile(`(?i)\b(?:dr\.?|doctor|physician|specialist)\s+([a-zA-Z]+(?:\s+[a-zA-Z]+)?)`)
	digitsRe   = regexp.MustCompile(`^\d+$`)
)

// smallTalk are bare single words that must not be mistaken for a first name.
var smallTalk = map[string]struct{}{
	"hi": {}, "hello": {}, "hey": {}, "book": {}, "appointment": {},
	"yes": {}, "no": {}, "ok": {}, "okay": {}, "thanks": {}, "thank": {},
	"please": {}, "sure": {}, "none": {},
}

// Extract scans the utterance for name, date-of-birth, contact, doctor, and
// slot-ordinal patterns. It never consults recent context and never errors.
func (p *PatternExtractor) Extract(_ context.Context, utterance string, _ []string) (Entities, error) {
	var entities Entities
	text := strings.TrimSpace(utterance)
	if text == "" {
		return entities, nil
	}

	if m := fullNameRe.FindStringSubmatch(text); m != nil {
		entities.FirstName = title(m[1])
		if m[2] != "" {
			entities.LastName = title(m[2])
		}
	}
	if m := lastNameRe.FindStringSubmatch(text); m != nil {
		entities.LastName = title(m[1])
	}

	// A bare single alphabetic word reads as a first name, unless it is
	// small talk.
	if entities.FirstName == "" && isBareWord(text) {
		if _, skip := smallTalk[strings.ToLower(text)]; !skip {
			entities.FirstName = title(text)
		}
	}

	if m := dobRe.FindStringSubmatch(text); m != nil {
		entities.DateOfBirth = m[1]
	}
	if m := emailRe.FindString(text); m != "" {
		entities.Email = m
	}
	if m := phoneRe.FindString(text); m != "" {
		entities.Phone = m
	}
	if m := doctorRe.FindStringSubmatch(text); m != nil {
		entities.Doctor = strings.TrimSpace(m[1])
	}

	// First all-digit token is a slot ordinal candidate.
	for _, word := range strings.Fields(text) {
		if digitsRe.MatchString(word) {
			if n, err := strconv.Atoi(word); err == nil && n > 0 {
				entities.SlotChoice = n
			}
			break
		}
	}

	return entities, nil
}

func isBareWord(text string) bool {
	if strings.ContainsAny(text, " \t") {
		return false
	}
	for _, r := range text {
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')) {
			return false
		}
	}
	return len(text) > 0
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
