package patients

import (
	"regexp"
	"strings"
	"time"
)

// dobLayouts are the accepted date-of-birth input formats, tried in order.
var dobLayouts = []string{
	"1/2/2006",
	"1-2-2006",
	"2006-01-02",
	"2006/01/02",
	"1/2/06",
	"1-2-06",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
}

// DOBLayout is the canonical stored date-of-birth format.
const DOBLayout = "01/02/2006"

var (
	emailRe   = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	ordinalRe = regexp.MustCompile(`(\d{1,2})(st|nd|rd|th)`)
)

// NormalizeDOB parses a date-of-birth string in any accepted format and
// returns it as MM/DD/YYYY. The second return is false when no format
// matches.
func NormalizeDOB(raw string) (string, bool) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return "", false
	}
	// Drop ordinal suffixes so "9th July 1999" parses.
	cleaned = ordinalRe.ReplaceAllString(cleaned, "$1")

	for _, layout := range dobLayouts {
		if parsed, err := time.Parse(layout, cleaned); err == nil {
			return parsed.Format(DOBLayout), true
		}
	}
	return "", false
}

// NormalizePhone strips separators and validates a 10-15 digit phone number.
// Returns the digit string (with any leading country code kept) and whether
// it was valid.
func NormalizePhone(raw string) (string, bool) {
	var digits strings.Builder
	for _, r := range strings.TrimSpace(raw) {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	if len(d) < 10 || len(d) > 15 {
		return "", false
	}
	if len(d) == 11 && !strings.HasPrefix(d, "1") {
		return "", false
	}
	return d, true
}

// ValidEmail reports whether the string is an email-shaped token.
func ValidEmail(email string) bool {
	return emailRe.MatchString(strings.TrimSpace(email))
}
