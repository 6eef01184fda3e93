// Package insurance implements the sequential three-field insurance
// collector: carrier, member ID, group number. Each turn fills exactly one
// field, and an explicit opt-out phrase at any step short-circuits the rest.
package insurance

import (
	"regexp"
	"strings"
)

// Placeholder values written when the patient opts out.
const (
	SelfPay      = "Self Pay"
	NotAvailable = "Not Available"
)

// Info is the collected insurance sub-record. Empty means not collected yet;
// opted-out fields carry the placeholder values instead.
type Info struct {
	Carrier     string `json:"carrier,omitempty"`
	MemberID    string `json:"member_id,omitempty"`
	GroupNumber string `json:"group_number,omitempty"`
}

// Complete reports whether all three fields have been resolved.
func (i Info) Complete() bool {
	return i.Carrier != "" && i.MemberID != "" && i.GroupNumber != ""
}

// Field identifies the next insurance field to collect.
type Field int

const (
	FieldCarrier Field = iota
	FieldMemberID
	FieldGroupNumber
	FieldDone
)

// Next returns the first unresolved field, in collection order.
func (i Info) Next() Field {
	switch {
	case i.Carrier == "":
		return FieldCarrier
	case i.MemberID == "":
		return FieldMemberID
	case i.GroupNumber == "":
		return FieldGroupNumber
	default:
		return FieldDone
	}
}

// carrierOptOuts end the whole insurance flow as self pay.
var carrierOptOuts = []string{
	"no insurance", "don't have", "dont have", "none", "no carrier",
	"self pay", "cash", "not available",
}

// fieldOptOuts mark the remaining fields as not available.
var fieldOptOuts = []string{
	"not available", "don't have", "dont have", "none", "n/a",
}

// knownCarriers get canonical title-cased names; anything else is stored as
// the raw cleaned text.
var knownCarriers = []string{
	"blue cross", "aetna", "cigna", "humana", "kaiser", "medicare", "medicaid",
}

var memberIDRe = regexp.MustCompile(`[A-Za-z0-9]{6,}`)

// Apply consumes one utterance and fills the next unresolved field. It
// returns the field that was filled. Opt-out phrases cascade: declining the
// carrier resolves all three fields at once, declining the member ID also
// resolves the group number.
func Apply(info *Info, utterance string) Field {
	field := info.Next()
	lower := strings.ToLower(utterance)

	switch field {
	case FieldCarrier:
		if containsAny(lower, carrierOptOuts) {
			info.Carrier = SelfPay
			info.MemberID = NotAvailable
			info.GroupNumber = NotAvailable
			return field
		}
		info.Carrier = canonicalCarrier(utterance)

	case FieldMemberID:
		if containsAny(lower, fieldOptOuts) {
			info.MemberID = NotAvailable
			info.GroupNumber = NotAvailable
			return field
		}
		if m := findMemberID(utterance); m != "" {
			info.MemberID = m
		} else {
			info.MemberID = strings.TrimSpace(utterance)
		}

	case FieldGroupNumber:
		if containsAny(lower, fieldOptOuts) {
			info.GroupNumber = NotAvailable
		} else {
			info.GroupNumber = strings.TrimSpace(utterance)
		}
	}
	return field
}

// findMemberID picks a contiguous alphanumeric token of length >= 6,
// preferring one that contains a digit so ordinary words don't win.
func findMemberID(utterance string) string {
	tokens := memberIDRe.FindAllString(utterance, -1)
	for _, token := range tokens {
		if strings.ContainsAny(token, "0123456789") {
			return token
		}
	}
	if len(tokens) > 0 {
		return tokens[0]
	}
	return ""
}

func containsAny(text string, phrases []string) bool {
	for _, phrase := range phrases {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}

// canonicalCarrier title-cases recognized carriers and keeps raw text for
// the rest.
func canonicalCarrier(utterance string) string {
	lower := strings.ToLower(utterance)
	for _, carrier := range knownCarriers {
		if strings.Contains(lower, carrier) {
			return titleWords(carrier)
		}
	}
	return strings.TrimSpace(utterance)
}

func titleWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
