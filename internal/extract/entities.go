// Package extract turns a single user utterance into a sparse bag of typed
// candidate fields. Extractors never guess beyond the literal text: a field is
// populated only when a recognizable pattern is present, and extraction
// failures yield an empty bag rather than an error so the conversation is
// never blocked.
package extract

// Entities is the sparse extraction output. A zero value means the field was
// not mentioned; extractors must never populate a field with an empty string
// to signal absence.
type Entities struct {
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`

	// Doctor is the doctor-name hint following a "Dr."/"doctor" mention.
	Doctor string `json:"doctor,omitempty"`

	// SlotChoice is the 1-based slot ordinal picked by the user; 0 means no
	// ordinal was present.
	SlotChoice int `json:"slot_choice,omitempty"`

	InsuranceCarrier string `json:"insurance_carrier,omitempty"`
	MemberID         string `json:"member_id,omitempty"`
	GroupNumber      string `json:"group_number,omitempty"`
}

// IsEmpty reports whether nothing was extracted.
func (e Entities) IsEmpty() bool {
	return e == Entities{}
}
