// Package patients owns patient identity: the draft built up across
// conversation turns, the persisted record, and the resolver that decides
// whether a caller is a new or returning patient.
package patients

// Classification distinguishes new from returning patients. It determines
// appointment duration downstream.
type Classification string

const (
	ClassificationNew       Classification = "New"
	ClassificationReturning Classification = "Returning"
)

// Record is a persisted patient identity. ID is unique and stable once
// assigned; only the Resolver creates new records.
type Record struct {
	ID             int64          `json:"id"`
	FirstName      string         `json:"first_name"`
	LastName       string         `json:"last_name"`
	DateOfBirth    string         `json:"date_of_birth"` // MM/DD/YYYY
	Phone          string         `json:"phone"`
	Email          string         `json:"email"`
	Classification Classification `json:"classification"`
}

// Draft is a partially filled patient identity, mutated incrementally as
// fields are extracted from conversation.
type Draft struct {
	FirstName      string         `json:"first_name,omitempty"`
	LastName       string         `json:"last_name,omitempty"`
	DateOfBirth    string         `json:"date_of_birth,omitempty"` // normalized MM/DD/YYYY
	Phone          string         `json:"phone,omitempty"`
	Email          string         `json:"email,omitempty"`
	Classification Classification `json:"classification,omitempty"`
	PatientID      *int64         `json:"patient_id,omitempty"`
}

// FullName joins first and last name, tolerating a missing last name.
func (d Draft) FullName() string {
	if d.LastName == "" {
		return d.FirstName
	}
	return d.FirstName + " " + d.LastName
}

// Missing lists the required registration fields the draft does not have yet,
// in prompt order.
func (d Draft) Missing() []string {
	var missing []string
	if d.FirstName == "" {
		missing = append(missing, "first name")
	}
	if d.LastName == "" {
		missing = append(missing, "last name")
	}
	if d.DateOfBirth == "" {
		missing = append(missing, "date of birth")
	}
	if d.Phone == "" {
		missing = append(missing, "phone number")
	}
	if d.Email == "" {
		missing = append(missing, "email address")
	}
	return missing
}
