// Package engine implements the conversation state machine that drives
// appointment booking: it merges extracted entities into the session drafts,
// dispatches to the resolver for the current state, and renders the next
// outbound message. State only moves forward; the single entry point is
// ProcessTurn.
package engine

import (
	"encoding/json"
	"fmt"
)

// State is the conversation stage. The progression is strictly forward:
// Greeting → CollectingInfo → PatientLookup → {NewPatientRegistration |
// DoctorSelection} → Scheduling → InsuranceCollection → Confirmation →
// Completed. Only an explicit reset returns to Greeting.
type State int

const (
	StateGreeting State = iota
	StateCollectingInfo
	StatePatientLookup
	StateNewPatientRegistration
	StateDoctorSelection
	StateScheduling
	StateInsuranceCollection
	StateConfirmation
	StateCompleted
)

var stateNames = map[State]string{
	StateGreeting:               "greeting",
	StateCollectingInfo:         "collecting_info",
	StatePatientLookup:          "patient_lookup",
	StateNewPatientRegistration: "new_patient_registration",
	StateDoctorSelection:        "doctor_selection",
	StateScheduling:             "scheduling",
	StateInsuranceCollection:    "insurance_collection",
	StateConfirmation:           "confirmation",
	StateCompleted:              "completed",
}

var statesByName = func() map[string]State {
	m := make(map[string]State, len(stateNames))
	for s, name := range stateNames {
		m[name] = s
	}
	return m
}()

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// MarshalJSON encodes the state by name so persisted sessions stay readable
// and stable across enum reordering.
func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a state name.
func (s *State) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	state, ok := statesByName[name]
	if !ok {
		return fmt.Errorf("engine: unknown state %q", name)
	}
	*s = state
	return nil
}
