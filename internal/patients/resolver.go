package patients

import (
	"context"
	"errors"
	"fmt"

	"github.com/harborview-health/scheduler-agent/internal/match"
	"github.com/harborview-health/scheduler-agent/pkg/logging"
)

var (
	// ErrNotFound means no stored record matched the draft identity.
	ErrNotFound = errors.New("patients: no matching record")

	// ErrMissingFields means Register was called before the draft had all
	// required fields. The state machine must re-prompt before calling
	// Register, so reaching this error is a caller defect.
	ErrMissingFields = errors.New("patients: draft missing required fields")
)

// Resolver classifies callers as new or returning against the record store
// and registers new patients.
type Resolver struct {
	store  Store
	logger *logging.Logger
}

// NewResolver builds a patient resolver over the given store.
func NewResolver(store Store, logger *logging.Logger) *Resolver {
	if store == nil {
		panic("patients: store required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Resolver{store: store, logger: logger.Component("patients")}
}

// Lookup searches the store for a record whose first name scores at or above
// the similarity threshold and whose date of birth matches the draft exactly.
// The first candidate in store order wins. On a hit the draft is back-filled
// from the record and classified Returning.
func (r *Resolver) Lookup(ctx context.Context, draft *Draft) (*Record, error) {
	if draft.FirstName == "" || draft.DateOfBirth == "" {
		return nil, ErrNotFound
	}

	candidates, err := r.store.Candidates(ctx, draft.DateOfBirth)
	if err != nil {
		return nil, fmt.Errorf("patients: lookup candidates: %w", err)
	}

	for _, rec := range candidates {
		score := match.Score(draft.FirstName, rec.FirstName)
		if score < match.PatientFirstNameThreshold {
			continue
		}

		r.logger.Debug("patient lookup hit",
			"patient_id", rec.ID, "first_name_score", score)

		draft.Classification = ClassificationReturning
		id := rec.ID
		draft.PatientID = &id
		if draft.LastName == "" {
			draft.LastName = rec.LastName
		}
		if draft.Phone == "" {
			draft.Phone = rec.Phone
		}
		if draft.Email == "" {
			draft.Email = rec.Email
		}
		found := rec
		return &found, nil
	}

	return nil, ErrNotFound
}

// Register commits the draft as a new patient record. All required fields
// must be present; the resolver validates and assigns the identifier but
// never prompts.
func (r *Resolver) Register(ctx context.Context, draft *Draft) (*Record, error) {
	if missing := draft.Missing(); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %v", ErrMissingFields, missing)
	}

	rec := Record{
		FirstName:      draft.FirstName,
		LastName:       draft.LastName,
		DateOfBirth:    draft.DateOfBirth,
		Phone:          draft.Phone,
		Email:          draft.Email,
		Classification: ClassificationNew,
	}

	id, err := r.store.Insert(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("patients: register: %w", err)
	}
	rec.ID = id

	draft.Classification = ClassificationNew
	draft.PatientID = &id

	r.logger.Info("patient registered", "patient_id", id)
	return &rec, nil
}
