package schedule

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/harborview-health/scheduler-agent/internal/match"
	"github.com/harborview-health/scheduler-agent/pkg/logging"
)

// Resolver maps free-form doctor mentions and slot choices onto concrete
// roster entries and slots.
type Resolver struct {
	store  Store
	logger *logging.Logger
}

// NewResolver builds a scheduling resolver over the given slot store.
func NewResolver(store Store, logger *logging.Logger) *Resolver {
	if store == nil {
		panic("schedule: store required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Resolver{store: store, logger: logger.Component("schedule")}
}

// MatchDoctor resolves free-form text against the roster: case-insensitive
// exact match first, then the tiered fuzzy scoring from the match package.
// The best-scoring candidate above the threshold wins.
func (r *Resolver) MatchDoctor(ctx context.Context, text string) (string, error) {
	roster, err := r.store.Doctors(ctx)
	if err != nil {
		return "", fmt.Errorf("schedule: load roster: %w", err)
	}

	cleaned := strings.TrimSpace(text)
	for _, doctor := range roster {
		if strings.EqualFold(cleaned, doctor) {
			return doctor, nil
		}
	}

	best := ""
	bestScore := 0
	for _, doctor := range roster {
		score := match.ScoreDoctor(cleaned, doctor)
		if score > bestScore && score >= match.DoctorFullNameThreshold {
			best = doctor
			bestScore = score
		}
	}
	if best == "" {
		return "", ErrDoctorUnknown
	}

	r.logger.Debug("doctor matched", "input", cleaned, "doctor", best, "score", bestScore)
	return best, nil
}

// Doctors exposes the roster for re-listing prompts.
func (r *Resolver) Doctors(ctx context.Context) ([]string, error) {
	return r.store.Doctors(ctx)
}

// ListSlots returns the doctor's open slots sorted by date then time. The
// presentation layer assigns 1-based ordinals across the whole list, so the
// ordering here is the ordinal contract.
func (r *Resolver) ListSlots(ctx context.Context, doctor string) ([]Slot, error) {
	return r.store.ListAvailable(ctx, doctor)
}

// SelectSlot converts an ordinal or literal "date time" choice into a booked
// slot. The availability list is re-derived at selection time, so ordinals
// always refer to the most recent listing. Returns ErrOutOfRange for a bad
// ordinal and ErrSlotTaken when the slot was lost to a concurrent session;
// callers recover from both by re-listing.
func (r *Resolver) SelectSlot(ctx context.Context, doctor, choice string) (Slot, error) {
	available, err := r.store.ListAvailable(ctx, doctor)
	if err != nil {
		return Slot{}, fmt.Errorf("schedule: list slots: %w", err)
	}

	slot, err := resolveChoice(available, choice)
	if err != nil {
		return Slot{}, err
	}

	if err := r.store.Book(ctx, slot.Doctor, slot.Date, slot.Time); err != nil {
		return Slot{}, err
	}
	slot.Available = false

	r.logger.Info("slot booked", "doctor", slot.Doctor, "date", slot.Date, "time", slot.Time)
	return slot, nil
}

var slotDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// resolveChoice picks a slot from the list by 1-based ordinal, or by literal
// date and time when the input is not an integer. Input that is neither shape
// is unrecognized rather than a race loss.
func resolveChoice(available []Slot, choice string) (Slot, error) {
	cleaned := strings.TrimSpace(choice)

	if n, err := strconv.Atoi(cleaned); err == nil {
		if n < 1 || n > len(available) {
			return Slot{}, ErrOutOfRange
		}
		return available[n-1], nil
	}

	fields := strings.Fields(cleaned)
	if len(fields) >= 2 && slotDateRe.MatchString(fields[0]) {
		date, timeOfDay := fields[0], fields[1]
		for _, slot := range available {
			if slot.Date == date && slot.Time == timeOfDay {
				return slot, nil
			}
		}
		return Slot{}, ErrSlotTaken
	}
	return Slot{}, ErrChoiceUnrecognized
}
