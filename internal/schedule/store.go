package schedule

import (
	"context"
	"sort"
	"sync"
)

// Store is the slot inventory consumed by the Resolver. Book performs the
// compare-and-flip: it must atomically verify the slot is still available,
// mark it unavailable, and persist, returning ErrSlotTaken when another
// session won the race.
type Store interface {
	Doctors(ctx context.Context) ([]string, error)
	ListAvailable(ctx context.Context, doctor string) ([]Slot, error)
	Book(ctx context.Context, doctor, date, timeOfDay string) error
}

// MemoryStore keeps the slot inventory in memory behind a single mutex. The
// coarse lock keeps the verify-flip sequence trivially atomic; the inventory
// is small enough that finer locking buys nothing.
type MemoryStore struct {
	mu    sync.Mutex
	slots []Slot
}

// NewMemoryStore creates a store seeded with the given slots.
func NewMemoryStore(slots []Slot) *MemoryStore {
	s := &MemoryStore{slots: make([]Slot, len(slots))}
	copy(s.slots, slots)
	return s
}

// Doctors returns the distinct roster names in first-seen order.
func (s *MemoryStore) Doctors(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{})
	var out []string
	for _, slot := range s.slots {
		if _, ok := seen[slot.Doctor]; ok {
			continue
		}
		seen[slot.Doctor] = struct{}{}
		out = append(out, slot.Doctor)
	}
	return out, nil
}

// ListAvailable returns the doctor's open slots sorted by date then time.
func (s *MemoryStore) ListAvailable(_ context.Context, doctor string) ([]Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Slot
	for _, slot := range s.slots {
		if slot.Doctor == doctor && slot.Available {
			out = append(out, slot)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})
	return out, nil
}

// Book flips the slot unavailable if and only if it is still available.
func (s *MemoryStore) Book(_ context.Context, doctor, date, timeOfDay string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.slots {
		slot := &s.slots[i]
		if slot.Doctor != doctor || slot.Date != date || slot.Time != timeOfDay {
			continue
		}
		if !slot.Available {
			return ErrSlotTaken
		}
		slot.Available = false
		return nil
	}
	return ErrSlotTaken
}
