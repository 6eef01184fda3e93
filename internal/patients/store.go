package patients

import (
	"context"
	"sync"
)

// Store is the patient record store consumed by the Resolver. Candidates
// returns records with an exact date-of-birth match in a deterministic order
// (store insertion order) so tie-breaking is reproducible; fuzzy name scoring
// stays in the Resolver.
type Store interface {
	Candidates(ctx context.Context, dateOfBirth string) ([]Record, error)
	Insert(ctx context.Context, rec Record) (int64, error)
	Update(ctx context.Context, rec Record) error
}

// MemoryStore is an in-memory Store for development and tests.
type MemoryStore struct {
	mu      sync.Mutex
	records []Record
	nextID  int64
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

// NewMemoryStoreWith seeds the store with existing records. IDs already on
// the records are preserved; the next generated ID starts past the highest.
func NewMemoryStoreWith(records []Record) *MemoryStore {
	s := NewMemoryStore()
	for _, rec := range records {
		if rec.ID >= s.nextID {
			s.nextID = rec.ID + 1
		}
		s.records = append(s.records, rec)
	}
	return s
}

// Candidates returns records whose date of birth matches exactly, in
// insertion order.
func (s *MemoryStore) Candidates(_ context.Context, dateOfBirth string) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Record
	for _, rec := range s.records {
		if rec.DateOfBirth == dateOfBirth {
			out = append(out, rec)
		}
	}
	return out, nil
}

// Insert assigns the next identifier and appends the record.
func (s *MemoryStore) Insert(_ context.Context, rec Record) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec.ID = s.nextID
	s.nextID++
	s.records = append(s.records, rec)
	return rec.ID, nil
}

// Update replaces the stored record with the same ID.
func (s *MemoryStore) Update(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.records {
		if s.records[i].ID == rec.ID {
			s.records[i] = rec
			return nil
		}
	}
	return ErrNotFound
}

// Len reports how many records the store holds.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}
