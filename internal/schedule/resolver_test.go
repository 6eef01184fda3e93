package schedule

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rosterSlots() []Slot {
	return []Slot{
		{Doctor: "Dr. Michael Chen", Date: "2026-09-02", Time: "10:00", Available: true},
		{Doctor: "Dr. Michael Chen", Date: "2026-09-01", Time: "14:30", Available: true},
		{Doctor: "Dr. Michael Chen", Date: "2026-09-01", Time: "09:00", Available: true},
		{Doctor: "Dr. Michael Chen", Date: "2026-09-01", Time: "11:00", Available: false},
		{Doctor: "Dr. Sarah Johnson", Date: "2026-09-01", Time: "09:30", Available: true},
	}
}

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()
	return NewResolver(NewMemoryStore(rosterSlots()), nil)
}

func TestMatchDoctor(t *testing.T) {
	r := newTestResolver(t)
	ctx := context.Background()

	tests := []struct {
		input string
		want  string
	}{
		{"Dr. Michael Chen", "Dr. Michael Chen"}, // exact, case-insensitive
		{"dr. michael chen", "Dr. Michael Chen"},
		{"Dr. Chen", "Dr. Michael Chen"}, // exact last-name token
		{"chen", "Dr. Michael Chen"},
		{"michael", "Dr. Michael Chen"},
		{"Dr. Jonson", "Dr. Sarah Johnson"}, // fuzzy token
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := r.MatchDoctor(ctx, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := r.MatchDoctor(ctx, "Dr. Patel")
	assert.ErrorIs(t, err, ErrDoctorUnknown)
}

func TestListSlots_SortedDateThenTime(t *testing.T) {
	r := newTestResolver(t)

	slots, err := r.ListSlots(context.Background(), "Dr. Michael Chen")
	require.NoError(t, err)
	require.Len(t, slots, 3, "unavailable slots are excluded")

	assert.Equal(t, "2026-09-01", slots[0].Date)
	assert.Equal(t, "09:00", slots[0].Time)
	assert.Equal(t, "2026-09-01", slots[1].Date)
	assert.Equal(t, "14:30", slots[1].Time)
	assert.Equal(t, "2026-09-02", slots[2].Date)
}

func TestSelectSlot_ByOrdinal(t *testing.T) {
	r := newTestResolver(t)
	ctx := context.Background()

	slot, err := r.SelectSlot(ctx, "Dr. Michael Chen", "2")
	require.NoError(t, err)
	assert.Equal(t, "2026-09-01", slot.Date)
	assert.Equal(t, "14:30", slot.Time)
	assert.False(t, slot.Available)

	// The booked slot is gone from subsequent listings.
	slots, err := r.ListSlots(ctx, "Dr. Michael Chen")
	require.NoError(t, err)
	assert.Len(t, slots, 2)
}

func TestSelectSlot_OrdinalOutOfRange(t *testing.T) {
	r := newTestResolver(t)
	ctx := context.Background()

	_, err := r.SelectSlot(ctx, "Dr. Michael Chen", "99")
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = r.SelectSlot(ctx, "Dr. Michael Chen", "0")
	assert.ErrorIs(t, err, ErrOutOfRange)

	// Nothing was booked by the failed attempts.
	slots, err := r.ListSlots(ctx, "Dr. Michael Chen")
	require.NoError(t, err)
	assert.Len(t, slots, 3)
}

func TestSelectSlot_ByLiteralDateTime(t *testing.T) {
	r := newTestResolver(t)

	slot, err := r.SelectSlot(context.Background(), "Dr. Michael Chen", "2026-09-02 10:00")
	require.NoError(t, err)
	assert.Equal(t, "2026-09-02", slot.Date)

	_, err = r.SelectSlot(context.Background(), "Dr. Michael Chen", "2026-09-02 10:00")
	assert.ErrorIs(t, err, ErrSlotTaken, "same literal slot cannot be booked twice")
}

func TestSelectSlot_UnrecognizedChoice(t *testing.T) {
	r := newTestResolver(t)
	ctx := context.Background()

	for _, input := range []string{"the morning one", "whenever works", "tuesday at ten"} {
		t.Run(input, func(t *testing.T) {
			_, err := r.SelectSlot(ctx, "Dr. Michael Chen", input)
			assert.ErrorIs(t, err, ErrChoiceUnrecognized)
		})
	}

	// A well-formed literal that names no open slot is a race loss, not
	// unrecognized input.
	_, err := r.SelectSlot(ctx, "Dr. Michael Chen", "2026-09-01 11:00")
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestSelectSlot_NoDoubleBookingUnderRace(t *testing.T) {
	store := NewMemoryStore([]Slot{
		{Doctor: "Dr. Michael Chen", Date: "2026-09-01", Time: "09:00", Available: true},
	})
	r := NewResolver(store, nil)

	const sessions = 16
	var wg sync.WaitGroup
	wins := make(chan Slot, sessions)
	losses := make(chan error, sessions)

	for i := 0; i < sessions; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			slot, err := r.SelectSlot(context.Background(), "Dr. Michael Chen", "1")
			if err != nil {
				losses <- err
				return
			}
			wins <- slot
		}()
	}
	wg.Wait()
	close(wins)
	close(losses)

	assert.Len(t, wins, 1, "exactly one session books the slot")
	for err := range losses {
		// Racing sessions either saw an empty list (ordinal out of range)
		// or lost the flip.
		assert.True(t,
			err == ErrOutOfRange || err == ErrSlotTaken,
			"unexpected race outcome: %v", err)
	}
}
