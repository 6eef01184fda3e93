package schedule

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists the slot inventory to PostgreSQL. The
// compare-and-flip in Book is a single conditional UPDATE, so the database
// serializes racing sessions without an application-side lock.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a Postgres-backed slot store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	if pool == nil {
		panic("schedule: pgx pool required")
	}
	return &PostgresStore{pool: pool}
}

// Doctors returns the distinct roster names.
func (s *PostgresStore) Doctors(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT DISTINCT doctor FROM doctor_slots ORDER BY doctor ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("schedule: query doctors: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var doctor string
		if err := rows.Scan(&doctor); err != nil {
			return nil, fmt.Errorf("schedule: scan doctor: %w", err)
		}
		out = append(out, doctor)
	}
	return out, rows.Err()
}

// ListAvailable returns the doctor's open slots sorted by date then time.
func (s *PostgresStore) ListAvailable(ctx context.Context, doctor string) ([]Slot, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT doctor, slot_date, slot_time, available
		FROM doctor_slots
		WHERE doctor = $1 AND available = TRUE
		ORDER BY slot_date ASC, slot_time ASC
	`, doctor)
	if err != nil {
		return nil, fmt.Errorf("schedule: query slots: %w", err)
	}
	defer rows.Close()

	var out []Slot
	for rows.Next() {
		var slot Slot
		if err := rows.Scan(&slot.Doctor, &slot.Date, &slot.Time, &slot.Available); err != nil {
			return nil, fmt.Errorf("schedule: scan slot: %w", err)
		}
		out = append(out, slot)
	}
	return out, rows.Err()
}

// Book flips the slot unavailable. The WHERE clause carries the availability
// check, so a zero row count means another session already took it.
func (s *PostgresStore) Book(ctx context.Context, doctor, date, timeOfDay string) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE doctor_slots
		SET available = FALSE
		WHERE doctor = $1 AND slot_date = $2 AND slot_time = $3 AND available = TRUE
	`, doctor, date, timeOfDay)
	if err != nil {
		return fmt.Errorf("schedule: book slot: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSlotTaken
	}
	return nil
}
