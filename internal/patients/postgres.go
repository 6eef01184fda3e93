package patients

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresStore persists patient records to PostgreSQL via database/sql.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a Postgres-backed store. Returns nil when db is
// nil so callers can fall back to the in-memory store.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	if db == nil {
		return nil
	}
	return &PostgresStore{db: db}
}

// Candidates returns records with an exact date-of-birth match, ordered by
// identifier so tie-breaking is deterministic.
func (s *PostgresStore) Candidates(ctx context.Context, dateOfBirth string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, first_name, last_name, date_of_birth, phone, email, classification
		FROM patients
		WHERE date_of_birth = $1
		ORDER BY id ASC
	`, dateOfBirth)
	if err != nil {
		return nil, fmt.Errorf("patients: query candidates: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(
			&rec.ID, &rec.FirstName, &rec.LastName, &rec.DateOfBirth,
			&rec.Phone, &rec.Email, &rec.Classification,
		); err != nil {
			return nil, fmt.Errorf("patients: scan candidate: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Insert writes a new record and returns the generated identifier.
func (s *PostgresStore) Insert(ctx context.Context, rec Record) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO patients (first_name, last_name, date_of_birth, phone, email, classification)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, rec.FirstName, rec.LastName, rec.DateOfBirth, rec.Phone, rec.Email, rec.Classification).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("patients: insert: %w", err)
	}
	return id, nil
}

// Update rewrites the mutable fields of an existing record.
func (s *PostgresStore) Update(ctx context.Context, rec Record) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE patients
		SET first_name = $1, last_name = $2, date_of_birth = $3,
		    phone = $4, email = $5, classification = $6
		WHERE id = $7
	`, rec.FirstName, rec.LastName, rec.DateOfBirth, rec.Phone, rec.Email, rec.Classification, rec.ID)
	if err != nil {
		return fmt.Errorf("patients: update: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("patients: update result: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
