package booking

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresSink writes finalized appointments to PostgreSQL.
type PostgresSink struct {
	pool *pgxpool.Pool
}

// NewPostgresSink creates a Postgres-backed appointment sink.
func NewPostgresSink(pool *pgxpool.Pool) *PostgresSink {
	if pool == nil {
		panic("booking: pgx pool required")
	}
	return &PostgresSink{pool: pool}
}

// Save inserts the appointment row.
func (s *PostgresSink) Save(ctx context.Context, appt Appointment) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO appointments (
			id, patient_id, patient_name, date_of_birth, phone, email,
			doctor, appt_date, appt_time, duration_minutes, patient_type,
			insurance_carrier, member_id, group_number, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`,
		appt.ID, appt.PatientID, appt.PatientName, appt.DateOfBirth, appt.Phone, appt.Email,
		appt.Doctor, appt.Date, appt.Time, appt.DurationMinutes, appt.PatientType,
		appt.Insurance.Carrier, appt.Insurance.MemberID, appt.Insurance.GroupNumber,
		appt.Status, appt.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("booking: insert appointment: %w", err)
	}
	return nil
}
