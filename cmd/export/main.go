// Command export writes the confirmed appointment roster to an .xlsx file
// for front-desk staff.
package main

import (
	"database/sql"
	"flag"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/harborview-health/scheduler-agent/internal/booking"
	"github.com/harborview-health/scheduler-agent/internal/export"
	"github.com/harborview-health/scheduler-agent/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	out := flag.String("out", "appointments.xlsx", "output file path")
	flag.Parse()

	logger := logging.New(os.Getenv("LOG_LEVEL"))

	databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if databaseURL == "" {
		logger.Error("DATABASE_URL is required")
		os.Exit(1)
	}

	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	rows, err := db.Query(`
		SELECT id, patient_id, patient_name, date_of_birth, phone, email,
		       doctor, appt_date, appt_time, duration_minutes, patient_type,
		       insurance_carrier, member_id, group_number, status, created_at
		FROM appointments
		ORDER BY appt_date, appt_time
	`)
	if err != nil {
		logger.Error("failed to query appointments", "error", err)
		os.Exit(1)
	}
	defer rows.Close()

	var appts []booking.Appointment
	for rows.Next() {
		var appt booking.Appointment
		var id string
		if err := rows.Scan(
			&id, &appt.PatientID, &appt.PatientName, &appt.DateOfBirth,
			&appt.Phone, &appt.Email, &appt.Doctor, &appt.Date, &appt.Time,
			&appt.DurationMinutes, &appt.PatientType,
			&appt.Insurance.Carrier, &appt.Insurance.MemberID,
			&appt.Insurance.GroupNumber, &appt.Status, &appt.CreatedAt,
		); err != nil {
			logger.Error("failed to scan appointment", "error", err)
			os.Exit(1)
		}
		appt.ID, _ = uuid.Parse(id)
		appts = append(appts, appt)
	}
	if err := rows.Err(); err != nil {
		logger.Error("failed to read appointments", "error", err)
		os.Exit(1)
	}

	if err := export.WriteXLSX(appts, *out); err != nil {
		logger.Error("failed to write export", "error", err)
		os.Exit(1)
	}
	logger.Info("export written", "path", *out, "appointments", len(appts))
}
