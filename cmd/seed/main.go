// Command seed loads demo patients and doctor slots into Postgres so the API
// can be exercised end to end.
package main

import (
	"context"
	"flag"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/harborview-health/scheduler-agent/internal/seed"
	"github.com/harborview-health/scheduler-agent/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	var (
		patientCount = flag.Int("patients", 50, "number of demo patients")
		days         = flag.Int("days", 14, "number of weekdays of slots")
		bookedRate   = flag.Float64("booked", 0.2, "share of slots pre-booked")
		randomSeed   = flag.Int64("seed", 1, "random seed")
		truncate     = flag.Bool("truncate", false, "clear existing rows first")
	)
	flag.Parse()

	logger := logging.New(os.Getenv("LOG_LEVEL"))

	databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if databaseURL == "" {
		logger.Error("DATABASE_URL is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		logger.Error("failed to create pgx pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if *truncate {
		if _, err := pool.Exec(ctx, `TRUNCATE patients, doctor_slots, appointments`); err != nil {
			logger.Error("failed to truncate tables", "error", err)
			os.Exit(1)
		}
	}

	data := seed.Generate(seed.Options{
		Patients:   *patientCount,
		Days:       *days,
		BookedRate: *bookedRate,
		Seed:       *randomSeed,
	})

	batch := &pgx.Batch{}
	for _, rec := range data.Patients {
		batch.Queue(`
			INSERT INTO patients (first_name, last_name, date_of_birth, phone, email, classification)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, rec.FirstName, rec.LastName, rec.DateOfBirth, rec.Phone, rec.Email, rec.Classification)
	}
	for _, slot := range data.Slots {
		batch.Queue(`
			INSERT INTO doctor_slots (doctor, slot_date, slot_time, available)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (doctor, slot_date, slot_time) DO UPDATE SET available = EXCLUDED.available
		`, slot.Doctor, slot.Date, slot.Time, slot.Available)
	}

	if err := pool.SendBatch(ctx, batch).Close(); err != nil {
		logger.Error("failed to seed database", "error", err)
		os.Exit(1)
	}

	logger.Info("database seeded",
		"patients", len(data.Patients),
		"slots", len(data.Slots),
		"doctors", len(seed.Doctors),
	)
}
