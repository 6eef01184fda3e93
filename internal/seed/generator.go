// Package seed generates demo patients and a doctor slot grid for local
// development and load seeding.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/harborview-health/scheduler-agent/internal/patients"
	"github.com/harborview-health/scheduler-agent/internal/schedule"
)

// Doctors is the demo roster.
var Doctors = []string{
	"Dr. Michael Chen", "Dr. Sarah Johnson", "Dr. Emily Rodriguez",
	"Dr. James Patel", "Dr. Olivia Thompson", "Dr. David Kim",
	"Dr. Maria Gonzalez", "Dr. Robert Nguyen", "Dr. Jennifer Lee",
	"Dr. William Brooks", "Dr. Aisha Williams", "Dr. Thomas Murphy",
	"Dr. Rachel Cohen", "Dr. Daniel Okafor", "Dr. Laura Fischer",
	"Dr. Kevin Andrade",
}

var firstNames = []string{
	"Sarah", "Michael", "Emily", "James", "Olivia", "David", "Maria",
	"Robert", "Jennifer", "William", "Linda", "John", "Patricia", "Carlos",
	"Susan", "Ahmed", "Karen", "Luis", "Nancy", "Peter", "Amy", "Marcus",
	"Grace", "Victor", "Diane",
}

var lastNames = []string{
	"Mitchell", "Torres", "Nguyen", "Anderson", "Clark", "Ramirez", "Lewis",
	"Walker", "Hall", "Young", "King", "Wright", "Lopez", "Hill", "Scott",
	"Green", "Adams", "Baker", "Rivera", "Campbell",
}

// Options controls generation. Zero values take the demo defaults.
type Options struct {
	Patients   int
	Days       int
	BookedRate float64
	Seed       int64
	Start      time.Time
}

// Data is the generated demo dataset.
type Data struct {
	Patients []patients.Record
	Slots    []schedule.Slot
}

func (o Options) withDefaults() Options {
	if o.Patients <= 0 {
		o.Patients = 50
	}
	if o.Days <= 0 {
		o.Days = 14
	}
	if o.BookedRate <= 0 {
		o.BookedRate = 0.2
	}
	if o.Start.IsZero() {
		o.Start = time.Now().AddDate(0, 0, 1)
	}
	return o
}

// Generate produces a deterministic dataset for the given options: existing
// patients, and weekday slots every 30 minutes from 09:00 to 17:00 for each
// doctor, a share of them pre-booked.
func Generate(opts Options) Data {
	opts = opts.withDefaults()
	rng := rand.New(rand.NewSource(opts.Seed))

	data := Data{
		Patients: make([]patients.Record, 0, opts.Patients),
		Slots:    make([]schedule.Slot, 0, len(Doctors)*opts.Days*16),
	}

	for i := 0; i < opts.Patients; i++ {
		first := firstNames[rng.Intn(len(firstNames))]
		last := lastNames[rng.Intn(len(lastNames))]
		dob := time.Date(1950+rng.Intn(56), time.Month(1+rng.Intn(12)),
			1+rng.Intn(28), 0, 0, 0, 0, time.UTC)
		data.Patients = append(data.Patients, patients.Record{
			ID:          int64(i + 1),
			FirstName:   first,
			LastName:    last,
			DateOfBirth: dob.Format(patients.DOBLayout),
			Phone:       fmt.Sprintf("555%07d", rng.Intn(10000000)),
			Email: fmt.Sprintf("%s.%s%d@example.com",
				strings.ToLower(first), strings.ToLower(last), i+1),
			Classification: patients.ClassificationReturning,
		})
	}

	day := opts.Start
	for added := 0; added < opts.Days; day = day.AddDate(0, 0, 1) {
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}
		added++
		date := day.Format("2006-01-02")
		for _, doctor := range Doctors {
			for minutes := 9 * 60; minutes < 17*60; minutes += 30 {
				data.Slots = append(data.Slots, schedule.Slot{
					Doctor:    doctor,
					Date:      date,
					Time:      fmt.Sprintf("%02d:%02d", minutes/60, minutes%60),
					Available: rng.Float64() >= opts.BookedRate,
				})
			}
		}
	}

	return data
}
