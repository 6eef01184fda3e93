package export

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/harborview-health/scheduler-agent/internal/booking"
	"github.com/harborview-health/scheduler-agent/internal/insurance"
	"github.com/harborview-health/scheduler-agent/internal/patients"
)

func TestWriteXLSX(t *testing.T) {
	appts := []booking.Appointment{
		{
			PatientName:     "Sarah Johnson",
			DateOfBirth:     "03/22/1985",
			Phone:           "5551234567",
			Email:           "sarah@example.com",
			Doctor:          "Dr. Michael Chen",
			Date:            "2026-09-01",
			Time:            "09:00",
			DurationMinutes: 60,
			PatientType:     patients.ClassificationNew,
			Insurance:       insurance.Info{Carrier: "Aetna", MemberID: "MBR123456", GroupNumber: "GRP42"},
			Status:          "Confirmed",
			CreatedAt:       time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		},
	}

	path := filepath.Join(t.TempDir(), "appointments.xlsx")
	require.NoError(t, WriteXLSX(appts, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "PatientName", rows[0][0])
	assert.Equal(t, "Sarah Johnson", rows[1][0])
	assert.Equal(t, "Dr. Michael Chen", rows[1][4])
	assert.Equal(t, "60", rows[1][7])
	assert.Equal(t, "Aetna", rows[1][9])
}

func TestWriteXLSX_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, WriteXLSX(nil, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	require.Len(t, rows, 1, "header only")
}
