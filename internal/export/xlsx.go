// Package export writes the confirmed-appointment roster to an .xlsx report
// for front-desk review.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/harborview-health/scheduler-agent/internal/booking"
)

var headers = []interface{}{
	"PatientName", "DOB", "Phone", "Email", "Doctor", "Date", "Time",
	"Duration", "PatientType", "InsuranceCarrier", "MemberID", "GroupNumber",
	"Status", "CreatedAt",
}

const sheet = "Appointments"

// WriteXLSX writes all appointments to path as a single-sheet workbook.
func WriteXLSX(appts []booking.Appointment, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("export: create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("export: drop default sheet: %w", err)
	}

	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return fmt.Errorf("export: write header: %w", err)
	}

	for i, appt := range appts {
		row := []interface{}{
			appt.PatientName,
			appt.DateOfBirth,
			appt.Phone,
			appt.Email,
			appt.Doctor,
			appt.Date,
			appt.Time,
			appt.DurationMinutes,
			string(appt.PatientType),
			appt.Insurance.Carrier,
			appt.Insurance.MemberID,
			appt.Insurance.GroupNumber,
			appt.Status,
			appt.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("export: write row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("export: save %s: %w", path, err)
	}
	return nil
}
