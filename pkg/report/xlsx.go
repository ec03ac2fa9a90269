// Package report renders the management report to an Excel workbook, one
// sheet per section, for the neighbourhood board to archive and share.
package report

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/saraya/voluntariado-mayor/pkg/core/services"
)

const (
	sheetAssigned   = "Assigned requests"
	sheetStats      = "Application stats"
	sheetVolunteers = "Top volunteers"

	dateLayout = "2006-01-02 15:04"
)

// WriteXLSX writes the management report to path as an Excel workbook.
func WriteXLSX(report *services.ManagementReport, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeAssignedSheet(f, report); err != nil {
		return err
	}
	if err := writeStatsSheet(f, report); err != nil {
		return err
	}
	if err := writeVolunteersSheet(f, report); err != nil {
		return err
	}

	// The workbook starts with a default sheet; drop it once ours exist.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to delete default sheet: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save report workbook: %w", err)
	}
	return nil
}

func setHeaderRow(f *excelize.File, sheet string, headers []string) error {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("failed to compute header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("failed to set header cell: %w", err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return fmt.Errorf("failed to style header cell: %w", err)
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, rowIdx int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowIdx)
	if err != nil {
		return fmt.Errorf("failed to compute row cell: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row: %w", err)
	}
	return nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func writeAssignedSheet(f *excelize.File, report *services.ManagementReport) error {
	if _, err := f.NewSheet(sheetAssigned); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	err := setHeaderRow(f, sheetAssigned, []string{
		"Title", "Help type", "Priority", "Created", "Assigned",
		"Creator", "Creator email", "Volunteer", "Volunteer email",
		"Beneficiary", "National ID", "Address",
	})
	if err != nil {
		return err
	}
	for i, row := range report.AssignedRequests {
		err := setRow(f, sheetAssigned, i+2, []interface{}{
			row.Title, row.HelpType, row.Priority,
			formatTime(row.CreatedAt), formatTime(row.AssignedAt),
			row.CreatorName, row.CreatorEmail,
			row.VolunteerName, row.VolunteerEmail,
			row.BeneficiaryName, row.BeneficiaryRUT, row.Address,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func writeStatsSheet(f *excelize.File, report *services.ManagementReport) error {
	if _, err := f.NewSheet(sheetStats); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	err := setHeaderRow(f, sheetStats, []string{
		"Title", "Status", "Created", "Applications", "Pending", "Accepted", "Rejected",
	})
	if err != nil {
		return err
	}
	for i, row := range report.ApplicationStats {
		err := setRow(f, sheetStats, i+2, []interface{}{
			row.Title, row.Status, formatTime(row.CreatedAt),
			row.Applications, row.Pending, row.Accepted, row.Rejected,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func writeVolunteersSheet(f *excelize.File, report *services.ManagementReport) error {
	if _, err := f.NewSheet(sheetVolunteers); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	err := setHeaderRow(f, sheetVolunteers, []string{
		"Name", "Email", "Applications", "Assigned", "Completed",
		"First application", "Last application",
	})
	if err != nil {
		return err
	}
	for i, row := range report.TopVolunteers {
		err := setRow(f, sheetVolunteers, i+2, []interface{}{
			row.Name, row.Email, row.Applications, row.Assigned, row.Completed,
			formatTime(row.FirstApplication), formatTime(row.LastApplication),
		})
		if err != nil {
			return err
		}
	}
	return nil
}
