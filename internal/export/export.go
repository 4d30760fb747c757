// Package export renders the project collection as an XLSX workbook for
// the analysts who review the catalog in a spreadsheet.
package export

import (
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/projbank/projbank/internal/record"
)

const sheet = "Projects"

// XLSX renders the records as XLSX bytes, one row per record, columns in
// the persisted collection order.
func XLSX(records []record.ProjectRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(sheet); err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}
	index, err := f.GetSheetIndex(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)

	for i, h := range record.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	for rowIdx, r := range records {
		row := rowIdx + 2
		for col, v := range rowValues(r) {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("write row %d: %w", row, err)
			}
		}
	}

	// Reference, title and description carry the longest text.
	_ = f.SetColWidth(sheet, "B", "B", 40)
	_ = f.SetColWidth(sheet, "C", "D", 50)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteXLSX renders the records to a file.
func WriteXLSX(path string, records []record.ProjectRecord) error {
	data, err := XLSX(records)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// rowValues mirrors the collection column order with native cell types, so
// numeric columns stay sortable in the spreadsheet. Absent values become
// empty cells.
func rowValues(r record.ProjectRecord) []any {
	return []any{
		r.ProjectID,
		r.ProjectReference,
		r.Title,
		r.Description,
		r.Sector,
		r.SubSector,
		r.BankCategory,
		r.IsProjectBank,
		r.Region,
		r.Province,
		r.IndustrialZone,
		cell(r.EstimatedInvestmentMAD),
		cell(r.MinInvestmentMAD),
		r.InvestmentRange,
		cell(r.PaybackPeriodYears),
		cell(r.ROIEstimated),
		cell(r.RequiredLandAreaM2),
		cell(r.RequiredBuildingAreaM2),
		r.HasPDF,
		r.SourcePath,
		r.PageNumber,
		r.PublicationDate,
		r.LastUpdate,
		r.Language,
		r.Currency,
		r.SourceType,
	}
}

func cell(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}
