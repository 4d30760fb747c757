// Package dataset persists the project collection as a CSV file and
// reconciles fresh extraction batches into it.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/projbank/projbank/internal/record"
)

// ErrBadHeader is returned when an existing collection file does not carry
// the expected columns.
var ErrBadHeader = errors.New("collection header does not match the expected columns")

// nullCell marks an absent value in the persisted file.
const nullCell = "NULL"

// utf8BOM keeps accented characters intact for spreadsheet tools that
// otherwise guess a legacy encoding.
const utf8BOM = "\ufeff"

// Load reads the persisted collection. A missing file is an empty
// collection, not an error.
func Load(path string) ([]record.ProjectRecord, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open collection: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(record.Columns)

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read collection header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}
	for i, col := range record.Columns {
		if header[i] != col {
			return nil, fmt.Errorf("%w: column %d is %q, want %q", ErrBadHeader, i, header[i], col)
		}
	}

	var records []record.ProjectRecord
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read collection row: %w", err)
		}
		rec, err := fromRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", len(records)+2, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// Save writes the collection atomically: the rows go to a temporary file in
// the target directory which then replaces the target. When the target is
// locked by another program the rows go to a sibling "<name>_new" file
// instead; the returned path is wherever the rows actually landed.
func Save(path string, records []record.ProjectRecord) (string, error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".projbank-*.csv")
	if err != nil {
		return "", fmt.Errorf("create temp collection: %w", err)
	}
	tmpName := tmp.Name()

	if err := writeAll(tmp, records); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("close temp collection: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		fallback := fallbackPath(path)
		if ferr := os.Rename(tmpName, fallback); ferr != nil {
			os.Remove(tmpName)
			return "", fmt.Errorf("write collection: %w", err)
		}
		return fallback, nil
	}
	return path, nil
}

// fallbackPath derives the alternate target used when path is locked.
func fallbackPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_new" + ext
}

func writeAll(w io.Writer, records []record.ProjectRecord) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return fmt.Errorf("write collection: %w", err)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(record.Columns); err != nil {
		return fmt.Errorf("write collection header: %w", err)
	}
	for _, rec := range records {
		if err := cw.Write(toRow(rec)); err != nil {
			return fmt.Errorf("write collection row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush collection: %w", err)
	}
	return nil
}

// toRow renders a record in the fixed column order.
func toRow(r record.ProjectRecord) []string {
	return []string{
		strconv.Itoa(r.ProjectID),
		text(r.ProjectReference),
		text(r.Title),
		text(r.Description),
		text(r.Sector),
		text(r.SubSector),
		text(r.BankCategory),
		boolCell(r.IsProjectBank),
		text(r.Region),
		text(r.Province),
		text(r.IndustrialZone),
		floatCell(r.EstimatedInvestmentMAD),
		floatCell(r.MinInvestmentMAD),
		text(r.InvestmentRange),
		floatCell(r.PaybackPeriodYears),
		floatCell(r.ROIEstimated),
		floatCell(r.RequiredLandAreaM2),
		floatCell(r.RequiredBuildingAreaM2),
		boolCell(r.HasPDF),
		text(r.SourcePath),
		strconv.Itoa(r.PageNumber),
		text(r.PublicationDate),
		text(r.LastUpdate),
		text(r.Language),
		text(r.Currency),
		text(r.SourceType),
	}
}

func fromRow(row []string) (record.ProjectRecord, error) {
	var r record.ProjectRecord
	var err error

	if r.ProjectID, err = strconv.Atoi(row[0]); err != nil {
		return r, fmt.Errorf("project_id %q: %w", row[0], err)
	}
	r.ProjectReference = cellText(row[1])
	r.Title = cellText(row[2])
	r.Description = cellText(row[3])
	r.Sector = cellText(row[4])
	r.SubSector = cellText(row[5])
	r.BankCategory = cellText(row[6])
	r.IsProjectBank = cellBool(row[7])
	r.Region = cellText(row[8])
	r.Province = cellText(row[9])
	r.IndustrialZone = cellText(row[10])

	if r.EstimatedInvestmentMAD, err = cellFloat(row[11]); err != nil {
		return r, fmt.Errorf("estimated_investment_mad %q: %w", row[11], err)
	}
	if r.MinInvestmentMAD, err = cellFloat(row[12]); err != nil {
		return r, fmt.Errorf("min_investment_mad %q: %w", row[12], err)
	}
	r.InvestmentRange = cellText(row[13])
	if r.PaybackPeriodYears, err = cellFloat(row[14]); err != nil {
		return r, fmt.Errorf("payback_period_years %q: %w", row[14], err)
	}
	if r.ROIEstimated, err = cellFloat(row[15]); err != nil {
		return r, fmt.Errorf("roi_estimated %q: %w", row[15], err)
	}
	if r.RequiredLandAreaM2, err = cellFloat(row[16]); err != nil {
		return r, fmt.Errorf("required_land_area_m2 %q: %w", row[16], err)
	}
	if r.RequiredBuildingAreaM2, err = cellFloat(row[17]); err != nil {
		return r, fmt.Errorf("required_building_area_m2 %q: %w", row[17], err)
	}

	r.HasPDF = cellBool(row[18])
	r.SourcePath = cellText(row[19])
	if cellText(row[20]) != "" {
		if r.PageNumber, err = strconv.Atoi(row[20]); err != nil {
			return r, fmt.Errorf("pdf_page_number %q: %w", row[20], err)
		}
	}
	r.PublicationDate = cellText(row[21])
	r.LastUpdate = cellText(row[22])
	r.Language = cellText(row[23])
	r.Currency = cellText(row[24])
	r.SourceType = cellText(row[25])
	return r, nil
}

func text(s string) string {
	if s == "" {
		return nullCell
	}
	return s
}

func cellText(s string) string {
	if s == nullCell {
		return ""
	}
	return s
}

func boolCell(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

func cellBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1":
		return true
	}
	return false
}

func floatCell(v *float64) string {
	if v == nil {
		return nullCell
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func cellFloat(s string) (*float64, error) {
	if s == "" || s == nullCell {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
