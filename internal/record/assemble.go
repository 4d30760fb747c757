package record

import (
	"fmt"
	"strings"

	"github.com/projbank/projbank/internal/numparse"
	"github.com/projbank/projbank/internal/textnorm"
)

// referenceMaxLen caps project references; past it the title part is
// shortened so the id suffix always survives.
const (
	referenceMaxLen   = 100
	referenceTitleCap = 50
)

// Fields carries the raw extractor outputs for one project block, before
// any derivation. Nil pointers and empty strings mean the field never
// matched.
type Fields struct {
	Title          string
	Sector         string
	SubSector      string
	Description    string
	Region         string
	Province       string
	IndustrialZone string

	EstimatedInvestmentMAD *float64
	PaybackPeriodYears     *float64
	ROIEstimated           *float64
	RequiredLandAreaM2     *float64
	RequiredBuildingAreaM2 *float64

	SourcePath      string
	PageNumber      int
	PublicationDate string
	SourceType      string
}

// Options configures record derivation.
type Options struct {
	// PaybackFallbackYears, when positive, fills the payback period with
	// this constant for records where neither the payback nor the rate of
	// return could be read. Zero disables the fallback.
	PaybackFallbackYears float64
}

// Assembler turns extracted fields into finished records.
type Assembler struct {
	opts Options
}

// NewAssembler creates an Assembler with the given options.
func NewAssembler(opts Options) *Assembler {
	return &Assembler{opts: opts}
}

// Assemble derives one record from extracted fields. A missing field never
// fails the record; derivations that depend on it are skipped instead.
func (a *Assembler) Assemble(id int, f Fields) ProjectRecord {
	title := textnorm.DedupeTitle(f.Title)

	est := roundPtr(f.EstimatedInvestmentMAD)
	var minInv *float64
	if est != nil {
		v := numparse.Round2(*est * 0.8)
		minInv = &v
	}

	payback := roundPtr(f.PaybackPeriodYears)
	roi := roundPtr(f.ROIEstimated)
	// Completion needs a plausible counterpart; a zero or out-of-range value
	// leaves the derived field absent.
	switch {
	case roi != nil && payback == nil && *roi > 0 && *roi <= 100:
		v := numparse.Round2(100 / *roi)
		payback = &v
	case payback != nil && roi == nil && *payback > 0:
		v := numparse.Round2(100 / *payback)
		roi = &v
	case payback == nil && roi == nil && a.opts.PaybackFallbackYears > 0:
		p := a.opts.PaybackFallbackYears
		r := numparse.Round2(100 / p)
		payback, roi = &p, &r
	}

	return ProjectRecord{
		ProjectID:        id,
		ProjectReference: Reference(f.Region, title, id),
		Title:            title,
		Description:      f.Description,
		Sector:           f.Sector,
		SubSector:        f.SubSector,
		BankCategory:     bankCategory(f.Sector),
		IsProjectBank:    true,
		Region:           f.Region,
		Province:         f.Province,
		IndustrialZone:   f.IndustrialZone,

		EstimatedInvestmentMAD: est,
		MinInvestmentMAD:       minInv,
		InvestmentRange:        InvestmentRangeLabel(est),
		PaybackPeriodYears:     payback,
		ROIEstimated:           roi,
		RequiredLandAreaM2:     f.RequiredLandAreaM2,
		RequiredBuildingAreaM2: f.RequiredBuildingAreaM2,

		HasPDF:          true,
		SourcePath:      f.SourcePath,
		PageNumber:      f.PageNumber,
		PublicationDate: f.PublicationDate,
		LastUpdate:      f.PublicationDate,
		Language:        Language,
		Currency:        Currency,
		SourceType:      f.SourceType,
	}
}

// Reference builds the stable project reference slug,
// REGION-TITLE-id. Unknown parts get fixed placeholders so the shape never
// degenerates.
func Reference(region, title string, id int) string {
	regionSlug := textnorm.Slug(region)
	if regionSlug == "" {
		regionSlug = "UNKNOWN"
	}
	titleSlug := textnorm.Slug(title)
	if titleSlug == "" {
		titleSlug = "PROJET"
	}
	ref := fmt.Sprintf("%s-%s-%d", regionSlug, titleSlug, id)
	if len(ref) > referenceMaxLen && len(titleSlug) > referenceTitleCap {
		ref = fmt.Sprintf("%s-%s-%d", regionSlug, titleSlug[:referenceTitleCap], id)
	}
	return ref
}

func bankCategory(sector string) string {
	if sector == "" {
		sector = "CRI"
	}
	return textnorm.CollapseSpaces(strings.ToUpper(sector))
}

// Missing lists the columns a record could not fill, for per-record
// reporting. Constant and derived columns are never listed.
func Missing(r ProjectRecord) []string {
	var out []string
	add := func(name string, absent bool) {
		if absent {
			out = append(out, name)
		}
	}
	add("project_title", r.Title == "")
	add("project_description", r.Description == "")
	add("sector", r.Sector == "")
	add("sub_sector", r.SubSector == "")
	add("region", r.Region == "")
	add("province", r.Province == "")
	add("industrial_zone", r.IndustrialZone == "")
	add("estimated_investment_mad", r.EstimatedInvestmentMAD == nil)
	add("payback_period_years", r.PaybackPeriodYears == nil)
	add("roi_estimated", r.ROIEstimated == nil)
	add("required_land_area_m2", r.RequiredLandAreaM2 == nil)
	add("required_building_area_m2", r.RequiredBuildingAreaM2 == nil)
	add("publication_date", r.PublicationDate == "")
	return out
}

func roundPtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r := numparse.Round2(*v)
	return &r
}
