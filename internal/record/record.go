// Package record defines the normalized project record and the assembler
// that derives it from extracted fields.
package record

// Fixed values shared by every record the pipeline emits.
const (
	Language = "FR"
	Currency = "MAD"
)

// Investment range labels and their thresholds in MAD.
const (
	RangeLow    = "Low"
	RangeMedium = "Medium"
	RangeHigh   = "High"

	lowMax    = 5_000_000
	mediumMax = 20_000_000
)

// ProjectRecord is one normalized investment project. Pointer fields are
// absent when the source sheet never stated them; string fields use the
// empty string for the same.
type ProjectRecord struct {
	ProjectID        int
	ProjectReference string
	Title            string
	Description      string
	Sector           string
	SubSector        string
	BankCategory     string
	IsProjectBank    bool
	Region           string
	Province         string
	IndustrialZone   string

	EstimatedInvestmentMAD *float64
	MinInvestmentMAD       *float64
	InvestmentRange        string
	PaybackPeriodYears     *float64
	ROIEstimated           *float64
	RequiredLandAreaM2     *float64
	RequiredBuildingAreaM2 *float64

	HasPDF          bool
	SourcePath      string
	PageNumber      int
	PublicationDate string
	LastUpdate      string
	Language        string
	Currency        string
	SourceType      string
}

// Columns is the persisted column order. Downstream consumers key on both
// the names and their positions, so this never changes shape between runs.
var Columns = []string{
	"project_id",
	"project_reference",
	"project_title",
	"project_description",
	"sector",
	"sub_sector",
	"project_bank_category",
	"is_project_bank",
	"region",
	"province",
	"industrial_zone",
	"estimated_investment_mad",
	"min_investment_mad",
	"investment_range",
	"payback_period_years",
	"roi_estimated",
	"required_land_area_m2",
	"required_building_area_m2",
	"has_pdf",
	"pdf_url",
	"pdf_page_number",
	"publication_date",
	"last_update",
	"language",
	"currency",
	"source_type",
}

// IDAllocator hands out sequential project ids. A fresh run starts at 1;
// a run against a persisted collection starts past its highest id.
type IDAllocator struct {
	next int
}

// NewIDAllocator returns an allocator whose first id is start.
func NewIDAllocator(start int) *IDAllocator {
	if start < 1 {
		start = 1
	}
	return &IDAllocator{next: start}
}

// Next returns the next id and advances the allocator.
func (a *IDAllocator) Next() int {
	id := a.next
	a.next++
	return id
}

// InvestmentRangeLabel classifies an investment amount in MAD. The empty
// string means the amount is unknown.
func InvestmentRangeLabel(estimatedMAD *float64) string {
	if estimatedMAD == nil {
		return ""
	}
	switch {
	case *estimatedMAD < lowMax:
		return RangeLow
	case *estimatedMAD <= mediumMax:
		return RangeMedium
	default:
		return RangeHigh
	}
}
