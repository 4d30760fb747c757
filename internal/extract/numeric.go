package extract

import (
	"regexp"

	"github.com/projbank/projbank/internal/numparse"
)

// numRule is one candidate pattern for a numeric field. Group 1 is the
// value (or range low), group 2 when present the range high. convert maps
// the collapsed value to canonical units.
type numRule struct {
	re      *regexp.Regexp
	convert func(v float64) float64
}

func (r numRule) apply(text string) (float64, bool) {
	m := r.re.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	v, err := numparse.ParseNumber(m[1])
	if err != nil {
		return 0, false
	}
	if len(m) > 2 && m[2] != "" {
		hi, err := numparse.ParseNumber(m[2])
		if err != nil {
			return 0, false
		}
		v = numparse.Mean(v, &hi)
	}
	if r.convert != nil {
		v = r.convert(v)
	}
	return v, true
}

func firstNum(text string, rules []numRule) (float64, bool) {
	for _, r := range rules {
		if v, ok := r.apply(text); ok {
			return v, true
		}
	}
	return 0, false
}

func millions(v float64) float64  { return v * 1_000_000 }
func thousands(v float64) float64 { return v * 1_000 }
func hectares(v float64) float64  { return v * 10_000 }

// millionsGuarded keeps values that are already in base dirhams: a labeled
// "MDH" amount of 1000 or more is a layout artifact carrying the full
// figure, not millions of it.
func millionsGuarded(v float64) float64 {
	if v < 1000 {
		return v * 1_000_000
	}
	return v
}

const num = `(\d+(?:[.,]\d+)?)`
const loose = `([\d\s,\.]+?)`

// Investment patterns: the labeled "Investissement potentiel" forms first,
// then the bare unit-suffixed forms in decreasing unit specificity.
var investmentRules = []numRule{
	{re: regexp.MustCompile(`(?i)Investissement\s*potentiel\s*\([^)]*\)\s*[:-]\s*` + loose + `\s*MDH`), convert: millionsGuarded},
	{re: regexp.MustCompile(`(?i)Investissement\s*potentiel\s*\([^)]*\)\s*[:-]\s*` + loose + `\s*DH\b`)},
	{re: regexp.MustCompile(`(?i)` + num + `\s*(?:-|à)\s*` + num + `\s*(?:Mns?\s*)?MDHS?\b`), convert: millions},
	{re: regexp.MustCompile(`(?i)` + num + `\s*(?:-|à)\s*` + num + `\s*KDHS?\b`), convert: thousands},
	{re: regexp.MustCompile(`(?i)\b` + num + `\s*KDHS?\b`), convert: thousands},
	{re: regexp.MustCompile(`(?i)(?:INVESTISSEMENT|D['’]INVESTISSEMENT)\s*[:-]?\s*` + num + `\s*(?:Mns?\s*)?MDHS?\b`), convert: millions},
	{re: regexp.MustCompile(`(?i)` + num + `\s*(?:Mns?\s*)?MDHS?\b`), convert: millions},
	{re: regexp.MustCompile(`(?i)-\s*([\d\s.,]+?)\s*DHS?\s*-\s*CA\b`)},
	{re: regexp.MustCompile(`(?i)(?:INVESTISSEMENT|D['’]INVESTISSEMENT)\b[^\n]*?([\d\s.,]{3,}?)\s*DHS?\b`)},
	{re: regexp.MustCompile(`(?i)\b([\d][\d\s.,]{2,}?)\s*DHS?\b`)},
}

// Investment extracts the estimated investment in MAD.
func Investment(text string) (float64, bool) {
	return firstNum(text, investmentRules)
}

// Payback patterns. The last rule accepts the mislabeled "ROI : 4-5 ans"
// construct: the unit is years, so it is a payback period whatever the
// label says.
var paybackRules = []numRule{
	{re: regexp.MustCompile(`(?i)Retour\s+sur\s+investissement\s*\([^)]*\)\s*[:-]\s*(\d+)\s*(?:à|-)\s*(\d+)\s*ans`)},
	{re: regexp.MustCompile(`(?i)Retour\s+sur\s+investissement\s*\([^)]*\)\s*[:-]\s*(\d+)\s*ans`)},
	{re: regexp.MustCompile(`(?i)PBP\s*[:-]?\s*` + num + `\s*(?:-|à)?\s*(\d+(?:[.,]\d+)?)?\s*ans`)},
	{re: regexp.MustCompile(`(?i)\bROI\b\s*[:-]?\s*` + num + `\s*(?:-|à)?\s*(\d+(?:[.,]\d+)?)?\s*ans`)},
}

// Payback extracts the payback period in years.
func Payback(text string) (float64, bool) {
	return firstNum(text, paybackRules)
}

var roiRules = []numRule{
	{re: regexp.MustCompile(`(?i)TRI\s*(?:moyen)?\s*[:-]?\s*` + num + `\s*(?:-|à)\s*` + num + `\s*%?`)},
	{re: regexp.MustCompile(`(?i)TRI\s*(?:moyen)?\s*[:-]?\s*` + num + `\s*%?`)},
}

// ROI extracts the internal rate of return as a percentage.
func ROI(text string) (float64, bool) {
	return firstNum(text, roiRules)
}

// Land area patterns: the fully labeled "Superficie souhaitée du terrain"
// forms first, then bare "terrain", then the compact "Sup" label, m² before
// hectares at each tier.
var landAreaRules = []numRule{
	{re: regexp.MustCompile(`(?i)Superficie\s+souhait[ée]e\s+du\s+terrain\s*[:-]\s*` + loose + `\s*m\s*[²2]`)},
	{re: regexp.MustCompile(`(?i)Superficie\s+souhait[ée]e\s+du\s+terrain\s*[:-]\s*` + loose + `\s*Ha\b`), convert: hectares},
	{re: regexp.MustCompile(`(?i)terrain\s*[:-]?\s*` + loose + `\s*m\s*[²2]`)},
	{re: regexp.MustCompile(`(?i)terrain\s*[:-]?\s*` + loose + `\s*Ha\b`), convert: hectares},
	{re: regexp.MustCompile(`(?i)Sup\s*[:-]?\s*` + num + `(?:\s*m\s*[²2])?\s*(?:-|à)\s*` + num + `(?:\s*m\s*[²2])\b`)},
	{re: regexp.MustCompile(`(?i)Sup\s*[:-]?\s*` + num + `\s*m\s*[²2]`)},
	{re: regexp.MustCompile(`(?i)Sup\s*[:-]?\s*` + num + `(?:\s*(?:-|à)\s*` + num + `)?\s*Ha\b`), convert: hectares},
	{re: regexp.MustCompile(`(?i)Superficie\s+souhait[ée]e\s*` + num + `(?:\s*(?:-|à)\s*` + num + `)?\s*m\s*[²2]`)},
}

// LandArea extracts the required land surface in m².
func LandArea(text string) (float64, bool) {
	return firstNum(text, landAreaRules)
}

var buildingAreaRules = []numRule{
	{re: regexp.MustCompile(`(?i)constructions?\s+de\s+([\d\s]+?)\s*m\s*[²2]`)},
}

// BuildingArea extracts the required building surface in m².
func BuildingArea(text string) (float64, bool) {
	return firstNum(text, buildingAreaRules)
}
