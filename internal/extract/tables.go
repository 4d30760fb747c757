package extract

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed tables.yaml
var tablesYAML []byte

// rawTables mirrors tables.yaml.
type rawTables struct {
	OCRRepairs []struct {
		Pattern string `yaml:"pattern"`
		Replace string `yaml:"replace"`
	} `yaml:"ocr_repairs"`
	Provinces     map[string][]string `yaml:"provinces"`
	RegionMarkers []struct {
		Pattern string `yaml:"pattern"`
		Name    string `yaml:"name"`
	} `yaml:"region_markers"`
	KnownZones       []string `yaml:"known_zones"`
	ZoneBlacklist    []string `yaml:"zone_blacklist"`
	DescriptionStops []string `yaml:"description_stops"`
}

type repair struct {
	re      *regexp.Regexp
	replace string
}

type regionMarker struct {
	re   *regexp.Regexp
	name string
}

// ruleTables holds the compiled data tables.
type ruleTables struct {
	repairs          []repair
	provinces        map[string][]string
	regionMarkers    []regionMarker
	knownZones       []string
	zoneBlacklist    []string
	descriptionStops []string
	// stopRe matches any description stop token on a word boundary.
	stopRe *regexp.Regexp
}

var tables = mustLoadTables()

func mustLoadTables() *ruleTables {
	t, err := loadTables(tablesYAML)
	if err != nil {
		panic(fmt.Sprintf("extract: bad embedded tables: %v", err))
	}
	return t
}

func loadTables(data []byte) (*ruleTables, error) {
	var raw rawTables
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse tables: %w", err)
	}

	t := &ruleTables{
		provinces:        raw.Provinces,
		knownZones:       raw.KnownZones,
		zoneBlacklist:    raw.ZoneBlacklist,
		descriptionStops: raw.DescriptionStops,
	}
	for _, r := range raw.OCRRepairs {
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("compile ocr repair %q: %w", r.Pattern, err)
		}
		t.repairs = append(t.repairs, repair{re: re, replace: r.Replace})
	}
	for _, m := range raw.RegionMarkers {
		re, err := regexp.Compile(m.Pattern)
		if err != nil {
			return nil, fmt.Errorf("compile region marker %q: %w", m.Pattern, err)
		}
		t.regionMarkers = append(t.regionMarkers, regionMarker{re: re, name: m.Name})
	}
	t.stopRe, _ = regexp.Compile(stopPattern(raw.DescriptionStops))
	if t.stopRe == nil {
		return nil, fmt.Errorf("compile description stops")
	}
	return t, nil
}

// stopPattern builds one alternation over the stop tokens, each anchored on
// a word boundary where it starts or ends with a word character, with
// flexible whitespace inside multi-word tokens.
func stopPattern(stops []string) string {
	alts := make([]string, 0, len(stops))
	for _, s := range stops {
		fields := strings.Fields(s)
		for i, f := range fields {
			fields[i] = regexp.QuoteMeta(f)
		}
		p := strings.Join(fields, `\s*`)
		if len(s) > 0 && isWordByte(s[0]) {
			p = `\b` + p
		}
		if len(s) > 0 && isWordByte(s[len(s)-1]) {
			p += `\b`
		}
		alts = append(alts, p)
	}
	return "(?:" + strings.Join(alts, "|") + ")"
}

func isWordByte(b byte) bool {
	return b == '_' ||
		('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') || ('0' <= b && b <= '9')
}

// ProvinceGazetteer returns the closed province list for a region, or nil
// when the region has no gazetteer.
func ProvinceGazetteer(region string) []string {
	return tables.provinces[region]
}

// RepairOCR applies the fixed substitution table to a text block. The table
// only rewrites corrupted keyword spellings and typographic variants, so
// applying it twice is a no-op.
func RepairOCR(text string) string {
	for _, r := range tables.repairs {
		text = r.re.ReplaceAllString(text, r.replace)
	}
	return text
}
