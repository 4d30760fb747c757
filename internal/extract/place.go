package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/projbank/projbank/internal/textnorm"
)

// Region detection: ranked markers from the tables first, then an explicit
// "Région :" line. pathHint lets the document path break ties when the text
// itself never names the region.
var regionLine = regexp.MustCompile(`R[ée]gion\s*[:-]?\s*([A-Za-zÀ-ÿ\s-]+?)(?:\n|$)`)

func Region(text, pathHint string) (string, bool) {
	for _, m := range tables.regionMarkers {
		if m.re.MatchString(text) {
			return m.name, true
		}
	}
	if m := regionLine.FindStringSubmatch(text); m != nil {
		if r := strings.TrimSpace(m[1]); r != "" {
			return r, true
		}
	}
	lower := strings.ToLower(pathHint)
	for _, m := range tables.regionMarkers {
		if m.re.MatchString(lower) {
			return m.name, true
		}
	}
	return "", false
}

var (
	provinceLine = regexp.MustCompile(`(?i)province\s*[:-]?\s*([A-Za-zÀ-ÿ\s-]+?)(?:\n|\.|,|$)`)
	// El Hajeb shows up glued (ElHajeb) or as "Hajeb principale".
	elHajeb   = regexp.MustCompile(`(?i)El\s*Hajeb|Hajeb\s*principale`)
	lieuLine  = regexp.MustCompile(`(?i)Lieu\s*:\s*([^\n]+)`)
	lieuChunk = regexp.MustCompile(`\s*[;-]\s*`)
	lieuNoise = regexp.MustCompile(`[\d%]`)
)

// Province resolves the province for a block. The closed gazetteer for the
// region wins over everything; an explicit "Province :" line comes next; the
// short "Lieu :" field is a last resort, kept only when it stays under
// maxLen characters and carries no digits or percent signs.
func Province(text, region string, maxLen int) (string, bool) {
	for _, name := range ProvinceGazetteer(region) {
		re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(name) + `\b`)
		if re.MatchString(text) {
			return name, true
		}
	}
	if m := provinceLine.FindStringSubmatch(text); m != nil {
		if p := strings.TrimSpace(m[1]); p != "" {
			return p, true
		}
	}
	if elHajeb.MatchString(text) {
		return "El Hajeb", true
	}
	if m := lieuLine.FindStringSubmatch(text); m != nil {
		loc := truncateAtZoneStops(m[1])
		loc = strings.TrimSpace(lieuChunk.Split(loc, 2)[0])
		if loc != "" && len([]rune(loc)) <= maxLen && !lieuNoise.MatchString(loc) {
			return loc, true
		}
	}
	return "", false
}

// zoneStop matches the tokens that end a zone name: the next zone marker, a
// technical header, or raw-material noise the layout runs into the line.
var zoneStop = regexp.MustCompile(`(?i)\b(?:Future|ZI|ZAE|Sup|Lieu|PROGRAMME|CAPACIT[ÉE]|EMPLOIS|TRI|PBP|CA|Cha[iî]nes?|Mat[ée]riel|Equipements?|Emballages?|BESOINS|Web|Contact)\b`)

func truncateAtZoneStops(s string) string {
	if loc := zoneStop.FindStringIndex(s); loc != nil {
		return s[:loc[0]]
	}
	return s
}

// Zone markers, most specific first. Group 1 is the marker, group 2 a
// bounded name run; the run is cut separately at the first stop token since
// the patterns cannot peek ahead and the marker itself is a stop word.
var zonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(Agro-?p[oô]le)\s+([A-Za-zÀ-ÿ][A-Za-zÀ-ÿ\s-]{0,40})`),
	regexp.MustCompile(`(?i)(Future\s+ZI)\s+([A-Za-zÀ-ÿ][A-Za-zÀ-ÿ\s-]{0,40})`),
	regexp.MustCompile(`(?i)\b(ZAE)\s+([A-Za-zÀ-ÿ][A-Za-zÀ-ÿ\s-]{0,40})`),
	regexp.MustCompile(`(?i)\b(ZI)\s+([A-Za-zÀ-ÿ][A-Za-zÀ-ÿ\s-]{0,40})`),
}

var dashJoined = regexp.MustCompile(`\s-\s`)

// Zones collects industrial-zone mentions: verbatim known zones first, then
// the marker patterns, deduplicated in discovery order. Candidates carrying
// a blacklist word are equipment lists, not places, and are dropped.
func Zones(text string) []string {
	var zones []string
	seen := map[string]bool{}
	add := func(z string) {
		if z == "" || seen[z] || blacklisted(z) {
			return
		}
		// A bare "ZI X" inside an already-kept "Future ZI X" is the same
		// zone seen through a less specific marker.
		for _, kept := range zones {
			if strings.Contains(kept, z) {
				return
			}
		}
		seen[z] = true
		zones = append(zones, z)
	}

	upper := strings.ToUpper(text)
	for _, z := range tables.knownZones {
		if strings.Contains(upper, z) {
			add(z)
		}
	}
	// The name run stops at a newline or semicolon before trimming.
	lines := strings.FieldsFunc(text, func(r rune) bool { return r == '\n' || r == ';' })
	for _, re := range zonePatterns {
		for _, line := range lines {
			for _, m := range re.FindAllStringSubmatch(line, -1) {
				add(trimZone(m[1], m[2]))
			}
		}
	}
	return zones
}

// JoinZones renders a zone set the way the dataset stores it.
func JoinZones(zones []string) string {
	return strings.Join(zones, "; ")
}

func blacklisted(zone string) bool {
	lower := strings.ToLower(zone)
	for _, w := range tables.zoneBlacklist {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// trimZone normalizes a raw zone match: trailing noise after the name is cut
// at the first stop token, edges are stripped of punctuation, and forms
// without an embedded " - " are capped at marker plus two name tokens.
func trimZone(marker, name string) string {
	if i := zoneStop.FindStringIndex(name); i != nil {
		name = name[:i[0]]
	}
	if strings.TrimSpace(name) == "" {
		return ""
	}
	z := textnorm.CollapseSpaces(marker + " " + name)
	z = strings.Trim(z, " -.,;:/\\")
	if z == "" || dashJoined.MatchString(z) {
		return z
	}

	tokens := strings.Fields(z)
	low := make([]string, len(tokens))
	for i, t := range tokens {
		low[i] = strings.ToLower(t)
	}
	switch {
	case len(tokens) >= 3 && low[0] == "future" && low[1] == "zi":
		return strings.Join(tokens[:3], " ")
	case len(tokens) >= 3 && (low[0] == "zi" || low[0] == "zae" || strings.HasPrefix(low[0], "agro")):
		return strings.Join(tokens[:3], " ")
	}
	return z
}

var (
	coverDMY    = regexp.MustCompile(`(\d{1,2})[/-](\d{1,2})[/-](\d{4})`)
	coverYMD    = regexp.MustCompile(`(\d{4})[/-](\d{1,2})[/-](\d{1,2})`)
	coverSpaced = regexp.MustCompile(`\b(\d{1,2})\s+(\d{1,2})\s+(\d{4})\b`)
	nameDMY8    = regexp.MustCompile(`(\d{2})(\d{2})(\d{4})\D`)
	nameDMY6    = regexp.MustCompile(`(\d{2})(\d{2})(\d{2})\D`)
)

// PublicationDate derives the catalog's publication date, ISO formatted. The
// cover page is tried first (dd/mm/yyyy, then yyyy/mm/dd, then a spaced
// dd mm yyyy), then a digit run in the filename (ddmmyyyy or ddmmyy).
func PublicationDate(cover, filename string) (string, bool) {
	if m := coverDMY.FindStringSubmatch(cover); m != nil {
		return isoDate(m[3], m[2], m[1]), true
	}
	if m := coverYMD.FindStringSubmatch(cover); m != nil {
		return isoDate(m[1], m[2], m[3]), true
	}
	if m := coverSpaced.FindStringSubmatch(cover); m != nil {
		return isoDate(m[3], m[2], m[1]), true
	}
	if m := nameDMY8.FindStringSubmatch(filename + " "); m != nil {
		return isoDate(m[3], m[2], m[1]), true
	}
	if m := nameDMY6.FindStringSubmatch(filename + " "); m != nil {
		return isoDate("20"+m[3], m[2], m[1]), true
	}
	return "", false
}

func isoDate(y, m, d string) string {
	mi, _ := strconv.Atoi(m)
	di, _ := strconv.Atoi(d)
	return fmt.Sprintf("%s-%02d-%02d", y, mi, di)
}
