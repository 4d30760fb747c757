// Package extract recognizes domain fields inside a project's text block.
// Every field is backed by an ordered list of candidate patterns tried in
// sequence, first match wins; a field that matches nothing is reported
// absent, never an error. The gazetteers, OCR repairs and stop-token lists
// the rules consult live in tables.yaml.
package extract

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/projbank/projbank/internal/textnorm"
)

// stringRule is one candidate pattern for a text field. clean, when set,
// post-processes the captured group.
type stringRule struct {
	re    *regexp.Regexp
	group int
	clean func(string) string
}

func (r stringRule) apply(text string) (string, bool) {
	m := r.re.FindStringSubmatch(text)
	if m == nil || len(m) <= r.group {
		return "", false
	}
	v := strings.TrimSpace(m[r.group])
	if r.clean != nil {
		v = r.clean(v)
	}
	v = textnorm.CollapseSpaces(v)
	if v == "" {
		return "", false
	}
	return v, true
}

func firstString(text string, rules []stringRule) (string, bool) {
	for _, r := range rules {
		if v, ok := r.apply(text); ok {
			return v, true
		}
	}
	return "", false
}

var contactTail = regexp.MustCompile(`(?i)\s+Contact\s*:.*$`)

func stripContact(s string) string {
	return strings.TrimSpace(contactTail.ReplaceAllString(s, ""))
}

// Title patterns, most specific first: numbered header with a colon, bare
// "PROJET :" header, numbered header with the title run on (second-page
// repeats without a colon).
var titleRules = []stringRule{
	{
		re:    regexp.MustCompile(`(?is)PROJET\s+N[°\s]*[A-Za-z\-\s]*\d+\s*[:-]?\s*(.+?)(?:FILI[ÈE]RE|Contact\s*:|$)`),
		group: 1,
		clean: stripContact,
	},
	{
		re:    regexp.MustCompile(`(?is)PROJET\s*[:-]\s*(.+?)(?:MARCH[ÉE]|FONCIER|$)`),
		group: 1,
		clean: stripContact,
	},
	{
		re:    regexp.MustCompile(`(?is)PROJET\s+N[°\s]*[A-Za-z\-\s]*\d+\s+([A-Za-zÀ-ÿ\s-]+?)(?:MARCH[ÉE]|$)`),
		group: 1,
	},
}

// Title extracts the project title from a block. Matches shorter than three
// characters are treated as extraction noise and rejected.
func Title(text string) (string, bool) {
	for _, r := range titleRules {
		if v, ok := r.apply(text); ok && len(v) > 2 {
			return textnorm.DedupeTitle(v), true
		}
	}
	return "", false
}

var projetLine = regexp.MustCompile(`(?i)Projet\s*N`)

// TitleFromLines finds the title on the line following a "Projet N°"
// header, the layout one-sheet documents use.
func TitleFromLines(text string) (string, bool) {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if !projetLine.MatchString(line) || i+1 >= len(lines) {
			continue
		}
		candidate := strings.TrimSpace(lines[i+1])
		if len(candidate) > 3 && !strings.Contains(candidate, "Secteur") {
			return textnorm.DedupeTitle(candidate), true
		}
	}
	return "", false
}

// TitleFromFilename cleans a document filename into a last-resort title.
func TitleFromFilename(name string) string {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	return textnorm.CollapseSpaces(strings.ReplaceAll(base, "-", " "))
}

var sectorRules = []stringRule{
	{
		re:    regexp.MustCompile(`(?i)FILI[ÈE]RE\s*[:-]\s*([^\n]+)`),
		group: 1,
		clean: cutLayoutNoise,
	},
	{
		re:    regexp.MustCompile(`(?is)Secteur\s*économique\s*[:-]\s*(.+?)(?:Filières|ACTIVIT[ÉE]|Analy[Ss]e|$)`),
		group: 1,
		clean: stripLabelPrefix,
	},
}

// Sector extracts the sector line, label prefixes stripped.
func Sector(text string) (string, bool) {
	return firstString(text, sectorRules)
}

// Filename keywords to sector labels, checked in order.
var filenameSectors = []struct{ key, sector string }{
	{"agro-alimentaire", "AGROALIMENTAIRE"},
	{"agroalimentaire", "AGROALIMENTAIRE"},
	{"agriculture", "AGRICULTURE"},
	{"tourisme", "TOURISME"},
	{"artisanat", "ARTISANAT"},
	{"industrie", "INDUSTRIE"},
	{"nouvelles-technologies", "NOUVELLES TECHNOLOGIES"},
	{"technologies", "NOUVELLES TECHNOLOGIES"},
}

// SectorFromFilename guesses the sector from the document filename.
func SectorFromFilename(name string) string {
	lower := strings.ToLower(filepath.Base(name))
	for _, fs := range filenameSectors {
		if strings.Contains(lower, fs.key) {
			return fs.sector
		}
	}
	return "CRI"
}

var (
	subSectorBlock = regexp.MustCompile(`(?is)SOUS-FILI[ÈE]RE\s*[:-]\s*(.+?)(?:DESCRIPTION|INDICATEURS|$)`)
	subSectorLine  = regexp.MustCompile(`(?is)Filières\s*de\s*production\s*[:-]\s*(.+?)(?:Secteur|ACTIVIT[ÉE]|Analy[Ss]e|$)`)
	contactLine    = regexp.MustCompile(`(?i)^(Contact|Email|T[ée]l)\s*:`)
	emailNoise     = regexp.MustCompile(`(?i)\s+Email\s*:\s*\S+@\S+`)
	telNoise       = regexp.MustCompile(`(?i)\s+T[ée]l\s*:?\s*\+?[\d\s-]+`)
	contactNoise   = regexp.MustCompile(`(?i)\s+Contact\s*:.*`)
	prereqTail     = regexp.MustCompile(`(?i)\s*PR[ÉE]REQUIS\s+DU\s+PROJET\s*$`)
)

// SubSector extracts the sub-sector. The capture runs to the next section
// so a value wrapped onto the following line is kept; contact lines mixed
// in by the column layout are scrubbed out.
func SubSector(text string) (string, bool) {
	if m := subSectorBlock.FindStringSubmatch(text); m != nil {
		var kept []string
		for _, line := range strings.Split(m[1], "\n") {
			line = strings.TrimSpace(line)
			if line == "" || contactLine.MatchString(line) {
				continue
			}
			kept = append(kept, line)
		}
		s := strings.Join(kept, " ")
		s = emailNoise.ReplaceAllString(s, "")
		s = telNoise.ReplaceAllString(s, "")
		s = contactNoise.ReplaceAllString(s, "")
		s = prereqTail.ReplaceAllString(s, "")
		if s = textnorm.CollapseSpaces(s); s != "" {
			return s, true
		}
		return "", false
	}
	if m := subSectorLine.FindStringSubmatch(text); m != nil {
		if s := textnorm.CollapseSpaces(stripLabelPrefix(m[1])); s != "" {
			return s, true
		}
	}
	return "", false
}

var labelPrefix = regexp.MustCompile(`(?i)^(?:Secteur\s*économique|Filières\s*de\s*production)\s*:\s*`)

func stripLabelPrefix(s string) string {
	return strings.TrimSpace(labelPrefix.ReplaceAllString(textnorm.CollapseSpaces(s), ""))
}

// cutLayoutNoise cuts a captured line at the first contact artifact the
// two-column layout bleeds into it.
func cutLayoutNoise(s string) string {
	for _, sep := range []string{"Contact", "Email", "Tél"} {
		if i := strings.Index(s, sep); i >= 0 {
			s = s[:i]
		}
	}
	return strings.TrimSpace(s)
}

var (
	descSection = regexp.MustCompile(`(?is)(?:ACTIVIT[ÉE]\s*-\s*)?DESCRIPTION(?:\s*DU\s*PROJET)?\s*(.+)`)
	descNarr    = regexp.MustCompile(`(?is)(?:^|\n)\s*(?:Un|Une|Le|La|L['’])\s+.+`)
	prereqHead  = regexp.MustCompile(`(?i)^PR.REQUIS\s+DU\s+PROJET\s*`)
)

// Description extracts the project description: the DESCRIPTION section
// truncated at the first technical header from the stop list, else a
// bounded narrative paragraph. Blocks shorter than 20 characters are
// rejected as noise.
func Description(text string) (string, bool) {
	if m := descSection.FindStringSubmatch(text); m != nil {
		if d, ok := cleanDescription(m[1]); ok {
			return d, true
		}
	}
	if m := descNarr.FindString(text); m != "" {
		if d, ok := cleanDescription(m); ok {
			return d, true
		}
	}
	return "", false
}

// DescriptionLayout prefers the left column when the layout split is
// available, falling back to the mixed full text.
func DescriptionLayout(left, full string) (string, bool) {
	if left != "" {
		if d, ok := Description(left); ok {
			return d, true
		}
	}
	return Description(full)
}

func cleanDescription(block string) (string, bool) {
	block = truncateAtStops(block)
	block = prereqHead.ReplaceAllString(strings.TrimSpace(block), "")
	block = stripContact(block)
	block = textnorm.CollapseSpaces(block)
	block = textnorm.FixMissingSpaces(block)
	if len(block) < 20 {
		return "", false
	}
	return block, true
}

// truncateAtStops cuts the block at the earliest technical-section header.
func truncateAtStops(block string) string {
	if loc := tables.stopRe.FindStringIndex(block); loc != nil {
		return block[:loc[0]]
	}
	return block
}
