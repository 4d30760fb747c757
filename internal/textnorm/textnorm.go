// Package textnorm holds the deterministic string normalizations shared by
// the extraction pipeline: accent stripping, reference slugs, whitespace
// cleanup and the structural repairs applied to text lifted out of PDFs.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	wsRun        = regexp.MustCompile(`\s+`)
	slugStrip    = regexp.MustCompile(`[^\w\s-]`)
	commaNoSpace = regexp.MustCompile(`(?i),([a-zàâäéèêëïîôùûüç])`)
	// elision excludes l and d so "l'ail" and "d'ail" stay glued
	elision    = regexp.MustCompile(`(?i)([a-ce-km-zàâäéèêëïîôùûüç])(['’])([a-zàâäéèêëïîôùûüç])`)
	dotNoSpace = regexp.MustCompile(`(?i)\.([a-zàâäéèêëïîôùûüç])`)
	parenClose = regexp.MustCompile(`(?i)\)([a-zàâäéèêëïîôùûüç])`)
	parenOpen  = regexp.MustCompile(`(?i)([a-zàâäéèêëïîôùûüç])\(([A-Z])`)
)

// stripAccents removes combining marks after NFD decomposition.
var stripAccents = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// RemoveAccents returns s with diacritics removed ("Fès" -> "Fes").
func RemoveAccents(s string) string {
	out, _, err := transform.String(stripAccents, s)
	if err != nil {
		return s
	}
	return out
}

// CollapseSpaces trims s and collapses whitespace runs to single spaces.
func CollapseSpaces(s string) string {
	return strings.TrimSpace(wsRun.ReplaceAllString(s, " "))
}

// Slug normalizes s for use inside a project reference: accents removed,
// punctuation other than underscore and hyphen dropped, whitespace runs
// replaced by single hyphens, upper-cased.
func Slug(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = RemoveAccents(s)
	s = slugStrip.ReplaceAllString(s, "")
	s = wsRun.ReplaceAllString(strings.TrimSpace(s), "-")
	s = strings.Trim(s, "-")
	return strings.ToUpper(s)
}

// DedupeTitle collapses a title extracted twice in a row ("X X" with the
// same word block repeated) down to one occurrence.
func DedupeTitle(title string) string {
	t := CollapseSpaces(title)
	if t == "" {
		return t
	}
	words := strings.Fields(t)
	if len(words) >= 6 && len(words)%2 == 0 {
		half := len(words) / 2
		if equalFields(words[:half], words[half:]) {
			return strings.Join(words[:half], " ")
		}
	}
	return t
}

// FixMissingSpaces reinserts spaces lost during PDF text extraction using
// structural rules only, no word list:
//   - ",letter" -> ", letter"
//   - elision glued to the previous word: "quel'ail" -> "que l'ail"
//     (l'/d' themselves stay intact)
//   - ".letter" -> ". letter", ")letter" -> ") letter", "letter(" -> "letter ("
func FixMissingSpaces(block string) string {
	if len(block) < 2 {
		return block
	}
	block = commaNoSpace.ReplaceAllString(block, ", $1")
	block = elision.ReplaceAllString(block, "$1 $2$3")
	block = dotNoSpace.ReplaceAllString(block, ". $1")
	block = parenClose.ReplaceAllString(block, ") $1")
	block = parenOpen.ReplaceAllString(block, "$1 ($2")
	return block
}

func equalFields(a, b []string) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
