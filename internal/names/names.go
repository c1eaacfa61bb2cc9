// Package names canonicalizes driver names so that roster entries and
// document file names can be compared despite accents, case, shift
// annotations and numeric disambiguators.
package names

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	reParenthetical = regexp.MustCompile(`\s*\(.*?\)`)
	reDigits        = regexp.MustCompile(`\d+`)
)

// Normalize folds s to NFKD, drops combining marks, upper-cases and trims.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToUpper(out)
}

// StripDigits removes every decimal digit run.
func StripDigits(s string) string {
	return reDigits.ReplaceAllString(s, "")
}

// StripParenthetical removes every "(...)" group together with the whitespace
// in front of it and trims the result.
func StripParenthetical(s string) string {
	return strings.TrimSpace(reParenthetical.ReplaceAllString(s, ""))
}

// CleanDocumentName turns a document file name into the display key used in
// logs and summaries: extension removed, annotations removed, upper-cased.
func CleanDocumentName(filename string) string {
	base := filename
	if i := strings.LastIndex(base, "."); i > 0 && strings.EqualFold(base[i:], ".pdf") {
		base = base[:i]
	}
	return strings.ToUpper(StripParenthetical(base))
}

// MatchKey is the form compared during driver matching: annotations, digits
// and diacritics removed. Inner whitespace is preserved so token checks work.
func MatchKey(s string) string {
	return Normalize(StripDigits(StripParenthetical(s)))
}
