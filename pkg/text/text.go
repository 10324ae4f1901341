// Package text normalizes user-facing Portuguese strings: diacritic folding
// for keys and filenames, and whitespace cleanup for form input.
package text

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	nonSlug       = regexp.MustCompile(`[^a-z0-9-]`)
)

// Fold removes diacritics: NFD decomposition followed by dropping combining
// marks. "Ônibus Uberlândia" becomes "Onibus Uberlandia".
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// FoldLower folds diacritics and lower-cases s for case-insensitive matching.
func FoldLower(s string) string {
	return strings.ToLower(Fold(s))
}

// Slug turns a display name into a filename stem: folded, lower-cased,
// whitespace collapsed to "-", everything outside [a-z0-9-] dropped.
// Returns "" when nothing survives.
func Slug(s string) string {
	s = FoldLower(strings.TrimSpace(s))
	s = whitespaceRun.ReplaceAllString(s, "-")
	return nonSlug.ReplaceAllString(s, "")
}

// CollapseSpaces trims s and reduces inner whitespace runs to a single space.
func CollapseSpaces(s string) string {
	return whitespaceRun.ReplaceAllString(strings.TrimSpace(s), " ")
}

// TrimStrings trims every referenced string in place.
func TrimStrings(ss ...*string) {
	for _, s := range ss {
		*s = strings.TrimSpace(*s)
	}
}

// DedupeAndTrim drops blanks and duplicates from values, trimming each
// element. Order is preserved.
func DedupeAndTrim(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; !ok {
			seen[trimmed] = struct{}{}
			result = append(result, trimmed)
		}
	}
	return result
}
