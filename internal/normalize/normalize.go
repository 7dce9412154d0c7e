// Package normalize implements the deterministic string canonicalization
// shared by corpus ingest and query analysis: Unicode casefold, diacritic
// folding, punctuation stripping and whitespace collapse.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// lower performs Unicode simple casefold lowercasing.
var lower = cases.Lower(language.Und)

// diacriticFold decomposes to NFD and strips combining marks (unicode.Mn),
// the standard diacritic-fold idiom.
var diacriticFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// String normalizes s: lowercase -> NFD decompose + strip combining marks ->
// replace non-alphanumeric scalars with a space -> collapse/trim whitespace.
//
// Idempotent: String(String(s)) == String(s).
func String(s string) string {
	folded := lower.String(s)
	folded, _, err := transform.String(diacriticFold, folded)
	if err != nil {
		// transform.String only errs on malformed input the Chain can't
		// recover from; fall back to the pre-fold value rather than
		// failing a build-time or query-time normalization.
		folded = lower.String(s)
	}

	var b strings.Builder
	b.Grow(len(folded))
	prevSpace := false
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			b.WriteRune(r)
			prevSpace = false
			continue
		}
		if !prevSpace {
			b.WriteByte(' ')
			prevSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}

// Words splits a normalized string into its whitespace-delimited words.
// Because String already collapses every run of non-alphanumeric scalars
// to a single space, a plain field split coincides with Unicode word
// boundaries over the normalized output.
func Words(normalized string) []string {
	if normalized == "" {
		return nil
	}
	return strings.Fields(normalized)
}
