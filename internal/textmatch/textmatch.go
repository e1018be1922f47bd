// Package textmatch provides the case-insensitive and phonetic comparisons
// shared by facility search, contact linking, and resident status.
package textmatch

import (
	"strings"
	"unicode"

	"github.com/antzucaro/matchr"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// EmptyCode is the phonetic code of empty or blank input.
const EmptyCode = "0000"

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// ContainsIgnoreCase reports whether the lower-cased haystack contains the
// lower-cased needle. An empty needle always matches.
func ContainsIgnoreCase(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// Fold lower-cases s and strips combining marks ("Café" -> "cafe").
func Fold(s string) string {
	out, _, err := transform.String(stripMarks, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}

// PhoneticCode returns the Soundex code of text taken as a single unit, so a
// multi-word address yields one code. Blank input yields EmptyCode. Invalid
// UTF-8 bytes are dropped first.
func PhoneticCode(text string) string {
	folded := strings.TrimSpace(Fold(strings.ToValidUTF8(text, "")))
	if folded == "" {
		return EmptyCode
	}
	return matchr.Soundex(folded)
}

// AddressesMatch reports whether two addresses share a phonetic code.
func AddressesMatch(a, b string) bool {
	return PhoneticCode(a) == PhoneticCode(b)
}
