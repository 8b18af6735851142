package schema

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// presentMarkers is the fixed vocabulary of tokens meaning "on premise".
// Tokens are compared after CanonicalToken.
var presentMarkers = map[string]bool{
	"X":          true,
	"Y":          true,
	"YES":        true,
	"TRUE":       true,
	"1":          true,
	"ON PREMISE": true,
	"PRESENT":    true,
	"YELLOW":     true,
	"GREEN":      true,
}

// approvedStatuses are the exact approval words for swaps and strict marketplace mode.
var approvedStatuses = map[string]bool{
	"APPROVED":  true,
	"COMPLETED": true,
	"ACCEPTED":  true,
}

// NormalizeID canonicalizes a raw identifier into a join key:
//   1. Trim surrounding whitespace
//   2. Remove zero-width spaces
//   3. Remove every internal space
//   4. Strip one trailing ".0" left by float serialization of integer ids
//
// An empty result means the row has no identity.
func NormalizeID(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "\u200b", "")
	s = strings.ReplaceAll(s, " ", "")
	return strings.TrimSuffix(s, ".0")
}

// CanonicalToken upper-cases a status token and folds hyphen, underscore and
// whitespace runs to a single space, so "on-premise" reads as "ON PREMISE".
func CanonicalToken(raw string) string {
	s := strings.ToUpper(strings.TrimSpace(raw))
	s = strings.NewReplacer("-", " ", "_", " ").Replace(s)
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// IsPresentToken reports whether a presence token means physically on premise.
func IsPresentToken(raw string) bool {
	return presentMarkers[CanonicalToken(raw)]
}

// IsApprovedStatus reports whether a status belongs to the approval vocabulary:
// an exact approval word, or any status containing "APPROV" or "ACCEPT".
func IsApprovedStatus(raw string) bool {
	st := strings.ToUpper(strings.TrimSpace(raw))
	return approvedStatuses[st] || strings.Contains(st, "APPROV") || strings.Contains(st, "ACCEPT")
}

// DisplayName joins first and last name parts, composing Unicode and
// collapsing whitespace.
func DisplayName(first, last string) string {
	s := norm.NFC.String(first + " " + last)
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}
