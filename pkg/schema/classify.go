package schema

import (
	"sort"
	"strings"
)

// DocumentKind is the semantic role of a loaded export.
type DocumentKind string

const (
	KindRoster           DocumentKind = "roster"
	KindAttendance       DocumentKind = "mytime"
	KindShiftMarketplace DocumentKind = "vetvto"
	KindShiftSwap        DocumentKind = "swaps"
	KindUnknown          DocumentKind = "unknown"
)

// Classify assigns a document kind from column names alone. Rules are
// evaluated in order and the first match wins:
//  1. a marketplace acceptance field ("opportunity." / "acceptedcount") -> vetvto
//  2. a "swap" column, or "date to skip" in the joined names -> swaps
//  3. a presence column -> roster with two or more department columns, else mytime
//  4. a "department" column -> roster
//  5. otherwise unknown
func Classify(columns []string) DocumentKind {
	if len(columns) == 0 {
		return KindUnknown
	}

	cols := make([]string, 0, len(columns))
	seen := make(map[string]bool, len(columns))
	for _, c := range columns {
		lc := strings.ToLower(c)
		if seen[lc] {
			continue
		}
		seen[lc] = true
		cols = append(cols, lc)
	}

	if anyContains(cols, "opportunity.", "acceptedcount") {
		return KindShiftMarketplace
	}
	if anyContains(cols, "swap") || strings.Contains(strings.Join(sortedCopy(cols), " "), "date to skip") {
		return KindShiftSwap
	}
	if anyContains(cols, "on premise", "onprem", "present") {
		deptish := 0
		for _, c := range cols {
			if strings.Contains(c, "dept") || strings.Contains(c, "department") {
				deptish++
			}
		}
		if deptish >= 2 {
			return KindRoster
		}
		return KindAttendance
	}
	if anyContains(cols, "department") {
		return KindRoster
	}
	return KindUnknown
}

func anyContains(cols []string, subs ...string) bool {
	for _, c := range cols {
		for _, s := range subs {
			if strings.Contains(c, s) {
				return true
			}
		}
	}
	return false
}

// sortedCopy orders the names so joined-text checks do not depend on column order.
func sortedCopy(cols []string) []string {
	out := append([]string(nil), cols...)
	sort.Strings(out)
	return out
}
