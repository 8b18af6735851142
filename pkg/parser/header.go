package parser

import (
	"strings"
)

// DefaultHeaderScanRows bounds how far into a file Repair looks for the real header.
const DefaultHeaderScanRows = 30

var (
	identityTokens = []string{"person id", "employee id"}
	presenceTokens = []string{"premise", "present"}
	broadIdentity  = []string{"person", "employee"}
	bannerTokens   = []string{"hyperfind", "timeframe"}
)

// HasBannerSignature reports whether the table's header (or, for headerless
// tables, its first row) carries a report banner such as "Hyperfind: Ad Hoc"
// or "Timeframe: Today" instead of column names.
func HasBannerSignature(t *Table) bool {
	joined := strings.ToLower(strings.Join(t.HeaderCells(), "|"))
	return containsAny(joined, bannerTokens)
}

// Repair relocates the header of an export whose first rows are a banner.
//
// Tables whose columns already name an identity and a presence field, and
// tables repaired before, are returned as is. Otherwise the first scanRows
// rows of the source grid are searched for a row mentioning both an identity
// ("person id"/"employee id") and a presence ("premise"/"present") token,
// falling back to the first row mentioning "person" or "employee". That row
// becomes the header; earlier rows are discarded and blank or placeholder
// columns are dropped. Without a candidate row the input is returned unchanged.
func Repair(t *Table, scanRows int) *Table {
	if t.Empty() || t.Repaired || looksRepaired(t.Columns) {
		return t
	}
	if scanRows <= 0 {
		scanRows = DefaultHeaderScanRows
	}

	limit := scanRows
	if len(t.grid) < limit {
		limit = len(t.grid)
	}

	headerRow := -1
	for i := 0; i < limit; i++ {
		joined := joinLower(t.grid[i])
		if containsAny(joined, identityTokens) && containsAny(joined, presenceTokens) {
			headerRow = i
			break
		}
	}
	if headerRow < 0 {
		for i := 0; i < limit; i++ {
			if containsAny(joinLower(t.grid[i]), broadIdentity) {
				headerRow = i
				break
			}
		}
	}
	if headerRow < 0 {
		return t
	}

	framed, err := LoadWithHeaderRow(t, headerRow)
	if err != nil {
		return t
	}

	out := dropPlaceholderColumns(framed)
	out.Warnings = append(append([]ParseWarning(nil), t.Warnings...), framed.Warnings...)
	out.Repaired = true
	return out
}

func looksRepaired(columns []string) bool {
	hasID, hasPresence := false, false
	for _, c := range columns {
		lc := strings.ToLower(c)
		if containsAny(lc, identityTokens) {
			hasID = true
		}
		if containsAny(lc, presenceTokens) {
			hasPresence = true
		}
	}
	return hasID && hasPresence
}

func dropPlaceholderColumns(t *Table) *Table {
	kept := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		if strings.TrimSpace(c) == "" || strings.Contains(strings.ToLower(c), "unnamed") {
			continue
		}
		kept = append(kept, c)
	}
	if len(kept) == len(t.Columns) {
		return t
	}

	rows := make([]Row, len(t.Rows))
	for i, r := range t.Rows {
		nr := make(Row, len(kept))
		for _, c := range kept {
			nr[c] = r[c]
		}
		rows[i] = nr
	}
	t.Columns = kept
	t.Rows = rows
	return t
}

func joinLower(row []string) string {
	return strings.ToLower(strings.Join(row, "|"))
}

func containsAny(s string, tokens []string) bool {
	for _, tok := range tokens {
		if strings.Contains(s, tok) {
			return true
		}
	}
	return false
}
