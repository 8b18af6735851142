package parser

import (
	"strconv"
	"strings"
)

// CellKind tags the dynamic type of a cell value.
type CellKind int

const (
	CellNull CellKind = iota
	CellString
	CellNumber
)

// Cell is a single tabular value. Numbers keep their source text so that
// stringifying never invents digits the export did not contain.
type Cell struct {
	Kind CellKind
	Text string
	Num  float64
}

// naTokens mirrors the values spreadsheet and dataframe tooling read as missing.
var naTokens = map[string]bool{
	"":     true,
	"#N/A": true,
	"#NA":  true,
	"N/A":  true,
	"n/a":  true,
	"NA":   true,
	"NULL": true,
	"null": true,
	"NaN":  true,
	"nan":  true,
	"-NaN": true,
	"-nan": true,
	"<NA>": true,
}

// ParseCell classifies raw cell text into a tagged Cell.
func ParseCell(raw string) Cell {
	text := strings.TrimSpace(raw)
	if naTokens[text] {
		return Cell{Kind: CellNull}
	}
	if looksNumeric(text) {
		if f, err := strconv.ParseFloat(text, 64); err == nil {
			return Cell{Kind: CellNumber, Text: text, Num: f}
		}
	}
	return Cell{Kind: CellString, Text: text}
}

// looksNumeric rejects words like "inf" or "Infinity" that strconv would accept.
func looksNumeric(s string) bool {
	hasDigit := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			hasDigit = true
		case r == '.' || r == '-' || r == '+' || r == 'e' || r == 'E':
		default:
			return false
		}
	}
	return hasDigit
}

// IsNull reports whether the cell holds no value.
func (c Cell) IsNull() bool { return c.Kind == CellNull }

// String stringifies the cell. Null cells become the empty string.
func (c Cell) String() string {
	if c.Kind == CellNull {
		return ""
	}
	return c.Text
}

// Row maps column name to cell value.
type Row map[string]Cell

// Get returns the cell under col. Missing or unresolved columns read as null.
func (r Row) Get(col string) Cell {
	if col == "" {
		return Cell{Kind: CellNull}
	}
	c, ok := r[col]
	if !ok {
		return Cell{Kind: CellNull}
	}
	return c
}

// String returns the stringified cell under col.
func (r Row) String(col string) string {
	return r.Get(col).String()
}

// Strategy names the framing attempt that produced a table.
type Strategy string

const (
	StrategyNone                 Strategy = "none"
	StrategyDefault              Strategy = "default"
	StrategySkipBannerRow        Strategy = "skip_banner_row"
	StrategyHeaderless           Strategy = "headerless"
	StrategyHeaderlessPermissive Strategy = "headerless_permissive"
)

// ParseWarning represents a non-fatal issue encountered during parsing.
type ParseWarning struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// Table is a loaded export: ordered columns and rows of tagged cells.
// It retains the headerless grid it was framed from so that header repair
// can re-frame without decoding the bytes again.
type Table struct {
	Columns  []string
	Rows     []Row
	Strategy Strategy
	Encoding string
	Warnings []ParseWarning
	Repaired bool

	grid      [][]string
	headerRow int
}

// EmptyTable returns a table with no columns and no rows.
func EmptyTable() *Table {
	return &Table{Strategy: StrategyNone, headerRow: -1}
}

// Empty reports whether the table contributes nothing.
func (t *Table) Empty() bool {
	return t == nil || len(t.Columns) == 0
}

// Len returns the number of body rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// HeaderCells returns the raw text that would be read as the header: the
// column names for headed tables, the first grid row for headerless ones.
func (t *Table) HeaderCells() []string {
	if t == nil {
		return nil
	}
	if t.headerRow < 0 && len(t.grid) > 0 {
		return append([]string(nil), t.grid[0]...)
	}
	return append([]string(nil), t.Columns...)
}
