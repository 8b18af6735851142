package parser

import (
	"fmt"
)

type attempt struct {
	strategy  Strategy
	headerRow int
	strict    bool
}

// framingLadder is the ordered set of ways a decoded grid is turned into a table.
var framingLadder = []attempt{
	{StrategyDefault, 0, true},
	{StrategySkipBannerRow, 1, true},
	{StrategyHeaderless, -1, false},
}

// Load turns a raw blob into a table. It never fails: the first framing that
// yields at least one column wins, and an empty table is returned when no
// strategy applies. Failed attempts are kept as warnings on the result.
//
// Loading is two-phase. The bytes are decoded and read into a headerless grid
// once; the framing strategies then only decide which grid row is the header.
// A permissive re-decode is the last resort when strict decoding or reading fails.
func Load(blob []byte) *Table {
	if len(blob) == 0 {
		return EmptyTable()
	}

	var notes []ParseWarning

	if isXLSX(blob) {
		grid, err := readXLSXGrid(blob)
		if err != nil {
			t := EmptyTable()
			t.Encoding = "xlsx"
			t.Warnings = []ParseWarning{{Message: fmt.Sprintf("%s: %v", StrategyDefault, err)}}
			return t
		}
		if t := frameLadder(grid, &notes); t != nil {
			t.Encoding = "xlsx"
			t.Warnings = append(notes, t.Warnings...)
			return t
		}
		t := EmptyTable()
		t.Warnings = notes
		return t
	}

	decoded, enc, err := DetectAndDecode(blob)
	if err == nil {
		grid, readWarnings, gerr := ReadGrid(decoded)
		if gerr == nil {
			if t := frameLadder(grid, &notes); t != nil {
				t.Encoding = enc
				t.Warnings = append(append(notes, readWarnings...), t.Warnings...)
				return t
			}
		} else {
			notes = append(notes, ParseWarning{Message: fmt.Sprintf("read: %v", gerr)})
		}
	} else {
		notes = append(notes, ParseWarning{Message: fmt.Sprintf("decode: %v", err)})
	}

	decoded, enc = DecodePermissive(blob)
	grid, readWarnings, gerr := ReadGrid(decoded)
	if gerr != nil {
		t := EmptyTable()
		t.Warnings = append(notes, ParseWarning{Message: fmt.Sprintf("%s: %v", StrategyHeaderlessPermissive, gerr)})
		return t
	}
	t, frameWarnings, ferr := frame(grid, -1, false)
	if ferr != nil {
		out := EmptyTable()
		out.Warnings = append(notes, ParseWarning{Message: fmt.Sprintf("%s: %v", StrategyHeaderlessPermissive, ferr)})
		return out
	}
	t.Strategy = StrategyHeaderlessPermissive
	t.Encoding = enc
	t.Warnings = append(append(notes, readWarnings...), frameWarnings...)
	return t
}

// LoadWithHeaderRow frames an already loaded table's grid with a different
// header row. It is used by header repair and is exported for callers that
// know their layout up front.
func LoadWithHeaderRow(t *Table, headerRow int) (*Table, error) {
	if t == nil || len(t.grid) == 0 {
		return nil, ErrEmptyInput
	}
	out, warnings, err := frame(t.grid, headerRow, false)
	if err != nil {
		return nil, err
	}
	out.Strategy = t.Strategy
	out.Encoding = t.Encoding
	out.Warnings = warnings
	return out, nil
}

func frameLadder(grid [][]string, notes *[]ParseWarning) *Table {
	for _, a := range framingLadder {
		t, warnings, err := frame(grid, a.headerRow, a.strict)
		if err != nil {
			*notes = append(*notes, ParseWarning{Message: fmt.Sprintf("%s: %v", a.strategy, err)})
			continue
		}
		if len(t.Columns) == 0 {
			continue
		}
		t.Strategy = a.strategy
		t.Warnings = warnings
		return t
	}
	return nil
}
