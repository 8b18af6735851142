package parser

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ErrEmptyInput is returned when there is nothing to tabulate.
var ErrEmptyInput = errors.New("empty input")

// ErrNoHeader is returned when a framing strategy cannot find a usable header row.
var ErrNoHeader = errors.New("no usable header row")

// ReadGrid reads decoded CSV bytes into a headerless grid of raw rows.
// Parse errors on individual records become warnings and the record is skipped.
func ReadGrid(decoded []byte) ([][]string, []ParseWarning, error) {
	if len(bytes.TrimSpace(decoded)) == 0 {
		return nil, nil, ErrEmptyInput
	}

	reader := csv.NewReader(bytes.NewReader(decoded))
	reader.Comma = sniffDelimiter(decoded)
	// Allow variable number of fields per record; framing pads or truncates.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var grid [][]string
	var warnings []ParseWarning
	rowNum := 0

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		rowNum++
		if err != nil {
			warnings = append(warnings, ParseWarning{
				Row:     rowNum,
				Message: fmt.Sprintf("parse error: %v", err),
			})
			continue
		}
		if isBlankRow(row) {
			continue
		}
		grid = append(grid, row)
	}

	if len(grid) == 0 {
		return nil, warnings, ErrEmptyInput
	}
	return grid, warnings, nil
}

// sniffSampleLines bounds how many non-blank lines delimiter sniffing reads.
const sniffSampleLines = 10

// sniffDelimiter picks the separator that splits the most sampled lines.
// Banner lines ("Hyperfind: ...", "Timeframe: ...") are not sampled, and on a
// tie the earlier candidate wins, so comma is the default.
func sniffDelimiter(data []byte) rune {
	candidates := []rune{',', '\t', ';', '|'}
	hits := make([]int, len(candidates))

	sampled := 0
	for _, line := range bytes.Split(data, []byte{'\n'}) {
		if sampled == sniffSampleLines {
			break
		}
		text := strings.TrimSpace(string(line))
		if text == "" || containsAny(strings.ToLower(text), bannerTokens) {
			continue
		}
		sampled++
		for i, d := range candidates {
			if strings.ContainsRune(text, d) {
				hits[i]++
			}
		}
	}

	best := 0
	for i := range candidates {
		if hits[i] > hits[best] {
			best = i
		}
	}
	return candidates[best]
}

// frame turns grid rows into a table using grid[headerRow] as the header.
// A negative headerRow yields positional column names. When strict is set,
// a body row carrying more values than the header rejects the framing, the
// way a tokenizer rejects a banner line sitting above wider data.
func frame(grid [][]string, headerRow int, strict bool) (*Table, []ParseWarning, error) {
	if len(grid) == 0 {
		return nil, nil, ErrEmptyInput
	}

	var headers []string
	bodyStart := 0
	if headerRow >= 0 {
		if headerRow >= len(grid) {
			return nil, nil, ErrNoHeader
		}
		headers = headerNames(grid[headerRow])
		bodyStart = headerRow + 1
	} else {
		width := 0
		for _, row := range grid {
			if len(row) > width {
				width = len(row)
			}
		}
		headers = make([]string, width)
		for i := range headers {
			headers[i] = strconv.Itoa(i)
		}
	}
	if len(headers) == 0 {
		return nil, nil, ErrNoHeader
	}

	headerCount := len(headers)
	var warnings []ParseWarning
	rows := make([]Row, 0, len(grid)-bodyStart)

	for i := bodyStart; i < len(grid); i++ {
		row := grid[i]
		if len(row) != headerCount {
			if len(row) < headerCount {
				padded := make([]string, headerCount)
				copy(padded, row)
				row = padded
			} else {
				if strict && populatedWidth(row) > headerCount {
					return nil, nil, fmt.Errorf("%w: row %d has %d fields, header has %d",
						ErrNoHeader, i+1, populatedWidth(row), headerCount)
				}
				warnings = append(warnings, ParseWarning{
					Row:     i + 1,
					Message: fmt.Sprintf("row has %d columns, expected %d; truncating extra columns", len(row), headerCount),
				})
				row = row[:headerCount]
			}
		}

		record := make(Row, headerCount)
		for j, h := range headers {
			record[h] = ParseCell(row[j])
		}
		rows = append(rows, record)
	}

	return &Table{
		Columns:   headers,
		Rows:      rows,
		grid:      grid,
		headerRow: headerRow,
	}, warnings, nil
}

// headerNames cleans raw header cells, names blanks with a placeholder and
// de-duplicates repeated names with a numeric suffix.
func headerNames(raw []string) []string {
	seen := make(map[string]int, len(raw))
	names := make([]string, len(raw))
	for i, h := range raw {
		name := cleanHeader(h)
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		if n, dup := seen[name]; dup {
			seen[name] = n + 1
			name = fmt.Sprintf("%s.%d", name, n+1)
		} else {
			seen[name] = 0
		}
		names[i] = name
	}
	return names
}

// cleanHeader folds compatibility characters and trims whitespace, BOM and
// zero-width artifacts that exports leave in header cells.
func cleanHeader(h string) string {
	h = norm.NFKC.String(h)
	h = strings.Map(func(r rune) rune {
		switch r {
		case '\uFEFF', '\u200B':
			return -1
		}
		return r
	}, h)
	return strings.TrimSpace(h)
}

// populatedWidth is the row length ignoring trailing empty fields.
func populatedWidth(row []string) int {
	n := len(row)
	for n > 0 && strings.TrimSpace(row[n-1]) == "" {
		n--
	}
	return n
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
