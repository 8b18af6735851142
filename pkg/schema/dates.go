package schema

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Date is a calendar date without time or zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Equal reports whether both dates are the same day.
func (d Date) Equal(o Date) bool { return d == o }

// MarshalJSON encodes the date as a YYYY-MM-DD string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// Layouts tried before free-text parsing. Slash forms are month-first.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"01/02/2006 15:04",
	"1/2/2006 15:04",
	"Jan 2, 2006",
	"January 2, 2006",
	"02-Jan-2006",
}

// Date-like fragments pulled out of surrounding text when the whole value
// does not parse, e.g. "Shift on 3/5/2024 (night)".
var fuzzyDateRes = []*regexp.Regexp{
	regexp.MustCompile(`\d{4}-\d{1,2}-\d{1,2}(?:[T ]\d{1,2}:\d{2}(?::\d{2})?)?`),
	regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{2,4}`),
	regexp.MustCompile(`(?i)\b(?:jan|feb|mar|apr|may|jun|jul|aug|sep|sept|oct|nov|dec)[a-z]*\.?\s+\d{1,2}(?:st|nd|rd|th)?,?\s+\d{4}`),
	regexp.MustCompile(`(?i)\b\d{1,2}(?:st|nd|rd|th)?\s+(?:jan|feb|mar|apr|may|jun|jul|aug|sep|sept|oct|nov|dec)[a-z]*\.?,?\s+\d{4}`),
}

var ordinalRe = regexp.MustCompile(`(?i)(\d)(st|nd|rd|th)\b`)

// ParseDate parses free text into a calendar date. Ambiguous numeric dates
// are read month first. When the full text does not parse, date-like
// fragments are extracted and tried in turn. Returns nil on failure.
func ParseDate(raw string) *Date {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	if d, ok := parseExact(s); ok {
		return &d
	}
	for _, re := range fuzzyDateRes {
		for _, frag := range re.FindAllString(s, -1) {
			if d, ok := parseExact(ordinalRe.ReplaceAllString(frag, "$1")); ok {
				return &d
			}
		}
	}
	return nil
}

// ParseTargetDate parses a caller-supplied filter date without fuzzy extraction.
func ParseTargetDate(raw string) *Date {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	if d, ok := parseExact(s); ok {
		return &d
	}
	return nil
}

func parseExact(s string) (Date, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(t), true
		}
	}
	if !hasDigit(s) {
		return Date{}, false
	}
	t, err := dateparse.ParseIn(s, time.UTC, dateparse.PreferMonthFirst(true))
	if err != nil {
		return Date{}, false
	}
	return DateOf(t), true
}

func hasDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}
