package report

import (
	"github.com/katpally123/pxt-phoenix/pkg/engine"
	"github.com/katpally123/pxt-phoenix/pkg/parser"
	"github.com/katpally123/pxt-phoenix/pkg/schema"
)

// Kind sources recorded for each loaded file.
const (
	KindSourceHeader         = "header"
	KindSourceBannerFallback = "banner_fallback"
)

// Marketplace modes.
const (
	MarketplacePermissive = "permissive"
	MarketplaceStrict     = "strict"
)

// LoadedFile describes how one input was read and classified.
type LoadedFile struct {
	Name           string              `json:"name"`
	Kind           schema.DocumentKind `json:"kind"`
	KindSource     string              `json:"kind_source"`
	Rows           int                 `json:"rows"`
	Cols           []string            `json:"cols"`
	Strategy       parser.Strategy     `json:"strategy"`
	Encoding       string              `json:"encoding"`
	HeaderRepaired bool                `json:"header_repaired"`
	Warnings       []string            `json:"warnings,omitempty"`
	Selected       bool                `json:"selected"`
}

// PickedColumns is the column chosen for each role of each document kind.
type PickedColumns struct {
	Roster      schema.Picks `json:"roster"`
	Attendance  schema.Picks `json:"mytime"`
	Marketplace schema.Picks `json:"vetvto"`
	Swaps       schema.Picks `json:"swaps"`
}

// Hints lists close-but-unresolved columns per document kind.
type Hints struct {
	Roster      []schema.ColumnHint `json:"roster,omitempty"`
	Attendance  []schema.ColumnHint `json:"mytime,omitempty"`
	Marketplace []schema.ColumnHint `json:"vetvto,omitempty"`
	Swaps       []schema.ColumnHint `json:"swaps,omitempty"`
}

// MarketplaceDiagnostics reports the acceptance mode and filter counts.
type MarketplaceDiagnostics struct {
	Mode  string             `json:"mode"`
	Stats engine.FilterStats `json:"stats"`
}

// Diagnostics makes classification and column resolution observable.
type Diagnostics struct {
	RunID             string                 `json:"run_id"`
	TargetDate        *schema.Date           `json:"target_date"`
	LoadedFiles       []LoadedFile           `json:"loaded_files"`
	PickedColumns     PickedColumns          `json:"picked_columns"`
	Hints             Hints                  `json:"hints"`
	PresenceCount     int                    `json:"presence_count"`
	Presence          engine.PresenceStats   `json:"presence_stats"`
	DuplicateIDs      []string               `json:"duplicate_ids"`
	PresenceOverrides int                    `json:"presence_overrides"`
	Marketplace       MarketplaceDiagnostics `json:"marketplace"`
	Swaps             engine.FilterStats     `json:"swaps"`
	Unbucketed        Unbucketed             `json:"unbucketed"`
	SettingsIssues    []string               `json:"settings_issues"`
	Errors            []string               `json:"errors"`
}

// NewDiagnostics returns diagnostics with every list initialized so empty
// runs serialize as [] rather than null.
func NewDiagnostics(runID string, target *schema.Date) *Diagnostics {
	picks := PickedColumns{
		Roster:      schema.ResolveRoles(nil, schema.RosterRoles),
		Attendance:  schema.ResolveRoles(nil, schema.AttendanceRoles),
		Marketplace: schema.ResolveRoles(nil, schema.MarketplaceRoles),
		Swaps:       schema.ResolveRoles(nil, schema.SwapRoles),
	}
	return &Diagnostics{
		RunID:          runID,
		TargetDate:     target,
		LoadedFiles:    make([]LoadedFile, 0),
		PickedColumns:  picks,
		DuplicateIDs:   make([]string, 0),
		Marketplace:    MarketplaceDiagnostics{Mode: MarketplacePermissive},
		SettingsIssues: make([]string, 0),
		Errors:         make([]string, 0),
	}
}

// DescribeFile builds the diagnostics entry for one loaded table, keeping
// at most maxCols column names.
func DescribeFile(name string, t *parser.Table, kind schema.DocumentKind, kindSource string, maxCols int) LoadedFile {
	cols := t.Columns
	if maxCols > 0 && len(cols) > maxCols {
		cols = cols[:maxCols]
	}
	lf := LoadedFile{
		Name:           name,
		Kind:           kind,
		KindSource:     kindSource,
		Rows:           t.Len(),
		Cols:           append(make([]string, 0, len(cols)), cols...),
		Strategy:       t.Strategy,
		Encoding:       t.Encoding,
		HeaderRepaired: t.Repaired,
	}
	for _, w := range t.Warnings {
		lf.Warnings = append(lf.Warnings, w.Message)
	}
	return lf
}
