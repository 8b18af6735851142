package engine

import (
	"strconv"
	"strings"

	"github.com/katpally123/pxt-phoenix/pkg/parser"
	"github.com/katpally123/pxt-phoenix/pkg/schema"
)

// FilterOptions controls event selection.
type FilterOptions struct {
	// Target restricts events to one business day. Nil keeps every date.
	Target *schema.Date
	// StrictMarketplace requires a true-like accepted indicator AND an
	// approved status instead of any non-zero accepted indicator.
	StrictMarketplace bool
}

// MarketplaceResult holds the accepted VET/VTO events of one extract.
type MarketplaceResult struct {
	Events []schema.MarketplaceEvent `json:"records"`
	Picks  schema.Picks              `json:"-"`
	Stats  FilterStats               `json:"stats"`
}

// FilterStats counts why rows were kept or dropped.
type FilterStats struct {
	Rows          int `json:"rows"`
	NoIdentity    int `json:"noIdentity"`
	NotAccepted   int `json:"notAccepted"`
	DroppedByDate int `json:"droppedByDate"`
	Kept          int `json:"kept"`
}

// notAcceptedTokens are accepted-indicator values meaning "nothing accepted",
// compared upper-cased.
var notAcceptedTokens = map[string]bool{
	"":      true,
	"0":     true,
	"0.0":   true,
	"FALSE": true,
	"NAN":   true,
}

var trueLikeTokens = map[string]bool{
	"TRUE": true,
	"YES":  true,
	"Y":    true,
}

// FilterMarketplace selects accepted marketplace rows.
// For each row:
//   1. Skip rows without a normalized identity
//   2. Acceptance: permissive (default) or strict, see FilterOptions
//   3. Work date from the primary date column, else the secondary one
//   4. With a target date, drop rows whose known work date differs
//   5. Type: contains "VET" -> VET, contains "VTO" -> VTO, else the raw value upper-cased
//   6. Enrich from the presence result by identity
func FilterMarketplace(t *parser.Table, presence *PresenceResult, opts FilterOptions) *MarketplaceResult {
	result := &MarketplaceResult{Events: make([]schema.MarketplaceEvent, 0)}
	if t.Empty() {
		result.Picks = schema.ResolveRoles(nil, schema.MarketplaceRoles)
		return result
	}

	picks := schema.ResolveRoles(t.Columns, schema.MarketplaceRoles)
	result.Picks = picks
	idCol := picks.Column("eid")

	for _, row := range t.Rows {
		result.Stats.Rows++

		id := ""
		if idCol != "" {
			id = schema.NormalizeID(row.String(idCol))
		}
		if id == "" {
			result.Stats.NoIdentity++
			continue
		}

		if !marketplaceAccepted(row, picks, opts.StrictMarketplace) {
			result.Stats.NotAccepted++
			continue
		}

		workDate := schema.ParseDate(row.String(picks.Column("work_date")))
		if workDate == nil {
			workDate = schema.ParseDate(row.String(picks.Column("work_date_alt")))
		}
		if opts.Target != nil && workDate != nil && !workDate.Equal(*opts.Target) {
			result.Stats.DroppedByDate++
			continue
		}

		result.Events = append(result.Events, schema.MarketplaceEvent{
			ID:         id,
			Type:       classifyOpportunity(row.String(picks.Column("type"))),
			WorkDate:   workDate,
			Enrichment: schema.EnrichmentFrom(presence.Lookup(id)),
		})
		result.Stats.Kept++
	}

	return result
}

func marketplaceAccepted(row parser.Row, picks schema.Picks, strict bool) bool {
	accepted := strings.ToUpper(strings.TrimSpace(row.String(picks.Column("accepted"))))
	if !strict {
		return !notAcceptedTokens[accepted]
	}

	if !isTrueLike(accepted) {
		return false
	}
	statusCol := picks.Column("status")
	if statusCol == "" {
		return false
	}
	return schema.IsApprovedStatus(row.String(statusCol))
}

// isTrueLike accepts TRUE/YES/Y and any number above zero.
func isTrueLike(upper string) bool {
	if trueLikeTokens[upper] {
		return true
	}
	f, err := strconv.ParseFloat(upper, 64)
	return err == nil && f > 0
}

func classifyOpportunity(raw string) schema.MarketplaceType {
	typ := strings.ToUpper(raw)
	switch {
	case strings.Contains(typ, schema.TypeVET):
		return schema.TypeVET
	case strings.Contains(typ, schema.TypeVTO):
		return schema.TypeVTO
	default:
		return typ
	}
}
