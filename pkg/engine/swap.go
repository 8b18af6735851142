package engine

import (
	"github.com/katpally123/pxt-phoenix/pkg/parser"
	"github.com/katpally123/pxt-phoenix/pkg/schema"
)

// SwapResult holds the counted sides of approved shift swaps.
type SwapResult struct {
	Out        []schema.SwapEvent `json:"swap_out"`
	InExpected []schema.SwapEvent `json:"swap_in_expected"`
	InPresent  []schema.SwapEvent `json:"swap_in_present"`
	Picks      schema.Picks       `json:"-"`
	Stats      FilterStats        `json:"stats"`
}

// FilterSwaps selects approved swap rows and emits their events.
// For each row:
//   1. Skip rows without a normalized identity or an approved status
//   2. Parse skip and work dates independently; either may be unknown
//   3. With a target date, drop the row only when both dates are known and
//      both differ from it
//   4. Emit SwapOut for a skip date (matching the target, if any)
//   5. Emit SwapInExpected for a work date (matching the target, if any), plus
//      SwapInPresent when the enriched person is present
func FilterSwaps(t *parser.Table, presence *PresenceResult, opts FilterOptions) *SwapResult {
	result := &SwapResult{
		Out:        make([]schema.SwapEvent, 0),
		InExpected: make([]schema.SwapEvent, 0),
		InPresent:  make([]schema.SwapEvent, 0),
	}
	if t.Empty() {
		result.Picks = schema.ResolveRoles(nil, schema.SwapRoles)
		return result
	}

	picks := schema.ResolveRoles(t.Columns, schema.SwapRoles)
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
		if !schema.IsApprovedStatus(row.String(picks.Column("status"))) {
			result.Stats.NotAccepted++
			continue
		}

		skip := schema.ParseDate(row.String(picks.Column("skip_date")))
		work := schema.ParseDate(row.String(picks.Column("work_date")))
		target := opts.Target
		if target != nil && skip != nil && work != nil && !skip.Equal(*target) && !work.Equal(*target) {
			result.Stats.DroppedByDate++
			continue
		}
		result.Stats.Kept++

		base := schema.SwapEvent{
			ID:         id,
			SkipDate:   skip,
			WorkDate:   work,
			Enrichment: schema.EnrichmentFrom(presence.Lookup(id)),
		}

		if skip != nil && (target == nil || skip.Equal(*target)) {
			ev := base
			ev.Kind = schema.SwapOut
			result.Out = append(result.Out, ev)
		}
		if work != nil && (target == nil || work.Equal(*target)) {
			ev := base
			ev.Kind = schema.SwapInExpected
			result.InExpected = append(result.InExpected, ev)
			if base.Present {
				ev.Kind = schema.SwapInPresent
				result.InPresent = append(result.InPresent, ev)
			}
		}
	}

	return result
}
