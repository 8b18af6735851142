package pipeline

import (
	"github.com/katpally123/pxt-phoenix/pkg/report"
	"github.com/katpally123/pxt-phoenix/pkg/schema"
)

// Result is the complete headcount output of one run.
type Result struct {
	GeneratedAt string              `json:"generated_at"`
	RunID       string              `json:"run_id"`
	DeptSummary *report.Summary     `json:"dept_summary"`
	PresenceMap PresenceMap         `json:"presence_map"`
	VetVTO      VetVTO              `json:"vet_vto"`
	Swaps       Swaps               `json:"swaps"`
	Diagnostics *report.Diagnostics `json:"diagnostics"`
}

// PresenceMap lists every roster person with reconciled presence.
type PresenceMap struct {
	GeneratedAt string                  `json:"generated_at"`
	Presence    []schema.PresenceRecord `json:"presence"`
}

// VetVTO lists accepted marketplace events.
type VetVTO struct {
	GeneratedAt string                    `json:"generated_at"`
	Records     []schema.MarketplaceEvent `json:"records"`
}

// Swaps lists the three counted sides of approved swaps.
type Swaps struct {
	GeneratedAt    string             `json:"generated_at"`
	SwapOut        []schema.SwapEvent `json:"swap_out"`
	SwapInExpected []schema.SwapEvent `json:"swap_in_expected"`
	SwapInPresent  []schema.SwapEvent `json:"swap_in_present"`
}

// newResult returns an empty result: every list is empty and every
// configured department has zero counters.
func newResult(runID, stamp string, settings report.Settings, diag *report.Diagnostics) *Result {
	return &Result{
		GeneratedAt: stamp,
		RunID:       runID,
		DeptSummary: report.Aggregate(settings, nil, nil, nil, stamp),
		PresenceMap: PresenceMap{GeneratedAt: stamp, Presence: make([]schema.PresenceRecord, 0)},
		VetVTO:      VetVTO{GeneratedAt: stamp, Records: make([]schema.MarketplaceEvent, 0)},
		Swaps: Swaps{
			GeneratedAt:    stamp,
			SwapOut:        make([]schema.SwapEvent, 0),
			SwapInExpected: make([]schema.SwapEvent, 0),
			SwapInPresent:  make([]schema.SwapEvent, 0),
		},
		Diagnostics: diag,
	}
}
