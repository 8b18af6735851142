package report

import (
	"bytes"
	"encoding/json"

	"github.com/katpally123/pxt-phoenix/pkg/engine"
	"github.com/katpally123/pxt-phoenix/pkg/schema"
)

// Counters are the per-department headcount tallies.
type Counters struct {
	RegularExpectedAMZN int `json:"regular_expected_AMZN"`
	RegularPresentAMZN  int `json:"regular_present_AMZN"`
	RegularExpectedTEMP int `json:"regular_expected_TEMP"`
	RegularPresentTEMP  int `json:"regular_present_TEMP"`
	SwapOut             int `json:"swap_out"`
	SwapInExpected      int `json:"swap_in_expected"`
	SwapInPresent       int `json:"swap_in_present"`
	VETAccept           int `json:"vet_accept"`
	VETPresent          int `json:"vet_present"`
	VTOAccept           int `json:"vto_accept"`
}

// DepartmentSummary is one department's counters.
type DepartmentSummary struct {
	Label    string
	Counters Counters
}

// ByDepartment serializes as a JSON object keyed by label, in configured order.
type ByDepartment []DepartmentSummary

// MarshalJSON writes the summaries in configured label order.
func (b ByDepartment) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, d := range b {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(d.Label)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(d.Counters)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Get returns the counters for label.
func (b ByDepartment) Get(label string) (Counters, bool) {
	for _, d := range b {
		if d.Label == label {
			return d.Counters, true
		}
	}
	return Counters{}, false
}

// Summary is the aggregated department report.
type Summary struct {
	GeneratedAt  string       `json:"generated_at"`
	ByDepartment ByDepartment `json:"by_department"`
	Unbucketed   Unbucketed   `json:"-"`
}

// Unbucketed counts entities whose department matched no label.
type Unbucketed struct {
	Presence    int `json:"presence"`
	Swaps       int `json:"swaps"`
	Marketplace int `json:"marketplace"`
}

// Aggregate buckets presence records and events into the configured
// departments. Every label starts at zero; unbucketed entities only show up
// in Unbucketed.
func Aggregate(
	settings Settings,
	presence []schema.PresenceRecord,
	marketplace []schema.MarketplaceEvent,
	swaps *engine.SwapResult,
	generatedAt string,
) *Summary {
	summary := &Summary{
		GeneratedAt:  generatedAt,
		ByDepartment: make(ByDepartment, 0, len(settings.Departments)),
	}
	index := make(map[string]int, len(settings.Departments))
	for _, d := range settings.Departments {
		if _, dup := index[d.Label]; dup {
			continue
		}
		index[d.Label] = len(summary.ByDepartment)
		summary.ByDepartment = append(summary.ByDepartment, DepartmentSummary{Label: d.Label})
	}
	counters := func(deptID, maID string) *Counters {
		label, ok := Bucket(deptID, maID, settings)
		if !ok {
			return nil
		}
		return &summary.ByDepartment[index[label]].Counters
	}

	for _, p := range presence {
		c := counters(p.DepartmentID, p.ManagementAreaID)
		if c == nil {
			summary.Unbucketed.Presence++
			continue
		}
		updateRegular(c, engine.IsAMZN(p.EmploymentType), p.Present)
	}

	if swaps != nil {
		for _, group := range [][]schema.SwapEvent{swaps.Out, swaps.InExpected, swaps.InPresent} {
			for _, ev := range group {
				c := counters(ev.Dept(), ev.MA())
				if c == nil {
					summary.Unbucketed.Swaps++
					continue
				}
				updateSwap(c, ev.Kind)
			}
		}
	}

	for _, ev := range marketplace {
		c := counters(ev.Dept(), ev.MA())
		if c == nil {
			summary.Unbucketed.Marketplace++
			continue
		}
		updateMarketplace(c, ev.Type, ev.Present)
	}

	return summary
}

func updateRegular(c *Counters, amzn, present bool) {
	if amzn {
		c.RegularExpectedAMZN++
		if present {
			c.RegularPresentAMZN++
		}
		return
	}
	c.RegularExpectedTEMP++
	if present {
		c.RegularPresentTEMP++
	}
}

// updateSwap increments the counter for one swap event kind.
func updateSwap(c *Counters, kind schema.SwapKind) {
	switch kind {
	case schema.SwapOut:
		c.SwapOut++
	case schema.SwapInExpected:
		c.SwapInExpected++
	case schema.SwapInPresent:
		c.SwapInPresent++
	}
}

// updateMarketplace counts VET accepts and presence; VTO presence is not tracked.
func updateMarketplace(c *Counters, typ schema.MarketplaceType, present bool) {
	switch typ {
	case schema.TypeVET:
		c.VETAccept++
		if present {
			c.VETPresent++
		}
	case schema.TypeVTO:
		c.VTOAccept++
	}
}
