package engine

import (
	"github.com/katpally123/pxt-phoenix/pkg/schema"
)

// PresenceResult contains the reconciled presence of every roster person.
type PresenceResult struct {
	Records   []schema.PresenceRecord `json:"presence"`
	Overrides []PresenceOverride      `json:"overrides"`
	Stats     PresenceStats           `json:"stats"`

	byID map[string]int
}

// PresenceStats counts where each person's effective token came from.
type PresenceStats struct {
	TotalProcessed int `json:"totalProcessed"`
	FromFeed       int `json:"fromFeed"`
	FromRoster     int `json:"fromRoster"`
	Present        int `json:"present"`
}

// ReconcilePresence produces one PresenceRecord per indexed person.
// For each person, in index order:
//   1. Feed entry for the identity -> its token is effective, even when empty
//      or negative; the live feed always overrides the roster claim
//   2. No feed entry -> the roster's declared status is effective
//   3. Present iff the effective token is a present marker
func ReconcilePresence(index *PersonIndex, feed *AttendanceFeed) *PresenceResult {
	result := &PresenceResult{
		Records:   make([]schema.PresenceRecord, 0, index.Len()),
		Overrides: make([]PresenceOverride, 0),
		byID:      make(map[string]int, index.Len()),
	}

	var tokens map[string]string
	if feed != nil {
		tokens = feed.Tokens
	}

	for _, p := range index.Persons() {
		token, fromFeed := tokens[p.ID]
		if fromFeed {
			result.Stats.FromFeed++
			if o := DetectOverride(p, token); o != nil {
				result.Overrides = append(result.Overrides, *o)
			}
		} else {
			token = p.DeclaredStatus
			result.Stats.FromRoster++
		}

		rec := schema.PresenceRecord{
			ID:               p.ID,
			Name:             p.Name,
			DepartmentID:     p.DepartmentID,
			EmploymentType:   p.EmploymentType,
			ManagementAreaID: p.ManagementAreaID,
			Present:          schema.IsPresentToken(token),
		}
		if rec.Present {
			result.Stats.Present++
		}
		result.byID[p.ID] = len(result.Records)
		result.Records = append(result.Records, rec)
		result.Stats.TotalProcessed++
	}

	return result
}

// Lookup returns the presence record for a normalized identity, or nil.
func (r *PresenceResult) Lookup(id string) *schema.PresenceRecord {
	if r == nil {
		return nil
	}
	i, ok := r.byID[id]
	if !ok {
		return nil
	}
	return &r.Records[i]
}
