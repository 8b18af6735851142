package engine

import (
	"strings"

	"github.com/katpally123/pxt-phoenix/pkg/schema"
)

// PersonIndex provides lookup of roster persons by canonical identity.
// It is built once per run and consulted by every enrichment step.
type PersonIndex struct {
	ByID  map[string]*schema.PersonRecord
	order []string
	Stats IndexStats
}

// IndexStats contains aggregate statistics about the person index.
type IndexStats struct {
	TotalRecords int      `json:"totalRecords"`
	UniqueIDs    int      `json:"uniqueIds"`
	AMZNCount    int      `json:"amznCount"`
	DuplicateIDs []string `json:"duplicateIds"`
}

// BuildPersonIndex indexes roster records by identity. Records with an empty
// id are skipped. When an id repeats, the later record replaces the earlier
// one but keeps its position, and the id is reported in Stats.DuplicateIDs.
func BuildPersonIndex(records []schema.PersonRecord) *PersonIndex {
	index := &PersonIndex{
		ByID: make(map[string]*schema.PersonRecord, len(records)),
	}

	total := 0
	dupSeen := make(map[string]bool)
	for i := range records {
		rec := records[i]
		if rec.ID == "" {
			continue
		}
		total++
		if _, exists := index.ByID[rec.ID]; exists {
			if !dupSeen[rec.ID] {
				dupSeen[rec.ID] = true
				index.Stats.DuplicateIDs = append(index.Stats.DuplicateIDs, rec.ID)
			}
		} else {
			index.order = append(index.order, rec.ID)
		}
		index.ByID[rec.ID] = &rec
	}

	amzn := 0
	for _, id := range index.order {
		if IsAMZN(index.ByID[id].EmploymentType) {
			amzn++
		}
	}

	index.Stats.TotalRecords = total
	index.Stats.UniqueIDs = len(index.order)
	index.Stats.AMZNCount = amzn
	return index
}

// Persons returns the indexed persons in first-appearance order.
func (idx *PersonIndex) Persons() []*schema.PersonRecord {
	out := make([]*schema.PersonRecord, 0, len(idx.order))
	for _, id := range idx.order {
		out = append(out, idx.ByID[id])
	}
	return out
}

// Len returns the number of unique identities.
func (idx *PersonIndex) Len() int { return len(idx.order) }

// IsAMZN reports whether an employment type belongs to the AMZN class.
func IsAMZN(employmentType string) bool {
	return strings.Contains(strings.ToUpper(employmentType), "AMZN")
}
