package schema

// PersonRecord is a normalized roster row keyed by canonical identity.
type PersonRecord struct {
	ID               string `json:"eid"`
	Name             string `json:"name"`
	DepartmentID     string `json:"dept_id"`
	EmploymentType   string `json:"employment_type"`
	ManagementAreaID string `json:"management_area_id"`
	DeclaredStatus   string `json:"on_roster"`
}

// PresenceRecord is a roster person with reconciled presence.
type PresenceRecord struct {
	ID               string `json:"eid"`
	Name             string `json:"name"`
	DepartmentID     string `json:"dept_id"`
	EmploymentType   string `json:"employment_type"`
	ManagementAreaID string `json:"management_area_id"`
	Present          bool   `json:"present"`
}

// Enrichment carries the organizational fields copied from a presence record
// onto an event. Fields are nil when the event's identity has no roster match.
type Enrichment struct {
	Present          bool    `json:"present"`
	DepartmentID     *string `json:"dept_id"`
	EmploymentType   *string `json:"employment_type"`
	ManagementAreaID *string `json:"management_area_id"`
}

// EnrichmentFrom builds the enrichment for a presence record, or the empty
// enrichment when p is nil.
func EnrichmentFrom(p *PresenceRecord) Enrichment {
	if p == nil {
		return Enrichment{}
	}
	dept, et, ma := p.DepartmentID, p.EmploymentType, p.ManagementAreaID
	return Enrichment{
		Present:          p.Present,
		DepartmentID:     &dept,
		EmploymentType:   &et,
		ManagementAreaID: &ma,
	}
}

// Dept returns the department id or "" when unenriched.
func (e Enrichment) Dept() string { return deref(e.DepartmentID) }

// MA returns the management area id or "" when unenriched.
func (e Enrichment) MA() string { return deref(e.ManagementAreaID) }

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// MarketplaceType classifies a shift-marketplace opportunity.
type MarketplaceType = string

const (
	TypeVET MarketplaceType = "VET"
	TypeVTO MarketplaceType = "VTO"
)

// MarketplaceEvent is an accepted VET/VTO opportunity.
type MarketplaceEvent struct {
	ID       string          `json:"eid"`
	Type     MarketplaceType `json:"type"`
	WorkDate *Date           `json:"work_date"`
	Enrichment
}

// SwapKind tags which side of a shift swap an event counts toward.
type SwapKind string

const (
	SwapOut        SwapKind = "Swap OUT"
	SwapInExpected SwapKind = "Swap IN (expected)"
	SwapInPresent  SwapKind = "Swap IN (present)"
)

// SwapEvent is one counted side of an approved shift swap.
type SwapEvent struct {
	ID       string   `json:"eid"`
	SkipDate *Date    `json:"skip_date"`
	WorkDate *Date    `json:"work_date"`
	Kind     SwapKind `json:"kind"`
	Enrichment
}
