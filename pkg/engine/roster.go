package engine

import (
	"strings"

	"github.com/katpally123/pxt-phoenix/pkg/parser"
	"github.com/katpally123/pxt-phoenix/pkg/schema"
)

// Roster is a normalized roster document.
type Roster struct {
	Records []schema.PersonRecord
	Picks   schema.Picks
}

// NormalizeRoster resolves the roster columns and builds one PersonRecord per
// row with a non-empty identity. Nothing is produced when the identity column
// cannot be resolved.
func NormalizeRoster(t *parser.Table) *Roster {
	r := &Roster{}
	if t.Empty() {
		r.Picks = schema.ResolveRoles(nil, schema.RosterRoles)
		return r
	}

	r.Picks = schema.ResolveRoles(t.Columns, schema.RosterRoles)
	idCol := r.Picks.Column("eid")
	if idCol == "" {
		return r
	}

	r.Records = make([]schema.PersonRecord, 0, t.Len())
	for _, row := range t.Rows {
		id := schema.NormalizeID(row.String(idCol))
		if id == "" {
			continue
		}
		r.Records = append(r.Records, schema.PersonRecord{
			ID:               id,
			Name:             schema.DisplayName(row.String(r.Picks.Column("first_name")), row.String(r.Picks.Column("last_name"))),
			DepartmentID:     row.String(r.Picks.Column("dept")),
			EmploymentType:   row.String(r.Picks.Column("employment_type")),
			ManagementAreaID: row.String(r.Picks.Column("ma")),
			DeclaredStatus:   strings.ToUpper(row.String(r.Picks.Column("on_prem"))),
		})
	}
	return r
}

// AttendanceFeed maps normalized identity to the raw live presence token.
type AttendanceFeed struct {
	Tokens map[string]string
	Picks  schema.Picks
}

// NormalizeAttendance builds the attendance map. An unresolved presence
// column still records each identity, with an empty token.
func NormalizeAttendance(t *parser.Table) *AttendanceFeed {
	feed := &AttendanceFeed{Tokens: make(map[string]string)}
	if t.Empty() {
		feed.Picks = schema.ResolveRoles(nil, schema.AttendanceRoles)
		return feed
	}

	feed.Picks = schema.ResolveRoles(t.Columns, schema.AttendanceRoles)
	idCol := feed.Picks.Column("eid")
	if idCol == "" {
		return feed
	}
	onCol := feed.Picks.Column("on_prem")

	for _, row := range t.Rows {
		id := schema.NormalizeID(row.String(idCol))
		if id == "" {
			continue
		}
		feed.Tokens[id] = strings.ToUpper(row.String(onCol))
	}
	return feed
}
