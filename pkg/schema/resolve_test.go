package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		columns    []string
		candidates []string
		want       string
		found      bool
	}{
		{"exact case-insensitive", []string{"employee id", "Name"}, RosterIDColumns, "employee id", true},
		{"candidate order wins over column order", []string{"Person ID", "Employee ID"}, RosterIDColumns, "Employee ID", true},
		{"exact pass beats substring pass", []string{"Badge ID", "ID"}, []string{"ID"}, "ID", true},
		{"substring pass", []string{"Home Department ID (Primary)"}, RosterDepartmentColumns, "Home Department ID (Primary)", true},
		{"generic candidate matches late", []string{"Login", "Associate Badge ID"}, RosterIDColumns, "Associate Badge ID", true},
		{"dotted export names", []string{"opportunity.acceptedCount"}, MarketplaceAcceptedColumns, "opportunity.acceptedCount", true},
		{"no match", []string{"Foo", "Bar"}, SwapStatusColumns, "", false},
		{"no columns", nil, RosterIDColumns, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Resolve(tt.columns, tt.candidates)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveRoles(t *testing.T) {
	picks := ResolveRoles([]string{"Person ID", "Status"}, AttendanceRoles)

	assert.Equal(t, "Person ID", picks.Column("eid"))
	assert.Equal(t, "Status", picks.Column("on_prem"))
	assert.Equal(t, "", picks.Column("missing"))
	assert.Equal(t, []string{"eid", "on_prem"}, picks.Roles())
	assert.Empty(t, picks.Unresolved())

	none := ResolveRoles(nil, SwapRoles)
	assert.Equal(t, []string{"eid", "status", "skip_date", "work_date"}, none.Unresolved())
}

func TestPicks_MarshalJSON(t *testing.T) {
	picks := ResolveRoles([]string{"Employee 1 ID", "Date to Skip"}, SwapRoles)

	data, err := json.Marshal(picks)
	require.NoError(t, err)
	assert.Equal(t,
		`{"eid":"Employee 1 ID","status":null,"skip_date":"Date to Skip","work_date":null}`,
		string(data))
}
