package pipeline

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katpally123/pxt-phoenix/pkg/config"
	"github.com/katpally123/pxt-phoenix/pkg/logging"
	"github.com/katpally123/pxt-phoenix/pkg/parser"
	"github.com/katpally123/pxt-phoenix/pkg/report"
	"github.com/katpally123/pxt-phoenix/pkg/schema"
)

var fixedNow = func() time.Time { return time.Date(2024, 3, 5, 8, 30, 0, 0, time.UTC) }

func csvFile(name string, lines ...string) File {
	return File{Name: name, Data: []byte(strings.Join(lines, "\n") + "\n")}
}

func inboundSettings() report.Settings {
	return report.Settings{Departments: []report.DepartmentBucket{
		{Label: "Inbound", DeptIDs: []string{"D1"}},
	}}
}

func TestBuildAll_EndToEnd(t *testing.T) {
	files := []File{
		csvFile("roster.csv", "Employee ID,Department ID,Employment Type,Status", "100.0,D1,TEMP,NO"),
		csvFile("mytime.csv", "Person ID,On Premise", "100,YELLOW"),
	}

	res := BuildAll(files, inboundSettings(), "", WithRunID("run-1"), WithNow(fixedNow))

	assert.Equal(t, "run-1", res.RunID)
	assert.Equal(t, "2024-03-05 08:30:00", res.GeneratedAt)
	require.Len(t, res.PresenceMap.Presence, 1)
	assert.Equal(t, "100", res.PresenceMap.Presence[0].ID)
	assert.True(t, res.PresenceMap.Presence[0].Present)

	inbound, ok := res.DeptSummary.ByDepartment.Get("Inbound")
	require.True(t, ok)
	assert.Equal(t, 1, inbound.RegularExpectedTEMP)
	assert.Equal(t, 1, inbound.RegularPresentTEMP)
	assert.Equal(t, 0, inbound.RegularExpectedAMZN)

	diag := res.Diagnostics
	require.Len(t, diag.LoadedFiles, 2)
	assert.Equal(t, schema.KindRoster, diag.LoadedFiles[0].Kind)
	assert.Equal(t, schema.KindAttendance, diag.LoadedFiles[1].Kind)
	assert.True(t, diag.LoadedFiles[0].Selected)
	assert.True(t, diag.LoadedFiles[1].Selected)
	assert.Equal(t, "Employee ID", diag.PickedColumns.Roster.Column("eid"))
	assert.Equal(t, "On Premise", diag.PickedColumns.Attendance.Column("on_prem"))
	assert.Equal(t, 1, diag.PresenceCount)
	assert.Equal(t, 1, diag.PresenceOverrides)
	assert.Empty(t, diag.Errors)
	assert.Nil(t, diag.TargetDate)
}

func TestBuildAll_EmptyInput(t *testing.T) {
	res := BuildAll(nil, report.DefaultSettings(), "", WithNow(fixedNow))

	assert.NotEmpty(t, res.RunID)
	assert.Empty(t, res.PresenceMap.Presence)
	assert.Empty(t, res.VetVTO.Records)
	assert.Empty(t, res.Swaps.SwapOut)
	assert.Empty(t, res.Swaps.SwapInExpected)
	assert.Empty(t, res.Swaps.SwapInPresent)
	assert.Empty(t, res.Diagnostics.Errors)
	assert.Empty(t, res.Diagnostics.LoadedFiles)

	require.Len(t, res.DeptSummary.ByDepartment, 4)
	for _, d := range res.DeptSummary.ByDepartment {
		assert.Equal(t, report.Counters{}, d.Counters, d.Label)
	}

	decoded, err := DecodeResult([]byte(SerializeResult(res)))
	require.NoError(t, err)
	assert.Equal(t, []interface{}{}, decoded["presence_map"].(map[string]interface{})["presence"])
	assert.Equal(t, []interface{}{}, decoded["swaps"].(map[string]interface{})["swap_out"])
	assert.Equal(t, []interface{}{}, decoded["diagnostics"].(map[string]interface{})["errors"])
}

func TestBuildAll_SelectsFirstOfEachKind(t *testing.T) {
	files := []File{
		csvFile("notes.txt", "just,some,words", "a,b,c"),
		csvFile("roster-a.csv", "Employee ID,Department ID", "1,D1"),
		csvFile("roster-b.csv", "Employee ID,Department ID", "2,D1", "3,D1"),
		{Name: "empty.csv"},
	}

	res := BuildAll(files, inboundSettings(), "")

	require.Len(t, res.PresenceMap.Presence, 1)
	assert.Equal(t, "1", res.PresenceMap.Presence[0].ID)

	loaded := res.Diagnostics.LoadedFiles
	require.Len(t, loaded, 4)
	assert.Equal(t, schema.KindUnknown, loaded[0].Kind)
	assert.False(t, loaded[0].Selected)
	assert.True(t, loaded[1].Selected)
	assert.Equal(t, schema.KindRoster, loaded[2].Kind)
	assert.False(t, loaded[2].Selected)
	assert.Equal(t, 0, loaded[3].Rows)
}

func TestBuildAll_BannerFallback(t *testing.T) {
	files := []File{
		csvFile("roster.csv", "Employee ID,Department ID,Status", "100,D1,YES"),
		csvFile("export.csv", "Hyperfind: Ad Hoc", "Timeframe: Today", "Person ID,Name,Punch", "100,Ann,07:00"),
	}

	res := BuildAll(files, inboundSettings(), "")

	export := res.Diagnostics.LoadedFiles[1]
	assert.Equal(t, schema.KindAttendance, export.Kind)
	assert.Equal(t, report.KindSourceBannerFallback, export.KindSource)
	assert.True(t, export.HeaderRepaired)
	assert.True(t, export.Selected)
	assert.Equal(t, []string{"Person ID", "Name", "Punch"}, export.Cols)

	require.Len(t, res.PresenceMap.Presence, 1)
	assert.False(t, res.PresenceMap.Presence[0].Present, "feed row without a presence value wins")
	assert.Equal(t, "", res.Diagnostics.PickedColumns.Attendance.Column("on_prem"))
}

func TestBuildAll_TargetDate(t *testing.T) {
	files := []File{
		csvFile("roster.csv", "Employee ID,Department ID,Employment Type,Status", "100,D1,AMZN,YES", "200,D1,TEMP,NO"),
		csvFile("swaps.csv",
			"Employee 1 ID,Status,Date to Skip,Date to Work",
			"100,APPROVED,2024-03-05,2024-03-05",
			"200,APPROVED,2024-03-01,2024-03-02",
		),
		csvFile("vet.csv",
			"employeeId,opportunity.type,opportunity.acceptedCount,opportunity.shiftStart",
			"100,VET,1,2024-03-05T06:00:00Z",
			"200,VTO,1,2024-03-06T06:00:00Z",
		),
	}

	res := BuildAll(files, inboundSettings(), "2024-03-05")

	require.NotNil(t, res.Diagnostics.TargetDate)
	assert.Equal(t, "2024-03-05", res.Diagnostics.TargetDate.String())
	assert.Len(t, res.Swaps.SwapOut, 1)
	assert.Len(t, res.Swaps.SwapInExpected, 1)
	assert.Len(t, res.Swaps.SwapInPresent, 1)
	require.Len(t, res.VetVTO.Records, 1)
	assert.Equal(t, "100", res.VetVTO.Records[0].ID)
	assert.Equal(t, report.MarketplacePermissive, res.Diagnostics.Marketplace.Mode)

	inbound, _ := res.DeptSummary.ByDepartment.Get("Inbound")
	assert.Equal(t, report.Counters{
		RegularExpectedAMZN: 1,
		RegularPresentAMZN:  1,
		RegularExpectedTEMP: 1,
		SwapOut:             1,
		SwapInExpected:      1,
		SwapInPresent:       1,
		VETAccept:           1,
		VETPresent:          1,
	}, inbound)
}

func TestBuildAll_UnparseableTarget(t *testing.T) {
	res := BuildAll(nil, inboundSettings(), "someday")

	assert.Nil(t, res.Diagnostics.TargetDate)
	require.Len(t, res.Diagnostics.Errors, 1)
	assert.Contains(t, res.Diagnostics.Errors[0], `"someday"`)
}

func TestBuildAll_SettingsIssues(t *testing.T) {
	settings := report.Settings{Departments: []report.DepartmentBucket{
		{Label: "Inbound", DeptIDs: []string{"D1"}},
		{Label: "DA", DeptIDs: []string{"D1"}},
	}}

	res := BuildAll(nil, settings, "")
	assert.Len(t, res.Diagnostics.SettingsIssues, 1)
	assert.Len(t, res.DeptSummary.ByDepartment, 2)
}

func TestBuildAll_EngineConfig(t *testing.T) {
	files := []File{
		csvFile("vet.csv",
			"employeeId,opportunity.type,opportunity.acceptedCount,opportunity.status",
			"100,VET,1,APPROVED",
			"101,VET,1,PENDING",
		),
	}

	res := BuildAll(files, inboundSettings(), "", WithEngineConfig(config.EngineConfig{
		StrictMarketplace: true,
		DiagnosticColumns: 2,
	}))

	assert.Len(t, res.VetVTO.Records, 1)
	assert.Equal(t, report.MarketplaceStrict, res.Diagnostics.Marketplace.Mode)
	assert.Equal(t, []string{"employeeId", "opportunity.type"}, res.Diagnostics.LoadedFiles[0].Cols)
}

func TestBuildAll_LogsCarryRunID(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(config.LoggingConfig{Level: "debug", Format: "json"}, &buf)

	BuildAll([]File{csvFile("roster.csv", "Employee ID,Department ID", "1,D1")},
		inboundSettings(), "", WithLogger(logger), WithRunID("run-42"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.NotEmpty(t, lines)
	messages := make([]string, 0, len(lines))
	for _, line := range lines {
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		assert.Equal(t, "run-42", entry["run_id"])
		assert.Equal(t, "pipeline", entry["component"])
		messages = append(messages, entry["msg"].(string))
	}
	assert.Contains(t, messages, "build started")
	assert.Contains(t, messages, "file loaded")
	assert.Contains(t, messages, "build finished")
}

func TestSerializeResult(t *testing.T) {
	res := BuildAll([]File{csvFile("roster.csv", "Employee ID,Department ID", "1,D1")},
		inboundSettings(), "", WithRunID("r"), WithNow(fixedNow))

	out := SerializeResult(res)
	decoded, err := DecodeResult([]byte(out))
	require.NoError(t, err)

	for _, key := range []string{"generated_at", "run_id", "dept_summary", "presence_map", "vet_vto", "swaps", "diagnostics"} {
		assert.Contains(t, decoded, key)
	}
	summary := decoded["dept_summary"].(map[string]interface{})
	byDept := summary["by_department"].(map[string]interface{})
	inbound := byDept["Inbound"].(map[string]interface{})
	assert.Equal(t, 1.0, inbound["regular_expected_TEMP"])

	presence := decoded["presence_map"].(map[string]interface{})["presence"].([]interface{})
	require.Len(t, presence, 1)
	assert.Equal(t, "1", presence[0].(map[string]interface{})["eid"])

	_, err = DecodeResult([]byte("{"))
	assert.Error(t, err)
	assert.JSONEq(t, `{"error":"boom"}`, ErrorJSON(errors.New("boom")))
}

func TestHintsFor_EmptyTable(t *testing.T) {
	assert.Nil(t, hintsFor(parser.EmptyTable(), schema.RosterRoles, schema.Picks{}))
}

func TestBuildAll_PipeBannerKeepsFeedPrecedence(t *testing.T) {
	files := []File{
		csvFile("roster.csv", "Employee ID,Department ID,Status", "100,D1,NO"),
		csvFile("mytime.csv", "Hyperfind: All Home | Timeframe: Today", "Person ID,Name,On Premise", "100,Ann,Y"),
	}

	res := BuildAll(files, inboundSettings(), "")

	assert.Equal(t, "Person ID", res.Diagnostics.PickedColumns.Attendance.Column("eid"))
	assert.Equal(t, "On Premise", res.Diagnostics.PickedColumns.Attendance.Column("on_prem"))
	require.Len(t, res.PresenceMap.Presence, 1)
	assert.True(t, res.PresenceMap.Presence[0].Present, "feed says Y")
	assert.Equal(t, 1, res.Diagnostics.PresenceOverrides)
}
