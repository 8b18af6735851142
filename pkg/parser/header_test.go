package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bannerExport = "Hyperfind: Ad Hoc\n" +
	"Timeframe: Today\n" +
	"Person ID,Name,On Premise\n" +
	"100,Ann,YES\n" +
	"101,Bob,NO\n"

func TestHasBannerSignature(t *testing.T) {
	assert.True(t, HasBannerSignature(Load([]byte(bannerExport))))
	assert.True(t, HasBannerSignature(Load([]byte("Timeframe: Today,,\nPerson ID,On Premise,\n"))))
	assert.False(t, HasBannerSignature(Load([]byte("Person ID,On Premise\n1,Y\n"))))
	assert.False(t, HasBannerSignature(EmptyTable()))
}

func TestRepair_RelocatesHeader(t *testing.T) {
	loaded := Load([]byte(bannerExport))
	require.Equal(t, StrategyHeaderless, loaded.Strategy)

	fixed := Repair(loaded, DefaultHeaderScanRows)

	assert.True(t, fixed.Repaired)
	assert.Equal(t, []string{"Person ID", "Name", "On Premise"}, fixed.Columns)
	require.Equal(t, 2, fixed.Len())
	assert.Equal(t, "100", fixed.Rows[0].String("Person ID"))
	assert.Equal(t, "NO", fixed.Rows[1].String("On Premise"))
	assert.Equal(t, loaded.Encoding, fixed.Encoding)
}

func TestRepair_Idempotent(t *testing.T) {
	once := Repair(Load([]byte(bannerExport)), DefaultHeaderScanRows)
	twice := Repair(once, DefaultHeaderScanRows)

	assert.Same(t, once, twice)
	assert.Equal(t, once.Columns, twice.Columns)
	assert.Equal(t, once.Rows, twice.Rows)
}

func TestRepair_DropsPlaceholderColumns(t *testing.T) {
	loaded := Load([]byte("Hyperfind: Ad Hoc,,\nPerson ID,On Premise,\n1,Y,\n"))
	require.Equal(t, StrategyDefault, loaded.Strategy)

	fixed := Repair(loaded, DefaultHeaderScanRows)
	assert.Equal(t, []string{"Person ID", "On Premise"}, fixed.Columns)
	require.Equal(t, 1, fixed.Len())
	assert.Equal(t, "Y", fixed.Rows[0].String("On Premise"))
}

func TestRepair_BroadFallback(t *testing.T) {
	loaded := Load([]byte("Hyperfind: Ad Hoc\nTimeframe: Today\nEmployee,Status\n1,Y\n"))

	fixed := Repair(loaded, DefaultHeaderScanRows)
	assert.True(t, fixed.Repaired)
	assert.Equal(t, []string{"Employee", "Status"}, fixed.Columns)
}

func TestRepair_Unchanged(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		scanRows int
	}{
		{"already usable header", "Person ID,On Premise\n1,Y\n", DefaultHeaderScanRows},
		{"no candidate row", "Hyperfind: Ad Hoc\nTimeframe: Today\nA,B,C\n", DefaultHeaderScanRows},
		{"candidate beyond scan window", bannerExport, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loaded := Load([]byte(tt.input))
			fixed := Repair(loaded, tt.scanRows)
			assert.Same(t, loaded, fixed)
			assert.False(t, fixed.Repaired)
		})
	}

	empty := EmptyTable()
	assert.Same(t, empty, Repair(empty, DefaultHeaderScanRows))
}

func TestRepair_BannerWithOtherSeparators(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		strategy Strategy
	}{
		{
			name:     "single pipe banner",
			input:    "Hyperfind: All Home | Timeframe: Today\nPerson ID,Name,On Premise\n100,Ann,Y\n",
			strategy: StrategySkipBannerRow,
		},
		{
			name:     "two banner rows with separators",
			input:    "Hyperfind: All Home | Ad Hoc\nTimeframe: Today;\tShift 1\nPerson ID,Name,On Premise\n100,Ann,Y\n",
			strategy: StrategyHeaderless,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loaded := Load([]byte(tt.input))
			require.Equal(t, tt.strategy, loaded.Strategy)

			fixed := Repair(loaded, DefaultHeaderScanRows)
			assert.Equal(t, []string{"Person ID", "Name", "On Premise"}, fixed.Columns)
			require.Equal(t, 1, fixed.Len())
			assert.Equal(t, "100", fixed.Rows[0].String("Person ID"))
			assert.Equal(t, "Y", fixed.Rows[0].String("On Premise"))
		})
	}
}

func TestSniffDelimiter(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  rune
	}{
		{"comma", "a,b\n1,2\n", ','},
		{"semicolon", "a;b\n1;2\n", ';'},
		{"tab", "a\tb\n1\t2\n", '\t'},
		{"pipe", "a|b\n1|2\n", '|'},
		{"banner separator ignored", "Hyperfind: All | Timeframe: Today\na,b\n1,2\n", ','},
		{"decimal commas lose to semicolons", "name;value\nx;1,5\ny;2\n", ';'},
		{"no separator defaults to comma", "single\n", ','},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sniffDelimiter([]byte(tt.input)))
		})
	}
}
