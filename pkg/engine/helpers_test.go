package engine

import (
	"fmt"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"

	"github.com/katpally123/pxt-phoenix/pkg/parser"
	"github.com/katpally123/pxt-phoenix/pkg/schema"
)

func loadCSV(t *testing.T, lines ...string) *parser.Table {
	t.Helper()
	tbl := parser.Load([]byte(strings.Join(lines, "\n") + "\n"))
	require.False(t, tbl.Empty(), "fixture did not load")
	return tbl
}

// presenceFor reconciles a roster and an optional attendance feed given as CSV lines.
func presenceFor(t *testing.T, roster []string, attendance []string) *PresenceResult {
	t.Helper()
	r := NormalizeRoster(loadCSV(t, roster...))
	var feed *AttendanceFeed
	if attendance != nil {
		feed = NormalizeAttendance(loadCSV(t, attendance...))
	}
	return ReconcilePresence(BuildPersonIndex(r.Records), feed)
}

type fakePerson struct {
	ID         string
	First      string
	Last       string
	Dept       string
	Employment string
	Status     string
}

// fakeRoster generates a deterministic roster export.
func fakeRoster(seed int64, n int) ([]fakePerson, []string) {
	faker := gofakeit.New(seed)
	people := make([]fakePerson, 0, n)
	lines := []string{"Employee ID,First Name,Last Name,Department ID,Employment Type,On Premise"}
	for i := 0; i < n; i++ {
		p := fakePerson{
			ID:         fmt.Sprintf("%d", 100000+i),
			First:      faker.FirstName(),
			Last:       faker.LastName(),
			Dept:       faker.RandomString([]string{"1211010", "1299020", "1211030"}),
			Employment: faker.RandomString([]string{"AMZN", "TEMP-ADECCO", "TEMP-INTEGRITY"}),
			Status:     faker.RandomString([]string{"YES", "NO", ""}),
		}
		people = append(people, p)
		lines = append(lines, fmt.Sprintf("%s.0,%s,%s,%s,%s,%s", p.ID, p.First, p.Last, p.Dept, p.Employment, p.Status))
	}
	return people, lines
}

func date(t *testing.T, s string) *schema.Date {
	t.Helper()
	d := schema.ParseTargetDate(s)
	require.NotNil(t, d)
	return d
}
