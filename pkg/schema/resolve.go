package schema

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Resolve finds the column that best matches an ordered list of synonyms.
//   1. Exact case-insensitive match, candidates in order, first hit wins
//   2. Substring match (candidate inside column name), same ordering
//   3. No match -> "", false
func Resolve(columns []string, candidates []string) (string, bool) {
	if len(columns) == 0 {
		return "", false
	}

	for _, want := range candidates {
		for _, c := range columns {
			if strings.EqualFold(want, c) {
				return c, true
			}
		}
	}

	for _, want := range candidates {
		lw := strings.ToLower(want)
		for _, c := range columns {
			if strings.Contains(strings.ToLower(c), lw) {
				return c, true
			}
		}
	}

	return "", false
}

// Picks records which column was resolved for each role of one document.
// Unresolved roles map to "".
type Picks struct {
	order   []string
	columns map[string]string
}

// ResolveRoles resolves every role against the columns.
func ResolveRoles(columns []string, roles []Role) Picks {
	p := Picks{columns: make(map[string]string, len(roles))}
	for _, r := range roles {
		col, _ := Resolve(columns, r.Candidates)
		p.order = append(p.order, r.Name)
		p.columns[r.Name] = col
	}
	return p
}

// Column returns the column picked for role, or "".
func (p Picks) Column(role string) string {
	return p.columns[role]
}

// Roles returns role names in resolution order.
func (p Picks) Roles() []string {
	return append([]string(nil), p.order...)
}

// Unresolved returns the roles that found no column.
func (p Picks) Unresolved() []string {
	var out []string
	for _, r := range p.order {
		if p.columns[r] == "" {
			out = append(out, r)
		}
	}
	return out
}

// MarshalJSON writes role -> column in resolution order, null when unresolved.
func (p Picks) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, r := range p.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(r)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if col := p.columns[r]; col != "" {
			val, err := json.Marshal(col)
			if err != nil {
				return nil, err
			}
			buf.Write(val)
		} else {
			buf.WriteString("null")
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
