package repository

import "strings"

// Filter names a search facet. Only facets present in filterColumns can
// reach the generated SQL.
type Filter string

const (
	FilterCountry Filter = "country"
	FilterCity    Filter = "city"
	FilterArtist  Filter = "artist"
	FilterStyle   Filter = "style"
)

// artistNameExpr renders "First Last", matching model.Artist.FullName.
const artistNameExpr = "CONCAT(a.first_name, ' ', a.last_name)"

var filterColumns = map[Filter]string{
	FilterCountry: "co.country_name",
	FilterCity:    "c.name",
	FilterArtist:  artistNameExpr,
	FilterStyle:   "p.style_type",
}

// predicates accumulates AND-ed membership clauses over allow-listed
// columns. Values are always bound, never written into the SQL text.
type predicates struct {
	clauses []string
	args    []any
}

// in adds "<column> IN (?, ...)" for the facet. Blank and repeated values
// are dropped; when nothing is left the facet adds no clause at all.
func (p *predicates) in(f Filter, values []string) {
	col, ok := filterColumns[f]
	if !ok {
		panic("repository: filter " + string(f) + " is not allow-listed")
	}
	vals := normalizeValues(values)
	if len(vals) == 0 {
		return
	}
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(vals)), ", ")
	p.clauses = append(p.clauses, col+" IN ("+marks+")")
	for _, v := range vals {
		p.args = append(p.args, v)
	}
}

// where returns the WHERE body: the base predicate followed by each clause.
func (p *predicates) where() string {
	if len(p.clauses) == 0 {
		return "1=1"
	}
	return "1=1 AND " + strings.Join(p.clauses, " AND ")
}

func normalizeValues(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
