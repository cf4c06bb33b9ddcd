package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPredicatesEmptyIsBaseOnly(t *testing.T) {
	var p predicates
	p.in(FilterCountry, nil)
	p.in(FilterStyle, []string{"", "  "})
	assert.Equal(t, "1=1", p.where())
	assert.Empty(t, p.args)
}

func TestPredicatesBindValues(t *testing.T) {
	var p predicates
	p.in(FilterCountry, []string{"France", " Spain ", "France"})
	p.in(FilterArtist, []string{"Claude Monet"})

	assert.Equal(t,
		"1=1 AND co.country_name IN (?, ?) AND CONCAT(a.first_name, ' ', a.last_name) IN (?)",
		p.where())
	assert.Equal(t, []any{"France", "Spain", "Claude Monet"}, p.args)
}

func TestPredicatesRejectUnknownFilter(t *testing.T) {
	var p predicates
	assert.Panics(t, func() { p.in(Filter("title; DROP TABLE painting"), []string{"x"}) })
}

func TestBuildSearchOrdering(t *testing.T) {
	q, args := buildSearch(SearchQuery{Styles: []string{"Cubism"}})
	assert.Contains(t, q, "WHERE 1=1 AND p.style_type IN (?)")
	assert.Contains(t, q, "ORDER BY p.year_created, p.title")
	assert.Equal(t, []any{"Cubism"}, args)
}
