package repository

import (
	"context"
	"strings"
)

// SearchQuery holds the optional facet selections of the advanced search.
// A nil or empty slice leaves that facet unfiltered.
type SearchQuery struct {
	Countries []string `json:"countries"` // country display names
	Cities    []string `json:"cities"`    // city names; one name may cover several zipcodes
	Artists   []string `json:"artists"`   // "First Last"
	Styles    []string `json:"styles"`
}

// SearchResult carries the matching rows and the summary metrics shown
// under the results table.
type SearchResult struct {
	Items           []PaintingRow `json:"items"`
	Total           int           `json:"total"`
	DistinctArtists int           `json:"distinct_artists"`
	DistinctStyles  int           `json:"distinct_styles"`
}

// FilterOptions lists the values offered by each search facet.
type FilterOptions struct {
	Countries []string `json:"countries"`
	Cities    []string `json:"cities"`
	Artists   []string `json:"artists"`
	Styles    []string `json:"styles"`
}

// buildSearch returns the SQL and bind arguments for q.
func buildSearch(q SearchQuery) (string, []any) {
	var p predicates
	p.in(FilterCountry, q.Countries)
	p.in(FilterCity, q.Cities)
	p.in(FilterArtist, q.Artists)
	p.in(FilterStyle, q.Styles)

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(paintingColumns)
	b.WriteString("\n\t\t")
	b.WriteString(paintingJoin)
	b.WriteString("\n\t\tWHERE ")
	b.WriteString(p.where())
	b.WriteString("\n\t\tORDER BY p.year_created, p.title")
	return b.String(), p.args
}

// Search runs the faceted painting search. Results are ordered by year
// created, then title; an empty result is not an error.
func (r *PaintingRepo) Search(ctx context.Context, q SearchQuery) (SearchResult, error) {
	sqlText, args := buildSearch(q)
	items, err := r.queryPaintingRows(ctx, sqlText, args...)
	if err != nil {
		return SearchResult{}, err
	}
	artists := make(map[string]struct{})
	styles := make(map[string]struct{})
	for _, it := range items {
		artists[it.ArtistName] = struct{}{}
		styles[it.Style] = struct{}{}
	}
	return SearchResult{
		Items:           items,
		Total:           len(items),
		DistinctArtists: len(artists),
		DistinctStyles:  len(styles),
	}, nil
}

// FilterOptions loads the values for the four search facets.
func (r *PaintingRepo) FilterOptions(ctx context.Context) (FilterOptions, error) {
	var opts FilterOptions
	var err error
	if opts.Countries, err = listStrings(ctx, r.db, `SELECT country_name FROM country ORDER BY country_name`); err != nil {
		return FilterOptions{}, err
	}
	if opts.Cities, err = listStrings(ctx, r.db, `SELECT DISTINCT name FROM city ORDER BY name`); err != nil {
		return FilterOptions{}, err
	}
	if opts.Artists, err = listStrings(ctx, r.db,
		`SELECT `+artistNameExpr+` FROM artist a ORDER BY a.last_name, a.first_name`); err != nil {
		return FilterOptions{}, err
	}
	if opts.Styles, err = r.Styles(ctx); err != nil {
		return FilterOptions{}, err
	}
	return opts, nil
}
