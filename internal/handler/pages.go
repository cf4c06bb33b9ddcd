package handler

import (
	"context"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/painting-catalog/internal/model"
	"github.com/iliyamo/painting-catalog/internal/web"
)

// View Data report types.
const (
	ViewAllPaintings = "all_paintings"
	ViewAllArtists   = "all_artists"
	ViewAllCities    = "all_cities"
	ViewByCity       = "by_city"
	ViewByArtist     = "by_artist"
	ViewByStyle      = "by_style"
)

var viewTypes = []web.Option{
	{Value: ViewAllPaintings, Label: "All Paintings"},
	{Value: ViewAllArtists, Label: "All Artists"},
	{Value: ViewAllCities, Label: "All Cities"},
	{Value: ViewByCity, Label: "Paintings by City"},
	{Value: ViewByArtist, Label: "Paintings by Artist"},
	{Value: ViewByStyle, Label: "Paintings by Style"},
}

// Index sends visitors to the View Data page.
func (h *CatalogHandler) Index(c echo.Context) error {
	return c.Redirect(http.StatusFound, "/view")
}

// ViewPage handles GET /view?type=...; the by_* reports read their
// selection from city (ISO:zipcode), artist (id) or style, defaulting to the
// first entry of the select box.
func (h *CatalogHandler) ViewPage(c echo.Context) error {
	typ := strings.TrimSpace(c.QueryParam("type"))
	if typ == "" {
		typ = ViewAllPaintings
	}
	page := web.ViewPage{
		Page: web.Page{Title: "View Data", Path: "/view"},
		Type: typ,
	}
	found := false
	for _, o := range viewTypes {
		o.Selected = o.Value == typ
		found = found || o.Selected
		page.Types = append(page.Types, o)
	}
	if !found {
		page.Error = "unknown report type " + strconv.Quote(typ)
		return c.Render(http.StatusBadRequest, web.PageView, page)
	}

	ctx := c.Request().Context()
	r := reposFor(c)
	var err error
	switch typ {
	case ViewAllPaintings:
		err = h.viewAllPaintings(ctx, r, &page)
	case ViewAllArtists:
		err = h.viewAllArtists(ctx, r, &page)
	case ViewAllCities:
		err = h.viewAllCities(ctx, r, &page)
	case ViewByCity:
		err = h.viewByCity(ctx, r, &page, c.QueryParam("city"))
	case ViewByArtist:
		err = h.viewByArtist(ctx, r, &page, c.QueryParam("artist"))
	case ViewByStyle:
		err = h.viewByStyle(ctx, r, &page, c.QueryParam("style"))
	}
	if err != nil {
		status, _ := errorStatus(err)
		page.Error = "Error: " + userMessage(err)
		return c.Render(status, web.PageView, page)
	}
	return c.Render(http.StatusOK, web.PageView, page)
}

func (h *CatalogHandler) viewAllPaintings(ctx context.Context, r repos, page *web.ViewPage) error {
	rows, err := r.paintings.ListAll(ctx)
	if err != nil {
		return err
	}
	page.Metrics = []web.Metric{{Label: "Total Paintings", Value: len(rows)}}
	page.Table.Columns = []string{"Serial", "Title", "Style", "Year", "Artist", "City", "Country", "Reference"}
	for _, p := range rows {
		page.Table.Rows = append(page.Table.Rows, []web.Cell{
			{Text: strconv.FormatInt(p.SerialNumber, 10)},
			{Text: p.Title},
			{Text: p.Style},
			{Text: strconv.Itoa(p.YearCreated)},
			{Text: p.ArtistName},
			{Text: p.CityName},
			{Text: p.CountryName},
			linkCell(p.WikipediaURL),
		})
	}
	return nil
}

func (h *CatalogHandler) viewAllArtists(ctx context.Context, r repos, page *web.ViewPage) error {
	rows, err := r.artists.ListWithCounts(ctx)
	if err != nil {
		return err
	}
	page.Metrics = []web.Metric{{Label: "Total Artists", Value: len(rows)}}
	page.Table.Columns = []string{"ID", "First Name", "Last Name", "Born", "Died", "Paintings"}
	for _, a := range rows {
		died := ""
		if a.DeathYear != nil {
			died = strconv.Itoa(*a.DeathYear)
		}
		page.Table.Rows = append(page.Table.Rows, []web.Cell{
			{Text: strconv.FormatInt(a.ID, 10)},
			{Text: a.FirstName},
			{Text: a.LastName},
			{Text: strconv.Itoa(a.BirthYear)},
			{Text: died},
			{Text: strconv.FormatInt(a.NumberOfPaintings, 10)},
		})
	}
	return nil
}

func (h *CatalogHandler) viewAllCities(ctx context.Context, r repos, page *web.ViewPage) error {
	rows, err := r.cities.ListWithCounts(ctx)
	if err != nil {
		return err
	}
	page.Metrics = []web.Metric{{Label: "Total Cities", Value: len(rows)}}
	page.Table.Columns = []string{"Country ISO", "Zipcode", "City", "Country", "Paintings"}
	for _, ci := range rows {
		page.Table.Rows = append(page.Table.Rows, []web.Cell{
			{Text: ci.CountryISO},
			{Text: ci.Zipcode},
			{Text: ci.Name},
			{Text: ci.CountryName},
			{Text: strconv.FormatInt(ci.PaintingsCount, 10)},
		})
	}
	return nil
}

func (h *CatalogHandler) viewByCity(ctx context.Context, r repos, page *web.ViewPage, selected string) error {
	cities, err := r.cities.ListAll(ctx)
	if err != nil {
		return err
	}
	page.Selector = "city"
	opts := make([]web.Option, 0, len(cities))
	for _, ci := range cities {
		opts = append(opts, web.Option{Value: ci.CityKey.String(), Label: ci.Label()})
	}
	choice, ok := choose(opts, selected)
	page.Choices = opts
	page.Metrics = []web.Metric{{Label: "Paintings in this city", Value: 0}}
	page.Table.Columns = []string{"Title", "Style", "Year", "Artist"}
	if !ok {
		return nil
	}
	key, err := model.ParseCityKey(choice)
	if err != nil {
		return invalid("city", "%s", err.Error())
	}
	rows, err := r.paintings.ListByCity(ctx, key)
	if err != nil {
		return err
	}
	page.Metrics[0].Value = len(rows)
	for _, p := range rows {
		page.Table.Rows = append(page.Table.Rows, []web.Cell{
			{Text: p.Title}, {Text: p.Style}, {Text: strconv.Itoa(p.YearCreated)}, {Text: p.ArtistName},
		})
	}
	return nil
}

func (h *CatalogHandler) viewByArtist(ctx context.Context, r repos, page *web.ViewPage, selected string) error {
	artists, err := r.artists.ListAll(ctx)
	if err != nil {
		return err
	}
	page.Selector = "artist"
	opts := make([]web.Option, 0, len(artists))
	for _, a := range artists {
		opts = append(opts, web.Option{Value: strconv.FormatInt(a.ID, 10), Label: a.FullName()})
	}
	choice, ok := choose(opts, selected)
	page.Choices = opts
	page.Metrics = []web.Metric{{Label: "Paintings by this artist", Value: 0}}
	page.Table.Columns = []string{"Title", "Style", "Year", "City", "Country"}
	if !ok {
		return nil
	}
	id, err := strconv.ParseInt(choice, 10, 64)
	if err != nil {
		return invalid("artist", "invalid artist id %q", choice)
	}
	rows, err := r.paintings.ListByArtist(ctx, id)
	if err != nil {
		return err
	}
	page.Metrics[0].Value = len(rows)
	for _, p := range rows {
		page.Table.Rows = append(page.Table.Rows, []web.Cell{
			{Text: p.Title}, {Text: p.Style}, {Text: strconv.Itoa(p.YearCreated)}, {Text: p.CityName}, {Text: p.CountryName},
		})
	}
	return nil
}

func (h *CatalogHandler) viewByStyle(ctx context.Context, r repos, page *web.ViewPage, selected string) error {
	styles, err := r.paintings.Styles(ctx)
	if err != nil {
		return err
	}
	page.Selector = "style"
	opts := make([]web.Option, 0, len(styles))
	for _, s := range styles {
		opts = append(opts, web.Option{Value: s, Label: s})
	}
	choice, ok := choose(opts, selected)
	page.Choices = opts
	page.Metrics = []web.Metric{{Label: "Paintings in this style", Value: 0}}
	page.Table.Columns = []string{"Title", "Year", "Artist", "City"}
	if !ok {
		return nil
	}
	rows, err := r.paintings.ListByStyle(ctx, choice)
	if err != nil {
		return err
	}
	page.Metrics[0].Value = len(rows)
	for _, p := range rows {
		page.Table.Rows = append(page.Table.Rows, []web.Cell{
			{Text: p.Title}, {Text: strconv.Itoa(p.YearCreated)}, {Text: p.ArtistName}, {Text: p.CityName},
		})
	}
	return nil
}

// choose marks the selected option, or the first one when selected is
// blank, and returns its value. It reports false when there is nothing to
// choose from.
func choose(opts []web.Option, selected string) (string, bool) {
	if len(opts) == 0 {
		return "", false
	}
	selected = strings.TrimSpace(selected)
	if selected == "" {
		selected = opts[0].Value
	}
	for i := range opts {
		opts[i].Selected = opts[i].Value == selected
	}
	return selected, true
}

func linkCell(u *string) web.Cell {
	if u == nil || *u == "" {
		return web.Cell{}
	}
	return web.Cell{Text: "Wikipedia", Link: *u}
}

// SearchPage handles GET /search. The facets are the same repeatable query
// parameters as the JSON search.
func (h *CatalogHandler) SearchPage(c echo.Context) error {
	ctx := c.Request().Context()
	r := reposFor(c)
	q := searchQuery(c)
	page := web.SearchPage{Page: web.Page{Title: "Advanced Search", Path: "/search"}}

	opts, err := r.paintings.FilterOptions(ctx)
	if err != nil {
		page.Error = "Error: " + userMessage(err)
		return c.Render(http.StatusInternalServerError, web.PageSearch, page)
	}
	page.Countries = markSelected(opts.Countries, q.Countries)
	page.Cities = markSelected(opts.Cities, q.Cities)
	page.Artists = markSelected(opts.Artists, q.Artists)
	page.Styles = markSelected(opts.Styles, q.Styles)

	res, err := r.paintings.Search(ctx, q)
	if err != nil {
		page.Error = "Error: " + userMessage(err)
		return c.Render(http.StatusInternalServerError, web.PageSearch, page)
	}
	page.Metrics = []web.Metric{
		{Label: "Total Results", Value: res.Total},
		{Label: "Unique Artists", Value: res.DistinctArtists},
		{Label: "Unique Styles", Value: res.DistinctStyles},
	}
	page.Table.Columns = []string{"Title", "Style", "Year", "Artist", "City", "Country", "Reference"}
	for _, p := range res.Items {
		page.Table.Rows = append(page.Table.Rows, []web.Cell{
			{Text: p.Title},
			{Text: p.Style},
			{Text: strconv.Itoa(p.YearCreated)},
			{Text: p.ArtistName},
			{Text: p.CityName},
			{Text: p.CountryName},
			linkCell(p.WikipediaURL),
		})
	}
	return c.Render(http.StatusOK, web.PageSearch, page)
}

func markSelected(values, selected []string) []web.Option {
	out := make([]web.Option, 0, len(values))
	for _, v := range values {
		out = append(out, web.Option{Value: v, Label: v, Selected: slices.Contains(selected, v)})
	}
	return out
}

// NewArtistPage handles GET /artists/new.
func (h *CatalogHandler) NewArtistPage(c echo.Context) error {
	return c.Render(http.StatusOK, web.PageArtist, h.artistForm(ArtistInput{}))
}

// SubmitArtist handles POST /artists/new. The form is shown again with
// either a confirmation or the reason the artist was rejected.
func (h *CatalogHandler) SubmitArtist(c echo.Context) error {
	var in ArtistInput
	if err := c.Bind(&in); err != nil {
		page := h.artistForm(in)
		page.Error = "Error: birth and death year must be numbers"
		return c.Render(http.StatusBadRequest, web.PageArtist, page)
	}
	a, err := h.addArtist(c, in)
	if err != nil {
		page := h.artistForm(in)
		page.Error = "Error: " + userMessage(err)
		status, _ := errorStatus(err)
		return c.Render(status, web.PageArtist, page)
	}
	page := h.artistForm(ArtistInput{})
	page.Notice = "Artist " + a.FullName() + " added successfully."
	return c.Render(http.StatusOK, web.PageArtist, page)
}

func (h *CatalogHandler) artistForm(in ArtistInput) web.FormPage {
	return web.FormPage{
		Page:    web.Page{Title: "Add Artist", Path: "/artists/new"},
		Form:    in,
		MinYear: minYear,
		MaxYear: h.maxYear(),
	}
}

// NewCityPage handles GET /cities/new.
func (h *CatalogHandler) NewCityPage(c echo.Context) error {
	page, err := h.cityForm(c, CityInput{})
	if err != nil {
		page.Error = "Error: " + userMessage(err)
		return c.Render(http.StatusInternalServerError, web.PageCity, page)
	}
	return c.Render(http.StatusOK, web.PageCity, page)
}

// SubmitCity handles POST /cities/new.
func (h *CatalogHandler) SubmitCity(c echo.Context) error {
	var in CityInput
	_ = c.Bind(&in) // string fields only, a bind error leaves them blank
	city, n, err := h.addCity(c, in)
	if err != nil {
		page, _ := h.cityForm(c, in)
		page.Error = "Error: " + userMessage(err)
		status, _ := errorStatus(err)
		return c.Render(status, web.PageCity, page)
	}
	page, _ := h.cityForm(c, CityInput{CountryISO: city.CountryISO})
	page.Notice = "City " + city.Name + " (" + city.Zipcode + ") added successfully. " +
		"Cities in this country: " + strconv.FormatInt(n, 10) + "."
	return c.Render(http.StatusOK, web.PageCity, page)
}

func (h *CatalogHandler) cityForm(c echo.Context, in CityInput) (web.FormPage, error) {
	page := web.FormPage{Page: web.Page{Title: "Add City", Path: "/cities/new"}, Form: in}
	countries, err := reposFor(c).countries.ListAll(c.Request().Context())
	if err != nil {
		return page, err
	}
	iso := strings.ToUpper(strings.TrimSpace(in.CountryISO))
	for _, co := range countries {
		page.Countries = append(page.Countries, web.Option{
			Value:    co.ISO,
			Label:    co.Name + " (" + co.ISO + ")",
			Selected: co.ISO == iso,
		})
	}
	return page, nil
}

// NewPaintingPage handles GET /paintings/new.
func (h *CatalogHandler) NewPaintingPage(c echo.Context) error {
	page, err := h.paintingForm(c, PaintingInput{})
	if err != nil {
		page.Error = "Error: " + userMessage(err)
		return c.Render(http.StatusInternalServerError, web.PagePainting, page)
	}
	return c.Render(http.StatusOK, web.PagePainting, page)
}

// SubmitPainting handles POST /paintings/new.
func (h *CatalogHandler) SubmitPainting(c echo.Context) error {
	var in PaintingInput
	if err := c.Bind(&in); err != nil {
		page, _ := h.paintingForm(c, in)
		page.Error = "Error: year and artist must be numbers"
		return c.Render(http.StatusBadRequest, web.PagePainting, page)
	}
	p, err := h.addPainting(c, in)
	if err != nil {
		page, _ := h.paintingForm(c, in)
		page.Error = "Error: " + userMessage(err)
		status, _ := errorStatus(err)
		return c.Render(status, web.PagePainting, page)
	}
	page, _ := h.paintingForm(c, PaintingInput{})
	page.Notice = "Painting " + strconv.Quote(p.Title) + " added successfully (serial number " +
		strconv.FormatInt(p.SerialNumber, 10) + ")."
	return c.Render(http.StatusOK, web.PagePainting, page)
}

func (h *CatalogHandler) paintingForm(c echo.Context, in PaintingInput) (web.FormPage, error) {
	page := web.FormPage{
		Page:    web.Page{Title: "Add Painting", Path: "/paintings/new"},
		Form:    in,
		MinYear: minYear,
		MaxYear: h.maxYear(),
	}
	for _, s := range model.Styles {
		page.Styles = append(page.Styles, web.Option{Value: s, Label: s, Selected: s == in.Style})
	}
	ctx := c.Request().Context()
	r := reposFor(c)
	artists, err := r.artists.ListAll(ctx)
	if err != nil {
		return page, err
	}
	for _, a := range artists {
		page.Artists = append(page.Artists, web.Option{
			Value:    strconv.FormatInt(a.ID, 10),
			Label:    a.FullName(),
			Selected: a.ID == in.ArtistID,
		})
	}
	cities, err := r.cities.ListAll(ctx)
	if err != nil {
		return page, err
	}
	for _, ci := range cities {
		page.Cities = append(page.Cities, web.Option{
			Value:    ci.CityKey.String(),
			Label:    ci.Label(),
			Selected: ci.CityKey.String() == in.City,
		})
	}
	return page, nil
}
