// Package web renders the catalog's HTML pages with html/template. All
// values, outbound links included, go through contextual escaping.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names accepted by Renderer.Render.
const (
	PageView     = "view"
	PageSearch   = "search"
	PageArtist   = "artist_form"
	PageCity     = "city_form"
	PagePainting = "painting_form"
)

// Renderer implements echo.Renderer. Each page is parsed together with the
// shared layout once at startup.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, name := range []string{PageView, PageSearch, PageArtist, PageCity, PagePainting} {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}

var funcs = template.FuncMap{
	"nav": func() []Option {
		return []Option{
			{Value: "/view", Label: "View Data"},
			{Value: "/search", Label: "Advanced Search"},
			{Value: "/artists/new", Label: "Add Artist"},
			{Value: "/cities/new", Label: "Add City"},
			{Value: "/paintings/new", Label: "Add Painting"},
		}
	},
}

// Option is one entry of a select box or navigation bar.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// Cell is a table cell; a non-empty Link renders it as an outbound link.
type Cell struct {
	Text string
	Link string
}

type Table struct {
	Columns []string
	Rows    [][]Cell
}

type Metric struct {
	Label string
	Value int
}

// Page carries what the layout needs.
type Page struct {
	Title  string
	Path   string
	Error  string
	Notice string
}

// ViewPage is the View Data page: a report picker, an optional selector
// for the by_* reports and the report table.
type ViewPage struct {
	Page
	Types    []Option
	Type     string
	Selector string // query parameter of the by_* reports, empty otherwise
	Choices  []Option
	Metrics  []Metric
	Table    Table
}

// SearchPage is the Advanced Search page.
type SearchPage struct {
	Page
	Countries []Option
	Cities    []Option
	Artists   []Option
	Styles    []Option
	Metrics   []Metric
	Table     Table
}

// FormPage backs the three Add pages. Form holds the submitted values so a
// rejected submission can be corrected.
type FormPage struct {
	Page
	Form      any
	Countries []Option
	Artists   []Option
	Cities    []Option
	Styles    []Option
	MinYear   int
	MaxYear   int
}
